package middleware

import (
	"context"

	"github.com/drawlab-gg/backend/pkg/errorx"
	"github.com/drawlab-gg/backend/pkg/router"
	"github.com/drawlab-gg/backend/pkg/xcontext"
)

// UserIDHeader carries the caller identity resolved by the chat gateway in
// front of this service. The gateway enforces command permissions; this
// service only records who acted.
const UserIDHeader = "X-User-ID"

// AuthVerifier requires a resolved caller identity on the request and puts
// it into the context for the domains.
type AuthVerifier struct{}

func NewAuthVerifier() *AuthVerifier {
	return &AuthVerifier{}
}

func (v *AuthVerifier) Middleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		userID := router.Request(ctx).Header.Get(UserIDHeader)
		if userID == "" {
			return nil, errorx.New(errorx.Unauthenticated, "Require a caller identity")
		}

		return xcontext.WithRequestUserID(ctx, userID), nil
	}
}
