package middleware

import (
	"context"
	"errors"
	"fmt"

	"github.com/drawlab-gg/backend/pkg/errorx"
	"github.com/drawlab-gg/backend/pkg/router"
	"github.com/drawlab-gg/backend/pkg/xcontext"
)

func Logger() router.CloserFunc {
	return func(ctx context.Context) {
		r := router.Request(ctx)
		info := fmt.Sprintf("%s | %s", r.Method, r.URL.Path)
		if err := router.Error(ctx); err != nil {
			var errx errorx.Error
			if errors.As(err, &errx) {
				xcontext.Logger(ctx).Warnf("%s | %d", info, errx.Code)
			} else {
				xcontext.Logger(ctx).Errorf("%s | %d", info, -1)
			}
		} else {
			xcontext.Logger(ctx).Infof(info)
		}
	}
}
