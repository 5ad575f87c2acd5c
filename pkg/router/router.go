package router

import (
	"context"
	"net/http"

	"github.com/drawlab-gg/backend/config"
	"github.com/drawlab-gg/backend/pkg/logger"
	"gorm.io/gorm"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before the handler. It can derive a new context for
// the rest of the chain; returning an error stops the request.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc runs after the response is written, regardless of outcome.
type CloserFunc func(ctx context.Context)

type Router struct {
	mux *http.ServeMux

	db      *gorm.DB
	cfg     config.Configs
	logger  logger.Logger
	befores []MiddlewareFunc
	closers []CloserFunc
}

func New(db *gorm.DB, cfg config.Configs, logger logger.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		db:     db,
		cfg:    cfg,
		logger: logger,
	}
}

// Branch returns a router sharing the same mux but with its own middleware
// chain, seeded with a copy of the parent's.
func (r *Router) Branch() *Router {
	branch := &Router{
		mux:    r.mux,
		db:     r.db,
		cfg:    r.cfg,
		logger: r.logger,
	}
	branch.befores = append(branch.befores, r.befores...)
	branch.closers = append(branch.closers, r.closers...)

	return branch
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

func (r *Router) AddCloser(closer CloserFunc) {
	r.closers = append(r.closers, closer)
}

func (r *Router) Handler() http.Handler {
	return r.mux
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.HandleFunc(pattern, wrapHandler(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.HandleFunc(pattern, wrapHandler(r, http.MethodPost, handler))
}
