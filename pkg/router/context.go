package router

import (
	"context"
	"net/http"
)

type (
	requestKey struct{}
	errorKey   struct{}
)

func withRequest(ctx context.Context, r *http.Request) context.Context {
	return context.WithValue(ctx, requestKey{}, r)
}

// Request returns the *http.Request of the current call. It is only
// available inside middlewares, handlers, and closers.
func Request(ctx context.Context) *http.Request {
	r, ok := ctx.Value(requestKey{}).(*http.Request)
	if !ok {
		return nil
	}

	return r
}

type errorHolder struct {
	err error
}

func withErrorHolder(ctx context.Context) context.Context {
	return context.WithValue(ctx, errorKey{}, &errorHolder{})
}

func setError(ctx context.Context, err error) {
	if holder, ok := ctx.Value(errorKey{}).(*errorHolder); ok {
		holder.err = err
	}
}

// Error returns the error produced by the middleware chain or handler, if
// any. It is intended for closers.
func Error(ctx context.Context) error {
	holder, ok := ctx.Value(errorKey{}).(*errorHolder)
	if !ok {
		return nil
	}

	return holder.err
}
