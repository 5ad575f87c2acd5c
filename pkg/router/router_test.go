package router_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/drawlab-gg/backend/config"
	"github.com/drawlab-gg/backend/pkg/errorx"
	"github.com/drawlab-gg/backend/pkg/logger"
	"github.com/drawlab-gg/backend/pkg/router"
	"github.com/stretchr/testify/require"
)

type echoRequest struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type echoResponse struct {
	Name  string `json:"name"`
	Count int    `json:"count,omitempty"`
}

func newTestRouter() *router.Router {
	return router.New(nil, config.Configs{Env: "testing"},
		logger.NewLoggerWithLevel(logger.SILENCE))
}

func echo(ctx context.Context, req *echoRequest) (*echoResponse, error) {
	return &echoResponse{Name: req.Name, Count: req.Count}, nil
}

func TestRouter_bindQuery(t *testing.T) {
	r := newTestRouter()
	router.GET(r, "/echo", echo)

	req := httptest.NewRequest(http.MethodGet, "/echo?name=alice&count=3", nil)
	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"code":0,"data":{"name":"alice","count":3}}`, w.Body.String())
}

func TestRouter_bindBody(t *testing.T) {
	r := newTestRouter()
	router.POST(r, "/echo", echo)

	req := httptest.NewRequest(http.MethodPost, "/echo",
		strings.NewReader(`{"name":"bob","count":7}`))
	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"code":0,"data":{"name":"bob","count":7}}`, w.Body.String())
}

func TestRouter_bindError(t *testing.T) {
	r := newTestRouter()
	router.POST(r, "/echo", echo)

	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("not json"))
	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, req)

	require.JSONEq(t, `{"code":100001,"error":"Cannot bind the request"}`, w.Body.String())
}

func TestRouter_methodNotAllowed(t *testing.T) {
	r := newTestRouter()
	router.POST(r, "/echo", echo)

	req := httptest.NewRequest(http.MethodGet, "/echo", nil)
	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRouter_errorEnvelope(t *testing.T) {
	r := newTestRouter()
	router.GET(r, "/fail", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return nil, errorx.New(errorx.NotFound, "Not found giveaway")
	})
	router.GET(r, "/boom", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return nil, context.DeadlineExceeded
	})

	req := httptest.NewRequest(http.MethodGet, "/fail", nil)
	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, req)
	require.JSONEq(t, `{"code":100004,"error":"Not found giveaway"}`, w.Body.String())

	// Errors outside the well-known set never leak their message.
	req = httptest.NewRequest(http.MethodGet, "/boom", nil)
	w = httptest.NewRecorder()
	r.Handler().ServeHTTP(w, req)
	require.JSONEq(t, `{"code":100000,"error":"Request failed"}`, w.Body.String())
}

func TestRouter_middlewareChain(t *testing.T) {
	type ctxKey struct{}

	r := newTestRouter()
	r.Before(func(ctx context.Context) (context.Context, error) {
		return context.WithValue(ctx, ctxKey{}, "from-middleware"), nil
	})

	router.GET(r, "/echo", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		value, _ := ctx.Value(ctxKey{}).(string)
		return &echoResponse{Name: value}, nil
	})

	req := httptest.NewRequest(http.MethodGet, "/echo", nil)
	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, req)

	require.JSONEq(t, `{"code":0,"data":{"name":"from-middleware"}}`, w.Body.String())
}

func TestRouter_middlewareError(t *testing.T) {
	r := newTestRouter()
	handlerCalled := false

	r.Before(func(ctx context.Context) (context.Context, error) {
		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate")
	})
	router.GET(r, "/echo", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		handlerCalled = true
		return &echoResponse{}, nil
	})

	req := httptest.NewRequest(http.MethodGet, "/echo", nil)
	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, req)

	require.False(t, handlerCalled)
	require.JSONEq(t, `{"code":100005,"error":"You need to authenticate"}`, w.Body.String())
}

func TestRouter_branchIsolation(t *testing.T) {
	r := newTestRouter()
	router.GET(r, "/public", echo)

	branch := r.Branch()
	branch.Before(func(ctx context.Context) (context.Context, error) {
		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate")
	})
	router.GET(branch, "/private", echo)

	// The branch middleware does not apply to the parent's routes.
	req := httptest.NewRequest(http.MethodGet, "/public?name=alice", nil)
	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, req)
	require.JSONEq(t, `{"code":0,"data":{"name":"alice"}}`, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/private", nil)
	w = httptest.NewRecorder()
	r.Handler().ServeHTTP(w, req)
	require.JSONEq(t, `{"code":100005,"error":"You need to authenticate"}`, w.Body.String())
}

func TestRouter_closerSeesError(t *testing.T) {
	r := newTestRouter()

	var closerErr error
	r.AddCloser(func(ctx context.Context) {
		closerErr = router.Error(ctx)
	})

	router.GET(r, "/fail", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return nil, errorx.New(errorx.NotFound, "Not found giveaway")
	})

	req := httptest.NewRequest(http.MethodGet, "/fail", nil)
	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, req)

	require.Equal(t, errorx.New(errorx.NotFound, "Not found giveaway"), closerErr)
}
