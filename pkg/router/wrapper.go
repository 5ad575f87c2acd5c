package router

import (
	"context"
	"encoding/json"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/drawlab-gg/backend/pkg/errorx"
	"github.com/drawlab-gg/backend/pkg/xcontext"
)

func wrapHandler[Request, Response any](
	router *Router,
	method string,
	handler HandlerFunc[Request, Response],
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		ctx := r.Context()
		ctx = xcontext.WithConfigs(ctx, router.cfg)
		ctx = xcontext.WithLogger(ctx, router.logger)
		ctx = xcontext.WithDB(ctx, router.db)
		ctx = withRequest(ctx, r)
		ctx = withErrorHolder(ctx)

		defer func() {
			for _, closer := range router.closers {
				closer(ctx)
			}
		}()

		for _, middleware := range router.befores {
			newCtx, err := middleware(ctx)
			if err != nil {
				setError(ctx, err)
				writeResponse(ctx, w, newErrorResponse(err))
				return
			}

			ctx = newCtx
		}

		var req Request
		var err error
		switch method {
		case http.MethodGet:
			err = bindQuery(r, &req)
		case http.MethodPost:
			err = json.NewDecoder(r.Body).Decode(&req)
		}
		if err != nil {
			err = errorx.New(errorx.BadRequest, "Cannot bind the request")
			setError(ctx, err)
			writeResponse(ctx, w, newErrorResponse(err))
			return
		}

		resp, err := handler(ctx, &req)
		if err != nil {
			setError(ctx, err)
			writeResponse(ctx, w, newErrorResponse(err))
			return
		}

		writeResponse(ctx, w, newResponse(resp))
	}
}

// bindQuery fills string and integer fields of req from URL query
// parameters, matched by the field's json tag.
func bindQuery(r *http.Request, req any) error {
	values := r.URL.Query()
	structValue := reflect.ValueOf(req).Elem()
	structType := structValue.Type()

	for i := 0; i < structType.NumField(); i++ {
		name, _, _ := strings.Cut(structType.Field(i).Tag.Get("json"), ",")
		if name == "" || name == "-" || !values.Has(name) {
			continue
		}

		field := structValue.Field(i)
		value := values.Get(name)
		switch field.Kind() {
		case reflect.String:
			field.SetString(value)

		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			n, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return err
			}
			field.SetInt(n)

		case reflect.Bool:
			b, err := strconv.ParseBool(value)
			if err != nil {
				return err
			}
			field.SetBool(b)
		}
	}

	return nil
}

func writeResponse(ctx context.Context, w http.ResponseWriter, resp response) {
	if err := WriteJson(w, resp); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot write the response: %v", err)
	}
}
