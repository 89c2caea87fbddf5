package router

import (
	"context"
	"net/http"

	"github.com/agora-lab/backend/pkg/errorx"
	"github.com/agora-lab/backend/pkg/xcontext"
)

func wrapHandler[Request, Response any](
	router *Router,
	method string,
	handler HandlerFunc[Request, Response],
) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		ctx := xcontext.WithHTTPRequest(router.baseCtx, r)
		ctx = xcontext.WithHTTPWriter(ctx, w)

		ctx = func(ctx context.Context) context.Context {
			for _, before := range router.befores {
				newCtx, err := before(ctx)
				if err != nil {
					return xcontext.WithError(ctx, err)
				}
				if newCtx != nil {
					ctx = newCtx
				}
			}

			var req Request
			if err := bind(r, method, &req); err != nil {
				xcontext.Logger(ctx).Debugf("Cannot bind the request: %v", err)
				return xcontext.WithError(ctx,
					errorx.New(errorx.BadRequest, "Invalid request"))
			}

			resp, err := handler(ctx, &req)
			if err != nil {
				return xcontext.WithError(ctx, err)
			}

			ctx = xcontext.WithResponse(ctx, resp)
			for _, after := range router.afters {
				newCtx, err := after(ctx)
				if err != nil {
					return xcontext.WithError(ctx, err)
				}
				if newCtx != nil {
					ctx = newCtx
				}
			}

			return ctx
		}(ctx)

		handleResponse(ctx)
		for _, closer := range router.closers {
			closer(ctx)
		}
	})
}
