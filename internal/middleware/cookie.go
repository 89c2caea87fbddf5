package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/agora-lab/backend/pkg/router"
	"github.com/agora-lab/backend/pkg/xcontext"
)

// AccessTokenResponse is implemented by responses carrying a freshly
// issued access token which should also be set as a cookie.
type AccessTokenResponse interface {
	AccessTokenInfo() string
}

func HandleSetAccessToken() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		tokenResp, ok := xcontext.Response(ctx).(AccessTokenResponse)
		if !ok {
			return nil, nil
		}

		cfg := xcontext.Configs(ctx)
		http.SetCookie(xcontext.HTTPWriter(ctx), &http.Cookie{
			Name:     cfg.Auth.AccessToken.Name,
			Value:    tokenResp.AccessTokenInfo(),
			Path:     "/",
			Expires:  time.Now().Add(cfg.Auth.AccessToken.Expiration),
			HttpOnly: false,
		})

		return nil, nil
	}
}
