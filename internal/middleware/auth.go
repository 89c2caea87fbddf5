package middleware

import (
	"context"
	"strings"

	"github.com/agora-lab/backend/internal/repository"
	"github.com/agora-lab/backend/pkg/errorx"
	"github.com/agora-lab/backend/pkg/router"
	"github.com/agora-lab/backend/pkg/xcontext"
)

// ParseAccessToken resolves the requesting user from the Authorization
// header or the access token cookie. An invalid or missing token leaves
// the request anonymous, it never aborts here.
func ParseAccessToken() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		token := extractAccessToken(ctx)
		if token == "" {
			return nil, nil
		}

		info, err := xcontext.TokenEngine(ctx).Verify(token)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Cannot verify access token: %v", err)
			return nil, nil
		}

		return xcontext.WithRequestUserID(ctx, info.ID), nil
	}
}

// Authenticate rejects anonymous requests.
func Authenticate() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		if xcontext.RequestUserID(ctx) == "" {
			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		return nil, nil
	}
}

// OnlyAdmin rejects requests from users without the admin flag. It must
// run after ParseAccessToken.
func OnlyAdmin(userRepo repository.UserRepository) router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		requestUserID := xcontext.RequestUserID(ctx)
		if requestUserID == "" {
			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		user, err := userRepo.GetByID(ctx, requestUserID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
			return nil, errorx.Unknown
		}

		if !user.IsAdmin {
			return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
		}

		return nil, nil
	}
}

func extractAccessToken(ctx context.Context) string {
	r := xcontext.HTTPRequest(ctx)
	if r == nil {
		return ""
	}

	authorization := r.Header.Get("Authorization")
	auth, token, found := strings.Cut(authorization, " ")
	if found {
		if auth == "Bearer" {
			return token
		}
		return ""
	}

	cookie, err := r.Cookie(xcontext.Configs(ctx).Auth.AccessToken.Name)
	if err != nil {
		return ""
	}

	return cookie.Value
}
