package middleware

import (
	"context"

	"github.com/agora-lab/backend/pkg/router"
	"github.com/agora-lab/backend/pkg/xcontext"
)

// SessionResponse is implemented by responses which need to persist
// values into the cookie session. A nil value removes the key.
type SessionResponse interface {
	SessionInfo() map[string]any
}

func HandleSaveSession() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		sessionResp, ok := xcontext.Response(ctx).(SessionResponse)
		if !ok {
			return nil, nil
		}

		sessionInfo := sessionResp.SessionInfo()
		if sessionInfo == nil {
			return nil, nil
		}

		r := xcontext.HTTPRequest(ctx)
		session, err := xcontext.SessionStore(ctx).Get(r)
		if err != nil {
			return nil, err
		}

		for k, v := range sessionInfo {
			if v == nil {
				delete(session.Values, k)
			} else {
				session.Values[k] = v
			}
		}

		return nil, xcontext.SessionStore(ctx).Save(r, xcontext.HTTPWriter(ctx), session)
	}
}
