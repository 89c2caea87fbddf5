package xcontext

import (
	"context"
	"net/http"

	"github.com/agora-lab/backend/config"
	"github.com/agora-lab/backend/internal/model"
	"github.com/agora-lab/backend/pkg/authenticator"
	"github.com/agora-lab/backend/pkg/logger"
	"github.com/agora-lab/backend/pkg/session"
	"gorm.io/gorm"
)

type (
	configsKey      struct{}
	loggerKey       struct{}
	dbKey           struct{}
	txKey           struct{}
	tokenEngineKey  struct{}
	sessionStoreKey struct{}
	userIDKey       struct{}
	httpRequestKey  struct{}
	httpWriterKey   struct{}
	errorKey        struct{}
	responseKey     struct{}
)

func WithConfigs(ctx context.Context, cfg config.Configs) context.Context {
	return context.WithValue(ctx, configsKey{}, cfg)
}

func Configs(ctx context.Context) config.Configs {
	return ctx.Value(configsKey{}).(config.Configs)
}

func WithLogger(ctx context.Context, l logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

func Logger(ctx context.Context) logger.Logger {
	return ctx.Value(loggerKey{}).(logger.Logger)
}

func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, dbKey{}, db)
}

// DB returns the transaction began by WithDBTransaction if one is in
// flight, otherwise the root gorm handle.
func DB(ctx context.Context) *gorm.DB {
	if tx := ctx.Value(txKey{}); tx != nil {
		return tx.(*gorm.DB)
	}

	return ctx.Value(dbKey{}).(*gorm.DB)
}

// WithDBTransaction runs f inside a database transaction. Every call of
// DB with the context given to f returns the transaction handle.
func WithDBTransaction(ctx context.Context, f func(context.Context) error) error {
	return DB(ctx).Transaction(func(tx *gorm.DB) error {
		return f(context.WithValue(ctx, txKey{}, tx))
	})
}

func WithTokenEngine(ctx context.Context, engine authenticator.TokenEngine[model.AccessToken]) context.Context {
	return context.WithValue(ctx, tokenEngineKey{}, engine)
}

func TokenEngine(ctx context.Context) authenticator.TokenEngine[model.AccessToken] {
	return ctx.Value(tokenEngineKey{}).(authenticator.TokenEngine[model.AccessToken])
}

func WithSessionStore(ctx context.Context, store *session.Store) context.Context {
	return context.WithValue(ctx, sessionStoreKey{}, store)
}

func SessionStore(ctx context.Context) *session.Store {
	return ctx.Value(sessionStoreKey{}).(*session.Store)
}

func WithRequestUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey{}, id)
}

func RequestUserID(ctx context.Context) string {
	if id := ctx.Value(userIDKey{}); id != nil {
		return id.(string)
	}

	return ""
}

func WithHTTPRequest(ctx context.Context, r *http.Request) context.Context {
	return context.WithValue(ctx, httpRequestKey{}, r)
}

func HTTPRequest(ctx context.Context) *http.Request {
	if r := ctx.Value(httpRequestKey{}); r != nil {
		return r.(*http.Request)
	}

	return nil
}

func WithHTTPWriter(ctx context.Context, w http.ResponseWriter) context.Context {
	return context.WithValue(ctx, httpWriterKey{}, w)
}

func HTTPWriter(ctx context.Context) http.ResponseWriter {
	if w := ctx.Value(httpWriterKey{}); w != nil {
		return w.(http.ResponseWriter)
	}

	return nil
}
