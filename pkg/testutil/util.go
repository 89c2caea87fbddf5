package testutil

import (
	"context"
	"time"

	"github.com/agora-lab/backend/config"
	"github.com/agora-lab/backend/internal/entity"
	"github.com/agora-lab/backend/internal/model"
	"github.com/agora-lab/backend/pkg/authenticator"
	"github.com/agora-lab/backend/pkg/logger"
	"github.com/agora-lab/backend/pkg/session"
	"github.com/agora-lab/backend/pkg/xcontext"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	cfg := config.Configs{
		ApiServer: config.ServerConfigs{
			SiteURL:      "http://localhost:8080",
			MaxLimit:     50,
			DefaultLimit: 20,
		},
		Auth: config.AuthConfigs{
			TokenSecret: "secret",
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: time.Minute,
			},
		},
		Session: config.SessionConfigs{
			Secret: "session-secret",
			Name:   "test_session",
		},
		File: config.FileConfigs{
			MaxSize: 2 << 20,
		},
		Forum: config.ForumConfigs{
			TopicsPerPage:     20,
			CommentsPerPage:   30,
			LeaderboardSize:   20,
			HotTopicLimit:     10,
			ListingCacheTTL:   time.Minute,
			SiteCacheTTL:      2 * time.Minute,
			DuplicateWindow:   5 * time.Second,
			VerifyEmailEvery:  2 * time.Minute,
			ResetRequestEvery: time.Minute,
			ResetWindowDays:   3,
		},
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithTokenEngine(ctx,
		authenticator.NewTokenEngine[model.AccessToken](cfg.Auth.TokenSecret, cfg.Auth.AccessToken))
	ctx = xcontext.WithSessionStore(ctx,
		session.NewCookieStore(cfg.Session.Name, []byte(cfg.Session.Secret)))
	ctx = xcontext.WithDB(ctx, db)

	if err := entity.MigrateTable(db); err != nil {
		panic(err)
	}

	return ctx
}

func MockContextWithUserID(userID string) context.Context {
	return xcontext.WithRequestUserID(MockContext(), userID)
}
