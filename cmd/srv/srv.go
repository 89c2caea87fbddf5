package main

import (
	"context"
	"net/http"

	"github.com/agora-lab/backend/config"
	"github.com/agora-lab/backend/internal/domain"
	"github.com/agora-lab/backend/internal/repository"
	"github.com/agora-lab/backend/pkg/logger"
	"github.com/agora-lab/backend/pkg/mailer"
	"github.com/agora-lab/backend/pkg/router"
	"github.com/agora-lab/backend/pkg/storage"
	"github.com/agora-lab/backend/pkg/xcontext"
	"github.com/agora-lab/backend/pkg/xredis"
	"github.com/urfave/cli/v2"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	app *cli.App
	ctx context.Context

	configs     *config.Configs
	logger      logger.Logger
	db          *gorm.DB
	redisClient xredis.Client
	storage     storage.Storage
	mailer      mailer.Mailer

	userRepo         repository.UserRepository
	followerRepo     repository.FollowerRepository
	categoryRepo     repository.CategoryRepository
	nodeRepo         repository.NodeRepository
	topicRepo        repository.TopicRepository
	commentRepo      repository.CommentRepository
	noticeRepo       repository.NoticeRepository
	favoriteRepo     repository.FavoriteRepository
	verificationRepo repository.EmailVerificationRepository
	resetRepo        repository.PasswordResetRepository
	siteRepo         repository.SiteRepository

	authDomain      domain.AuthDomain
	userDomain      domain.UserDomain
	topicDomain     domain.TopicDomain
	commentDomain   domain.CommentDomain
	noticeDomain    domain.NoticeDomain
	favoriteDomain  domain.FavoriteDomain
	statisticDomain domain.StatisticDomain
	siteDomain      domain.SiteDomain

	router *router.Router
	server *http.Server
}

func (s *srv) loadConfig(ct *cli.Context) {
	cfg, err := config.Load(ct.String("config"))
	if err != nil {
		panic(err)
	}

	s.configs = &cfg
	s.ctx = xcontext.WithConfigs(context.Background(), cfg)
}

func (s *srv) loadLogger() {
	level := logger.INFO
	if s.configs.Env == "local" {
		level = logger.DEBUG
	}

	s.logger = logger.NewLogger(level)
	s.ctx = xcontext.WithLogger(s.ctx, s.logger)
}

func (s *srv) loadDatabase() {
	var err error
	s.db, err = gorm.Open(mysql.New(mysql.Config{
		DSN:                      s.configs.Database.ConnectionString(),
		DefaultStringSize:        256,
		DisableDatetimePrecision: true,
		DontSupportRenameIndex:   true,
		DontSupportRenameColumn:  true,
	}), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithDB(s.ctx, s.db)
}

func (s *srv) loadRedis() {
	client, err := xredis.NewClient(s.ctx)
	if err != nil {
		s.logger.Warnf("Cannot connect to redis, caching is disabled: %v", err)
		return
	}

	s.redisClient = client
}

func (s *srv) loadStorage() {
	s.storage = storage.NewS3Storage(s.configs.Storage)
}

func (s *srv) loadMailer() {
	s.mailer = mailer.NewSMTPMailer(s.configs.Email)
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.followerRepo = repository.NewFollowerRepository()
	s.categoryRepo = repository.NewCategoryRepository()
	s.nodeRepo = repository.NewNodeRepository()
	s.topicRepo = repository.NewTopicRepository()
	s.commentRepo = repository.NewCommentRepository()
	s.noticeRepo = repository.NewNoticeRepository()
	s.favoriteRepo = repository.NewFavoriteRepository()
	s.verificationRepo = repository.NewEmailVerificationRepository()
	s.resetRepo = repository.NewPasswordResetRepository()
	s.siteRepo = repository.NewSiteRepository()
}

func (s *srv) loadDomains() {
	s.authDomain = domain.NewAuthDomain(s.userRepo, s.verificationRepo, s.resetRepo, s.mailer)
	s.userDomain = domain.NewUserDomain(
		s.userRepo, s.followerRepo, s.topicRepo, s.commentRepo, s.nodeRepo, s.storage)
	s.topicDomain = domain.NewTopicDomain(
		s.topicRepo, s.commentRepo, s.nodeRepo, s.userRepo, s.favoriteRepo)
	s.commentDomain = domain.NewCommentDomain(
		s.commentRepo, s.topicRepo, s.userRepo, s.noticeRepo)
	s.noticeDomain = domain.NewNoticeDomain(s.noticeRepo, s.userRepo)
	s.favoriteDomain = domain.NewFavoriteDomain(
		s.favoriteRepo, s.topicRepo, s.userRepo, s.nodeRepo)
	s.statisticDomain = domain.NewStatisticDomain(
		s.userRepo, s.topicRepo, s.commentRepo, s.nodeRepo, s.categoryRepo, s.redisClient)
	s.siteDomain = domain.NewSiteDomain(s.siteRepo, s.redisClient)
}
