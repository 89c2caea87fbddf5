package main

import (
	"fmt"
	"net/http"

	"github.com/agora-lab/backend/internal/middleware"
	"github.com/agora-lab/backend/pkg/router"

	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(ct *cli.Context) error {
	s.loadConfig(ct)
	s.loadLogger()
	s.loadDatabase()
	s.loadRedis()
	s.loadStorage()
	s.loadMailer()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%s", s.configs.ApiServer.Port),
		Handler: s.router.Handler(),
	}

	s.logger.Infof("Starting server on port: %s", s.configs.ApiServer.Port)
	if err := s.server.ListenAndServe(); err != nil {
		panic(err)
	}

	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.db, *s.configs, s.logger)
	s.router.Before(middleware.ParseAccessToken())
	s.router.AddCloser(middleware.Logger())

	// Auth API
	authRouter := s.router.Branch()
	authRouter.After(middleware.HandleSetAccessToken())
	authRouter.After(middleware.HandleSaveSession())
	{
		router.POST(authRouter, "/register", s.authDomain.Register)
		router.POST(authRouter, "/login", s.authDomain.Login)
		router.GET(authRouter, "/verifyEmail", s.authDomain.VerifyEmail)
		router.POST(authRouter, "/requestPasswordReset", s.authDomain.RequestPasswordReset)
		router.GET(authRouter, "/verifyPasswordReset", s.authDomain.VerifyPasswordReset)
		router.POST(authRouter, "/resetPassword", s.authDomain.ResetPassword)
	}

	// These following APIs need authentication.
	authedRouter := s.router.Branch()
	authedRouter.Before(middleware.Authenticate())
	{
		// Auth API
		router.POST(authedRouter, "/requestVerification", s.authDomain.RequestVerification)
		router.POST(authedRouter, "/changePassword", s.authDomain.ChangePassword)

		// User API
		router.GET(authedRouter, "/getMe", s.userDomain.GetMe)
		router.POST(authedRouter, "/updateProfile", s.userDomain.UpdateProfile)
		router.POST(authedRouter, "/follow", s.userDomain.Follow)
		router.POST(authedRouter, "/unfollow", s.userDomain.Unfollow)
		router.GET(authedRouter, "/getFollowing", s.userDomain.GetFollowing)
		router.POST(authedRouter, "/uploadAvatar", s.userDomain.UploadAvatar)
		router.POST(authedRouter, "/deleteAvatar", s.userDomain.DeleteAvatar)

		// Topic API
		router.POST(authedRouter, "/createTopic", s.topicDomain.CreateTopic)
		router.POST(authedRouter, "/updateTopic", s.topicDomain.UpdateTopic)

		// Comment API
		router.POST(authedRouter, "/createComment", s.commentDomain.CreateComment)

		// Notice API
		router.GET(authedRouter, "/getNotices", s.noticeDomain.GetNotices)
		router.POST(authedRouter, "/markAllNoticesRead", s.noticeDomain.MarkAllRead)
		router.POST(authedRouter, "/deleteNotice", s.noticeDomain.DeleteNotice)

		// Favorite API
		router.POST(authedRouter, "/favoriteTopic", s.favoriteDomain.Favorite)
		router.POST(authedRouter, "/unfavoriteTopic", s.favoriteDomain.Unfavorite)
		router.GET(authedRouter, "/getFavorites", s.favoriteDomain.GetFavorites)
	}

	// These following APIs need the admin role.
	adminRouter := s.router.Branch()
	adminRouter.Before(middleware.OnlyAdmin(s.userRepo))
	{
		router.POST(adminRouter, "/createSite", s.siteDomain.CreateSite)
	}

	// Public API.
	router.GET(s.router, "/getUser", s.userDomain.GetUser)
	router.GET(s.router, "/getUserTopics", s.userDomain.GetUserTopics)
	router.GET(s.router, "/getUserComments", s.userDomain.GetUserComments)
	router.GET(s.router, "/getTopic", s.topicDomain.GetTopic)
	router.GET(s.router, "/getRecentTopics", s.topicDomain.GetRecentTopics)
	router.GET(s.router, "/getTopicsByNode", s.topicDomain.GetTopicsByNode)
	router.GET(s.router, "/getLeaderboard", s.statisticDomain.GetLeaderboard)
	router.GET(s.router, "/getUserCount", s.statisticDomain.GetUserCount)
	router.GET(s.router, "/getNodeIndex", s.statisticDomain.GetNodeIndex)
	router.GET(s.router, "/getHotTopics", s.statisticDomain.GetHotTopics)
	router.GET(s.router, "/getSiteDirectory", s.siteDomain.GetSiteDirectory)
}
