package domain

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/agora-lab/backend/internal/entity"
	"github.com/agora-lab/backend/internal/model"
	"github.com/agora-lab/backend/internal/repository"
	"github.com/agora-lab/backend/pkg/errorx"
	"github.com/agora-lab/backend/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TopicDomain interface {
	CreateTopic(ctx context.Context, req *model.CreateTopicRequest) (*model.CreateTopicResponse, error)
	UpdateTopic(ctx context.Context, req *model.UpdateTopicRequest) (*model.UpdateTopicResponse, error)
	GetTopic(ctx context.Context, req *model.GetTopicRequest) (*model.GetTopicResponse, error)
	GetRecentTopics(ctx context.Context, req *model.GetRecentTopicsRequest) (*model.GetRecentTopicsResponse, error)
	GetTopicsByNode(ctx context.Context, req *model.GetTopicsByNodeRequest) (*model.GetTopicsByNodeResponse, error)
}

type topicDomain struct {
	topicRepo    repository.TopicRepository
	commentRepo  repository.CommentRepository
	nodeRepo     repository.NodeRepository
	userRepo     repository.UserRepository
	favoriteRepo repository.FavoriteRepository
}

func NewTopicDomain(
	topicRepo repository.TopicRepository,
	commentRepo repository.CommentRepository,
	nodeRepo repository.NodeRepository,
	userRepo repository.UserRepository,
	favoriteRepo repository.FavoriteRepository,
) TopicDomain {
	return &topicDomain{
		topicRepo:    topicRepo,
		commentRepo:  commentRepo,
		nodeRepo:     nodeRepo,
		userRepo:     userRepo,
		favoriteRepo: favoriteRepo,
	}
}

func (d *topicDomain) CreateTopic(ctx context.Context, req *model.CreateTopicRequest) (*model.CreateTopicResponse, error) {
	title := strings.TrimSpace(req.Title)
	if err := checkTitle(title); err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Content) == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty content")
	}

	node, err := d.nodeRepo.GetBySlug(ctx, req.NodeSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found node")
		}

		xcontext.Logger(ctx).Errorf("Cannot get node: %v", err)
		return nil, errorx.Unknown
	}

	authorID := xcontext.RequestUserID(ctx)
	now := time.Now()

	latest, err := d.topicRepo.GetLatestByAuthorID(ctx, authorID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get the latest topic: %v", err)
		return nil, errorx.Unknown
	}

	window := xcontext.Configs(ctx).Forum.DuplicateWindow
	if err == nil && latest.Title == title && now.Sub(latest.CreatedAt) < window {
		return nil, errorx.New(errorx.AlreadyExists, "You have just posted this topic")
	}

	// A fresh topic counts its author as the last replier.
	topic := &entity.Topic{
		Base:          entity.Base{ID: uuid.NewString()},
		Title:         title,
		Content:       req.Content,
		NodeID:        node.ID,
		AuthorID:      authorID,
		LastReplierID: sql.NullString{String: authorID, Valid: true},
	}

	err = xcontext.WithDBTransaction(ctx, func(ctx context.Context) error {
		if err := d.topicRepo.Create(ctx, topic); err != nil {
			return err
		}

		if err := d.userRepo.IncreaseTopicCount(ctx, authorID); err != nil {
			return err
		}

		return d.nodeRepo.IncreaseTopicCount(ctx, node.ID)
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create topic: %v", err)
		return nil, errorx.Unknown
	}

	author, err := d.userRepo.GetByID(ctx, authorID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get the author: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateTopicResponse{
		Topic: model.ConvertTopic(topic, node, author, author),
	}, nil
}

func (d *topicDomain) UpdateTopic(ctx context.Context, req *model.UpdateTopicRequest) (*model.UpdateTopicResponse, error) {
	topic, err := d.topicRepo.GetByID(ctx, req.TopicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found topic")
		}

		xcontext.Logger(ctx).Errorf("Cannot get topic: %v", err)
		return nil, errorx.Unknown
	}

	requestUserID := xcontext.RequestUserID(ctx)
	if topic.AuthorID != requestUserID {
		user, err := d.userRepo.GetByID(ctx, requestUserID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
			return nil, errorx.Unknown
		}

		if !user.IsAdmin {
			return nil, errorx.New(errorx.PermissionDenied, "Only the author can update this topic")
		}
	}

	title := strings.TrimSpace(req.Title)
	if err := checkTitle(title); err != nil {
		return nil, err
	}

	err = d.topicRepo.UpdateByID(ctx, topic.ID, map[string]any{
		"title":   title,
		"content": req.Content,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update topic: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateTopicResponse{}, nil
}

func (d *topicDomain) GetTopic(ctx context.Context, req *model.GetTopicRequest) (*model.GetTopicResponse, error) {
	topic, err := d.topicRepo.GetByID(ctx, req.TopicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found topic")
		}

		xcontext.Logger(ctx).Errorf("Cannot get topic: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.topicRepo.IncreaseViewCount(ctx, topic.ID); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot increase the view counter: %v", err)
	}

	node, err := d.nodeRepo.GetByID(ctx, topic.NodeID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get node: %v", err)
		return nil, errorx.Unknown
	}

	limit := req.Limit
	if limit <= 0 {
		limit = xcontext.Configs(ctx).Forum.CommentsPerPage
	}

	comments, err := d.commentRepo.GetList(ctx, repository.GetListCommentFilter{
		TopicID: topic.ID,
		Offset:  req.Offset,
		Limit:   limit,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get comments: %v", err)
		return nil, errorx.Unknown
	}

	userIDSet := map[string]struct{}{topic.AuthorID: {}}
	if topic.LastReplierID.Valid {
		userIDSet[topic.LastReplierID.String] = struct{}{}
	}
	for _, comment := range comments {
		userIDSet[comment.AuthorID] = struct{}{}
	}

	userIDs := make([]string, 0, len(userIDSet))
	for id := range userIDSet {
		userIDs = append(userIDs, id)
	}

	users, err := d.userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get users: %v", err)
		return nil, errorx.Unknown
	}

	userByID := map[string]entity.User{}
	for _, user := range users {
		userByID[user.ID] = user
	}

	clientComments := make([]model.Comment, 0, len(comments))
	for _, comment := range comments {
		var author *entity.User
		if u, ok := userByID[comment.AuthorID]; ok {
			author = &u
		}
		clientComments = append(clientComments, model.ConvertComment(&comment, author))
	}

	numFavorites, err := d.favoriteRepo.CountByTopicID(ctx, topic.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count favorites: %v", err)
		return nil, errorx.Unknown
	}

	isFavorited := false
	if requestUserID := xcontext.RequestUserID(ctx); requestUserID != "" {
		_, err := d.favoriteRepo.Get(ctx, requestUserID, topic.ID)
		if err == nil {
			isFavorited = true
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get the favorite edge: %v", err)
			return nil, errorx.Unknown
		}
	}

	var author *entity.User
	if u, ok := userByID[topic.AuthorID]; ok {
		author = &u
	}

	var lastReplier *entity.User
	if topic.LastReplierID.Valid {
		if u, ok := userByID[topic.LastReplierID.String]; ok {
			lastReplier = &u
		}
	}

	return &model.GetTopicResponse{
		Topic:        model.ConvertTopic(topic, node, author, lastReplier),
		Comments:     clientComments,
		NumFavorites: numFavorites,
		IsFavorited:  isFavorited,
	}, nil
}

func (d *topicDomain) GetRecentTopics(ctx context.Context, req *model.GetRecentTopicsRequest) (*model.GetRecentTopicsResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = xcontext.Configs(ctx).Forum.TopicsPerPage
	}

	topics, err := d.topicRepo.GetList(ctx, repository.GetListTopicFilter{
		Offset: req.Offset,
		Limit:  limit,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get topics: %v", err)
		return nil, errorx.Unknown
	}

	clientTopics, err := convertTopics(ctx, d.userRepo, d.nodeRepo, topics)
	if err != nil {
		return nil, err
	}

	return &model.GetRecentTopicsResponse{Topics: clientTopics}, nil
}

func (d *topicDomain) GetTopicsByNode(ctx context.Context, req *model.GetTopicsByNodeRequest) (*model.GetTopicsByNodeResponse, error) {
	node, err := d.nodeRepo.GetBySlug(ctx, req.NodeSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found node")
		}

		xcontext.Logger(ctx).Errorf("Cannot get node: %v", err)
		return nil, errorx.Unknown
	}

	limit := req.Limit
	if limit <= 0 {
		limit = xcontext.Configs(ctx).Forum.TopicsPerPage
	}

	topics, err := d.topicRepo.GetList(ctx, repository.GetListTopicFilter{
		NodeID: node.ID,
		Offset: req.Offset,
		Limit:  limit,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get topics: %v", err)
		return nil, errorx.Unknown
	}

	clientTopics, err := convertTopics(ctx, d.userRepo, d.nodeRepo, topics)
	if err != nil {
		return nil, err
	}

	return &model.GetTopicsByNodeResponse{
		Node:   model.ConvertNode(node),
		Topics: clientTopics,
	}, nil
}

func checkTitle(title string) error {
	if len([]rune(title)) < 3 || len([]rune(title)) > 100 {
		return errorx.New(errorx.BadRequest, "Title must be from 3 to 100 characters")
	}

	return nil
}
