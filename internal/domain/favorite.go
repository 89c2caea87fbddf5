package domain

import (
	"context"
	"errors"

	"github.com/agora-lab/backend/internal/entity"
	"github.com/agora-lab/backend/internal/model"
	"github.com/agora-lab/backend/internal/repository"
	"github.com/agora-lab/backend/pkg/errorx"
	"github.com/agora-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type FavoriteDomain interface {
	Favorite(ctx context.Context, req *model.FavoriteTopicRequest) (*model.FavoriteTopicResponse, error)
	Unfavorite(ctx context.Context, req *model.UnfavoriteTopicRequest) (*model.UnfavoriteTopicResponse, error)
	GetFavorites(ctx context.Context, req *model.GetFavoritesRequest) (*model.GetFavoritesResponse, error)
}

type favoriteDomain struct {
	favoriteRepo repository.FavoriteRepository
	topicRepo    repository.TopicRepository
	userRepo     repository.UserRepository
	nodeRepo     repository.NodeRepository
}

func NewFavoriteDomain(
	favoriteRepo repository.FavoriteRepository,
	topicRepo repository.TopicRepository,
	userRepo repository.UserRepository,
	nodeRepo repository.NodeRepository,
) FavoriteDomain {
	return &favoriteDomain{
		favoriteRepo: favoriteRepo,
		topicRepo:    topicRepo,
		userRepo:     userRepo,
		nodeRepo:     nodeRepo,
	}
}

func (d *favoriteDomain) Favorite(ctx context.Context, req *model.FavoriteTopicRequest) (*model.FavoriteTopicResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	if _, err := d.topicRepo.GetByID(ctx, req.TopicID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found topic")
		}

		xcontext.Logger(ctx).Errorf("Cannot get topic: %v", err)
		return nil, errorx.Unknown
	}

	_, err := d.favoriteRepo.Get(ctx, userID, req.TopicID)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "You have already favorited this topic")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get the favorite edge: %v", err)
		return nil, errorx.Unknown
	}

	err = d.favoriteRepo.Create(ctx, &entity.FavoriteTopic{
		UserID:  userID,
		TopicID: req.TopicID,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create the favorite edge: %v", err)
		return nil, errorx.Unknown
	}

	return &model.FavoriteTopicResponse{}, nil
}

// Unfavorite succeeds even when no mark exists.
func (d *favoriteDomain) Unfavorite(ctx context.Context, req *model.UnfavoriteTopicRequest) (*model.UnfavoriteTopicResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if err := d.favoriteRepo.Delete(ctx, userID, req.TopicID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete the favorite edge: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UnfavoriteTopicResponse{}, nil
}

func (d *favoriteDomain) GetFavorites(ctx context.Context, req *model.GetFavoritesRequest) (*model.GetFavoritesResponse, error) {
	edges, err := d.favoriteRepo.GetListByUserID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get favorites: %v", err)
		return nil, errorx.Unknown
	}

	ids := make([]string, 0, len(edges))
	for _, edge := range edges {
		ids = append(ids, edge.TopicID)
	}

	topics, err := d.topicRepo.GetByIDs(ctx, ids)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get topics: %v", err)
		return nil, errorx.Unknown
	}

	clientTopics, err := convertTopics(ctx, d.userRepo, d.nodeRepo, topics)
	if err != nil {
		return nil, err
	}

	return &model.GetFavoritesResponse{Topics: clientTopics}, nil
}
