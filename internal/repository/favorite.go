package repository

import (
	"context"

	"github.com/agora-lab/backend/internal/entity"
	"github.com/agora-lab/backend/pkg/xcontext"
)

type FavoriteRepository interface {
	Get(ctx context.Context, userID, topicID string) (*entity.FavoriteTopic, error)
	Create(ctx context.Context, e *entity.FavoriteTopic) error
	Delete(ctx context.Context, userID, topicID string) error
	GetListByUserID(ctx context.Context, userID string) ([]entity.FavoriteTopic, error)
	CountByTopicID(ctx context.Context, topicID string) (int64, error)
}

type favoriteRepository struct{}

func NewFavoriteRepository() *favoriteRepository {
	return &favoriteRepository{}
}

func (r *favoriteRepository) Get(ctx context.Context, userID, topicID string) (*entity.FavoriteTopic, error) {
	var result entity.FavoriteTopic
	err := xcontext.DB(ctx).
		Where("user_id=? AND topic_id=?", userID, topicID).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *favoriteRepository) Create(ctx context.Context, e *entity.FavoriteTopic) error {
	return xcontext.DB(ctx).Create(e).Error
}

func (r *favoriteRepository) Delete(ctx context.Context, userID, topicID string) error {
	return xcontext.DB(ctx).
		Where("user_id=? AND topic_id=?", userID, topicID).
		Delete(&entity.FavoriteTopic{}).Error
}

func (r *favoriteRepository) GetListByUserID(ctx context.Context, userID string) ([]entity.FavoriteTopic, error) {
	var result []entity.FavoriteTopic
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("created_at DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *favoriteRepository) CountByTopicID(ctx context.Context, topicID string) (int64, error) {
	var result int64
	err := xcontext.DB(ctx).
		Model(&entity.FavoriteTopic{}).
		Where("topic_id=?", topicID).
		Count(&result).Error
	if err != nil {
		return 0, err
	}

	return result, nil
}
