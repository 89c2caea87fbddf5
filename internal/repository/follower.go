package repository

import (
	"context"

	"github.com/agora-lab/backend/internal/entity"
	"github.com/agora-lab/backend/pkg/xcontext"
)

type FollowerRepository interface {
	Get(ctx context.Context, userID, followerID string) (*entity.Follower, error)
	Create(ctx context.Context, data *entity.Follower) error
	Delete(ctx context.Context, userID, followerID string) error
	GetListByFollowerID(ctx context.Context, followerID string) ([]entity.Follower, error)
	Count(ctx context.Context, userID string) (int64, error)
}

type followerRepository struct{}

func NewFollowerRepository() *followerRepository {
	return &followerRepository{}
}

func (r *followerRepository) Get(ctx context.Context, userID, followerID string) (*entity.Follower, error) {
	var result entity.Follower
	err := xcontext.DB(ctx).
		Where("user_id=? AND follower_id=?", userID, followerID).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *followerRepository) Create(ctx context.Context, data *entity.Follower) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *followerRepository) Delete(ctx context.Context, userID, followerID string) error {
	return xcontext.DB(ctx).
		Where("user_id=? AND follower_id=?", userID, followerID).
		Delete(&entity.Follower{}).Error
}

func (r *followerRepository) GetListByFollowerID(ctx context.Context, followerID string) ([]entity.Follower, error) {
	var result []entity.Follower
	err := xcontext.DB(ctx).
		Where("follower_id=?", followerID).
		Order("created_at DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *followerRepository) Count(ctx context.Context, userID string) (int64, error) {
	var result int64
	err := xcontext.DB(ctx).
		Model(&entity.Follower{}).
		Where("user_id=?", userID).
		Count(&result).Error
	if err != nil {
		return 0, err
	}

	return result, nil
}
