package repository

import (
	"context"
	"errors"

	"github.com/agora-lab/backend/internal/entity"
	"github.com/agora-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByName(ctx context.Context, name string) (*entity.User, error)
	Count(ctx context.Context) (int64, error)
	GetTopByActivityScore(ctx context.Context, limit int) ([]entity.User, error)
	UpdateByID(ctx context.Context, id string, data map[string]any) error
	IncreaseTopicCount(ctx context.Context, id string) error
	IncreaseCommentCount(ctx context.Context, id string) error
}

type userRepository struct{}

func NewUserRepository() *userRepository {
	return &userRepository{}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return xcontext.DB(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var result entity.User
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *userRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.User, error) {
	var result []entity.User
	if err := xcontext.DB(ctx).Find(&result, "id IN (?)", ids).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var result entity.User
	if err := xcontext.DB(ctx).Take(&result, "email=?", email).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *userRepository) GetByName(ctx context.Context, name string) (*entity.User, error) {
	var result entity.User
	if err := xcontext.DB(ctx).Take(&result, "name=?", name).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var result int64
	if err := xcontext.DB(ctx).Model(&entity.User{}).Count(&result).Error; err != nil {
		return 0, err
	}

	return result, nil
}

func (r *userRepository) GetTopByActivityScore(ctx context.Context, limit int) ([]entity.User, error) {
	var result []entity.User
	err := xcontext.DB(ctx).
		Order("activity_score DESC").
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *userRepository) UpdateByID(ctx context.Context, id string, data map[string]any) error {
	tx := xcontext.DB(ctx).
		Model(&entity.User{}).
		Where("id=?", id).
		Updates(data)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// IncreaseTopicCount bumps num_topics and recomputes activity_score in
// one statement. Map keys are applied in sorted order, so the score
// expression reads the pre-increment counter columns.
func (r *userRepository) IncreaseTopicCount(ctx context.Context, id string) error {
	return r.increaseCounters(ctx, id, map[string]any{
		"activity_score": gorm.Expr("(num_topics + 1) * 5 + num_comments"),
		"num_topics":     gorm.Expr("num_topics + 1"),
	})
}

func (r *userRepository) IncreaseCommentCount(ctx context.Context, id string) error {
	return r.increaseCounters(ctx, id, map[string]any{
		"activity_score": gorm.Expr("num_topics * 5 + num_comments + 1"),
		"num_comments":   gorm.Expr("num_comments + 1"),
	})
}

func (r *userRepository) increaseCounters(ctx context.Context, id string, data map[string]any) error {
	tx := xcontext.DB(ctx).
		Model(&entity.User{}).
		Where("id=?", id).
		Updates(data)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected > 1 {
		return errors.New("the number of affected rows is invalid")
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
