package repository

import (
	"context"
	"errors"
	"time"

	"github.com/agora-lab/backend/internal/entity"
	"github.com/agora-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type GetListTopicFilter struct {
	NodeID   string
	AuthorID string
	Offset   int
	Limit    int
}

type TopicRepository interface {
	Create(ctx context.Context, e *entity.Topic) error
	GetByID(ctx context.Context, id string) (*entity.Topic, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.Topic, error)
	GetLatestByAuthorID(ctx context.Context, authorID string) (*entity.Topic, error)
	GetList(ctx context.Context, filter GetListTopicFilter) ([]entity.Topic, error)
	UpdateByID(ctx context.Context, id string, data map[string]any) error
	IncreaseViewCount(ctx context.Context, id string) error
	RecordReply(ctx context.Context, id, replierID string, now time.Time) error
}

type topicRepository struct{}

func NewTopicRepository() *topicRepository {
	return &topicRepository{}
}

func (r *topicRepository) Create(ctx context.Context, e *entity.Topic) error {
	return xcontext.DB(ctx).Create(e).Error
}

func (r *topicRepository) GetByID(ctx context.Context, id string) (*entity.Topic, error) {
	var result entity.Topic
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *topicRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.Topic, error) {
	var result []entity.Topic
	if err := xcontext.DB(ctx).Find(&result, "id IN (?)", ids).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *topicRepository) GetLatestByAuthorID(ctx context.Context, authorID string) (*entity.Topic, error) {
	var result entity.Topic
	err := xcontext.DB(ctx).
		Where("author_id=?", authorID).
		Order("created_at DESC").
		First(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *topicRepository) GetList(ctx context.Context, filter GetListTopicFilter) ([]entity.Topic, error) {
	tx := xcontext.DB(ctx).
		Order("created_at DESC").
		Offset(filter.Offset).
		Limit(filter.Limit)

	if filter.NodeID != "" {
		tx = tx.Where("node_id=?", filter.NodeID)
	}

	if filter.AuthorID != "" {
		tx = tx.Where("author_id=?", filter.AuthorID)
	}

	var result []entity.Topic
	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *topicRepository) UpdateByID(ctx context.Context, id string, data map[string]any) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Topic{}).
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

func (r *topicRepository) IncreaseViewCount(ctx context.Context, id string) error {
	return xcontext.DB(ctx).
		Model(&entity.Topic{}).
		Where("id=?", id).
		Update("num_views", gorm.Expr("num_views + 1")).Error
}

// RecordReply applies the comment side effects on the topic row:
// counter, freshness timestamp and most recent replier.
func (r *topicRepository) RecordReply(ctx context.Context, id, replierID string, now time.Time) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Topic{}).
		Where("id=?", id).
		Updates(map[string]any{
			"num_comments":    gorm.Expr("num_comments + 1"),
			"updated_at":      now,
			"last_replier_id": replierID,
		})

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
