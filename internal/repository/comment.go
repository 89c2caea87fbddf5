package repository

import (
	"context"
	"time"

	"github.com/agora-lab/backend/internal/entity"
	"github.com/agora-lab/backend/pkg/xcontext"
)

type GetListCommentFilter struct {
	TopicID  string
	AuthorID string
	Offset   int
	Limit    int
}

type TopicCommentCount struct {
	TopicID string
	Count   int64
}

type CommentRepository interface {
	Create(ctx context.Context, e *entity.Comment) error
	GetLatestByAuthorID(ctx context.Context, authorID string) (*entity.Comment, error)
	GetList(ctx context.Context, filter GetListCommentFilter) ([]entity.Comment, error)
	CountByTopicSince(ctx context.Context, since time.Time, limit int) ([]TopicCommentCount, error)
}

type commentRepository struct{}

func NewCommentRepository() *commentRepository {
	return &commentRepository{}
}

func (r *commentRepository) Create(ctx context.Context, e *entity.Comment) error {
	return xcontext.DB(ctx).Create(e).Error
}

func (r *commentRepository) GetLatestByAuthorID(ctx context.Context, authorID string) (*entity.Comment, error) {
	var result entity.Comment
	err := xcontext.DB(ctx).
		Where("author_id=?", authorID).
		Order("created_at DESC").
		First(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *commentRepository) GetList(ctx context.Context, filter GetListCommentFilter) ([]entity.Comment, error) {
	tx := xcontext.DB(ctx).
		Offset(filter.Offset).
		Limit(filter.Limit)

	if filter.TopicID != "" {
		// Comments under a topic read oldest first, a user's own
		// comment history reads newest first.
		tx = tx.Where("topic_id=?", filter.TopicID).Order("created_at ASC")
	}

	if filter.AuthorID != "" {
		tx = tx.Where("author_id=?", filter.AuthorID).Order("created_at DESC")
	}

	var result []entity.Comment
	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

// CountByTopicSince groups comments created after since by topic,
// most commented first.
func (r *commentRepository) CountByTopicSince(ctx context.Context, since time.Time, limit int) ([]TopicCommentCount, error) {
	var result []TopicCommentCount
	err := xcontext.DB(ctx).
		Model(&entity.Comment{}).
		Select("topic_id, COUNT(*) AS count").
		Where("created_at > ?", since).
		Group("topic_id").
		Order("count DESC").
		Limit(limit).
		Scan(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
