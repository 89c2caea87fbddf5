package repository

import (
	"context"

	"github.com/agora-lab/backend/internal/entity"
	"github.com/agora-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type NoticeRepository interface {
	Create(ctx context.Context, e *entity.Notice) error
	GetByID(ctx context.Context, id string) (*entity.Notice, error)
	GetListByToUserID(ctx context.Context, toUserID string) ([]entity.Notice, error)
	CountUnread(ctx context.Context, toUserID string) (int64, error)
	MarkAllRead(ctx context.Context, toUserID string) error
	SoftDelete(ctx context.Context, id string) error
}

type noticeRepository struct{}

func NewNoticeRepository() *noticeRepository {
	return &noticeRepository{}
}

func (r *noticeRepository) Create(ctx context.Context, e *entity.Notice) error {
	return xcontext.DB(ctx).Create(e).Error
}

func (r *noticeRepository) GetByID(ctx context.Context, id string) (*entity.Notice, error) {
	var result entity.Notice
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *noticeRepository) GetListByToUserID(ctx context.Context, toUserID string) ([]entity.Notice, error) {
	var result []entity.Notice
	err := xcontext.DB(ctx).
		Where("to_user_id=? AND is_deleted=?", toUserID, false).
		Order("created_at DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *noticeRepository) CountUnread(ctx context.Context, toUserID string) (int64, error) {
	var result int64
	err := xcontext.DB(ctx).
		Model(&entity.Notice{}).
		Where("to_user_id=? AND is_read=? AND is_deleted=?", toUserID, false, false).
		Count(&result).Error
	if err != nil {
		return 0, err
	}

	return result, nil
}

func (r *noticeRepository) MarkAllRead(ctx context.Context, toUserID string) error {
	return xcontext.DB(ctx).
		Model(&entity.Notice{}).
		Where("to_user_id=? AND is_read=? AND is_deleted=?", toUserID, false, false).
		Update("is_read", true).Error
}

func (r *noticeRepository) SoftDelete(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Notice{}).
		Where("id=?", id).
		Update("is_deleted", true)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
