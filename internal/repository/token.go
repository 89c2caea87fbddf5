package repository

import (
	"context"

	"github.com/agora-lab/backend/internal/entity"
	"github.com/agora-lab/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type EmailVerificationRepository interface {
	GetByUserID(ctx context.Context, userID string) (*entity.EmailVerification, error)
	Upsert(ctx context.Context, e *entity.EmailVerification) error
	DeleteByUserID(ctx context.Context, userID string) error
}

type emailVerificationRepository struct{}

func NewEmailVerificationRepository() *emailVerificationRepository {
	return &emailVerificationRepository{}
}

func (r *emailVerificationRepository) GetByUserID(ctx context.Context, userID string) (*entity.EmailVerification, error) {
	var result entity.EmailVerification
	if err := xcontext.DB(ctx).Take(&result, "user_id=?", userID).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

// Upsert replaces any pending token of the user; tokens never
// accumulate.
func (r *emailVerificationRepository) Upsert(ctx context.Context, e *entity.EmailVerification) error {
	return xcontext.DB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"token", "created_at"}),
	}).Create(e).Error
}

func (r *emailVerificationRepository) DeleteByUserID(ctx context.Context, userID string) error {
	return xcontext.DB(ctx).
		Where("user_id=?", userID).
		Delete(&entity.EmailVerification{}).Error
}

type PasswordResetRepository interface {
	GetByUserID(ctx context.Context, userID string) (*entity.PasswordReset, error)
	Upsert(ctx context.Context, e *entity.PasswordReset) error
	DeleteByUserID(ctx context.Context, userID string) error
}

type passwordResetRepository struct{}

func NewPasswordResetRepository() *passwordResetRepository {
	return &passwordResetRepository{}
}

func (r *passwordResetRepository) GetByUserID(ctx context.Context, userID string) (*entity.PasswordReset, error) {
	var result entity.PasswordReset
	if err := xcontext.DB(ctx).Take(&result, "user_id=?", userID).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *passwordResetRepository) Upsert(ctx context.Context, e *entity.PasswordReset) error {
	return xcontext.DB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"token", "created_at"}),
	}).Create(e).Error
}

func (r *passwordResetRepository) DeleteByUserID(ctx context.Context, userID string) error {
	return xcontext.DB(ctx).
		Where("user_id=?", userID).
		Delete(&entity.PasswordReset{}).Error
}
