package repository

import (
	"context"
	"errors"

	"github.com/agora-lab/backend/internal/entity"
	"github.com/agora-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(ctx context.Context, e *entity.Category) error
	GetList(ctx context.Context) ([]entity.Category, error)
}

type categoryRepository struct{}

func NewCategoryRepository() *categoryRepository {
	return &categoryRepository{}
}

func (r *categoryRepository) Create(ctx context.Context, e *entity.Category) error {
	return xcontext.DB(ctx).Create(e).Error
}

func (r *categoryRepository) GetList(ctx context.Context) ([]entity.Category, error) {
	var result []entity.Category
	if err := xcontext.DB(ctx).Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

type NodeRepository interface {
	Create(ctx context.Context, e *entity.Node) error
	GetByID(ctx context.Context, id string) (*entity.Node, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Node, error)
	GetList(ctx context.Context) ([]entity.Node, error)
	GetListByCategoryID(ctx context.Context, categoryID string) ([]entity.Node, error)
	IncreaseTopicCount(ctx context.Context, id string) error
}

type nodeRepository struct{}

func NewNodeRepository() *nodeRepository {
	return &nodeRepository{}
}

func (r *nodeRepository) Create(ctx context.Context, e *entity.Node) error {
	return xcontext.DB(ctx).Create(e).Error
}

func (r *nodeRepository) GetByID(ctx context.Context, id string) (*entity.Node, error) {
	var result entity.Node
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *nodeRepository) GetBySlug(ctx context.Context, slug string) (*entity.Node, error) {
	var result entity.Node
	if err := xcontext.DB(ctx).Take(&result, "slug=?", slug).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *nodeRepository) GetList(ctx context.Context) ([]entity.Node, error) {
	var result []entity.Node
	if err := xcontext.DB(ctx).Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *nodeRepository) GetListByCategoryID(ctx context.Context, categoryID string) ([]entity.Node, error) {
	var result []entity.Node
	if err := xcontext.DB(ctx).Find(&result, "category_id=?", categoryID).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *nodeRepository) IncreaseTopicCount(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Node{}).
		Where("id=?", id).
		Update("num_topics", gorm.Expr("num_topics + 1"))

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
