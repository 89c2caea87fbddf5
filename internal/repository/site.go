package repository

import (
	"context"

	"github.com/agora-lab/backend/internal/entity"
	"github.com/agora-lab/backend/pkg/xcontext"
)

type SiteRepository interface {
	CreateCategory(ctx context.Context, e *entity.SiteCategory) error
	GetCategories(ctx context.Context) ([]entity.SiteCategory, error)
	Create(ctx context.Context, e *entity.Site) error
	GetListByCategoryID(ctx context.Context, categoryID string) ([]entity.Site, error)
}

type siteRepository struct{}

func NewSiteRepository() *siteRepository {
	return &siteRepository{}
}

func (r *siteRepository) CreateCategory(ctx context.Context, e *entity.SiteCategory) error {
	return xcontext.DB(ctx).Create(e).Error
}

func (r *siteRepository) GetCategories(ctx context.Context) ([]entity.SiteCategory, error) {
	var result []entity.SiteCategory
	if err := xcontext.DB(ctx).Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *siteRepository) Create(ctx context.Context, e *entity.Site) error {
	return xcontext.DB(ctx).Create(e).Error
}

func (r *siteRepository) GetListByCategoryID(ctx context.Context, categoryID string) ([]entity.Site, error) {
	var result []entity.Site
	if err := xcontext.DB(ctx).Find(&result, "category_id=?", categoryID).Error; err != nil {
		return nil, err
	}

	return result, nil
}
