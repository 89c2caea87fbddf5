package domain

import (
	"context"
	"strings"

	"github.com/agora-lab/backend/internal/entity"
	"github.com/agora-lab/backend/internal/model"
	"github.com/agora-lab/backend/internal/repository"
	"github.com/agora-lab/backend/pkg/errorx"
	"github.com/agora-lab/backend/pkg/xcontext"
	"github.com/agora-lab/backend/pkg/xredis"
	"github.com/google/uuid"
)

const siteDirectoryCacheKey = "site:directory"

type SiteDomain interface {
	GetSiteDirectory(ctx context.Context, req *model.GetSiteDirectoryRequest) (*model.GetSiteDirectoryResponse, error)
	CreateSite(ctx context.Context, req *model.CreateSiteRequest) (*model.CreateSiteResponse, error)
}

type siteDomain struct {
	siteRepo    repository.SiteRepository
	redisClient xredis.Client
}

func NewSiteDomain(siteRepo repository.SiteRepository, redisClient xredis.Client) SiteDomain {
	return &siteDomain{siteRepo: siteRepo, redisClient: redisClient}
}

func (d *siteDomain) GetSiteDirectory(ctx context.Context, req *model.GetSiteDirectoryRequest) (*model.GetSiteDirectoryResponse, error) {
	var cached model.GetSiteDirectoryResponse
	if hitCache(ctx, d.redisClient, siteDirectoryCacheKey, &cached) {
		return &cached, nil
	}

	categories, err := d.siteRepo.GetCategories(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get site categories: %v", err)
		return nil, errorx.Unknown
	}

	clientCategories := make([]model.CategorySites, 0, len(categories))
	for _, category := range categories {
		sites, err := d.siteRepo.GetListByCategoryID(ctx, category.ID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get sites: %v", err)
			return nil, errorx.Unknown
		}

		group := model.CategorySites{CategoryName: category.Name, Sites: []model.Site{}}
		for _, site := range sites {
			group.Sites = append(group.Sites, model.ConvertSite(&site))
		}
		clientCategories = append(clientCategories, group)
	}

	resp := &model.GetSiteDirectoryResponse{Categories: clientCategories}
	fillCache(ctx, d.redisClient, siteDirectoryCacheKey, resp,
		xcontext.Configs(ctx).Forum.SiteCacheTTL)
	return resp, nil
}

func (d *siteDomain) CreateSite(ctx context.Context, req *model.CreateSiteRequest) (*model.CreateSiteResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || strings.TrimSpace(req.URL) == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty name or url")
	}

	categories, err := d.siteRepo.GetCategories(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get site categories: %v", err)
		return nil, errorx.Unknown
	}

	found := false
	for _, category := range categories {
		if category.ID == req.CategoryID {
			found = true
			break
		}
	}
	if !found {
		return nil, errorx.New(errorx.NotFound, "Not found site category")
	}

	site := &entity.Site{
		Base:        entity.Base{ID: uuid.NewString()},
		Name:        name,
		URL:         strings.TrimSpace(req.URL),
		Description: req.Description,
		CategoryID:  req.CategoryID,
	}
	if err := d.siteRepo.Create(ctx, site); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create site: %v", err)
		return nil, errorx.Unknown
	}

	if d.redisClient != nil {
		if err := d.redisClient.Del(ctx, siteDirectoryCacheKey); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot invalidate the site directory cache: %v", err)
		}
	}

	return &model.CreateSiteResponse{Site: model.ConvertSite(site)}, nil
}
