package service

import (
	"go-catalog-api/internal/repository"
)

type StatsService interface {
	GetCatalogStats() (*CatalogStats, error)
}

// CatalogStats summarizes the catalog for the listing dashboard.
type CatalogStats struct {
	Products          int64 `json:"products"`
	PublishedProducts int64 `json:"published_products"`
	Categories        int64 `json:"categories"`
	Materials         int64 `json:"materials"`
	TotalViews        int64 `json:"total_views"`
}

type statsService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	materialRepo repository.MaterialRepository
}

func NewStatsService(pRepo repository.ProductRepository, cRepo repository.CategoryRepository, mRepo repository.MaterialRepository) StatsService {
	return &statsService{
		productRepo:  pRepo,
		categoryRepo: cRepo,
		materialRepo: mRepo,
	}
}

func (s *statsService) GetCatalogStats() (*CatalogStats, error) {
	stats := &CatalogStats{}
	var err error

	if stats.Products, err = s.productRepo.CountAll(); err != nil {
		return nil, err
	}
	if stats.PublishedProducts, err = s.productRepo.CountPublished(); err != nil {
		return nil, err
	}
	if stats.Categories, err = s.categoryRepo.CountAll(); err != nil {
		return nil, err
	}
	if stats.Materials, err = s.materialRepo.CountAll(); err != nil {
		return nil, err
	}
	if stats.TotalViews, err = s.materialRepo.TotalViews(); err != nil {
		return nil, err
	}

	return stats, nil
}
