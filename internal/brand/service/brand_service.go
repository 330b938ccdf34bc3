package service

import (
	"context"

	"github.com/loopers/commerce-api/internal/brand/domain"
	"github.com/loopers/commerce-api/internal/brand/repository"
)

type BrandService interface {
	RegisterBrand(ctx context.Context, req domain.RegisterBrandRequest) (*domain.Brand, error)
	GetBrand(ctx context.Context, id int64) (*domain.Brand, error)
	ListBrands(ctx context.Context) ([]domain.Brand, error)
}

type brandServiceImpl struct {
	repo repository.BrandRepository
}

func NewBrandService(repo repository.BrandRepository) BrandService {
	return &brandServiceImpl{repo: repo}
}

func (s *brandServiceImpl) RegisterBrand(ctx context.Context, req domain.RegisterBrandRequest) (*domain.Brand, error) {
	brand, err := domain.NewBrand(req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.repo.CreateBrand(ctx, brand); err != nil {
		return nil, err
	}
	return brand, nil
}

func (s *brandServiceImpl) GetBrand(ctx context.Context, id int64) (*domain.Brand, error) {
	return s.repo.GetBrandByID(ctx, id)
}

func (s *brandServiceImpl) ListBrands(ctx context.Context) ([]domain.Brand, error) {
	return s.repo.ListBrands(ctx)
}
