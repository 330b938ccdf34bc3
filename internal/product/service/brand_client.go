package service

import (
	"context"

	brandService "github.com/loopers/commerce-api/internal/brand/service"
	"github.com/loopers/commerce-api/internal/product/domain"
)

// BrandReader is the slice of the brand context the product service needs.
type BrandReader interface {
	GetBrandSummary(ctx context.Context, brandID int64) (*domain.BrandSummary, error)
}

type brandServiceClient struct {
	brands brandService.BrandService
}

func NewBrandClient(bs brandService.BrandService) BrandReader {
	return &brandServiceClient{brands: bs}
}

func (c *brandServiceClient) GetBrandSummary(ctx context.Context, brandID int64) (*domain.BrandSummary, error) {
	b, err := c.brands.GetBrand(ctx, brandID)
	if err != nil {
		return nil, err
	}
	return &domain.BrandSummary{ID: b.ID, Name: b.Name}, nil
}
