package mocks

import (
	"context"

	"github.com/loopers/commerce-api/internal/brand/domain"
	"github.com/stretchr/testify/mock"
)

type MockBrandRepository struct {
	mock.Mock
}

func (m *MockBrandRepository) CreateBrand(ctx context.Context, brand *domain.Brand) error {
	args := m.Called(ctx, brand)
	if brand != nil && args.Error(0) == nil {
		brand.ID = 7
	}
	return args.Error(0)
}

func (m *MockBrandRepository) GetBrandByID(ctx context.Context, id int64) (*domain.Brand, error) {
	args := m.Called(ctx, id)
	if b := args.Get(0); b != nil {
		return b.(*domain.Brand), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBrandRepository) ListBrands(ctx context.Context) ([]domain.Brand, error) {
	args := m.Called(ctx)
	if bs := args.Get(0); bs != nil {
		return bs.([]domain.Brand), args.Error(1)
	}
	return nil, args.Error(1)
}
