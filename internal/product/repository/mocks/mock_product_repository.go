package mocks

import (
	"context"

	"github.com/loopers/commerce-api/internal/platform/database"
	"github.com/loopers/commerce-api/internal/product/domain"
	"github.com/stretchr/testify/mock"
)

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) CreateProduct(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	if product != nil && args.Error(0) == nil {
		product.ID = 101
	}
	return args.Error(0)
}

func (m *MockProductRepository) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*domain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) ListProducts(ctx context.Context, sort domain.SortType) ([]domain.Product, error) {
	args := m.Called(ctx, sort)
	if ps := args.Get(0); ps != nil {
		return ps.([]domain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) GetProductForUpdate(ctx context.Context, dbops database.DBTX, id int64) (*domain.Product, error) {
	args := m.Called(ctx, dbops, id)
	if p := args.Get(0); p != nil {
		return p.(*domain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) UpdateInventory(ctx context.Context, dbops database.DBTX, product *domain.Product) error {
	args := m.Called(ctx, dbops, product)
	return args.Error(0)
}
