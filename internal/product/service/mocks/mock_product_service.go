package mocks

import (
	"context"

	"github.com/loopers/commerce-api/internal/product/domain"
	"github.com/stretchr/testify/mock"
)

type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) RegisterProduct(ctx context.Context, req domain.RegisterProductRequest) (*domain.Product, error) {
	args := m.Called(ctx, req)
	if p := args.Get(0); p != nil {
		return p.(*domain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductService) ListProducts(ctx context.Context, sort domain.SortType) ([]domain.Product, error) {
	args := m.Called(ctx, sort)
	if ps := args.Get(0); ps != nil {
		return ps.([]domain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductService) GetProductDetails(ctx context.Context, productID int64) (*domain.ProductDetail, error) {
	args := m.Called(ctx, productID)
	if d := args.Get(0); d != nil {
		return d.(*domain.ProductDetail), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductService) InvalidateProducts(ctx context.Context, productIDs ...int64) {
	m.Called(ctx, productIDs)
}
