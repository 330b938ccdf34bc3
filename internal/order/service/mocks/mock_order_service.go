package mocks

import (
	"context"

	"github.com/loopers/commerce-api/internal/order/domain"
	"github.com/stretchr/testify/mock"
)

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) CreateOrder(ctx context.Context, memberID int64, req domain.CreateOrderRequest) (*domain.Order, error) {
	args := m.Called(ctx, memberID, req)
	if o := args.Get(0); o != nil {
		return o.(*domain.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderService) GetOrder(ctx context.Context, memberID, orderID int64) (*domain.Order, error) {
	args := m.Called(ctx, memberID, orderID)
	if o := args.Get(0); o != nil {
		return o.(*domain.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderService) CancelOrder(ctx context.Context, memberID, orderID int64) (*domain.Order, error) {
	args := m.Called(ctx, memberID, orderID)
	if o := args.Get(0); o != nil {
		return o.(*domain.Order), args.Error(1)
	}
	return nil, args.Error(1)
}
