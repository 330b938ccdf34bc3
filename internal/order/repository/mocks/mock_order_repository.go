package mocks

import (
	"context"

	"github.com/loopers/commerce-api/internal/order/domain"
	"github.com/loopers/commerce-api/internal/platform/database"
	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) CreateOrderWithItems(ctx context.Context, dbops database.DBTX, order *domain.Order) error {
	args := m.Called(ctx, dbops, order)
	if order != nil && args.Error(0) == nil {
		order.ID = 501
		for i := range order.Items {
			order.Items[i].OrderID = order.ID
			order.Items[i].ID = int64(i + 1)
		}
	}
	return args.Error(0)
}

func (m *MockOrderRepository) GetOrderByID(ctx context.Context, id int64) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if o := args.Get(0); o != nil {
		return o.(*domain.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) GetOrderForUpdate(ctx context.Context, dbops database.DBTX, id int64) (*domain.Order, error) {
	args := m.Called(ctx, dbops, id)
	if o := args.Get(0); o != nil {
		return o.(*domain.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) UpdateOrderStatus(ctx context.Context, dbops database.DBTX, orderID int64, newStatus domain.OrderStatus) error {
	args := m.Called(ctx, dbops, orderID, newStatus)
	return args.Error(0)
}
