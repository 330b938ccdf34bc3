package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/loopers/commerce-api/internal/order/domain"
	"github.com/loopers/commerce-api/internal/order/repository"
	"github.com/loopers/commerce-api/internal/platform/database"
	"github.com/loopers/commerce-api/internal/platform/events"
	"github.com/loopers/commerce-api/internal/platform/logger"
	productDomain "github.com/loopers/commerce-api/internal/product/domain"
)

// ProductStore is the transactional inventory access the order flow needs.
type ProductStore interface {
	GetProductForUpdate(ctx context.Context, dbops database.DBTX, id int64) (*productDomain.Product, error)
	UpdateInventory(ctx context.Context, dbops database.DBTX, product *productDomain.Product) error
}

type ProductCache interface {
	InvalidateProducts(ctx context.Context, productIDs ...int64)
}

type OrderService interface {
	CreateOrder(ctx context.Context, memberID int64, req domain.CreateOrderRequest) (*domain.Order, error)
	// GetOrder returns ErrOrderNotFound for orders owned by someone else.
	GetOrder(ctx context.Context, memberID, orderID int64) (*domain.Order, error)
	CancelOrder(ctx context.Context, memberID, orderID int64) (*domain.Order, error)
}

type orderServiceImpl struct {
	txs       database.TxStarter
	orderRepo repository.OrderRepository
	products  ProductStore
	cache     ProductCache
	publisher events.Publisher
}

func NewOrderService(txs database.TxStarter, or repository.OrderRepository, ps ProductStore, pc ProductCache, pub events.Publisher) OrderService {
	return &orderServiceImpl{
		txs:       txs,
		orderRepo: or,
		products:  ps,
		cache:     pc,
		publisher: pub,
	}
}

// CreateOrder runs in one transaction. Product rows are locked in ascending id
// order; lines are then checked and applied in request order, so the first
// failing line decides the error. Any failure rolls back every decrement.
func (s *orderServiceImpl) CreateOrder(ctx context.Context, memberID int64, req domain.CreateOrderRequest) (*domain.Order, error) {
	if len(req.Items) == 0 {
		return nil, domain.ErrItemsEmpty
	}

	tx, err := s.txs.BeginTx(ctx)
	if err != nil {
		logger.Error("CreateOrder: failed to begin tx", err)
		return nil, err
	}
	defer tx.Rollback()

	productIDs := distinctSorted(req.Items)
	locked := make(map[int64]*productDomain.Product, len(productIDs))
	for _, id := range productIDs {
		p, err := s.products.GetProductForUpdate(ctx, tx, id)
		if errors.Is(err, productDomain.ErrProductNotFound) {
			// Reported when its line is reached, so errors follow request order.
			locked[id] = nil
			continue
		}
		if err != nil {
			return nil, err
		}
		locked[id] = p
	}

	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, line := range req.Items {
		p := locked[line.ProductID]
		if p == nil {
			return nil, fmt.Errorf("%w (product %d)", productDomain.ErrProductNotFound, line.ProductID)
		}
		item, err := domain.NewOrderItem(p.ID, p.Name, line.Quantity, p.Price)
		if err != nil {
			return nil, err
		}
		if err := p.DecreaseStock(line.Quantity); err != nil {
			logger.Info("order rejected", "member_id", memberID, "product_id", p.ID, "requested", line.Quantity, "stock", p.Stock)
			return nil, fmt.Errorf("%w (product %d)", err, p.ID)
		}
		items = append(items, item)
	}

	order, err := domain.NewOrder(memberID, items)
	if err != nil {
		return nil, err
	}

	for _, id := range productIDs {
		if err := s.products.UpdateInventory(ctx, tx, locked[id]); err != nil {
			return nil, err
		}
	}
	if err := s.orderRepo.CreateOrderWithItems(ctx, tx, order); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		logger.Error("CreateOrder: commit failed", err, "member_id", memberID)
		return nil, err
	}

	s.cache.InvalidateProducts(ctx, productIDs...)
	events.Notify(ctx, s.publisher, events.New(events.OrderCreated, order.ID, map[string]interface{}{
		"member_id":   order.MemberID,
		"total_price": order.TotalPrice,
		"item_count":  len(order.Items),
	}))
	logger.Info("order created", "order_id", order.ID, "member_id", memberID, "total_price", order.TotalPrice)
	return order, nil
}

func (s *orderServiceImpl) GetOrder(ctx context.Context, memberID, orderID int64) (*domain.Order, error) {
	order, err := s.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.MemberID != memberID {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

// CancelOrder moves a CREATED order to CANCELLED. Stock is not restored.
func (s *orderServiceImpl) CancelOrder(ctx context.Context, memberID, orderID int64) (*domain.Order, error) {
	tx, err := s.txs.BeginTx(ctx)
	if err != nil {
		logger.Error("CancelOrder: failed to begin tx", err)
		return nil, err
	}
	defer tx.Rollback()

	order, err := s.orderRepo.GetOrderForUpdate(ctx, tx, orderID)
	if err != nil {
		return nil, err
	}
	if order.MemberID != memberID {
		return nil, domain.ErrOrderNotFound
	}
	if err := order.Cancel(); err != nil {
		return nil, err
	}
	if err := s.orderRepo.UpdateOrderStatus(ctx, tx, order.ID, order.Status); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		logger.Error("CancelOrder: commit failed", err, "order_id", orderID)
		return nil, err
	}

	events.Notify(ctx, s.publisher, events.New(events.OrderCancelled, order.ID, map[string]interface{}{
		"member_id": order.MemberID,
	}))
	return order, nil
}

func distinctSorted(lines []domain.CreateOrderItemRequest) []int64 {
	seen := make(map[int64]struct{}, len(lines))
	ids := make([]int64, 0, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.ProductID]; ok {
			continue
		}
		seen[l.ProductID] = struct{}{}
		ids = append(ids, l.ProductID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
