package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/loopers/commerce-api/internal/order/domain"
	"github.com/loopers/commerce-api/internal/platform/database"
	"github.com/loopers/commerce-api/internal/platform/logger"
)

type OrderRepository interface {
	// CreateOrderWithItems inserts the order and its items on dbops; the caller
	// owns the transaction.
	CreateOrderWithItems(ctx context.Context, dbops database.DBTX, order *domain.Order) error
	GetOrderByID(ctx context.Context, id int64) (*domain.Order, error)
	GetOrderForUpdate(ctx context.Context, dbops database.DBTX, id int64) (*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, dbops database.DBTX, orderID int64, newStatus domain.OrderStatus) error
}

type postgresOrderRepository struct {
	db *sql.DB
}

func NewPostgresOrderRepository(db *sql.DB) OrderRepository {
	return &postgresOrderRepository{db: db}
}

func (r *postgresOrderRepository) CreateOrderWithItems(ctx context.Context, dbops database.DBTX, order *domain.Order) error {
	orderQuery := `INSERT INTO orders (member_id, status, total_price, created_at, updated_at)
                   VALUES ($1, $2, $3, NOW(), NOW()) RETURNING id, created_at, updated_at`
	err := dbops.QueryRowContext(ctx, orderQuery, order.MemberID, string(order.Status), order.TotalPrice).
		Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		logger.Error("CreateOrderWithItems: failed to insert order", err, "member_id", order.MemberID)
		return err
	}

	itemStmt, err := dbops.PrepareContext(ctx, `INSERT INTO order_items (order_id, line_no, product_id, product_name, quantity, price, created_at)
                                               VALUES ($1, $2, $3, $4, $5, $6, NOW()) RETURNING id, created_at`)
	if err != nil {
		logger.Error("CreateOrderWithItems: failed to prepare item statement", err)
		return err
	}
	defer itemStmt.Close()

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		err = itemStmt.QueryRowContext(ctx, item.OrderID, item.LineNo, item.ProductID, item.ProductName, item.Quantity, item.Price).
			Scan(&item.ID, &item.CreatedAt)
		if err != nil {
			logger.Error("CreateOrderWithItems: failed to insert order item", err, "order_id", order.ID, "product_id", item.ProductID)
			return err
		}
	}
	return nil
}

func (r *postgresOrderRepository) GetOrderByID(ctx context.Context, id int64) (*domain.Order, error) {
	return r.getOrder(ctx, r.db, id, false)
}

func (r *postgresOrderRepository) GetOrderForUpdate(ctx context.Context, dbops database.DBTX, id int64) (*domain.Order, error) {
	return r.getOrder(ctx, dbops, id, true)
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func (r *postgresOrderRepository) getOrder(ctx context.Context, q querier, id int64, lock bool) (*domain.Order, error) {
	query := `SELECT id, member_id, status, total_price, created_at, updated_at FROM orders WHERE id = $1`
	if lock {
		query += ` FOR UPDATE`
	}
	var o domain.Order
	err := q.QueryRowContext(ctx, query, id).
		Scan(&o.ID, &o.MemberID, &o.Status, &o.TotalPrice, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		logger.Error("getOrder: query failed", err, "order_id", id)
		return nil, err
	}

	items, err := r.getOrderItems(ctx, q, id)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *postgresOrderRepository) getOrderItems(ctx context.Context, q querier, orderID int64) ([]domain.OrderItem, error) {
	query := `SELECT id, order_id, line_no, product_id, product_name, quantity, price, created_at
              FROM order_items WHERE order_id = $1 ORDER BY line_no`
	rows, err := q.QueryContext(ctx, query, orderID)
	if err != nil {
		logger.Error("getOrderItems: query failed", err, "order_id", orderID)
		return nil, err
	}
	defer rows.Close()

	items := []domain.OrderItem{}
	for rows.Next() {
		var i domain.OrderItem
		if err := rows.Scan(&i.ID, &i.OrderID, &i.LineNo, &i.ProductID, &i.ProductName, &i.Quantity, &i.Price, &i.CreatedAt); err != nil {
			logger.Error("getOrderItems: scan failed", err, "order_id", orderID)
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

func (r *postgresOrderRepository) UpdateOrderStatus(ctx context.Context, dbops database.DBTX, orderID int64, newStatus domain.OrderStatus) error {
	query := `UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2`
	res, err := dbops.ExecContext(ctx, query, string(newStatus), orderID)
	if err != nil {
		logger.Error("UpdateOrderStatus: exec failed", err, "order_id", orderID, "new_status", newStatus)
		return err
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		logger.Error("UpdateOrderStatus: failed to get rows affected", err, "order_id", orderID)
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}
