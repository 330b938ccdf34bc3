package domain

import (
	"math"
	"time"

	"github.com/loopers/commerce-api/internal/platform/apperror"
)

type OrderStatus string

const (
	StatusCreated   OrderStatus = "CREATED"
	StatusCancelled OrderStatus = "CANCELLED"
)

var (
	ErrItemsEmpty              = apperror.Validation("order.items.empty", "order items must not be empty")
	ErrQuantityNotPositive     = apperror.Validation("order.quantity.not-positive", "order quantity must be at least 1")
	ErrPriceNegative           = apperror.Validation("order.price.negative", "order item price must be zero or greater")
	ErrTotalOverflow           = apperror.Validation("order.total.overflow", "order total exceeds the supported amount")
	ErrOrderNotFound           = apperror.NotFound("order.not-found", "order not found")
	ErrInvalidStatusTransition = apperror.Conflict("order.status.invalid-transition", "order cannot move to the requested status")
)

// transitions lists the statuses each status may move to.
var transitions = map[OrderStatus][]OrderStatus{
	StatusCreated: {StatusCancelled},
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// OrderItem is a snapshot of the product at purchase time.
type OrderItem struct {
	ID          int64     `json:"id"`
	OrderID     int64     `json:"-"`
	LineNo      int       `json:"-"`
	ProductID   int64     `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	Price       int64     `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewOrderItem(productID int64, productName string, quantity int, price int64) (OrderItem, error) {
	if quantity < 1 {
		return OrderItem{}, ErrQuantityNotPositive
	}
	if price < 0 {
		return OrderItem{}, ErrPriceNegative
	}
	if price > math.MaxInt64/int64(quantity) {
		return OrderItem{}, ErrTotalOverflow
	}
	return OrderItem{
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		Price:       price,
	}, nil
}

func (i OrderItem) TotalPrice() int64 {
	return i.Price * int64(i.Quantity)
}

type Order struct {
	ID         int64       `json:"id"`
	MemberID   int64       `json:"member_id"`
	Status     OrderStatus `json:"status"`
	TotalPrice int64       `json:"total_price"`
	Items      []OrderItem `json:"items"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// NewOrder builds a CREATED order, folding every item through AddItem.
func NewOrder(memberID int64, items []OrderItem) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrItemsEmpty
	}
	o := &Order{
		MemberID: memberID,
		Status:   StatusCreated,
		Items:    make([]OrderItem, 0, len(items)),
	}
	for _, item := range items {
		if err := o.AddItem(item); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// AddItem is the only place TotalPrice changes. The order is left untouched
// when the new total would not fit in an int64.
func (o *Order) AddItem(item OrderItem) error {
	if item.Quantity > 0 && item.Price > math.MaxInt64/int64(item.Quantity) {
		return ErrTotalOverflow
	}
	line := item.TotalPrice()
	if line > math.MaxInt64-o.TotalPrice {
		return ErrTotalOverflow
	}
	item.OrderID = o.ID
	item.LineNo = len(o.Items) + 1
	o.Items = append(o.Items, item)
	o.TotalPrice += line
	return nil
}

func (o *Order) Cancel() error {
	if !o.Status.CanTransitionTo(StatusCancelled) {
		return ErrInvalidStatusTransition
	}
	o.Status = StatusCancelled
	return nil
}

type CreateOrderItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity"`
}

type CreateOrderRequest struct {
	Items []CreateOrderItemRequest `json:"items" binding:"dive"`
}
