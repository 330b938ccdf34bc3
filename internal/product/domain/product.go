package domain

import (
	"strings"
	"time"

	"github.com/loopers/commerce-api/internal/platform/apperror"
)

var (
	ErrNameEmpty         = apperror.Validation("product.name.empty", "product name must not be blank")
	ErrPriceNegative     = apperror.Validation("product.price.negative", "product price must be zero or greater")
	ErrStockNegative     = apperror.Validation("product.stock.negative", "product stock must be zero or greater")
	ErrInsufficientStock = apperror.Validation("product.stock.not-enough", "insufficient stock")
	ErrInvalidQuantity   = apperror.Validation("product.quantity.negative", "stock change quantity must not be negative")
	ErrLikeCountNegative = apperror.Validation("product.like-count.negative", "like count must be zero or greater")
	ErrProductNotFound   = apperror.NotFound("product.not-found", "product not found")
)

type SortType string

const (
	SortLatest    SortType = "latest"
	SortPriceAsc  SortType = "price_asc"
	SortLikesDesc SortType = "likes_desc"
)

// ParseSortType falls back to SortLatest for anything it does not recognise.
func ParseSortType(s string) SortType {
	switch SortType(strings.ToLower(s)) {
	case SortPriceAsc:
		return SortPriceAsc
	case SortLikesDesc:
		return SortLikesDesc
	default:
		return SortLatest
	}
}

// Product is the inventory ledger entry: stock and like count change only
// through the methods below, which keep both non-negative.
type Product struct {
	ID        int64     `json:"id"`
	BrandID   int64     `json:"brand_id"`
	Name      string    `json:"name"`
	Price     int64     `json:"price"`
	Stock     int       `json:"stock"`
	LikeCount int       `json:"like_count"`
	Version   int64     `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewProduct(name string, price int64, stock int, brandID int64) (*Product, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validatePrice(price); err != nil {
		return nil, err
	}
	if stock < 0 {
		return nil, ErrStockNegative
	}
	return &Product{
		BrandID: brandID,
		Name:    name,
		Price:   price,
		Stock:   stock,
	}, nil
}

// Guard re-checks the invariants of a record read from storage.
func (p *Product) Guard() error {
	if err := validateName(p.Name); err != nil {
		return err
	}
	if err := validatePrice(p.Price); err != nil {
		return err
	}
	if p.Stock < 0 {
		return ErrStockNegative
	}
	if p.LikeCount < 0 {
		return ErrLikeCountNegative
	}
	return nil
}

// DecreaseStock removes quantity units. Stock is left untouched on error.
func (p *Product) DecreaseStock(quantity int) error {
	if quantity < 0 {
		return ErrInvalidQuantity
	}
	if quantity > p.Stock {
		return ErrInsufficientStock
	}
	p.Stock -= quantity
	return nil
}

func (p *Product) IncreaseLikeCount() {
	p.LikeCount++
}

// DecreaseLikeCount clamps at zero.
func (p *Product) DecreaseLikeCount() {
	if p.LikeCount > 0 {
		p.LikeCount--
	}
}

// ResetLikeCount overwrites the counter with a recount of the like rows.
func (p *Product) ResetLikeCount(count int) error {
	if count < 0 {
		return ErrLikeCountNegative
	}
	p.LikeCount = count
	return nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameEmpty
	}
	return nil
}

func validatePrice(price int64) error {
	if price < 0 {
		return ErrPriceNegative
	}
	return nil
}

type RegisterProductRequest struct {
	Name    string `json:"name"`
	Price   int64  `json:"price"`
	Stock   int    `json:"stock"`
	BrandID int64  `json:"brand_id" binding:"required"`
}

type BrandSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ProductDetail struct {
	Product
	Brand BrandSummary `json:"brand"`
}
