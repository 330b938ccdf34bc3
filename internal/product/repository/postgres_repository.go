package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	brandDomain "github.com/loopers/commerce-api/internal/brand/domain"
	"github.com/loopers/commerce-api/internal/platform/apperror"
	"github.com/loopers/commerce-api/internal/platform/database"
	"github.com/loopers/commerce-api/internal/platform/logger"
	"github.com/loopers/commerce-api/internal/product/domain"
)

var (
	ErrConcurrentUpdate = apperror.Conflict("product.concurrent-update", "product was modified concurrently, retry the request")
	ErrCorruptProduct   = apperror.Internal("product.integrity", "stored product violates its invariants")
)

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *domain.Product) error
	GetProductByID(ctx context.Context, id int64) (*domain.Product, error)
	ListProducts(ctx context.Context, sort domain.SortType) ([]domain.Product, error)

	// Transactional inventory access, called by the order and like services.
	GetProductForUpdate(ctx context.Context, dbops database.DBTX, id int64) (*domain.Product, error)
	UpdateInventory(ctx context.Context, dbops database.DBTX, product *domain.Product) error
}

type postgresProductRepository struct {
	db *sql.DB
}

func NewPostgresProductRepository(db *sql.DB) ProductRepository {
	return &postgresProductRepository{db: db}
}

const productColumns = `id, brand_id, name, price, stock, like_count, version, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanProduct reads one row and runs the domain guard on it, so a row written
// around the domain rules surfaces as ErrCorruptProduct instead of being used.
func scanProduct(row rowScanner) (*domain.Product, error) {
	var p domain.Product
	if err := row.Scan(&p.ID, &p.BrandID, &p.Name, &p.Price, &p.Stock, &p.LikeCount, &p.Version, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if err := p.Guard(); err != nil {
		logger.Error("product failed guard on load", err, "product_id", p.ID)
		return nil, fmt.Errorf("%w: product %d: %v", ErrCorruptProduct, p.ID, err)
	}
	return &p, nil
}

func (r *postgresProductRepository) CreateProduct(ctx context.Context, product *domain.Product) error {
	query := `INSERT INTO products (brand_id, name, price, stock, like_count, version, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, 0, NOW(), NOW()) RETURNING id, version, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, product.BrandID, product.Name, product.Price, product.Stock, product.LikeCount).
		Scan(&product.ID, &product.Version, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return brandDomain.ErrBrandNotFound
		}
		logger.Error("CreateProduct: failed to insert product", err)
		return err
	}
	return nil
}

func (r *postgresProductRepository) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		if !errors.Is(err, ErrCorruptProduct) {
			logger.Error("GetProductByID: query failed", err, "product_id", id)
		}
		return nil, err
	}
	return p, nil
}

func (r *postgresProductRepository) ListProducts(ctx context.Context, sort domain.SortType) ([]domain.Product, error) {
	orderBy := "created_at DESC, id DESC"
	switch sort {
	case domain.SortPriceAsc:
		orderBy = "price ASC, id ASC"
	case domain.SortLikesDesc:
		orderBy = "like_count DESC, id DESC"
	}
	query := `SELECT ` + productColumns + ` FROM products ORDER BY ` + orderBy
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("ListProducts: query failed", err)
		return nil, err
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			logger.Error("ListProducts: scan failed", err)
			return nil, err
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		logger.Error("ListProducts: rows iteration error", err)
		return nil, err
	}
	return products, nil
}

// GetProductForUpdate locks the row until dbops commits or rolls back.
func (r *postgresProductRepository) GetProductForUpdate(ctx context.Context, dbops database.DBTX, id int64) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	p, err := scanProduct(dbops.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		if !errors.Is(err, ErrCorruptProduct) {
			logger.Error("GetProductForUpdate: query failed", err, "product_id", id)
		}
		return nil, err
	}
	return p, nil
}

// UpdateInventory writes stock and like count back with a version check. The
// row lock already serialises writers; the version guards callers that did not
// take it.
func (r *postgresProductRepository) UpdateInventory(ctx context.Context, dbops database.DBTX, product *domain.Product) error {
	query := `UPDATE products SET stock = $1, like_count = $2, version = version + 1, updated_at = NOW()
              WHERE id = $3 AND version = $4
              RETURNING version, updated_at`
	err := dbops.QueryRowContext(ctx, query, product.Stock, product.LikeCount, product.ID, product.Version).
		Scan(&product.Version, &product.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Warn("UpdateInventory: version mismatch", "product_id", product.ID, "version", product.Version)
			return ErrConcurrentUpdate
		}
		if database.IsCheckViolation(err) {
			logger.Error("UpdateInventory: check violation", err, "product_id", product.ID)
			return domain.ErrInsufficientStock
		}
		logger.Error("UpdateInventory: exec failed", err, "product_id", product.ID)
		return err
	}
	return nil
}
