package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/loopers/commerce-api/internal/brand/domain"
	"github.com/loopers/commerce-api/internal/platform/logger"
)

type BrandRepository interface {
	CreateBrand(ctx context.Context, brand *domain.Brand) error
	GetBrandByID(ctx context.Context, id int64) (*domain.Brand, error)
	ListBrands(ctx context.Context) ([]domain.Brand, error)
}

type postgresBrandRepository struct {
	db *sql.DB
}

func NewPostgresBrandRepository(db *sql.DB) BrandRepository {
	return &postgresBrandRepository{db: db}
}

func (r *postgresBrandRepository) CreateBrand(ctx context.Context, brand *domain.Brand) error {
	query := `INSERT INTO brands (name, description, created_at, updated_at)
              VALUES ($1, $2, NOW(), NOW()) RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, brand.Name, brand.Description).
		Scan(&brand.ID, &brand.CreatedAt, &brand.UpdatedAt)
	if err != nil {
		logger.Error("CreateBrand: failed to insert brand", err)
		return err
	}
	return nil
}

func (r *postgresBrandRepository) GetBrandByID(ctx context.Context, id int64) (*domain.Brand, error) {
	query := `SELECT id, name, description, created_at, updated_at FROM brands WHERE id = $1`
	var b domain.Brand
	err := r.db.QueryRowContext(ctx, query, id).Scan(&b.ID, &b.Name, &b.Description, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBrandNotFound
		}
		logger.Error("GetBrandByID: query failed", err, "brand_id", id)
		return nil, err
	}
	return &b, nil
}

func (r *postgresBrandRepository) ListBrands(ctx context.Context) ([]domain.Brand, error) {
	query := `SELECT id, name, description, created_at, updated_at FROM brands ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("ListBrands: query failed", err)
		return nil, err
	}
	defer rows.Close()

	brands := []domain.Brand{}
	for rows.Next() {
		var b domain.Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.Description, &b.CreatedAt, &b.UpdatedAt); err != nil {
			logger.Error("ListBrands: scan failed", err)
			return nil, err
		}
		brands = append(brands, b)
	}
	if err := rows.Err(); err != nil {
		logger.Error("ListBrands: rows iteration error", err)
		return nil, err
	}
	return brands, nil
}
