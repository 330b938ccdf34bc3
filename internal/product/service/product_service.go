package service

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/loopers/commerce-api/internal/platform/cache"
	"github.com/loopers/commerce-api/internal/platform/logger"
	"github.com/loopers/commerce-api/internal/product/domain"
	"github.com/loopers/commerce-api/internal/product/repository"
)

const detailCacheOp = "product-detail"

type ProductService interface {
	RegisterProduct(ctx context.Context, req domain.RegisterProductRequest) (*domain.Product, error)
	ListProducts(ctx context.Context, sort domain.SortType) ([]domain.Product, error)
	GetProductDetails(ctx context.Context, productID int64) (*domain.ProductDetail, error)
	// InvalidateProducts drops cached details after stock or like changes.
	InvalidateProducts(ctx context.Context, productIDs ...int64)
}

type productServiceImpl struct {
	repo     repository.ProductRepository
	brands   BrandReader
	cache    cache.Cache
	cacheTTL time.Duration
}

func NewProductService(repo repository.ProductRepository, brands BrandReader, c cache.Cache, cacheTTL time.Duration) ProductService {
	if c == nil {
		c = cache.NewNop()
	}
	return &productServiceImpl{
		repo:     repo,
		brands:   brands,
		cache:    c,
		cacheTTL: cacheTTL,
	}
}

func (s *productServiceImpl) RegisterProduct(ctx context.Context, req domain.RegisterProductRequest) (*domain.Product, error) {
	product, err := domain.NewProduct(req.Name, req.Price, req.Stock, req.BrandID)
	if err != nil {
		return nil, err
	}
	if _, err := s.brands.GetBrandSummary(ctx, req.BrandID); err != nil {
		return nil, err
	}
	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, err
	}
	logger.Info("product registered", "product_id", product.ID, "brand_id", product.BrandID)
	return product, nil
}

func (s *productServiceImpl) ListProducts(ctx context.Context, sort domain.SortType) ([]domain.Product, error) {
	return s.repo.ListProducts(ctx, sort)
}

// GetProductDetails is cache-aside: a cache error or an undecodable entry
// falls through to the database.
func (s *productServiceImpl) GetProductDetails(ctx context.Context, productID int64) (*domain.ProductDetail, error) {
	key := s.cache.GenerateKey(detailCacheOp, strconv.FormatInt(productID, 10))

	cached, err := s.cache.Get(ctx, key)
	if err != nil {
		logger.Warn("product detail cache read failed", "key", key, "error", err)
	} else if cached != "" {
		var detail domain.ProductDetail
		if err := json.Unmarshal([]byte(cached), &detail); err == nil {
			return &detail, nil
		}
		logger.Warn("product detail cache entry undecodable", "key", key)
	}

	product, err := s.repo.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	brand, err := s.brands.GetBrandSummary(ctx, product.BrandID)
	if err != nil {
		logger.Error("GetProductDetails: brand lookup failed", err, "product_id", productID, "brand_id", product.BrandID)
		return nil, err
	}
	detail := &domain.ProductDetail{Product: *product, Brand: *brand}

	if encoded, err := json.Marshal(detail); err == nil {
		if err := s.cache.Set(ctx, key, string(encoded), s.cacheTTL); err != nil {
			logger.Warn("product detail cache write failed", "key", key, "error", err)
		}
	}
	return detail, nil
}

func (s *productServiceImpl) InvalidateProducts(ctx context.Context, productIDs ...int64) {
	if len(productIDs) == 0 {
		return
	}
	keys := make([]string, 0, len(productIDs))
	for _, id := range productIDs {
		keys = append(keys, s.cache.GenerateKey(detailCacheOp, strconv.FormatInt(id, 10)))
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		logger.Warn("product detail cache invalidation failed", "keys", keys, "error", err)
	}
}
