package service

import (
	"context"

	"github.com/loopers/commerce-api/internal/like/domain"
	"github.com/loopers/commerce-api/internal/like/repository"
	"github.com/loopers/commerce-api/internal/platform/database"
	"github.com/loopers/commerce-api/internal/platform/logger"
	productDomain "github.com/loopers/commerce-api/internal/product/domain"
)

type ProductStore interface {
	GetProductForUpdate(ctx context.Context, dbops database.DBTX, id int64) (*productDomain.Product, error)
	UpdateInventory(ctx context.Context, dbops database.DBTX, product *productDomain.Product) error
}

type ProductCache interface {
	InvalidateProducts(ctx context.Context, productIDs ...int64)
}

type LikeService interface {
	Like(ctx context.Context, memberID, productID int64) (*domain.Like, error)
	Unlike(ctx context.Context, memberID, productID int64) error
}

type likeServiceImpl struct {
	txs      database.TxStarter
	likeRepo repository.LikeRepository
	products ProductStore
	cache    ProductCache
}

func NewLikeService(txs database.TxStarter, lr repository.LikeRepository, ps ProductStore, pc ProductCache) LikeService {
	return &likeServiceImpl{
		txs:      txs,
		likeRepo: lr,
		products: ps,
		cache:    pc,
	}
}

// Like inserts the like row and bumps like_count in one transaction, with the
// product row locked for the duration.
func (s *likeServiceImpl) Like(ctx context.Context, memberID, productID int64) (*domain.Like, error) {
	tx, err := s.txs.BeginTx(ctx)
	if err != nil {
		logger.Error("Like: failed to begin tx", err)
		return nil, err
	}
	defer tx.Rollback()

	product, err := s.products.GetProductForUpdate(ctx, tx, productID)
	if err != nil {
		return nil, err
	}
	exists, err := s.likeRepo.ExistsLike(ctx, tx, memberID, productID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrAlreadyLiked
	}

	like := domain.NewLike(memberID, productID)
	if err := s.likeRepo.CreateLike(ctx, tx, like); err != nil {
		return nil, err
	}
	product.IncreaseLikeCount()
	if err := s.products.UpdateInventory(ctx, tx, product); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		logger.Error("Like: commit failed", err, "member_id", memberID, "product_id", productID)
		return nil, err
	}

	s.cache.InvalidateProducts(ctx, productID)
	return like, nil
}

func (s *likeServiceImpl) Unlike(ctx context.Context, memberID, productID int64) error {
	tx, err := s.txs.BeginTx(ctx)
	if err != nil {
		logger.Error("Unlike: failed to begin tx", err)
		return err
	}
	defer tx.Rollback()

	product, err := s.products.GetProductForUpdate(ctx, tx, productID)
	if err != nil {
		return err
	}
	like, err := s.likeRepo.GetLike(ctx, tx, memberID, productID)
	if err != nil {
		return err
	}
	if err := s.likeRepo.DeleteLike(ctx, tx, like.ID); err != nil {
		return err
	}
	product.DecreaseLikeCount()
	if err := s.products.UpdateInventory(ctx, tx, product); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		logger.Error("Unlike: commit failed", err, "member_id", memberID, "product_id", productID)
		return err
	}

	s.cache.InvalidateProducts(ctx, productID)
	return nil
}
