package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/loopers/commerce-api/internal/like/repository"
	"github.com/loopers/commerce-api/internal/platform/database"
	"github.com/loopers/commerce-api/internal/platform/logger"
	productDomain "github.com/loopers/commerce-api/internal/product/domain"
	"github.com/robfig/cron/v3"
)

// Reconciler periodically repairs products.like_count from product_likes.
type Reconciler struct {
	txs       database.TxStarter
	likeRepo  repository.LikeRepository
	products  ProductStore
	cache     ProductCache
	scheduler *cron.Cron
	spec      string
	timeout   time.Duration
}

func NewReconciler(txs database.TxStarter, lr repository.LikeRepository, ps ProductStore, pc ProductCache, spec string) *Reconciler {
	return &Reconciler{
		txs:       txs,
		likeRepo:  lr,
		products:  ps,
		cache:     pc,
		scheduler: cron.New(cron.WithSeconds()),
		spec:      spec,
		timeout:   time.Minute,
	}
}

// Start schedules the job. It returns an error for an unparsable spec.
func (r *Reconciler) Start() error {
	_, err := r.scheduler.AddFunc(r.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()
		if _, err := r.RunOnce(ctx); err != nil {
			logger.Error("Reconciler: run failed", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid like reconcile spec %q: %w", r.spec, err)
	}
	r.scheduler.Start()
	logger.Info("like count reconciler started", "spec", r.spec)
	return nil
}

// Stop waits for a running job to finish.
func (r *Reconciler) Stop() {
	<-r.scheduler.Stop().Done()
}

// RunOnce repairs every drifted product, each in its own transaction, and
// returns how many were rewritten. It stops at the first storage error;
// products repaired before it are still evicted from the cache.
func (r *Reconciler) RunOnce(ctx context.Context) (int, error) {
	candidates, err := r.likeRepo.ListDriftedProductIDs(ctx)
	if err != nil {
		return 0, err
	}

	var repaired []int64
	var runErr error
	for _, id := range candidates {
		fixed, err := r.repair(ctx, id)
		if err != nil {
			runErr = fmt.Errorf("repair product %d: %w", id, err)
			break
		}
		if fixed {
			repaired = append(repaired, id)
		}
	}

	if len(repaired) > 0 {
		logger.Warn("like counts drifted and were repaired", "product_ids", repaired)
		r.cache.InvalidateProducts(ctx, repaired...)
	}
	return len(repaired), runErr
}

func (r *Reconciler) repair(ctx context.Context, productID int64) (bool, error) {
	tx, err := r.txs.BeginTx(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	product, err := r.products.GetProductForUpdate(ctx, tx, productID)
	if errors.Is(err, productDomain.ErrProductNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	count, err := r.likeRepo.CountLikes(ctx, tx, productID)
	if err != nil {
		return false, err
	}
	if product.LikeCount == count {
		// Fixed by a like or unlike that committed after the candidate scan.
		return false, nil
	}
	if err := product.ResetLikeCount(count); err != nil {
		return false, err
	}
	if err := r.products.UpdateInventory(ctx, tx, product); err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}
