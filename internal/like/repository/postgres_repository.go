package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/loopers/commerce-api/internal/like/domain"
	"github.com/loopers/commerce-api/internal/platform/database"
	"github.com/loopers/commerce-api/internal/platform/logger"
)

type LikeRepository interface {
	ExistsLike(ctx context.Context, dbops database.DBTX, memberID, productID int64) (bool, error)
	CreateLike(ctx context.Context, dbops database.DBTX, like *domain.Like) error
	GetLike(ctx context.Context, dbops database.DBTX, memberID, productID int64) (*domain.Like, error)
	DeleteLike(ctx context.Context, dbops database.DBTX, likeID int64) error
	// ListDriftedProductIDs returns products whose like_count disagrees with
	// their like rows. The result is a hint read without locks; callers
	// recount under the product row lock before writing.
	ListDriftedProductIDs(ctx context.Context) ([]int64, error)
	CountLikes(ctx context.Context, dbops database.DBTX, productID int64) (int, error)
}

type postgresLikeRepository struct {
	db *sql.DB
}

func NewPostgresLikeRepository(db *sql.DB) LikeRepository {
	return &postgresLikeRepository{db: db}
}

func (r *postgresLikeRepository) ExistsLike(ctx context.Context, dbops database.DBTX, memberID, productID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM product_likes WHERE member_id = $1 AND product_id = $2)`
	if err := dbops.QueryRowContext(ctx, query, memberID, productID).Scan(&exists); err != nil {
		logger.Error("ExistsLike: query failed", err, "member_id", memberID, "product_id", productID)
		return false, err
	}
	return exists, nil
}

func (r *postgresLikeRepository) CreateLike(ctx context.Context, dbops database.DBTX, like *domain.Like) error {
	query := `INSERT INTO product_likes (member_id, product_id, created_at)
              VALUES ($1, $2, NOW()) RETURNING id, created_at`
	err := dbops.QueryRowContext(ctx, query, like.MemberID, like.ProductID).Scan(&like.ID, &like.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			logger.Warn("CreateLike: unique violation", "member_id", like.MemberID, "product_id", like.ProductID)
			return domain.ErrAlreadyLiked
		}
		logger.Error("CreateLike: failed to insert like", err)
		return err
	}
	return nil
}

func (r *postgresLikeRepository) GetLike(ctx context.Context, dbops database.DBTX, memberID, productID int64) (*domain.Like, error) {
	query := `SELECT id, member_id, product_id, created_at FROM product_likes WHERE member_id = $1 AND product_id = $2`
	var l domain.Like
	err := dbops.QueryRowContext(ctx, query, memberID, productID).Scan(&l.ID, &l.MemberID, &l.ProductID, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrLikeNotFound
		}
		logger.Error("GetLike: query failed", err, "member_id", memberID, "product_id", productID)
		return nil, err
	}
	return &l, nil
}

func (r *postgresLikeRepository) DeleteLike(ctx context.Context, dbops database.DBTX, likeID int64) error {
	res, err := dbops.ExecContext(ctx, `DELETE FROM product_likes WHERE id = $1`, likeID)
	if err != nil {
		logger.Error("DeleteLike: exec failed", err, "like_id", likeID)
		return err
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		logger.Error("DeleteLike: failed to get rows affected", err, "like_id", likeID)
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrLikeNotFound
	}
	return nil
}

func (r *postgresLikeRepository) ListDriftedProductIDs(ctx context.Context) ([]int64, error) {
	query := `SELECT p.id
              FROM products p LEFT JOIN product_likes pl ON pl.product_id = p.id
              GROUP BY p.id, p.like_count
              HAVING p.like_count <> COUNT(pl.id)
              ORDER BY p.id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("ListDriftedProductIDs: query failed", err)
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			logger.Error("ListDriftedProductIDs: scan failed", err)
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// CountLikes must run after the product row is locked so no like or unlike
// for that product can commit between the count and the write.
func (r *postgresLikeRepository) CountLikes(ctx context.Context, dbops database.DBTX, productID int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM product_likes WHERE product_id = $1`
	if err := dbops.QueryRowContext(ctx, query, productID).Scan(&count); err != nil {
		logger.Error("CountLikes: query failed", err, "product_id", productID)
		return 0, err
	}
	return count, nil
}
