package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/loopers/commerce-api/internal/like/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTxMock(t *testing.T) (*sql.DB, *sql.Tx, sqlmock.Sqlmock) {
	t.Helper()
	db, sm, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sm.ExpectBegin()
	tx, err := db.Begin()
	require.NoError(t, err)
	return db, tx, sm
}

func TestPostgresLikeRepository_CreateLike(t *testing.T) {
	ctx := context.TODO()
	const insertSQL = `INSERT INTO product_likes`

	t.Run("Inserted", func(t *testing.T) {
		db, tx, sm := newTxMock(t)
		repo := NewPostgresLikeRepository(db)
		like := domain.NewLike(3, 10)
		now := time.Now()

		sm.ExpectQuery(insertSQL).WithArgs(int64(3), int64(10)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(55), now))

		require.NoError(t, repo.CreateLike(ctx, tx, like))
		assert.Equal(t, int64(55), like.ID)
		assert.NoError(t, sm.ExpectationsWereMet())
	})

	t.Run("pgx unique violation is already liked", func(t *testing.T) {
		db, tx, sm := newTxMock(t)
		repo := NewPostgresLikeRepository(db)

		sm.ExpectQuery(insertSQL).WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uk_like_member_product"})

		err := repo.CreateLike(ctx, tx, domain.NewLike(3, 10))
		assert.ErrorIs(t, err, domain.ErrAlreadyLiked)
		assert.NoError(t, sm.ExpectationsWereMet())
	})

	t.Run("lib/pq unique violation is already liked", func(t *testing.T) {
		db, tx, sm := newTxMock(t)
		repo := NewPostgresLikeRepository(db)

		sm.ExpectQuery(insertSQL).WillReturnError(&pq.Error{Code: "23505"})

		err := repo.CreateLike(ctx, tx, domain.NewLike(3, 10))
		assert.ErrorIs(t, err, domain.ErrAlreadyLiked)
	})

	t.Run("Foreign key violation is not already liked", func(t *testing.T) {
		db, tx, sm := newTxMock(t)
		repo := NewPostgresLikeRepository(db)

		sm.ExpectQuery(insertSQL).WillReturnError(&pgconn.PgError{Code: "23503"})

		err := repo.CreateLike(ctx, tx, domain.NewLike(3, 10))
		assert.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrAlreadyLiked)
	})
}

func TestPostgresLikeRepository_DeleteLike(t *testing.T) {
	ctx := context.TODO()
	const deleteSQL = `DELETE FROM product_likes WHERE id = (.+)`

	t.Run("Deleted", func(t *testing.T) {
		db, tx, sm := newTxMock(t)
		repo := NewPostgresLikeRepository(db)

		sm.ExpectExec(deleteSQL).WithArgs(int64(55)).WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.DeleteLike(ctx, tx, 55))
		assert.NoError(t, sm.ExpectationsWereMet())
	})

	t.Run("No row is like not found", func(t *testing.T) {
		db, tx, sm := newTxMock(t)
		repo := NewPostgresLikeRepository(db)

		sm.ExpectExec(deleteSQL).WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.DeleteLike(ctx, tx, 55), domain.ErrLikeNotFound)
	})

	t.Run("Rows affected error propagates", func(t *testing.T) {
		db, tx, sm := newTxMock(t)
		repo := NewPostgresLikeRepository(db)
		resErr := errors.New("rows affected unavailable")

		sm.ExpectExec(deleteSQL).WillReturnResult(sqlmock.NewErrorResult(resErr))

		err := repo.DeleteLike(ctx, tx, 55)
		assert.ErrorIs(t, err, resErr)
		assert.NotErrorIs(t, err, domain.ErrLikeNotFound)
	})
}

func TestPostgresLikeRepository_Reconcile(t *testing.T) {
	ctx := context.TODO()

	t.Run("Drifted candidates", func(t *testing.T) {
		db, sm, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewPostgresLikeRepository(db)

		sm.ExpectQuery(`SELECT p.id FROM products p LEFT JOIN product_likes pl (.+) HAVING p.like_count <> COUNT\(pl.id\)`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(4)).AddRow(int64(8)))

		ids, err := repo.ListDriftedProductIDs(ctx)
		require.NoError(t, err)
		assert.Equal(t, []int64{4, 8}, ids)
		assert.NoError(t, sm.ExpectationsWereMet())
	})

	t.Run("Count runs inside the caller's transaction", func(t *testing.T) {
		db, tx, sm := newTxMock(t)
		repo := NewPostgresLikeRepository(db)

		sm.ExpectQuery(`SELECT COUNT\(\*\) FROM product_likes WHERE product_id = (.+)`).WithArgs(int64(4)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(3)))
		sm.ExpectCommit()

		n, err := repo.CountLikes(ctx, tx, 4)
		require.NoError(t, err)
		assert.Equal(t, 3, n)
		require.NoError(t, tx.Commit())
		assert.NoError(t, sm.ExpectationsWereMet())
	})
}
