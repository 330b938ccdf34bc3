package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/loopers/commerce-api/internal/order/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresOrderRepository_UpdateOrderStatus(t *testing.T) {
	ctx := context.TODO()
	const updateSQL = `UPDATE orders SET status = (.+) WHERE id = (.+)`

	resErr := errors.New("rows affected unavailable")
	cases := []struct {
		name    string
		result  driver.Result
		wantErr error
	}{
		{"Updated", sqlmock.NewResult(0, 1), nil},
		{"No row is order not found", sqlmock.NewResult(0, 0), domain.ErrOrderNotFound},
		{"Rows affected error propagates", sqlmock.NewErrorResult(resErr), resErr},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db, sm, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			repo := NewPostgresOrderRepository(db)

			sm.ExpectBegin()
			tx, err := db.Begin()
			require.NoError(t, err)

			sm.ExpectExec(updateSQL).WithArgs("CANCELLED", int64(501)).WillReturnResult(tc.result)

			err = repo.UpdateOrderStatus(ctx, tx, 501, domain.StatusCancelled)
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
			assert.NoError(t, sm.ExpectationsWereMet())
		})
	}
}
