package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestConstraintViolations(t *testing.T) {
	t.Run("pgx unique violation", func(t *testing.T) {
		err := fmt.Errorf("insert like: %w", &pgconn.PgError{Code: "23505"})
		assert.True(t, IsUniqueViolation(err))
		assert.False(t, IsCheckViolation(err))
	})

	t.Run("lib/pq check violation", func(t *testing.T) {
		err := &pq.Error{Code: "23514"}
		assert.True(t, IsCheckViolation(err))
		assert.False(t, IsUniqueViolation(err))
	})

	t.Run("lib/pq foreign key violation", func(t *testing.T) {
		assert.True(t, IsForeignKeyViolation(&pq.Error{Code: "23503"}))
	})

	t.Run("Non driver errors", func(t *testing.T) {
		assert.False(t, IsUniqueViolation(nil))
		assert.False(t, IsUniqueViolation(errors.New("23505")))
	})
}

func TestSchemaIsEmbedded(t *testing.T) {
	assert.Contains(t, schema, "CREATE TABLE IF NOT EXISTS products")
	assert.Contains(t, schema, "uk_like_member_product UNIQUE (member_id, product_id)")
}
