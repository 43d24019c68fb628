package dbutil

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestUniqueViolation(t *testing.T) {
	t.Run("pg error", func(t *testing.T) {
		err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "uq_applications_candidate_requisition"})
		constraint, ok := UniqueViolation(err)
		assert.True(t, ok)
		assert.Equal(t, "uq_applications_candidate_requisition", constraint)
	})

	t.Run("other pg error", func(t *testing.T) {
		_, ok := UniqueViolation(&pgconn.PgError{Code: "23503"})
		assert.False(t, ok)
	})

	t.Run("gorm translated", func(t *testing.T) {
		_, ok := UniqueViolation(gorm.ErrDuplicatedKey)
		assert.True(t, ok)
	})

	t.Run("plain message", func(t *testing.T) {
		_, ok := UniqueViolation(errors.New(`ERROR: duplicate key value violates unique constraint "x"`))
		assert.True(t, ok)
	})

	t.Run("nil", func(t *testing.T) {
		_, ok := UniqueViolation(nil)
		assert.False(t, ok)
	})
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(fmt.Errorf("find: %w", gorm.ErrRecordNotFound)))
	assert.False(t, IsNotFound(errors.New("boom")))
}
