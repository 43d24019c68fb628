// Package counter hands out gap-tolerant, per-name sequence numbers used for
// human readable record codes such as CLAIM-0007.
package counter

import (
	"context"
	"database/sql"
	"fmt"

	"go-hrms/internal/shared/dbutil"

	"gorm.io/gorm"
)

//go:generate mockgen -source=counter.go -destination=mock/counter_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Next(ctx context.Context, name string) (int64, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

// Next atomically increments and returns the counter, creating it at 1.
func (r *repository) Next(ctx context.Context, name string) (int64, error) {
	var next int64
	err := dbutil.Conn(ctx, r.db, r.tx).Raw(`
		INSERT INTO sequence_counters (name, last_value, updated_at)
		VALUES (?, 1, now())
		ON CONFLICT (name) DO UPDATE
		SET last_value = sequence_counters.last_value + 1, updated_at = now()
		RETURNING last_value
	`, name).Scan(&next).Error
	if err != nil {
		return 0, err
	}
	return next, nil
}

// Code formats a sequence value as PREFIX-0001.
func Code(prefix string, n int64) string {
	return fmt.Sprintf("%s-%04d", prefix, n)
}
