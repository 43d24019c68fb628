package payrolltracking

import (
	"context"
	"database/sql"

	"go-hrms/internal/shared/dbutil"

	"gorm.io/gorm"
)

type ListFilter struct {
	EmployeeID string
	Status     string
}

type RefundFilter struct {
	EmployeeID string
	Status     RefundStatus
}

type Repository interface {
	WithTx(tx *sql.Tx) Repository

	CreateClaim(ctx context.Context, c *Claim) error
	FindClaimByID(ctx context.Context, id string) (*Claim, error)
	ListClaims(ctx context.Context, filter ListFilter) ([]Claim, error)
	UpdateClaim(ctx context.Context, c *Claim) error

	CreateDispute(ctx context.Context, d *Dispute) error
	FindDisputeByID(ctx context.Context, id string) (*Dispute, error)
	ListDisputes(ctx context.Context, filter ListFilter) ([]Dispute, error)
	UpdateDispute(ctx context.Context, d *Dispute) error

	CreateRefund(ctx context.Context, r *Refund) error
	FindRefundByID(ctx context.Context, id string) (*Refund, error)
	RefundExistsForClaim(ctx context.Context, claimID string) (bool, error)
	RefundExistsForDispute(ctx context.Context, disputeID string) (bool, error)
	ListRefunds(ctx context.Context, filter RefundFilter) ([]Refund, error)
	UpdateRefund(ctx context.Context, r *Refund) error
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

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return dbutil.Conn(ctx, r.db, r.tx)
}

func applyFilter(db *gorm.DB, filter ListFilter) *gorm.DB {
	if filter.EmployeeID != "" {
		db = db.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	return db
}

func (r *repository) CreateClaim(ctx context.Context, c *Claim) error {
	return r.conn(ctx).Create(c).Error
}

func (r *repository) FindClaimByID(ctx context.Context, id string) (*Claim, error) {
	var c Claim
	err := r.conn(ctx).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *repository) ListClaims(ctx context.Context, filter ListFilter) ([]Claim, error) {
	var claims []Claim
	err := applyFilter(r.conn(ctx).Model(&Claim{}), filter).
		Order("created_at DESC").
		Find(&claims).Error
	return claims, err
}

func (r *repository) UpdateClaim(ctx context.Context, c *Claim) error {
	return r.conn(ctx).Save(c).Error
}

func (r *repository) CreateDispute(ctx context.Context, d *Dispute) error {
	return r.conn(ctx).Create(d).Error
}

func (r *repository) FindDisputeByID(ctx context.Context, id string) (*Dispute, error) {
	var d Dispute
	err := r.conn(ctx).First(&d, "id = ?", id).Error
	return &d, err
}

func (r *repository) ListDisputes(ctx context.Context, filter ListFilter) ([]Dispute, error) {
	var disputes []Dispute
	err := applyFilter(r.conn(ctx).Model(&Dispute{}), filter).
		Order("created_at DESC").
		Find(&disputes).Error
	return disputes, err
}

func (r *repository) UpdateDispute(ctx context.Context, d *Dispute) error {
	return r.conn(ctx).Save(d).Error
}

func (r *repository) CreateRefund(ctx context.Context, ref *Refund) error {
	return r.conn(ctx).Create(ref).Error
}

func (r *repository) FindRefundByID(ctx context.Context, id string) (*Refund, error) {
	var ref Refund
	err := r.conn(ctx).First(&ref, "id = ?", id).Error
	return &ref, err
}

func (r *repository) RefundExistsForClaim(ctx context.Context, claimID string) (bool, error) {
	var count int64
	err := r.conn(ctx).Model(&Refund{}).Where("claim_id = ?", claimID).Count(&count).Error
	return count > 0, err
}

func (r *repository) RefundExistsForDispute(ctx context.Context, disputeID string) (bool, error) {
	var count int64
	err := r.conn(ctx).Model(&Refund{}).Where("dispute_id = ?", disputeID).Count(&count).Error
	return count > 0, err
}

func (r *repository) ListRefunds(ctx context.Context, filter RefundFilter) ([]Refund, error) {
	db := r.conn(ctx).Model(&Refund{})
	if filter.EmployeeID != "" {
		db = db.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}

	var refunds []Refund
	err := db.Order("created_at DESC").Find(&refunds).Error
	return refunds, err
}

func (r *repository) UpdateRefund(ctx context.Context, ref *Refund) error {
	return r.conn(ctx).Save(ref).Error
}
