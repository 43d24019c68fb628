package leave

import (
	"context"
	"database/sql"
	"time"

	"go-hrms/internal/shared/dbutil"

	"gorm.io/gorm"
)

type ListFilter struct {
	EmployeeID string
	Status     LeaveStatus
}

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	CreateRequest(ctx context.Context, r *LeaveRequest) error
	FindRequestByID(ctx context.Context, id string) (*LeaveRequest, error)
	ListRequests(ctx context.Context, filter ListFilter) ([]LeaveRequest, error)
	UpdateRequest(ctx context.Context, r *LeaveRequest) error
	HasOverlappingRequest(ctx context.Context, employeeID string, from, to time.Time) (bool, error)
	FindEntitlement(ctx context.Context, employeeID string, leaveType LeaveType) (*LeaveEntitlement, error)
	ListEntitlements(ctx context.Context, employeeID string) ([]LeaveEntitlement, error)
	SaveEntitlement(ctx context.Context, e *LeaveEntitlement) error
	CreateAdjustment(ctx context.Context, a *LeaveAdjustment) error
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

func (r *repository) CreateRequest(ctx context.Context, req *LeaveRequest) error {
	return r.conn(ctx).Create(req).Error
}

func (r *repository) FindRequestByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var req LeaveRequest
	err := r.conn(ctx).First(&req, "id = ?", id).Error
	return &req, err
}

func (r *repository) ListRequests(ctx context.Context, filter ListFilter) ([]LeaveRequest, error) {
	db := r.conn(ctx).Model(&LeaveRequest{})
	if filter.EmployeeID != "" {
		db = db.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}

	var reqs []LeaveRequest
	err := db.Order("from_date DESC").Find(&reqs).Error
	return reqs, err
}

func (r *repository) UpdateRequest(ctx context.Context, req *LeaveRequest) error {
	return r.conn(ctx).Save(req).Error
}

// HasOverlappingRequest only counts requests that still hold the days.
func (r *repository) HasOverlappingRequest(ctx context.Context, employeeID string, from, to time.Time) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Model(&LeaveRequest{}).
		Where("employee_id = ?", employeeID).
		Where("status IN ?", []LeaveStatus{StatusPending, StatusApproved}).
		Where("NOT (to_date < ? OR from_date > ?)", from, to).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) FindEntitlement(ctx context.Context, employeeID string, leaveType LeaveType) (*LeaveEntitlement, error) {
	var e LeaveEntitlement
	err := r.conn(ctx).
		Where("employee_id = ? AND leave_type = ?", employeeID, leaveType).
		First(&e).Error
	return &e, err
}

func (r *repository) ListEntitlements(ctx context.Context, employeeID string) ([]LeaveEntitlement, error) {
	var es []LeaveEntitlement
	err := r.conn(ctx).
		Where("employee_id = ?", employeeID).
		Order("leave_type ASC").
		Find(&es).Error
	return es, err
}

func (r *repository) SaveEntitlement(ctx context.Context, e *LeaveEntitlement) error {
	return r.conn(ctx).Save(e).Error
}

func (r *repository) CreateAdjustment(ctx context.Context, a *LeaveAdjustment) error {
	return r.conn(ctx).Create(a).Error
}
