package employeeprofile

import (
	"context"
	"database/sql"

	"go-hrms/internal/shared/dbutil"

	"gorm.io/gorm"
)

type ProfileFilter struct {
	Status EmployeeStatus
}

type ChangeRequestFilter struct {
	EmployeeProfileID string
	Status            ProfileChangeStatus
}

//go:generate mockgen -source=profile_repo.go -destination=mock/profile_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	Create(ctx context.Context, p *EmployeeProfile) error
	FindByID(ctx context.Context, id string) (*EmployeeProfile, error)
	List(ctx context.Context, filter ProfileFilter) ([]EmployeeProfile, error)
	Update(ctx context.Context, p *EmployeeProfile) error
	Exists(ctx context.Context, id string) (bool, error)

	CreateChangeRequest(ctx context.Context, r *ProfileChangeRequest) error
	FindChangeRequestByID(ctx context.Context, id string) (*ProfileChangeRequest, error)
	ListChangeRequests(ctx context.Context, filter ChangeRequestFilter) ([]ProfileChangeRequest, error)
	UpdateChangeRequest(ctx context.Context, r *ProfileChangeRequest) error
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

func (r *repository) Create(ctx context.Context, p *EmployeeProfile) error {
	return r.conn(ctx).Create(p).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*EmployeeProfile, error) {
	var p EmployeeProfile
	err := r.conn(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repository) List(ctx context.Context, filter ProfileFilter) ([]EmployeeProfile, error) {
	db := r.conn(ctx).Model(&EmployeeProfile{})
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}

	var profiles []EmployeeProfile
	err := db.Order("employee_number ASC").Find(&profiles).Error
	return profiles, err
}

func (r *repository) Update(ctx context.Context, p *EmployeeProfile) error {
	return r.conn(ctx).Save(p).Error
}

func (r *repository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.conn(ctx).Model(&EmployeeProfile{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *repository) CreateChangeRequest(ctx context.Context, req *ProfileChangeRequest) error {
	return r.conn(ctx).Create(req).Error
}

func (r *repository) FindChangeRequestByID(ctx context.Context, id string) (*ProfileChangeRequest, error) {
	var req ProfileChangeRequest
	err := r.conn(ctx).First(&req, "id = ?", id).Error
	return &req, err
}

func (r *repository) ListChangeRequests(ctx context.Context, filter ChangeRequestFilter) ([]ProfileChangeRequest, error) {
	db := r.conn(ctx).Model(&ProfileChangeRequest{})
	if filter.EmployeeProfileID != "" {
		db = db.Where("employee_profile_id = ?", filter.EmployeeProfileID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}

	var requests []ProfileChangeRequest
	err := db.Order("created_at DESC").Find(&requests).Error
	return requests, err
}

func (r *repository) UpdateChangeRequest(ctx context.Context, req *ProfileChangeRequest) error {
	return r.conn(ctx).Save(req).Error
}
