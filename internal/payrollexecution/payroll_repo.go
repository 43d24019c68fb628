package payrollexecution

import (
	"context"
	"database/sql"

	"go-hrms/internal/shared/dbutil"

	"gorm.io/gorm"
)

type RunFilter struct {
	Status PayrollRunStatus
	Entity string
}

type Repository interface {
	WithTx(tx *sql.Tx) Repository

	CreateRun(ctx context.Context, run *PayrollRun) error
	FindRunByID(ctx context.Context, id string) (*PayrollRun, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]PayrollRun, error)
	UpdateRun(ctx context.Context, run *PayrollRun) error

	FindEntry(ctx context.Context, runID, employeeID string) (*PayrollEntry, error)
	FindEntryByID(ctx context.Context, id string) (*PayrollEntry, error)
	ListEntries(ctx context.Context, runID string) ([]PayrollEntry, error)
	SaveEntry(ctx context.Context, entry *PayrollEntry) error

	CreatePayslip(ctx context.Context, slip *Payslip) error
	FindPayslipByID(ctx context.Context, id string) (*Payslip, error)
	PayslipExists(ctx context.Context, runID, employeeID string) (bool, error)
	ListPayslips(ctx context.Context, runID string) ([]Payslip, error)
	UpdatePayslip(ctx context.Context, slip *Payslip) error
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

func (r *repository) CreateRun(ctx context.Context, run *PayrollRun) error {
	return r.conn(ctx).Create(run).Error
}

func (r *repository) FindRunByID(ctx context.Context, id string) (*PayrollRun, error) {
	var run PayrollRun
	err := r.conn(ctx).First(&run, "id = ?", id).Error
	return &run, err
}

func (r *repository) ListRuns(ctx context.Context, filter RunFilter) ([]PayrollRun, error) {
	db := r.conn(ctx).Model(&PayrollRun{})
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.Entity != "" {
		db = db.Where("entity = ?", filter.Entity)
	}

	var runs []PayrollRun
	err := db.Order("payroll_period DESC, created_at DESC").Find(&runs).Error
	return runs, err
}

func (r *repository) UpdateRun(ctx context.Context, run *PayrollRun) error {
	return r.conn(ctx).Save(run).Error
}

func (r *repository) FindEntry(ctx context.Context, runID, employeeID string) (*PayrollEntry, error) {
	var entry PayrollEntry
	err := r.conn(ctx).
		Where("payroll_run_id = ? AND employee_id = ?", runID, employeeID).
		First(&entry).Error
	return &entry, err
}

func (r *repository) FindEntryByID(ctx context.Context, id string) (*PayrollEntry, error) {
	var entry PayrollEntry
	err := r.conn(ctx).First(&entry, "id = ?", id).Error
	return &entry, err
}

func (r *repository) ListEntries(ctx context.Context, runID string) ([]PayrollEntry, error) {
	var entries []PayrollEntry
	err := r.conn(ctx).
		Where("payroll_run_id = ?", runID).
		Order("employee_id ASC").
		Find(&entries).Error
	return entries, err
}

func (r *repository) SaveEntry(ctx context.Context, entry *PayrollEntry) error {
	return r.conn(ctx).Save(entry).Error
}

func (r *repository) CreatePayslip(ctx context.Context, slip *Payslip) error {
	return r.conn(ctx).Create(slip).Error
}

func (r *repository) FindPayslipByID(ctx context.Context, id string) (*Payslip, error) {
	var slip Payslip
	err := r.conn(ctx).First(&slip, "id = ?", id).Error
	return &slip, err
}

func (r *repository) PayslipExists(ctx context.Context, runID, employeeID string) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Model(&Payslip{}).
		Where("payroll_run_id = ? AND employee_id = ?", runID, employeeID).
		Count(&count).Error
	return count > 0, err
}

// ListPayslips leaves the PDF column out; it is only loaded by FindPayslipByID.
func (r *repository) ListPayslips(ctx context.Context, runID string) ([]Payslip, error) {
	var slips []Payslip
	err := r.conn(ctx).
		Omit("pdf").
		Where("payroll_run_id = ?", runID).
		Order("employee_id ASC").
		Find(&slips).Error
	return slips, err
}

func (r *repository) UpdatePayslip(ctx context.Context, slip *Payslip) error {
	return r.conn(ctx).Save(slip).Error
}
