package recruitment

import (
	"context"
	"database/sql"

	"go-hrms/internal/shared/dbutil"

	"gorm.io/gorm"
)

type ApplicationFilter struct {
	CandidateID   string
	RequisitionID string
	Status        ApplicationStatus
}

type Repository interface {
	WithTx(tx *sql.Tx) Repository

	CreateApplication(ctx context.Context, a *Application) error
	FindApplicationByID(ctx context.Context, id string) (*Application, error)
	ListApplications(ctx context.Context, filter ApplicationFilter) ([]Application, error)
	UpdateApplication(ctx context.Context, a *Application) error
	AppendHistory(ctx context.Context, h *ApplicationStatusHistory) error
	ListHistory(ctx context.Context, applicationID string) ([]ApplicationStatusHistory, error)

	CreateOnboarding(ctx context.Context, o *Onboarding) error
	FindOnboardingByID(ctx context.Context, id string) (*Onboarding, error)
	FindOnboardingByEmployee(ctx context.Context, employeeID string) (*Onboarding, error)
	OnboardingExists(ctx context.Context, employeeID string) (bool, error)
	UpdateOnboarding(ctx context.Context, o *Onboarding) error
	UpdateTask(ctx context.Context, t *OnboardingTask) error
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

func (r *repository) CreateApplication(ctx context.Context, a *Application) error {
	return r.conn(ctx).Create(a).Error
}

func (r *repository) FindApplicationByID(ctx context.Context, id string) (*Application, error) {
	var a Application
	err := r.conn(ctx).First(&a, "id = ?", id).Error
	return &a, err
}

func (r *repository) ListApplications(ctx context.Context, filter ApplicationFilter) ([]Application, error) {
	db := r.conn(ctx).Model(&Application{})
	if filter.CandidateID != "" {
		db = db.Where("candidate_id = ?", filter.CandidateID)
	}
	if filter.RequisitionID != "" {
		db = db.Where("requisition_id = ?", filter.RequisitionID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}

	var apps []Application
	err := db.Order("created_at DESC").Find(&apps).Error
	return apps, err
}

func (r *repository) UpdateApplication(ctx context.Context, a *Application) error {
	return r.conn(ctx).Save(a).Error
}

func (r *repository) AppendHistory(ctx context.Context, h *ApplicationStatusHistory) error {
	return r.conn(ctx).Create(h).Error
}

func (r *repository) ListHistory(ctx context.Context, applicationID string) ([]ApplicationStatusHistory, error) {
	var history []ApplicationStatusHistory
	err := r.conn(ctx).
		Where("application_id = ?", applicationID).
		Order("created_at ASC").
		Find(&history).Error
	return history, err
}

// CreateOnboarding inserts the onboarding and its tasks in one statement batch.
func (r *repository) CreateOnboarding(ctx context.Context, o *Onboarding) error {
	return r.conn(ctx).Create(o).Error
}

func (r *repository) withTasks(ctx context.Context) *gorm.DB {
	return r.conn(ctx).Preload("Tasks", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
}

func (r *repository) FindOnboardingByID(ctx context.Context, id string) (*Onboarding, error) {
	var o Onboarding
	err := r.withTasks(ctx).First(&o, "id = ?", id).Error
	return &o, err
}

func (r *repository) FindOnboardingByEmployee(ctx context.Context, employeeID string) (*Onboarding, error) {
	var o Onboarding
	err := r.withTasks(ctx).First(&o, "employee_id = ?", employeeID).Error
	return &o, err
}

func (r *repository) OnboardingExists(ctx context.Context, employeeID string) (bool, error) {
	var count int64
	err := r.conn(ctx).Model(&Onboarding{}).Where("employee_id = ?", employeeID).Count(&count).Error
	return count > 0, err
}

// UpdateOnboarding saves the onboarding row only; tasks are saved with UpdateTask.
func (r *repository) UpdateOnboarding(ctx context.Context, o *Onboarding) error {
	return r.conn(ctx).Omit("Tasks").Save(o).Error
}

func (r *repository) UpdateTask(ctx context.Context, t *OnboardingTask) error {
	return r.conn(ctx).Save(t).Error
}
