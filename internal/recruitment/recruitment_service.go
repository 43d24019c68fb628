package recruitment

import (
	"context"
	"database/sql"
	"strings"
	"time"

	recruitmenterrors "go-hrms/internal/recruitment/errors"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/dbutil"
	"go-hrms/internal/shared/objectid"
	"go-hrms/internal/validation"

	"go.uber.org/zap"
)

type Service interface {
	CreateApplication(ctx context.Context, actorID string, req CreateApplicationDto) (ApplicationResponse, error)
	ListApplications(ctx context.Context, filter ApplicationFilter) ([]ApplicationResponse, error)
	GetApplication(ctx context.Context, id string) (ApplicationResponse, error)
	UpdateApplicationStatus(ctx context.Context, id string, req UpdateApplicationStatusDto) (ApplicationResponse, error)

	CreateOnboarding(ctx context.Context, req CreateOnboardingDto) (OnboardingResponse, error)
	GetOnboarding(ctx context.Context, employeeID string) (OnboardingResponse, error)
	UpdateTask(ctx context.Context, onboardingID, taskID string, req UpdateOnboardingTaskDto) (OnboardingResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("recruitment.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("recruitment.service")
	}
	return &service{db: db, repo: repo, logger: l, now: time.Now}
}

func (s *service) CreateApplication(ctx context.Context, actorID string, req CreateApplicationDto) (ApplicationResponse, error) {
	s.logger.Debug("create application requested",
		zap.String("candidate_id", req.CandidateID),
		zap.String("requisition_id", req.RequisitionID),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create application begin tx failed", zap.Error(err))
		return ApplicationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	a := &Application{
		ID:            objectid.New(),
		CandidateID:   req.CandidateID,
		RequisitionID: req.RequisitionID,
		AssignedHRID:  req.AssignedHRID,
		Status:        ApplicationSubmitted,
	}
	if err := qtx.CreateApplication(ctx, a); err != nil {
		if _, ok := dbutil.UniqueViolation(err); ok {
			s.logger.Warn("create application duplicate",
				zap.String("candidate_id", req.CandidateID),
				zap.String("requisition_id", req.RequisitionID),
			)
			return ApplicationResponse{}, recruitmenterrors.ErrApplicationExists
		}
		s.logger.Error("create application persist failed", zap.Error(err))
		return ApplicationResponse{}, err
	}

	changedBy := actorID
	if changedBy == "" {
		changedBy = req.CandidateID
	}
	h := &ApplicationStatusHistory{
		ID:            objectid.New(),
		ApplicationID: a.ID,
		NewStatus:     ApplicationSubmitted,
		ChangedBy:     changedBy,
	}
	if err := qtx.AppendHistory(ctx, h); err != nil {
		s.logger.Error("create application history failed", zap.Error(err))
		return ApplicationResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create application commit failed", zap.Error(err))
		return ApplicationResponse{}, err
	}

	s.logger.Info("create application success", zap.String("application_id", a.ID))
	return mapToApplicationResponse(*a, []ApplicationStatusHistory{*h}), nil
}

func (s *service) ListApplications(ctx context.Context, filter ApplicationFilter) ([]ApplicationResponse, error) {
	apps, err := s.repo.ListApplications(ctx, filter)
	if err != nil {
		s.logger.Error("list applications failed", zap.Error(err))
		return nil, err
	}
	return mapToApplicationListResponse(apps), nil
}

func findApplication(ctx context.Context, repo Repository, id string) (*Application, error) {
	a, err := repo.FindApplicationByID(ctx, id)
	if err != nil {
		if dbutil.IsNotFound(err) {
			return nil, recruitmenterrors.ErrApplicationNotFound
		}
		return nil, err
	}
	return a, nil
}

func (s *service) GetApplication(ctx context.Context, id string) (ApplicationResponse, error) {
	a, err := findApplication(ctx, s.repo, id)
	if err != nil {
		return ApplicationResponse{}, err
	}

	history, err := s.repo.ListHistory(ctx, id)
	if err != nil {
		s.logger.Error("get application history failed", zap.String("application_id", id), zap.Error(err))
		return ApplicationResponse{}, err
	}
	return mapToApplicationResponse(*a, history), nil
}

func (s *service) UpdateApplicationStatus(ctx context.Context, id string, req UpdateApplicationStatusDto) (ApplicationResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update application status begin tx failed", zap.Error(err))
		return ApplicationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	a, err := findApplication(ctx, qtx, id)
	if err != nil {
		return ApplicationResponse{}, err
	}

	if !a.Status.CanTransition(req.Status) {
		s.logger.Warn("update application status invalid transition",
			zap.String("application_id", id),
			zap.String("from", string(a.Status)),
			zap.String("to", string(req.Status)),
		)
		return ApplicationResponse{}, recruitmenterrors.ErrInvalidStatusTransition
	}

	previous := a.Status
	a.Status = req.Status
	if err := qtx.UpdateApplication(ctx, a); err != nil {
		s.logger.Error("update application status persist failed", zap.Error(err))
		return ApplicationResponse{}, err
	}

	var reason *string
	if req.Reason != nil {
		if trimmed := strings.TrimSpace(*req.Reason); trimmed != "" {
			reason = &trimmed
		}
	}
	if err := qtx.AppendHistory(ctx, &ApplicationStatusHistory{
		ID:            objectid.New(),
		ApplicationID: a.ID,
		OldStatus:     &previous,
		NewStatus:     req.Status,
		ChangedBy:     req.ChangedBy,
		Reason:        reason,
	}); err != nil {
		s.logger.Error("update application status history failed", zap.Error(err))
		return ApplicationResponse{}, err
	}

	history, err := qtx.ListHistory(ctx, a.ID)
	if err != nil {
		return ApplicationResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update application status commit failed", zap.Error(err))
		return ApplicationResponse{}, err
	}

	s.logger.Info("update application status success",
		zap.String("application_id", id),
		zap.String("from", string(previous)),
		zap.String("to", string(req.Status)),
	)
	return mapToApplicationResponse(*a, history), nil
}

func parseOptionalDate(field string, value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	t, err := validation.ParseISODate(*value)
	if err != nil {
		return nil, apperror.InvalidField(field)
	}
	return &t, nil
}

func (s *service) CreateOnboarding(ctx context.Context, req CreateOnboardingDto) (OnboardingResponse, error) {
	s.logger.Debug("create onboarding requested",
		zap.String("employee_id", req.EmployeeID),
		zap.Int("tasks", len(req.Tasks)),
	)

	o := &Onboarding{
		ID:         objectid.New(),
		EmployeeID: req.EmployeeID,
		ContractID: req.ContractID,
		Tasks:      make([]OnboardingTask, 0, len(req.Tasks)),
	}
	for i, t := range req.Tasks {
		deadline, err := parseOptionalDate("deadline", t.Deadline)
		if err != nil {
			return OnboardingResponse{}, err
		}
		o.Tasks = append(o.Tasks, OnboardingTask{
			ID:           objectid.New(),
			OnboardingID: o.ID,
			Position:     i,
			Name:         strings.TrimSpace(t.Name),
			Department:   strings.TrimSpace(t.Department),
			Status:       TaskPending,
			Deadline:     deadline,
			Notes:        t.Notes,
		})
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create onboarding begin tx failed", zap.Error(err))
		return OnboardingResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.OnboardingExists(ctx, req.EmployeeID)
	if err != nil {
		return OnboardingResponse{}, err
	}
	if exists {
		return OnboardingResponse{}, recruitmenterrors.ErrOnboardingExists
	}

	if err := qtx.CreateOnboarding(ctx, o); err != nil {
		if _, ok := dbutil.UniqueViolation(err); ok {
			return OnboardingResponse{}, recruitmenterrors.ErrOnboardingExists
		}
		s.logger.Error("create onboarding persist failed", zap.Error(err))
		return OnboardingResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("create onboarding commit failed", zap.Error(err))
		return OnboardingResponse{}, err
	}

	s.logger.Info("create onboarding success",
		zap.String("onboarding_id", o.ID),
		zap.String("employee_id", o.EmployeeID),
	)
	return mapToOnboardingResponse(*o), nil
}

func (s *service) GetOnboarding(ctx context.Context, employeeID string) (OnboardingResponse, error) {
	o, err := s.repo.FindOnboardingByEmployee(ctx, employeeID)
	if err != nil {
		if dbutil.IsNotFound(err) {
			return OnboardingResponse{}, recruitmenterrors.ErrOnboardingNotFound
		}
		return OnboardingResponse{}, err
	}
	return mapToOnboardingResponse(*o), nil
}

func (s *service) UpdateTask(ctx context.Context, onboardingID, taskID string, req UpdateOnboardingTaskDto) (OnboardingResponse, error) {
	completedAt, err := parseOptionalDate("completedAt", req.CompletedAt)
	if err != nil {
		return OnboardingResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update onboarding task begin tx failed", zap.Error(err))
		return OnboardingResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	o, err := qtx.FindOnboardingByID(ctx, onboardingID)
	if err != nil {
		if dbutil.IsNotFound(err) {
			return OnboardingResponse{}, recruitmenterrors.ErrOnboardingNotFound
		}
		return OnboardingResponse{}, err
	}

	idx := -1
	for i := range o.Tasks {
		if o.Tasks[i].ID == taskID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return OnboardingResponse{}, recruitmenterrors.ErrOnboardingTaskNotFound
	}

	now := s.now().UTC()
	task := &o.Tasks[idx]
	task.Status = req.Status
	if req.Status == TaskCompleted {
		if completedAt == nil {
			completedAt = &now
		}
		task.CompletedAt = completedAt
	} else {
		task.CompletedAt = nil
	}
	if req.DocumentID != nil {
		task.DocumentID = req.DocumentID
	}
	if req.Notes != nil {
		task.Notes = req.Notes
	}
	if err := qtx.UpdateTask(ctx, task); err != nil {
		s.logger.Error("update onboarding task persist failed", zap.String("task_id", taskID), zap.Error(err))
		return OnboardingResponse{}, err
	}

	wasCompleted := o.Completed
	o.Completed = o.allTasksCompleted()
	if o.Completed != wasCompleted {
		if o.Completed {
			o.CompletedAt = &now
		} else {
			o.CompletedAt = nil
		}
		if err := qtx.UpdateOnboarding(ctx, o); err != nil {
			s.logger.Error("update onboarding persist failed", zap.String("onboarding_id", onboardingID), zap.Error(err))
			return OnboardingResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update onboarding task commit failed", zap.Error(err))
		return OnboardingResponse{}, err
	}

	s.logger.Info("update onboarding task success",
		zap.String("onboarding_id", onboardingID),
		zap.String("task_id", taskID),
		zap.String("status", string(req.Status)),
		zap.Bool("onboarding_completed", o.Completed),
	)
	return mapToOnboardingResponse(*o), nil
}
