package employeeprofile

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	profileerrors "go-hrms/internal/employeeprofile/errors"
	"go-hrms/internal/events"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/shared/counter"
	"go-hrms/internal/shared/dbutil"
	"go-hrms/internal/shared/objectid"
	"go-hrms/internal/validation"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	ProfileCacheKeyPrefix = "employee_profiles:"
	ProfileCacheTTL       = 10 * time.Minute
)

func ProfileCacheKey(id string) string {
	return ProfileCacheKeyPrefix + id
}

type Service interface {
	CreateProfile(ctx context.Context, req CreateEmployeeProfileDto) (EmployeeProfileResponse, error)
	ListProfiles(ctx context.Context, filter ProfileFilter) ([]EmployeeProfileResponse, error)
	GetProfile(ctx context.Context, id string) (EmployeeProfileResponse, error)
	UpdateContactInfo(ctx context.Context, id string, req UpdateContactInfoDto) (EmployeeProfileResponse, error)
	UpdateStatus(ctx context.Context, id string, req UpdateEmployeeStatusDto) (EmployeeProfileResponse, error)

	SubmitChangeRequest(ctx context.Context, req CreateProfileChangeRequestDto) (ChangeRequestResponse, error)
	ListChangeRequests(ctx context.Context, filter ChangeRequestFilter) ([]ChangeRequestResponse, error)
	ProcessChangeRequest(ctx context.Context, actorID, id string, req ProcessChangeRequestDto) (ChangeRequestResponse, error)
	CancelChangeRequest(ctx context.Context, id string) (ChangeRequestResponse, error)
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	outbox  kafka.OutboxRepository
	rdb     redis.Cmdable
	sf      *singleflight.Group
	logger  *zap.Logger
	now     func() time.Time
}

func NewService(
	db *sql.DB,
	repo Repository,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb redis.Cmdable,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employeeprofile.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employeeprofile.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counterRepo,
		outbox:  outboxRepo,
		rdb:     rdb,
		sf:      &singleflight.Group{},
		logger:  l,
		now:     time.Now,
	}
}

func (s *service) queueLifecycleEvent(ctx context.Context, tx *sql.Tx, p *EmployeeProfile, eventType string, previous EmployeeStatus) error {
	if s.outbox == nil {
		return nil
	}
	rid := contextutil.GetRequestID(ctx)
	event := events.EmployeeLifecycleEvent{
		EventType:         eventType,
		RequestID:         rid,
		EmployeeProfileID: p.ID,
		Status:            string(p.Status),
		PreviousStatus:    string(previous),
		OccurredAt:        s.now().UTC(),
	}
	outboxEvent, err := kafka.NewOutboxEvent(rid, "employee_profile", p.ID, eventType, events.EmployeeLifecycleTopic, event)
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, outboxEvent)
}

func (s *service) invalidate(ctx context.Context, id string) {
	if s.rdb == nil {
		return
	}
	key := ProfileCacheKey(id)
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		s.logger.Error("failed to invalidate employee profile cache",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}

func (s *service) CreateProfile(ctx context.Context, req CreateEmployeeProfileDto) (EmployeeProfileResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee profile requested",
		zap.String("request_id", rid),
		zap.String("work_email", req.WorkEmail),
	)

	hired, err := validation.ParseISODate(req.DateOfHire)
	if err != nil {
		return EmployeeProfileResponse{}, apperror.InvalidField("dateOfHire")
	}
	status := StatusActive
	if req.Status != nil {
		status = *req.Status
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee profile begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeProfileResponse{}, err
	}
	defer tx.Rollback()

	seq, err := s.counter.WithTx(tx).Next(ctx, employeeCounter)
	if err != nil {
		s.logger.Error("create employee profile generate number failed", zap.Error(err))
		return EmployeeProfileResponse{}, err
	}

	p := &EmployeeProfile{
		ID:             objectid.New(),
		EmployeeNumber: counter.Code(employeePrefix, seq),
		FirstName:      strings.TrimSpace(req.FirstName),
		LastName:       strings.TrimSpace(req.LastName),
		NationalID:     strings.TrimSpace(req.NationalID),
		WorkEmail:      strings.ToLower(strings.TrimSpace(req.WorkEmail)),
		DateOfHire:     hired,
		Status:         status,
	}
	if err := s.repo.WithTx(tx).Create(ctx, p); err != nil {
		s.logger.Warn("create employee profile persist failed", zap.Error(err))
		return EmployeeProfileResponse{}, mapRepositoryError(err)
	}

	if err := s.queueLifecycleEvent(ctx, tx, p, events.EventTypeEmployeeProfileCreated, ""); err != nil {
		s.logger.Error("create employee profile outbox persist failed",
			zap.String("employee_profile_id", p.ID),
			zap.Error(err),
		)
		return EmployeeProfileResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create employee profile commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeProfileResponse{}, err
	}

	s.logger.Info("create employee profile success",
		zap.String("request_id", rid),
		zap.String("employee_profile_id", p.ID),
		zap.String("employee_number", p.EmployeeNumber),
	)
	return mapToProfileResponse(*p), nil
}

func (s *service) ListProfiles(ctx context.Context, filter ProfileFilter) ([]EmployeeProfileResponse, error) {
	profiles, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("list employee profiles failed", zap.Error(err))
		return nil, err
	}
	return mapToProfileListResponse(profiles), nil
}

// GetProfile reads through the redis cache; concurrent misses for the same id
// share one database load.
func (s *service) GetProfile(ctx context.Context, id string) (EmployeeProfileResponse, error) {
	key := ProfileCacheKey(id)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, key).Result(); err == nil {
			var resp EmployeeProfileResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		p, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, mapRepositoryError(err)
		}
		resp := mapToProfileResponse(*p)

		if s.rdb != nil {
			if data, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, key, data, ProfileCacheTTL).Err(); err != nil {
					s.logger.Warn("cache employee profile failed", zap.String("key", key), zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		return EmployeeProfileResponse{}, err
	}
	return v.(EmployeeProfileResponse), nil
}

func (s *service) UpdateContactInfo(ctx context.Context, id string, req UpdateContactInfoDto) (EmployeeProfileResponse, error) {
	if req.empty() {
		return EmployeeProfileResponse{}, profileerrors.ErrNoContactFields
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update contact info begin tx failed", zap.Error(err))
		return EmployeeProfileResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	p, err := qtx.FindByID(ctx, id)
	if err != nil {
		return EmployeeProfileResponse{}, mapRepositoryError(err)
	}

	if req.MobilePhone != nil {
		p.MobilePhone = req.MobilePhone
	}
	if req.PersonalEmail != nil {
		email := strings.ToLower(strings.TrimSpace(*req.PersonalEmail))
		p.PersonalEmail = &email
	}
	if req.City != nil {
		p.City = req.City
	}
	if req.StreetAddress != nil {
		p.StreetAddress = req.StreetAddress
	}
	if req.Country != nil {
		p.Country = req.Country
	}

	if err := qtx.Update(ctx, p); err != nil {
		s.logger.Error("update contact info persist failed", zap.String("employee_profile_id", id), zap.Error(err))
		return EmployeeProfileResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("update contact info commit failed", zap.Error(err))
		return EmployeeProfileResponse{}, err
	}

	s.invalidate(ctx, id)
	s.logger.Info("update contact info success", zap.String("employee_profile_id", id))
	return mapToProfileResponse(*p), nil
}

func (s *service) UpdateStatus(ctx context.Context, id string, req UpdateEmployeeStatusDto) (EmployeeProfileResponse, error) {
	var effective *time.Time
	if req.EffectiveDate != nil {
		t, err := validation.ParseISODate(*req.EffectiveDate)
		if err != nil {
			return EmployeeProfileResponse{}, apperror.InvalidField("effectiveDate")
		}
		effective = &t
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee status begin tx failed", zap.Error(err))
		return EmployeeProfileResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	p, err := qtx.FindByID(ctx, id)
	if err != nil {
		return EmployeeProfileResponse{}, mapRepositoryError(err)
	}

	previous := p.Status
	p.Status = req.Status
	p.StatusEffectiveDate = effective

	if err := qtx.Update(ctx, p); err != nil {
		s.logger.Error("update employee status persist failed", zap.String("employee_profile_id", id), zap.Error(err))
		return EmployeeProfileResponse{}, mapRepositoryError(err)
	}

	if previous != p.Status {
		if err := s.queueLifecycleEvent(ctx, tx, p, events.EventTypeEmployeeStatusChanged, previous); err != nil {
			s.logger.Error("update employee status outbox persist failed",
				zap.String("employee_profile_id", id),
				zap.Error(err),
			)
			return EmployeeProfileResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update employee status commit failed", zap.Error(err))
		return EmployeeProfileResponse{}, err
	}

	s.invalidate(ctx, id)
	s.logger.Info("update employee status success",
		zap.String("employee_profile_id", id),
		zap.String("from", string(previous)),
		zap.String("to", string(p.Status)),
	)
	return mapToProfileResponse(*p), nil
}

func (s *service) SubmitChangeRequest(ctx context.Context, req CreateProfileChangeRequestDto) (ChangeRequestResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit change request begin tx failed", zap.Error(err))
		return ChangeRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	exists, err := qtx.Exists(ctx, req.EmployeeProfileID)
	if err != nil {
		return ChangeRequestResponse{}, err
	}
	if !exists {
		return ChangeRequestResponse{}, profileerrors.ErrProfileNotFound
	}

	r := &ProfileChangeRequest{
		ID:                 objectid.New(),
		EmployeeProfileID:  req.EmployeeProfileID,
		RequestDescription: strings.TrimSpace(req.RequestDescription),
		Reason:             req.Reason,
		Status:             ChangePending,
	}
	if err := qtx.CreateChangeRequest(ctx, r); err != nil {
		s.logger.Error("submit change request persist failed", zap.Error(err))
		return ChangeRequestResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("submit change request commit failed", zap.Error(err))
		return ChangeRequestResponse{}, err
	}

	s.logger.Info("submit change request success",
		zap.String("change_request_id", r.ID),
		zap.String("employee_profile_id", r.EmployeeProfileID),
	)
	return mapToChangeRequestResponse(*r), nil
}

func (s *service) ListChangeRequests(ctx context.Context, filter ChangeRequestFilter) ([]ChangeRequestResponse, error) {
	requests, err := s.repo.ListChangeRequests(ctx, filter)
	if err != nil {
		s.logger.Error("list change requests failed", zap.Error(err))
		return nil, err
	}
	return mapToChangeRequestListResponse(requests), nil
}

// updatePendingChangeRequest loads a pending request, applies mutate and saves it.
func (s *service) updatePendingChangeRequest(ctx context.Context, op, id string, mutate func(r *ProfileChangeRequest)) (ChangeRequestResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error(op+" begin tx failed", zap.Error(err))
		return ChangeRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	r, err := qtx.FindChangeRequestByID(ctx, id)
	if err != nil {
		if dbutil.IsNotFound(err) {
			return ChangeRequestResponse{}, profileerrors.ErrChangeRequestNotFound
		}
		return ChangeRequestResponse{}, err
	}
	if r.Status != ChangePending {
		s.logger.Warn(op+" not pending",
			zap.String("change_request_id", id),
			zap.String("status", string(r.Status)),
		)
		return ChangeRequestResponse{}, profileerrors.ErrChangeRequestNotPending
	}

	mutate(r)
	if err := qtx.UpdateChangeRequest(ctx, r); err != nil {
		s.logger.Error(op+" persist failed", zap.String("change_request_id", id), zap.Error(err))
		return ChangeRequestResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error(op+" commit failed", zap.Error(err))
		return ChangeRequestResponse{}, err
	}

	s.logger.Info(op+" success",
		zap.String("change_request_id", id),
		zap.String("status", string(r.Status)),
	)
	return mapToChangeRequestResponse(*r), nil
}

func (s *service) ProcessChangeRequest(ctx context.Context, actorID, id string, req ProcessChangeRequestDto) (ChangeRequestResponse, error) {
	return s.updatePendingChangeRequest(ctx, "process change request", id, func(r *ProfileChangeRequest) {
		reviewerID := actorID
		if req.ReviewerID != nil {
			reviewerID = *req.ReviewerID
		}
		if reviewerID != "" {
			r.ReviewerID = &reviewerID
		}
		r.ReviewComment = req.Comment

		now := s.now().UTC()
		r.ProcessedAt = &now
		if req.Decision == DecisionApprove {
			r.Status = ChangeApproved
		} else {
			r.Status = ChangeRejected
		}
	})
}

func (s *service) CancelChangeRequest(ctx context.Context, id string) (ChangeRequestResponse, error) {
	return s.updatePendingChangeRequest(ctx, "cancel change request", id, func(r *ProfileChangeRequest) {
		r.Status = ChangeCanceled
	})
}
