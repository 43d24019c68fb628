package leave

import (
	"context"
	"database/sql"
	"time"

	leaveerrors "go-hrms/internal/leave/errors"
	"go-hrms/internal/shared/dbutil"
	"go-hrms/internal/shared/objectid"
	"go-hrms/internal/validation"

	"go.uber.org/zap"
)

type Service interface {
	CreateRequest(ctx context.Context, req CreateLeaveRequestDto) (LeaveRequestResponse, error)
	ListRequests(ctx context.Context, filter ListFilter) ([]LeaveRequestResponse, error)
	GetRequest(ctx context.Context, id string) (LeaveRequestResponse, error)
	ReviewRequest(ctx context.Context, actorID, id string, req ReviewLeaveRequestDto) (LeaveRequestResponse, error)
	CancelRequest(ctx context.Context, id string) (LeaveRequestResponse, error)
	UpsertEntitlement(ctx context.Context, req CreateLeaveEntitlementDto) (LeaveBalanceResponse, error)
	CreateAdjustment(ctx context.Context, req CreateLeaveAdjustmentDto) (LeaveAdjustmentResponse, error)
	GetBalances(ctx context.Context, employeeID string) ([]LeaveBalanceResponse, error)
	SeedDefaultEntitlements(ctx context.Context, employeeID string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{db: db, repo: repo, logger: l, now: time.Now}
}

func (s *service) CreateRequest(ctx context.Context, req CreateLeaveRequestDto) (LeaveRequestResponse, error) {
	s.logger.Debug("create leave request requested",
		zap.String("employee_id", req.EmployeeID),
		zap.String("leave_type", string(req.LeaveType)),
		zap.String("from_date", req.FromDate),
		zap.String("to_date", req.ToDate),
	)

	from, to, err := parsePeriod(req.FromDate, req.ToDate)
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave request begin tx failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	overlap, err := qtx.HasOverlappingRequest(ctx, req.EmployeeID, from, to)
	if err != nil {
		s.logger.Error("create leave request overlap check failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	if overlap {
		s.logger.Warn("create leave request overlap detected",
			zap.String("employee_id", req.EmployeeID),
			zap.String("from_date", req.FromDate),
			zap.String("to_date", req.ToDate),
		)
		return LeaveRequestResponse{}, leaveerrors.ErrLeaveOverlap
	}

	l := &LeaveRequest{
		ID:            objectid.New(),
		EmployeeID:    req.EmployeeID,
		LeaveType:     req.LeaveType,
		FromDate:      from,
		ToDate:        to,
		DurationDays:  durationDays(from, to),
		Justification: req.Justification,
		AttachmentID:  req.AttachmentID,
		Status:        StatusPending,
	}

	if err := qtx.CreateRequest(ctx, l); err != nil {
		s.logger.Error("create leave request persist failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave request commit failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	s.logger.Info("create leave request success",
		zap.String("leave_request_id", l.ID),
		zap.String("employee_id", l.EmployeeID),
		zap.Int("duration_days", l.DurationDays),
	)
	return mapToRequestResponse(*l), nil
}

func (s *service) ListRequests(ctx context.Context, filter ListFilter) ([]LeaveRequestResponse, error) {
	reqs, err := s.repo.ListRequests(ctx, filter)
	if err != nil {
		s.logger.Error("list leave requests failed", zap.Error(err))
		return nil, err
	}
	return mapToRequestListResponse(reqs), nil
}

func (s *service) GetRequest(ctx context.Context, id string) (LeaveRequestResponse, error) {
	l, err := s.repo.FindRequestByID(ctx, id)
	if err != nil {
		if dbutil.IsNotFound(err) {
			return LeaveRequestResponse{}, leaveerrors.ErrLeaveRequestNotFound
		}
		return LeaveRequestResponse{}, err
	}
	return mapToRequestResponse(*l), nil
}

// ReviewRequest decides a pending request. Approval consumes balance for every
// leave type except unpaid.
func (s *service) ReviewRequest(ctx context.Context, actorID, id string, req ReviewLeaveRequestDto) (LeaveRequestResponse, error) {
	reviewerID := actorID
	if req.ReviewerID != nil {
		reviewerID = *req.ReviewerID
	}
	if reviewerID == "" {
		return LeaveRequestResponse{}, leaveerrors.ErrReviewerRequired
	}

	s.logger.Debug("review leave request requested",
		zap.String("leave_request_id", id),
		zap.String("reviewer_id", reviewerID),
		zap.String("decision", req.Decision),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("review leave request begin tx failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindRequestByID(ctx, id)
	if err != nil {
		if dbutil.IsNotFound(err) {
			return LeaveRequestResponse{}, leaveerrors.ErrLeaveRequestNotFound
		}
		return LeaveRequestResponse{}, err
	}
	if l.Status != StatusPending {
		s.logger.Warn("review leave request invalid status",
			zap.String("leave_request_id", id),
			zap.String("status", string(l.Status)),
		)
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	if req.Decision == DecisionApprove {
		if l.LeaveType != TypeUnpaid {
			if err := s.consumeBalance(ctx, qtx, l); err != nil {
				return LeaveRequestResponse{}, err
			}
		}
		l.Status = StatusApproved
	} else {
		l.Status = StatusRejected
	}

	now := s.now().UTC()
	l.ReviewerID = &reviewerID
	l.ReviewComment = req.Comment
	l.ReviewedAt = &now

	if err := qtx.UpdateRequest(ctx, l); err != nil {
		s.logger.Error("review leave request persist failed", zap.String("leave_request_id", id), zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("review leave request commit failed", zap.String("leave_request_id", id), zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	s.logger.Info("review leave request success",
		zap.String("leave_request_id", id),
		zap.String("status", string(l.Status)),
	)
	return mapToRequestResponse(*l), nil
}

func (s *service) consumeBalance(ctx context.Context, qtx Repository, l *LeaveRequest) error {
	ent, err := qtx.FindEntitlement(ctx, l.EmployeeID, l.LeaveType)
	if err != nil {
		if dbutil.IsNotFound(err) {
			return leaveerrors.ErrInsufficientBalance
		}
		return err
	}

	days := float64(l.DurationDays)
	if ent.Remaining() < days {
		s.logger.Warn("review leave request insufficient balance",
			zap.String("employee_id", l.EmployeeID),
			zap.Float64("remaining", ent.Remaining()),
			zap.Float64("requested", days),
		)
		return leaveerrors.ErrInsufficientBalance
	}

	ent.Taken += days
	return qtx.SaveEntitlement(ctx, ent)
}

func (s *service) CancelRequest(ctx context.Context, id string) (LeaveRequestResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	l, err := qtx.FindRequestByID(ctx, id)
	if err != nil {
		if dbutil.IsNotFound(err) {
			return LeaveRequestResponse{}, leaveerrors.ErrLeaveRequestNotFound
		}
		return LeaveRequestResponse{}, err
	}
	if l.Status != StatusPending {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	l.Status = StatusCancelled
	if err := qtx.UpdateRequest(ctx, l); err != nil {
		return LeaveRequestResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return LeaveRequestResponse{}, err
	}

	s.logger.Info("cancel leave request success", zap.String("leave_request_id", id))
	return mapToRequestResponse(*l), nil
}

func (s *service) UpsertEntitlement(ctx context.Context, req CreateLeaveEntitlementDto) (LeaveBalanceResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveBalanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	ent, err := s.findOrNewEntitlement(ctx, qtx, req.EmployeeID, req.LeaveType)
	if err != nil {
		return LeaveBalanceResponse{}, err
	}

	ent.YearlyEntitlement = req.YearlyEntitlement
	if ent.Remaining() < 0 {
		return LeaveBalanceResponse{}, leaveerrors.ErrInsufficientBalance
	}
	if err := qtx.SaveEntitlement(ctx, ent); err != nil {
		s.logger.Error("upsert leave entitlement persist failed", zap.Error(err))
		return LeaveBalanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return LeaveBalanceResponse{}, err
	}

	s.logger.Info("upsert leave entitlement success",
		zap.String("employee_id", req.EmployeeID),
		zap.String("leave_type", string(req.LeaveType)),
		zap.Float64("yearly_entitlement", req.YearlyEntitlement),
	)
	return mapToBalanceResponse(*ent), nil
}

// CreateAdjustment records a manual balance correction. Deductions and
// encashments may not leave the balance negative.
func (s *service) CreateAdjustment(ctx context.Context, req CreateLeaveAdjustmentDto) (LeaveAdjustmentResponse, error) {
	s.logger.Debug("create leave adjustment requested",
		zap.String("employee_id", req.EmployeeID),
		zap.String("adjustment_type", string(req.AdjustmentType)),
		zap.Float64("amount", req.Amount),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveAdjustmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	ent, err := s.findOrNewEntitlement(ctx, qtx, req.EmployeeID, req.LeaveType)
	if err != nil {
		return LeaveAdjustmentResponse{}, err
	}

	switch req.AdjustmentType {
	case AdjustmentAdd:
		ent.Adjusted += req.Amount
	case AdjustmentDeduct, AdjustmentEncashment:
		ent.Adjusted -= req.Amount
	}
	if ent.Remaining() < 0 {
		s.logger.Warn("create leave adjustment would overdraw balance",
			zap.String("employee_id", req.EmployeeID),
			zap.Float64("remaining", ent.Remaining()),
		)
		return LeaveAdjustmentResponse{}, leaveerrors.ErrInsufficientBalance
	}

	adj := &LeaveAdjustment{
		ID:             objectid.New(),
		EmployeeID:     req.EmployeeID,
		LeaveType:      req.LeaveType,
		AdjustmentType: req.AdjustmentType,
		Amount:         req.Amount,
		Reason:         req.Reason,
		HRUserID:       req.HRUserID,
		CreatedAt:      s.now().UTC(),
	}

	if err := qtx.SaveEntitlement(ctx, ent); err != nil {
		s.logger.Error("create leave adjustment balance persist failed", zap.Error(err))
		return LeaveAdjustmentResponse{}, err
	}
	if err := qtx.CreateAdjustment(ctx, adj); err != nil {
		s.logger.Error("create leave adjustment persist failed", zap.Error(err))
		return LeaveAdjustmentResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return LeaveAdjustmentResponse{}, err
	}

	s.logger.Info("create leave adjustment success", zap.String("adjustment_id", adj.ID))
	return mapToAdjustmentResponse(*adj, *ent), nil
}

func (s *service) GetBalances(ctx context.Context, employeeID string) ([]LeaveBalanceResponse, error) {
	ents, err := s.repo.ListEntitlements(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	resp := make([]LeaveBalanceResponse, len(ents))
	for i, e := range ents {
		resp[i] = mapToBalanceResponse(e)
	}
	return resp, nil
}

// SeedDefaultEntitlements is idempotent: existing entitlements are left untouched.
func (s *service) SeedDefaultEntitlements(ctx context.Context, employeeID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	for _, leaveType := range LeaveTypes.Values() {
		days, ok := DefaultEntitlements[leaveType]
		if !ok {
			continue
		}

		_, err := qtx.FindEntitlement(ctx, employeeID, leaveType)
		if err == nil {
			continue
		}
		if !dbutil.IsNotFound(err) {
			return err
		}

		if err := qtx.SaveEntitlement(ctx, &LeaveEntitlement{
			ID:                objectid.New(),
			EmployeeID:        employeeID,
			LeaveType:         leaveType,
			YearlyEntitlement: days,
		}); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *service) findOrNewEntitlement(ctx context.Context, qtx Repository, employeeID string, leaveType LeaveType) (*LeaveEntitlement, error) {
	ent, err := qtx.FindEntitlement(ctx, employeeID, leaveType)
	if err == nil {
		return ent, nil
	}
	if !dbutil.IsNotFound(err) {
		return nil, err
	}
	return &LeaveEntitlement{
		ID:         objectid.New(),
		EmployeeID: employeeID,
		LeaveType:  leaveType,
	}, nil
}

func parsePeriod(fromDate, toDate string) (time.Time, time.Time, error) {
	from, err := validation.ParseISODate(fromDate)
	if err != nil {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	to, err := validation.ParseISODate(toDate)
	if err != nil {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	from, to = truncateDay(from), truncateDay(to)
	if from.After(to) {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	return from, to, nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// durationDays counts calendar days, both ends included.
func durationDays(from, to time.Time) int {
	return int(to.Sub(from).Hours()/24) + 1
}
