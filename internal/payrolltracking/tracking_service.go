package payrolltracking

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"go-hrms/internal/payrollexecution"
	trackingerrors "go-hrms/internal/payrolltracking/errors"
	"go-hrms/internal/shared/counter"
	"go-hrms/internal/shared/dbutil"
	"go-hrms/internal/shared/objectid"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PayslipReader resolves the payslip a dispute refers to.
type PayslipReader interface {
	GetPayslip(ctx context.Context, id string) (payrollexecution.PayslipResponse, error)
}

type Service interface {
	CreateClaim(ctx context.Context, req CreateClaimDto) (ClaimResponseDTO, error)
	ListClaims(ctx context.Context, filter ListFilter) ([]ClaimResponseDTO, error)
	GetClaim(ctx context.Context, id string) (ClaimResponseDTO, error)
	ReviewClaim(ctx context.Context, id string, req SpecialistReviewDto) (ClaimResponseDTO, error)
	ConfirmClaim(ctx context.Context, id string, req ManagerConfirmationDto) (ClaimResponseDTO, error)

	CreateDispute(ctx context.Context, req CreateDisputeDto) (DisputeResponseDTO, error)
	ListDisputes(ctx context.Context, filter ListFilter) ([]DisputeResponseDTO, error)
	GetDispute(ctx context.Context, id string) (DisputeResponseDTO, error)
	ReviewDispute(ctx context.Context, id string, req SpecialistReviewDto) (DisputeResponseDTO, error)
	ConfirmDispute(ctx context.Context, id string, req ManagerConfirmationDto) (DisputeResponseDTO, error)

	CreateRefundForClaim(ctx context.Context, claimID string, req CreateRefundDto) (RefundResponse, error)
	CreateRefundForDispute(ctx context.Context, disputeID string, req CreateRefundDto) (RefundResponse, error)
	ListRefunds(ctx context.Context, filter RefundFilter) ([]RefundResponse, error)
	MarkRefundPaid(ctx context.Context, id string) (RefundResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	counter  counter.Repository
	payslips PayslipReader
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(
	db *sql.DB,
	repo Repository,
	counterRepo counter.Repository,
	payslips PayslipReader,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payrolltracking.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payrolltracking.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		counter:  counterRepo,
		payslips: payslips,
		logger:   l,
		now:      time.Now,
	}
}

// rejectionReason returns the trimmed reason; rejecting without one fails.
func rejectionReason(decision string, reason *string) (*string, error) {
	if reason != nil {
		trimmed := strings.TrimSpace(*reason)
		if trimmed != "" {
			return &trimmed, nil
		}
	}
	if decision == DecisionReject {
		return nil, trackingerrors.ErrRejectionReasonRequired
	}
	return nil, nil
}

func (s *service) CreateClaim(ctx context.Context, req CreateClaimDto) (ClaimResponseDTO, error) {
	s.logger.Debug("create claim requested",
		zap.String("employee_id", req.EmployeeID),
		zap.String("claim_type", req.ClaimType),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create claim begin tx failed", zap.Error(err))
		return ClaimResponseDTO{}, err
	}
	defer tx.Rollback()

	seq, err := s.counter.WithTx(tx).Next(ctx, claimCounter)
	if err != nil {
		s.logger.Error("create claim next code failed", zap.Error(err))
		return ClaimResponseDTO{}, err
	}

	c := &Claim{
		ID:          objectid.New(),
		ClaimCode:   counter.Code(claimPrefix, seq),
		EmployeeID:  req.EmployeeID,
		Description: strings.TrimSpace(req.Description),
		ClaimType:   strings.TrimSpace(req.ClaimType),
		Amount:      decimal.NewFromFloat(req.Amount),
		Status:      ClaimUnderReview,
	}
	if err := s.repo.WithTx(tx).CreateClaim(ctx, c); err != nil {
		s.logger.Error("create claim persist failed", zap.Error(err))
		return ClaimResponseDTO{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("create claim commit failed", zap.Error(err))
		return ClaimResponseDTO{}, err
	}

	s.logger.Info("create claim success",
		zap.String("claim_id", c.ID),
		zap.String("claim_code", c.ClaimCode),
	)
	return mapToClaimResponse(*c), nil
}

func (s *service) ListClaims(ctx context.Context, filter ListFilter) ([]ClaimResponseDTO, error) {
	claims, err := s.repo.ListClaims(ctx, filter)
	if err != nil {
		s.logger.Error("list claims failed", zap.Error(err))
		return nil, err
	}
	return mapToClaimListResponse(claims), nil
}

func findClaim(ctx context.Context, repo Repository, id string) (*Claim, error) {
	c, err := repo.FindClaimByID(ctx, id)
	if err != nil {
		if dbutil.IsNotFound(err) {
			return nil, trackingerrors.ErrClaimNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *service) GetClaim(ctx context.Context, id string) (ClaimResponseDTO, error) {
	c, err := findClaim(ctx, s.repo, id)
	if err != nil {
		return ClaimResponseDTO{}, err
	}
	return mapToClaimResponse(*c), nil
}

// updateClaim runs mutate on the claim inside a transaction and saves it.
func (s *service) updateClaim(ctx context.Context, op, id string, mutate func(c *Claim) error) (ClaimResponseDTO, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error(op+" begin tx failed", zap.Error(err))
		return ClaimResponseDTO{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	c, err := findClaim(ctx, qtx, id)
	if err != nil {
		return ClaimResponseDTO{}, err
	}
	if err := mutate(c); err != nil {
		s.logger.Warn(op+" rejected",
			zap.String("claim_id", id),
			zap.String("status", string(c.Status)),
			zap.Error(err),
		)
		return ClaimResponseDTO{}, err
	}
	if err := qtx.UpdateClaim(ctx, c); err != nil {
		s.logger.Error(op+" persist failed", zap.String("claim_id", id), zap.Error(err))
		return ClaimResponseDTO{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error(op+" commit failed", zap.String("claim_id", id), zap.Error(err))
		return ClaimResponseDTO{}, err
	}

	s.logger.Info(op+" success",
		zap.String("claim_id", id),
		zap.String("status", string(c.Status)),
	)
	return mapToClaimResponse(*c), nil
}

func (s *service) ReviewClaim(ctx context.Context, id string, req SpecialistReviewDto) (ClaimResponseDTO, error) {
	reason, err := rejectionReason(req.Decision, req.RejectionReason)
	if err != nil {
		return ClaimResponseDTO{}, err
	}

	return s.updateClaim(ctx, "review claim", id, func(c *Claim) error {
		if c.Status != ClaimUnderReview {
			return trackingerrors.ErrInvalidStatusTransition
		}

		specialistID := req.PayrollSpecialistID
		c.PayrollSpecialistID = &specialistID
		if req.ResolutionComment != nil {
			c.ResolutionComment = req.ResolutionComment
		}

		if req.Decision == DecisionReject {
			c.Status = ClaimRejected
			c.RejectionReason = reason
			return nil
		}

		approved := c.Amount
		if req.ApprovedAmount != nil {
			approved = decimal.NewFromFloat(*req.ApprovedAmount)
			if approved.GreaterThan(c.Amount) {
				return trackingerrors.ErrApprovedAmountTooHigh
			}
		}
		c.ApprovedAmount = &approved
		c.Status = ClaimPendingManagerApproval
		return nil
	})
}

func (s *service) ConfirmClaim(ctx context.Context, id string, req ManagerConfirmationDto) (ClaimResponseDTO, error) {
	reason, err := rejectionReason(req.Decision, req.RejectionReason)
	if err != nil {
		return ClaimResponseDTO{}, err
	}

	return s.updateClaim(ctx, "confirm claim", id, func(c *Claim) error {
		if c.Status != ClaimPendingManagerApproval {
			return trackingerrors.ErrInvalidStatusTransition
		}

		managerID := req.PayrollManagerID
		c.PayrollManagerID = &managerID
		if req.ResolutionComment != nil {
			c.ResolutionComment = req.ResolutionComment
		}

		if req.Decision == DecisionReject {
			c.Status = ClaimRejected
			c.RejectionReason = reason
			return nil
		}
		c.Status = ClaimApproved
		return nil
	})
}

func (s *service) CreateDispute(ctx context.Context, req CreateDisputeDto) (DisputeResponseDTO, error) {
	s.logger.Debug("create dispute requested",
		zap.String("employee_id", req.EmployeeID),
		zap.String("payslip_id", req.PayslipID),
	)

	slip, err := s.payslips.GetPayslip(ctx, req.PayslipID)
	if err != nil {
		return DisputeResponseDTO{}, err
	}
	if slip.EmployeeID != req.EmployeeID {
		s.logger.Warn("create dispute payslip not owned",
			zap.String("employee_id", req.EmployeeID),
			zap.String("payslip_id", req.PayslipID),
		)
		return DisputeResponseDTO{}, trackingerrors.ErrPayslipNotOwned
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create dispute begin tx failed", zap.Error(err))
		return DisputeResponseDTO{}, err
	}
	defer tx.Rollback()

	seq, err := s.counter.WithTx(tx).Next(ctx, disputeCounter)
	if err != nil {
		s.logger.Error("create dispute next code failed", zap.Error(err))
		return DisputeResponseDTO{}, err
	}

	d := &Dispute{
		ID:          objectid.New(),
		DisputeCode: counter.Code(disputePrefix, seq),
		EmployeeID:  req.EmployeeID,
		PayslipID:   req.PayslipID,
		Description: strings.TrimSpace(req.Description),
		Status:      DisputeUnderReview,
	}
	if err := s.repo.WithTx(tx).CreateDispute(ctx, d); err != nil {
		s.logger.Error("create dispute persist failed", zap.Error(err))
		return DisputeResponseDTO{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("create dispute commit failed", zap.Error(err))
		return DisputeResponseDTO{}, err
	}

	s.logger.Info("create dispute success",
		zap.String("dispute_id", d.ID),
		zap.String("dispute_code", d.DisputeCode),
	)
	return mapToDisputeResponse(*d), nil
}

func (s *service) ListDisputes(ctx context.Context, filter ListFilter) ([]DisputeResponseDTO, error) {
	disputes, err := s.repo.ListDisputes(ctx, filter)
	if err != nil {
		s.logger.Error("list disputes failed", zap.Error(err))
		return nil, err
	}
	return mapToDisputeListResponse(disputes), nil
}

func findDispute(ctx context.Context, repo Repository, id string) (*Dispute, error) {
	d, err := repo.FindDisputeByID(ctx, id)
	if err != nil {
		if dbutil.IsNotFound(err) {
			return nil, trackingerrors.ErrDisputeNotFound
		}
		return nil, err
	}
	return d, nil
}

func (s *service) GetDispute(ctx context.Context, id string) (DisputeResponseDTO, error) {
	d, err := findDispute(ctx, s.repo, id)
	if err != nil {
		return DisputeResponseDTO{}, err
	}
	return mapToDisputeResponse(*d), nil
}

func (s *service) updateDispute(ctx context.Context, op, id string, mutate func(d *Dispute) error) (DisputeResponseDTO, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error(op+" begin tx failed", zap.Error(err))
		return DisputeResponseDTO{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	d, err := findDispute(ctx, qtx, id)
	if err != nil {
		return DisputeResponseDTO{}, err
	}
	if err := mutate(d); err != nil {
		s.logger.Warn(op+" rejected",
			zap.String("dispute_id", id),
			zap.String("status", string(d.Status)),
			zap.Error(err),
		)
		return DisputeResponseDTO{}, err
	}
	if err := qtx.UpdateDispute(ctx, d); err != nil {
		s.logger.Error(op+" persist failed", zap.String("dispute_id", id), zap.Error(err))
		return DisputeResponseDTO{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error(op+" commit failed", zap.String("dispute_id", id), zap.Error(err))
		return DisputeResponseDTO{}, err
	}

	s.logger.Info(op+" success",
		zap.String("dispute_id", id),
		zap.String("status", string(d.Status)),
	)
	return mapToDisputeResponse(*d), nil
}

func (s *service) ReviewDispute(ctx context.Context, id string, req SpecialistReviewDto) (DisputeResponseDTO, error) {
	reason, err := rejectionReason(req.Decision, req.RejectionReason)
	if err != nil {
		return DisputeResponseDTO{}, err
	}

	return s.updateDispute(ctx, "review dispute", id, func(d *Dispute) error {
		if d.Status != DisputeUnderReview {
			return trackingerrors.ErrInvalidStatusTransition
		}

		specialistID := req.PayrollSpecialistID
		d.PayrollSpecialistID = &specialistID
		if req.ResolutionComment != nil {
			d.ResolutionComment = req.ResolutionComment
		}

		if req.Decision == DecisionReject {
			d.Status = DisputeRejected
			d.RejectionReason = reason
			return nil
		}
		d.Status = DisputePendingManagerApproval
		return nil
	})
}

func (s *service) ConfirmDispute(ctx context.Context, id string, req ManagerConfirmationDto) (DisputeResponseDTO, error) {
	reason, err := rejectionReason(req.Decision, req.RejectionReason)
	if err != nil {
		return DisputeResponseDTO{}, err
	}

	return s.updateDispute(ctx, "confirm dispute", id, func(d *Dispute) error {
		if d.Status != DisputePendingManagerApproval {
			return trackingerrors.ErrInvalidStatusTransition
		}

		managerID := req.PayrollManagerID
		d.PayrollManagerID = &managerID
		if req.ResolutionComment != nil {
			d.ResolutionComment = req.ResolutionComment
		}

		if req.Decision == DecisionReject {
			d.Status = DisputeRejected
			d.RejectionReason = reason
			return nil
		}
		d.Status = DisputeApproved
		return nil
	})
}

func (s *service) CreateRefundForClaim(ctx context.Context, claimID string, req CreateRefundDto) (RefundResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create claim refund begin tx failed", zap.Error(err))
		return RefundResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	c, err := findClaim(ctx, qtx, claimID)
	if err != nil {
		return RefundResponse{}, err
	}
	if c.Status != ClaimApproved {
		return RefundResponse{}, trackingerrors.ErrRefundNotAllowed
	}

	exists, err := qtx.RefundExistsForClaim(ctx, claimID)
	if err != nil {
		return RefundResponse{}, err
	}
	if exists {
		return RefundResponse{}, trackingerrors.ErrRefundExists
	}

	amount := decimal.NewFromFloat(req.Amount)
	ceiling := c.Amount
	if c.ApprovedAmount != nil {
		ceiling = *c.ApprovedAmount
	}
	if amount.GreaterThan(ceiling) {
		return RefundResponse{}, trackingerrors.ErrRefundExceedsApproved
	}

	ref := &Refund{
		ID:             objectid.New(),
		ClaimID:        &c.ID,
		EmployeeID:     c.EmployeeID,
		FinanceStaffID: req.FinanceStaffID,
		Amount:         amount,
		Description:    req.Description,
		Status:         RefundPending,
	}
	if err := s.persistRefund(ctx, qtx, ref); err != nil {
		return RefundResponse{}, err
	}

	financeID := req.FinanceStaffID
	c.FinanceStaffID = &financeID
	if err := qtx.UpdateClaim(ctx, c); err != nil {
		s.logger.Error("create claim refund update claim failed", zap.Error(err))
		return RefundResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("create claim refund commit failed", zap.Error(err))
		return RefundResponse{}, err
	}

	s.logger.Info("create claim refund success",
		zap.String("refund_id", ref.ID),
		zap.String("claim_id", c.ID),
		zap.String("amount", amount.StringFixed(2)),
	)
	return mapToRefundResponse(*ref), nil
}

func (s *service) CreateRefundForDispute(ctx context.Context, disputeID string, req CreateRefundDto) (RefundResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create dispute refund begin tx failed", zap.Error(err))
		return RefundResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	d, err := findDispute(ctx, qtx, disputeID)
	if err != nil {
		return RefundResponse{}, err
	}
	if d.Status != DisputeApproved {
		return RefundResponse{}, trackingerrors.ErrRefundNotAllowed
	}

	exists, err := qtx.RefundExistsForDispute(ctx, disputeID)
	if err != nil {
		return RefundResponse{}, err
	}
	if exists {
		return RefundResponse{}, trackingerrors.ErrRefundExists
	}

	ref := &Refund{
		ID:             objectid.New(),
		DisputeID:      &d.ID,
		EmployeeID:     d.EmployeeID,
		FinanceStaffID: req.FinanceStaffID,
		Amount:         decimal.NewFromFloat(req.Amount),
		Description:    req.Description,
		Status:         RefundPending,
	}
	if err := s.persistRefund(ctx, qtx, ref); err != nil {
		return RefundResponse{}, err
	}

	financeID := req.FinanceStaffID
	d.FinanceStaffID = &financeID
	if err := qtx.UpdateDispute(ctx, d); err != nil {
		s.logger.Error("create dispute refund update dispute failed", zap.Error(err))
		return RefundResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("create dispute refund commit failed", zap.Error(err))
		return RefundResponse{}, err
	}

	s.logger.Info("create dispute refund success",
		zap.String("refund_id", ref.ID),
		zap.String("dispute_id", d.ID),
	)
	return mapToRefundResponse(*ref), nil
}

func (s *service) persistRefund(ctx context.Context, qtx Repository, ref *Refund) error {
	if err := qtx.CreateRefund(ctx, ref); err != nil {
		if _, ok := dbutil.UniqueViolation(err); ok {
			return trackingerrors.ErrRefundExists
		}
		s.logger.Error("create refund persist failed", zap.Error(err))
		return err
	}
	return nil
}

func (s *service) ListRefunds(ctx context.Context, filter RefundFilter) ([]RefundResponse, error) {
	refunds, err := s.repo.ListRefunds(ctx, filter)
	if err != nil {
		s.logger.Error("list refunds failed", zap.Error(err))
		return nil, err
	}
	return mapToRefundListResponse(refunds), nil
}

func (s *service) MarkRefundPaid(ctx context.Context, id string) (RefundResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RefundResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	ref, err := qtx.FindRefundByID(ctx, id)
	if err != nil {
		if dbutil.IsNotFound(err) {
			return RefundResponse{}, trackingerrors.ErrRefundNotFound
		}
		return RefundResponse{}, err
	}
	if ref.Status == RefundPaid {
		return RefundResponse{}, trackingerrors.ErrRefundAlreadyPaid
	}

	now := s.now().UTC()
	ref.Status = RefundPaid
	ref.PaidAt = &now
	if err := qtx.UpdateRefund(ctx, ref); err != nil {
		s.logger.Error("mark refund paid persist failed", zap.String("refund_id", id), zap.Error(err))
		return RefundResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return RefundResponse{}, err
	}

	s.logger.Info("mark refund paid success", zap.String("refund_id", id))
	return mapToRefundResponse(*ref), nil
}
