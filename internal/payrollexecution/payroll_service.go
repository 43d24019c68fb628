package payrollexecution

import (
	"context"
	"database/sql"
	"slices"
	"strings"
	"time"

	"go-hrms/internal/events"
	"go-hrms/internal/messaging/kafka"
	payrollerrors "go-hrms/internal/payrollexecution/errors"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/shared/dbutil"
	"go-hrms/internal/shared/objectid"
	"go-hrms/internal/validation"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Service interface {
	CreateRun(ctx context.Context, req CreatePayrollRunDto) (PayrollRunResponse, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]PayrollRunResponse, error)
	GetRun(ctx context.Context, id string) (PayrollRunResponse, error)
	ListEntries(ctx context.Context, runID string) ([]PayrollEntryResponse, error)

	SubmitForReview(ctx context.Context, id string) (PayrollRunResponse, error)
	ManagerDecision(ctx context.Context, actorID string, req ManagerDecisionDto) (PayrollRunResponse, error)
	FinanceDecision(ctx context.Context, actorID string, req FinanceDecisionDto) (PayrollRunResponse, error)
	Lock(ctx context.Context, id string) (PayrollRunResponse, error)
	Unlock(ctx context.Context, id string, req UnlockPayrollRunDto) (PayrollRunResponse, error)

	CalculateSalary(ctx context.Context, req SalaryCalculationInputDto) (PayrollEntryResponse, error)
	ApplyHrChecks(ctx context.Context, req HrChecksDto) (PayrollEntryResponse, error)

	GeneratePayslips(ctx context.Context, actorID string, req GeneratePayslipsDto) ([]PayslipResponse, error)
	ListPayslips(ctx context.Context, runID string) ([]PayslipResponse, error)
	GetPayslip(ctx context.Context, id string) (PayslipResponse, error)
	RenderPayslip(ctx context.Context, id string) (PayslipResponse, error)
	DownloadPayslip(ctx context.Context, id string) (PayslipDocument, error)
	MarkPayslipPaid(ctx context.Context, id string) (PayslipResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
	now    func() time.Time
	render func(run PayrollRun, entry PayrollEntry, slip Payslip) ([]byte, error)
}

func NewService(db *sql.DB, repo Repository, outbox kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("payrollexecution.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payrollexecution.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outbox,
		logger: l,
		now:    time.Now,
		render: renderPayslipPDF,
	}
}

func (s *service) CreateRun(ctx context.Context, req CreatePayrollRunDto) (PayrollRunResponse, error) {
	s.logger.Debug("create payroll run requested",
		zap.String("payroll_period", req.PayrollPeriod),
		zap.String("entity", req.Entity),
		zap.String("payroll_specialist_id", req.PayrollSpecialistID),
	)

	period, err := validation.ParseISODate(req.PayrollPeriod)
	if err != nil {
		return PayrollRunResponse{}, payrollerrors.ErrInvalidPayrollPeriod
	}
	period = time.Date(period.Year(), period.Month(), period.Day(), 0, 0, 0, 0, time.UTC)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create payroll run begin tx failed", zap.Error(err))
		return PayrollRunResponse{}, err
	}
	defer tx.Rollback()

	run := &PayrollRun{
		ID:                  objectid.New(),
		PayrollPeriod:       period,
		Entity:              strings.TrimSpace(req.Entity),
		Status:              RunStatusDraft,
		PayrollSpecialistID: req.PayrollSpecialistID,
		TotalGross:          decimal.Zero,
		TotalTax:            decimal.Zero,
		TotalNet:            decimal.Zero,
	}

	if err := s.repo.WithTx(tx).CreateRun(ctx, run); err != nil {
		if _, ok := dbutil.UniqueViolation(err); ok {
			s.logger.Warn("create payroll run duplicate",
				zap.String("payroll_period", req.PayrollPeriod),
				zap.String("entity", run.Entity),
			)
			return PayrollRunResponse{}, payrollerrors.ErrPayrollRunExists
		}
		s.logger.Error("create payroll run persist failed", zap.Error(err))
		return PayrollRunResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create payroll run commit failed", zap.Error(err))
		return PayrollRunResponse{}, err
	}

	s.logger.Info("create payroll run success",
		zap.String("payroll_run_id", run.ID),
		zap.String("entity", run.Entity),
	)
	return mapToRunResponse(*run), nil
}

func (s *service) ListRuns(ctx context.Context, filter RunFilter) ([]PayrollRunResponse, error) {
	runs, err := s.repo.ListRuns(ctx, filter)
	if err != nil {
		s.logger.Error("list payroll runs failed", zap.Error(err))
		return nil, err
	}
	return mapToRunListResponse(runs), nil
}

func (s *service) GetRun(ctx context.Context, id string) (PayrollRunResponse, error) {
	run, err := findRun(ctx, s.repo, id)
	if err != nil {
		return PayrollRunResponse{}, err
	}
	return mapToRunResponse(*run), nil
}

func (s *service) ListEntries(ctx context.Context, runID string) ([]PayrollEntryResponse, error) {
	if _, err := findRun(ctx, s.repo, runID); err != nil {
		return nil, err
	}
	entries, err := s.repo.ListEntries(ctx, runID)
	if err != nil {
		s.logger.Error("list payroll entries failed", zap.String("payroll_run_id", runID), zap.Error(err))
		return nil, err
	}
	return mapToEntryListResponse(entries), nil
}

func findRun(ctx context.Context, repo Repository, id string) (*PayrollRun, error) {
	run, err := repo.FindRunByID(ctx, id)
	if err != nil {
		if dbutil.IsNotFound(err) {
			return nil, payrollerrors.ErrPayrollRunNotFound
		}
		return nil, err
	}
	return run, nil
}

// transitionRun loads the run inside a transaction, checks it is in one of
// the from statuses and persists whatever apply changed.
func (s *service) transitionRun(
	ctx context.Context,
	op, id string,
	from []PayrollRunStatus,
	apply func(qtx Repository, run *PayrollRun) error,
) (PayrollRunResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error(op+" begin tx failed", zap.Error(err))
		return PayrollRunResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	run, err := findRun(ctx, qtx, id)
	if err != nil {
		return PayrollRunResponse{}, err
	}
	if !slices.Contains(from, run.Status) {
		s.logger.Warn(op+" invalid status",
			zap.String("payroll_run_id", id),
			zap.String("status", string(run.Status)),
		)
		return PayrollRunResponse{}, payrollerrors.ErrInvalidRunTransition
	}

	previous := run.Status
	if err := apply(qtx, run); err != nil {
		return PayrollRunResponse{}, err
	}

	if err := qtx.UpdateRun(ctx, run); err != nil {
		s.logger.Error(op+" persist failed", zap.String("payroll_run_id", id), zap.Error(err))
		return PayrollRunResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error(op+" commit failed", zap.String("payroll_run_id", id), zap.Error(err))
		return PayrollRunResponse{}, err
	}

	s.logger.Info(op+" success",
		zap.String("payroll_run_id", id),
		zap.String("from", string(previous)),
		zap.String("to", string(run.Status)),
	)
	return mapToRunResponse(*run), nil
}

func (s *service) SubmitForReview(ctx context.Context, id string) (PayrollRunResponse, error) {
	return s.transitionRun(ctx, "submit payroll run", id,
		[]PayrollRunStatus{RunStatusDraft, RunStatusRejected, RunStatusUnlocked},
		func(qtx Repository, run *PayrollRun) error {
			entries, err := qtx.ListEntries(ctx, run.ID)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				return payrollerrors.ErrPayrollRunEmpty
			}
			run.Status = RunStatusUnderReview
			run.RejectionReason = nil
			return nil
		},
	)
}

func (s *service) ManagerDecision(ctx context.Context, actorID string, req ManagerDecisionDto) (PayrollRunResponse, error) {
	reason, err := decisionReason(req.Decision, req.Reason)
	if err != nil {
		return PayrollRunResponse{}, err
	}
	managerID := actorID
	if req.ManagerID != nil {
		managerID = *req.ManagerID
	}

	return s.transitionRun(ctx, "manager decision payroll run", req.PayrollRunID,
		[]PayrollRunStatus{RunStatusUnderReview},
		func(_ Repository, run *PayrollRun) error {
			if managerID != "" {
				run.PayrollManagerID = &managerID
			}
			if req.Decision == DecisionReject {
				run.Status = RunStatusRejected
				run.RejectionReason = reason
				return nil
			}
			now := s.now().UTC()
			run.Status = RunStatusPendingFinanceApproval
			run.ManagerApprovedAt = &now
			return nil
		},
	)
}

func (s *service) FinanceDecision(ctx context.Context, actorID string, req FinanceDecisionDto) (PayrollRunResponse, error) {
	reason, err := decisionReason(req.Decision, req.Reason)
	if err != nil {
		return PayrollRunResponse{}, err
	}
	financeID := actorID
	if req.FinanceStaffID != nil {
		financeID = *req.FinanceStaffID
	}

	return s.transitionRun(ctx, "finance decision payroll run", req.PayrollRunID,
		[]PayrollRunStatus{RunStatusPendingFinanceApproval},
		func(_ Repository, run *PayrollRun) error {
			if financeID != "" {
				run.FinanceStaffID = &financeID
			}
			if req.Decision == DecisionReject {
				run.Status = RunStatusRejected
				run.RejectionReason = reason
				return nil
			}
			now := s.now().UTC()
			run.Status = RunStatusApproved
			run.FinanceApprovedAt = &now
			return nil
		},
	)
}

// decisionReason returns the trimmed reason; rejecting without one fails.
func decisionReason(decision string, reason *string) (*string, error) {
	if reason != nil {
		trimmed := strings.TrimSpace(*reason)
		if trimmed != "" {
			return &trimmed, nil
		}
	}
	if decision == DecisionReject {
		return nil, payrollerrors.ErrRejectionReasonRequired
	}
	return nil, nil
}

func (s *service) Lock(ctx context.Context, id string) (PayrollRunResponse, error) {
	return s.transitionRun(ctx, "lock payroll run", id,
		[]PayrollRunStatus{RunStatusApproved},
		func(_ Repository, run *PayrollRun) error {
			now := s.now().UTC()
			run.Status = RunStatusLocked
			run.LockedAt = &now
			run.UnlockReason = nil
			return nil
		},
	)
}

func (s *service) Unlock(ctx context.Context, id string, req UnlockPayrollRunDto) (PayrollRunResponse, error) {
	reason := strings.TrimSpace(req.UnlockReason)
	return s.transitionRun(ctx, "unlock payroll run", id,
		[]PayrollRunStatus{RunStatusLocked},
		func(_ Repository, run *PayrollRun) error {
			run.Status = RunStatusUnlocked
			run.UnlockReason = &reason
			run.LockedAt = nil
			return nil
		},
	)
}

// editableRun loads a run that may still have its entries changed.
func (s *service) editableRun(ctx context.Context, qtx Repository, id string) (*PayrollRun, error) {
	run, err := findRun(ctx, qtx, id)
	if err != nil {
		return nil, err
	}
	if !run.Status.Editable() {
		s.logger.Warn("payroll run not editable",
			zap.String("payroll_run_id", id),
			zap.String("status", string(run.Status)),
		)
		return nil, payrollerrors.ErrPayrollRunNotEditable
	}
	return run, nil
}

func (s *service) CalculateSalary(ctx context.Context, req SalaryCalculationInputDto) (PayrollEntryResponse, error) {
	s.logger.Debug("calculate salary requested",
		zap.String("payroll_run_id", req.PayrollRunID),
		zap.String("employee_id", req.EmployeeID),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("calculate salary begin tx failed", zap.Error(err))
		return PayrollEntryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	run, err := s.editableRun(ctx, qtx, req.PayrollRunID)
	if err != nil {
		return PayrollEntryResponse{}, err
	}

	entry, err := qtx.FindEntry(ctx, run.ID, req.EmployeeID)
	if err != nil {
		if !dbutil.IsNotFound(err) {
			return PayrollEntryResponse{}, err
		}
		entry = &PayrollEntry{
			ID:           objectid.New(),
			PayrollRunID: run.ID,
			EmployeeID:   req.EmployeeID,
			HrEventType:  HrEventNormal,
		}
	}

	in := salaryInputFromDto(req)
	out := CalculateSalary(in)

	entry.BaseSalary = in.BaseSalary
	entry.Allowances = in.Allowances
	entry.OvertimeHours = in.OvertimeHours
	entry.OvertimeRate = in.OvertimeRate
	entry.OvertimePay = out.OvertimePay
	entry.Deductions = in.Deductions
	entry.Penalties = in.Penalties
	entry.TaxRate = in.TaxRate
	entry.Tax = out.Tax
	entry.GrossSalary = out.Gross
	entry.NetSalary = out.Net
	entry.NegativeNetClamped = out.NegativeNetClamped

	if err := qtx.SaveEntry(ctx, entry); err != nil {
		s.logger.Error("calculate salary persist failed", zap.Error(err))
		return PayrollEntryResponse{}, err
	}
	if err := refreshTotals(ctx, qtx, run); err != nil {
		s.logger.Error("calculate salary refresh totals failed", zap.Error(err))
		return PayrollEntryResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("calculate salary commit failed", zap.Error(err))
		return PayrollEntryResponse{}, err
	}

	if out.NegativeNetClamped {
		s.logger.Warn("calculate salary net clamped to zero",
			zap.String("payroll_run_id", run.ID),
			zap.String("employee_id", entry.EmployeeID),
		)
	}
	s.logger.Info("calculate salary success",
		zap.String("payroll_run_id", run.ID),
		zap.String("employee_id", entry.EmployeeID),
		zap.String("net_salary", entry.NetSalary.StringFixed(2)),
	)
	return mapToEntryResponse(*entry), nil
}

func refreshTotals(ctx context.Context, qtx Repository, run *PayrollRun) error {
	entries, err := qtx.ListEntries(ctx, run.ID)
	if err != nil {
		return err
	}

	gross, tax, net := decimal.Zero, decimal.Zero, decimal.Zero
	for _, e := range entries {
		gross = gross.Add(e.GrossSalary)
		tax = tax.Add(e.Tax)
		net = net.Add(e.NetSalary)
	}
	run.EmployeeCount = len(entries)
	run.TotalGross = gross
	run.TotalTax = tax
	run.TotalNet = net
	return qtx.UpdateRun(ctx, run)
}

func (s *service) ApplyHrChecks(ctx context.Context, req HrChecksDto) (PayrollEntryResponse, error) {
	var effective *time.Time
	if req.EffectiveDate != nil {
		t, err := validation.ParseISODate(*req.EffectiveDate)
		if err != nil {
			return PayrollEntryResponse{}, apperror.InvalidField("effectiveDate")
		}
		effective = &t
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("apply hr checks begin tx failed", zap.Error(err))
		return PayrollEntryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	run, err := s.editableRun(ctx, qtx, req.PayrollRunID)
	if err != nil {
		return PayrollEntryResponse{}, err
	}

	entry, err := qtx.FindEntry(ctx, run.ID, req.EmployeeID)
	if err != nil {
		if dbutil.IsNotFound(err) {
			return PayrollEntryResponse{}, payrollerrors.ErrPayrollEntryNotFound
		}
		return PayrollEntryResponse{}, err
	}

	entry.HrEventType = req.EventType
	entry.HrEventEffectiveDate = effective
	entry.HrNotes = req.Notes
	entry.RequiresReview = req.EventType.RequiresReview()

	if err := qtx.SaveEntry(ctx, entry); err != nil {
		s.logger.Error("apply hr checks persist failed", zap.Error(err))
		return PayrollEntryResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("apply hr checks commit failed", zap.Error(err))
		return PayrollEntryResponse{}, err
	}

	s.logger.Info("apply hr checks success",
		zap.String("payroll_run_id", run.ID),
		zap.String("employee_id", entry.EmployeeID),
		zap.String("event_type", string(entry.HrEventType)),
		zap.Bool("requires_review", entry.RequiresReview),
	)
	return mapToEntryResponse(*entry), nil
}

// GeneratePayslips creates a pending payslip for every entry that has none
// yet and queues a render request per payslip in the same transaction.
func (s *service) GeneratePayslips(ctx context.Context, actorID string, req GeneratePayslipsDto) ([]PayslipResponse, error) {
	s.logger.Debug("generate payslips requested",
		zap.String("payroll_run_id", req.PayrollRunID),
		zap.Int("employee_filter", len(req.EmployeeIDs)),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("generate payslips begin tx failed", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	otx := s.outbox.WithTx(tx)

	run, err := findRun(ctx, qtx, req.PayrollRunID)
	if err != nil {
		return nil, err
	}
	if run.Status != RunStatusApproved && run.Status != RunStatusLocked {
		s.logger.Warn("generate payslips invalid status",
			zap.String("payroll_run_id", run.ID),
			zap.String("status", string(run.Status)),
		)
		return nil, payrollerrors.ErrPayslipsNotAllowed
	}

	entries, err := qtx.ListEntries(ctx, run.ID)
	if err != nil {
		return nil, err
	}

	requestID := contextutil.GetRequestID(ctx)
	created := make([]Payslip, 0, len(entries))
	skipped := 0
	for _, entry := range entries {
		if len(req.EmployeeIDs) > 0 && !slices.Contains(req.EmployeeIDs, entry.EmployeeID) {
			continue
		}

		exists, err := qtx.PayslipExists(ctx, run.ID, entry.EmployeeID)
		if err != nil {
			return nil, err
		}
		if exists {
			skipped++
			continue
		}

		slip := Payslip{
			ID:              objectid.New(),
			PayrollRunID:    run.ID,
			EmployeeID:      entry.EmployeeID,
			PayrollEntryID:  entry.ID,
			GrossSalary:     entry.GrossSalary,
			TotalDeductions: entry.Deductions.Add(entry.Penalties).Add(entry.Tax),
			NetSalary:       entry.NetSalary,
			PaymentStatus:   PaymentPending,
		}
		if err := qtx.CreatePayslip(ctx, &slip); err != nil {
			s.logger.Error("generate payslips persist failed",
				zap.String("employee_id", entry.EmployeeID),
				zap.Error(err),
			)
			return nil, err
		}

		event := events.PayslipRequestedEvent{
			EventType:    events.EventTypePayslipRequested,
			RequestID:    requestID,
			PayslipID:    slip.ID,
			PayrollRunID: run.ID,
			EmployeeID:   slip.EmployeeID,
			RequestedBy:  actorID,
			OccurredAt:   s.now().UTC(),
		}
		outboxEvent, err := kafka.NewOutboxEvent(requestID, "payslip", slip.ID, event.EventType, events.PayslipRequestedTopic, event)
		if err != nil {
			return nil, err
		}
		if err := otx.Create(ctx, outboxEvent); err != nil {
			s.logger.Error("generate payslips outbox failed", zap.String("payslip_id", slip.ID), zap.Error(err))
			return nil, err
		}

		created = append(created, slip)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("generate payslips commit failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("generate payslips success",
		zap.String("payroll_run_id", run.ID),
		zap.Int("created", len(created)),
		zap.Int("skipped", skipped),
	)
	return mapToPayslipListResponse(created), nil
}

func (s *service) ListPayslips(ctx context.Context, runID string) ([]PayslipResponse, error) {
	if _, err := findRun(ctx, s.repo, runID); err != nil {
		return nil, err
	}
	slips, err := s.repo.ListPayslips(ctx, runID)
	if err != nil {
		s.logger.Error("list payslips failed", zap.String("payroll_run_id", runID), zap.Error(err))
		return nil, err
	}
	return mapToPayslipListResponse(slips), nil
}

func findPayslip(ctx context.Context, repo Repository, id string) (*Payslip, error) {
	slip, err := repo.FindPayslipByID(ctx, id)
	if err != nil {
		if dbutil.IsNotFound(err) {
			return nil, payrollerrors.ErrPayslipNotFound
		}
		return nil, err
	}
	return slip, nil
}

func (s *service) GetPayslip(ctx context.Context, id string) (PayslipResponse, error) {
	slip, err := findPayslip(ctx, s.repo, id)
	if err != nil {
		return PayslipResponse{}, err
	}
	return mapToPayslipResponse(*slip), nil
}

func (s *service) RenderPayslip(ctx context.Context, id string) (PayslipResponse, error) {
	slip, err := s.renderAndStore(ctx, id)
	if err != nil {
		return PayslipResponse{}, err
	}
	return mapToPayslipResponse(*slip), nil
}

func (s *service) renderAndStore(ctx context.Context, id string) (*Payslip, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	slip, err := findPayslip(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	run, err := findRun(ctx, s.repo, slip.PayrollRunID)
	if err != nil {
		return nil, err
	}
	entry, err := s.repo.FindEntryByID(ctx, slip.PayrollEntryID)
	if err != nil {
		if dbutil.IsNotFound(err) {
			return nil, payrollerrors.ErrPayrollEntryNotFound
		}
		return nil, err
	}

	pdf, err := s.render(*run, *entry, *slip)
	if err != nil {
		log.Error("render payslip failed", zap.String("payslip_id", id), zap.Error(err))
		return nil, err
	}

	now := s.now().UTC()
	slip.PDF = pdf
	slip.RenderedAt = &now
	if err := s.repo.UpdatePayslip(ctx, slip); err != nil {
		log.Error("render payslip persist failed", zap.String("payslip_id", id), zap.Error(err))
		return nil, err
	}

	log.Info("render payslip success",
		zap.String("payslip_id", id),
		zap.Int("bytes", len(pdf)),
	)
	return slip, nil
}

// DownloadPayslip serves the stored PDF, rendering it first when the
// consumer has not done so yet.
func (s *service) DownloadPayslip(ctx context.Context, id string) (PayslipDocument, error) {
	slip, err := findPayslip(ctx, s.repo, id)
	if err != nil {
		return PayslipDocument{}, err
	}
	if len(slip.PDF) == 0 {
		slip, err = s.renderAndStore(ctx, id)
		if err != nil {
			return PayslipDocument{}, err
		}
	}
	return PayslipDocument{
		Filename: "payslip-" + slip.ID + ".pdf",
		Content:  slip.PDF,
	}, nil
}

func (s *service) MarkPayslipPaid(ctx context.Context, id string) (PayslipResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayslipResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	slip, err := findPayslip(ctx, qtx, id)
	if err != nil {
		return PayslipResponse{}, err
	}
	if slip.PaymentStatus == PaymentPaid {
		return PayslipResponse{}, payrollerrors.ErrPayslipAlreadyPaid
	}

	now := s.now().UTC()
	slip.PaymentStatus = PaymentPaid
	slip.PaidAt = &now
	if err := qtx.UpdatePayslip(ctx, slip); err != nil {
		s.logger.Error("mark payslip paid persist failed", zap.String("payslip_id", id), zap.Error(err))
		return PayslipResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return PayslipResponse{}, err
	}

	s.logger.Info("mark payslip paid success", zap.String("payslip_id", id))
	return mapToPayslipResponse(*slip), nil
}
