package payrollexecution_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"go-hrms/internal/events"
	"go-hrms/internal/messaging/kafka"
	kafkamock "go-hrms/internal/messaging/kafka/mock"
	"go-hrms/internal/payrollexecution"
	payrollerrors "go-hrms/internal/payrollexecution/errors"
	"go-hrms/internal/shared/contextutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type fakePayrollRepository struct {
	runs      map[string]*payrollexecution.PayrollRun
	entries   map[string]*payrollexecution.PayrollEntry
	payslips  map[string]*payrollexecution.Payslip
	createErr error
}

func newFakeRepo() *fakePayrollRepository {
	return &fakePayrollRepository{
		runs:     map[string]*payrollexecution.PayrollRun{},
		entries:  map[string]*payrollexecution.PayrollEntry{},
		payslips: map[string]*payrollexecution.Payslip{},
	}
}

func (f *fakePayrollRepository) WithTx(tx *sql.Tx) payrollexecution.Repository { return f }

func (f *fakePayrollRepository) CreateRun(ctx context.Context, run *payrollexecution.PayrollRun) error {
	if f.createErr != nil {
		return f.createErr
	}
	cp := *run
	f.runs[run.ID] = &cp
	return nil
}

func (f *fakePayrollRepository) FindRunByID(ctx context.Context, id string) (*payrollexecution.PayrollRun, error) {
	run, ok := f.runs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *run
	return &cp, nil
}

func (f *fakePayrollRepository) ListRuns(ctx context.Context, filter payrollexecution.RunFilter) ([]payrollexecution.PayrollRun, error) {
	var out []payrollexecution.PayrollRun
	for _, run := range f.runs {
		if filter.Status != "" && run.Status != filter.Status {
			continue
		}
		out = append(out, *run)
	}
	return out, nil
}

func (f *fakePayrollRepository) UpdateRun(ctx context.Context, run *payrollexecution.PayrollRun) error {
	cp := *run
	f.runs[run.ID] = &cp
	return nil
}

func (f *fakePayrollRepository) FindEntry(ctx context.Context, runID, employeeID string) (*payrollexecution.PayrollEntry, error) {
	for _, e := range f.entries {
		if e.PayrollRunID == runID && e.EmployeeID == employeeID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePayrollRepository) FindEntryByID(ctx context.Context, id string) (*payrollexecution.PayrollEntry, error) {
	e, ok := f.entries[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakePayrollRepository) ListEntries(ctx context.Context, runID string) ([]payrollexecution.PayrollEntry, error) {
	var out []payrollexecution.PayrollEntry
	for _, e := range f.entries {
		if e.PayrollRunID == runID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakePayrollRepository) SaveEntry(ctx context.Context, entry *payrollexecution.PayrollEntry) error {
	cp := *entry
	f.entries[entry.ID] = &cp
	return nil
}

func (f *fakePayrollRepository) CreatePayslip(ctx context.Context, slip *payrollexecution.Payslip) error {
	cp := *slip
	f.payslips[slip.ID] = &cp
	return nil
}

func (f *fakePayrollRepository) FindPayslipByID(ctx context.Context, id string) (*payrollexecution.Payslip, error) {
	p, ok := f.payslips[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePayrollRepository) PayslipExists(ctx context.Context, runID, employeeID string) (bool, error) {
	for _, p := range f.payslips {
		if p.PayrollRunID == runID && p.EmployeeID == employeeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePayrollRepository) ListPayslips(ctx context.Context, runID string) ([]payrollexecution.Payslip, error) {
	var out []payrollexecution.Payslip
	for _, p := range f.payslips {
		if p.PayrollRunID == runID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePayrollRepository) UpdatePayslip(ctx context.Context, slip *payrollexecution.Payslip) error {
	cp := *slip
	f.payslips[slip.ID] = &cp
	return nil
}

func (f *fakePayrollRepository) seedRun(id string, status payrollexecution.PayrollRunStatus) {
	f.runs[id] = &payrollexecution.PayrollRun{
		ID:                  id,
		PayrollPeriod:       time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		Entity:              "Acme Egypt",
		Status:              status,
		PayrollSpecialistID: otherID,
	}
}

func (f *fakePayrollRepository) seedEntry(id, runID, employeeID string, net string) {
	f.entries[id] = &payrollexecution.PayrollEntry{
		ID:           id,
		PayrollRunID: runID,
		EmployeeID:   employeeID,
		BaseSalary:   decimal.RequireFromString(net),
		GrossSalary:  decimal.RequireFromString(net),
		NetSalary:    decimal.RequireFromString(net),
		HrEventType:  payrollexecution.HrEventNormal,
	}
}

type payrollServiceDeps struct {
	sqlMock sqlmock.Sqlmock
	service payrollexecution.Service
	repo    *fakePayrollRepository
	outbox  *kafkamock.MockOutboxRepository
}

func setupPayrollServiceTest(t *testing.T) *payrollServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctrl := gomock.NewController(t)
	outbox := kafkamock.NewMockOutboxRepository(ctrl)
	repo := newFakeRepo()

	return &payrollServiceDeps{
		sqlMock: sqlMock,
		service: payrollexecution.NewService(db, repo, outbox),
		repo:    repo,
		outbox:  outbox,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestPayrollService_CreateRun(t *testing.T) {
	req := payrollexecution.CreatePayrollRunDto{
		PayrollPeriod:       "2026-03-31",
		Entity:              " Acme Egypt ",
		PayrollSpecialistID: otherID,
	}

	t.Run("starts as draft", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.CreateRun(context.Background(), req)
		assert.NoError(t, err)
		assert.Equal(t, payrollexecution.RunStatusDraft, resp.Status)
		assert.Equal(t, "Acme Egypt", resp.Entity)
		assert.Equal(t, "2026-03-31", resp.PayrollPeriod)
		assert.Equal(t, "0.00", resp.TotalNet)
		assert.Nil(t, resp.PayrollManagerID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("duplicate period and entity", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		deps.repo.createErr = &pgconn.PgError{Code: "23505", ConstraintName: "uq_payroll_runs_period_entity"}
		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.CreateRun(context.Background(), req)
		assert.ErrorIs(t, err, payrollerrors.ErrPayrollRunExists)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestPayrollService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	deps := setupPayrollServiceTest(t)
	deps.repo.seedRun(runID, payrollexecution.RunStatusDraft)
	deps.repo.seedEntry("65f1c2a9e4b0a1b2c3d4e601", runID, employeeID, "1000")

	reason := "  totals look wrong  "
	steps := []struct {
		name string
		call func() (payrollexecution.PayrollRunResponse, error)
		want payrollexecution.PayrollRunStatus
	}{
		{"submit", func() (payrollexecution.PayrollRunResponse, error) {
			return deps.service.SubmitForReview(ctx, runID)
		}, payrollexecution.RunStatusUnderReview},
		{"manager rejects", func() (payrollexecution.PayrollRunResponse, error) {
			return deps.service.ManagerDecision(ctx, managerID, payrollexecution.ManagerDecisionDto{
				PayrollRunID: runID, Decision: "reject", Reason: &reason,
			})
		}, payrollexecution.RunStatusRejected},
		{"resubmit", func() (payrollexecution.PayrollRunResponse, error) {
			return deps.service.SubmitForReview(ctx, runID)
		}, payrollexecution.RunStatusUnderReview},
		{"manager approves", func() (payrollexecution.PayrollRunResponse, error) {
			return deps.service.ManagerDecision(ctx, managerID, payrollexecution.ManagerDecisionDto{
				PayrollRunID: runID, Decision: "approve",
			})
		}, payrollexecution.RunStatusPendingFinanceApproval},
		{"finance approves", func() (payrollexecution.PayrollRunResponse, error) {
			return deps.service.FinanceDecision(ctx, otherID, payrollexecution.FinanceDecisionDto{
				PayrollRunID: runID, Decision: "approve",
			})
		}, payrollexecution.RunStatusApproved},
		{"lock", func() (payrollexecution.PayrollRunResponse, error) {
			return deps.service.Lock(ctx, runID)
		}, payrollexecution.RunStatusLocked},
		{"unlock", func() (payrollexecution.PayrollRunResponse, error) {
			return deps.service.Unlock(ctx, runID, payrollexecution.UnlockPayrollRunDto{UnlockReason: "late bonus"})
		}, payrollexecution.RunStatusUnlocked},
	}

	for _, step := range steps {
		expectTx(t, deps.sqlMock, true)
		resp, err := step.call()
		assert.NoError(t, err, step.name)
		assert.Equal(t, step.want, resp.Status, step.name)
	}

	run := deps.repo.runs[runID]
	assert.Nil(t, run.RejectionReason, "resubmission clears the rejection reason")
	assert.Equal(t, managerID, *run.PayrollManagerID)
	assert.Equal(t, otherID, *run.FinanceStaffID)
	assert.Equal(t, "late bonus", *run.UnlockReason)
	assert.Nil(t, run.LockedAt)
	assert.NotNil(t, run.FinanceApprovedAt)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayrollService_InvalidTransitions(t *testing.T) {
	ctx := context.Background()

	t.Run("reject requires a reason", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		deps.repo.seedRun(runID, payrollexecution.RunStatusUnderReview)
		blank := "   "

		_, err := deps.service.ManagerDecision(ctx, managerID, payrollexecution.ManagerDecisionDto{
			PayrollRunID: runID, Decision: "reject", Reason: &blank,
		})
		assert.ErrorIs(t, err, payrollerrors.ErrRejectionReasonRequired)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("finance cannot decide a draft", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		deps.repo.seedRun(runID, payrollexecution.RunStatusDraft)
		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.FinanceDecision(ctx, otherID, payrollexecution.FinanceDecisionDto{
			PayrollRunID: runID, Decision: "approve",
		})
		assert.ErrorIs(t, err, payrollerrors.ErrInvalidRunTransition)
		assert.Equal(t, payrollexecution.RunStatusDraft, deps.repo.runs[runID].Status)
	})

	t.Run("empty run cannot be submitted", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		deps.repo.seedRun(runID, payrollexecution.RunStatusDraft)
		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.SubmitForReview(ctx, runID)
		assert.ErrorIs(t, err, payrollerrors.ErrPayrollRunEmpty)
	})

	t.Run("unknown run", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Lock(ctx, runID)
		assert.ErrorIs(t, err, payrollerrors.ErrPayrollRunNotFound)
	})
}

func TestPayrollService_CalculateSalary(t *testing.T) {
	ctx := context.Background()
	f := func(v float64) *float64 { return &v }

	t.Run("upserts entry and refreshes totals", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		deps.repo.seedRun(runID, payrollexecution.RunStatusDraft)
		deps.repo.seedEntry("65f1c2a9e4b0a1b2c3d4e601", runID, otherID, "1000")

		expectTx(t, deps.sqlMock, true)
		resp, err := deps.service.CalculateSalary(ctx, payrollexecution.SalaryCalculationInputDto{
			EmployeeID:    employeeID,
			PayrollRunID:  runID,
			BaseSalary:    5000,
			OvertimeHours: f(2),
			OvertimeRate:  f(25),
			TaxRate:       f(0.1),
		})
		assert.NoError(t, err)
		assert.Equal(t, "5050.00", resp.GrossSalary)
		assert.Equal(t, "505.00", resp.Tax)
		assert.Equal(t, "4545.00", resp.NetSalary)
		assert.Equal(t, payrollexecution.HrEventNormal, resp.HrEventType)

		run := deps.repo.runs[runID]
		assert.Equal(t, 2, run.EmployeeCount)
		assert.Equal(t, "5545.00", run.TotalNet.StringFixed(2))

		expectTx(t, deps.sqlMock, true)
		again, err := deps.service.CalculateSalary(ctx, payrollexecution.SalaryCalculationInputDto{
			EmployeeID:   employeeID,
			PayrollRunID: runID,
			BaseSalary:   100,
			Deductions:   f(150),
		})
		assert.NoError(t, err)
		assert.Equal(t, resp.ID, again.ID)
		assert.Equal(t, "0.00", again.NetSalary)
		assert.True(t, again.NegativeNetClamped)
		assert.Equal(t, 2, deps.repo.runs[runID].EmployeeCount)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("run under review is read only", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		deps.repo.seedRun(runID, payrollexecution.RunStatusUnderReview)
		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.CalculateSalary(ctx, payrollexecution.SalaryCalculationInputDto{
			EmployeeID: employeeID, PayrollRunID: runID, BaseSalary: 1,
		})
		assert.ErrorIs(t, err, payrollerrors.ErrPayrollRunNotEditable)
	})
}

func TestPayrollService_ApplyHrChecks(t *testing.T) {
	ctx := context.Background()
	effective := "2026-03-15"

	t.Run("flags entry for review", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		deps.repo.seedRun(runID, payrollexecution.RunStatusDraft)
		deps.repo.seedEntry("65f1c2a9e4b0a1b2c3d4e601", runID, employeeID, "1000")
		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.ApplyHrChecks(ctx, payrollexecution.HrChecksDto{
			EmployeeID: employeeID, PayrollRunID: runID,
			EventType: payrollexecution.HrEventResignation, EffectiveDate: &effective,
		})
		assert.NoError(t, err)
		assert.True(t, resp.RequiresReview)
		assert.Equal(t, effective, *resp.HrEventEffectiveDate)

		expectTx(t, deps.sqlMock, true)
		resp, err = deps.service.ApplyHrChecks(ctx, payrollexecution.HrChecksDto{
			EmployeeID: employeeID, PayrollRunID: runID, EventType: payrollexecution.HrEventNormal,
		})
		assert.NoError(t, err)
		assert.False(t, resp.RequiresReview)
		assert.Nil(t, resp.HrEventEffectiveDate)
	})

	t.Run("employee without entry", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		deps.repo.seedRun(runID, payrollexecution.RunStatusDraft)
		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.ApplyHrChecks(ctx, payrollexecution.HrChecksDto{
			EmployeeID: employeeID, PayrollRunID: runID, EventType: payrollexecution.HrEventNewHire,
		})
		assert.ErrorIs(t, err, payrollerrors.ErrPayrollEntryNotFound)
	})
}

func TestPayrollService_GeneratePayslips(t *testing.T) {
	ctx := contextutil.WithRequestID(context.Background(), "req-42")

	t.Run("one payslip per entry and one outbox event each", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		deps.repo.seedRun(runID, payrollexecution.RunStatusApproved)
		deps.repo.seedEntry("65f1c2a9e4b0a1b2c3d4e601", runID, employeeID, "1000")
		deps.repo.seedEntry("65f1c2a9e4b0a1b2c3d4e602", runID, otherID, "2000")

		var published []kafka.OutboxEvent
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, e kafka.OutboxEvent) error {
				published = append(published, e)
				return nil
			}).
			Times(2)

		expectTx(t, deps.sqlMock, true)
		resp, err := deps.service.GeneratePayslips(ctx, managerID, payrollexecution.GeneratePayslipsDto{PayrollRunID: runID})
		assert.NoError(t, err)
		assert.Len(t, resp, 2)
		for _, p := range resp {
			assert.Equal(t, payrollexecution.PaymentPending, p.PaymentStatus)
			assert.Nil(t, p.PaidAt)
		}

		assert.Len(t, published, 2)
		var event events.PayslipRequestedEvent
		assert.NoError(t, json.Unmarshal(published[0].Payload, &event))
		assert.Equal(t, events.PayslipRequestedTopic, published[0].Topic)
		assert.Equal(t, "req-42", published[0].RequestID)
		assert.Equal(t, runID, event.PayrollRunID)
		assert.Equal(t, managerID, event.RequestedBy)
		assert.Equal(t, published[0].AggregateID, event.PayslipID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("existing payslips and filtered employees are skipped", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		deps.repo.seedRun(runID, payrollexecution.RunStatusLocked)
		deps.repo.seedEntry("65f1c2a9e4b0a1b2c3d4e601", runID, employeeID, "1000")
		deps.repo.seedEntry("65f1c2a9e4b0a1b2c3d4e602", runID, otherID, "2000")
		deps.repo.payslips["65f1c2a9e4b0a1b2c3d4e700"] = &payrollexecution.Payslip{
			ID: "65f1c2a9e4b0a1b2c3d4e700", PayrollRunID: runID, EmployeeID: employeeID,
		}

		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.GeneratePayslips(ctx, managerID, payrollexecution.GeneratePayslipsDto{
			PayrollRunID: runID,
			EmployeeIDs:  []string{employeeID},
		})
		assert.NoError(t, err)
		assert.Empty(t, resp)
	})

	t.Run("run must be approved or locked", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		deps.repo.seedRun(runID, payrollexecution.RunStatusPendingFinanceApproval)
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.GeneratePayslips(ctx, managerID, payrollexecution.GeneratePayslipsDto{PayrollRunID: runID})
		assert.ErrorIs(t, err, payrollerrors.ErrPayslipsNotAllowed)
	})
}

func TestPayrollService_Payslips(t *testing.T) {
	ctx := context.Background()
	slipID := "65f1c2a9e4b0a1b2c3d4e700"

	seed := func(deps *payrollServiceDeps) {
		deps.repo.seedRun(runID, payrollexecution.RunStatusApproved)
		deps.repo.seedEntry("65f1c2a9e4b0a1b2c3d4e601", runID, employeeID, "1000")
		deps.repo.payslips[slipID] = &payrollexecution.Payslip{
			ID:              slipID,
			PayrollRunID:    runID,
			EmployeeID:      employeeID,
			PayrollEntryID:  "65f1c2a9e4b0a1b2c3d4e601",
			GrossSalary:     decimal.RequireFromString("1000"),
			TotalDeductions: decimal.Zero,
			NetSalary:       decimal.RequireFromString("1000"),
			PaymentStatus:   payrollexecution.PaymentPending,
		}
	}

	t.Run("download renders once and stores the pdf", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		seed(deps)

		doc, err := deps.service.DownloadPayslip(ctx, slipID)
		assert.NoError(t, err)
		assert.Equal(t, "payslip-"+slipID+".pdf", doc.Filename)
		assert.True(t, bytes.HasPrefix(doc.Content, []byte("%PDF")))

		stored := deps.repo.payslips[slipID]
		assert.NotNil(t, stored.RenderedAt)
		assert.Equal(t, doc.Content, stored.PDF)

		resp, err := deps.service.GetPayslip(ctx, slipID)
		assert.NoError(t, err)
		assert.NotNil(t, resp.RenderedAt)
	})

	t.Run("mark paid once", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		seed(deps)

		expectTx(t, deps.sqlMock, true)
		resp, err := deps.service.MarkPayslipPaid(ctx, slipID)
		assert.NoError(t, err)
		assert.Equal(t, payrollexecution.PaymentPaid, resp.PaymentStatus)
		assert.NotNil(t, resp.PaidAt)

		expectTx(t, deps.sqlMock, false)
		_, err = deps.service.MarkPayslipPaid(ctx, slipID)
		assert.ErrorIs(t, err, payrollerrors.ErrPayslipAlreadyPaid)
	})

	t.Run("unknown payslip", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		_, err := deps.service.RenderPayslip(ctx, slipID)
		assert.ErrorIs(t, err, payrollerrors.ErrPayslipNotFound)
	})
}
