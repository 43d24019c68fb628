package employeeprofile_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"go-hrms/internal/employeeprofile"
	profileerrors "go-hrms/internal/employeeprofile/errors"
	"go-hrms/internal/events"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/shared/contextutil"

	profileMock "go-hrms/internal/employeeprofile/mock"
	kafkaMock "go-hrms/internal/messaging/kafka/mock"
	counterMock "go-hrms/internal/shared/counter/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   employeeprofile.Service
	repo      *profileMock.MockRepository
	counter   *counterMock.MockRepository
	outbox    *kafkaMock.MockOutboxRepository
	redismock redismock.ClientMock
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	rdb, redisMock := redismock.NewClientMock()
	repo := profileMock.NewMockRepository(ctrl)
	counterRepo := counterMock.NewMockRepository(ctrl)
	outboxRepo := kafkaMock.NewMockOutboxRepository(ctrl)

	return &serviceDeps{
		db:        db,
		sqlMock:   sqlMock,
		service:   employeeprofile.NewService(db, repo, counterRepo, outboxRepo, rdb),
		repo:      repo,
		counter:   counterRepo,
		outbox:    outboxRepo,
		redismock: redisMock,
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

func sampleProfile() *employeeprofile.EmployeeProfile {
	created := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	return &employeeprofile.EmployeeProfile{
		ID:             employeeID,
		EmployeeNumber: "EMP-0007",
		FirstName:      "Amina",
		LastName:       "Hassan",
		NationalID:     "29801011234567",
		WorkEmail:      "amina.hassan@example.com",
		DateOfHire:     time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		Status:         employeeprofile.StatusProbation,
		CreatedAt:      created,
		UpdatedAt:      created,
	}
}

func TestEmployeeProfileService_CreateProfile(t *testing.T) {
	req := employeeprofile.CreateEmployeeProfileDto{
		FirstName:  " Amina ",
		LastName:   "Hassan",
		NationalID: "29801011234567",
		WorkEmail:  "Amina.Hassan@Example.com",
		DateOfHire: "2026-01-05",
	}

	t.Run("success generates number and queues lifecycle event", func(t *testing.T) {
		deps := setupServiceTest(t)
		ctx := contextutil.WithRequestID(context.Background(), "req-1")

		expectTx(t, deps.sqlMock, true)
		deps.counter.EXPECT().WithTx(gomock.Any()).Return(deps.counter)
		deps.counter.EXPECT().Next(gomock.Any(), "employee").Return(int64(12), nil)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, p *employeeprofile.EmployeeProfile) error {
				assert.Equal(t, "EMP-0012", p.EmployeeNumber)
				assert.Equal(t, "Amina", p.FirstName)
				assert.Equal(t, "amina.hassan@example.com", p.WorkEmail)
				assert.Equal(t, employeeprofile.StatusActive, p.Status)
				assert.Len(t, p.ID, 24)
				return nil
			})
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, e kafka.OutboxEvent) error {
				assert.Equal(t, events.EmployeeLifecycleTopic, e.Topic)
				assert.Equal(t, events.EventTypeEmployeeProfileCreated, e.EventType)
				assert.Equal(t, "employee_profile", e.AggregateType)

				var payload events.EmployeeLifecycleEvent
				assert.NoError(t, json.Unmarshal(e.Payload, &payload))
				assert.Equal(t, "req-1", payload.RequestID)
				assert.Equal(t, "active", payload.Status)
				assert.Empty(t, payload.PreviousStatus)
				return nil
			})

		resp, err := deps.service.CreateProfile(ctx, req)
		assert.NoError(t, err)
		assert.Equal(t, "EMP-0012", resp.EmployeeNumber)
		assert.Equal(t, "Amina Hassan", resp.FullName)
		assert.Equal(t, "2026-01-05", resp.DateOfHire)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("explicit status is kept", func(t *testing.T) {
		deps := setupServiceTest(t)
		status := employeeprofile.StatusProbation
		withStatus := req
		withStatus.Status = &status

		expectTx(t, deps.sqlMock, true)
		deps.counter.EXPECT().WithTx(gomock.Any()).Return(deps.counter)
		deps.counter.EXPECT().Next(gomock.Any(), "employee").Return(int64(1), nil)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		resp, err := deps.service.CreateProfile(context.Background(), withStatus)
		assert.NoError(t, err)
		assert.Equal(t, employeeprofile.StatusProbation, resp.Status)
	})

	t.Run("duplicate work email maps to conflict", func(t *testing.T) {
		deps := setupServiceTest(t)

		expectTx(t, deps.sqlMock, false)
		deps.counter.EXPECT().WithTx(gomock.Any()).Return(deps.counter)
		deps.counter.EXPECT().Next(gomock.Any(), "employee").Return(int64(2), nil)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_employee_profiles_work_email"})

		_, err := deps.service.CreateProfile(context.Background(), req)
		assert.ErrorIs(t, err, profileerrors.ErrWorkEmailExists)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("duplicate national id maps to conflict", func(t *testing.T) {
		deps := setupServiceTest(t)

		expectTx(t, deps.sqlMock, false)
		deps.counter.EXPECT().WithTx(gomock.Any()).Return(deps.counter)
		deps.counter.EXPECT().Next(gomock.Any(), "employee").Return(int64(3), nil)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_employee_profiles_national_id"})

		_, err := deps.service.CreateProfile(context.Background(), req)
		assert.ErrorIs(t, err, profileerrors.ErrNationalIDExists)
	})

	t.Run("outbox failure rolls back", func(t *testing.T) {
		deps := setupServiceTest(t)

		expectTx(t, deps.sqlMock, false)
		deps.counter.EXPECT().WithTx(gomock.Any()).Return(deps.counter)
		deps.counter.EXPECT().Next(gomock.Any(), "employee").Return(int64(4), nil)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("outbox down"))

		_, err := deps.service.CreateProfile(context.Background(), req)
		assert.EqualError(t, err, "outbox down")
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("unparseable hire date", func(t *testing.T) {
		deps := setupServiceTest(t)
		bad := req
		bad.DateOfHire = "05/01/2026"

		_, err := deps.service.CreateProfile(context.Background(), bad)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "dateOfHire")
	})
}

func TestEmployeeProfileService_GetProfile(t *testing.T) {
	key := employeeprofile.ProfileCacheKey(employeeID)

	t.Run("cache hit skips the repository", func(t *testing.T) {
		deps := setupServiceTest(t)
		cached := employeeprofile.EmployeeProfileResponse{
			ID:             employeeID,
			EmployeeNumber: "EMP-0007",
			FullName:       "Amina Hassan",
			Status:         employeeprofile.StatusActive,
		}
		data, _ := json.Marshal(cached)
		deps.redismock.ExpectGet(key).SetVal(string(data))

		resp, err := deps.service.GetProfile(context.Background(), employeeID)
		assert.NoError(t, err)
		assert.Equal(t, cached, resp)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("cache miss loads and stores the profile", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.redismock.ExpectGet(key).RedisNil()
		deps.repo.EXPECT().FindByID(gomock.Any(), employeeID).Return(sampleProfile(), nil)
		deps.redismock.CustomMatch(func(expected, actual []interface{}) error {
			if actual[1] != key {
				return fmt.Errorf("unexpected key %v", actual[1])
			}
			data, ok := actual[2].([]byte)
			if !ok {
				return fmt.Errorf("unexpected value type %T", actual[2])
			}
			var resp employeeprofile.EmployeeProfileResponse
			if err := json.Unmarshal(data, &resp); err != nil {
				return err
			}
			if resp.EmployeeNumber != "EMP-0007" {
				return fmt.Errorf("unexpected cached profile %s", resp.EmployeeNumber)
			}
			return nil
		}).ExpectSet(key, "", employeeprofile.ProfileCacheTTL).SetVal("OK")

		resp, err := deps.service.GetProfile(context.Background(), employeeID)
		assert.NoError(t, err)
		assert.Equal(t, "Amina Hassan", resp.FullName)
		assert.Equal(t, employeeprofile.StatusProbation, resp.Status)
		assert.Equal(t, "2026-01-05T09:00:00Z", resp.CreatedAt)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.redismock.ExpectGet(key).RedisNil()
		deps.repo.EXPECT().FindByID(gomock.Any(), employeeID).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.GetProfile(context.Background(), employeeID)
		assert.ErrorIs(t, err, profileerrors.ErrProfileNotFound)
	})
}

func TestEmployeeProfileService_UpdateContactInfo(t *testing.T) {
	t.Run("empty patch is rejected", func(t *testing.T) {
		deps := setupServiceTest(t)
		_, err := deps.service.UpdateContactInfo(context.Background(), employeeID, employeeprofile.UpdateContactInfoDto{})
		assert.ErrorIs(t, err, profileerrors.ErrNoContactFields)
	})

	t.Run("applies present fields and invalidates cache", func(t *testing.T) {
		deps := setupServiceTest(t)
		city := "Cairo"
		email := " Amina@Home.Example "

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(gomock.Any(), employeeID).Return(sampleProfile(), nil)
		deps.repo.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, p *employeeprofile.EmployeeProfile) error {
				assert.Equal(t, "Cairo", *p.City)
				assert.Equal(t, "amina@home.example", *p.PersonalEmail)
				assert.Nil(t, p.MobilePhone)
				return nil
			})
		deps.redismock.ExpectDel(employeeprofile.ProfileCacheKey(employeeID)).SetVal(1)

		resp, err := deps.service.UpdateContactInfo(context.Background(), employeeID, employeeprofile.UpdateContactInfoDto{
			City:          &city,
			PersonalEmail: &email,
		})
		assert.NoError(t, err)
		assert.Equal(t, "Cairo", *resp.City)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("unknown profile", func(t *testing.T) {
		deps := setupServiceTest(t)
		country := "EG"

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(gomock.Any(), missingID).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.UpdateContactInfo(context.Background(), missingID, employeeprofile.UpdateContactInfoDto{Country: &country})
		assert.ErrorIs(t, err, profileerrors.ErrProfileNotFound)
	})
}

func TestEmployeeProfileService_UpdateStatus(t *testing.T) {
	t.Run("status change queues event", func(t *testing.T) {
		deps := setupServiceTest(t)
		effective := "2026-06-01"

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(gomock.Any(), employeeID).Return(sampleProfile(), nil)
		deps.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, e kafka.OutboxEvent) error {
				assert.Equal(t, events.EventTypeEmployeeStatusChanged, e.EventType)
				assert.Equal(t, employeeID, e.AggregateID)

				var payload events.EmployeeLifecycleEvent
				assert.NoError(t, json.Unmarshal(e.Payload, &payload))
				assert.Equal(t, "active", payload.Status)
				assert.Equal(t, "probation", payload.PreviousStatus)
				return nil
			})
		deps.redismock.ExpectDel(employeeprofile.ProfileCacheKey(employeeID)).SetVal(1)

		resp, err := deps.service.UpdateStatus(context.Background(), employeeID, employeeprofile.UpdateEmployeeStatusDto{
			Status:        employeeprofile.StatusActive,
			EffectiveDate: &effective,
		})
		assert.NoError(t, err)
		assert.Equal(t, employeeprofile.StatusActive, resp.Status)
		assert.Equal(t, "2026-06-01", *resp.StatusEffectiveDate)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("same status does not queue event", func(t *testing.T) {
		deps := setupServiceTest(t)

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(gomock.Any(), employeeID).Return(sampleProfile(), nil)
		deps.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
		deps.redismock.ExpectDel(employeeprofile.ProfileCacheKey(employeeID)).SetVal(0)

		resp, err := deps.service.UpdateStatus(context.Background(), employeeID, employeeprofile.UpdateEmployeeStatusDto{
			Status: employeeprofile.StatusProbation,
		})
		assert.NoError(t, err)
		assert.Nil(t, resp.StatusEffectiveDate)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("bad effective date", func(t *testing.T) {
		deps := setupServiceTest(t)
		bad := "June 1st"
		_, err := deps.service.UpdateStatus(context.Background(), employeeID, employeeprofile.UpdateEmployeeStatusDto{
			Status:        employeeprofile.StatusActive,
			EffectiveDate: &bad,
		})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "effectiveDate")
	})
}

func TestEmployeeProfileService_ChangeRequests(t *testing.T) {
	pending := func() *employeeprofile.ProfileChangeRequest {
		return &employeeprofile.ProfileChangeRequest{
			ID:                 requestID,
			EmployeeProfileID:  employeeID,
			RequestDescription: "Correct my last name",
			Status:             employeeprofile.ChangePending,
			CreatedAt:          time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC),
		}
	}

	t.Run("submit for unknown profile", func(t *testing.T) {
		deps := setupServiceTest(t)

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Exists(gomock.Any(), missingID).Return(false, nil)

		_, err := deps.service.SubmitChangeRequest(context.Background(), employeeprofile.CreateProfileChangeRequestDto{
			EmployeeProfileID:  missingID,
			RequestDescription: "Update address",
		})
		assert.ErrorIs(t, err, profileerrors.ErrProfileNotFound)
	})

	t.Run("submit starts pending", func(t *testing.T) {
		deps := setupServiceTest(t)

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Exists(gomock.Any(), employeeID).Return(true, nil)
		deps.repo.EXPECT().CreateChangeRequest(gomock.Any(), gomock.Any()).Return(nil)

		resp, err := deps.service.SubmitChangeRequest(context.Background(), employeeprofile.CreateProfileChangeRequestDto{
			EmployeeProfileID:  employeeID,
			RequestDescription: "  Update address  ",
		})
		assert.NoError(t, err)
		assert.Equal(t, employeeprofile.ChangePending, resp.Status)
		assert.Equal(t, "Update address", resp.RequestDescription)
	})

	t.Run("approve defaults reviewer to actor", func(t *testing.T) {
		deps := setupServiceTest(t)
		comment := "verified against passport"

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindChangeRequestByID(gomock.Any(), requestID).Return(pending(), nil)
		deps.repo.EXPECT().UpdateChangeRequest(gomock.Any(), gomock.Any()).Return(nil)

		resp, err := deps.service.ProcessChangeRequest(context.Background(), reviewerID, requestID, employeeprofile.ProcessChangeRequestDto{
			Decision: employeeprofile.DecisionApprove,
			Comment:  &comment,
		})
		assert.NoError(t, err)
		assert.Equal(t, employeeprofile.ChangeApproved, resp.Status)
		assert.Equal(t, reviewerID, *resp.ReviewerID)
		assert.Equal(t, comment, *resp.ReviewComment)
		assert.NotNil(t, resp.ProcessedAt)
	})

	t.Run("reject with explicit reviewer", func(t *testing.T) {
		deps := setupServiceTest(t)
		reviewer := otherID

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindChangeRequestByID(gomock.Any(), requestID).Return(pending(), nil)
		deps.repo.EXPECT().UpdateChangeRequest(gomock.Any(), gomock.Any()).Return(nil)

		resp, err := deps.service.ProcessChangeRequest(context.Background(), reviewerID, requestID, employeeprofile.ProcessChangeRequestDto{
			Decision:   employeeprofile.DecisionReject,
			ReviewerID: &reviewer,
		})
		assert.NoError(t, err)
		assert.Equal(t, employeeprofile.ChangeRejected, resp.Status)
		assert.Equal(t, otherID, *resp.ReviewerID)
	})

	t.Run("already processed", func(t *testing.T) {
		deps := setupServiceTest(t)
		done := pending()
		done.Status = employeeprofile.ChangeApproved

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindChangeRequestByID(gomock.Any(), requestID).Return(done, nil)

		_, err := deps.service.CancelChangeRequest(context.Background(), requestID)
		assert.ErrorIs(t, err, profileerrors.ErrChangeRequestNotPending)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("cancel unknown request", func(t *testing.T) {
		deps := setupServiceTest(t)

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindChangeRequestByID(gomock.Any(), missingID).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.CancelChangeRequest(context.Background(), missingID)
		assert.ErrorIs(t, err, profileerrors.ErrChangeRequestNotFound)
	})

	t.Run("cancel pending", func(t *testing.T) {
		deps := setupServiceTest(t)

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindChangeRequestByID(gomock.Any(), requestID).Return(pending(), nil)
		deps.repo.EXPECT().UpdateChangeRequest(gomock.Any(), gomock.Any()).Return(nil)

		resp, err := deps.service.CancelChangeRequest(context.Background(), requestID)
		assert.NoError(t, err)
		assert.Equal(t, employeeprofile.ChangeCanceled, resp.Status)
		assert.Nil(t, resp.ProcessedAt)
	})
}
