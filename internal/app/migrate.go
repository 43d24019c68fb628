package app

import (
	"fmt"

	"go-hrms/internal/employeeprofile"
	"go-hrms/internal/leave"
	"go-hrms/internal/payrollexecution"
	"go-hrms/internal/payrolltracking"
	"go-hrms/internal/recruitment"

	"gorm.io/gorm"
)

// tables written with raw SQL have no gorm model.
var rawTables = []string{
	`CREATE TABLE IF NOT EXISTS sequence_counters (
		name VARCHAR(50) PRIMARY KEY,
		last_value BIGINT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS outbox_events (
		id VARCHAR(36) PRIMARY KEY,
		request_id VARCHAR(64) NOT NULL DEFAULT '',
		aggregate_type VARCHAR(50) NOT NULL,
		aggregate_id VARCHAR(64) NOT NULL,
		event_type VARCHAR(100) NOT NULL,
		topic VARCHAR(255) NOT NULL,
		payload JSONB NOT NULL,
		status VARCHAR(20) NOT NULL,
		retry_count INT NOT NULL DEFAULT 0,
		error_message TEXT,
		next_retry_at TIMESTAMPTZ,
		processed_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_outbox_events_pending ON outbox_events (status, next_retry_at, created_at)`,
}

func migrate(db *gorm.DB) error {
	models := []any{
		&employeeprofile.EmployeeProfile{},
		&employeeprofile.ProfileChangeRequest{},
		&leave.LeaveEntitlement{},
		&leave.LeaveRequest{},
		&leave.LeaveAdjustment{},
		&payrollexecution.PayrollRun{},
		&payrollexecution.PayrollEntry{},
		&payrollexecution.Payslip{},
		&payrolltracking.Claim{},
		&payrolltracking.Dispute{},
		&payrolltracking.Refund{},
		&recruitment.Application{},
		&recruitment.ApplicationStatusHistory{},
		&recruitment.Onboarding{},
		&recruitment.OnboardingTask{},
	}
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	for _, stmt := range rawTables {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	return nil
}
