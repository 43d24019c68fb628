package consumer

import (
	"context"
	"encoding/json"

	"go-hrms/internal/events"
	"go-hrms/internal/payrollexecution"
	"go-hrms/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type PayslipRenderer interface {
	RenderPayslip(ctx context.Context, payslipID string) (payrollexecution.PayslipResponse, error)
}

// ConsumePayslipRequested renders the PDF of every requested payslip. Render
// failures are left uncommitted so the message is delivered again.
func ConsumePayslipRequested(
	ctx context.Context,
	reader MessageReader,
	renderer PayslipRenderer,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.payslip_requested")
	log.Info("payslip consumer started")

	consume(ctx, reader, log, func(msg kafkago.Message) outcome {
		var event events.PayslipRequestedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode payslip event failed", zap.Error(err))
			return commit
		}

		rctx := contextutil.WithRequestID(ctx, requestID(msg))
		if _, err := renderer.RenderPayslip(rctx, event.PayslipID); err != nil {
			log.Error("render payslip failed",
				zap.String("payslip_id", event.PayslipID),
				zap.String("payroll_run_id", event.PayrollRunID),
				zap.Error(err),
			)
			return retry
		}

		log.Info("payslip rendered",
			zap.String("payslip_id", event.PayslipID),
			zap.String("employee_id", event.EmployeeID),
		)
		return commit
	})
}
