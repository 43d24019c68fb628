package consumer

import (
	"context"
	"encoding/json"

	"go-hrms/internal/events"
	"go-hrms/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type EntitlementSeeder interface {
	SeedDefaultEntitlements(ctx context.Context, employeeID string) error
}

// ConsumeEmployeeLifecycle grants default leave entitlements to newly created
// profiles. Other lifecycle events are acknowledged and skipped.
func ConsumeEmployeeLifecycle(
	ctx context.Context,
	reader MessageReader,
	seeder EntitlementSeeder,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.employee_lifecycle")
	log.Info("employee lifecycle consumer started")

	consume(ctx, reader, log, func(msg kafkago.Message) outcome {
		var event events.EmployeeLifecycleEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode employee lifecycle event failed", zap.Error(err))
			return commit
		}

		if event.EventType != events.EventTypeEmployeeProfileCreated {
			return commit
		}

		rctx := contextutil.WithRequestID(ctx, requestID(msg))
		if err := seeder.SeedDefaultEntitlements(rctx, event.EmployeeProfileID); err != nil {
			log.Error("seed leave entitlements failed",
				zap.String("employee_id", event.EmployeeProfileID),
				zap.Error(err),
			)
			return retry
		}

		log.Info("leave entitlements seeded", zap.String("employee_id", event.EmployeeProfileID))
		return commit
	})
}
