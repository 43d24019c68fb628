package app

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"go-hrms/internal/events"
	"go-hrms/internal/leave"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/messaging/kafka/consumer"
	"go-hrms/internal/payrollexecution"
	"go-hrms/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const consumerGroup = "go-hrms"

// RunConsumer renders requested payslips and seeds leave entitlements for new
// employees until SIGINT or SIGTERM.
func RunConsumer(cfg Config) error {
	logger := zap.L().Named("app.consumer")

	if err := cfg.RequireKafka(); err != nil {
		return err
	}

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Postgres, cfg.ConnectRetries)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	payrollService := payrollexecution.NewService(sqlDB, payrollexecution.NewRepository(gormDB), kafka.NewOutboxRepository(sqlDB), zap.L())
	leaveService := leave.NewService(sqlDB, leave.NewRepository(gormDB), zap.L())

	payslipReader := newReader(cfg.KafkaBroker, events.PayslipRequestedTopic, consumerGroup+"-payslip")
	defer payslipReader.Close()
	lifecycleReader := newReader(cfg.KafkaBroker, events.EmployeeLifecycleTopic, consumerGroup+"-leave")
	defer lifecycleReader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		consumer.ConsumePayslipRequested(ctx, payslipReader, payrollService, zap.L())
	}()
	go func() {
		defer wg.Done()
		consumer.ConsumeEmployeeLifecycle(ctx, lifecycleReader, leaveService, zap.L())
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()
	wg.Wait()

	return nil
}

func newReader(broker, topic, groupID string) *kafkago.Reader {
	return kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{broker},
		Topic:          topic,
		GroupID:        groupID,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
}
