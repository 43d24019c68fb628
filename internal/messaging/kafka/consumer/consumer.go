package consumer

import (
	"context"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumers use.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// outcome tells the loop what to do with a handled message.
type outcome int

const (
	commit outcome = iota
	retry
)

// consume fetches messages until ctx is done. handle decides whether a
// message is committed or left uncommitted for redelivery.
func consume(ctx context.Context, reader MessageReader, log *zap.Logger, handle func(kafkago.Message) outcome) {
	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("consumer stopped")
				return
			}
			log.Error("fetch message failed", zap.Error(err))
			continue
		}

		if handle(msg) == retry {
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit message failed",
				zap.String("topic", msg.Topic),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
		}
	}
}

func requestID(msg kafkago.Message) string {
	for _, h := range msg.Headers {
		if h.Key == "request_id" {
			return string(h.Value)
		}
	}
	return ""
}
