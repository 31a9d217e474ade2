package consumer

import (
	"context"
	"encoding/json"

	"go-worklog/internal/credit"
	"go-worklog/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func ConsumeLogsheetDecisions(
	ctx context.Context,
	reader *kafkago.Reader,
	creditService credit.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.logsheet_decided")
	log.Info("logsheet decision consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("logsheet decision consumer stopped")
				return
			}
			log.Error("fetch logsheet decision message failed", zap.Error(err))
			continue
		}

		var event events.LogsheetDecidedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode logsheet_decided event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		// Apply is idempotent, so redelivered events are safe.
		if err := creditService.Apply(ctx, event); err != nil {
			log.Error("apply work day credit failed",
				zap.String("logsheet_id", event.LogsheetID),
				zap.String("employee_id", event.EmployeeID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit logsheet decision message failed", zap.Error(err))
			continue
		}

		log.Info("logsheet decision event processed",
			zap.String("logsheet_id", event.LogsheetID),
			zap.String("status", event.Status),
		)
	}
}
