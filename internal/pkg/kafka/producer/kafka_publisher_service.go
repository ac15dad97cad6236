package producer

import (
	"context"
	"fmt"

	"globe/dodrio_credit_limit/internal/pkg/common"
	"globe/dodrio_credit_limit/internal/pkg/logger"
	"globe/dodrio_credit_limit/internal/pkg/models"
)

const emitRetryCount = 3

type KafkaService struct {
	producer *Producer
}

func NewKafkaService(producer *Producer) *KafkaService {
	return &KafkaService{producer: producer}
}

// EmitLimitGenerated publishes the audit event for one generated limit,
// keyed by GUID so replays land in the same partition.
func (k *KafkaService) EmitLimitGenerated(ctx context.Context, message models.LimitGeneratedMessage) error {
	payload, err := common.SerializeLimitGeneratedMessage(message)
	if err != nil {
		return fmt.Errorf("failed to marshal limit generated message: %w", err)
	}

	if err := k.producer.PublishWithRetry(ctx, message.GUID, payload, emitRetryCount); err != nil {
		return err
	}

	logger.Info(ctx, "Limit generated event emitted for application %d with GUID %s", message.ApplicationID, message.GUID)
	return nil
}
