package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"globe/dodrio_credit_limit/configs"
	"globe/dodrio_credit_limit/internal/pkg/common"
	"globe/dodrio_credit_limit/internal/pkg/logger"
	"globe/dodrio_credit_limit/internal/pkg/models"
	"globe/dodrio_credit_limit/internal/pkg/pubsub"
)

const (
	ChannelOpsAlert = "ops-alert"

	EventQuotaMilestone     = "quota_milestone"
	EventGoldfishAttributes = "goldfish_attributes"
)

// NotificationService publishes operational alerts to Pub/Sub. All sends
// are fire-and-forget from the caller's point of view: errors are logged
// and swallowed so a notification outage never rolls back a generated
// limit.
type NotificationService struct {
	pubsubPublisher pubsub.PubSubPublisherInterface
}

func NewNotificationService(pubsubPublisher pubsub.PubSubPublisherInterface) *NotificationService {
	return &NotificationService{
		pubsubPublisher: pubsubPublisher,
	}
}

// NotifyQuotaMilestone alerts when a shared quota crosses one of the
// configured remaining-capacity marks.
func (h *NotificationService) NotifyQuotaMilestone(ctx context.Context, quotaName string, remaining int64) {
	payload := models.AlertNotificationRequest{
		Channel: ChannelOpsAlert,
		Event:   EventQuotaMilestone,
		Message: fmt.Sprintf("Quota %s has %d slots remaining", quotaName, remaining),
		Attributes: map[string]string{
			"quota":     quotaName,
			"remaining": strconv.FormatInt(remaining, 10),
		},
		SentAt: common.ConvertUTCToWIB(time.Now()),
	}
	h.send(ctx, payload)
}

// NotifyGoldfishAttributes pushes the revival-program attributes of an
// application after a goldfish matrix was selected.
func (h *NotificationService) NotifyGoldfishAttributes(ctx context.Context, applicationID int64, attributes map[string]string) {
	payload := models.AlertNotificationRequest{
		Channel:    ChannelOpsAlert,
		Event:      EventGoldfishAttributes,
		Message:    fmt.Sprintf("Goldfish attributes for application %d", applicationID),
		Attributes: attributes,
		SentAt:     common.ConvertUTCToWIB(time.Now()),
	}
	h.send(ctx, payload)
}

func (h *NotificationService) send(ctx context.Context, payload models.AlertNotificationRequest) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		logger.Error(ctx, "Failed to marshal alert notification: %v", err)
		return
	}

	topicName := configs.PUBSUB_NOTIFICATION_TOPIC

	// Separate timeout context so an in-flight publish survives caller
	// cancellation.
	pubsubCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	messageID, err := h.pubsubPublisher.Publish(pubsubCtx, topicName, payloadBytes, nil)
	if err != nil {
		logger.Error(ctx, "Failed to publish alert to PubSub topic %s: %v", topicName, err)
		return
	}

	logger.Info(ctx, "Published %s alert to topic %s with message ID: %s", payload.Event, topicName, messageID)
}
