package common

import (
	"encoding/json"

	"globe/dodrio_credit_limit/internal/pkg/models"
)

// SerializeLimitGeneratedMessage renders the Kafka payload for one
// generated limit.
func SerializeLimitGeneratedMessage(message models.LimitGeneratedMessage) ([]byte, error) {
	return json.Marshal(message)
}

// SerializeAlertNotification renders the Pub/Sub payload for an
// operational alert.
func SerializeAlertNotification(request models.AlertNotificationRequest) ([]byte, error) {
	return json.Marshal(request)
}
