package models

import "time"

// AlertNotificationRequest is the Pub/Sub payload for operational alerts
// (quota milestones, goldfish attribute pushes). Fire-and-forget: delivery
// failures never affect the limit computation.
type AlertNotificationRequest struct {
	Channel    string            `json:"channel"`
	Event      string            `json:"event"`
	Message    string            `json:"message"`
	Attributes map[string]string `json:"attributes,omitempty"`
	SentAt     time.Time         `json:"sentAt"`
}
