package models

import "time"

type contextKey string

// LogDetailsKey carries per-message logging details through the context.
const LogDetailsKey contextKey = "logDetails"

// PublishTimeKey carries the Pub/Sub publish time of the message being processed.
const PublishTimeKey contextKey = "publishTime"

type MessageDetails struct {
	RequestID   string
	MessageID   string
	Subscription string
	ReceivedAt  time.Time
}
