package interfaces

import (
	"context"
	"time"
)

type PublisherInterface interface {
	Publisher(topic string) TopicPublisherInterface
	Close() error
}

type TopicPublisherInterface interface {
	Publish(ctx context.Context, data []byte, attributes map[string]string) (string, error)
}

type PubSubClientInterface interface {
	Subscriber(subscription string) SubscriberInterface
	Close() error
}

type SubscriberInterface interface {
	Receive(ctx context.Context, f func(context.Context, MessageInterface)) error
	SetMaxExtension(d time.Duration)
}

type MessageInterface interface {
	Data() []byte
	Ack()
	Nack()
}
