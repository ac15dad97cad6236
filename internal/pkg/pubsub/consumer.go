package pubsub

import (
	"context"
	"errors"
	"time"

	"cloud.google.com/go/pubsub/v2"

	"globe/dodrio_credit_limit/internal/pkg/logger"
	"globe/dodrio_credit_limit/internal/pkg/models"
	"globe/dodrio_credit_limit/internal/service/interfaces"
)

// MessageIgnoreError signals the consumer to neither ack nor nack, so the
// message is redelivered after the ack deadline. Used when a transient
// dependency outage makes immediate retry pointless.
type MessageIgnoreError struct {
	Err error
}

func (e *MessageIgnoreError) Error() string {
	if e.Err == nil {
		return "message ignored"
	}
	return "message ignored: " + e.Err.Error()
}

// PubSubClientFactory makes new clients (mockable in tests).
type PubSubClientFactory interface {
	NewPubSubClient(ctx context.Context, projectID string) (interfaces.PubSubClientInterface, error)
}

type defaultPubSubClientFactory struct{}

func (f *defaultPubSubClientFactory) NewPubSubClient(ctx context.Context,
	projectID string) (interfaces.PubSubClientInterface, error) {
	sdkClient, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return &pubSubClientAdapter{client: sdkClient}, nil
}

// pubSubClientAdapter wraps *pubsub.Client
type pubSubClientAdapter struct {
	client *pubsub.Client
}

func (c *pubSubClientAdapter) Subscriber(subscription string) interfaces.SubscriberInterface {
	return &subscriberAdapter{sub: c.client.Subscriber(subscription)}
}

func (c *pubSubClientAdapter) Close() error {
	return c.client.Close()
}

type subscriberAdapter struct {
	sub *pubsub.Subscriber
}

func (s *subscriberAdapter) Receive(ctx context.Context, f func(context.Context, interfaces.MessageInterface)) error {
	return s.sub.Receive(ctx, func(ctx context.Context, m *pubsub.Message) {
		ctx = context.WithValue(ctx, models.PublishTimeKey, m.PublishTime)
		f(ctx, &messageAdapter{msg: m})
	})
}

func (s *subscriberAdapter) SetMaxExtension(d time.Duration) {
	s.sub.ReceiveSettings.MaxExtension = d
}

type messageAdapter struct {
	msg *pubsub.Message
}

func (m *messageAdapter) Data() []byte {
	return m.msg.Data
}

func (m *messageAdapter) Ack() {
	m.msg.Ack()
}

func (m *messageAdapter) Nack() {
	m.msg.Nack()
}

// PubSubConsumer manages subscription consuming with lifecycle.
type PubSubConsumer struct {
	PubSubClient interfaces.PubSubClientInterface
	Ctx          context.Context
	Cancel       context.CancelFunc
}

// NewPubSubConsumer is the default constructor for production use.
// Declared as a variable so tests can replace it.
var NewPubSubConsumer = func(ctx context.Context, projectID string) (*PubSubConsumer, error) {
	factory := &defaultPubSubClientFactory{}
	return NewPubSubConsumerWithFactory(ctx, projectID, factory)
}

func NewPubSubConsumerWithFactory(ctx context.Context, projectID string,
	factory PubSubClientFactory) (*PubSubConsumer, error) {
	client, err := factory.NewPubSubClient(ctx, projectID)
	if err != nil {
		logger.Error(ctx, "Failed creating PubSub client %v", err)
		return nil, err
	}

	consumerCtx, cancel := context.WithCancel(ctx)
	return &PubSubConsumer{
		PubSubClient: client,
		Ctx:          consumerCtx,
		Cancel:       cancel,
	}, nil
}

// Consume one subscription once.
func (c *PubSubConsumer) Consume(ctx context.Context, subscription string,
	handler func(ctx context.Context, msg []byte) error) error {
	sub := c.PubSubClient.Subscriber(subscription)
	sub.SetMaxExtension(-1)
	return sub.Receive(ctx, func(ctx context.Context, m interfaces.MessageInterface) {
		if err := handler(ctx, m.Data()); err != nil {
			var ignoreErr *MessageIgnoreError
			if errors.As(err, &ignoreErr) {
				// Neither ack nor nack: redeliver after the deadline.
				logger.Info(ctx, "Message processing ignored, will be redelivered: %v", ignoreErr)
				return
			}
			logger.Info(ctx, "Nacked the message for immediate retry")
			m.Nack()
			return
		}
		logger.Debug(ctx, "Acked the message")
		m.Ack()
	})
}

// StartConsumer continuously listens for messages until the context is
// cancelled, restarting consumption whether Consume exits with or without
// error.
func (c *PubSubConsumer) StartConsumer(subscription string, handler func(ctx context.Context, msg []byte) error) {
	go func() {
		logger.Info(c.Ctx, "PubSub consumer starting for subscription: %s", subscription)

		for {
			if c.Ctx.Err() != nil {
				logger.Info(c.Ctx, "PubSub consumer loop exiting due to context cancellation")
				return
			}

			if err := c.Consume(c.Ctx, subscription, handler); err != nil {
				logger.Error(c.Ctx, "PubSub consume error, restarting: %v", err)
			}
			time.Sleep(time.Second)
		}
	}()
}

// Close stops consuming and releases the client.
func (c *PubSubConsumer) Close() error {
	if c.Cancel != nil {
		c.Cancel()
	}
	return c.PubSubClient.Close()
}
