package producer

import (
	"context"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"globe/dodrio_credit_limit/configs"
	"globe/dodrio_credit_limit/internal/pkg/logger"
)

type Producer struct {
	producer *kafka.Producer
	topic    string
}

var KafkaProducer *Producer

func NewKafkaProducer(topic string) (*Producer, error) {
	p, err := kafka.NewProducer(&kafka.ConfigMap{"bootstrap.servers": configs.KAFKA_SERVER,
		"security.protocol":  configs.KAFKA_SECURITY_PROTOCOL,
		"sasl.mechanisms":    configs.KAFKA_SASL_MECHANISM,
		"sasl.username":      configs.KAFKA_SASL_USERNAME,
		"sasl.password":      configs.KAFKA_SASL_PASSWORD,
		"session.timeout.ms": configs.KAFKA_SESSION_TIMEOUT_MS,
		"client.id":          configs.KAFKA_CLIENT_ID,
		"log_level":          0})
	if err != nil {
		return nil, err
	}

	return &Producer{
		producer: p,
		topic:    topic,
	}, nil
}

// Publish sends one keyed message and waits for broker acknowledgement.
func (p *Producer) Publish(ctx context.Context, key string, payload []byte) error {
	deliveryChan := make(chan kafka.Event, 1)
	err := p.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &p.topic, Partition: kafka.PartitionAny},
		Key:            []byte(key),
		Value:          payload,
	}, deliveryChan)
	if err != nil {
		return err
	}

	select {
	case event := <-deliveryChan:
		msg := event.(*kafka.Message)
		if msg.TopicPartition.Error != nil {
			return msg.TopicPartition.Error
		}
		logger.Info(ctx, "Message delivered to topic: %s, partition: %d, offset: %v",
			*msg.TopicPartition.Topic, msg.TopicPartition.Partition, msg.TopicPartition.Offset)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// PublishWithRetry retries transient produce failures with a linear
// backoff before giving up.
func (p *Producer) PublishWithRetry(ctx context.Context, key string, payload []byte, retryCount int) error {
	var lastErr error
	for attempt := 0; attempt <= retryCount; attempt++ {
		lastErr = p.Publish(ctx, key, payload)
		if lastErr == nil {
			return nil
		}
		logger.Error(ctx, "Failed to send Kafka message on attempt %d: %v", attempt+1, lastErr)
		time.Sleep(time.Second * time.Duration(attempt+1))
	}
	return lastErr
}

func (p *Producer) Close() {
	p.producer.Flush(15 * 1000)
	p.producer.Close()
}
