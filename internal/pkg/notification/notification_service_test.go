package notification

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"globe/dodrio_credit_limit/internal/pkg/models"
)

type fakePublisher struct {
	published [][]byte
	err       error
}

func (f *fakePublisher) Publish(ctx context.Context, topic string, data []byte, attributes map[string]string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.published = append(f.published, data)
	return "msg-1", nil
}

func (f *fakePublisher) Stop(ctx context.Context) error { return nil }
func (f *fakePublisher) Close() error                   { return nil }

func TestNotifyQuotaMilestone(t *testing.T) {
	publisher := &fakePublisher{}
	service := NewNotificationService(publisher)

	service.NotifyQuotaMilestone(context.Background(), "lbs_130_bypass", 25)

	require.Len(t, publisher.published, 1)
	var payload models.AlertNotificationRequest
	require.NoError(t, json.Unmarshal(publisher.published[0], &payload))
	assert.Equal(t, EventQuotaMilestone, payload.Event)
	assert.Equal(t, "Quota lbs_130_bypass has 25 slots remaining", payload.Message)
	assert.Equal(t, "25", payload.Attributes["remaining"])
}

func TestNotifyGoldfishAttributes(t *testing.T) {
	publisher := &fakePublisher{}
	service := NewNotificationService(publisher)

	service.NotifyGoldfishAttributes(context.Background(), 42, map[string]string{"pgood": "0.91"})

	require.Len(t, publisher.published, 1)
	var payload models.AlertNotificationRequest
	require.NoError(t, json.Unmarshal(publisher.published[0], &payload))
	assert.Equal(t, EventGoldfishAttributes, payload.Event)
	assert.Equal(t, "0.91", payload.Attributes["pgood"])
}

func TestSendSwallowsPublishError(t *testing.T) {
	publisher := &fakePublisher{err: errors.New("broker down")}
	service := NewNotificationService(publisher)

	// Must not panic or propagate the failure.
	service.NotifyQuotaMilestone(context.Background(), "lannister_experiment", 0)
	assert.Empty(t, publisher.published)
}
