package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"globe/dodrio_credit_limit/internal/pkg/consts"
	"globe/dodrio_credit_limit/internal/pkg/models"
)

func TestSerializeLimitGeneratedMessage(t *testing.T) {
	message := models.LimitGeneratedMessage{
		GUID:          "guid-1",
		ApplicationID: 2000001234,
		CustomerID:    77,
		MaxLimit:      2_000_000,
		SetLimit:      1_500_000,
		Reason:        consts.ReasonCreditLimitGeneration,
		GeneratedAt:   time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
	}

	payload, err := SerializeLimitGeneratedMessage(message)
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"guid":"guid-1"`)
	assert.Contains(t, string(payload), `"maxLimit":2000000`)
}

func TestDeserializeApplicationStatusEvent(t *testing.T) {
	event, err := DeserializeApplicationStatusEvent([]byte(`{"applicationId":2000001234,"statusId":130,"guid":"g"}`))
	require.NoError(t, err)
	assert.Equal(t, int64(2000001234), event.ApplicationID)
	assert.Equal(t, 130, event.StatusID)
}

func TestDeserializeApplicationStatusEventMalformed(t *testing.T) {
	_, err := DeserializeApplicationStatusEvent([]byte(`not json`))
	assert.Equal(t, consts.ErrorMalformedEvent, err)

	_, err = DeserializeApplicationStatusEvent([]byte(`{"statusId":130}`))
	assert.Equal(t, consts.ErrorMalformedEvent, err)
}

func TestConvertUTCToWIB(t *testing.T) {
	utc := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 7, ConvertUTCToWIB(utc).Hour())
}
