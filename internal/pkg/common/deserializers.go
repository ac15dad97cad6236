package common

import (
	"encoding/json"

	"globe/dodrio_credit_limit/internal/pkg/consts"
	"globe/dodrio_credit_limit/internal/pkg/models"
)

// DeserializeApplicationStatusEvent decodes the Pub/Sub message that
// triggers limit generation. An undecodable or incomplete payload is a
// malformed-event error, not a crash.
func DeserializeApplicationStatusEvent(data []byte) (models.ApplicationStatusEvent, error) {
	var event models.ApplicationStatusEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return event, consts.ErrorMalformedEvent
	}
	if event.ApplicationID == 0 || event.StatusID == 0 {
		return event, consts.ErrorMalformedEvent
	}
	return event, nil
}
