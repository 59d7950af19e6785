package pkg

import (
	"api"
	"encoding/json"
)

// NatsPublishJSON publishes a JSON-serialized event. Best-effort by
// construction: when no broker connection was established at startup
// the publish is silently skipped, never failing the caller's write.
func NatsPublishJSON(subject string, payload any) error {
	if api.Nats == nil {
		return nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return api.Nats.Publish(subject, data)
}
