package sink

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nerrad567/loxwatch/internal/infrastructure/mqtt"
	"github.com/nerrad567/loxwatch/internal/monitor"
)

// MQTT publishes each change record as a retained JSON message on the
// control's state topic, so any subscriber can mirror the live state of
// the monitored selection.
type MQTT struct {
	client *mqtt.Client
}

// NewMQTT wraps a connected MQTT client as a record sink.
func NewMQTT(client *mqtt.Client) *MQTT {
	return &MQTT{client: client}
}

// statePayload is the JSON document published for each recorded value.
type statePayload struct {
	UUID      string `json:"uuid"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Room      string `json:"room"`
	State     string `json:"state"`
	Timestamp string `json:"timestamp"`
}

// Write publishes one change record.
//
// Satisfies monitor.RecordSink. Publish failures (including a broker
// outage mid-run) are returned to the caller; behind a Fanout they are
// non-fatal.
func (s *MQTT) Write(rec monitor.ChangeRecord) error {
	payload, err := buildStatePayload(rec)
	if err != nil {
		return err
	}
	return s.client.PublishState(rec.UUID, payload)
}

// buildStatePayload marshals a change record into its published form.
func buildStatePayload(rec monitor.ChangeRecord) ([]byte, error) {
	payload, err := json.Marshal(statePayload{
		UUID:      rec.UUID,
		Name:      rec.Name,
		Type:      rec.Type,
		Room:      rec.Room,
		State:     rec.State,
		Timestamp: rec.Timestamp.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return nil, fmt.Errorf("marshalling state payload: %w", err)
	}
	return payload, nil
}
