package influxdb

import (
	"strconv"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// measurementControlState is the measurement holding recorded state values.
const measurementControlState = "control_state"

// WriteStateChange records one control state value (a baseline or a
// transition) to the control_state measurement.
//
// The write is non-blocking; points are batched and sent asynchronously.
// Numeric states land in the "value" field so they can be graphed and
// aggregated; everything else goes to the "state" string field.
//
// Parameters:
//   - controlUUID: The control's UUID from the structure document
//   - typeLabel: Readable control type (e.g. "Dimmer")
//   - room: Room name, or "unassigned"
//   - state: The recorded state value
//   - ts: Time the value was read
func (c *Client) WriteStateChange(controlUUID, typeLabel, room, state string, ts time.Time) {
	if !c.IsConnected() {
		return
	}

	fields := make(map[string]interface{}, 1)
	if value, err := strconv.ParseFloat(state, 64); err == nil {
		fields["value"] = value
	} else {
		fields["state"] = state
	}

	point := write.NewPoint(
		measurementControlState,
		map[string]string{
			"uuid": controlUUID,
			"type": typeLabel,
			"room": room,
		},
		fields,
		ts,
	)

	c.writeAPI.WritePoint(point)
}
