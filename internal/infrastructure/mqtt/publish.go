package mqtt

import (
	"fmt"
)

// maxPayloadSize bounds MQTT payloads (1MB). Recorded state payloads are
// a few hundred bytes; the cap guards against programming errors.
const maxPayloadSize = 1 << 20

// Publish sends a message to the specified MQTT topic.
//
// Parameters:
//   - topic: The topic to publish to (e.g. "loxwatch/state/<uuid>")
//   - payload: The message payload (JSON, max 1MB)
//   - qos: Quality of Service level (0, 1, or 2)
//   - retained: Whether the broker keeps the message for new subscribers.
//     State topics are retained so a late subscriber sees the current
//     value immediately.
//
// Returns:
//   - error: nil on success, or wrapped error describing the failure
func (c *Client) Publish(topic string, payload []byte, qos byte, retained bool) error {
	if topic == "" {
		return ErrInvalidTopic
	}
	if qos > maxQoS {
		return ErrInvalidQoS
	}
	if len(payload) > maxPayloadSize {
		return fmt.Errorf("%w: payload size %d exceeds maximum %d bytes", ErrPublishFailed, len(payload), maxPayloadSize)
	}

	if !c.IsConnected() {
		return ErrNotConnected
	}

	token := c.client.Publish(topic, qos, retained, payload)
	if !token.WaitTimeout(defaultPublishTimeout) {
		return fmt.Errorf("%w: timeout after %v", ErrPublishFailed, defaultPublishTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}

	return nil
}

// PublishState publishes a retained state payload for one control using
// the configured default QoS.
func (c *Client) PublishState(controlUUID string, payload []byte) error {
	return c.Publish(c.topics.ControlState(controlUUID), payload, byte(c.cfg.QoS), true)
}
