package mqtt

import "fmt"

// defaultTopicPrefix is used when mqtt.topic_prefix is left unset.
const defaultTopicPrefix = "loxwatch"

// Topics builds the loxwatch topic hierarchy:
//
//	<prefix>/state/<control-uuid>   recorded state values (retained)
//	<prefix>/system/status          recorder online/offline status (retained)
//
// Using these helpers keeps topic naming consistent between the publisher,
// the LWT configuration, and any external subscriber documentation.
type Topics struct {
	// Prefix overrides the default topic prefix.
	Prefix string
}

func (t Topics) prefix() string {
	if t.Prefix == "" {
		return defaultTopicPrefix
	}
	return t.Prefix
}

// ControlState returns the topic for one control's recorded state values.
//
// Example: loxwatch/state/0f86a2fe-0378-3e15-ffff403fb0c34b9e
func (t Topics) ControlState(controlUUID string) string {
	return fmt.Sprintf("%s/state/%s", t.prefix(), controlUUID)
}

// SystemStatus returns the recorder status topic.
//
// Example: loxwatch/system/status
func (t Topics) SystemStatus() string {
	return fmt.Sprintf("%s/system/status", t.prefix())
}

// AllControlStates returns a subscription pattern matching every control's
// state topic.
//
// Pattern: loxwatch/state/+
func (t Topics) AllControlStates() string {
	return fmt.Sprintf("%s/state/+", t.prefix())
}
