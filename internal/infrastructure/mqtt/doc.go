// Package mqtt publishes recorded control states to an MQTT broker.
//
// It is an optional sink (mqtt.enabled in config.yaml) and publish-only:
// loxwatch observes a live installation, it never commands it. Each
// recorded value goes to <prefix>/state/<control-uuid> as a retained JSON
// message, and the recorder's own liveness is visible on
// <prefix>/system/status via retained status messages plus a Last Will for
// crash detection.
//
// The connection auto-reconnects with exponential backoff; publishes while
// disconnected fail with ErrNotConnected and are treated as non-fatal by
// the sink layer.
package mqtt
