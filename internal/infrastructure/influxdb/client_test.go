package influxdb

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nerrad567/loxwatch/internal/infrastructure/config"
)

func testTime() time.Time {
	return time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
}

func TestConnect_Disabled(t *testing.T) {
	_, err := Connect(config.InfluxDBConfig{Enabled: false})
	if !errors.Is(err, ErrDisabled) {
		t.Errorf("Connect() error = %v, want ErrDisabled", err)
	}
}

func TestConnect_PingFailure(t *testing.T) {
	// A server that refuses the health probe.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := Connect(config.InfluxDBConfig{
		Enabled: true,
		URL:     srv.URL,
		Token:   "test-token",
		Org:     "test",
		Bucket:  "loxwatch",
	})
	if !errors.Is(err, ErrConnectionFailed) {
		t.Errorf("Connect() error = %v, want ErrConnectionFailed", err)
	}
}

func TestConnect_WritesStateChanges(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Answer the ping probe and accept writes.
		if r.URL.Path == "/ping" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client, err := Connect(config.InfluxDBConfig{
		Enabled:       true,
		URL:           srv.URL,
		Token:         "test-token",
		Org:           "test",
		Bucket:        "loxwatch",
		BatchSize:     1,
		FlushInterval: 1,
	})
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close() //nolint:errcheck // Test cleanup

	if !client.IsConnected() {
		t.Error("IsConnected() = false after successful Connect()")
	}

	// Non-blocking: must not panic or block regardless of state type.
	client.WriteStateChange("uuid-1", "Dimmer", "Kitchen", "75.5", testTime())
	client.WriteStateChange("uuid-2", "Switch", "Hall", "on", testTime())
	client.Flush()

	if err := client.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if client.IsConnected() {
		t.Error("IsConnected() = true after Close()")
	}
}
