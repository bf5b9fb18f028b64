package mqtt

import (
	"strings"
	"testing"

	"github.com/nerrad567/loxwatch/internal/infrastructure/config"
)

func TestTopics(t *testing.T) {
	tests := []struct {
		name   string
		topics Topics
		build  func(Topics) string
		want   string
	}{
		{
			name:   "control state with default prefix",
			topics: Topics{},
			build:  func(tp Topics) string { return tp.ControlState("uuid-1") },
			want:   "loxwatch/state/uuid-1",
		},
		{
			name:   "control state with custom prefix",
			topics: Topics{Prefix: "site-a/loxwatch"},
			build:  func(tp Topics) string { return tp.ControlState("uuid-1") },
			want:   "site-a/loxwatch/state/uuid-1",
		},
		{
			name:   "system status",
			topics: Topics{},
			build:  func(tp Topics) string { return tp.SystemStatus() },
			want:   "loxwatch/system/status",
		},
		{
			name:   "all control states pattern",
			topics: Topics{},
			build:  func(tp Topics) string { return tp.AllControlStates() },
			want:   "loxwatch/state/+",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.build(tt.topics); got != tt.want {
				t.Errorf("topic = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildClientOptions(t *testing.T) {
	cfg := config.MQTTConfig{
		Broker: config.MQTTBroker{
			Host:     "broker.local",
			Port:     8883,
			TLS:      true,
			ClientID: "loxwatch-test",
		},
		Auth: config.MQTTAuthConfig{
			Username: "recorder",
			Password: "secret",
		},
	}

	opts := buildClientOptions(cfg)

	if len(opts.Servers) != 1 {
		t.Fatalf("Servers = %d, want 1", len(opts.Servers))
	}
	if got := opts.Servers[0].String(); got != "ssl://broker.local:8883" {
		t.Errorf("broker URL = %q, want ssl://broker.local:8883", got)
	}
	if opts.ClientID != "loxwatch-test" {
		t.Errorf("ClientID = %q, want loxwatch-test", opts.ClientID)
	}
	if opts.Username != "recorder" {
		t.Errorf("Username = %q, want recorder", opts.Username)
	}
	if !opts.AutoReconnect {
		t.Error("AutoReconnect = false, want true")
	}
	if opts.TLSConfig == nil || opts.TLSConfig.MinVersion != tlsMinVersion {
		t.Error("TLS config missing or below minimum version")
	}
}

func TestBuildClientOptions_PlainTCP(t *testing.T) {
	cfg := config.MQTTConfig{
		Broker: config.MQTTBroker{Host: "localhost", Port: 1883, ClientID: "loxwatch"},
	}

	opts := buildClientOptions(cfg)

	if got := opts.Servers[0].String(); got != "tcp://localhost:1883" {
		t.Errorf("broker URL = %q, want tcp://localhost:1883", got)
	}
	if opts.Username != "" {
		t.Errorf("Username = %q, want empty when no auth configured", opts.Username)
	}
}

func TestStatusPayloads(t *testing.T) {
	online := buildOnlinePayload("loxwatch")
	if !strings.Contains(online, `"status":"online"`) || !strings.Contains(online, `"client_id":"loxwatch"`) {
		t.Errorf("online payload malformed: %s", online)
	}

	offline := buildOfflinePayload("loxwatch")
	if !strings.Contains(offline, `"status":"offline"`) || !strings.Contains(offline, `"reason":"graceful_shutdown"`) {
		t.Errorf("offline payload malformed: %s", offline)
	}
}
