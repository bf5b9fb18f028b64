package sink

import (
	"fmt"

	"github.com/nerrad567/loxwatch/internal/monitor"
)

// Fanout distributes each change record to a primary sink and any number
// of named secondaries.
//
// The primary (the CSV file) is authoritative: its failure propagates and
// aborts the monitor run. Secondaries are best-effort; their failures go
// to the error callback and never interrupt recording.
//
// Fanout is used from the monitor's single sampling goroutine and needs
// no locking.
type Fanout struct {
	primary     monitor.RecordSink
	secondaries []namedSink
	onError     func(name string, err error)
}

// namedSink pairs a secondary sink with a name for error reporting.
type namedSink struct {
	name string
	sink monitor.RecordSink
}

// NewFanout creates a fanout over the given primary sink.
//
// Returns:
//   - *Fanout: Ready for Attach calls
//   - error: ErrNoPrimary if primary is nil
func NewFanout(primary monitor.RecordSink) (*Fanout, error) {
	if primary == nil {
		return nil, ErrNoPrimary
	}
	return &Fanout{primary: primary}, nil
}

// Attach adds a named secondary sink. The name appears in error callbacks
// ("sqlite", "influxdb", "mqtt").
func (f *Fanout) Attach(name string, sink monitor.RecordSink) {
	f.secondaries = append(f.secondaries, namedSink{name: name, sink: sink})
}

// SetOnError sets the callback invoked when a secondary write fails.
// If unset, secondary failures are silently dropped.
func (f *Fanout) SetOnError(callback func(name string, err error)) {
	f.onError = callback
}

// Write delivers one record to every sink.
//
// Satisfies monitor.RecordSink.
func (f *Fanout) Write(rec monitor.ChangeRecord) error {
	if err := f.primary.Write(rec); err != nil {
		return fmt.Errorf("primary sink: %w", err)
	}

	for _, s := range f.secondaries {
		if err := s.sink.Write(rec); err != nil && f.onError != nil {
			f.onError(s.name, err)
		}
	}

	return nil
}
