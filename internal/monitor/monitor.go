package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/nerrad567/loxwatch/internal/classify"
)

// Logger defines the logging interface used by the Monitor.
// This allows different logging implementations to be used.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// StateFetcher is the live-state read capability supplied by the caller.
//
// The monitor depends only on this contract, not on the transport behind it.
type StateFetcher interface {
	// FetchState returns the current value of a control.
	// Failures are treated as transient; the monitor retries on the next
	// polling interval.
	FetchState(ctx context.Context, controlID string) (string, error)
}

// ChangeRecord is one emitted fact: a baseline reading or a detected state
// transition. Immutable once created.
type ChangeRecord struct {
	Timestamp time.Time
	UUID      string
	Name      string
	Type      string
	Room      string
	State     string
}

// RecordSink receives ChangeRecords in emission order.
//
// Implementations must preserve order, append one physical record per call,
// and never coalesce: the monitor, not the sink, decides what counts as a
// change.
type RecordSink interface {
	Write(rec ChangeRecord) error
}

// Result carries the end-of-run counters.
type Result struct {
	// Checks is the number of sampling passes performed.
	Checks int

	// Changes is the number of transitions recorded, excluding baselines.
	Changes int

	// Baselines is the number of baseline records captured at start.
	Baselines int
}

// Monitor samples live state for a fixed selection of controls and emits a
// record only when a value changes, plus one baseline record per control.
//
// The run is a single-threaded cooperative cycle: fetch all, compare all,
// emit on change, sleep, repeat until the context is cancelled. Cancellation
// is observed only between passes, never mid-pass, so a cancelled run never
// leaves a half-written pass behind. MonitorState (the last-known value per
// control) is owned exclusively by the running monitor and released when the
// run ends.
type Monitor struct {
	selection []classify.Entry
	fetcher   StateFetcher
	sink      RecordSink
	interval  time.Duration
	logger    Logger

	// now is the clock; replaced in tests.
	now func() time.Time
}

// New creates a Monitor for the given selection.
//
// Parameters:
//   - selection: Entries to watch, in presentation order (fixed for the run)
//   - fetcher: Live-state read capability
//   - sink: Destination for emitted records
//   - interval: Delay between sampling passes
//
// Returns:
//   - *Monitor: Ready to Run
//   - error: ErrEmptySelection, ErrNoFetcher, or ErrNoSink
func New(selection []classify.Entry, fetcher StateFetcher, sink RecordSink, interval time.Duration) (*Monitor, error) {
	if len(selection) == 0 {
		return nil, ErrEmptySelection
	}
	if fetcher == nil {
		return nil, ErrNoFetcher
	}
	if sink == nil {
		return nil, ErrNoSink
	}
	if interval <= 0 {
		interval = time.Second
	}

	return &Monitor{
		selection: selection,
		fetcher:   fetcher,
		sink:      sink,
		interval:  interval,
		logger:    noopLogger{},
		now:       time.Now,
	}, nil
}

// SetLogger sets the logger for the monitor.
func (m *Monitor) SetLogger(logger Logger) {
	m.logger = logger
}

// Run executes the monitoring loop until ctx is cancelled.
//
// On start it captures a baseline: one fetch and one record per selected
// control, so the record stream is self-describing even if nothing ever
// changes. It then samples on the configured interval, emitting exactly one
// record per detected transition.
//
// A fetch failure for one control is logged and skipped; the control keeps
// its previous state and is retried on the next pass, without affecting the
// rest of the pass. There is no retry limit: monitoring duration is
// open-ended and connectivity loss is survived by design. Only cancellation
// or a failed record write ends the run.
//
// Returns:
//   - Result: Final counters (also returned alongside a write error)
//   - error: nil on cancellation; the write error if the sink failed
func (m *Monitor) Run(ctx context.Context) (Result, error) {
	var res Result

	// Last-known state per control UUID. A control absent from this map has
	// no baseline yet; its first successful read becomes its baseline.
	states := make(map[string]string, len(m.selection))

	m.logger.Info("monitor starting",
		"controls", len(m.selection),
		"interval", m.interval,
	)

	// Baseline pass.
	baselineTime := m.now()
	for _, entry := range m.selection {
		value, err := m.fetcher.FetchState(ctx, entry.ID)
		if err != nil {
			m.logger.Warn("baseline read failed, will retry during sampling",
				"uuid", entry.ID,
				"name", entry.Name,
				"error", err,
			)
			continue
		}

		states[entry.ID] = value
		if err := m.emit(entry, value, baselineTime); err != nil {
			return res, err
		}
		res.Baselines++
	}
	m.logger.Info("baseline captured", "records", res.Baselines)

	// Sampling loop. The cancellation checkpoint is here, at the top of the
	// iteration, and nowhere inside the pass.
	for {
		select {
		case <-ctx.Done():
			m.logger.Info("monitor stopped",
				"checks", res.Checks,
				"changes", res.Changes,
			)
			return res, nil
		case <-time.After(m.interval):
		}

		res.Checks++
		passTime := m.now()

		for _, entry := range m.selection {
			value, err := m.fetcher.FetchState(ctx, entry.ID)
			if err != nil {
				// Transient: keep the previous state, let the next pass retry.
				m.logger.Warn("state read failed",
					"uuid", entry.ID,
					"name", entry.Name,
					"error", err,
				)
				continue
			}

			previous, known := states[entry.ID]
			if known && valuesEqual(previous, value) {
				continue
			}

			states[entry.ID] = value
			if err := m.emit(entry, value, passTime); err != nil {
				return res, err
			}

			if known {
				res.Changes++
				m.logger.Info("state change",
					"name", entry.Name,
					"from", previous,
					"to", value,
				)
			} else {
				// Late baseline for a control whose initial read failed.
				res.Baselines++
				m.logger.Info("late baseline captured", "name", entry.Name, "state", value)
			}
		}
	}
}

// emit writes one record to the sink. A write failure is the one
// unrecoverable resource failure that stops a run.
func (m *Monitor) emit(entry classify.Entry, value string, ts time.Time) error {
	rec := ChangeRecord{
		Timestamp: ts,
		UUID:      entry.ID,
		Name:      entry.Name,
		Type:      entry.TypeLabel,
		Room:      entry.Room,
		State:     value,
	}

	if err := m.sink.Write(rec); err != nil {
		m.logger.Error("record write failed", "uuid", entry.ID, "error", err)
		return fmt.Errorf("monitor: writing record for %s: %w", entry.ID, err)
	}
	return nil
}
