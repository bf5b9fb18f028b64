package sink

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nerrad567/loxwatch/internal/infrastructure/database"
	"github.com/nerrad567/loxwatch/internal/monitor"
)

// writeTimeout bounds a single record insert. The pool has one connection,
// so a wedged write would otherwise stall the sampling loop indefinitely.
const writeTimeout = 5 * time.Second

// SQLiteStore persists monitor runs and their change records to the
// recording database.
//
// Lifecycle: BeginRun creates the run row and must be called before the
// first Write; FinishRun stamps the run with its final counters. A store
// instance serves exactly one run.
type SQLiteStore struct {
	db    *database.DB
	runID string
}

// NewSQLiteStore creates a store backed by an open recording database.
func NewSQLiteStore(db *database.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// BeginRun creates the monitor_runs row for a new run.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - controls: Size of the monitored selection
//   - startedAt: Run start time
//
// Returns:
//   - error: If the insert fails
func (s *SQLiteStore) BeginRun(ctx context.Context, controls int, startedAt time.Time) error {
	runID := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO monitor_runs (id, started_at, controls) VALUES (?, ?, ?)",
		runID,
		startedAt.UTC().Format(time.RFC3339),
		controls,
	)
	if err != nil {
		return fmt.Errorf("creating monitor run: %w", err)
	}
	s.runID = runID
	return nil
}

// RunID returns the identifier of the current run, or the empty string
// before BeginRun.
func (s *SQLiteStore) RunID() string {
	return s.runID
}

// Write inserts one change record for the current run.
//
// Satisfies monitor.RecordSink.
func (s *SQLiteStore) Write(rec monitor.ChangeRecord) error {
	if s.runID == "" {
		return ErrRunNotStarted
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO change_records
			(run_id, recorded_at, control_uuid, name, type, room, state)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.runID,
		rec.Timestamp.UTC().Format(time.RFC3339),
		rec.UUID,
		rec.Name,
		rec.Type,
		rec.Room,
		rec.State,
	)
	if err != nil {
		return fmt.Errorf("inserting change record: %w", err)
	}
	return nil
}

// FinishRun stamps the run row with its stop time and final counters.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - stoppedAt: Run stop time
//   - result: Final counters from the monitor
//
// Returns:
//   - error: If the update fails or the run was never started
func (s *SQLiteStore) FinishRun(ctx context.Context, stoppedAt time.Time, result monitor.Result) error {
	if s.runID == "" {
		return ErrRunNotStarted
	}

	_, err := s.db.ExecContext(ctx,
		"UPDATE monitor_runs SET stopped_at = ?, checks = ?, changes = ? WHERE id = ?",
		stoppedAt.UTC().Format(time.RFC3339),
		result.Checks,
		result.Changes,
		s.runID,
	)
	if err != nil {
		return fmt.Errorf("finishing monitor run: %w", err)
	}
	return nil
}
