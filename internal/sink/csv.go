package sink

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nerrad567/loxwatch/internal/monitor"
)

// CSV file conventions.
const (
	// csvTimeLayout formats record timestamps inside the file.
	csvTimeLayout = "2006-01-02T15:04:05"

	// csvFileLayout formats the run start time in the filename.
	csvFileLayout = "20060102_150405"

	// csvDirPermissions is the permission mode for the output directory.
	csvDirPermissions = 0750

	// csvFilePermissions is the permission mode for change-record files.
	csvFilePermissions = 0640
)

// csvHeader is written once at the top of every change-record file.
var csvHeader = []string{"timestamp", "uuid", "name", "type", "room", "state"}

// CSV writes change records to a per-run CSV file.
//
// One file per monitor run, named changes_<start-time>.csv inside the
// configured directory. Every Write flushes through to the file, so an
// interrupted run keeps everything recorded up to the moment it stopped.
type CSV struct {
	file *os.File
	w    *csv.Writer
	path string
}

// NewCSV creates the output directory and opens a fresh change-record
// file for a run starting at startedAt.
//
// Parameters:
//   - dir: Output directory (created if missing)
//   - startedAt: Run start time, used in the filename
//
// Returns:
//   - *CSV: Open sink with the header already written
//   - error: If the directory or file cannot be created
func NewCSV(dir string, startedAt time.Time) (*CSV, error) {
	if err := os.MkdirAll(dir, csvDirPermissions); err != nil {
		return nil, fmt.Errorf("creating csv directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("changes_%s.csv", startedAt.Format(csvFileLayout)))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, csvFilePermissions)
	if err != nil {
		return nil, fmt.Errorf("creating csv file: %w", err)
	}

	w := csv.NewWriter(file)
	if err := w.Write(csvHeader); err != nil {
		file.Close() //nolint:errcheck // Best effort cleanup on error path
		return nil, fmt.Errorf("writing csv header: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		file.Close() //nolint:errcheck // Best effort cleanup on error path
		return nil, fmt.Errorf("flushing csv header: %w", err)
	}

	return &CSV{file: file, w: w, path: path}, nil
}

// Write appends one change record and flushes it to the file.
//
// Satisfies monitor.RecordSink.
func (s *CSV) Write(rec monitor.ChangeRecord) error {
	row := []string{
		rec.Timestamp.Format(csvTimeLayout),
		rec.UUID,
		rec.Name,
		rec.Type,
		rec.Room,
		rec.State,
	}
	if err := s.w.Write(row); err != nil {
		return fmt.Errorf("writing csv record: %w", err)
	}
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		return fmt.Errorf("flushing csv record: %w", err)
	}
	return nil
}

// Path returns the filesystem path of the change-record file.
func (s *CSV) Path() string {
	return s.path
}

// Close flushes any buffered output and closes the file.
func (s *CSV) Close() error {
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		s.file.Close() //nolint:errcheck // Best effort cleanup on error path
		return fmt.Errorf("flushing csv file: %w", err)
	}
	if err := s.file.Close(); err != nil {
		return fmt.Errorf("closing csv file: %w", err)
	}
	return nil
}
