package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/nerrad567/loxwatch/internal/classify"
	"github.com/nerrad567/loxwatch/internal/inventory"
	"github.com/nerrad567/loxwatch/internal/monitor"
	"github.com/nerrad567/loxwatch/internal/selection"
	"github.com/nerrad567/loxwatch/internal/sink"
)

// finishTimeout bounds the final run bookkeeping after monitoring stops.
const finishTimeout = 5 * time.Second

// menu drives the top-level interactive loop.
//
// The inventory is fetched once at startup; both the analysis view and the
// monitor listing work from that snapshot, so selection positions stay
// valid for the whole session.
func (a *app) menu(ctx context.Context) error {
	analysis, err := a.loadInventory(ctx)
	if err != nil {
		return err
	}

	for {
		if ctx.Err() != nil {
			return nil
		}

		fmt.Fprintf(a.out, "\nloxwatch — %d controls, %d rooms, %d types\n",
			analysis.TotalControls, analysis.TotalRooms, analysis.TotalTypes)
		fmt.Fprintln(a.out, "  1) Analyse inventory")
		fmt.Fprintln(a.out, "  2) Monitor a selection")
		fmt.Fprintln(a.out, "  3) Quit")
		fmt.Fprint(a.out, "Choice: ")

		line, err := a.readLine()
		if err != nil {
			// EOF on stdin ends the session cleanly.
			return nil
		}

		switch strings.ToLower(line) {
		case "1":
			a.showAnalysis(analysis)
		case "2":
			if err := a.monitorFlow(ctx, analysis); err != nil {
				return err
			}
		case "3", "q", "quit":
			return nil
		case "":
			// Re-prompt.
		default:
			fmt.Fprintf(a.out, "Unrecognised choice %q.\n", line)
		}
	}
}

// loadInventory downloads and classifies the structure document.
func (a *app) loadInventory(ctx context.Context) (*classify.Analysis, error) {
	raw, err := a.client.FetchStructure(ctx)
	if err != nil {
		return nil, err
	}

	catalog, err := inventory.ParseJSON(raw)
	if err != nil {
		return nil, err
	}

	analysis := classify.Analyze(catalog)
	a.log.Info("inventory loaded",
		"controls", analysis.TotalControls,
		"rooms", analysis.TotalRooms,
		"types", analysis.TotalTypes,
	)
	return analysis, nil
}

// showAnalysis prints the grouped summary and saves the JSON export.
func (a *app) showAnalysis(analysis *classify.Analysis) {
	fmt.Fprintf(a.out, "\nControls: %d  Rooms: %d  Categories: %d  Types: %d\n",
		analysis.TotalControls, analysis.TotalRooms, analysis.TotalCategories, analysis.TotalTypes)

	fmt.Fprintln(a.out, "\nBy type:")
	for _, label := range sortedKeys(analysis.ByType) {
		fmt.Fprintf(a.out, "  %-30s %4d\n", label, len(analysis.ByType[label]))
	}

	fmt.Fprintln(a.out, "\nBy room:")
	for _, room := range sortedKeys(analysis.ByRoom) {
		fmt.Fprintf(a.out, "  %-30s %4d\n", room, len(analysis.ByRoom[room]))
	}

	path := a.cfg.Monitor.AnalysisPath
	if path == "" {
		return
	}
	if err := saveAnalysis(analysis, path); err != nil {
		a.log.Error("saving analysis", "path", path, "error", err)
		return
	}
	fmt.Fprintf(a.out, "\nAnalysis saved to %s\n", path)
}

// saveAnalysis writes the JSON export, creating the directory if needed.
func saveAnalysis(analysis *classify.Analysis, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("creating analysis directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating analysis file: %w", err)
	}

	if err := analysis.WriteJSON(file); err != nil {
		file.Close() //nolint:errcheck // Best effort cleanup on error path
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing analysis file: %w", err)
	}
	return nil
}

// monitorFlow lists the controls, collects a selection, and runs the
// monitor over it.
func (a *app) monitorFlow(ctx context.Context, analysis *classify.Analysis) error {
	entries := analysis.Controls
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No controls in the inventory.")
		return nil
	}

	a.printListing(entries)

	selected, err := a.promptSelection(entries)
	if err != nil {
		return err
	}
	if len(selected) == 0 {
		fmt.Fprintln(a.out, "Nothing selected.")
		return nil
	}

	return a.runMonitor(ctx, selected)
}

// printListing shows the numbered control listing used by the selection
// grammar. Position n always refers to the same control for the session.
func (a *app) printListing(entries []classify.Entry) {
	fmt.Fprintln(a.out)
	for i, entry := range entries {
		fmt.Fprintf(a.out, "%4d  %-32s %-26s %s\n", i+1, entry.Name, entry.TypeLabel, entry.Room)
	}
}

// promptSelection runs the interactive selection session.
//
// Rejected tokens re-prompt; an empty line or a select-all keyword
// finishes. EOF on stdin counts as the terminator.
func (a *app) promptSelection(entries []classify.Entry) ([]classify.Entry, error) {
	fmt.Fprintln(a.out, "\nSelect controls: numbers (3), ranges (2-8), comma lists (1,4,9), or 'all'.")
	fmt.Fprintln(a.out, "Empty line finishes the selection.")

	session := selection.NewSession(entries)
	for session.State() != selection.StateDone {
		fmt.Fprint(a.out, "> ")

		line, err := a.readLine()
		if err != nil {
			line = "" // EOF terminates the selection
		}

		added, offerErr := session.Offer(line)
		if offerErr != nil {
			fmt.Fprintf(a.out, "  %v\n", offerErr)
			continue
		}
		if added > 0 {
			fmt.Fprintf(a.out, "  added %d (selected %d)\n", added, session.Count())
		}
	}

	return session.Selection(), nil
}

// runMonitor assembles the sink stack and runs the monitor until the user
// presses Enter or the process receives a shutdown signal.
func (a *app) runMonitor(ctx context.Context, selected []classify.Entry) error {
	startedAt := time.Now()

	csvSink, err := sink.NewCSV(a.cfg.Monitor.CSVDir, startedAt)
	if err != nil {
		return err
	}

	fanout, err := sink.NewFanout(csvSink)
	if err != nil {
		csvSink.Close() //nolint:errcheck // Best effort cleanup on error path
		return err
	}
	fanout.SetOnError(func(name string, err error) {
		a.log.Warn("secondary sink write failed", "sink", name, "error", err)
	})

	var store *sink.SQLiteStore
	if a.db != nil {
		store = sink.NewSQLiteStore(a.db)
		if err := store.BeginRun(ctx, len(selected), startedAt); err != nil {
			csvSink.Close() //nolint:errcheck // Best effort cleanup on error path
			return err
		}
		fanout.Attach("sqlite", store)
	}

	var influxSink *sink.Influx
	if a.influx != nil {
		influxSink = sink.NewInflux(a.influx)
		fanout.Attach("influxdb", influxSink)
	}
	if a.mqtt != nil {
		fanout.Attach("mqtt", sink.NewMQTT(a.mqtt))
	}

	m, err := monitor.New(selected, a.client, fanout, a.cfg.Monitor.GetInterval())
	if err != nil {
		csvSink.Close() //nolint:errcheck // Best effort cleanup on error path
		return err
	}
	m.SetLogger(a.log)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	fmt.Fprintf(a.out, "\nMonitoring %d controls every %s. Press Enter to stop.\n",
		len(selected), a.cfg.Monitor.GetInterval())

	// One line on stdin stops the run. The goroutine consumes exactly one
	// line, so after an Enter-stop the menu owns the reader again.
	go func() {
		_, _ = a.in.ReadString('\n')
		cancel()
	}()

	res, runErr := m.Run(runCtx)

	// Run bookkeeping happens regardless of how the run ended.
	if influxSink != nil {
		influxSink.Flush()
	}
	if store != nil {
		finishCtx, finishCancel := context.WithTimeout(context.Background(), finishTimeout)
		if finishErr := store.FinishRun(finishCtx, time.Now(), res); finishErr != nil {
			a.log.Error("finishing run record", "run_id", store.RunID(), "error", finishErr)
		}
		finishCancel()
	}
	if closeErr := csvSink.Close(); closeErr != nil {
		a.log.Error("closing csv file", "path", csvSink.Path(), "error", closeErr)
	}

	if runErr != nil {
		return fmt.Errorf("monitor run: %w", runErr)
	}

	fmt.Fprintf(a.out, "\nStopped: %d checks, %d changes, %d baselines.\n",
		res.Checks, res.Changes, res.Baselines)
	fmt.Fprintf(a.out, "Records: %s\n", csvSink.Path())
	if store != nil {
		fmt.Fprintf(a.out, "Run id:  %s\n", store.RunID())
	}
	return nil
}

// readLine reads one trimmed line from stdin.
func (a *app) readLine() (string, error) {
	line, err := a.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// sortedKeys returns a group map's keys in sorted order for stable output.
func sortedKeys(groups map[string][]classify.Entry) []string {
	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
