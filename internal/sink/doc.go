// Package sink provides the RecordSink implementations the monitor writes
// through.
//
// The CSV sink is the primary, always-on destination: a timestamped file
// per run, one row per recorded state value, flushed record-by-record so a
// crash loses at most the in-flight row. The SQLite store, InfluxDB and
// MQTT sinks are optional and attach as secondaries behind a Fanout.
//
// Failure policy: a primary write failure aborts the monitor run (losing
// records silently defeats the point of recording); secondary failures are
// reported through the Fanout's error callback and the run continues.
package sink
