// Package database manages the SQLite recording store.
//
// The store is optional (database.enabled in config.yaml) and durable:
// every monitor run and every recorded state transition is written through
// it, so a run's history survives process restarts and can be queried with
// ordinary SQL tooling afterwards.
//
// # Schema migrations
//
// Schema files are embedded by the top-level migrations package and applied
// on startup via Migrate. Migrations are forward-only, named
// NNN_description.sql, and each runs in its own transaction.
//
// # Concurrency
//
// SQLite supports a single writer. The pool is capped at one connection;
// WAL mode keeps reads of past runs from blocking behind the recorder's
// inserts.
package database
