// Package checkpoint stores intermediate states of a rounding run so the
// safe hybrid rounder can roll back after a stochastic dead end.
//
// Two stores implement Store:
//
//   - MemoryStore: process memory, the default.
//   - SQLiteStore: a SQLite file (or ":memory:"), one row per (session, step)
//     holding an xz-compressed snapshot and the BLAKE3 digest of its
//     uncompressed payload. The digest is verified on every Load.
//
// Sessions are random UUIDs (NewSession), so several runs can share one
// database; Clear removes a finished run.
//
// Build modes for SQLiteStore:
//   - Default: pure Go modernc.org/sqlite (driver "sqlite").
//   - -tags cgo_sqlite with CGO_ENABLED=1: github.com/mattn/go-sqlite3
//     (driver "sqlite3").
package checkpoint
