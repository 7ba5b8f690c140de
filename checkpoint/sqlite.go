package checkpoint

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/katalvlaran/integerize/ndarray"
)

const schema = `
CREATE TABLE IF NOT EXISTS snapshots(
	session TEXT    NOT NULL,
	step    INTEGER NOT NULL,
	digest  TEXT    NOT NULL,
	payload BLOB    NOT NULL,
	ts      REAL    NOT NULL,
	PRIMARY KEY (session, step)
)`

// SQLiteStore persists snapshots in a SQLite database, one row per
// (session, step) holding the xz-compressed payload and its BLAKE3 digest.
//
// The driver is chosen at build time: pure Go modernc.org/sqlite by
// default, CGO github.com/mattn/go-sqlite3 with -tags cgo_sqlite.
type SQLiteStore struct {
	db     *sql.DB
	closed atomic.Bool
}

var _ Store = (*SQLiteStore)(nil)

// DriverName returns the database/sql driver name compiled in.
func DriverName() string { return driverName }

// DriverType returns "purego" or "cgo".
func DriverType() string { return driverType }

// OpenSQLite opens (creating if needed) a snapshot database at path.
// Use ":memory:" for a throwaway database.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("checkpoint: open %s: %w", path, err)
	}
	// a single connection keeps ":memory:" databases alive and serializes writers
	db.SetMaxOpenConns(1)
	if _, err = db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("checkpoint: init schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Save(ctx context.Context, session string, step int, a *ndarray.Array) error {
	if s.closed.Load() {
		return ErrClosed
	}
	if session == "" {
		return ErrBadSession
	}
	blob, digest, err := Encode(a)
	if err != nil {
		return fmt.Errorf("checkpoint: save step %d: %w", step, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO snapshots(session, step, digest, payload, ts) VALUES(?,?,?,?,?)`,
		session, step, digest, blob, float64(time.Now().UnixMilli())/1000.0)
	if err != nil {
		return fmt.Errorf("checkpoint: save step %d: %w", step, err)
	}

	return nil
}

func (s *SQLiteStore) Load(ctx context.Context, session string, step int) (*ndarray.Array, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}
	var (
		digest string
		blob   []byte
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT digest, payload FROM snapshots WHERE session = ? AND step = ?`,
		session, step).Scan(&digest, &blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("session %s step %d: %w", session, step, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("checkpoint: load step %d: %w", step, err)
	}

	return Decode(blob, digest)
}

func (s *SQLiteStore) Steps(ctx context.Context, session string) ([]int, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT step FROM snapshots WHERE session = ? ORDER BY step`, session)
	if err != nil {
		return nil, fmt.Errorf("checkpoint: list steps: %w", err)
	}
	defer rows.Close()

	var out []int
	for rows.Next() {
		var step int
		if err = rows.Scan(&step); err != nil {
			return nil, fmt.Errorf("checkpoint: list steps: %w", err)
		}
		out = append(out, step)
	}

	return out, rows.Err()
}

func (s *SQLiteStore) Clear(ctx context.Context, session string) error {
	if s.closed.Load() {
		return ErrClosed
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE session = ?`, session); err != nil {
		return fmt.Errorf("checkpoint: clear session: %w", err)
	}

	return nil
}

// Close closes the database. Further calls fail with ErrClosed.
func (s *SQLiteStore) Close() error {
	if s.closed.Swap(true) {
		return nil
	}

	return s.db.Close()
}
