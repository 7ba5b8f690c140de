package checkpoint

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/katalvlaran/integerize/ndarray"
)

// Sentinel errors returned by every Store implementation.
var (
	// ErrNotFound is returned by Load for an unknown (session, step).
	ErrNotFound = errors.New("checkpoint: snapshot not found")

	// ErrCorrupt is returned when a stored snapshot fails decoding or its
	// digest does not match.
	ErrCorrupt = errors.New("checkpoint: corrupt snapshot")

	// ErrClosed is returned after Close.
	ErrClosed = errors.New("checkpoint: store closed")

	// ErrBadSession is returned for an empty session id.
	ErrBadSession = errors.New("checkpoint: empty session id")
)

// Store keeps integral intermediate states of a rounding run, keyed by a
// session id and a step number. Implementations copy on Save and on Load,
// so callers may keep mutating the array they saved.
type Store interface {
	// Save records a snapshot, replacing any previous one at the same step.
	Save(ctx context.Context, session string, step int, a *ndarray.Array) error

	// Load returns a fresh copy of a snapshot.
	Load(ctx context.Context, session string, step int) (*ndarray.Array, error)

	// Steps lists the saved steps of a session in ascending order.
	Steps(ctx context.Context, session string) ([]int, error)

	// Clear drops every snapshot of a session.
	Clear(ctx context.Context, session string) error

	// Close releases the store's resources.
	Close() error
}

// NewSession returns a fresh random session id.
func NewSession() string {
	return uuid.NewString()
}
