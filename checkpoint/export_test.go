package checkpoint

import "context"

// OverwritePayloadForTest replaces a stored payload so tests can exercise
// the digest check on Load.
func (s *SQLiteStore) OverwritePayloadForTest(ctx context.Context, session string, step int, payload []byte) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE snapshots SET payload = ? WHERE session = ? AND step = ?`, payload, session, step)

	return err
}
