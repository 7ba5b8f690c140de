//go:build !cgo_sqlite

package checkpoint

import (
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)
)

const (
	driverName = "sqlite"
	driverType = "purego"
)
