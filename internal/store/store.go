package store

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-ahpgen/pkg/session"
)

const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// Open builds the store selected by driver. dsn is the database path for the
// sqlite driver and ignored otherwise.
func Open(driver, dsn string) (session.Store, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", DriverMemory:
		return NewMemory(), nil
	case DriverSQLite:
		return OpenSQLite(dsn)
	default:
		return nil, fmt.Errorf("store: unknown driver %q", driver)
	}
}

var (
	_ session.Store = (*Memory)(nil)
	_ session.Store = (*SQLite)(nil)
)
