// Package dbtest opens throwaway databases for package tests.
package dbtest

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/kcetprep/kcetprep/internal/db"
)

var seq atomic.Int64

// Open returns a private in-memory sqlite database with the schema applied.
func Open(t testing.TB) *sql.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:memdb%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", seq.Add(1))
	h, err := db.Open(context.Background(), db.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("open memory db: %v", err)
	}
	t.Cleanup(func() { _ = h.Close() })
	return h
}
