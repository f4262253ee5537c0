package sqlite

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type migrationEntry struct {
	level string
	msg   string
}

type recordingMigrationLogger struct {
	entries []migrationEntry
}

func (l *recordingMigrationLogger) Info(msg string, _ ...interface{}) {
	l.entries = append(l.entries, migrationEntry{"info", msg})
}

func (l *recordingMigrationLogger) Error(msg string, _ ...interface{}) {
	l.entries = append(l.entries, migrationEntry{"error", msg})
}

func TestGooseLogger_FatalfLogsAndReturns(t *testing.T) {
	log := &recordingMigrationLogger{}
	gl := &gooseLogger{log: log}

	gl.Printf("OK   %s", "00001_create_orders.sql")
	gl.Fatalf("failed to open %s", "migrations")

	require.Len(t, log.entries, 2)
	assert.Equal(t, migrationEntry{"info", "OK   00001_create_orders.sql"}, log.entries[0])
	assert.Equal(t, migrationEntry{"error", fmt.Sprintf("failed to open %s", "migrations")}, log.entries[1])
}

func TestStore_MigrateReportsProgress(t *testing.T) {
	ctx := context.Background()
	store, err := Open(ctx, Config{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	log := &recordingMigrationLogger{}
	require.NoError(t, store.Migrate(ctx, log))

	assert.NotEmpty(t, log.entries)
	for _, e := range log.entries {
		assert.Equal(t, "info", e.level, e.msg)
	}
}
