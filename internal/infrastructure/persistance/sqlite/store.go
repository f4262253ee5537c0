// Package sqlite provides SQLite implementations of repository interfaces.
//
// A Store owns a single *sql.DB limited to one open connection, guarded by
// a sync.RWMutex: SQLite allows one writer at a time and an in-memory
// database exists only inside the connection that created it.
// The schema is managed by goose migrations embedded in the binary.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"

	"github.com/hapkiduki/sgp-engine/internal/domain/repository"
)

//go:embed migrations/*.sql
var migrations embed.FS

const migrationsDir = "migrations"

// Config contains the SQLite connection settings.
type Config struct {
	// Path is the database file, or ":memory:" for an in-memory database.
	Path string

	// BusyTimeout is how long a statement waits for a locked database.
	BusyTimeout time.Duration
}

// migrationLogger is the subset of the application logger used to report
// migration progress.
type migrationLogger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// Store wraps the SQLite connection shared by all repositories.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open opens the database and verifies the connection.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("%w: database path is empty", repository.ErrInvalidInput)
	}

	dsn := fmt.Sprintf("%s?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=%d",
		cfg.Path, cfg.BusyTimeout.Milliseconds())

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrConnectionFailed, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", repository.ErrConnectionFailed, err)
	}

	return &Store{db: db}, nil
}

// Migrate applies every pending migration. A nil logger discards goose output.
func (s *Store) Migrate(ctx context.Context, log migrationLogger) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	goose.SetBaseFS(migrations)
	defer goose.SetBaseFS(nil)

	if log != nil {
		goose.SetLogger(&gooseLogger{log: log})
	} else {
		goose.SetLogger(goose.NopLogger())
	}

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	if err := goose.UpContext(ctx, s.db, migrationsDir); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", repository.ErrConnectionFailed, err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// gooseLogger routes goose's Printf-style output through the application logger.
type gooseLogger struct {
	log migrationLogger
}

// Fatalf logs at error level and returns instead of exiting. Migrate only
// calls goose.UpContext, which reports failures as returned errors, so the
// composition root decides how the process stops.
func (l *gooseLogger) Fatalf(format string, v ...interface{}) {
	l.log.Error(fmt.Sprintf(format, v...), "component", "migrations")
}

func (l *gooseLogger) Printf(format string, v ...interface{}) {
	l.log.Info(fmt.Sprintf(format, v...), "component", "migrations")
}

// isUniqueConstraintError reports whether err is a SQLite UNIQUE violation.
func isUniqueConstraintError(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
