// Package db provides the staffd persistence layer: an in-memory SQLite store
// with optional persistence to disk, and the department and employee
// repositories with their identity maps.
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"sync"

	apperrors "github.com/bitswalk/staffdb/src/common/errors"
	"github.com/bitswalk/staffdb/src/common/logs"
	"github.com/bitswalk/staffdb/src/common/paths"
	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

var log = logs.NewDefault()

// SetLogger sets the logger for the db package
func SetLogger(l *logs.Logger) {
	if l != nil {
		log = l
	}
}

// Supported database/sql driver names
const (
	// DriverCGO is github.com/mattn/go-sqlite3
	DriverCGO = "sqlite3"
	// DriverPure is modernc.org/sqlite
	DriverPure = "sqlite"
)

// Database wraps the SQLite connection with persistence capabilities
type Database struct {
	db           *sql.DB
	driver       string
	persistPath  string
	closed       bool
	mu           sync.RWMutex
	shutdownOnce sync.Once
}

// Config holds the database configuration
type Config struct {
	// Driver is the database/sql driver name, "sqlite3" or "sqlite"
	Driver string
	// DSN is the data source; ":memory:" keeps the store in memory
	DSN string
	// PersistPath is the file path where the database will be saved on shutdown
	PersistPath string
	// LoadOnStart determines whether to load existing data from disk on startup
	LoadOnStart bool
}

// DefaultConfig returns a default database configuration
func DefaultConfig() Config {
	return Config{
		Driver:      DriverCGO,
		DSN:         ":memory:",
		PersistPath: "~/.staffd/staffd.db",
		LoadOnStart: true,
	}
}

// New opens the store. The pool is pinned to one connection that never
// expires, so every statement sees the same in-memory database.
func New(cfg Config) (*Database, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = DriverCGO
	}
	dsn := cfg.DSN
	if dsn == "" {
		dsn = ":memory:"
	}

	sqlDB, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)
	sqlDB.SetConnMaxIdleTime(0)

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, apperrors.ErrStorageUnavailable.WithCause(err)
	}

	// Employees must survive the deletion of their department
	if _, err := sqlDB.Exec("PRAGMA foreign_keys = OFF"); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to configure foreign keys: %w", err)
	}

	database := &Database{
		db:          sqlDB,
		driver:      driver,
		persistPath: paths.Expand(cfg.PersistPath),
	}

	if cfg.LoadOnStart && database.persistPath != "" && paths.IsFile(database.persistPath) {
		if err := database.LoadFromDisk(); err != nil {
			// Start fresh rather than refuse to boot
			log.Warn("Failed to load database from disk", "path", database.persistPath, "error", err)
		}
	}

	log.Debug("Database opened", "driver", driver, "dsn", dsn, "persist_path", database.persistPath)
	return database, nil
}

// DB returns the underlying sql.DB, or ErrStorageUnavailable once the
// database has been shut down.
func (d *Database) DB() (*sql.DB, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return nil, apperrors.ErrStorageUnavailable.WithMessage("Database is closed")
	}
	return d.db, nil
}

// Driver returns the database/sql driver name in use
func (d *Database) Driver() string {
	return d.driver
}

// PersistPath returns the expanded on-disk location, empty when persistence is off
func (d *Database) PersistPath() string {
	return d.persistPath
}

// Ping checks that the store is reachable
func (d *Database) Ping() error {
	sqlDB, err := d.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.Ping(); err != nil {
		return apperrors.ErrStorageUnavailable.WithCause(err)
	}
	return nil
}

// Shutdown persists the database to disk and closes the connection.
// Calling it more than once is safe.
func (d *Database) Shutdown() error {
	var shutdownErr error

	d.shutdownOnce.Do(func() {
		d.mu.Lock()
		defer d.mu.Unlock()

		if d.persistPath != "" {
			if err := d.snapshotTo(d.persistPath); err != nil {
				shutdownErr = fmt.Errorf("failed to persist database: %w", err)
			}
		}

		if err := d.db.Close(); err != nil {
			if shutdownErr != nil {
				shutdownErr = fmt.Errorf("%v; also failed to close database: %w", shutdownErr, err)
			} else {
				shutdownErr = fmt.Errorf("failed to close database: %w", err)
			}
		}
		d.closed = true
	})

	return shutdownErr
}

// SaveToDisk writes the store to the configured persist path
func (d *Database) SaveToDisk() error {
	if d.persistPath == "" {
		return nil
	}
	return d.SnapshotTo(d.persistPath)
}

// SnapshotTo writes a consistent copy of the store to path, replacing any
// existing file atomically.
func (d *Database) SnapshotTo(path string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return apperrors.ErrStorageUnavailable.WithMessage("Database is closed")
	}
	return d.snapshotTo(paths.Expand(path))
}

func (d *Database) snapshotTo(path string) error {
	if err := paths.EnsureDir(path); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	// VACUUM INTO refuses to overwrite, so write beside the target and rename
	tempPath := path + ".tmp"
	os.Remove(tempPath)

	if _, err := d.db.Exec("VACUUM INTO ?", tempPath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to vacuum database to disk: %w", classify(err))
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename database file: %w", err)
	}

	log.Debug("Database snapshot written", "path", path)
	return nil
}

// LoadFromDisk merges the persisted database file into memory. Rows with
// matching ids are replaced.
func (d *Database) LoadFromDisk() error {
	if d.persistPath == "" {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.copyFrom(d.persistPath, false)
}

// RestoreFrom replaces the contents of the store with the database file at
// path. Tables absent from the file are left empty.
func (d *Database) RestoreFrom(path string) error {
	path = paths.Expand(path)
	if !paths.IsFile(path) {
		return fmt.Errorf("failed to restore database: %s is not a file", path)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return apperrors.ErrStorageUnavailable.WithMessage("Database is closed")
	}
	return d.copyFrom(path, true)
}

func (d *Database) copyFrom(path string, replace bool) error {
	if _, err := d.db.Exec("ATTACH DATABASE ? AS disk_db", path); err != nil {
		return fmt.Errorf("failed to attach disk database: %w", classify(err))
	}
	defer d.db.Exec("DETACH DATABASE disk_db")

	for _, t := range tables {
		if _, err := d.db.Exec(t.ddl); err != nil {
			return fmt.Errorf("failed to create table %s: %w", t.name, classify(err))
		}
		if replace {
			if _, err := d.db.Exec("DELETE FROM main." + t.name); err != nil {
				return fmt.Errorf("failed to clear table %s: %w", t.name, classify(err))
			}
		}
		if !d.tableExistsInDiskDB(t.name) {
			continue
		}
		query := fmt.Sprintf("INSERT OR REPLACE INTO main.%s (%s) SELECT %s FROM disk_db.%s",
			t.name, t.columns, t.columns, t.name)
		if _, err := d.db.Exec(query); err != nil {
			return fmt.Errorf("failed to copy table %s: %w", t.name, classify(err))
		}
	}

	log.Debug("Database loaded from disk", "path", path, "replace", replace)
	return nil
}

// tableExistsInDiskDB checks if a table exists in the attached disk_db
func (d *Database) tableExistsInDiskDB(tableName string) bool {
	var count int
	err := d.db.QueryRow(`
		SELECT COUNT(*) FROM disk_db.sqlite_master
		WHERE type='table' AND name=?
	`, tableName).Scan(&count)
	return err == nil && count > 0
}

// classify maps driver errors caused by a closed handle to ErrStorageUnavailable
// and everything else to ErrDatabaseQuery.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, sql.ErrConnDone) || errors.Is(err, sql.ErrTxDone) || err.Error() == "sql: database is closed" {
		return apperrors.ErrStorageUnavailable.WithCause(err)
	}
	return apperrors.ErrDatabaseQuery.WithCause(err)
}
