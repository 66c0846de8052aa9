package db

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"
)

const (
	// StateDir holds the database, config and lock files under a base dir.
	StateDir = ".starterkit"
	dbFile   = "catalog.db"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicate      = errors.New("already exists")
	ErrCategoryInUse  = errors.New("category still has products")
	ErrNotInitialized = errors.New("catalog not found: run 'starterkit init' first")
	// ErrInvalid marks input rejected before it reaches the database.
	ErrInvalid = errors.New("invalid input")
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

//go:embed migrations/*.sql
var migrationFS embed.FS

// DB wraps the database connection
type DB struct {
	conn    *sql.DB
	baseDir string
}

// Path returns the database file location for baseDir.
func Path(baseDir string) string {
	return filepath.Join(baseDir, StateDir, dbFile)
}

// Open opens an existing catalog and applies pending migrations
func Open(baseDir string) (*DB, error) {
	if _, err := os.Stat(Path(baseDir)); os.IsNotExist(err) {
		return nil, ErrNotInitialized
	}
	return open(baseDir)
}

// Initialize creates the catalog if needed and applies migrations
func Initialize(baseDir string) (*DB, error) {
	if err := os.MkdirAll(filepath.Join(baseDir, StateDir), 0755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	return open(baseDir)
}

func open(baseDir string) (*DB, error) {
	// busy_timeout, foreign_keys and synchronous are per connection, so
	// they go in the DSN to cover every connection in the pool.
	dsn := "file:" + filepath.ToSlash(Path(baseDir)) +
		"?_pragma=busy_timeout(500)&_pragma=foreign_keys(1)&_pragma=synchronous(NORMAL)"
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// WAL lets the dashboard and API read while the CLI writes
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	db := &DB{conn: conn, baseDir: baseDir}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return db, nil
}

// migrate applies the embedded migrations. The migrate instance is not
// closed: its database driver would close the shared connection.
func (db *DB) migrate() error {
	src, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}
	defer src.Close()

	driver, err := sqlite.WithInstance(db.conn, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// BundledSchemaVersion returns the newest migration embedded in this
// binary, which is the version Open migrates a catalog to.
func BundledSchemaVersion() (int, error) {
	src, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return 0, fmt.Errorf("load migrations: %w", err)
	}
	defer src.Close()

	v, err := src.First()
	if err != nil {
		return 0, err
	}
	for {
		next, err := src.Next(v)
		if errors.Is(err, os.ErrNotExist) {
			return int(v), nil
		}
		if err != nil {
			return 0, err
		}
		v = next
	}
}

// SchemaVersion returns the applied migration version and whether the last
// migration failed part way.
func (db *DB) SchemaVersion() (version int, dirty bool, err error) {
	err = db.conn.QueryRow("SELECT version, dirty FROM schema_migrations LIMIT 1").Scan(&version, &dirty)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	return version, dirty, err
}

// Ping checks the connection is usable
func (db *DB) Ping() error {
	return db.conn.Ping()
}

// Close closes the database
func (db *DB) Close() error {
	return db.conn.Close()
}

// BaseDir returns the base directory for the database
func (db *DB) BaseDir() string {
	return db.baseDir
}

// withWriteLock executes fn while holding the cross-process write lock.
func (db *DB) withWriteLock(fn func() error) error {
	locker := newWriteLocker(db.baseDir)
	if err := locker.acquire(defaultTimeout); err != nil {
		return err
	}
	defer locker.release()
	return fn()
}

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint failure.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
