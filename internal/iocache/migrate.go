package iocache

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/baijiangliang/year2018/internal/contract"
	"github.com/baijiangliang/year2018/schema"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations
var migrationsFS embed.FS

// Migrate runs the history cache migrations against a fresh connection.
//   - If targetVersion < 0, it migrates to the latest version.
//   - If targetVersion == 0, it rolls back all migrations.
//   - If targetVersion > 0, it migrates to the specified version.
//
// It returns the schema version the database ends up at.
func Migrate(backend schema.DatabaseBackend, connStr string, targetVersion int) (uint, error) {
	if backend == schema.NoneBackend {
		return 0, errors.New("migrations are not supported for the none backend")
	}
	db, err := openDB(backend, connStr)
	if err != nil {
		return 0, err
	}
	m, err := newMigrator(db, backend)
	if err != nil {
		_ = db.Close()
		return 0, err
	}
	defer func() { _, _ = m.Close() }() // closes db as well
	return runMigrations(m, targetVersion)
}

// migrateDB brings db to the latest schema without taking ownership of it.
// Only the SQLite driver works on the shared handle, so in-memory databases
// keep their tables.
func migrateDB(db *sql.DB, backend schema.DatabaseBackend) (uint, error) {
	m, err := newMigrator(db, backend)
	if err != nil {
		return 0, err
	}
	return runMigrations(m, -1)
}

// newMigrator wires the embedded migrations of a backend to db.
func newMigrator(db *sql.DB, backend schema.DatabaseBackend) (*migrate.Migrate, error) {
	var driver database.Driver
	var err error
	switch backend {
	case schema.SQLiteBackend:
		driver, err = sqlite.WithInstance(db, &sqlite.Config{})
	case schema.MySQLBackend:
		driver, err = mysql.WithInstance(db, &mysql.Config{})
	case schema.PostgreSQLBackend:
		driver, err = postgres.WithInstance(db, &postgres.Config{})
	default:
		return nil, fmt.Errorf("unsupported backend: %s", backend)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s migrate driver: %w", backend, err)
	}

	sub, err := fs.Sub(migrationsFS, "migrations/"+string(backend))
	if err != nil {
		return nil, fmt.Errorf("failed to access migrations for %s: %w", backend, err)
	}
	source, err := iofs.New(sub, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to create migration source: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, "year2018", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, nil
}

func runMigrations(m *migrate.Migrate, targetVersion int) (uint, error) {
	current, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return 0, fmt.Errorf("failed to get current migration version: %w", err)
	}
	if dirty {
		return current, fmt.Errorf("database is in a dirty state at version %d. Please fix manually or force version", current)
	}

	switch {
	case targetVersion < 0:
		err = m.Up()
	case targetVersion == 0:
		err = m.Down()
	default:
		err = m.Migrate(uint(targetVersion))
	}
	if errors.Is(err, migrate.ErrNoChange) {
		contract.Logger().Debugf("history cache schema already at version %d", current)
		return current, nil
	}
	if err != nil {
		return current, fmt.Errorf("failed to migrate history cache from version %d: %w", current, err)
	}

	next, _, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		next, err = 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read migrated version: %w", err)
	}
	contract.Logger().Debugf("history cache schema migrated from version %d to %d", current, next)
	return next, nil
}
