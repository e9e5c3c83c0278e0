// Package iocache stores ingested repository histories in SQL.
package iocache

import (
	"database/sql"
	"fmt"
	"regexp"
	"time"

	"github.com/baijiangliang/year2018/internal/contract"
	"github.com/baijiangliang/year2018/schema"
	"github.com/go-sql-driver/mysql"   // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// historyTable is created by the embedded migrations.
const historyTable = "history_cache"

var tableNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// CacheStoreImpl handles durable storage operations using various database backends.
type CacheStoreImpl struct {
	db            *sql.DB
	tableName     string
	backend       schema.DatabaseBackend
	connStr       string
	schemaVersion uint
}

var _ contract.CacheStore = &CacheStoreImpl{} // Compile-time check

// NewCacheStore opens the history cache for a backend and migrates it to the
// latest schema. The none backend yields a store that never hits.
func NewCacheStore(backend schema.DatabaseBackend, connStr string) (contract.CacheStore, error) {
	if backend == schema.NoneBackend {
		return &CacheStoreImpl{tableName: historyTable, backend: backend}, nil
	}

	db, err := openDB(backend, connStr)
	if err != nil {
		return nil, err
	}
	store := &CacheStoreImpl{
		db:        db,
		tableName: historyTable,
		backend:   backend,
		connStr:   connStr,
	}

	if backend == schema.SQLiteBackend {
		store.schemaVersion, err = migrateDB(db, backend)
	} else {
		store.schemaVersion, err = Migrate(backend, connStr, -1)
	}
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to prepare table %s: %w", historyTable, err)
	}
	return store, nil
}

// openDB opens and pings a connection for a SQL backend.
func openDB(backend schema.DatabaseBackend, connStr string) (*sql.DB, error) {
	var db *sql.DB
	var err error

	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = GetDBFilePath()
		}
		db, err = sql.Open("sqlite", dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite cache at %q: %w. Ensure the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		// user:password@tcp(host:port)/dbname
		db, err = sql.Open("mysql", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MySQL cache: %w. Check connection format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		// host=localhost port=5432 user=postgres password=secret dbname=postgres
		db, err = sql.Open("pgx", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL cache: %w. Check connection format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	default:
		return nil, fmt.Errorf("unsupported cache backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database. Check that the server is running and connection parameters are valid: %w", backend, err)
	}
	return db, nil
}

// Get retrieves a value by key from the store.
func (ps *CacheStoreImpl) Get(key string) ([]byte, int, int64, error) {
	if ps.db == nil {
		return nil, 0, 0, sql.ErrNoRows
	}

	var value []byte
	var version int
	var ts int64

	query := fmt.Sprintf(`SELECT cache_value, cache_version, cache_timestamp FROM %s WHERE cache_key = %s`,
		quoteTableName(ps.tableName, ps.backend), ps.getPlaceholder())
	if err := ps.db.QueryRow(query, key).Scan(&value, &version, &ts); err != nil {
		return nil, 0, 0, err
	}
	return value, version, ts, nil
}

// Set inserts or replaces a key/value pair in the store.
func (ps *CacheStoreImpl) Set(key string, value []byte, version int, timestamp int64) error {
	if ps.db == nil {
		return nil
	}
	_, err := ps.db.Exec(ps.getUpsertQuery(), key, value, version, timestamp)
	return err
}

// getPlaceholder returns the first parameter placeholder for the backend.
func (ps *CacheStoreImpl) getPlaceholder() string {
	if ps.backend == schema.PostgreSQLBackend {
		return "$1"
	}
	return "?"
}

// getUpsertQuery returns the UPSERT query for the backend.
func (ps *CacheStoreImpl) getUpsertQuery() string {
	table := quoteTableName(ps.tableName, ps.backend)
	switch ps.backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (cache_key, cache_value, cache_version, cache_timestamp) VALUES (?, ?, ?, ?) AS new
			ON DUPLICATE KEY UPDATE cache_value = new.cache_value, cache_version = new.cache_version, cache_timestamp = new.cache_timestamp`, table)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (cache_key, cache_value, cache_version, cache_timestamp) VALUES ($1, $2, $3, $4)
			ON CONFLICT (cache_key) DO UPDATE SET cache_value = EXCLUDED.cache_value, cache_version = EXCLUDED.cache_version, cache_timestamp = EXCLUDED.cache_timestamp`, table)

	default: // SQLite
		return fmt.Sprintf(`INSERT OR REPLACE INTO %s (cache_key, cache_value, cache_version, cache_timestamp) VALUES (?, ?, ?, ?)`, table)
	}
}

// Close closes the underlying DB connection.
func (ps *CacheStoreImpl) Close() error {
	if ps.db != nil {
		return ps.db.Close()
	}
	return nil
}

// GetStatus returns status information about the cache store.
func (ps *CacheStoreImpl) GetStatus() (schema.CacheStatus, error) {
	status := schema.CacheStatus{
		Backend:       string(ps.backend),
		Connected:     ps.db != nil,
		SchemaVersion: ps.schemaVersion,
	}
	if ps.db == nil {
		return status, nil
	}

	table := quoteTableName(ps.tableName, ps.backend)
	row := ps.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", table))
	if err := row.Scan(&status.TotalEntries); err != nil {
		return status, fmt.Errorf("failed to get total entries: %w", err)
	}
	if status.TotalEntries == 0 {
		return status, nil
	}

	var lastTs, oldestTs int64
	row = ps.db.QueryRow(fmt.Sprintf("SELECT MAX(cache_timestamp), MIN(cache_timestamp) FROM %s", table))
	if err := row.Scan(&lastTs, &oldestTs); err != nil {
		return status, fmt.Errorf("failed to get entry times: %w", err)
	}
	status.LastEntryTime = time.Unix(lastTs, 0)
	status.OldestEntryTime = time.Unix(oldestTs, 0)

	status.TableSizeBytes = ps.tableSize(status.TotalEntries)
	return status, nil
}

// tableSize asks the backend for the on-disk size, falling back to a rough
// estimate per entry.
func (ps *CacheStoreImpl) tableSize(entries int) int64 {
	estimate := int64(entries) * 1000
	var size int64
	var err error

	switch ps.backend {
	case schema.SQLiteBackend:
		err = ps.db.QueryRow("SELECT page_count * page_size FROM pragma_page_count(), pragma_page_size()").Scan(&size)
	case schema.MySQLBackend:
		cfg, parseErr := mysql.ParseDSN(ps.connStr)
		if parseErr != nil || cfg.DBName == "" {
			return estimate
		}
		err = ps.db.QueryRow("SELECT data_length + index_length FROM information_schema.tables WHERE table_schema = ? AND table_name = ?",
			cfg.DBName, ps.tableName).Scan(&size)
	case schema.PostgreSQLBackend:
		err = ps.db.QueryRow("SELECT pg_total_relation_size($1)", ps.tableName).Scan(&size)
	default:
		return estimate
	}
	if err != nil {
		return estimate
	}
	return size
}

// validateTableName ensures the name is a plain SQL identifier.
func validateTableName(name string) error {
	if name == "" {
		return fmt.Errorf("table name cannot be empty")
	}
	if !tableNamePattern.MatchString(name) {
		return fmt.Errorf("invalid table name: %s (must match pattern %s)", name, tableNamePattern)
	}
	return nil
}

// quoteTableName returns the properly quoted table name for the given backend.
func quoteTableName(name string, backend schema.DatabaseBackend) string {
	if backend == schema.MySQLBackend {
		return fmt.Sprintf("`%s`", name)
	}
	return fmt.Sprintf("%q", name)
}
