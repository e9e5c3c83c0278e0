package iocache

import (
	"bytes"
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/baijiangliang/year2018/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetGlobals() {
	initOnce = sync.Once{}
	closeOnce = sync.Once{}
	Manager = &CacheStoreManager{}
}

func tempDBPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "history.db")
}

func TestCaching(t *testing.T) {
	t.Run("single setup", func(t *testing.T) {
		resetGlobals()
		dbPath := tempDBPath(t)

		err := InitCaching(schema.SQLiteBackend, dbPath)
		require.NoError(t, err)
		assert.NotNil(t, Manager.GetHistoryStore())

		CloseCaching()
		assert.Nil(t, Manager.GetHistoryStore())

		_, err = os.Stat(dbPath)
		assert.NoError(t, err, "database file should be created")
	})

	t.Run("idempotent setup", func(t *testing.T) {
		resetGlobals()
		dbPath := tempDBPath(t)

		for range 3 {
			assert.NoError(t, InitCaching(schema.SQLiteBackend, dbPath))
		}
		CloseCaching()
		CloseCaching()
	})

	t.Run("none backend", func(t *testing.T) {
		resetGlobals()

		require.NoError(t, InitCaching(schema.NoneBackend, ""))
		store := Manager.GetHistoryStore()
		require.NotNil(t, store)

		_, _, _, err := store.Get("anything")
		assert.Equal(t, sql.ErrNoRows, err)
		assert.NoError(t, store.Set("anything", []byte("x"), 1, 1))
		CloseCaching()
	})

	t.Run("empty backend disables caching", func(t *testing.T) {
		resetGlobals()

		require.NoError(t, InitCaching("", ""))
		assert.Nil(t, Manager.GetHistoryStore())
		CloseCaching()
	})

	t.Run("unsupported backend", func(t *testing.T) {
		resetGlobals()

		err := InitCaching("oracle", "")
		assert.ErrorContains(t, err, "unsupported cache backend")
		assert.Nil(t, Manager.GetHistoryStore())
	})
}

func TestSQLiteBackendOperations(t *testing.T) {
	newStore := func(t *testing.T) *CacheStoreImpl {
		t.Helper()
		store, err := NewCacheStore(schema.SQLiteBackend, tempDBPath(t))
		require.NoError(t, err)
		t.Cleanup(func() { _ = store.Close() })
		return store.(*CacheStoreImpl)
	}

	t.Run("set and get", func(t *testing.T) {
		store := newStore(t)

		require.NoError(t, store.Set("repo-key", []byte(`{"name":"year2018"}`), 3, 1514764800))

		value, version, ts, err := store.Get("repo-key")
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"year2018"}`, string(value))
		assert.Equal(t, 3, version)
		assert.Equal(t, int64(1514764800), ts)
	})

	t.Run("upsert behavior", func(t *testing.T) {
		store := newStore(t)

		require.NoError(t, store.Set("k", []byte("initial"), 1, 1000))
		require.NoError(t, store.Set("k", []byte("updated"), 2, 2000))

		value, version, ts, err := store.Get("k")
		require.NoError(t, err)
		assert.Equal(t, "updated", string(value))
		assert.Equal(t, 2, version)
		assert.Equal(t, int64(2000), ts)
	})

	t.Run("get non-existent key", func(t *testing.T) {
		store := newStore(t)

		_, _, _, err := store.Get("missing")
		assert.Equal(t, sql.ErrNoRows, err)
	})

	t.Run("in-memory database keeps its table", func(t *testing.T) {
		store, err := NewCacheStore(schema.SQLiteBackend, ":memory:")
		require.NoError(t, err)
		defer func() { _ = store.Close() }()

		require.NoError(t, store.Set("k", []byte("v"), 1, 1))
		value, _, _, err := store.Get("k")
		require.NoError(t, err)
		assert.Equal(t, "v", string(value))
	})

	t.Run("status", func(t *testing.T) {
		store := newStore(t)

		status, err := store.GetStatus()
		require.NoError(t, err)
		assert.Equal(t, "sqlite", status.Backend)
		assert.True(t, status.Connected)
		assert.Equal(t, uint(2), status.SchemaVersion)
		assert.Zero(t, status.TotalEntries)

		require.NoError(t, store.Set("a", []byte("1"), 1, 1000))
		require.NoError(t, store.Set("b", []byte("2"), 1, 3000))

		status, err = store.GetStatus()
		require.NoError(t, err)
		assert.Equal(t, 2, status.TotalEntries)
		assert.Equal(t, time.Unix(3000, 0), status.LastEntryTime)
		assert.Equal(t, time.Unix(1000, 0), status.OldestEntryTime)
		assert.Positive(t, status.TableSizeBytes)
	})

	t.Run("reopen keeps entries", func(t *testing.T) {
		dbPath := tempDBPath(t)
		store, err := NewCacheStore(schema.SQLiteBackend, dbPath)
		require.NoError(t, err)
		require.NoError(t, store.Set("k", []byte("v"), 1, 1))
		require.NoError(t, store.Close())

		store, err = NewCacheStore(schema.SQLiteBackend, dbPath)
		require.NoError(t, err)
		defer func() { _ = store.Close() }()
		value, _, _, err := store.Get("k")
		require.NoError(t, err)
		assert.Equal(t, "v", string(value))
	})
}

func TestNoneBackendStatus(t *testing.T) {
	store, err := NewCacheStore(schema.NoneBackend, "")
	require.NoError(t, err)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, "none", status.Backend)
	assert.False(t, status.Connected)
	assert.NoError(t, store.Close())
}

func TestGetPlaceholder(t *testing.T) {
	tests := []struct {
		backend schema.DatabaseBackend
		want    string
	}{
		{schema.SQLiteBackend, "?"},
		{schema.MySQLBackend, "?"},
		{schema.PostgreSQLBackend, "$1"},
	}
	for _, tt := range tests {
		t.Run(string(tt.backend), func(t *testing.T) {
			store := &CacheStoreImpl{backend: tt.backend, tableName: historyTable}
			assert.Equal(t, tt.want, store.getPlaceholder())
		})
	}
}

func TestGetUpsertQuery(t *testing.T) {
	tests := []struct {
		backend  schema.DatabaseBackend
		contains []string
	}{
		{schema.SQLiteBackend, []string{`INSERT OR REPLACE INTO "history_cache"`}},
		{schema.MySQLBackend, []string{"INSERT INTO `history_cache`", "ON DUPLICATE KEY UPDATE"}},
		{schema.PostgreSQLBackend, []string{`INSERT INTO "history_cache"`, "ON CONFLICT (cache_key)", "$4"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.backend), func(t *testing.T) {
			query := (&CacheStoreImpl{backend: tt.backend, tableName: historyTable}).getUpsertQuery()
			for _, s := range tt.contains {
				assert.Contains(t, query, s)
			}
		})
	}
}

func TestTableNames(t *testing.T) {
	assert.NoError(t, validateTableName(historyTable))
	assert.NoError(t, validateTableName("_t1"))
	assert.Error(t, validateTableName(""))
	assert.Error(t, validateTableName("1table"))
	assert.Error(t, validateTableName("history; DROP TABLE x"))

	assert.Equal(t, "`history_cache`", quoteTableName(historyTable, schema.MySQLBackend))
	assert.Equal(t, `"history_cache"`, quoteTableName(historyTable, schema.PostgreSQLBackend))
	assert.Equal(t, `"history_cache"`, quoteTableName(historyTable, schema.SQLiteBackend))
}

func TestMigrate(t *testing.T) {
	t.Run("none backend", func(t *testing.T) {
		_, err := Migrate(schema.NoneBackend, "", -1)
		assert.ErrorContains(t, err, "not supported")
	})

	t.Run("sqlite up, down and to a version", func(t *testing.T) {
		dbPath := tempDBPath(t)

		version, err := Migrate(schema.SQLiteBackend, dbPath, -1)
		require.NoError(t, err)
		assert.Equal(t, uint(2), version)

		version, err = Migrate(schema.SQLiteBackend, dbPath, -1)
		require.NoError(t, err)
		assert.Equal(t, uint(2), version, "second run is a no-op")

		version, err = Migrate(schema.SQLiteBackend, dbPath, 1)
		require.NoError(t, err)
		assert.Equal(t, uint(1), version)

		version, err = Migrate(schema.SQLiteBackend, dbPath, 0)
		require.NoError(t, err)
		assert.Equal(t, uint(0), version)

		version, err = Migrate(schema.SQLiteBackend, dbPath, -1)
		require.NoError(t, err)
		assert.Equal(t, uint(2), version)
	})
}

func TestClearCache(t *testing.T) {
	t.Run("sqlite removes the file", func(t *testing.T) {
		dbPath := tempDBPath(t)
		store, err := NewCacheStore(schema.SQLiteBackend, dbPath)
		require.NoError(t, err)
		require.NoError(t, store.Close())

		require.NoError(t, ClearCache(schema.SQLiteBackend, dbPath, ""))
		_, err = os.Stat(dbPath)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("sqlite missing file is fine", func(t *testing.T) {
		assert.NoError(t, ClearCache(schema.SQLiteBackend, tempDBPath(t), ""))
	})

	t.Run("sqlite needs a path", func(t *testing.T) {
		assert.Error(t, ClearCache(schema.SQLiteBackend, "", ""))
	})

	t.Run("none backend", func(t *testing.T) {
		assert.NoError(t, ClearCache(schema.NoneBackend, "", ""))
	})

	t.Run("unsupported backend", func(t *testing.T) {
		assert.ErrorContains(t, ClearCache("oracle", "", ""), "unsupported")
	})
}

func TestPrintCacheStatus(t *testing.T) {
	t.Run("disconnected", func(t *testing.T) {
		var buf bytes.Buffer
		PrintCacheStatus(&buf, schema.CacheStatus{Backend: "none"})
		assert.Contains(t, buf.String(), "Backend: none")
		assert.Contains(t, buf.String(), "Connected: false")
		assert.NotContains(t, buf.String(), "Total Entries")
	})

	t.Run("connected", func(t *testing.T) {
		var buf bytes.Buffer
		PrintCacheStatus(&buf, schema.CacheStatus{
			Backend:         "sqlite",
			Connected:       true,
			TotalEntries:    4,
			SchemaVersion:   2,
			LastEntryTime:   time.Date(2019, 1, 2, 3, 4, 5, 0, time.Local),
			OldestEntryTime: time.Date(2018, 12, 30, 0, 0, 0, 0, time.Local),
			TableSizeBytes:  8192,
		})
		out := buf.String()
		assert.Contains(t, out, "Schema Version: 2")
		assert.Contains(t, out, "Total Entries: 4")
		assert.Contains(t, out, "Last Entry: 2019-01-02 03:04:05")
		assert.Contains(t, out, "Table Size: 8.2 kB")
	})
}
