package cmd

import (
	"fmt"
	"os"

	"github.com/baijiangliang/year2018/internal/contract"
	"github.com/baijiangliang/year2018/internal/iocache"
	"github.com/baijiangliang/year2018/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cacheConfig loads the minimal configuration needed for cache operations.
// Cache commands skip the shared setup, so they work outside any repository.
func cacheConfig() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("cache-backend"))
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", backend)
	}
	connStr := viper.GetString("cache-db-connect")
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.CacheBackend = backend
	cfg.CacheDBConnect = connStr
	return nil
}

// cacheSetupWrapper opens the cache store for status queries.
func cacheSetupWrapper(_ *cobra.Command, _ []string) error {
	if err := cacheConfig(); err != nil {
		return err
	}
	if err := iocache.InitCaching(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}
	return nil
}

// cacheConfigWrapper only loads the configuration, leaving the store closed.
func cacheConfigWrapper(_ *cobra.Command, _ []string) error {
	return cacheConfig()
}

// cacheCmd focused on cache management.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the repository history cache",
	Long: `Manage the cache of parsed repository histories that speeds up repeated runs.

A cache entry is keyed by the repository, its HEAD commit, the time window,
the tracked emails and the smoothing settings. Entries older than seven days
are read again from git.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None

Subcommands:
  status  - Show cache statistics and connection info
  clear   - Remove all cached data
  migrate - Move the cache schema to a given version`,
}

// cacheClearCmd clears the cache.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached repository histories",
	Long: `Delete all cached histories from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Deletes every row and keeps the table

Examples:
  # Clear SQLite cache (default)
  year2018 cache clear

  # Clear MySQL cache (set connection string via env variable)
  YEAR2018_CACHE_BACKEND=mysql YEAR2018_CACHE_DB_CONNECT="..." year2018 cache clear`,
	PreRunE: cacheConfigWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearCache(cfg.CacheBackend, iocache.GetDBFilePath(), cfg.CacheDBConnect); err != nil {
			contract.LogFatal("Failed to clear cache", err)
		}
		fmt.Println("Cache cleared successfully.")
	},
}

// cacheStatusCmd shows cache status.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display cache statistics and connection details",
	Long: `Show the backend, schema version, number of entries, entry times and size of the cache.

Examples:
  year2018 cache status`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := iocache.Manager.GetHistoryStore()
		if store == nil {
			contract.LogFatal("Failed to get cache status", fmt.Errorf("cache is not initialized"))
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get cache status", err)
		}
		iocache.PrintCacheStatus(os.Stdout, status)
	},
}

// cacheMigrateCmd moves the cache schema between versions.
var cacheMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate the cache schema",
	Long: `Apply or roll back cache schema migrations.

Regular runs migrate to the latest version on their own. Use this to roll back
before downgrading year2018, or to prepare a shared MySQL/PostgreSQL cache.

Examples:
  # Migrate to the latest version
  year2018 cache migrate

  # Roll back every migration
  year2018 cache migrate --target-version 0`,
	PreRunE: cacheConfigWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		connStr := cfg.CacheDBConnect
		if cfg.CacheBackend == schema.SQLiteBackend {
			connStr = iocache.GetDBFilePath()
		}
		version, err := iocache.Migrate(cfg.CacheBackend, connStr, viper.GetInt("target-version"))
		if err != nil {
			contract.LogFatal("Failed to migrate cache", err)
		}
		fmt.Printf("Cache schema is at version %d.\n", version)
	},
}
