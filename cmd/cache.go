package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/relicdev/relic/internal/contract"
	"github.com/relicdev/relic/internal/iocache"
	"github.com/relicdev/relic/schema"
)

// cacheSetup loads minimal configuration needed for cache operations.
// This is used by commands that need cache access without full shared setup.
func cacheSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get cache-related config values
	backend := schema.DatabaseBackend(viper.GetString("cache-backend"))
	connStr := viper.GetString("cache-db-connect")

	mgr, err := iocache.NewManager(backend, connStr)
	if err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}
	cacheManager = mgr

	cfg.CacheBackend = backend
	cfg.CacheDBConnect = connStr

	return nil
}

// cacheSetupWrapper wraps cacheSetup to provide PreRunE for cache commands.
func cacheSetupWrapper(_ *cobra.Command, _ []string) error {
	return cacheSetup()
}

// cacheMigrateSetup loads minimal configuration for migrations. It does NOT
// initialize stores or create tables, allowing migrations to run on a fresh
// database.
func cacheMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("cache-backend"))
	connStr := viper.GetString("cache-db-connect")

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetCacheDBFilePath()
	}

	cfg.CacheBackend = backend
	cfg.CacheDBConnect = connStr

	return nil
}

// cacheMigrateSetupWrapper wraps cacheMigrateSetup to provide PreRunE for the migrate command.
func cacheMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return cacheMigrateSetup()
}

// cacheCmd focused on cache management.
//
// Note: Cache subcommands use minimal initialization (cacheSetup) instead of
// the full sharedSetup used by analysis commands. This avoids repo validation
// and complex config processing for simple cache operations.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the analysis result cache (improves performance)",
	Long: `Manage the result cache that speeds up repeated analyses.

Relic caches completed analyses, reports and file histories with per-class
TTLs to avoid re-reading Git history on every run.

Supported backends: memory (default), SQLite, MySQL, PostgreSQL, or none

Subcommands:
  status  - Show cache statistics and connection info
  clear   - Remove all cached data
  migrate - Run database schema migrations

Examples:
  # Check cache status
  relic cache status

  # Clear cache after major repository changes
  relic cache clear`,
}

// cacheStatusCmd shows cache status.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display cache statistics and connection details",
	Long: `Show detailed information about the result cache.

Displays per store:
- Backend type and connection status
- Total and live entry counts
- Last and oldest cache entry timestamps

Examples:
  # Check cache status
  relic cache status`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		stores := cacheManager.(*iocache.Manager).Stores()
		names := make([]string, 0, len(stores))
		for name := range stores {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			status, err := stores[name].GetStatus()
			if err != nil {
				contract.LogFatal("Failed to get cache status", err)
			}
			iocache.PrintCacheStatus(name, status)
		}
	},
}

// cacheClearCmd clears the cache.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached analysis data",
	Long: `Delete all cached analyses, reports and file histories from the
configured backend.

Use this when:
- Repository history was rewritten (rebase, force push)
- Cache may be stale or corrupted
- Testing performance without cache

Examples:
  # Clear the default cache
  relic cache clear

  # Clear a MySQL cache (set connection string via env variable)
  RELIC_CACHE_BACKEND=mysql RELIC_CACHE_DB_CONNECT="..." relic cache clear`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		for name, store := range cacheManager.(*iocache.Manager).Stores() {
			if err := store.Clear(); err != nil {
				contract.LogFatal(fmt.Sprintf("Failed to clear %s", name), err)
			}
		}
		fmt.Println("Cache cleared successfully.")
	},
}

// cacheMigrateCmd runs database migrations for the cache stores.
var cacheMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the SQL cache backends.

By default, migrates to the latest version. Use --target-version for
specific versions.

Examples:
  # Migrate to latest version (default)
  relic cache migrate

  # Migrate to specific version
  relic cache migrate --target-version 1

  # Rollback to initial state
  relic cache migrate --target-version 0`,
	PreRunE: cacheMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iocache.Migrate(cfg.CacheBackend, cfg.CacheDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
