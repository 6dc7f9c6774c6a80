package iocache

import (
	"database/sql"
	"fmt"
	"regexp"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3"    // SQLite driver

	"github.com/relicdev/relic/internal/contract"
	"github.com/relicdev/relic/schema"
)

// SQLStore is a keyed TTL store on top of a SQL backend. Expiry is lazy: an
// expired row is deleted when a read touches it, so the table stays bounded
// without a background sweeper.
type SQLStore struct {
	db        *sql.DB
	tableName string
	backend   schema.DatabaseBackend
}

var _ contract.Store = &SQLStore{} // Compile-time check

var tableNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// NewSQLStore initializes a store for the given backend and ensures its
// table exists.
func NewSQLStore(tableName string, backend schema.DatabaseBackend, connStr string) (*SQLStore, error) {
	// Validate table name to prevent SQL injection
	if !tableNamePattern.MatchString(tableName) {
		return nil, fmt.Errorf("invalid table name: %s (must match pattern ^[a-zA-Z_][a-zA-Z0-9_]*$)", tableName)
	}

	var db *sql.DB
	var err error

	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetCacheDBFilePath()
		}
		db, err = sql.Open("sqlite3", dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite cache at %q: %w. Ensure the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		// connStr should be:
		// user:password@tcp(host:port)/dbname
		db, err = sql.Open("mysql", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MySQL cache: %w. Check connection format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		// connStr should be:
		// host=localhost port=5432 user=postgres password=mysecretpassword dbname=postgres
		db, err = sql.Open("pgx", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL cache: %w. Check connection format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	default:
		return nil, fmt.Errorf("unsupported SQL cache backend: %s", backend)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database. Check that the server is running and connection parameters are valid: %w", backend, err)
	}

	store := &SQLStore{db: db, tableName: tableName, backend: backend}
	if _, err := db.Exec(store.createTableQuery()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", tableName, err)
	}
	return store, nil
}

// createTableQuery returns the CREATE TABLE query for the backend.
func (s *SQLStore) createTableQuery() string {
	table := s.quotedTable()
	switch s.backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				cache_key VARCHAR(255) PRIMARY KEY,
				cache_value BLOB NOT NULL,
				cache_created BIGINT NOT NULL,
				cache_expires BIGINT NOT NULL
			);
		`, table)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				cache_key TEXT PRIMARY KEY,
				cache_value BYTEA NOT NULL,
				cache_created BIGINT NOT NULL,
				cache_expires BIGINT NOT NULL
			);
		`, table)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				cache_key TEXT PRIMARY KEY,
				cache_value BLOB NOT NULL,
				cache_created INTEGER NOT NULL,
				cache_expires INTEGER NOT NULL
			);
		`, table)
	}
}

// Get retrieves a live value by key. An expired row is deleted on touch and
// reads as a miss.
func (s *SQLStore) Get(key string) ([]byte, error) {
	var value []byte
	var expires int64

	query := fmt.Sprintf(`SELECT cache_value, cache_expires FROM %s WHERE cache_key = %s`,
		s.quotedTable(), s.placeholder(1))
	if err := s.db.QueryRow(query, key).Scan(&value, &expires); err != nil {
		return nil, err
	}
	if time.Now().Unix() >= expires {
		_ = s.Delete(key)
		return nil, sql.ErrNoRows
	}
	return value, nil
}

// Set inserts or replaces a key with the given TTL.
func (s *SQLStore) Set(key string, value []byte, ttl time.Duration) error {
	now := time.Now()
	_, err := s.db.Exec(s.upsertQuery(), key, value, now.Unix(), now.Add(ttl).Unix())
	return err
}

// Delete removes a key. Missing keys are not an error.
func (s *SQLStore) Delete(key string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE cache_key = %s`, s.quotedTable(), s.placeholder(1))
	_, err := s.db.Exec(query, key)
	return err
}

// Clear removes every entry from the store.
func (s *SQLStore) Clear() error {
	query := fmt.Sprintf(`DELETE FROM %s`, s.quotedTable())
	_, err := s.db.Exec(query)
	return err
}

// upsertQuery returns the UPSERT query for the backend.
func (s *SQLStore) upsertQuery() string {
	table := s.quotedTable()
	switch s.backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (cache_key, cache_value, cache_created, cache_expires) VALUES (?, ?, ?, ?) AS new
			ON DUPLICATE KEY UPDATE cache_value = new.cache_value, cache_created = new.cache_created, cache_expires = new.cache_expires`, table)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (cache_key, cache_value, cache_created, cache_expires) VALUES ($1, $2, $3, $4)
			ON CONFLICT (cache_key) DO UPDATE SET cache_value = EXCLUDED.cache_value, cache_created = EXCLUDED.cache_created, cache_expires = EXCLUDED.cache_expires`, table)

	default: // SQLite
		return fmt.Sprintf(`INSERT OR REPLACE INTO %s (cache_key, cache_value, cache_created, cache_expires) VALUES (?, ?, ?, ?)`, table)
	}
}

// placeholder returns the n-th parameter placeholder for the backend.
func (s *SQLStore) placeholder(n int) string {
	if s.backend == schema.PostgreSQLBackend {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// quotedTable returns the properly quoted table name for the backend.
func (s *SQLStore) quotedTable() string {
	if s.backend == schema.MySQLBackend {
		return fmt.Sprintf("`%s`", s.tableName)
	}
	return fmt.Sprintf("%q", s.tableName)
}

// Close closes the underlying DB connection.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// GetStatus returns status information about the store.
func (s *SQLStore) GetStatus() (schema.CacheStatus, error) {
	status := schema.CacheStatus{
		Backend:   string(s.backend),
		Connected: s.db.Ping() == nil,
	}
	if !status.Connected {
		return status, nil
	}
	table := s.quotedTable()

	row := s.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", table))
	if err := row.Scan(&status.TotalEntries); err != nil {
		return status, fmt.Errorf("failed to get total entries: %w", err)
	}
	if status.TotalEntries == 0 {
		return status, nil
	}

	liveQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE cache_expires > %s", table, s.placeholder(1))
	row = s.db.QueryRow(liveQuery, time.Now().Unix())
	if err := row.Scan(&status.LiveEntries); err != nil {
		return status, fmt.Errorf("failed to get live entries: %w", err)
	}

	var oldest, last int64
	row = s.db.QueryRow(fmt.Sprintf("SELECT MIN(cache_created), MAX(cache_created) FROM %s", table))
	if err := row.Scan(&oldest, &last); err != nil {
		return status, fmt.Errorf("failed to get entry times: %w", err)
	}
	status.OldestEntryTime = time.Unix(oldest, 0)
	status.LastEntryTime = time.Unix(last, 0)

	return status, nil
}
