package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)

// Dialect describes the SQL differences between the supported drivers.
type Dialect struct {
	Driver string
	Create string
	Upsert string
}

var (
	// DialectSQLite stores keys in a local sqlite database file.
	DialectSQLite = Dialect{
		Driver: "sqlite",
		Create: `CREATE TABLE IF NOT EXISTS kv_store (
    store_key TEXT PRIMARY KEY,
    store_value TEXT NOT NULL
)`,
		Upsert: `INSERT INTO kv_store (store_key, store_value) VALUES (?, ?)
ON CONFLICT(store_key) DO UPDATE SET store_value = excluded.store_value`,
	}

	// DialectMySQL stores keys in a MySQL table.
	DialectMySQL = Dialect{
		Driver: "mysql",
		Create: `CREATE TABLE IF NOT EXISTS kv_store (
    store_key VARCHAR(255) PRIMARY KEY,
    store_value LONGTEXT NOT NULL
)`,
		Upsert: `INSERT INTO kv_store (store_key, store_value) VALUES (?, ?)
ON DUPLICATE KEY UPDATE store_value = VALUES(store_value)`,
	}
)

// SQLKV is a KV over a database/sql table.
type SQLKV struct {
	db      *sql.DB
	dialect Dialect
}

// OpenSQL connects using dialect and dsn and creates the table if needed.
// For sqlite the dsn is a file path; its directory is created.
func OpenSQL(ctx context.Context, dialect Dialect, dsn string) (*SQLKV, error) {
	if dsn == "" {
		return nil, fmt.Errorf("%s store needs a path or dsn", dialect.Driver)
	}
	if dialect.Driver == DialectSQLite.Driver {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o700); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open(dialect.Driver, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect %s: %w", dialect.Driver, err)
	}
	s := &SQLKV{db: db, dialect: dialect}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLKV) migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.Create); err != nil {
		return fmt.Errorf("create kv table: %w", err)
	}
	return nil
}

// Get implements KV.
func (s *SQLKV) Get(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT store_value FROM kv_store WHERE store_key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

// Set implements KV.
func (s *SQLKV) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, s.dialect.Upsert, key, value)
	return err
}

// Close implements KV.
func (s *SQLKV) Close() error { return s.db.Close() }
