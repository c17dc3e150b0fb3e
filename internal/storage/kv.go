// Package storage provides the local key-value stores the task list is
// persisted to, and the codec for the list itself.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMySQL  = "mysql"
)

var (
	// ErrUnknownBackend is returned by Open for an unsupported backend name.
	ErrUnknownBackend = errors.New("unknown store backend")

	// ErrMissingDSN is returned by Open for a mysql backend without a dsn.
	ErrMissingDSN = errors.New("mysql backend needs a dsn")
)

// KV is a string-keyed store of string values.
type KV interface {
	// Get returns the value for key. ok is false if the key was never set.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Close releases the underlying resources.
	Close() error
}

// Options selects and locates a backend.
type Options struct {
	// Backend is one of BackendFile, BackendSQLite or BackendMySQL.
	Backend string

	// Path is the file or database path for the file and sqlite backends.
	Path string

	// DSN is the data source name for the mysql backend.
	DSN string
}

// Open opens the store described by opts.
func Open(ctx context.Context, opts Options) (KV, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Backend)) {
	case "", BackendFile:
		return OpenFile(opts.Path)
	case BackendSQLite:
		return OpenSQL(ctx, DialectSQLite, opts.Path)
	case BackendMySQL:
		if opts.DSN == "" {
			return nil, ErrMissingDSN
		}
		return OpenSQL(ctx, DialectMySQL, opts.DSN)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, opts.Backend)
	}
}
