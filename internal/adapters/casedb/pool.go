// Package casedb stores case bundles in SQLite: it creates the schema store of a
// portable case, reads any case bundle read-only and verifies that a bundle is
// self-contained.
package casedb

import (
	"context"
	"fmt"

	"go.trai.ch/portable/internal/core/ports"
	"go.trai.ch/zerr"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// poolConfig holds the parameters for opening a connection pool on a case database.
type poolConfig struct {
	// Path is the case database file. It must exist unless Create is set.
	Path string

	// PoolSize is the number of connections. Defaults to 1.
	PoolSize int

	// ReadOnly opens every connection read-only with query_only set.
	ReadOnly bool

	// Create creates the database file if it does not exist.
	Create bool

	// Logger receives pool open and close messages. May be nil.
	Logger ports.Logger
}

// pool is a fixed-size pool of SQLite connections with the case pragmas applied.
// Individual connections are not safe for concurrent use.
type pool struct {
	inner  *sqlitex.Pool
	logger ports.Logger
	path   string
}

func openPool(cfg poolConfig) (*pool, error) {
	if cfg.Path == "" {
		return nil, zerr.New("case database path is required")
	}

	size := cfg.PoolSize
	if size <= 0 {
		size = 1
	}

	flags := sqlite.OpenReadWrite
	switch {
	case cfg.ReadOnly:
		flags = sqlite.OpenReadOnly
	case cfg.Create:
		flags |= sqlite.OpenCreate
	}

	inner, err := sqlitex.NewPool(cfg.Path, sqlitex.PoolOptions{
		Flags:    flags,
		PoolSize: size,
		PrepareConn: func(conn *sqlite.Conn) error {
			return prepareConnection(conn, cfg.ReadOnly)
		},
	})
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to open case database"), "path", cfg.Path)
	}

	p := &pool{inner: inner, logger: cfg.Logger, path: cfg.Path}
	p.debug(fmt.Sprintf("case database opened: %s (pool size %d)", cfg.Path, size))
	return p, nil
}

// take borrows a connection. The caller must put it back.
func (p *pool) take(ctx context.Context) (*sqlite.Conn, error) {
	conn, err := p.inner.Take(ctx)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to take case database connection"), "path", p.path)
	}
	return conn, nil
}

func (p *pool) put(conn *sqlite.Conn) {
	p.inner.Put(conn)
}

// close blocks until every borrowed connection is returned.
func (p *pool) close() error {
	if err := p.inner.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to close case database"), "path", p.path)
	}
	p.debug("case database closed: " + p.path)
	return nil
}

func (p *pool) debug(msg string) {
	if p.logger != nil {
		p.logger.Debug(msg)
	}
}

// prepareConnection applies the case pragmas. It runs once per connection, on first use.
// A case bundle is a single file, so the rollback journal is used instead of WAL.
func prepareConnection(conn *sqlite.Conn, readOnly bool) error {
	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA temp_store=MEMORY",
	}
	if readOnly {
		pragmas = append(pragmas, "PRAGMA query_only=ON")
	} else {
		pragmas = append(pragmas,
			"PRAGMA journal_mode=DELETE",
			"PRAGMA synchronous=FULL",
			"PRAGMA foreign_keys=ON",
		)
	}

	for _, pragma := range pragmas {
		if err := sqlitex.ExecuteTransient(conn, pragma, nil); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to apply pragma"), "pragma", pragma)
		}
	}
	return nil
}
