package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPool builds and pings a connection pool. The pool is injected into the
// repositories rather than held as package state, so tests can substitute a
// mock.
func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}
