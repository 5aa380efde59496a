package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Options tunes the connection pool. Zero values leave the pgxpool
// default in place for MaxConns and fall back to conservative idle
// and lifetime limits.
type Options struct {
	MaxConns     int32
	ConnIdleTime time.Duration
	ConnLifetime time.Duration
}

func applyOptions(cfg *pgxpool.Config, opts Options) {
	if opts.MaxConns > 0 {
		cfg.MaxConns = opts.MaxConns
	}
	cfg.MaxConnIdleTime = opts.ConnIdleTime
	if opts.ConnIdleTime <= 0 {
		cfg.MaxConnIdleTime = 5 * time.Minute
	}
	cfg.MaxConnLifetime = opts.ConnLifetime
	if opts.ConnLifetime <= 0 {
		cfg.MaxConnLifetime = 30 * time.Minute
	}
}

// Connect opens a pgx connection pool and verifies connectivity with a ping.
func Connect(ctx context.Context, dsn string, opts Options) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	applyOptions(cfg, opts)

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}
