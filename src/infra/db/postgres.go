package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"bureporting/src/infra/config"
	"bureporting/src/infra/logger"
)

// Postgres owns the connection pool used by every unit of work.
type Postgres struct {
	Pool *Pool[*pgx.Conn]
	log  *slog.Logger
}

// NewConnFactory returns a factory that opens one pgx connection per call
// using the configured server address, credentials and database name.
func NewConnFactory(cfg config.DatabaseConfig, log *slog.Logger) (Factory[*pgx.Conn], error) {
	connCfg, err := pgx.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	connCfg.ConnectTimeout = cfg.ConnectTimeout

	return func(ctx context.Context) (*pgx.Conn, error) {
		conn, err := pgx.ConnectConfig(ctx, connCfg.Copy())
		if err != nil {
			log.Error("failed to create a new database connection",
				"host", cfg.Host,
				"database", cfg.Name,
				"error", err,
			)
			return nil, err
		}
		return conn, nil
	}, nil
}

// New builds the pool and fills it. An unreachable database does not fail
// startup; the pool starts smaller and connects on demand.
func New(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (*Postgres, error) {
	poolLog := logger.WithComponent(log, "db.pool")

	factory, err := NewConnFactory(cfg, poolLog)
	if err != nil {
		return nil, err
	}

	pool := NewPool(factory, PoolOptions{
		Size:           cfg.PoolSize,
		AcquireTimeout: cfg.AcquireTimeout,
		Log:            poolLog,
	})

	if n := pool.Initialize(ctx); n == 0 {
		log.Warn("database pool started without connections",
			"host", cfg.Host,
			"database", cfg.Name,
		)
	} else {
		log.Info("database connection established",
			"host", cfg.Host,
			"port", cfg.Port,
			"database", cfg.Name,
			"connections", n,
		)
	}

	return &Postgres{
		Pool: pool,
		log:  log,
	}, nil
}

// Close tears the pool down.
// Call this during graceful shutdown.
func (p *Postgres) Close() {
	if p.Pool != nil {
		ctx, cancel := context.WithTimeout(context.Background(), p.Pool.acquireTimeout)
		defer cancel()
		p.Pool.Close(ctx)
		p.log.Info("database connection closed")
	}
}

// Stats exposes pool counters for health reporting.
func (p *Postgres) Stats() Stats {
	return p.Pool.Stats()
}
