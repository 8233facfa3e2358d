package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Config holds Postgres connection settings.
type Config struct {
	URL             string
	ConnectTimeout  time.Duration
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	Migrate         bool
}

// PostgresOpener returns an Opener that connects with lib/pq, verifies the
// connection, and applies pending migrations when cfg.Migrate is set.
func PostgresOpener(cfg Config) Opener {
	return func(ctx context.Context) (*sqlx.DB, error) {
		if cfg.URL == "" {
			return nil, fmt.Errorf("db connection string required")
		}
		if cfg.ConnectTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
			defer cancel()
		}

		db, err := sqlx.Open("postgres", cfg.URL)
		if err != nil {
			return nil, err
		}
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("ping: %w", err)
		}
		if cfg.Migrate {
			if err := Migrate(ctx, db); err != nil {
				_ = db.Close()
				return nil, fmt.Errorf("error whilst migrating: %w", err)
			}
		}
		return db, nil
	}
}
