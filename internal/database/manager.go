// Package database owns the process-wide Postgres handle.
//
// A Manager is constructed once in main and passed to every repository. The
// first Acquire opens the connection; callers that arrive while that attempt
// is running wait on the same attempt instead of dialing again. A failed
// attempt is forgotten so the next Acquire retries from scratch. Once opened,
// the handle is cached for the life of the process.
//
//	mgr := database.NewManager(database.PostgresOpener(cfg), logger)
//	defer mgr.Close()
//
//	db, err := mgr.Acquire(ctx)
//	if errors.Is(err, domain.ErrConnectionUnavailable) {
//	    // store unreachable, safe to retry
//	}
package database

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/singleflight"

	"devevents/internal/domain"
)

// Opener establishes a new database handle. It must honor ctx.
type Opener func(ctx context.Context) (*sqlx.DB, error)

// Acquirer hands out the shared database handle.
type Acquirer interface {
	Acquire(ctx context.Context) (*sqlx.DB, error)
}

const connectKey = "connect"

// Manager lazily establishes and caches a single shared *sqlx.DB.
type Manager struct {
	open   Opener
	logger *slog.Logger

	group singleflight.Group

	mu  sync.RWMutex
	db  *sqlx.DB
	gen uint64 // bumped by Close; attempts started earlier must not cache
}

// NewManager returns a Manager that uses open to establish the connection.
func NewManager(open Opener, logger *slog.Logger) *Manager {
	return &Manager{open: open, logger: logger}
}

// Acquire returns the shared handle, establishing it on first use.
// Establishment failures wrap domain.ErrConnectionUnavailable.
func (m *Manager) Acquire(ctx context.Context) (*sqlx.DB, error) {
	if db := m.cached(); db != nil {
		return db, nil
	}

	// The attempt outlives any single caller: one waiter giving up must not
	// fail the attempt for the others.
	attemptCtx := context.WithoutCancel(ctx)
	ch := m.group.DoChan(connectKey, func() (any, error) {
		m.mu.RLock()
		db, gen := m.db, m.gen
		m.mu.RUnlock()
		if db != nil {
			return db, nil
		}
		m.logger.InfoContext(attemptCtx, "connecting to database")
		db, err := m.open(attemptCtx)
		if err != nil {
			m.logger.WarnContext(attemptCtx, "database connection failed", "err", err)
			return nil, fmt.Errorf("%w: %w", domain.ErrConnectionUnavailable, err)
		}
		m.mu.Lock()
		if m.gen != gen {
			m.mu.Unlock()
			_ = db.Close()
			return nil, fmt.Errorf("%w: manager closed while connecting", domain.ErrConnectionUnavailable)
		}
		m.db = db
		m.mu.Unlock()
		m.logger.InfoContext(attemptCtx, "database connected")
		return db, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*sqlx.DB), nil
	}
}

// Close closes the cached handle, if any. An attempt still in flight fails
// and closes its handle. A later Acquire reconnects.
func (m *Manager) Close() error {
	m.mu.Lock()
	db := m.db
	m.db = nil
	m.gen++
	m.mu.Unlock()
	if db == nil {
		return nil
	}
	return db.Close()
}

// Ping acquires the handle and verifies the server answers.
func (m *Manager) Ping(ctx context.Context) error {
	db, err := m.Acquire(ctx)
	if err != nil {
		return err
	}
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrConnectionUnavailable, err)
	}
	return nil
}

func (m *Manager) cached() *sqlx.DB {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.db
}
