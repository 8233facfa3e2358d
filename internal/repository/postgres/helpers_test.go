package postgres

import (
	"context"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"devevents/internal/domain"
)

// staticConn hands out a fixed handle, or fails every acquisition.
type staticConn struct {
	db  *sqlx.DB
	err error
}

func (c staticConn) Acquire(context.Context) (*sqlx.DB, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.db, nil
}

func newMockConn(t *testing.T) (staticConn, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return staticConn{db: sqlx.NewDb(db, "sqlmock")}, mock
}

func unavailableConn() staticConn {
	return staticConn{err: fmt.Errorf("%w: dial tcp: connection refused", domain.ErrConnectionUnavailable)}
}
