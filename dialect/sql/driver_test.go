package sql

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/syssam/schemavalidations/dialect"
)

func TestOpen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	_, err := Open(ctx, "oracle", "")
	require.ErrorIs(t, err, ErrUnsupportedDialect)

	drv, err := Open(ctx, dialect.SQLite, "file:open_test?mode=memory")
	require.NoError(t, err)
	defer drv.Close()
	assert.Equal(t, dialect.SQLite, drv.Dialect())
	require.NoError(t, drv.Ping(ctx))
}

func TestDriver_Ping(t *testing.T) {
	t.Parallel()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	drv := OpenDB(dialect.Postgres, db)
	mock.ExpectPing()
	require.NoError(t, drv.Ping(context.Background()))

	mock.ExpectPing().WillReturnError(assert.AnError)
	err = drv.Ping(context.Background())
	require.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "dialect/sql: ping postgres")
	require.NoError(t, mock.ExpectationsWereMet())
}
