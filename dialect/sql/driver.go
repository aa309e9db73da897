package sql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/syssam/schemavalidations/dialect"
)

// ErrUnsupportedDialect is returned for dialects with no schema inspector.
var ErrUnsupportedDialect = errors.New("dialect/sql: unsupported dialect")

// Driver is a database handle tagged with its dialect.
type Driver struct {
	*sql.DB
	dialect string
}

// Open opens a database for the dialect and checks that it is reachable.
func Open(ctx context.Context, name, source string) (*Driver, error) {
	if !dialect.Valid(name) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDialect, name)
	}
	db, err := sql.Open(name, source)
	if err != nil {
		return nil, fmt.Errorf("dialect/sql: open %s: %w", name, err)
	}
	drv := OpenDB(name, db)
	if err := drv.Ping(ctx); err != nil {
		return nil, errors.Join(err, db.Close())
	}
	return drv, nil
}

// OpenDB wraps the given database/sql.DB with a Driver.
func OpenDB(name string, db *sql.DB) *Driver {
	return &Driver{DB: db, dialect: name}
}

// Dialect returns the dialect name of the driver.
func (d *Driver) Dialect() string {
	return d.dialect
}

// Ping verifies the connection to the database.
func (d *Driver) Ping(ctx context.Context) error {
	if err := d.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("dialect/sql: ping %s: %w", d.dialect, err)
	}
	return nil
}
