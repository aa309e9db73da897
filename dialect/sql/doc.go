// Package sql opens database connections for schema inspection.
//
//	drv, err := sql.Open(ctx, dialect.Postgres, "postgres://localhost/app?sslmode=disable")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer drv.Close()
//
// The database/sql driver of the dialect must be registered by the caller,
// e.g. with a blank import of github.com/lib/pq, github.com/go-sql-driver/mysql
// or modernc.org/sqlite.
package sql
