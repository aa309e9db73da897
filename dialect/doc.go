// Package dialect names the database dialects whose schemas can be
// inspected.
//
// # Supported Dialects
//
//   - Postgres: PostgreSQL database
//   - MySQL: MySQL/MariaDB database
//   - SQLite: SQLite database
//
// # Dialect Constants
//
//	dialect.Postgres = "postgres"
//	dialect.MySQL    = "mysql"
//	dialect.SQLite   = "sqlite"
//
// # Sub-packages
//
//   - dialect/sql: opening and checking database connections
//   - dialect/sql/schema: schema inspection and metadata validation
package dialect
