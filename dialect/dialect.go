package dialect

import "slices"

// Dialect names for external usage. They are also the database/sql driver
// names registered by the drivers the command line tool imports.
const (
	MySQL    = "mysql"
	SQLite   = "sqlite"
	Postgres = "postgres"
)

// Supported lists the supported dialects.
var Supported = []string{MySQL, SQLite, Postgres}

// Valid reports whether name is a supported dialect.
func Valid(name string) bool {
	return slices.Contains(Supported, name)
}
