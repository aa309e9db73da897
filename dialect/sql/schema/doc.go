// Package schema resolves entity metadata from a live database schema
// using Atlas inspectors, and checks that the resolved metadata is
// consistent before rules are derived from it.
package schema
