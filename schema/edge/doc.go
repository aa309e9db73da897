// Package edge describes belongs-to associations: a foreign-key column of
// an entity referencing another entity.
//
//	edge.BelongsTo("author")                     // author_id, Author
//	edge.BelongsTo("owner").Field("user_id").Type("User")
//
// Rules derived from an association are keyed on its name, not on the
// foreign-key column.
package edge
