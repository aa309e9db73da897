// Package schema describes the entities that validation rules are derived
// for: their backing table, columns, indexes and belongs-to associations.
//
// Entity metadata is normally resolved from a live database by
// dialect/sql/schema or loaded from a JSON file by compiler/load, but it
// can also be declared directly:
//
//	user := schema.New("User",
//		schema.Columns(
//			field.String("name").Size(100).NotNull(),
//			field.String("email").Size(255).NotNull(),
//			field.Bool("admin").NotNull().Default(false),
//		),
//		schema.Indexes(
//			index.Columns("email").Unique().CaseInsensitive(),
//		),
//		schema.BelongsTo(
//			edge.BelongsTo("account"),
//		),
//		mixin.Apply(mixin.Time{}, mixin.SoftDelete{}),
//	)
//
// Subtypes stored in their parent's table share the parent's rules:
//
//	admin := schema.New("Admin", schema.Inherits(user))
//
// Subtypes of an abstract parent get a table of their own.
package schema
