// Package mixin provides reusable sets of columns and indexes shared by
// several entities.
//
// To create a custom mixin, embed Schema and override the methods you need:
//
//	type Audit struct {
//		mixin.Schema
//	}
//
//	func (Audit) Columns() []*field.Builder {
//		return []*field.Builder{
//			field.String("created_by").Size(100),
//			field.String("updated_by").Size(100),
//		}
//	}
//
// Using mixins:
//
//	schema.New("User",
//		mixin.Apply(mixin.Time{}, Audit{}),
//		schema.Columns(field.String("name").NotNull()),
//	)
package mixin
