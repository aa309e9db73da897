// Package field describes table columns as seen by the rule derivers.
//
// A column carries its logical datatype, nullability, default, and the
// size, precision or storage width the datatype rules are computed from:
//
//	field.String("name").Size(100).NotNull()
//	field.Decimal("price", 10, 2).NotNull()
//	field.Int("age").Bytes(2).Unsigned()
//	field.Bool("active").NotNull().Default(false)
//	field.String("slug").Unique("account_id")
//
// Integer columns derive a numericality rule bounded by the range of
// their storage width; see RangeOf.
package field
