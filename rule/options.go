package rule

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Options holds the rule-specific options. Only the section matching the
// rule kind is set.
type Options struct {
	// AllowNil skips the rule when the value is nil.
	AllowNil bool
	// Message is the error message key reported by the runtime.
	Message string

	Numericality *Numericality
	Length       *Length
	Inclusion    *Inclusion
	Uniqueness   *Uniqueness

	// If gates the rule per record. A nil If means the rule always applies.
	If Condition
}

// Numericality bounds a numeric value. Nil bounds are not checked.
type Numericality struct {
	OnlyInteger          bool
	GreaterThan          *decimal.Decimal
	GreaterThanOrEqualTo *decimal.Decimal
	LessThan             *decimal.Decimal
	LessThanOrEqualTo    *decimal.Decimal
}

// Allows reports whether v satisfies the numericality options.
func (n *Numericality) Allows(v decimal.Decimal) bool {
	switch {
	case n.OnlyInteger && !v.IsInteger():
		return false
	case n.GreaterThan != nil && !v.GreaterThan(*n.GreaterThan):
		return false
	case n.GreaterThanOrEqualTo != nil && !v.GreaterThanOrEqual(*n.GreaterThanOrEqualTo):
		return false
	case n.LessThan != nil && !v.LessThan(*n.LessThan):
		return false
	case n.LessThanOrEqualTo != nil && !v.LessThanOrEqual(*n.LessThanOrEqualTo):
		return false
	}
	return true
}

// Length limits the length of a textual value.
type Length struct {
	Maximum int
}

// Allows reports whether s is within the length limit, counted in characters.
func (l *Length) Allows(s string) bool {
	return utf8.RuneCountInString(s) <= l.Maximum
}

// Inclusion restricts a value to a fixed set.
type Inclusion struct {
	In []any
}

// Includes reports whether v is one of the allowed values.
func (i *Inclusion) Includes(v any) bool {
	for _, x := range i.In {
		if x == v {
			return true
		}
	}
	return false
}

// Uniqueness describes a uniqueness check against stored records.
type Uniqueness struct {
	// Scope lists the sibling columns of the composite unique index.
	Scope []string
	// CaseSensitive is nil unless the backing index is known to compare
	// values ignoring case, in which case it points to false.
	CaseSensitive *bool
}

// Bound parses a decimal bound, and panics if s is not a number.
func Bound(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func (o Options) pairs() []string {
	var kv []string
	if o.AllowNil {
		kv = append(kv, "allow_nil: true")
	}
	if n := o.Numericality; n != nil {
		if n.OnlyInteger {
			kv = append(kv, "only_integer: true")
		}
		for _, b := range []struct {
			name string
			v    *decimal.Decimal
		}{
			{"greater_than", n.GreaterThan},
			{"greater_than_or_equal_to", n.GreaterThanOrEqualTo},
			{"less_than", n.LessThan},
			{"less_than_or_equal_to", n.LessThanOrEqualTo},
		} {
			if b.v != nil {
				kv = append(kv, b.name+": "+b.v.String())
			}
		}
	}
	if o.Length != nil {
		kv = append(kv, fmt.Sprintf("maximum: %d", o.Length.Maximum))
	}
	if o.Inclusion != nil {
		kv = append(kv, fmt.Sprintf("in: %v", o.Inclusion.In))
	}
	if u := o.Uniqueness; u != nil {
		if len(u.Scope) > 0 {
			kv = append(kv, "scope: ["+strings.Join(u.Scope, ", ")+"]")
		}
		if u.CaseSensitive != nil {
			kv = append(kv, fmt.Sprintf("case_sensitive: %t", *u.CaseSensitive))
		}
	}
	if o.Message != "" {
		kv = append(kv, "message: :"+o.Message)
	}
	if o.If != nil {
		kv = append(kv, "if: <condition>")
	}
	return kv
}
