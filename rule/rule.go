// Package rule describes the validation rules derived from a database schema.
//
// A Rule is a produced value: it names the kind of check, the field it
// applies to and the options the validation runtime needs to enforce it.
// Rules are not evaluated here; activation predicates are captured as
// Conditions and re-evaluated by the runtime for every record.
package rule

import (
	"fmt"
	"strings"
)

// A Kind is the category of a validation rule.
type Kind uint8

// List of rule kinds.
const (
	KindPresence Kind = iota + 1
	KindNotNil
	KindNumericality
	KindLength
	KindInclusion
	KindUniqueness
	KindCustom
)

var kindNames = map[Kind]string{
	KindPresence:     "presence",
	KindNotNil:       "not_nil",
	KindNumericality: "numericality",
	KindLength:       "length",
	KindInclusion:    "inclusion",
	KindUniqueness:   "uniqueness",
	KindCustom:       "custom",
}

// String returns the short tag of the kind.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Macro returns the macro-style alias of the kind, e.g.
// "validates_presence_of". Custom validators share "validates_with".
func (k Kind) Macro() string {
	switch k {
	case KindNotNil, KindCustom:
		return "validates_with"
	default:
		return "validates_" + k.String() + "_of"
	}
}

// ParseKind returns the kind for a short tag or its macro alias.
func ParseKind(s string) (Kind, bool) {
	s = strings.TrimPrefix(s, ":")
	if m, ok := strings.CutPrefix(s, "validates_"); ok {
		s = strings.TrimSuffix(m, "_of")
	}
	for k, name := range kindNames {
		if name == s {
			return k, true
		}
	}
	return 0, false
}

// A Tag is a symbolic category used to select rules by type.
type Tag string

// NotNilValidator is the validator name of not-nil rules.
const NotNilValidator = "NotNilValidator"

// Rule is a single validation rule.
type Rule struct {
	Kind Kind
	// Field is the public field identity of the rule. It differs from
	// Column for rules derived from associations.
	Field string
	// Column is the backing column.
	Column string
	// Validator names the custom validator of KindNotNil and KindCustom rules.
	Validator string
	Options   Options
}

// Tags returns the type tags of the rule: its kind, the kind's macro alias
// and the validator name of custom rules.
func (r *Rule) Tags() []Tag {
	tags := []Tag{Tag(r.Kind.String()), Tag(r.Kind.Macro())}
	if r.Validator != "" {
		tags = append(tags, Tag(r.Validator))
	}
	return tags
}

// String renders the rule the way it would be declared by hand, e.g.
// "validates_length_of :title, allow_nil: true, maximum: 50".
func (r *Rule) String() string {
	var b strings.Builder
	b.WriteString(r.Kind.Macro())
	if r.Validator != "" {
		b.WriteString(" " + r.Validator + ",")
	}
	b.WriteString(" :" + r.Field)
	for _, kv := range r.Options.pairs() {
		b.WriteString(", " + kv)
	}
	return b.String()
}
