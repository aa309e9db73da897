package rule

// Presence returns a rule rejecting nil and blank values.
func Presence(field string) *Rule {
	return &Rule{Kind: KindPresence, Field: field, Column: field}
}

// PresenceOf returns a presence rule for a field backed by another column,
// e.g. an association backed by its foreign key.
func PresenceOf(field, column string) *Rule {
	return &Rule{Kind: KindPresence, Field: field, Column: column}
}

// NotNil returns a rule rejecting nil values only. Blank values such as the
// empty string are accepted.
func NotNil(field string) *Rule {
	return &Rule{
		Kind:      KindNotNil,
		Field:     field,
		Column:    field,
		Validator: NotNilValidator,
		Options:   Options{Message: "blank"},
	}
}

// Numeric returns a numericality rule that allows nil.
func Numeric(field string, n Numericality) *Rule {
	return &Rule{
		Kind:    KindNumericality,
		Field:   field,
		Column:  field,
		Options: Options{AllowNil: true, Numericality: &n},
	}
}

// MaxLength returns a length rule that allows nil.
func MaxLength(field string, maximum int) *Rule {
	return &Rule{
		Kind:    KindLength,
		Field:   field,
		Column:  field,
		Options: Options{AllowNil: true, Length: &Length{Maximum: maximum}},
	}
}

// InclusionIn returns an inclusion rule reporting message on failure.
func InclusionIn(field string, message string, in ...any) *Rule {
	return &Rule{
		Kind:    KindInclusion,
		Field:   field,
		Column:  field,
		Options: Options{Message: message, Inclusion: &Inclusion{In: in}},
	}
}

// Boolean returns the inclusion rule of NOT NULL boolean columns.
func Boolean(field string) *Rule {
	return InclusionIn(field, "blank", true, false)
}

// Unique returns a uniqueness rule on field, backed by column. It allows nil
// and applies only when every scope field is present and the column changed.
func Unique(field, column string, scope []string, caseSensitive bool) *Rule {
	u := &Uniqueness{Scope: append([]string(nil), scope...)}
	if !caseSensitive {
		u.CaseSensitive = new(bool)
	}
	return &Rule{
		Kind:   KindUniqueness,
		Field:  field,
		Column: column,
		Options: Options{
			AllowNil:   true,
			Uniqueness: u,
			If:         ScopeChanged(column, scope),
		},
	}
}
