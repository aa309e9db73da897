package rule

// Record is the view of a record that activation conditions are evaluated
// against by the validation runtime.
type Record interface {
	// Present reports whether the field holds a non-blank value.
	Present(field string) bool
	// Changed reports whether the field changed since the record was
	// loaded or last saved.
	Changed(field string) bool
}

// Condition decides per record whether a rule applies.
type Condition func(Record) bool

// ScopeChanged returns the activation condition of uniqueness rules: every
// scope field is present and the column changed.
func ScopeChanged(column string, scope []string) Condition {
	scope = append([]string(nil), scope...)
	return func(r Record) bool {
		for _, s := range scope {
			if !r.Present(s) {
				return false
			}
		}
		return r.Changed(column)
	}
}

// RecordFunc adapts a pair of functions to the Record interface.
type RecordFunc struct {
	PresentFunc func(string) bool
	ChangedFunc func(string) bool
}

// Present calls PresentFunc.
func (r RecordFunc) Present(field string) bool { return r.PresentFunc(field) }

// Changed calls ChangedFunc.
func (r RecordFunc) Changed(field string) bool { return r.ChangedFunc(field) }
