package schema

import (
	"fmt"
	"strings"

	entity "github.com/syssam/schemavalidations/schema"
	"github.com/syssam/schemavalidations/schema/field"
	"github.com/syssam/schemavalidations/schema/index"
)

// ValidationError represents an entity metadata problem.
type ValidationError struct {
	Entity  string
	Column  string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("%s.%s: %s", e.Entity, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Entity, e.Message)
}

// ValidationResult holds the results of metadata validation. Errors make
// derivation unreliable; warnings point at metadata that derives fewer
// rules than expected.
type ValidationResult struct {
	Errors   []*ValidationError
	Warnings []*ValidationError
}

// HasErrors returns true if there are any validation errors.
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings returns true if there are any validation warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// String returns a human-readable summary of the validation result.
func (r *ValidationResult) String() string {
	var sb strings.Builder
	if len(r.Errors) > 0 {
		sb.WriteString("Errors:\n")
		for _, e := range r.Errors {
			sb.WriteString("  - ")
			sb.WriteString(e.Error())
			sb.WriteString("\n")
		}
	}
	if len(r.Warnings) > 0 {
		sb.WriteString("Warnings:\n")
		for _, w := range r.Warnings {
			sb.WriteString("  - ")
			sb.WriteString(w.Error())
			sb.WriteString("\n")
		}
	}
	if !r.HasErrors() && !r.HasWarnings() {
		sb.WriteString("No issues found")
	}
	return sb.String()
}

func (r *ValidationResult) errorf(e *entity.Entity, column, format string, args ...any) {
	r.Errors = append(r.Errors, &ValidationError{Entity: e.Name, Column: column, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warnf(e *entity.Entity, column, format string, args ...any) {
	r.Warnings = append(r.Warnings, &ValidationError{Entity: e.Name, Column: column, Message: fmt.Sprintf(format, args...)})
}

// ValidateEntity validates the metadata of a single entity.
//
// Example:
//
//	result := schema.ValidateEntity(e)
//	if result.HasErrors() {
//	    log.Fatal("invalid metadata:", result)
//	}
func ValidateEntity(e *entity.Entity) *ValidationResult {
	result := &ValidationResult{}
	if e.Abstract || !e.TableExists {
		return result
	}

	cols := make(map[string]*field.Descriptor, len(e.Columns))
	for _, c := range e.Columns {
		if _, ok := cols[c.Name]; ok {
			result.errorf(e, c.Name, "duplicate column name")
		}
		cols[c.Name] = c

		switch {
		case !c.Type.Valid():
			result.errorf(e, c.Name, "invalid column type %d", c.Type)
		case c.Type == field.TypeDecimal && c.Scale > c.Precision:
			result.errorf(e, c.Name, "decimal scale %d exceeds precision %d", c.Scale, c.Precision)
		case c.Type == field.TypeDecimal && c.Precision == 0:
			result.warnf(e, c.Name, "decimal column without precision derives no numericality rule")
		case c.Size < 0:
			result.errorf(e, c.Name, "negative column size %d", c.Size)
		}
	}

	if _, ok := cols[e.PrimaryKey]; !ok {
		result.warnf(e, "", "primary key column %q not found", e.PrimaryKey)
	}

	idxNames := make(map[string]bool)
	for _, idx := range e.Indexes {
		if idx.StorageKey != "" {
			if idxNames[idx.StorageKey] {
				result.errorf(e, "", "duplicate index name: %s", idx.StorageKey)
			}
			idxNames[idx.StorageKey] = true
		}
		if len(idx.Columns) == 0 {
			result.errorf(e, "", "index %s has no columns", indexName(idx))
		}
		for _, col := range idx.Columns {
			if _, ok := cols[col]; !ok {
				result.errorf(e, "", "index %s references non-existent column %q", indexName(idx), col)
			}
		}
	}

	for _, a := range e.Associations {
		if _, ok := cols[a.Field]; !ok {
			result.warnf(e, a.Field, "association %q skipped: foreign key column not found", a.Name)
		}
	}
	return result
}

func indexName(idx *index.Descriptor) string {
	if idx.StorageKey != "" {
		return idx.StorageKey
	}
	return "(" + strings.Join(idx.Columns, ", ") + ")"
}

// ValidateEntities validates a set of entities and the references between
// them.
func ValidateEntities(entities []*entity.Entity) *ValidationResult {
	result := &ValidationResult{}

	names := make(map[string]bool)
	for _, e := range entities {
		if e.Name == "" {
			result.Warnings = append(result.Warnings, &ValidationError{
				Entity:  e.TableName(),
				Message: "anonymous entity derives no rules",
			})
			continue
		}
		if names[e.Name] {
			result.errorf(e, "", "duplicate entity name")
		}
		names[e.Name] = true

		r := ValidateEntity(e)
		result.Errors = append(result.Errors, r.Errors...)
		result.Warnings = append(result.Warnings, r.Warnings...)
	}

	for _, e := range entities {
		for _, a := range e.Associations {
			if a.Type != "" && !names[a.Type] {
				result.warnf(e, a.Field, "association %q references unknown entity %q", a.Name, a.Type)
			}
		}
	}
	return result
}
