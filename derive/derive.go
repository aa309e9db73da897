// Package derive maps column and association metadata to validation rules
// mirroring the database integrity constraints.
//
// Every candidate rule passes through Accepts; rejected candidates are
// dropped silently.
package derive

import (
	"github.com/shopspring/decimal"

	"github.com/syssam/schemavalidations/config"
	"github.com/syssam/schemavalidations/rule"
	"github.com/syssam/schemavalidations/schema"
	"github.com/syssam/schemavalidations/schema/edge"
	"github.com/syssam/schemavalidations/schema/field"
)

// Deriver derives the rules of columns and associations under a fixed
// configuration.
type Deriver struct {
	cfg config.Config
}

// New returns a Deriver for the given configuration.
func New(cfg config.Config) *Deriver {
	return &Deriver{cfg: cfg}
}

// Config returns the configuration of the deriver.
func (d *Deriver) Config() config.Config {
	return d.cfg
}

// Entity derives the rules of every content column and every belongs-to
// association of e, in that order.
func (d *Deriver) Entity(e *schema.Entity) []*rule.Rule {
	var rules []*rule.Rule
	for _, c := range e.ContentColumns() {
		rules = append(rules, d.Column(c)...)
	}
	for _, a := range e.Associations {
		rules = append(rules, d.Association(e, a)...)
	}
	return rules
}

// Column derives the rules of a single column: datatype rule first, then
// the NOT NULL rule, then the uniqueness rule.
func (d *Deriver) Column(c *field.Descriptor) []*rule.Rule {
	var candidates []*rule.Rule
	if r := datatype(c); r != nil {
		candidates = append(candidates, r)
	}
	if !c.Nullable {
		switch {
		case c.Type == field.TypeBool:
			candidates = append(candidates, rule.Boolean(c.Name))
		case c.DefaultIsBlank():
			candidates = append(candidates, rule.NotNil(c.Name))
		default:
			candidates = append(candidates, rule.Presence(c.Name))
		}
	}
	rules := d.keep(candidates)
	if c.Unique() {
		rules = append(rules, d.Uniqueness(c.Name, c)...)
	}
	return rules
}

// Association derives the rules of a belongs-to association of e. The
// rules are keyed on the association name. Associations whose foreign key
// is not a column of e are skipped.
func (d *Deriver) Association(e *schema.Entity, a *edge.Descriptor) []*rule.Rule {
	c := e.Column(a.Field)
	if c == nil {
		return nil
	}
	var rules []*rule.Rule
	if !c.Nullable {
		rules = d.keep([]*rule.Rule{rule.PresenceOf(a.Name, c.Name)})
	}
	if c.Unique() {
		rules = append(rules, d.Uniqueness(a.Name, c)...)
	}
	return rules
}

// Uniqueness builds the uniqueness rule of a unique column, exposed under
// the given field name. The scope, case sensitivity and change tracking
// come from the column.
func (d *Deriver) Uniqueness(name string, c *field.Descriptor) []*rule.Rule {
	scope := c.UniqueScope()
	return d.keep([]*rule.Rule{
		rule.Unique(name, c.Name, scope, !c.CaseInsensitiveUnique(scope)),
	})
}

func (d *Deriver) keep(candidates []*rule.Rule) []*rule.Rule {
	rules := candidates[:0]
	for _, r := range candidates {
		if AcceptsRule(d.cfg, r) {
			rules = append(rules, r)
		}
	}
	return rules
}

// datatype returns the rule restricting the column to its datatype, or nil.
// Enum-backed columns are exempt whatever their storage type.
func datatype(c *field.Descriptor) *rule.Rule {
	switch c.Type {
	case field.TypeInteger:
		rng := c.Range()
		n := rule.Numericality{OnlyInteger: true, GreaterThanOrEqualTo: &rng.Min}
		if rng.ExclusiveMax {
			n.LessThan = &rng.Max
		} else {
			n.LessThanOrEqualTo = &rng.Max
		}
		return rule.Numeric(c.Name, n)
	case field.TypeDecimal:
		if c.Precision <= 0 {
			return nil
		}
		limit := decimal.New(1, int32(c.Precision-c.Scale))
		lower := limit.Neg()
		return rule.Numeric(c.Name, rule.Numericality{GreaterThan: &lower, LessThan: &limit})
	case field.TypeFloat:
		return rule.Numeric(c.Name, rule.Numericality{})
	case field.TypeString:
		if c.Size <= 0 {
			return nil
		}
		return rule.MaxLength(c.Name, c.Size)
	case field.TypeBool, field.TypeEnum, field.TypeOther:
		return nil
	}
	return nil
}
