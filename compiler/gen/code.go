package gen

import (
	"fmt"
	"slices"

	"github.com/dave/jennifer/jen"
	"github.com/shopspring/decimal"

	"github.com/syssam/schemavalidations/rule"
)

const rulePkg = "github.com/syssam/schemavalidations/rule"

// ruleCode returns the constructor call rebuilding r.
func ruleCode(r *rule.Rule) jen.Code {
	field := jen.Lit(r.Field)
	switch o := r.Options; r.Kind {
	case rule.KindPresence:
		if r.Column != "" && r.Column != r.Field {
			return jen.Qual(rulePkg, "PresenceOf").Call(field, jen.Lit(r.Column))
		}
		return jen.Qual(rulePkg, "Presence").Call(field)
	case rule.KindNotNil:
		return jen.Qual(rulePkg, "NotNil").Call(field)
	case rule.KindNumericality:
		return jen.Qual(rulePkg, "Numeric").Call(field, numericalityCode(o.Numericality))
	case rule.KindLength:
		if o.Length != nil {
			return jen.Qual(rulePkg, "MaxLength").Call(field, jen.Lit(o.Length.Maximum))
		}
	case rule.KindInclusion:
		if o.Inclusion == nil {
			break
		}
		if o.Message == "blank" && slices.Equal(o.Inclusion.In, []any{true, false}) {
			return jen.Qual(rulePkg, "Boolean").Call(field)
		}
		args := []jen.Code{field, jen.Lit(o.Message)}
		for _, v := range o.Inclusion.In {
			args = append(args, literal(v))
		}
		return jen.Qual(rulePkg, "InclusionIn").Call(args...)
	case rule.KindUniqueness:
		if o.Uniqueness == nil {
			break
		}
		scope := jen.Nil()
		if len(o.Uniqueness.Scope) > 0 {
			scope = jen.Index().String().ValuesFunc(func(g *jen.Group) {
				for _, s := range o.Uniqueness.Scope {
					g.Lit(s)
				}
			})
		}
		caseSensitive := o.Uniqueness.CaseSensitive == nil || *o.Uniqueness.CaseSensitive
		return jen.Qual(rulePkg, "Unique").Call(field, jen.Lit(r.Column), scope, jen.Lit(caseSensitive))
	}
	return structCode(r)
}

// structCode spells r out as a composite literal. It is used for rules no
// constructor produces, such as custom validators.
func structCode(r *rule.Rule) jen.Code {
	d := jen.Dict{
		jen.Id("Kind"):  jen.Qual(rulePkg, kindIdent(r.Kind)),
		jen.Id("Field"): jen.Lit(r.Field),
	}
	if r.Column != "" {
		d[jen.Id("Column")] = jen.Lit(r.Column)
	}
	if r.Validator != "" {
		d[jen.Id("Validator")] = jen.Lit(r.Validator)
	}
	opts := jen.Dict{}
	if r.Options.AllowNil {
		opts[jen.Id("AllowNil")] = jen.True()
	}
	if r.Options.Message != "" {
		opts[jen.Id("Message")] = jen.Lit(r.Options.Message)
	}
	if len(opts) > 0 {
		d[jen.Id("Options")] = jen.Qual(rulePkg, "Options").Values(opts)
	}
	return jen.Op("&").Qual(rulePkg, "Rule").Values(d)
}

func numericalityCode(n *rule.Numericality) jen.Code {
	d := jen.Dict{}
	if n == nil {
		return jen.Qual(rulePkg, "Numericality").Values(d)
	}
	if n.OnlyInteger {
		d[jen.Id("OnlyInteger")] = jen.True()
	}
	for name, b := range map[string]*decimal.Decimal{
		"GreaterThan":          n.GreaterThan,
		"GreaterThanOrEqualTo": n.GreaterThanOrEqualTo,
		"LessThan":             n.LessThan,
		"LessThanOrEqualTo":    n.LessThanOrEqualTo,
	} {
		if b != nil {
			d[jen.Id(name)] = jen.Qual(rulePkg, "Bound").Call(jen.Lit(b.String()))
		}
	}
	return jen.Qual(rulePkg, "Numericality").Values(d)
}

func kindIdent(k rule.Kind) string {
	switch k {
	case rule.KindPresence:
		return "KindPresence"
	case rule.KindNotNil:
		return "KindNotNil"
	case rule.KindNumericality:
		return "KindNumericality"
	case rule.KindLength:
		return "KindLength"
	case rule.KindInclusion:
		return "KindInclusion"
	case rule.KindUniqueness:
		return "KindUniqueness"
	default:
		return "KindCustom"
	}
}

// literal returns the Go literal of an inclusion value. Values without a
// literal form are rendered as strings.
func literal(v any) jen.Code {
	switch v := v.(type) {
	case bool, string, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return jen.Lit(v)
	case nil:
		return jen.Nil()
	default:
		return jen.Lit(fmt.Sprint(v))
	}
}
