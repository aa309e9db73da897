package derive

import (
	"slices"

	"github.com/syssam/schemavalidations/config"
	"github.com/syssam/schemavalidations/rule"
)

// Accepts reports whether a candidate rule of the given kind on field
// survives the configuration. extra holds type tags in addition to the
// kind and its macro alias, e.g. the validator name of custom rules.
//
// Every restriction is an independent rejection; the first one that
// applies decides.
func Accepts(cfg config.Config, kind rule.Kind, extra []rule.Tag, field string) bool {
	tags := make([]string, 0, 2+len(extra))
	tags = append(tags, kind.String(), kind.Macro())
	for _, t := range extra {
		tags = append(tags, string(t))
	}
	switch {
	case cfg.Only != nil && !slices.Contains(cfg.Only, field):
		return false
	case cfg.Except != nil && slices.Contains(cfg.Except, field):
		return false
	case cfg.Whitelist != nil && slices.Contains(cfg.Whitelist, field):
		return false
	case cfg.OnlyType != nil && !intersects(cfg.OnlyType, tags):
		return false
	case cfg.ExceptType != nil && intersects(cfg.ExceptType, tags):
		return false
	case cfg.WhitelistType != nil && intersects(cfg.WhitelistType, tags):
		return false
	}
	return true
}

// AcceptsRule is like Accepts for a built rule.
func AcceptsRule(cfg config.Config, r *rule.Rule) bool {
	var extra []rule.Tag
	if r.Validator != "" {
		extra = append(extra, rule.Tag(r.Validator))
	}
	return Accepts(cfg, r.Kind, extra, r.Field)
}

func intersects(a, b []string) bool {
	for _, s := range a {
		if slices.Contains(b, s) {
			return true
		}
	}
	return false
}
