// Package gen generates Go code declaring the validation rules derived for
// a set of entities.
//
// # Output
//
// For every named entity the generator writes one file, <entity>_rules.go,
// holding a constructor of the entity's rules:
//
//	func ArticleRules() []*rule.Rule {
//		return []*rule.Rule{
//			rule.MaxLength("title", 50),
//			rule.Presence("title"),
//		}
//	}
//
// A rules.go file maps entity names to these constructors. Rules are
// rebuilt through the constructors of the rule package, so activation
// conditions survive code generation.
//
// # Snapshot
//
// With the snapshot enabled, the generator records the rendered rules in
// rules.msgpack next to the generated code and reports the entities whose
// rules changed since the previous run.
//
// # Usage
//
//	cfg, err := gen.NewConfig(gen.WithTarget("./internal/rules"))
//	if err != nil {
//		return err
//	}
//	res, err := gen.NewGenerator(cfg, registry).Generate(ctx, entities)
package gen
