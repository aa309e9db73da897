package gen

import (
	"context"
	"os"
	"path/filepath"
	"slices"

	"github.com/dave/jennifer/jen"
	"github.com/go-openapi/inflect"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/syssam/schemavalidations/rule"
	"github.com/syssam/schemavalidations/schema"
)

// Deriver returns the rules of an entity. *schemavalidations.Registry
// implements it.
type Deriver interface {
	Derive(*schema.Entity) []*rule.Rule
}

// Generator writes the rule constructors of entities.
type Generator struct {
	cfg     *Config
	deriver Deriver
}

// NewGenerator creates a new Generator.
func NewGenerator(cfg *Config, d Deriver) *Generator {
	return &Generator{cfg: cfg, deriver: d}
}

// Result describes a generation run.
type Result struct {
	// Files lists the written files, relative to the target directory.
	Files []string
	// Entities lists the entities code was generated for.
	Entities []string
	// Changed lists the entities whose rules differ from the previous
	// snapshot. It is empty when the snapshot is disabled.
	Changed []string
}

type entityRules struct {
	entity *schema.Entity
	rules  []*rule.Rule
}

// Generate derives the rules of the given entities and writes them to the
// target directory. Anonymous entities are skipped.
func (g *Generator) Generate(ctx context.Context, entities []*schema.Entity) (*Result, error) {
	if g.cfg == nil || g.cfg.Target == "" {
		return nil, NewConfigError("Target", nil, "missing target directory in config")
	}
	if err := os.MkdirAll(g.cfg.Target, 0o755); err != nil {
		return nil, NewGenerationError("", g.cfg.Target, "create output directory", err)
	}
	var (
		res   = &Result{}
		items = make([]entityRules, 0, len(entities))
	)
	for _, e := range entities {
		if e.Name == "" {
			continue
		}
		items = append(items, entityRules{entity: e, rules: g.deriver.Derive(e)})
		res.Entities = append(res.Entities, e.Name)
	}
	slices.SortFunc(items, func(a, b entityRules) int {
		switch {
		case a.entity.Name < b.entity.Name:
			return -1
		case a.entity.Name > b.entity.Name:
			return 1
		}
		return 0
	})
	slices.Sort(res.Entities)

	files := make([]string, len(items)+1)
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.cfg.Workers)
	for i, it := range items {
		files[i] = FileName(it.entity)
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return g.writeFile(it.entity.Name, g.entityFile(it), files[i])
		})
	}
	files[len(items)] = "rules.go"
	eg.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return g.writeFile("", g.indexFile(items), "rules.go")
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	res.Files = files

	if g.cfg.Snapshot {
		changed, err := g.snapshot(items)
		if err != nil {
			return nil, err
		}
		res.Changed = changed
		res.Files = append(res.Files, SnapshotFile)
	}
	return res, nil
}

// FileName returns the generated file name of e, e.g. "news_article_rules.go".
func FileName(e *schema.Entity) string {
	return inflect.Underscore(e.Name) + "_rules.go"
}

// FuncName returns the name of the rules constructor of e, e.g.
// "NewsArticleRules".
func FuncName(e *schema.Entity) string {
	return cases.Title(language.Und, cases.NoLower).String(e.Name) + "Rules"
}

func (g *Generator) newFile() *jen.File {
	f := jen.NewFile(g.cfg.Package)
	if g.cfg.Header != "" {
		f.HeaderComment(g.cfg.Header)
	}
	f.ImportName(rulePkg, "rule")
	return f
}

func (g *Generator) entityFile(it entityRules) *jen.File {
	f := g.newFile()
	name := FuncName(it.entity)
	f.Commentf("%s returns the validation rules of %s, derived from the %q table.", name, it.entity.Name, it.entity.TableName())
	f.Func().Id(name).Params().Index().Op("*").Qual(rulePkg, "Rule").Block(
		jen.Return(jen.Index().Op("*").Qual(rulePkg, "Rule").CustomFunc(jen.Options{
			Open:      "{",
			Close:     "}",
			Separator: ",",
			Multi:     true,
		}, func(grp *jen.Group) {
			for _, r := range it.rules {
				grp.Add(ruleCode(r))
			}
		})),
	)
	return f
}

func (g *Generator) indexFile(items []entityRules) *jen.File {
	f := g.newFile()
	f.Comment("Rules maps entity names to their rules constructors.")
	f.Var().Id("Rules").Op("=").Map(jen.String()).Func().Params().Index().Op("*").Qual(rulePkg, "Rule").Values(jen.DictFunc(func(d jen.Dict) {
		for _, it := range items {
			d[jen.Lit(it.entity.Name)] = jen.Id(FuncName(it.entity))
		}
	}))
	return f
}

func (g *Generator) path(name string) string {
	return filepath.Join(g.cfg.Target, name)
}
