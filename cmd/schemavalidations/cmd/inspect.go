package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/syssam/schemavalidations"
	"github.com/syssam/schemavalidations/compiler/load"
	"github.com/syssam/schemavalidations/schema"
)

func newInspectCmd(opts *options) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the rules derived for each table",
		Long: `Print the validation rules derived for each entity.

Formats:
  text    one declaration per rule, grouped by entity
  yaml    the same rules as a YAML document
  schema  the resolved entity metadata, reusable with --schema`,
		Example: `  schemavalidations inspect --dialect sqlite --dsn app.db --table users
  schemavalidations inspect --dsn "$DATABASE_URL" --format schema > schema.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entities, reg, err := prepare(cmd.Context(), opts)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			switch format {
			case "text":
				return printText(w, reg, entities)
			case "yaml":
				return printYAML(w, reg, entities)
			case "schema":
				buf, err := load.MarshalFile(entities)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(w, string(buf))
				return err
			default:
				return fmt.Errorf("invalid --format %q: use text, yaml or schema", format)
			}
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format (text, yaml, schema)")
	return cmd
}

func printText(w io.Writer, reg *schemavalidations.Registry, entities []*schema.Entity) error {
	for _, e := range entities {
		if _, err := fmt.Fprintf(w, "%s (%s)\n", e, e.TableName()); err != nil {
			return err
		}
		for _, r := range reg.Rules(e) {
			if _, err := fmt.Fprintf(w, "  %s\n", r); err != nil {
				return err
			}
		}
	}
	return nil
}

type entityDoc struct {
	Entity   string   `yaml:"entity"`
	Table    string   `yaml:"table"`
	Loaded   bool     `yaml:"loaded"`
	Declined string   `yaml:"declined,omitempty"`
	Rules    []string `yaml:"rules,omitempty"`
}

func printYAML(w io.Writer, reg *schemavalidations.Registry, entities []*schema.Entity) error {
	docs := make([]entityDoc, 0, len(entities))
	for _, e := range entities {
		d := entityDoc{Entity: e.String(), Table: e.TableName()}
		var declined *schemavalidations.DeclinedError
		if err := reg.Load(e); errors.As(err, &declined) {
			d.Declined = declined.Reason()
		}
		for _, r := range reg.Rules(e) {
			d.Rules = append(d.Rules, r.String())
		}
		d.Loaded = reg.Loaded(e)
		docs = append(docs, d)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(docs); err != nil {
		return err
	}
	return enc.Close()
}
