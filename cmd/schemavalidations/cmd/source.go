package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/syssam/schemavalidations"
	"github.com/syssam/schemavalidations/compiler/load"
	"github.com/syssam/schemavalidations/config"
	"github.com/syssam/schemavalidations/dialect/sql"
	sqlschema "github.com/syssam/schemavalidations/dialect/sql/schema"
	"github.com/syssam/schemavalidations/schema"
)

// loadEntities reads entity metadata from the schema file or the database.
func loadEntities(ctx context.Context, opts *options) ([]*schema.Entity, error) {
	switch {
	case opts.schemaFile != "":
		entities, err := load.LoadFile(opts.schemaFile)
		if err != nil {
			return nil, err
		}
		if len(opts.tables) == 0 {
			return entities, nil
		}
		return slices.DeleteFunc(entities, func(e *schema.Entity) bool {
			return !slices.Contains(opts.tables, e.TableName())
		}), nil
	case opts.dsn != "":
		drv, err := sql.Open(ctx, opts.dialect, opts.dsn)
		if err != nil {
			return nil, err
		}
		defer drv.Close()
		insp, err := sqlschema.NewInspector(drv)
		if err != nil {
			return nil, err
		}
		return insp.Entities(ctx, opts.tables...)
	default:
		return nil, errors.New("one of --dsn or --schema is required")
	}
}

// loadConfig resets the process-wide configuration and applies the
// default section of the configuration file, if any.
func loadConfig(opts *options) (*config.File, error) {
	config.ResetDefault()
	if opts.configFile == "" {
		return &config.File{}, nil
	}
	f, err := config.LoadFile(opts.configFile)
	if err != nil {
		return nil, err
	}
	f.Setup()
	return f, nil
}

// newRegistry returns a registry with the per-entity sections of f applied.
func newRegistry(f *config.File, entities []*schema.Entity) *schemavalidations.Registry {
	reg := schemavalidations.NewRegistry(schemavalidations.WithLogger(slog.Default()))
	known := make(map[string]bool, len(entities))
	for _, e := range entities {
		known[e.Name] = true
		if opts, ok := f.Entities[e.Name]; ok {
			reg.Configure(e, opts...)
		}
	}
	for _, name := range f.EntityNames() {
		if !known[name] {
			slog.Warn("schemavalidations: configured entity not found", "entity", name)
		}
	}
	return reg
}

// validate logs metadata warnings and fails on metadata errors.
func validate(entities []*schema.Entity) error {
	res := sqlschema.ValidateEntities(entities)
	for _, w := range res.Warnings {
		slog.Warn("schemavalidations: metadata", "entity", w.Entity, "column", w.Column, "message", w.Message)
	}
	if res.HasErrors() {
		return fmt.Errorf("invalid schema metadata:\n%s", res)
	}
	return nil
}

// prepare loads configuration and entities, and validates the entities.
func prepare(ctx context.Context, opts *options) ([]*schema.Entity, *schemavalidations.Registry, error) {
	f, err := loadConfig(opts)
	if err != nil {
		return nil, nil, err
	}
	entities, err := loadEntities(ctx, opts)
	if err != nil {
		return nil, nil, err
	}
	if err := validate(entities); err != nil {
		return nil, nil, err
	}
	return entities, newRegistry(f, entities), nil
}
