package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/syssam/schemavalidations/compiler/gen"
)

// settle is how long a watched file must stay quiet before regenerating.
const settle = 100 * time.Millisecond

type genOptions struct {
	out      string
	pkg      string
	header   string
	snapshot bool
	watch    bool
}

func newGenCmd(opts *options) *cobra.Command {
	gopts := &genOptions{}
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate Go code declaring the derived rules",
		Long: `Generate one Go file per entity declaring its validation rules, plus a
rules.go file indexing them by entity name.

With --watch, the configuration and schema files are watched and the code
is regenerated whenever they change.`,
		Example: `  schemavalidations gen --schema schema.json --out ./internal/rules
  schemavalidations gen --schema schema.json --config rules.yaml --out ./internal/rules --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var genOpts []gen.Option
			genOpts = append(genOpts, gen.WithTarget(gopts.out), gen.WithSnapshot(gopts.snapshot))
			if gopts.pkg != "" {
				genOpts = append(genOpts, gen.WithPackage(gopts.pkg))
			}
			if gopts.header != "" {
				genOpts = append(genOpts, gen.WithHeader(gopts.header))
			}
			cfg, err := gen.NewConfig(genOpts...)
			if err != nil {
				return err
			}
			if err := generate(cmd.Context(), opts, cfg); err != nil {
				return err
			}
			if !gopts.watch {
				return nil
			}
			return watch(cmd.Context(), opts, cfg)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&gopts.out, "out", "o", "", "output directory")
	f.StringVar(&gopts.pkg, "package", "", "generated package name (default: base name of --out)")
	f.StringVar(&gopts.header, "header", "", "header comment of generated files")
	f.BoolVar(&gopts.snapshot, "snapshot", true, "record rules in "+gen.SnapshotFile+" and report changes")
	f.BoolVarP(&gopts.watch, "watch", "w", false, "regenerate when the configuration or schema file changes")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func generate(ctx context.Context, opts *options, cfg *gen.Config) error {
	start := time.Now()
	entities, reg, err := prepare(ctx, opts)
	if err != nil {
		return err
	}
	res, err := gen.NewGenerator(cfg, reg).Generate(ctx, entities)
	if err != nil {
		return err
	}
	slog.Info("schemavalidations: generated",
		"target", cfg.Target,
		"entities", len(res.Entities),
		"files", len(res.Files),
		"elapsed", time.Since(start),
	)
	for _, name := range res.Changed {
		slog.Info("schemavalidations: rules changed", "entity", name)
	}
	return nil
}

// watch regenerates whenever the configuration or schema file changes,
// until ctx is done. Parent directories are watched so that editors
// replacing files on save are noticed.
func watch(ctx context.Context, opts *options, cfg *gen.Config) error {
	files := make(map[string]bool)
	for _, f := range []string{opts.configFile, opts.schemaFile} {
		if f != "" {
			files[filepath.Clean(f)] = true
		}
	}
	if len(files) == 0 {
		return errors.New("--watch requires --config or --schema")
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()
	for f := range files {
		if err := w.Add(filepath.Dir(f)); err != nil {
			return fmt.Errorf("watch %s: %w", f, err)
		}
	}
	slog.Info("schemavalidations: watching for changes")

	timer := time.NewTimer(settle)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if files[filepath.Clean(ev.Name)] && (ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)) {
				timer.Reset(settle)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Error("schemavalidations: watcher", "error", err)
		case <-timer.C:
			if err := generate(ctx, opts, cfg); err != nil {
				slog.Error("schemavalidations: regenerate", "error", err)
			}
		}
	}
}
