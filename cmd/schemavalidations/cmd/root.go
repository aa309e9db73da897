// Package cmd implements the schemavalidations command line tool.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/syssam/schemavalidations/dialect"
)

// options holds the flags shared by every command.
type options struct {
	logLevel   string
	logFormat  string
	configFile string
	dialect    string
	dsn        string
	schemaFile string
	tables     []string
}

// Execute runs the root command until it completes or the process is
// interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCmd().ExecuteContext(ctx)
}

// NewRootCmd returns the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "schemavalidations",
		Short: "Derive validation rules from database schema metadata",
		Long: `schemavalidations reads the columns, indexes and foreign keys of database
tables and derives the validation rules mirroring their constraints:
presence, numeric ranges, lengths, inclusion and scoped uniqueness.

Metadata is read from a live database (--dialect, --dsn) or from a schema
file written by "inspect --format schema" (--schema).`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(cmd.ErrOrStderr(), opts.logFormat, opts.logLevel)
			if err != nil {
				return err
			}
			slog.SetDefault(logger)
			return nil
		},
	}
	f := root.PersistentFlags()
	f.StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	f.StringVar(&opts.logFormat, "log-format", "text", "log format (text, json)")
	f.StringVar(&opts.configFile, "config", "", "YAML configuration file")
	f.StringVar(&opts.dialect, "dialect", dialect.Postgres, "database dialect ("+strings.Join(dialect.Supported, ", ")+")")
	f.StringVar(&opts.dsn, "dsn", "", "database connection string")
	f.StringVar(&opts.schemaFile, "schema", "", "schema file to read instead of a database")
	f.StringSliceVar(&opts.tables, "table", nil, "tables to process (default: all)")

	root.AddCommand(newInspectCmd(opts), newGenCmd(opts))
	return root
}

func newLogger(w io.Writer, format, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	ho := &slog.HandlerOptions{Level: lvl}
	switch format {
	case "text":
		return slog.New(slog.NewTextHandler(w, ho)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, ho)), nil
	default:
		return nil, fmt.Errorf("invalid --log-format %q: use text or json", format)
	}
}
