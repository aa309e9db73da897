package gen

import (
	"errors"
	"go/token"
	"path/filepath"
	"runtime"
)

// DefaultHeader is the header comment of generated files.
const DefaultHeader = "Code generated by schemavalidations. DO NOT EDIT."

// Config holds the code generation settings.
type Config struct {
	// Target is the output directory.
	Target string
	// Package is the name of the generated package. It defaults to the
	// base name of Target.
	Package string
	// Header is the comment at the top of every generated file.
	Header string
	// Workers limits the files written in parallel.
	Workers int
	// Snapshot enables the rules.msgpack snapshot and change reporting.
	Snapshot bool
}

// Option configures code generation.
type Option func(*Config) error

// WithTarget sets the output directory.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Target", nil, "target directory cannot be empty")
		}
		c.Target = dir
		return nil
	}
}

// WithPackage sets the name of the generated package.
func WithPackage(pkg string) Option {
	return func(c *Config) error {
		if !token.IsIdentifier(pkg) {
			return NewConfigError("Package", pkg, "package must be a valid Go identifier")
		}
		c.Package = pkg
		return nil
	}
}

// WithHeader sets the file header comment.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithWorkers sets the number of files written in parallel.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n <= 0 {
			return NewConfigError("Workers", n, "workers must be positive")
		}
		c.Workers = n
		return nil
	}
}

// WithSnapshot enables or disables the rules snapshot.
func WithSnapshot(enabled bool) Option {
	return func(c *Config) error {
		c.Snapshot = enabled
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config with the given options and fills in the
// defaults. The target directory is required.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{Header: DefaultHeader, Workers: runtime.GOMAXPROCS(0)}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	if c.Target == "" {
		return nil, NewConfigError("Target", nil, "missing target directory in config")
	}
	if c.Package == "" {
		c.Package = filepath.Base(c.Target)
		if !token.IsIdentifier(c.Package) {
			return nil, NewConfigError("Package", c.Package, "target base name is not a valid package name; use WithPackage")
		}
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
