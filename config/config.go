// Package config holds the settings controlling which validation rules are
// derived from the schema.
//
// A Config is a value. Merge returns a new Config with the given options
// applied and every other setting inherited:
//
//	cfg := config.Default().Merge(
//		config.AutoCreate(true),
//		config.Except("content"),
//		config.ExceptType("validates_length_of"),
//	)
//
// Field and type lists are nil when unrestricted. An explicitly empty list
// is a restriction: Only() with no names accepts no field at all.
package config

import "slices"

// Key names a setting. Keys are also the option names of configuration files.
type Key string

// Setting keys.
const (
	KeyAutoCreate    Key = "auto_create"
	KeyOnly          Key = "only"
	KeyExcept        Key = "except"
	KeyWhitelist     Key = "whitelist"
	KeyOnlyType      Key = "only_type"
	KeyExceptType    Key = "except_type"
	KeyWhitelistType Key = "whitelist_type"
)

// Keys lists every setting key.
var Keys = []Key{KeyAutoCreate, KeyOnly, KeyExcept, KeyWhitelist, KeyOnlyType, KeyExceptType, KeyWhitelistType}

// DefaultWhitelist lists the framework-managed timestamp fields that are
// never validated unless the whitelist is overridden.
var DefaultWhitelist = []string{"created_at", "updated_at", "created_on", "updated_on"}

// Config controls rule derivation.
type Config struct {
	// AutoCreate enables rule derivation.
	AutoCreate bool
	// Only restricts derivation to the listed fields.
	Only []string
	// Except excludes the listed fields.
	Except []string
	// Whitelist excludes the listed fields independently of Except.
	Whitelist []string
	// OnlyType restricts derivation to rules carrying one of the tags.
	OnlyType []string
	// ExceptType excludes rules carrying one of the tags.
	ExceptType []string
	// WhitelistType excludes rules carrying one of the tags independently
	// of ExceptType.
	WhitelistType []string
}

// New returns the documented defaults.
func New() Config {
	return Config{
		AutoCreate: true,
		Whitelist:  slices.Clone(DefaultWhitelist),
	}
}

// Option overrides a setting.
type Option func(*Config)

// AutoCreate sets whether rules are derived.
func AutoCreate(v bool) Option {
	return func(c *Config) { c.AutoCreate = v }
}

// Only sets the field allow-list.
func Only(fields ...string) Option {
	return func(c *Config) { c.Only = list(fields) }
}

// Except sets the field deny-list.
func Except(fields ...string) Option {
	return func(c *Config) { c.Except = list(fields) }
}

// Whitelist replaces the set of always-excluded fields. Whitelist() with no
// fields validates the default timestamp fields too.
func Whitelist(fields ...string) Option {
	return func(c *Config) { c.Whitelist = list(fields) }
}

// OnlyType sets the rule-type allow-list. Types are short tags such as
// "presence" or macro aliases such as "validates_presence_of".
func OnlyType(tags ...string) Option {
	return func(c *Config) { c.OnlyType = list(tags) }
}

// ExceptType sets the rule-type deny-list.
func ExceptType(tags ...string) Option {
	return func(c *Config) { c.ExceptType = list(tags) }
}

// WhitelistType sets the always-excluded rule types.
func WhitelistType(tags ...string) Option {
	return func(c *Config) { c.WhitelistType = list(tags) }
}

// Unset removes the restriction of the given list settings. For
// KeyAutoCreate it restores the default (true).
func Unset(keys ...Key) Option {
	return func(c *Config) {
		for _, k := range keys {
			if k == KeyAutoCreate {
				c.AutoCreate = true
				continue
			}
			if p := c.list(k); p != nil {
				*p = nil
			}
		}
	}
}

// Merge returns a copy of c with the options applied. Settings not touched
// by any option keep their value.
func (c Config) Merge(opts ...Option) Config {
	m := c.Clone()
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Clone returns a deep copy of c.
func (c Config) Clone() Config {
	return Config{
		AutoCreate:    c.AutoCreate,
		Only:          slices.Clone(c.Only),
		Except:        slices.Clone(c.Except),
		Whitelist:     slices.Clone(c.Whitelist),
		OnlyType:      slices.Clone(c.OnlyType),
		ExceptType:    slices.Clone(c.ExceptType),
		WhitelistType: slices.Clone(c.WhitelistType),
	}
}

// Get returns the list setting for k, or nil for unknown keys and
// KeyAutoCreate.
func (c Config) Get(k Key) []string {
	if p := c.list(k); p != nil {
		return *p
	}
	return nil
}

func (c *Config) list(k Key) *[]string {
	switch k {
	case KeyOnly:
		return &c.Only
	case KeyExcept:
		return &c.Except
	case KeyWhitelist:
		return &c.Whitelist
	case KeyOnlyType:
		return &c.OnlyType
	case KeyExceptType:
		return &c.ExceptType
	case KeyWhitelistType:
		return &c.WhitelistType
	}
	return nil
}

// list keeps explicit empty lists distinct from nil.
func list(v []string) []string {
	if v == nil {
		return []string{}
	}
	return slices.Clone(v)
}
