package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// File is a parsed configuration file:
//
//	default:
//	  auto_create: true
//	  whitelist: [created_at, updated_at]
//	entities:
//	  Review:
//	    except: content
//	    except_type: validates_length_of
//
// List options take a single name or a sequence of names. A null value
// removes the restriction.
type File struct {
	Default  []Option
	Entities map[string][]Option
}

type rawFile struct {
	Default  map[string]yaml.Node            `yaml:"default"`
	Entities map[string]map[string]yaml.Node `yaml:"entities"`
}

// LoadFile reads and parses the configuration file at path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schemavalidations: reading config: %w", err)
	}
	return ParseFile(data)
}

// ParseFile parses a YAML configuration file.
func ParseFile(data []byte) (*File, error) {
	var raw rawFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("schemavalidations: parsing config: %w", err)
	}
	f := &File{Entities: make(map[string][]Option, len(raw.Entities))}
	var err error
	if f.Default, err = parseOptions("", raw.Default); err != nil {
		return nil, err
	}
	for name, opts := range raw.Entities {
		if f.Entities[name], err = parseOptions(name, opts); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Setup applies the default section to the process-wide configuration.
func (f *File) Setup() {
	Setup(func(c *Config) {
		*c = c.Merge(f.Default...)
	})
}

// EntityNames returns the names of the configured entities, sorted.
func (f *File) EntityNames() []string {
	names := make([]string, 0, len(f.Entities))
	for name := range f.Entities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func parseOptions(entity string, raw map[string]yaml.Node) ([]Option, error) {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	// Deterministic order; options touch disjoint settings.
	sort.Strings(keys)
	opts := make([]Option, 0, len(raw))
	for _, k := range keys {
		node := raw[k]
		opt, err := parseOption(Key(k), &node)
		if err != nil {
			err.Entity = entity
			return nil, err
		}
		opts = append(opts, opt)
	}
	return opts, nil
}

func parseOption(k Key, node *yaml.Node) (Option, *Error) {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		switch k {
		case KeyAutoCreate, KeyOnly, KeyExcept, KeyWhitelist, KeyOnlyType, KeyExceptType, KeyWhitelistType:
			return Unset(k), nil
		}
		return nil, &Error{Option: string(k), Message: "unknown option"}
	}
	if k == KeyAutoCreate {
		var v bool
		if err := node.Decode(&v); err != nil {
			return nil, &Error{Option: string(k), Value: node.Value, Message: "expected a boolean"}
		}
		return AutoCreate(v), nil
	}
	names, err := decodeNames(node)
	if err != nil {
		return nil, &Error{Option: string(k), Message: err.Error()}
	}
	switch k {
	case KeyOnly:
		return Only(names...), nil
	case KeyExcept:
		return Except(names...), nil
	case KeyWhitelist:
		return Whitelist(names...), nil
	case KeyOnlyType:
		return OnlyType(names...), nil
	case KeyExceptType:
		return ExceptType(names...), nil
	case KeyWhitelistType:
		return WhitelistType(names...), nil
	}
	return nil, &Error{Option: string(k), Message: "unknown option"}
}

// decodeNames accepts a scalar or a sequence of scalars. Names may be
// written with a leading colon.
func decodeNames(node *yaml.Node) ([]string, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		return []string{strings.TrimPrefix(node.Value, ":")}, nil
	case yaml.SequenceNode:
		names := make([]string, 0, len(node.Content))
		for _, n := range node.Content {
			if n.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("expected a name, got %s", kindName(n.Kind))
			}
			names = append(names, strings.TrimPrefix(n.Value, ":"))
		}
		return names, nil
	default:
		return nil, fmt.Errorf("expected a name or a list of names, got %s", kindName(node.Kind))
	}
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.AliasNode:
		return "alias"
	default:
		return "scalar"
	}
}
