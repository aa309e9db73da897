package schemavalidations

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/syssam/schemavalidations/config"
	"github.com/syssam/schemavalidations/derive"
	"github.com/syssam/schemavalidations/rule"
	"github.com/syssam/schemavalidations/schema"
)

// Registry derives and records the rules of entities. It owns the
// per-entity configuration and load state, keyed by entity identity.
// Each entity derives its rules at most once until Reset, even when
// several goroutines trigger derivation concurrently.
type Registry struct {
	mu     sync.Mutex
	states map[*schema.Entity]*entityState
	logger *slog.Logger
}

type entityState struct {
	mu     sync.Mutex
	cfg    *config.Config
	loaded bool
	rules  []*rule.Rule
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger receiving a debug record per accepted rule.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) { r.logger = l }
}

// NewRegistry returns an empty Registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{states: make(map[*schema.Entity]*entityState)}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

func (r *Registry) state(e *schema.Entity) *entityState {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.states[e]
	if !ok {
		s = &entityState{}
		r.states[e] = s
	}
	return s
}

// Configure overrides the configuration of e. The options are merged onto
// the process-wide default with auto_create implied true, so an entity can
// opt in while derivation is disabled globally. It has no effect on rules
// already derived until Reset.
func (r *Registry) Configure(e *schema.Entity, opts ...config.Option) {
	cfg := config.Default().Merge(append([]config.Option{config.AutoCreate(true)}, opts...)...)
	s := r.state(e)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = &cfg
}

// Config returns the configuration of e. An entity never configured takes
// a copy of the process-wide default on first access.
func (r *Registry) Config(e *schema.Entity) config.Config {
	s := r.state(e)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config().Clone()
}

func (s *entityState) config() *config.Config {
	if s.cfg == nil {
		cfg := config.Default()
		s.cfg = &cfg
	}
	return s.cfg
}

// Derive derives the rules of e and returns them. It returns the rules
// already recorded, without deriving again, when e was derived before,
// when e shares the table of an already derived parent, or when
// derivation is declined: auto_create is off, e is abstract or anonymous,
// or its table does not exist.
func (r *Registry) Derive(e *schema.Entity) []*rule.Rule {
	if rules, ok := r.inherited(e); ok {
		return rules
	}
	s := r.state(e)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded || s.declined(e) != nil {
		return slices.Clone(s.rules)
	}
	rules := derive.New(*s.config()).Entity(e)
	for _, rl := range rules {
		r.logger.Debug("schemavalidations: rule", "entity", e.Name, "rule", rl.String())
	}
	s.rules = rules
	s.loaded = true
	return slices.Clone(rules)
}

// Load derives the rules of e like Derive, and returns a *DeclinedError
// when derivation is declined.
//
//	if err := reg.Load(e); schemavalidations.IsDeclined(err) {
//		log.Println(err)
//	}
func (r *Registry) Load(e *schema.Entity) error {
	if _, ok := r.inherited(e); ok {
		return nil
	}
	r.Derive(e)
	s := r.state(e)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return nil
	}
	return s.declined(e)
}

// declined returns why e derives no rules, or nil.
func (s *entityState) declined(e *schema.Entity) error {
	switch {
	case e.Name == "":
		return NewDeclinedError(e.TableName(), ReasonAnonymous)
	case e.Abstract:
		return NewDeclinedError(e.Name, ReasonAbstract)
	case !s.config().AutoCreate:
		return NewDeclinedError(e.Name, ReasonAutoCreateOff)
	case !e.TableExists:
		return NewDeclinedError(e.Name, ReasonNoTable)
	}
	return nil
}

// inherited returns the rules of the nearest derived ancestor that e
// shares its table with.
func (r *Registry) inherited(e *schema.Entity) ([]*rule.Rule, bool) {
	for p := e; p.SharesTable(); p = p.Parent {
		s := r.state(p.Parent)
		s.mu.Lock()
		loaded, rules := s.loaded, s.rules
		s.mu.Unlock()
		if loaded {
			return slices.Clone(rules), true
		}
	}
	return nil, false
}

// Loaded reports whether rules were derived for e, directly or through a
// parent sharing its table.
func (r *Registry) Loaded(e *schema.Entity) bool {
	if _, ok := r.inherited(e); ok {
		return true
	}
	s := r.state(e)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Rules returns the rules of e, deriving them first if needed.
func (r *Registry) Rules(e *schema.Entity) []*rule.Rule {
	return r.Derive(e)
}

// RulesOn returns the rules of e applying to the given field.
func (r *Registry) RulesOn(e *schema.Entity, field string) []*rule.Rule {
	var on []*rule.Rule
	for _, rl := range r.Derive(e) {
		if rl.Field == field {
			on = append(on, rl)
		}
	}
	return on
}

// Kinds returns the distinct kinds of the rules of e, in order of first
// appearance.
func (r *Registry) Kinds(e *schema.Entity) []rule.Kind {
	var kinds []rule.Kind
	for _, rl := range r.Derive(e) {
		if !slices.Contains(kinds, rl.Kind) {
			kinds = append(kinds, rl.Kind)
		}
	}
	return kinds
}

// Reset forgets the rules and load state of e so the next Derive runs
// again. The configuration of e is kept.
func (r *Registry) Reset(e *schema.Entity) {
	s := r.state(e)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = false
	s.rules = nil
}

// ResetAll forgets every entity, configuration included.
func (r *Registry) ResetAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = make(map[*schema.Entity]*entityState)
}
