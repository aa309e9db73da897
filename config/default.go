package config

import "sync"

var (
	defaultMu  sync.RWMutex
	defaultCfg *Config
)

// Default returns a copy of the process-wide configuration, created with
// the documented defaults on first access.
func Default() Config {
	defaultMu.RLock()
	if defaultCfg != nil {
		defer defaultMu.RUnlock()
		return defaultCfg.Clone()
	}
	defaultMu.RUnlock()
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultCfg == nil {
		c := New()
		defaultCfg = &c
	}
	return defaultCfg.Clone()
}

// Setup yields the process-wide configuration for modification. It is the
// only way to change it and is meant to run once at start-up, before any
// entity derives rules:
//
//	config.Setup(func(c *config.Config) {
//		c.AutoCreate = false
//	})
func Setup(fn func(*Config)) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultCfg == nil {
		c := New()
		defaultCfg = &c
	}
	fn(defaultCfg)
}

// ResetDefault drops the process-wide configuration; the next access
// recreates the documented defaults.
func ResetDefault() {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultCfg = nil
}
