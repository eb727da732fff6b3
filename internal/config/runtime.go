package config

import "sync/atomic"

// Runtime hands out the currently active configuration to request handlers.
// The held Config is treated as immutable: a reload swaps in a whole new
// snapshot, so a handler that grabbed Current keeps a consistent view for
// the rest of its request.
type Runtime struct {
	v atomic.Pointer[Config]
}

// NewRuntime creates a Runtime serving cfg.
func NewRuntime(cfg *Config) *Runtime {
	r := &Runtime{}
	r.v.Store(cfg)
	return r
}

// Current returns the active configuration snapshot. Callers must not modify it.
func (r *Runtime) Current() *Config {
	return r.v.Load()
}

// Replace swaps in a new configuration snapshot. In-flight requests keep the
// snapshot they already loaded.
func (r *Runtime) Replace(cfg *Config) {
	r.v.Store(cfg)
}
