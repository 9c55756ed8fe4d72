// Package config holds the small set of tunables the reducer, project I/O,
// and text buffer need, built with functional options in the idiom of the
// teacher's StateStoreOption pattern (pkg/state/store.go's WithMaxHistory,
// WithShardCount, ...).
package config

import "time"

// Config collects the process-wide tunables spec §4.F/§4.G/§4.H reference
// as "configurable" without pinning a constant.
type Config struct {
	// GestureDuration is the window (spec §4.F, §4.I) during which
	// consecutive actions are kept open in the same gesture rather than
	// force-committed. Default 500ms.
	GestureDuration time.Duration
	// MaxHistory bounds the number of gesture records the reducer keeps;
	// 0 means unbounded. Default 0.
	MaxHistory int
	// SubscriptionCleanupInterval is a configurable interval. No package
	// reads it: the component tree runs no periodic sweep of listener
	// lists. Default 30s.
	SubscriptionCleanupInterval time.Duration
	// TabWidth is the column width of a tab stop used by the text
	// buffer's Coords conversion and indentation operations. Default 4.
	TabWidth int
	// MaxRecentProjects bounds the preferences recent-paths FIFO (spec
	// §4.G, §6). Default 10.
	MaxRecentProjects int
}

// Option configures a Config built by New.
type Option func(*Config)

// WithGestureDuration overrides the gesture-coalescing window.
func WithGestureDuration(d time.Duration) Option {
	return func(c *Config) { c.GestureDuration = d }
}

// WithMaxHistory bounds the number of retained history records.
func WithMaxHistory(n int) Option {
	return func(c *Config) { c.MaxHistory = n }
}

// WithSubscriptionCleanupInterval overrides the listener sweep interval.
func WithSubscriptionCleanupInterval(d time.Duration) Option {
	return func(c *Config) { c.SubscriptionCleanupInterval = d }
}

// WithTabWidth overrides the text buffer's tab stop width.
func WithTabWidth(n int) Option {
	return func(c *Config) { c.TabWidth = n }
}

// WithMaxRecentProjects bounds the preferences recent-paths list.
func WithMaxRecentProjects(n int) Option {
	return func(c *Config) { c.MaxRecentProjects = n }
}

// New builds a Config from sane defaults, applying opts in order.
func New(opts ...Option) Config {
	c := Config{
		GestureDuration:             500 * time.Millisecond,
		MaxHistory:                  0,
		SubscriptionCleanupInterval: 30 * time.Second,
		TabWidth:                    4,
		MaxRecentProjects:           10,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
