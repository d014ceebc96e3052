package index

import "github.com/rs/zerolog"

type config struct {
	pageSize    int
	cacheSize   int
	subcount    int
	submin      int
	submax      int
	subrangeSet bool
	readOnly    bool
	logger      zerolog.Logger
}

// Option configures Open. The zero value of config (besides the defaults
// applied in Open) matches an engine with shard routing disabled, no page
// or cache size preference, read-write, and a no-op logger.
type Option func(*config)

// WithPageSize sets the underlying store's page size (bbolt's
// Options.PageSize). Zero leaves the OS/library default.
func WithPageSize(n int) Option {
	return func(c *config) { c.pageSize = n }
}

// WithCacheSize sets the underlying store's InitialMmapSize hint, an
// approximation of how much of the index a read-heavy workload should be
// able to keep resident without repeated page faults.
func WithCacheSize(n int) Option {
	return func(c *config) { c.cacheSize = n }
}

// WithSubcount enables shard routing across n side stores. n<=0 disables
// routing (the default).
func WithSubcount(n int) Option {
	return func(c *config) { c.subcount = n }
}

// WithSubrange restricts which shards this engine instance opens, to
// [min, max]. Defaults to [0, subcount-1] when not supplied.
func WithSubrange(min, max int) Option {
	return func(c *config) { c.submin, c.submax, c.subrangeSet = min, max, true }
}

// WithLogger attaches a zerolog.Logger. The default is zerolog.Nop().
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithReadOnly opens the engine (and any shards) without write permission.
func WithReadOnly() Option {
	return func(c *config) { c.readOnly = true }
}
