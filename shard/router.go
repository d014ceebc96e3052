package shard

import (
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/salvatore-campagna/hanzidx/kvstore"
)

// Router owns the sibling shard stores for one engine and decides which
// store a given token key belongs to.
type Router struct {
	stores   map[int]kvstore.Store
	subcount int
	submin   int
	submax   int
	disabled bool
	logger   zerolog.Logger
}

// NewRouter opens shard stores `basePath.<i>` for i in [submin, submax].
//
// subcount <= 0 disables routing entirely: every token stays in the
// primary store. submax >= subcount also disables routing entirely — a
// deliberate wraparound guard, never a modulus against a zero or
// out-of-range divisor.
func NewRouter(basePath string, subcount, submin, submax int, storeOpts kvstore.Options) (*Router, error) {
	if subcount <= 0 {
		return &Router{disabled: true, logger: storeOpts.Logger}, nil
	}
	if submax >= subcount {
		storeOpts.Logger.Debug().Int("subcount", subcount).Int("submax", submax).
			Msg("shard: submax >= subcount, routing disabled")
		return &Router{disabled: true, subcount: subcount, logger: storeOpts.Logger}, nil
	}
	if submin < 0 {
		submin = 0
	}

	stores := make(map[int]kvstore.Store, submax-submin+1)
	for i := submin; i <= submax; i++ {
		path := fmt.Sprintf("%s.%d", basePath, i)
		store, err := kvstore.Open(path, storeOpts)
		if err != nil {
			for _, s := range stores {
				s.Close()
			}
			return nil, fmt.Errorf("shard: open shard %d at %s: %w", i, path, err)
		}
		stores[i] = store
	}

	return &Router{
		stores:   stores,
		subcount: subcount,
		submin:   submin,
		submax:   submax,
		logger:   storeOpts.Logger,
	}, nil
}

// Disabled reports whether routing is inactive (subcount<=0, or the
// submax>=subcount wraparound guard tripped).
func (r *Router) Disabled() bool {
	return r.disabled
}

// RouteFor returns the shard store key belongs in, keyed by
// key[1] mod subcount. ok is false when routing is disabled (caller should
// use the primary store) or when the computed shard index falls outside
// [submin, submax] (caller should drop the token).
func (r *Router) RouteFor(key []byte) (store kvstore.Store, ok bool) {
	if r.disabled || len(key) < 2 {
		return nil, false
	}
	idx := int(key[1]) % r.subcount
	if idx < r.submin || idx > r.submax {
		return nil, false
	}
	store, ok = r.stores[idx]
	return store, ok
}

// Sync syncs every open shard store. The shards are independent files, so
// this fans out one goroutine per shard via errgroup and waits for all of
// them, rather than syncing the (potentially many) shard files one at a
// time; the public API stays a single blocking call.
func (r *Router) Sync() error {
	var g errgroup.Group
	for i, s := range r.stores {
		i, s := i, s
		g.Go(func() error {
			if err := s.Sync(); err != nil {
				return fmt.Errorf("shard: sync shard %d: %w", i, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// Close closes every open shard store in parallel, returning the first
// error encountered. Every shard is closed even if one fails.
func (r *Router) Close() error {
	var g errgroup.Group
	for i, s := range r.stores {
		i, s := i, s
		g.Go(func() error {
			if err := s.Close(); err != nil {
				return fmt.Errorf("shard: close shard %d: %w", i, err)
			}
			return nil
		})
	}
	return g.Wait()
}
