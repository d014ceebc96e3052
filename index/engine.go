package index

import (
	"encoding/binary"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/salvatore-campagna/hanzidx/bitset"
	"github.com/salvatore-campagna/hanzidx/kvstore"
	"github.com/salvatore-campagna/hanzidx/shard"
)

// Reserved meta keys. None carries the "-" prefix SetVar/GetVar always add
// to a caller-supplied name, so a caller variable can never collide with
// one of these.
var (
	idxcountKey = []byte("_idxcount")
	subcountKey = []byte("_subcount")
	deletedKey  = []byte("_deleted")
)

// delim is the policy-free 4-byte seed the engine prepends to every posting
// value it writes. It carries no meaning of its own; four spaces matches
// the reference design.
var delim = [4]byte{' ', ' ', ' ', ' '}

// Engine is the inverted-index engine: one primary store, an optional
// shard router, and the small set of scalars (_idxcount, _subcount,
// _deleted) that track its state.
type Engine struct {
	primary  kvstore.Store
	router   *shard.Router
	idxcount uint32
	deleted  *bitset.Set
	readOnly bool
	logger   zerolog.Logger
}

// Open opens (or creates, unless WithReadOnly is given) the engine at path,
// plus any shard stores its subcount/subrange options call for.
func Open(path string, opts ...Option) (*Engine, error) {
	cfg := config{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	storeOpts := kvstore.Options{
		ReadOnly:        cfg.readOnly,
		PageSize:        cfg.pageSize,
		InitialMmapSize: cfg.cacheSize,
		Logger:          cfg.logger,
	}

	primary, err := kvstore.Open(path, storeOpts)
	if err != nil {
		return nil, err
	}

	idxcount, err := loadOrInitCounter(primary, idxcountKey, cfg.readOnly)
	if err != nil {
		primary.Close()
		return nil, fmt.Errorf("index: open %s: %w", path, err)
	}

	subcount, err := loadOrInitSubcount(primary, cfg)
	if err != nil {
		primary.Close()
		return nil, fmt.Errorf("index: open %s: %w", path, err)
	}

	submin, submax := cfg.submin, cfg.submax
	if !cfg.subrangeSet {
		submin, submax = 0, subcount-1
	}

	deleted, err := loadDeletedSet(primary)
	if err != nil {
		primary.Close()
		return nil, fmt.Errorf("index: open %s: %w", path, err)
	}

	router, err := shard.NewRouter(path, subcount, submin, submax, storeOpts)
	if err != nil {
		primary.Close()
		return nil, fmt.Errorf("index: open shards for %s: %w", path, err)
	}

	e := &Engine{
		primary:  primary,
		router:   router,
		idxcount: idxcount,
		deleted:  deleted,
		readOnly: cfg.readOnly,
		logger:   cfg.logger,
	}
	e.logger.Debug().Str("path", path).Uint32("idxcount", idxcount).Int("subcount", subcount).
		Msg("index: engine opened")
	return e, nil
}

func loadOrInitCounter(store kvstore.Store, key []byte, readOnly bool) (uint32, error) {
	raw, ok, err := store.GetMeta(key)
	if err != nil {
		return 0, err
	}
	if ok && len(raw) == 4 {
		return binary.BigEndian.Uint32(raw), nil
	}
	if !readOnly {
		if err := store.SetMeta(key, encodeUint32(0)); err != nil {
			return 0, err
		}
	}
	return 0, nil
}

func loadOrInitSubcount(store kvstore.Store, cfg config) (int, error) {
	raw, ok, err := store.GetMeta(subcountKey)
	if err != nil {
		return 0, err
	}
	if ok && len(raw) == 4 {
		return int(binary.BigEndian.Uint32(raw)), nil
	}
	if !cfg.readOnly {
		if err := store.SetMeta(subcountKey, encodeUint32(uint32(cfg.subcount))); err != nil {
			return 0, err
		}
	}
	return cfg.subcount, nil
}

func loadDeletedSet(store kvstore.Store) (*bitset.Set, error) {
	raw, ok, err := store.GetMeta(deletedKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return bitset.New(), nil
	}
	set, err := bitset.DecodeSet(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return set, nil
}

func encodeUint32(v uint32) []byte {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, v)
	return buf
}

func idKey(id uint32) []byte {
	return append([]byte{'!'}, encodeUint32(id)...)
}

// storeFor returns the store key should be written to or read from, and
// whether the token should be processed at all. When routing is disabled,
// every key goes to the primary store. When routing is active, a key
// outside the configured shard range is dropped (ok=false) rather than
// falling back to the primary.
func (e *Engine) storeFor(key []byte) (kvstore.Store, bool) {
	if e.router.Disabled() {
		return e.primary, true
	}
	return e.router.RouteFor(key)
}

// IdxCount reports the last assigned document id. An insert that fails
// after allocating its id still counts.
func (e *Engine) IdxCount() uint32 {
	return e.idxcount
}

// SetVar stores a caller-defined variable under "-name".
func (e *Engine) SetVar(name string, value []byte) error {
	if e.readOnly {
		return ErrReadOnly
	}
	if err := e.primary.SetMeta(append([]byte{'-'}, name...), value); err != nil {
		return fmt.Errorf("index: set var %q: %w: %w", name, ErrStoreIO, err)
	}
	return nil
}

// GetVar reads a caller-defined variable stored under "-name".
func (e *Engine) GetVar(name string) ([]byte, bool, error) {
	v, ok, err := e.primary.GetMeta(append([]byte{'-'}, name...))
	if err != nil {
		return nil, false, fmt.Errorf("index: get var %q: %w: %w", name, ErrStoreIO, err)
	}
	return v, ok, nil
}

// Sync flushes the primary store and every open shard store to disk.
func (e *Engine) Sync() error {
	if err := e.primary.Sync(); err != nil {
		return fmt.Errorf("index: sync primary: %w", err)
	}
	if !e.router.Disabled() {
		if err := e.router.Sync(); err != nil {
			return err
		}
	}
	return nil
}

// Close syncs (unless the engine is read-only) and then closes the primary
// store and every open shard store. Every store is closed even if a sync
// fails; the first error is returned.
func (e *Engine) Close() error {
	var firstErr error
	if !e.readOnly {
		firstErr = e.Sync()
	}
	if !e.router.Disabled() {
		if err := e.router.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if err := e.primary.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("index: close primary: %w", err)
	}
	return firstErr
}
