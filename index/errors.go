package index

import (
	"errors"

	"github.com/salvatore-campagna/hanzidx/kvstore"
)

var (
	// ErrNotFound is returned when a read-only Open targets a store file
	// that does not exist. Re-exported from kvstore so callers only ever
	// need to import this package's sentinels.
	ErrNotFound = kvstore.ErrNotFound

	// ErrReadOnly is returned by a mutating call against an engine opened
	// without write permission.
	ErrReadOnly = kvstore.ErrReadOnly

	// ErrStoreIO wraps an underlying ordered-store failure (put/get/cursor).
	ErrStoreIO = errors.New("index: store I/O error")

	// ErrCorrupt is returned by Open when the stored _deleted set fails to
	// decode. A corrupt posting value met during Query is not reported with
	// this error: it is logged and skipped.
	ErrCorrupt = errors.New("index: corrupt posting value")
)
