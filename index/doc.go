// Package index implements the inverted-index engine: insertion (parsing
// content, building postings, writing them through the shard router),
// querying (the FUZZY/PART/EXACT/NOT scoring evaluator), document-key
// bookkeeping, and engine-scoped variables.
//
// Engine composes a token.Parse -> posting.GroupEntries -> kvstore.Store
// pipeline on the way in, and the reverse plus a scoring pass on the way
// out. It owns its stores outright and is not safe for concurrent use by
// multiple goroutines without external synchronization, matching the
// single-threaded-per-instance model the reference design describes.
package index
