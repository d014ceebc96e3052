// Package shard implements horizontal routing of postings across sibling
// stores: a token is assigned to shard `token_bytes[1] mod subcount`, and
// only shards within a configured [submin, submax] range are opened by any
// one process. This lets a very large index be sliced across processes,
// each sharing the same primary store but covering a different shard
// range.
package shard
