// Package bitset implements the in-memory deleted-document-id set the index
// engine keeps alongside the on-disk `_deleted` key.
//
// The on-disk shape is fixed by the engine's data model: a flat
// concatenation of 4-byte big-endian document ids. Scanning that blob
// linearly on every query would be wasteful once an index has accumulated
// many deletions, so Set holds the same ids in a two-level container
// structure adapted from a Roaring-bitmap design: ids are split on their
// high 16 bits into buckets, each bucket starting as a sorted array and
// converting to a fixed bitmap once it grows dense enough that the bitmap
// is smaller. Set.Encode/DecodeSet convert to and from the flat on-disk
// shape; nothing else needs to know the in-memory representation exists.
package bitset
