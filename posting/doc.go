// Package posting implements the on-disk record codec for index tokens: it
// groups a parsed token multiset into per-leading-pair Big5 records and
// per-word Latin records, and encodes/decodes the fixed-width triples that
// make up a record's value.
//
// The codec has no notion of documents, stores, or scoring — it only knows
// how to turn token.Entry slices into byte values and back. The index
// package is the only caller; it supplies the document id and delim prefix
// and owns everything that happens once a value is written or read.
package posting
