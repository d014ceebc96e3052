// Package token implements the byte-level lexical scanner that turns a mixed
// Big5/Latin byte buffer into a weighted multiset of index tokens.
//
// The scanner is a single linear pass over the input bytes. It recognizes
// three token shapes:
//
//   - Big5 bigram: four bytes, a leading double-byte character followed by a
//     trailing double-byte character.
//   - Big5 single character: a double-byte character padded with the
//     sentinel pair 0x21 0x21, used when a character does not participate in
//     a bigram (or, outside query mode, always emitted alongside the bigram).
//   - Latin word: a lowercased run of ASCII letters/digits, 2..MaxKeyLen
//     bytes long.
//
// There is no process-global scanner state; every call to Parse carries its
// own cursor, and the result is an ordered token->frequency map that callers
// consume top to bottom.
package token
