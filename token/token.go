package token

import "sort"

// MaxKeyLen is the maximum length, in bytes, of a Latin word token.
const MaxKeyLen = 32

// Threshold bytes used by the Big5 scanner. These are the exact comparison
// points named by the scanner's state machine, not a general "valid Big5
// range" check: a lead byte candidate only needs to clear 0xA0, but a second
// pair continuing a bigram chain is held to the tighter 0xA3 so a
// low-range trailing pair isn't mistaken for a new lead.
const (
	big5LeadThreshold  = 0xA0
	big5TrailThreshold = 0xA3
	singlePad          = 0x21 // '!' — pairs with itself to form the ASCII "!!" sentinel trailer.
)

// Entry is one (token, frequency) pair, in the ascending bytewise token
// order the rest of the pipeline (posting.GroupEntries, index.Engine) depends on.
type Entry struct {
	Token []byte
	Freq  int
}

// TokenSet accumulates token frequencies during a single Parse call.
type TokenSet struct {
	freq map[string]int
}

func newTokenSet() *TokenSet {
	return &TokenSet{freq: make(map[string]int)}
}

func (ts *TokenSet) add(tok []byte) {
	ts.freq[string(tok)]++
}

func (ts *TokenSet) addBigram(lead, trail [2]byte) {
	ts.add([]byte{lead[0], lead[1], trail[0], trail[1]})
}

func (ts *TokenSet) addSingle(pair [2]byte) {
	ts.add([]byte{pair[0], pair[1], singlePad, singlePad})
}

func (ts *TokenSet) addWord(word []byte) {
	ts.add(word)
}

// Len reports how many distinct tokens were observed.
func (ts *TokenSet) Len() int {
	return len(ts.freq)
}

// Entries returns the accumulated tokens in ascending bytewise order, the
// order the posting codec's leading-pair grouping relies on.
func (ts *TokenSet) Entries() []Entry {
	keys := make([]string, 0, len(ts.freq))
	for k := range ts.freq {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]Entry, len(keys))
	for i, k := range keys {
		entries[i] = Entry{Token: []byte(k), Freq: ts.freq[k]}
	}
	return entries
}

// Map returns a plain token->frequency map, for callers (bulk loaders) that
// already have a pre-parsed multiset and want to feed it straight to
// index.Engine.InsertTokens.
func (ts *TokenSet) Map() map[string]int {
	out := make(map[string]int, len(ts.freq))
	for k, v := range ts.freq {
		out[k] = v
	}
	return out
}

func isAlnum(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func lowerByte(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

// Parse scans buf and returns the accumulated token multiset. query
// suppresses single-character tokens for any Big5 character that already
// took part in a bigram, so query-side token counts aren't inflated; a
// standalone character that never forms a bigram is always emitted, in
// both modes, since there is nothing for it to be redundant with.
//
// buf is scanned up to the first 0x00 byte or its end, whichever comes
// first; a dangling lead byte at the tail with no following byte is
// silently dropped.
func Parse(buf []byte, query bool) *TokenSet {
	ts := newTokenSet()
	n := len(buf)
	p := 0

	for p < n && buf[p] != 0 {
		b := buf[p]
		switch {
		case b > big5LeadThreshold:
			if p+1 >= n {
				p++
				continue
			}
			lead := [2]byte{buf[p], buf[p+1]}
			p += 2

			if p+1 < n && buf[p] > big5TrailThreshold {
				cur := lead
				for p+1 < n && buf[p] > big5TrailThreshold {
					next := [2]byte{buf[p], buf[p+1]}
					ts.addBigram(cur, next)
					if !query {
						ts.addSingle(cur)
					}
					cur = next
					p += 2
				}
				if !query {
					ts.addSingle(cur)
				}
			} else {
				// Lone character: never part of a bigram, so nothing to
				// suppress in query mode either.
				ts.addSingle(lead)
			}

		case isAlnum(b):
			start := p
			for p < n && isAlnum(buf[p]) {
				p++
			}
			if p-start >= 2 {
				word := make([]byte, p-start)
				for i := start; i < p; i++ {
					word[i-start] = lowerByte(buf[i])
				}
				if len(word) > MaxKeyLen {
					word = word[:MaxKeyLen]
				}
				ts.addWord(word)
			}

		default:
			p++
		}
	}

	return ts
}

// QuerySentinel is the two-byte marker (0xA4 0x3F) the chatbot adapter (and
// any other query-path caller) appends to query text before parsing. 0xA4
// is a Big5 lead byte and nothing follows the pair, so after text that does
// not end in a Big5 character it parses as a lone single-character token
// whose trailing pad is the ASCII "!!" the query evaluator recognizes as
// the leading-pair-only marker triple. After text that ends in a Big5
// character, the sentinel continues that character's chain and is emitted
// as the trailing half of a bigram instead.
var QuerySentinel = []byte{0xA4, 0x3F}

// WithQuerySentinel returns text with QuerySentinel appended, ready to pass
// to Parse with query=true.
func WithQuerySentinel(text []byte) []byte {
	out := make([]byte, len(text)+len(QuerySentinel))
	copy(out, text)
	copy(out[len(text):], QuerySentinel)
	return out
}
