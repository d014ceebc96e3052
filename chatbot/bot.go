package chatbot

import (
	"math/rand"
	"regexp"
	"sort"

	"github.com/rs/zerolog"

	"github.com/salvatore-campagna/hanzidx/index"
	"github.com/salvatore-campagna/hanzidx/token"
)

// SynonymRule rewrites one regexp match in input text to a fixed
// replacement before the text is queried. Callers supply their own table;
// the adapter carries no built-in rules.
type SynonymRule struct {
	Pattern     *regexp.Regexp
	Replacement string
}

// Bot is a context-free retriever over an index.Engine: it scores Input
// text against previously-AddEntry'd documents and returns the best
// non-avoided match's doc_key, or a random fallback on no match.
type Bot struct {
	name          string
	engine        *index.Engine
	synonyms      []SynonymRule
	randomOutputs []string
	logger        zerolog.Logger
}

// Option configures a Bot at Open time.
type Option func(*Bot)

// WithSynonyms installs the substitution rules applied to Input text
// before it is queried.
func WithSynonyms(rules []SynonymRule) Option {
	return func(b *Bot) { b.synonyms = rules }
}

// WithRandomOutputs installs the fallback pool Input draws from when a
// query errors or matches nothing usable.
func WithRandomOutputs(outputs []string) Option {
	return func(b *Bot) { b.randomOutputs = outputs }
}

// WithLogger attaches a zerolog.Logger, defaulting to zerolog.Nop().
func WithLogger(l zerolog.Logger) Option {
	return func(b *Bot) { b.logger = l }
}

// Open opens the index file backing this bot. A missing file is an error
// unless writable is true, in which case a fresh index is created.
func Open(name, file string, writable bool, opts ...Option) (*Bot, error) {
	var engineOpts []index.Option
	if !writable {
		engineOpts = append(engineOpts, index.WithReadOnly())
	}

	engine, err := index.Open(file, engineOpts...)
	if err != nil {
		return nil, err
	}

	b := &Bot{name: name, engine: engine, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Input scores say against every AddEntry'd document and returns the
// doc_key of the best-scoring one not in avoid. It never returns an error
// of its own: a query failure or an empty/fully-avoided result falls
// through to a uniform-random pick from RandomOutputs (or "" if that pool
// is empty).
func (b *Bot) Input(say string, avoid ...uint32) (string, error) {
	text := applySynonyms(say, b.synonyms)
	queryText := token.WithQuerySentinel([]byte(text))

	scores, err := b.engine.Query(queryText, index.ModePart, nil)
	if err != nil {
		b.logger.Warn().Err(err).Str("say", say).Msg("chatbot: query failed, falling back to random output")
		return b.randomOutput(), nil
	}

	type candidate struct {
		id    uint32
		score float64
	}
	candidates := make([]candidate, 0, len(scores))
	for id, score := range scores {
		candidates = append(candidates, candidate{id: id, score: score})
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].score > candidates[j].score })

	avoided := make(map[uint32]bool, len(avoid))
	for _, id := range avoid {
		avoided[id] = true
	}

	for _, c := range candidates {
		if avoided[c.id] {
			continue
		}
		key, ok, err := b.engine.GetKey(c.id)
		if err != nil || !ok {
			continue
		}
		return key, nil
	}

	return b.randomOutput(), nil
}

func (b *Bot) randomOutput() string {
	if len(b.randomOutputs) == 0 {
		return ""
	}
	return b.randomOutputs[rand.Intn(len(b.randomOutputs))]
}

// AddEntry inserts content as a document keyed by itself, indexing
// trigger's text (falling back to content when trigger is empty) so later
// Input calls can match against it.
func (b *Bot) AddEntry(content, trigger string) (uint32, error) {
	text := trigger
	if text == "" {
		text = content
	}
	text = applySynonyms(text, b.synonyms)
	return b.engine.Insert(content, []byte(text))
}

// NextOne returns (docID mod idxcount) + 1. This is a badly implemented
// feature by the original author's own admission, preserved exactly
// rather than improved because client tests depend on its presence.
func (b *Bot) NextOne(docID uint32) uint32 {
	count := b.engine.IdxCount()
	if count == 0 {
		return 1
	}
	return (docID % count) + 1
}

// Close releases the backing index engine.
func (b *Bot) Close() error {
	return b.engine.Close()
}

func applySynonyms(text string, rules []SynonymRule) string {
	for _, r := range rules {
		if r.Pattern == nil {
			continue
		}
		text = r.Pattern.ReplaceAllString(text, r.Replacement)
	}
	return text
}
