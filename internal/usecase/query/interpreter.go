// Package query turns a raw search query into an intent vector and an
// expanded term set via the lexicon's synonym table.
package query

import (
	"regexp"
	"sort"
	"strings"

	"github.com/procyonhq/defscope/internal/domain/search/intent"
	"github.com/procyonhq/defscope/internal/lexicon"
)

var wordRegex = regexp.MustCompile(`[a-z0-9]+(?:[-'][a-z0-9]+)*`)

// Interpreter derives intent and term expansion from query text.
type Interpreter struct {
	lex *lexicon.Lexicon
}

// New creates an interpreter over the given lexicon.
func New(lex *lexicon.Lexicon) *Interpreter {
	return &Interpreter{lex: lex}
}

// DetectIntent tests the lowercased query against each intent category's
// patterns. Categories are independent; several may fire at once. Intent
// derives from the query text only, never from structured filters.
func (i *Interpreter) DetectIntent(query string) intent.Intent {
	q := strings.ToLower(query)
	return intent.Intent{
		ClosingSoon:     i.matchesAny(lexicon.IntentClosingSoon, q),
		HighValue:       i.matchesAny(lexicon.IntentHighValue, q),
		SMEFriendly:     i.matchesAny(lexicon.IntentSMEFriendly, q),
		TechnologyFocus: i.matchesAny(lexicon.IntentTechnologyFocus, q),
	}
}

// Tokens splits the query into lowercase word tokens.
func (i *Interpreter) Tokens(query string) []string {
	return wordRegex.FindAllString(strings.ToLower(query), -1)
}

// Expand returns the query tokens plus, for every token that names a
// synonym group or belongs to one, the group key and all its synonyms.
// Expansion is additive: the original tokens always survive, and the result
// is deduplicated preserving first-seen order.
func (i *Interpreter) Expand(query string) []string {
	tokens := i.Tokens(query)

	seen := make(map[string]bool, len(tokens))
	expanded := make([]string, 0, len(tokens))
	add := func(term string) {
		if term == "" || seen[term] {
			return
		}
		seen[term] = true
		expanded = append(expanded, term)
	}

	for _, tok := range tokens {
		add(tok)
	}

	// Group keys are visited in sorted order so the expansion is
	// deterministic across runs.
	keys := make([]string, 0, len(i.lex.Synonyms))
	for key := range i.lex.Synonyms {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, tok := range tokens {
		for _, key := range keys {
			group := i.lex.Synonyms[key]
			if tok != key && !memberOf(group, tok) {
				continue
			}
			add(key)
			for _, syn := range group {
				add(syn)
			}
		}
	}

	return expanded
}

func (i *Interpreter) matchesAny(category, query string) bool {
	for _, re := range i.lex.Patterns(category) {
		if re.MatchString(query) {
			return true
		}
	}
	return false
}

func memberOf(group []string, term string) bool {
	for _, g := range group {
		if g == term {
			return true
		}
	}
	return false
}
