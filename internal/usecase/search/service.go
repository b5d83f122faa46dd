// Package search orchestrates query interpretation, ranking, and structured
// filtering over an in-memory record set.
package search

import (
	"sort"
	"strings"
	"time"

	"github.com/procyonhq/defscope/internal/domain/record"
	"github.com/procyonhq/defscope/internal/domain/search/filter"
	"github.com/procyonhq/defscope/internal/domain/search/result"
	"github.com/procyonhq/defscope/internal/lexicon"
	"github.com/procyonhq/defscope/internal/usecase/query"
	"github.com/procyonhq/defscope/internal/usecase/rank"
)

// Service runs searches over a caller-supplied corpus slice. All methods
// are pure computations: no I/O, no shared mutable state, safe for
// concurrent use.
type Service struct {
	lex    *lexicon.Lexicon
	interp *query.Interpreter
	scorer *rank.Scorer
	now    func() time.Time
}

// New creates a search service over the given lexicon.
func New(lex *lexicon.Lexicon) *Service {
	return &Service{
		lex:    lex,
		interp: query.New(lex),
		scorer: rank.New(),
		now:    time.Now,
	}
}

// WithClock overrides the time source (used by tests and replay tooling).
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Search interprets the query, scores every record against it, drops
// zero-score records, sorts the survivors by score descending (ties keep
// input order), and applies the structured filters.
//
// An empty or whitespace-only query skips interpretation and ranking
// entirely: the filters are applied to the unscored input, every survivor
// carries score 0 and no highlights, and input order is preserved.
func (s *Service) Search(records []record.Record, rawQuery string, filters filter.Filters) []result.Result {
	now := s.now()

	if strings.TrimSpace(rawQuery) == "" {
		results := make([]result.Result, 0, len(records))
		for _, rec := range records {
			if matchesFilters(rec, filters, now) {
				results = append(results, result.New(rec, 0, result.Highlights{}))
			}
		}
		return results
	}

	tokens := s.interp.Tokens(rawQuery)
	expanded := s.interp.Expand(rawQuery)
	in := s.interp.DetectIntent(rawQuery)

	results := make([]result.Result, 0, len(records))
	for _, rec := range records {
		score := s.scorer.Score(rec, tokens, expanded, in, now)
		if score == 0 {
			// Zero-score records never appear in ranked output, even if
			// they would pass the filters.
			continue
		}
		if !matchesFilters(rec, filters, now) {
			continue
		}
		results = append(results, result.New(rec, score, s.scorer.Highlights(rec, expanded)))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score() > results[j].Score()
	})

	return results
}
