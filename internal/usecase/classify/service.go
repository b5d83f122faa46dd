// Package classify implements the binary relevance gate deciding corpus
// membership for incoming records.
package classify

import (
	"strings"

	"github.com/procyonhq/defscope/internal/domain/record"
	"github.com/procyonhq/defscope/internal/lexicon"
)

// Scoring weights per keyword category. A record is accepted when its
// accumulated score reaches acceptThreshold, so a single high-value keyword
// or organisation mention suffices, as do two medium-value keywords. A bare
// technology keyword without a defence-context marker never does.
const (
	highValuePoints    = 5
	mediumValuePoints  = 3
	organisationPoints = 10
	techKeywordPoints  = 2
	acceptThreshold    = 5
)

// Service is the relevance classifier. Classification is a pure, idempotent
// function of the record's text fields.
type Service struct {
	lex *lexicon.Lexicon
}

// New creates a classifier over the given lexicon.
func New(lex *lexicon.Lexicon) *Service {
	return &Service{lex: lex}
}

// Classify reports whether the record belongs in the corpus.
// Any exclusion keyword in the combined text rejects immediately, no matter
// how many inclusion keywords are present.
func (s *Service) Classify(rec record.Record) bool {
	accepted, _ := s.classify(rec)
	return accepted
}

// Score returns the accumulated relevance points alongside the decision.
// A rejected-by-exclusion record reports 0.
func (s *Service) Score(rec record.Record) (int, bool) {
	accepted, score := s.classify(rec)
	return score, accepted
}

func (s *Service) classify(rec record.Record) (bool, int) {
	blob := strings.ToLower(rec.Title() + " " + rec.Description() + " " + rec.FundingBody())

	for _, kw := range s.lex.Exclusions {
		if strings.Contains(blob, kw) {
			return false, 0
		}
	}

	score := 0
	for _, kw := range s.lex.HighValue {
		if strings.Contains(blob, kw) {
			score += highValuePoints
		}
	}
	for _, kw := range s.lex.MediumValue {
		if strings.Contains(blob, kw) {
			score += mediumValuePoints
		}
	}
	for _, org := range s.lex.Organisations {
		if strings.Contains(blob, org) {
			score += organisationPoints
		}
	}
	if s.hasContextMarker(blob) {
		for _, kw := range s.lex.TechKeywords {
			if strings.Contains(blob, kw) {
				score += techKeywordPoints
			}
		}
	}

	return score >= acceptThreshold, score
}

func (s *Service) hasContextMarker(blob string) bool {
	for _, marker := range s.lex.ContextMarkers {
		if strings.Contains(blob, marker) {
			return true
		}
	}
	return false
}
