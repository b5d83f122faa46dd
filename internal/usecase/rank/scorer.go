// Package rank scores candidate records against an interpreted query.
package rank

import (
	"strings"
	"time"

	"github.com/procyonhq/defscope/internal/domain/record"
	"github.com/procyonhq/defscope/internal/domain/search/intent"
)

// Signal weights. Every signal is additive and non-negative.
const (
	weightTitleExact   = 3.0
	weightTitlePartial = 2.0
	weightDescription  = 1.5
	weightTechTag      = 2.5
	weightFundingBody  = 1.0

	bonusClosingSoon = 2.0
	bonusHighValue   = 1.5
	bonusSME         = 1.0
	bonusRecency     = 0.5

	closingSoonWindow  = 14 * 24 * time.Hour
	recencyWindow      = 7 * 24 * time.Hour
	highValueThreshold = 1_000_000.0
	smeBonusThreshold  = 0.7
)

// Scorer computes relevance scores. It holds no state; scoring is a pure
// function of its arguments.
type Scorer struct{}

// New creates a Scorer.
func New() *Scorer { return &Scorer{} }

// Score returns the additive relevance score of a record against the
// original query tokens, the expanded term set, and the detected intent.
//
// A record matched by zero query terms always scores 0: intent and recency
// bonuses apply only on top of at least one term match, so a zero-score
// record can never survive ranking on bonuses alone.
func (s *Scorer) Score(
	rec record.Record, tokens, expanded []string, in intent.Intent, now time.Time,
) float64 {
	title := strings.ToLower(rec.Title())
	description := strings.ToLower(rec.Description())
	fundingBody := strings.ToLower(rec.FundingBody())
	titleWords := strings.Fields(title)

	var score float64

	for _, tok := range tokens {
		if strings.Contains(title, tok) {
			score += weightTitleExact
			continue
		}
		// Partial pairs are counted only for tokens without an exact hit.
		for _, word := range titleWords {
			if strings.Contains(word, tok) || strings.Contains(tok, word) {
				score += weightTitlePartial
			}
		}
	}

	for _, term := range expanded {
		if strings.Contains(description, term) {
			score += weightDescription
		}
	}

	for _, term := range expanded {
		for _, tag := range rec.TechTags() {
			if mutualSubstring(term, strings.ToLower(tag)) {
				score += weightTechTag
			}
		}
	}

	for _, tok := range tokens {
		if strings.Contains(fundingBody, tok) {
			score += weightFundingBody
		}
	}

	if score == 0 {
		return 0
	}

	if in.ClosingSoon {
		if closing := rec.ClosingDate(); closing != nil && closing.Sub(now) <= closingSoonWindow {
			score += bonusClosingSoon
		}
	}
	if in.HighValue {
		if value, ok := ExtractMonetaryValue(rec.FundingAmount()); ok && value >= highValueThreshold {
			score += bonusHighValue
		}
	}
	if in.SMEFriendly && rec.SMEScore() > smeBonusThreshold {
		score += bonusSME
	}
	if now.Sub(rec.CreatedAt()) <= recencyWindow {
		score += bonusRecency
	}

	return score
}

func mutualSubstring(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
