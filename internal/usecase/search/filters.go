package search

import (
	"strings"
	"time"

	"github.com/procyonhq/defscope/internal/domain/record"
	"github.com/procyonhq/defscope/internal/domain/search/filter"
	"github.com/procyonhq/defscope/internal/usecase/rank"
)

// smeFloor is the minimum SME score the sme_friendly filter accepts.
const smeFloor = 0.6

// ApplyFilters returns the records passing every set filter option.
// Options compose with AND semantics; an empty filter set passes everything.
func ApplyFilters(records []record.Record, filters filter.Filters, now time.Time) []record.Record {
	if filters.IsEmpty() {
		return records
	}
	kept := make([]record.Record, 0, len(records))
	for _, rec := range records {
		if matchesFilters(rec, filters, now) {
			kept = append(kept, rec)
		}
	}
	return kept
}

// matchesFilters evaluates the AND-composition of all set predicates for a
// single record. Each predicate applies only when its option is present.
func matchesFilters(rec record.Record, filters filter.Filters, now time.Time) bool {
	if bodies := filters.FundingBodies(); len(bodies) > 0 {
		if !fundingBodyMatches(rec.FundingBody(), bodies) {
			return false
		}
	}

	if areas := filters.TechAreas(); len(areas) > 0 {
		if !hasAnyTag(rec.TechTags(), areas) {
			return false
		}
	}

	if filters.ValueMin() != nil || filters.ValueMax() != nil {
		value, ok := rank.ExtractMonetaryValue(rec.FundingAmount())
		if !ok {
			// No extractable value never satisfies a range filter.
			return false
		}
		if min := filters.ValueMin(); min != nil && value < *min {
			return false
		}
		if max := filters.ValueMax(); max != nil && value > *max {
			return false
		}
	}

	if days := filters.DeadlineDays(); days != nil {
		closing := rec.ClosingDate()
		if closing == nil {
			return false
		}
		if closing.After(now.Add(time.Duration(*days) * 24 * time.Hour)) {
			return false
		}
	}

	if filters.SMEFriendly() && rec.SMEScore() < smeFloor {
		return false
	}

	if status := filters.Status(); status != "" && string(rec.Status()) != status {
		return false
	}

	return true
}

func fundingBodyMatches(fundingBody string, bodies []string) bool {
	body := strings.ToLower(fundingBody)
	for _, want := range bodies {
		if strings.Contains(body, strings.ToLower(want)) {
			return true
		}
	}
	return false
}

func hasAnyTag(tags, areas []string) bool {
	for _, tag := range tags {
		for _, area := range areas {
			if tag == area {
				return true
			}
		}
	}
	return false
}
