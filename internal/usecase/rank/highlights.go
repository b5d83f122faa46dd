package rank

import (
	"strings"

	"github.com/procyonhq/defscope/internal/domain/record"
	"github.com/procyonhq/defscope/internal/domain/search/result"
)

// Highlights records, for each expanded term, the fields it matched:
// title and description by case-insensitive substring, tech tags by mutual
// substring with any tag. Terms are deduplicated per field.
func (s *Scorer) Highlights(rec record.Record, expanded []string) result.Highlights {
	title := strings.ToLower(rec.Title())
	description := strings.ToLower(rec.Description())

	var h result.Highlights
	for _, term := range expanded {
		if strings.Contains(title, term) {
			h.Title = appendUnique(h.Title, term)
		}
		if strings.Contains(description, term) {
			h.Description = appendUnique(h.Description, term)
		}
		for _, tag := range rec.TechTags() {
			if mutualSubstring(term, strings.ToLower(tag)) {
				h.TechTags = appendUnique(h.TechTags, term)
				break
			}
		}
	}
	return h
}

func appendUnique(list []string, term string) []string {
	for _, existing := range list {
		if existing == term {
			return list
		}
	}
	return append(list, term)
}
