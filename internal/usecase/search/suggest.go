package search

import (
	"fmt"
	"sort"
	"strings"

	"github.com/procyonhq/defscope/internal/domain/record"
)

const (
	maxBodySuggestions = 5
	maxSuggestions     = 10
	minTemplateLength  = 3
)

var suggestionTemplates = []string{
	"%s opportunities",
	"%s contracts",
	"%s funding",
	"%s procurement",
}

// Suggest completes a partial query from three sources: synonym-group keys
// containing the partial, up to 5 distinct funding-body names from the
// corpus containing it, and 4 templated phrases once the partial reaches 3
// characters. The merged list is deduplicated, sorted lexicographically,
// and capped at 10 entries.
func (s *Service) Suggest(partial string, records []record.Record) []string {
	p := strings.ToLower(strings.TrimSpace(partial))
	if p == "" {
		return nil
	}

	seen := make(map[string]bool)
	var suggestions []string
	add := func(v string) {
		if v == "" || seen[v] {
			return
		}
		seen[v] = true
		suggestions = append(suggestions, v)
	}

	for key := range s.lex.Synonyms {
		if strings.Contains(key, p) {
			add(key)
		}
	}

	bodies := 0
	for _, rec := range records {
		if bodies >= maxBodySuggestions {
			break
		}
		body := rec.FundingBody()
		if body == "" || seen[body] {
			continue
		}
		if strings.Contains(strings.ToLower(body), p) {
			add(body)
			bodies++
		}
	}

	if len(p) >= minTemplateLength {
		for _, tmpl := range suggestionTemplates {
			add(fmt.Sprintf(tmpl, p))
		}
	}

	sort.Strings(suggestions)
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}
