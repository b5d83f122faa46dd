// Package intent defines the query-intent vector inferred from free text.
package intent

// Intent is the set of goal categories detected in a query. Categories are
// independent: any combination may be true at once. Intent is derived from
// the query text only, never from structured filters.
type Intent struct {
	ClosingSoon     bool
	HighValue       bool
	SMEFriendly     bool
	TechnologyFocus bool
}

// Any reports whether at least one category is set.
func (i Intent) Any() bool {
	return i.ClosingSoon || i.HighValue || i.SMEFriendly || i.TechnologyFocus
}
