package result

import "github.com/procyonhq/defscope/internal/domain/record"

// Highlights lists the matched terms per field. Terms are deduplicated
// within each field.
type Highlights struct {
	Title       []string
	Description []string
	TechTags    []string
}

// Result is a single ranked hit: the original record plus the relevance
// score and matched-term highlights. The record itself is never mutated.
type Result struct {
	record     record.Record
	score      float64
	highlights Highlights
}

// New creates a ranked result.
func New(rec record.Record, score float64, highlights Highlights) Result {
	return Result{record: rec, score: score, highlights: highlights}
}

// Record returns the underlying record.
func (r *Result) Record() record.Record { return r.record }

// Score returns the relevance score.
func (r *Result) Score() float64 { return r.score }

// Highlights returns the matched-term highlights.
func (r *Result) Highlights() Highlights { return r.highlights }
