// Package defscope classifies defence-procurement records for relevance and
// ranks them against free-text queries. The Engine is the SDK entry point:
// it bundles the vocabulary, classifier, search, and analytics services
// behind one handle operating over caller-supplied record slices.
package defscope

import (
	"fmt"

	"github.com/procyonhq/defscope/internal/domain/record"
	"github.com/procyonhq/defscope/internal/domain/search/filter"
	"github.com/procyonhq/defscope/internal/domain/search/result"
	"github.com/procyonhq/defscope/internal/lexicon"
	analyticsuc "github.com/procyonhq/defscope/internal/usecase/analytics"
	"github.com/procyonhq/defscope/internal/usecase/classify"
	searchuc "github.com/procyonhq/defscope/internal/usecase/search"
)

// Re-exported domain types so SDK callers need no internal imports.
type (
	// Record is a single procurement/funding opportunity.
	Record = record.Record
	// RecordParams carries the fields for NewRecord.
	RecordParams = record.Params
	// Status is the lifecycle state of an opportunity.
	Status = record.Status
	// Filters is the structured constraint set applied after ranking.
	Filters = filter.Filters
	// FilterOption configures a Filters under construction.
	FilterOption = filter.Option
	// Result is one ranked search hit.
	Result = result.Result
	// Report is the analytics summary over one search's results.
	Report = analyticsuc.Report
)

// Lifecycle states.
const (
	StatusActive  = record.StatusActive
	StatusClosed  = record.StatusClosed
	StatusAwarded = record.StatusAwarded
)

// Filter constructors.
var (
	WithFundingBodies = filter.WithFundingBodies
	WithTechAreas     = filter.WithTechAreas
	WithValueRange    = filter.WithValueRange
	WithDeadlineDays  = filter.WithDeadlineDays
	WithSMEFriendly   = filter.WithSMEFriendly
	WithStatus        = filter.WithStatus
)

// NewRecord validates and creates a Record.
func NewRecord(p RecordParams) (Record, error) {
	return record.New(p)
}

// NewFilters validates and creates a Filters.
func NewFilters(opts ...FilterOption) (Filters, error) {
	return filter.New(opts...)
}

// NoFilters is the empty filter set.
func NoFilters() Filters { return filter.None() }

// Engine is the defscope SDK entry point. All methods are pure computations
// over the supplied records and safe for concurrent use.
type Engine struct {
	lex        *lexicon.Lexicon
	classifier *classify.Service
	search     *searchuc.Service
	analytics  *analyticsuc.Service
}

// Option configures an Engine under construction.
type Option func(*engineConfig)

type engineConfig struct {
	lexiconPath  string
	analyticsTop int
}

// WithLexiconPath overrides the builtin vocabulary from a YAML file.
func WithLexiconPath(path string) Option {
	return func(c *engineConfig) { c.lexiconPath = path }
}

// WithAnalyticsTopK sets the analytics frequency table length.
func WithAnalyticsTopK(k int) Option {
	return func(c *engineConfig) { c.analyticsTop = k }
}

// New creates an Engine.
func New(opts ...Option) (*Engine, error) {
	var cfg engineConfig
	for _, o := range opts {
		o(&cfg)
	}

	lex := lexicon.Default()
	if cfg.lexiconPath != "" {
		var err error
		lex, err = lexicon.Load(cfg.lexiconPath)
		if err != nil {
			return nil, fmt.Errorf("defscope: load lexicon: %w", err)
		}
	}

	searchSvc := searchuc.New(lex)
	analyticsSvc := analyticsuc.New(searchSvc)
	if cfg.analyticsTop > 0 {
		analyticsSvc = analyticsSvc.WithTopK(cfg.analyticsTop)
	}

	return &Engine{
		lex:        lex,
		classifier: classify.New(lex),
		search:     searchSvc,
		analytics:  analyticsSvc,
	}, nil
}

// Classify reports whether the record is relevant to defence procurement.
func (e *Engine) Classify(rec Record) bool {
	return e.classifier.Classify(rec)
}

// Score returns the additive relevance score and the accept decision.
func (e *Engine) Score(rec Record) (int, bool) {
	return e.classifier.Score(rec)
}

// Search ranks the records against the query and applies the filters.
func (e *Engine) Search(records []Record, query string, filters Filters) []Result {
	return e.search.Search(records, query, filters)
}

// Suggest returns query completions for a partial input.
func (e *Engine) Suggest(partial string, records []Record) []string {
	return e.search.Suggest(partial, records)
}

// Analyze searches the records and aggregates the result set.
func (e *Engine) Analyze(records []Record, query string, filters Filters) Report {
	return e.analytics.Analyze(records, query, filters)
}
