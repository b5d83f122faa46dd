// Package analytics computes summary statistics over search result sets.
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/procyonhq/defscope/internal/domain/record"
	"github.com/procyonhq/defscope/internal/domain/search/filter"
	"github.com/procyonhq/defscope/internal/domain/search/result"
	"github.com/procyonhq/defscope/internal/usecase/rank"
	"github.com/procyonhq/defscope/internal/usecase/search"
)

// Deadline buckets in days until closing.
const (
	urgentMaxDays = 14
	mediumMaxDays = 60
)

// DefaultTopK is the default length of the frequency tables.
const DefaultTopK = 5

// Frequency is one entry of a descending frequency table.
type Frequency struct {
	Name  string
	Count int
}

// ValueStats summarises the extractable monetary values of a result set.
type ValueStats struct {
	Min  float64
	Max  float64
	Mean float64
	Sum  float64
}

// ValueDistribution is the monetary summary. Stats is nil when no record
// had an extractable value.
type ValueDistribution struct {
	Count int
	Stats *ValueStats
}

// DeadlineDistribution buckets results by days until closing. Records
// without a parseable deadline belong to no bucket.
type DeadlineDistribution struct {
	Urgent   int // closing within 14 days
	Medium   int // 15-60 days
	LongTerm int // more than 60 days
}

// Report is the aggregate view over one search's results.
type Report struct {
	TotalResults         int
	TopFundingBodies     []Frequency
	TopTechAreas         []Frequency
	ValueDistribution    ValueDistribution
	DeadlineDistribution DeadlineDistribution
}

// Service aggregates search output. It builds entirely on the search
// service: Analyze runs the query and summarises whatever survives ranking
// and filtering.
type Service struct {
	search *search.Service
	topK   int
	now    func() time.Time
}

// New creates an analytics service on top of a search service.
func New(searchSvc *search.Service) *Service {
	return &Service{search: searchSvc, topK: DefaultTopK, now: time.Now}
}

// WithTopK overrides the frequency table length.
func (s *Service) WithTopK(k int) *Service {
	if k > 0 {
		s.topK = k
	}
	return s
}

// WithClock overrides the time source (used by tests).
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Analyze searches the records with the given query and filters, then
// aggregates the result set.
func (s *Service) Analyze(
	records []record.Record, rawQuery string, filters filter.Filters,
) Report {
	return s.Aggregate(s.search.Search(records, rawQuery, filters))
}

// Aggregate summarises an already-computed result set.
func (s *Service) Aggregate(results []result.Result) Report {
	report := Report{TotalResults: len(results)}

	bodies := make(map[string]int)
	tags := make(map[string]int)
	var values []float64
	now := s.now()

	for i := range results {
		rec := results[i].Record()

		if body := rec.FundingBody(); body != "" {
			bodies[body]++
		}
		for _, tag := range rec.TechTags() {
			tags[tag]++
		}
		if value, ok := rank.ExtractMonetaryValue(rec.FundingAmount()); ok {
			values = append(values, value)
		}
		if closing := rec.ClosingDate(); closing != nil {
			bucket(&report.DeadlineDistribution, daysUntil(now, *closing))
		}
	}

	report.TopFundingBodies = topK(bodies, s.topK)
	report.TopTechAreas = topK(tags, s.topK)
	report.ValueDistribution = summarise(values)
	return report
}

func daysUntil(now, closing time.Time) int {
	return int(math.Ceil(closing.Sub(now).Hours() / 24))
}

func bucket(d *DeadlineDistribution, days int) {
	switch {
	case days <= urgentMaxDays:
		d.Urgent++
	case days <= mediumMaxDays:
		d.Medium++
	default:
		d.LongTerm++
	}
}

// topK returns the k most frequent entries, count descending, name
// ascending among equal counts for deterministic output.
func topK(counts map[string]int, k int) []Frequency {
	if len(counts) == 0 {
		return nil
	}
	entries := make([]Frequency, 0, len(counts))
	for name, count := range counts {
		entries = append(entries, Frequency{Name: name, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Name < entries[j].Name
	})
	if len(entries) > k {
		entries = entries[:k]
	}
	return entries
}

func summarise(values []float64) ValueDistribution {
	dist := ValueDistribution{Count: len(values)}
	if len(values) == 0 {
		return dist
	}

	stats := ValueStats{Min: values[0], Max: values[0]}
	for _, v := range values {
		if v < stats.Min {
			stats.Min = v
		}
		if v > stats.Max {
			stats.Max = v
		}
		stats.Sum += v
	}
	stats.Mean = stats.Sum / float64(len(values))
	dist.Stats = &stats
	return dist
}
