package record

import (
	"fmt"
	"time"
)

// Status is the lifecycle state of an opportunity.
type Status string

const (
	// StatusActive marks an opportunity that is open for bids.
	StatusActive Status = "active"
	// StatusClosed marks an opportunity past its closing date.
	StatusClosed Status = "closed"
	// StatusAwarded marks an opportunity that has been awarded.
	StatusAwarded Status = "awarded"
)

// Record is a single procurement/funding opportunity (immutable value object).
// Text fields may be empty: the acquisition side defaults absent values to
// safe empties and the engine treats them as such, never as an error.
type Record struct {
	id            string
	title         string
	description   string
	fundingBody   string
	techTags      []string
	fundingAmount string
	closingDate   *time.Time
	createdAt     time.Time
	status        Status
	smeScore      float64
	source        string
	searchTerm    string
}

// Params carries the fields for New. Zero values are valid for everything
// except ID.
type Params struct {
	ID            string
	Title         string
	Description   string
	FundingBody   string
	TechTags      []string
	FundingAmount string
	ClosingDate   *time.Time
	CreatedAt     time.Time
	Status        Status
	SMEScore      float64
	Source        string
	SearchTerm    string
}

// New validates and creates a Record.
// ID is required; SMEScore is clamped to [0, 1].
func New(p Params) (Record, error) {
	if p.ID == "" {
		return Record{}, fmt.Errorf("record ID is required")
	}
	score := p.SMEScore
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return Record{
		id:            p.ID,
		title:         p.Title,
		description:   p.Description,
		fundingBody:   p.FundingBody,
		techTags:      cloneStrings(p.TechTags),
		fundingAmount: p.FundingAmount,
		closingDate:   cloneTime(p.ClosingDate),
		createdAt:     p.CreatedAt,
		status:        p.Status,
		smeScore:      score,
		source:        p.Source,
		searchTerm:    p.SearchTerm,
	}, nil
}

// Reconstruct creates a Record without validation (storage hydration).
func Reconstruct(p Params) Record {
	return Record{
		id:            p.ID,
		title:         p.Title,
		description:   p.Description,
		fundingBody:   p.FundingBody,
		techTags:      p.TechTags,
		fundingAmount: p.FundingAmount,
		closingDate:   p.ClosingDate,
		createdAt:     p.CreatedAt,
		status:        p.Status,
		smeScore:      p.SMEScore,
		source:        p.Source,
		searchTerm:    p.SearchTerm,
	}
}

// ID returns the stable identifier assigned by acquisition.
func (r Record) ID() string { return r.id }

// Title returns the opportunity title.
func (r Record) Title() string { return r.title }

// Description returns the free-text description.
func (r Record) Description() string { return r.description }

// FundingBody returns the funding organisation name.
func (r Record) FundingBody() string { return r.fundingBody }

// TechTags returns the technology tags.
func (r Record) TechTags() []string { return r.techTags }

// FundingAmount returns the raw monetary string (e.g. "£25K - £1M").
func (r Record) FundingAmount() string { return r.fundingAmount }

// ClosingDate returns the deadline, or nil when unknown.
func (r Record) ClosingDate() *time.Time { return r.closingDate }

// CreatedAt returns when the record was first seen.
func (r Record) CreatedAt() time.Time { return r.createdAt }

// Status returns the lifecycle state.
func (r Record) Status() Status { return r.status }

// SMEScore returns the small/medium-enterprise suitability estimate in [0, 1].
func (r Record) SMEScore() float64 { return r.smeScore }

// Source returns the acquisition provenance source.
func (r Record) Source() string { return r.source }

// SearchTerm returns the acquisition search term that found this record.
func (r Record) SearchTerm() string { return r.searchTerm }

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	c := make([]string, len(s))
	copy(c, s)
	return c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
