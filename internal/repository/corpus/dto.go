package corpus

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/procyonhq/defscope/internal/domain/record"
)

// recordDTO is the JSON-serializable representation of a corpus record.
type recordDTO struct {
	ID            string     `json:"id"`
	Title         string     `json:"title,omitempty"`
	Description   string     `json:"description,omitempty"`
	FundingBody   string     `json:"funding_body,omitempty"`
	TechTags      []string   `json:"tech_tags,omitempty"`
	FundingAmount string     `json:"funding_amount,omitempty"`
	ClosingDate   *time.Time `json:"closing_date,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	Status        string     `json:"status,omitempty"`
	SMEScore      float64    `json:"sme_score,omitempty"`
	Source        string     `json:"source,omitempty"`
	SearchTerm    string     `json:"search_term,omitempty"`
}

// recordToJSON converts a domain Record to its stored JSON form.
func recordToJSON(rec record.Record) ([]byte, error) {
	dto := recordDTO{
		ID:            rec.ID(),
		Title:         rec.Title(),
		Description:   rec.Description(),
		FundingBody:   rec.FundingBody(),
		TechTags:      rec.TechTags(),
		FundingAmount: rec.FundingAmount(),
		ClosingDate:   rec.ClosingDate(),
		CreatedAt:     rec.CreatedAt(),
		Status:        string(rec.Status()),
		SMEScore:      rec.SMEScore(),
		Source:        rec.Source(),
		SearchTerm:    rec.SearchTerm(),
	}
	data, err := json.Marshal(dto)
	if err != nil {
		return nil, fmt.Errorf("marshal record %s: %w", rec.ID(), err)
	}
	return data, nil
}

// recordFromJSON hydrates a domain Record from its stored JSON form.
func recordFromJSON(data []byte) (record.Record, error) {
	var dto recordDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return record.Record{}, fmt.Errorf("unmarshal record: %w", err)
	}
	return record.Reconstruct(record.Params{
		ID:            dto.ID,
		Title:         dto.Title,
		Description:   dto.Description,
		FundingBody:   dto.FundingBody,
		TechTags:      dto.TechTags,
		FundingAmount: dto.FundingAmount,
		ClosingDate:   dto.ClosingDate,
		CreatedAt:     dto.CreatedAt,
		Status:        record.Status(dto.Status),
		SMEScore:      dto.SMEScore,
		Source:        dto.Source,
		SearchTerm:    dto.SearchTerm,
	}), nil
}
