package chihttp

import (
	"fmt"
	"time"

	"github.com/procyonhq/defscope/internal/domain/record"
	"github.com/procyonhq/defscope/internal/domain/search/result"
	"github.com/procyonhq/defscope/internal/usecase/analytics"
	"github.com/procyonhq/defscope/internal/usecase/health"
)

// recordRequest is the wire form of an incoming record.
type recordRequest struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	FundingBody   string   `json:"funding_body"`
	TechTags      []string `json:"tech_tags"`
	FundingAmount string   `json:"funding_amount"`
	ClosingDate   string   `json:"closing_date"` // RFC 3339, optional
	Status        string   `json:"status"`
	SMEScore      float64  `json:"sme_score"`
	Source        string   `json:"source"`
	SearchTerm    string   `json:"search_term"`
}

// ingestRequest is the POST /records body.
type ingestRequest struct {
	Records []recordRequest `json:"records"`
}

// ingestResponse reports the batch outcome.
type ingestResponse struct {
	Accepted int `json:"accepted"`
	Rejected int `json:"rejected"`
}

// recordResponse is the wire form of a stored record.
type recordResponse struct {
	ID            string     `json:"id"`
	Title         string     `json:"title,omitempty"`
	Description   string     `json:"description,omitempty"`
	FundingBody   string     `json:"funding_body,omitempty"`
	TechTags      []string   `json:"tech_tags,omitempty"`
	FundingAmount string     `json:"funding_amount,omitempty"`
	ClosingDate   *time.Time `json:"closing_date,omitempty"`
	Status        string     `json:"status,omitempty"`
	SMEScore      float64    `json:"sme_score,omitempty"`
}

// searchResultItem is one ranked search hit.
type searchResultItem struct {
	Record     recordResponse     `json:"record"`
	Score      float64            `json:"score"`
	Highlights highlightsResponse `json:"highlights"`
}

type highlightsResponse struct {
	Title       []string `json:"title,omitempty"`
	Description []string `json:"description,omitempty"`
	TechTags    []string `json:"tech_tags,omitempty"`
}

// searchResponse is the GET /search body.
type searchResponse struct {
	Items []searchResultItem `json:"items"`
	Total int                `json:"total"`
}

// suggestResponse is the GET /suggest body.
type suggestResponse struct {
	Suggestions []string `json:"suggestions"`
}

// frequencyItem is one frequency table entry.
type frequencyItem struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type valueStatsResponse struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Mean float64 `json:"mean"`
	Sum  float64 `json:"sum"`
}

type valueDistributionResponse struct {
	Count int                 `json:"count"`
	Stats *valueStatsResponse `json:"stats,omitempty"`
}

type deadlineDistributionResponse struct {
	Urgent   int `json:"urgent"`
	Medium   int `json:"medium"`
	LongTerm int `json:"long_term"`
}

// analyticsResponse is the GET /analytics body.
type analyticsResponse struct {
	TotalResults         int                          `json:"total_results"`
	TopFundingBodies     []frequencyItem              `json:"top_funding_bodies"`
	TopTechAreas         []frequencyItem              `json:"top_tech_areas"`
	ValueDistribution    valueDistributionResponse    `json:"value_distribution"`
	DeadlineDistribution deadlineDistributionResponse `json:"deadline_distribution"`
}

// healthResponse is the GET /healthz body.
type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func recordFromRequest(req recordRequest, now time.Time) (record.Record, error) {
	var closing *time.Time
	if req.ClosingDate != "" {
		t, err := time.Parse(time.RFC3339, req.ClosingDate)
		if err != nil {
			return record.Record{}, fmt.Errorf("record %q: invalid closing_date: %w", req.ID, err)
		}
		closing = &t
	}

	status := record.Status(req.Status)
	if status == "" {
		status = record.StatusActive
	}

	rec, err := record.New(record.Params{
		ID:            req.ID,
		Title:         req.Title,
		Description:   req.Description,
		FundingBody:   req.FundingBody,
		TechTags:      req.TechTags,
		FundingAmount: req.FundingAmount,
		ClosingDate:   closing,
		CreatedAt:     now,
		Status:        status,
		SMEScore:      req.SMEScore,
		Source:        req.Source,
		SearchTerm:    req.SearchTerm,
	})
	if err != nil {
		return record.Record{}, fmt.Errorf("build record: %w", err)
	}
	return rec, nil
}

func recordToResponse(rec record.Record) recordResponse {
	return recordResponse{
		ID:            rec.ID(),
		Title:         rec.Title(),
		Description:   rec.Description(),
		FundingBody:   rec.FundingBody(),
		TechTags:      rec.TechTags(),
		FundingAmount: rec.FundingAmount(),
		ClosingDate:   rec.ClosingDate(),
		Status:        string(rec.Status()),
		SMEScore:      rec.SMEScore(),
	}
}

func searchResultToItem(r *result.Result) searchResultItem {
	h := r.Highlights()
	return searchResultItem{
		Record: recordToResponse(r.Record()),
		Score:  r.Score(),
		Highlights: highlightsResponse{
			Title:       h.Title,
			Description: h.Description,
			TechTags:    h.TechTags,
		},
	}
}

func reportToResponse(report analytics.Report) analyticsResponse {
	resp := analyticsResponse{
		TotalResults:     report.TotalResults,
		TopFundingBodies: frequenciesToItems(report.TopFundingBodies),
		TopTechAreas:     frequenciesToItems(report.TopTechAreas),
		ValueDistribution: valueDistributionResponse{
			Count: report.ValueDistribution.Count,
		},
		DeadlineDistribution: deadlineDistributionResponse{
			Urgent:   report.DeadlineDistribution.Urgent,
			Medium:   report.DeadlineDistribution.Medium,
			LongTerm: report.DeadlineDistribution.LongTerm,
		},
	}
	if stats := report.ValueDistribution.Stats; stats != nil {
		resp.ValueDistribution.Stats = &valueStatsResponse{
			Min:  stats.Min,
			Max:  stats.Max,
			Mean: stats.Mean,
			Sum:  stats.Sum,
		}
	}
	return resp
}

func frequenciesToItems(ff []analytics.Frequency) []frequencyItem {
	if len(ff) == 0 {
		return nil
	}
	items := make([]frequencyItem, len(ff))
	for i, f := range ff {
		items[i] = frequencyItem{Name: f.Name, Count: f.Count}
	}
	return items
}

func healthToResponse(report health.Report) healthResponse {
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return healthResponse{Status: string(report.Status), Checks: checks}
}
