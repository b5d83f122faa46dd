package defscope

import (
	"testing"
	"time"
)

func engineForTest(t *testing.T) *Engine {
	t.Helper()
	e, err := New()
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	return e
}

func makeRecord(t *testing.T, p RecordParams) Record {
	t.Helper()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().Add(-30 * 24 * time.Hour)
	}
	rec, err := NewRecord(p)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	return rec
}

func TestEngine_Classify(t *testing.T) {
	e := engineForTest(t)

	relevant := makeRecord(t, RecordParams{
		ID:    "opp-1",
		Title: "Submarine sonar processing upgrade",
	})
	if !e.Classify(relevant) {
		t.Error("expected submarine sonar record to be accepted")
	}

	excluded := makeRecord(t, RecordParams{
		ID:    "opp-2",
		Title: "Office catering services for defence HQ",
	})
	if e.Classify(excluded) {
		t.Error("expected catering record to be rejected despite defence mention")
	}

	score, ok := e.Score(relevant)
	if !ok || score < 5 {
		t.Errorf("score = %d, accepted = %v, want >= 5 and true", score, ok)
	}
}

func TestEngine_SearchAndAnalyze(t *testing.T) {
	e := engineForTest(t)

	records := []Record{
		makeRecord(t, RecordParams{
			ID:          "opp-1",
			Title:       "AI-powered Surveillance System",
			Description: "Machine learning for maritime surveillance",
			FundingBody: "Dstl",
			TechTags:    []string{"Surveillance"},
			SMEScore:    0.9,
		}),
		makeRecord(t, RecordParams{
			ID:          "opp-2",
			Title:       "Submarine Sonar Upgrade",
			FundingBody: "Royal Navy",
		}),
	}

	results := e.Search(records, "surveillance ai", NoFilters())
	if len(results) != 1 {
		t.Fatalf("results = %d, want 1", len(results))
	}
	if results[0].Record().ID() != "opp-1" {
		t.Errorf("top result = %s, want opp-1", results[0].Record().ID())
	}

	filters, err := NewFilters(WithSMEFriendly())
	if err != nil {
		t.Fatalf("filters: %v", err)
	}
	filtered := e.Search(records, "surveillance ai", filters)
	if len(filtered) != 1 {
		t.Errorf("sme-filtered results = %d, want 1", len(filtered))
	}

	report := e.Analyze(records, "surveillance ai", NoFilters())
	if report.TotalResults != 1 {
		t.Errorf("total results = %d, want 1", report.TotalResults)
	}
	if len(report.TopFundingBodies) != 1 || report.TopFundingBodies[0].Name != "Dstl" {
		t.Errorf("top funding bodies = %v, want [Dstl]", report.TopFundingBodies)
	}
}

func TestEngine_Suggest(t *testing.T) {
	e := engineForTest(t)

	suggestions := e.Suggest("sur", nil)
	found := false
	for _, s := range suggestions {
		if s == "surveillance" {
			found = true
		}
	}
	if !found {
		t.Errorf("suggestions = %v, want to contain %q", suggestions, "surveillance")
	}
}
