package search

import (
	"sort"
	"testing"

	"github.com/procyonhq/defscope/internal/domain/record"
)

func TestSuggest_MergesSourcesSortedAndCapped(t *testing.T) {
	svc := newService()
	corpus := sampleCorpus(t)

	got := svc.Suggest("sur", corpus)

	// Synonym key "surveillance" plus the four templates, lexicographically
	// sorted.
	want := []string{
		"sur contracts",
		"sur funding",
		"sur opportunities",
		"sur procurement",
		"surveillance",
	}
	if len(got) != len(want) {
		t.Fatalf("suggestions = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("suggestion %d = %q, want %q", i, got[i], want[i])
		}
	}
	if !sort.StringsAreSorted(got) {
		t.Errorf("suggestions not sorted: %v", got)
	}
}

func TestSuggest_IncludesFundingBodies(t *testing.T) {
	svc := newService()
	corpus := sampleCorpus(t)

	got := svc.Suggest("office", corpus)

	seen := map[string]bool{}
	for _, s := range got {
		seen[s] = true
	}
	if !seen["Home Office"] || !seen["Cabinet Office"] {
		t.Errorf("expected funding body names, got %v", got)
	}
}

func TestSuggest_FundingBodiesCappedAtFive(t *testing.T) {
	svc := newService()

	var corpus []record.Record
	for _, body := range []string{
		"Agency One", "Agency Two", "Agency Three", "Agency Four",
		"Agency Five", "Agency Six", "Agency Seven",
	} {
		corpus = append(corpus, makeRecord(t, record.Params{ID: body, FundingBody: body}))
	}

	got := svc.Suggest("agency", corpus)

	bodies := 0
	for _, s := range got {
		if len(s) > 6 && s[:6] == "Agency" {
			bodies++
		}
	}
	if bodies != 5 {
		t.Errorf("expected 5 funding-body suggestions, got %d: %v", bodies, got)
	}
}

func TestSuggest_ShortPartialSkipsTemplates(t *testing.T) {
	svc := newService()

	got := svc.Suggest("ai", nil)
	for _, s := range got {
		if s == "ai opportunities" || s == "ai contracts" {
			t.Errorf("templates must require 3+ characters, got %v", got)
		}
	}
	// "ai" still matches the synonym keys that contain it.
	seen := map[string]bool{}
	for _, s := range got {
		seen[s] = true
	}
	if !seen["ai"] {
		t.Errorf("expected synonym key ai, got %v", got)
	}
}

func TestSuggest_CappedAtTen(t *testing.T) {
	svc := newService()

	var corpus []record.Record
	for _, body := range []string{
		"radar one", "radar two", "radar three", "radar four", "radar five",
	} {
		corpus = append(corpus, makeRecord(t, record.Params{ID: body, FundingBody: body}))
	}

	// synonym key "radar" + 5 bodies + 4 templates = 10 candidates.
	got := svc.Suggest("radar", corpus)
	if len(got) > 10 {
		t.Errorf("expected at most 10 suggestions, got %d: %v", len(got), got)
	}
}

func TestSuggest_EmptyPartial(t *testing.T) {
	svc := newService()
	if got := svc.Suggest("   ", sampleCorpus(t)); got != nil {
		t.Errorf("expected nil for blank partial, got %v", got)
	}
}
