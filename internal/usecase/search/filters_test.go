package search

import (
	"testing"
	"time"

	"github.com/procyonhq/defscope/internal/domain/record"
	"github.com/procyonhq/defscope/internal/domain/search/filter"
)

func filterCorpus(t *testing.T) []record.Record {
	t.Helper()
	soon := now.Add(5 * 24 * time.Hour)
	later := now.Add(45 * 24 * time.Hour)
	return []record.Record{
		makeRecord(t, record.Params{
			ID:            "f1",
			Title:         "Radar Research",
			FundingBody:   "Ministry of Defence",
			TechTags:      []string{"Radar", "Sensors"},
			FundingAmount: "£2,500,000",
			ClosingDate:   &soon,
			Status:        record.StatusActive,
			SMEScore:      0.8,
		}),
		makeRecord(t, record.Params{
			ID:            "f2",
			Title:         "Cyber Defence Framework",
			FundingBody:   "Dstl",
			TechTags:      []string{"Cyber"},
			FundingAmount: "£25K - £1M",
			ClosingDate:   &later,
			Status:        record.StatusActive,
			SMEScore:      0.4,
		}),
		makeRecord(t, record.Params{
			ID:            "f3",
			Title:         "Quantum Sensing Trials",
			FundingBody:   "DASA",
			TechTags:      []string{"Quantum"},
			FundingAmount: "TBD",
			Status:        record.StatusClosed,
			SMEScore:      0.7,
		}),
	}
}

func ids(records []record.Record) []string {
	out := make([]string, len(records))
	for i := range records {
		out[i] = records[i].ID()
	}
	return out
}

func mustFilters(t *testing.T, opts ...filter.Option) filter.Filters {
	t.Helper()
	f, err := filter.New(opts...)
	if err != nil {
		t.Fatalf("filters: %v", err)
	}
	return f
}

func TestApplyFilters_EmptyPassesEverything(t *testing.T) {
	corpus := filterCorpus(t)
	kept := ApplyFilters(corpus, filter.None(), now)
	if len(kept) != len(corpus) {
		t.Fatalf("expected all %d records, got %d", len(corpus), len(kept))
	}
}

func TestApplyFilters_Predicates(t *testing.T) {
	corpus := filterCorpus(t)
	valueMin := 1_000_000.0
	valueMax := 100_000.0

	tests := []struct {
		name string
		f    filter.Filters
		want []string
	}{
		{
			name: "funding body substring is case-insensitive",
			f:    mustFilters(t, filter.WithFundingBodies("ministry")),
			want: []string{"f1"},
		},
		{
			name: "multiple funding bodies OR together",
			f:    mustFilters(t, filter.WithFundingBodies("dstl", "dasa")),
			want: []string{"f2", "f3"},
		},
		{
			name: "tech area exact membership",
			f:    mustFilters(t, filter.WithTechAreas("Cyber")),
			want: []string{"f2"},
		},
		{
			name: "tech area does not substring match",
			f:    mustFilters(t, filter.WithTechAreas("Cyb")),
			want: []string{},
		},
		{
			name: "value minimum drops unextractable amounts",
			f:    mustFilters(t, filter.WithValueRange(&valueMin, nil)),
			want: []string{"f1"},
		},
		{
			name: "value maximum uses first extracted token",
			f:    mustFilters(t, filter.WithValueRange(nil, &valueMax)),
			want: []string{"f2"}, // "£25K - £1M" extracts as 25000
		},
		{
			name: "deadline proximity drops records without a date",
			f:    mustFilters(t, filter.WithDeadlineDays(14)),
			want: []string{"f1"},
		},
		{
			name: "wider deadline window",
			f:    mustFilters(t, filter.WithDeadlineDays(60)),
			want: []string{"f1", "f2"},
		},
		{
			name: "sme friendly threshold",
			f:    mustFilters(t, filter.WithSMEFriendly()),
			want: []string{"f1", "f3"},
		},
		{
			name: "status exact match",
			f:    mustFilters(t, filter.WithStatus("closed")),
			want: []string{"f3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(ApplyFilters(corpus, tt.f, now))
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestApplyFilters_IntersectionSemantics(t *testing.T) {
	corpus := filterCorpus(t)

	combined := mustFilters(t,
		filter.WithFundingBodies("ministry", "dstl"),
		filter.WithSMEFriendly(),
	)
	f1 := mustFilters(t, filter.WithFundingBodies("ministry", "dstl"))
	f2 := mustFilters(t, filter.WithSMEFriendly())

	got := ids(ApplyFilters(corpus, combined, now))
	sequential := ids(ApplyFilters(ApplyFilters(corpus, f1, now), f2, now))

	if len(got) != len(sequential) {
		t.Fatalf("combined %v != sequential %v", got, sequential)
	}
	for i := range got {
		if got[i] != sequential[i] {
			t.Fatalf("combined %v != sequential %v", got, sequential)
		}
	}
	if len(got) != 1 || got[0] != "f1" {
		t.Errorf("expected only f1, got %v", got)
	}
}

func TestApplyFilters_UnsetOptionsIgnored(t *testing.T) {
	corpus := filterCorpus(t)

	// Only status is set; value/deadline/sme predicates must not run.
	f := mustFilters(t, filter.WithStatus("active"))
	got := ids(ApplyFilters(corpus, f, now))
	if len(got) != 2 || got[0] != "f1" || got[1] != "f2" {
		t.Errorf("expected f1 and f2, got %v", got)
	}
}
