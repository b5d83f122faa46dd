package classify

import (
	"testing"

	"github.com/procyonhq/defscope/internal/domain/record"
	"github.com/procyonhq/defscope/internal/lexicon"
)

func makeRecord(t *testing.T, title, description, fundingBody string) record.Record {
	t.Helper()
	rec, err := record.New(record.Params{
		ID:          "r1",
		Title:       title,
		Description: description,
		FundingBody: fundingBody,
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	return rec
}

func TestClassify_ExclusionDominates(t *testing.T) {
	svc := New(lexicon.Default())

	// Exclusion keyword rejects even with strong inclusion signals present.
	rec := makeRecord(t,
		"Missile Base Catering Contract",
		"Full catering services for a military site",
		"Royal Navy",
	)
	if svc.Classify(rec) {
		t.Fatal("expected rejection: exclusion keyword present")
	}

	score, accepted := svc.Score(rec)
	if accepted || score != 0 {
		t.Errorf("expected (0, false) after exclusion, got (%d, %v)", score, accepted)
	}
}

func TestClassify_ThresholdBoundary(t *testing.T) {
	svc := New(lexicon.Default())

	tests := []struct {
		name   string
		title  string
		score  int
		accept bool
	}{
		{"single high-value keyword", "Missile guidance study", 5, true},
		{"single medium keyword", "Avionics upgrade", 3, false},
		{"two medium keywords", "Avionics and encryption upgrade", 6, true},
		{"single organisation", "Framework notice from dstl", 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := makeRecord(t, tt.title, "", "")
			score, accepted := svc.Score(rec)
			if score != tt.score {
				t.Errorf("score = %d, want %d", score, tt.score)
			}
			if accepted != tt.accept {
				t.Errorf("accepted = %v, want %v", accepted, tt.accept)
			}
		})
	}
}

func TestClassify_TechKeywordNeedsContext(t *testing.T) {
	svc := New(lexicon.Default())

	t.Run("bare technology keyword scores nothing", func(t *testing.T) {
		rec := makeRecord(t, "ai platform", "", "")
		score, accepted := svc.Score(rec)
		if score != 0 || accepted {
			t.Errorf("expected (0, false), got (%d, %v)", score, accepted)
		}
	})

	t.Run("context marker enables the bonus but does not accept alone", func(t *testing.T) {
		rec := makeRecord(t, "ai systems", "for battlefield use", "")
		score, accepted := svc.Score(rec)
		if score != 2 || accepted {
			t.Errorf("expected (2, false), got (%d, %v)", score, accepted)
		}
	})

	t.Run("medium keyword plus contextual technology reaches threshold", func(t *testing.T) {
		rec := makeRecord(t, "ai avionics", "for battlefield use", "")
		score, accepted := svc.Score(rec)
		if score != 5 || !accepted {
			t.Errorf("expected (5, true), got (%d, %v)", score, accepted)
		}
	})
}

func TestClassify_EmptyFields(t *testing.T) {
	svc := New(lexicon.Default())

	rec := makeRecord(t, "", "", "")
	if svc.Classify(rec) {
		t.Fatal("empty record must be rejected, not accepted")
	}
}

func TestClassify_Idempotent(t *testing.T) {
	svc := New(lexicon.Default())
	rec := makeRecord(t, "Submarine Sonar Upgrade", "", "Royal Navy")

	first := svc.Classify(rec)
	for i := 0; i < 10; i++ {
		if svc.Classify(rec) != first {
			t.Fatal("classification is not idempotent")
		}
	}
	if !first {
		t.Fatal("expected acceptance for submarine sonar record")
	}
}
