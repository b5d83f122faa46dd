package ingest

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/procyonhq/defscope/internal/domain/record"
	"github.com/procyonhq/defscope/internal/lexicon"
	"github.com/procyonhq/defscope/internal/usecase/classify"
)

type memoryWriter struct {
	mu      sync.Mutex
	records []record.Record
}

func (w *memoryWriter) Store(_ context.Context, records ...record.Record) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.records = append(w.records, records...)
	return nil
}

type failingWriter struct{}

func (failingWriter) Store(context.Context, ...record.Record) error {
	return fmt.Errorf("store down")
}

func makeRecord(t *testing.T, id, title string) record.Record {
	t.Helper()
	rec, err := record.New(record.Params{ID: id, Title: title})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	return rec
}

func TestIngest_ClassifiesAndStores(t *testing.T) {
	writer := &memoryWriter{}
	p, err := New(classify.New(lexicon.Default()), writer, 4, nil)
	if err != nil {
		t.Fatalf("pipeline: %v", err)
	}
	defer p.Release()

	records := []record.Record{
		makeRecord(t, "a", "Missile guidance study"),
		makeRecord(t, "b", "Office catering services"),
		makeRecord(t, "c", "Submarine sonar upgrade"),
	}

	res, err := p.Ingest(context.Background(), records)
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if res.Accepted != 2 || res.Rejected != 1 {
		t.Fatalf("result = %+v, want 2 accepted / 1 rejected", res)
	}

	if len(writer.records) != 2 {
		t.Fatalf("stored %d records, want 2", len(writer.records))
	}
	// Input order survives parallel classification.
	if writer.records[0].ID() != "a" || writer.records[1].ID() != "c" {
		t.Errorf("stored order = %s, %s", writer.records[0].ID(), writer.records[1].ID())
	}
}

func TestIngest_EmptyBatch(t *testing.T) {
	writer := &memoryWriter{}
	p, err := New(classify.New(lexicon.Default()), writer, 1, nil)
	if err != nil {
		t.Fatalf("pipeline: %v", err)
	}
	defer p.Release()

	res, err := p.Ingest(context.Background(), nil)
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if res.Accepted != 0 || res.Rejected != 0 {
		t.Errorf("result = %+v, want zeroes", res)
	}
	if len(writer.records) != 0 {
		t.Errorf("unexpected stored records: %d", len(writer.records))
	}
}

func TestIngest_StoreFailureSurfaces(t *testing.T) {
	p, err := New(classify.New(lexicon.Default()), failingWriter{}, 2, nil)
	if err != nil {
		t.Fatalf("pipeline: %v", err)
	}
	defer p.Release()

	_, err = p.Ingest(context.Background(), []record.Record{
		makeRecord(t, "a", "Missile guidance study"),
	})
	if err == nil {
		t.Fatal("expected error when the corpus store fails")
	}
}

func TestIngest_LargeBatchParallel(t *testing.T) {
	writer := &memoryWriter{}
	p, err := New(classify.New(lexicon.Default()), writer, 8, nil)
	if err != nil {
		t.Fatalf("pipeline: %v", err)
	}
	defer p.Release()

	var records []record.Record
	for i := 0; i < 200; i++ {
		title := "Office catering services"
		if i%2 == 0 {
			title = "Submarine sonar upgrade"
		}
		records = append(records, makeRecord(t, fmt.Sprintf("r%03d", i), title))
	}

	res, err := p.Ingest(context.Background(), records)
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if res.Accepted != 100 || res.Rejected != 100 {
		t.Fatalf("result = %+v, want 100/100", res)
	}

	// Accepted records keep ascending input order.
	for i := 1; i < len(writer.records); i++ {
		if writer.records[i-1].ID() >= writer.records[i].ID() {
			t.Fatalf("order broken at %d: %s >= %s",
				i, writer.records[i-1].ID(), writer.records[i].ID())
		}
	}
}
