package ingest

import (
	"context"

	"github.com/procyonhq/defscope/internal/domain/record"
)

// CorpusWriter persists accepted records.
type CorpusWriter interface {
	Store(ctx context.Context, records ...record.Record) error
}

// Classifier decides corpus membership for a single record.
type Classifier interface {
	Classify(rec record.Record) bool
}
