// Package ingest accepts raw records from the acquisition side, classifies
// them for relevance, and stores the survivors in the corpus.
package ingest

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/procyonhq/defscope/internal/domain/record"
)

// Result reports the outcome of one ingest batch.
type Result struct {
	Accepted int
	Rejected int
}

// Pipeline classifies incoming record batches on a bounded worker pool.
// Classification is a pure per-record function, so batches parallelize
// freely; input order of the accepted set is preserved regardless of
// worker scheduling.
type Pipeline struct {
	classifier Classifier
	corpus     CorpusWriter
	pool       *ants.Pool
	logger     *zap.Logger
}

// New creates an ingest pipeline. poolSize <= 0 defaults to half the CPUs,
// minimum 1.
func New(classifier Classifier, corpus CorpusWriter, poolSize int, logger *zap.Logger) (*Pipeline, error) {
	if poolSize <= 0 {
		poolSize = runtime.NumCPU() / 2
	}
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}

	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{classifier: classifier, corpus: corpus, pool: pool, logger: logger}, nil
}

// Ingest classifies the batch in parallel and stores the accepted records.
// A pool submission failure for one record degrades to inline
// classification rather than failing the batch (skip-and-continue belongs
// to acquisition; the gate itself never drops a record unclassified).
func (p *Pipeline) Ingest(ctx context.Context, records []record.Record) (Result, error) {
	if len(records) == 0 {
		return Result{}, nil
	}

	decisions := make([]bool, len(records))
	var wg sync.WaitGroup

	for i := range records {
		i := i
		wg.Add(1)
		task := func() {
			defer wg.Done()
			decisions[i] = p.classifier.Classify(records[i])
		}
		if err := p.pool.Submit(task); err != nil {
			p.logger.Warn("pool submit failed, classifying inline", zap.Error(err))
			task()
		}
	}
	wg.Wait()

	accepted := make([]record.Record, 0, len(records))
	for i, ok := range decisions {
		if ok {
			accepted = append(accepted, records[i])
		}
	}

	if len(accepted) > 0 {
		if err := p.corpus.Store(ctx, accepted...); err != nil {
			return Result{}, fmt.Errorf("store accepted records: %w", err)
		}
	}

	res := Result{Accepted: len(accepted), Rejected: len(records) - len(accepted)}
	p.logger.Info("ingest batch classified",
		zap.Int("received", len(records)),
		zap.Int("accepted", res.Accepted),
		zap.Int("rejected", res.Rejected),
	)
	return res, nil
}

// Release shuts down the worker pool. The pipeline must not be used after.
func (p *Pipeline) Release() {
	p.pool.Release()
}
