package corpus

import (
	"context"
	"fmt"
	"sort"

	"github.com/procyonhq/defscope/internal/domain/record"
)

// store is the consumer interface for the Redis corpus (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Scan(ctx context.Context, pattern string) ([]string, error)
	Ping(ctx context.Context) error
}

// Redis persists records as JSON values, one key per record.
type Redis struct {
	store     store
	keyPrefix string
}

// NewRedis creates a Redis-backed corpus repository.
func NewRedis(s store, keyPrefix string) *Redis {
	return &Redis{store: s, keyPrefix: keyPrefix}
}

// Store upserts records, one SET per record.
func (r *Redis) Store(ctx context.Context, records ...record.Record) error {
	for _, rec := range records {
		data, err := recordToJSON(rec)
		if err != nil {
			return err
		}
		if err := r.store.Set(ctx, r.recordKey(rec.ID()), data); err != nil {
			return fmt.Errorf("set record %s: %w", rec.ID(), err)
		}
	}
	return nil
}

// List returns all records. SCAN yields keys in arbitrary order, so the
// result is sorted by key to stay deterministic across calls.
func (r *Redis) List(ctx context.Context) ([]record.Record, error) {
	keys, err := r.store.Scan(ctx, r.recordKey("*"))
	if err != nil {
		return nil, fmt.Errorf("scan records: %w", err)
	}
	sort.Strings(keys)

	records := make([]record.Record, 0, len(keys))
	for _, key := range keys {
		data, err := r.store.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("get record %s: %w", key, err)
		}
		rec, err := recordFromJSON(data)
		if err != nil {
			return nil, fmt.Errorf("parse record %s: %w", key, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// Count returns the number of stored records.
func (r *Redis) Count(ctx context.Context) (int, error) {
	keys, err := r.store.Scan(ctx, r.recordKey("*"))
	if err != nil {
		return 0, fmt.Errorf("scan records: %w", err)
	}
	return len(keys), nil
}

// Ping checks store connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	return r.store.Ping(ctx)
}

// Redis key pattern: defscope:record:{id}
func (r *Redis) recordKey(id string) string {
	return fmt.Sprintf("%srecord:%s", r.keyPrefix, id)
}
