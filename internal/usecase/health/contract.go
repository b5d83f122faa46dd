package health

import "context"

// CorpusPinger checks corpus store availability.
type CorpusPinger interface {
	Ping(ctx context.Context) error
}
