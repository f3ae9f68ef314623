// Package cache provides the report result cache. Reports over large date
// ranges re-read every invoice in range, so computed results are cached
// with a short TTL and invalidated whenever billing data changes.
package cache

import (
	"context"
	"time"
)

// ReportCache stores serialized report results keyed by report parameters
type ReportCache interface {
	// Get returns the cached payload for key, or ok=false on a miss
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores the payload under key with the given TTL
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
	// InvalidateAll drops every cached report
	InvalidateAll(ctx context.Context) error
	// Close releases any underlying resources
	Close() error
}
