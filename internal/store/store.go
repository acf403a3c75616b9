// Package store persists share links and reply threads in a durable keyed
// store. All coordination happens through the store's per-key atomic
// primitives; the package holds no in-process mutable state.
package store

import (
	"context"
	"time"
)

// RetentionTTL is how long link records and reply bodies live before the
// store expires them.
const RetentionTTL = 365 * 24 * time.Hour

// KV is the durable keyed-store contract the link and thread stores are
// built on. Implementations must provide per-key atomicity and TTL-based
// expiry.
type KV interface {
	// Set stores value under key with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Get returns the value for key, or ErrKeyNotFound if absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)
	// Exists reports whether key holds a live value.
	Exists(ctx context.Context, key string) (bool, error)
	// Incr atomically increments the integer counter at key.
	Incr(ctx context.Context, key string) (int64, error)
	// ZAdd inserts member into the sorted index at key with the given score.
	ZAdd(ctx context.Context, key string, score float64, member string) error
	// ZRange returns all members of the sorted index at key in ascending
	// score order. A missing index yields an empty slice, not an error.
	ZRange(ctx context.Context, key string) ([]string, error)
	// ZCard returns the cardinality of the sorted index at key.
	ZCard(ctx context.Context, key string) (int64, error)
	// Expire sets or refreshes the TTL on key.
	Expire(ctx context.Context, key string, ttl time.Duration) error
}

func linkKey(id string) string   { return "share:" + id }
func clicksKey(id string) string { return "share:" + id + ":clicks" }
func replyKey(id string) string  { return "reply:" + id }
func threadKey(recordingID string) string {
	return "replies:" + recordingID
}
