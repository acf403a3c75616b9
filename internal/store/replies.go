package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"voicelinks/internal/models"
	"voicelinks/internal/shortid"
)

const replyIDLength = 8

// ThreadStore maintains the append-only reply thread of each recording.
// Reply bodies are stored individually with the retention TTL; a sorted
// index per recording orders them by timestamp, so read order is stable
// regardless of the order appends arrived in.
type ThreadStore struct {
	kv KV
}

// NewThreadStore creates a thread store on the given keyed store.
func NewThreadStore(kv KV) *ThreadStore {
	return &ThreadStore{kv: kv}
}

// Append persists a reply and inserts it into the recording's thread index,
// scored by its timestamp in epoch milliseconds. A missing timestamp is
// server-assigned. Returns the new reply identifier.
//
// The body write and the index insert are two keys; if the second fails the
// body is left unreferenced and ages out with its TTL.
func (s *ThreadStore) Append(ctx context.Context, recordingID string, reply *models.Reply) (string, error) {
	if recordingID == "" {
		return "", ErrRecordingIDRequired
	}

	if reply.Timestamp == "" {
		reply.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
	}
	ts, err := time.Parse(time.RFC3339Nano, reply.Timestamp)
	if err != nil {
		return "", ErrInvalidTimestamp
	}

	id, err := shortid.Generate(replyIDLength)
	if err != nil {
		return "", fmt.Errorf("failed to generate reply identifier: %w", err)
	}

	reply.ID = id
	reply.RecordingID = recordingID

	raw, err := json.Marshal(reply)
	if err != nil {
		return "", fmt.Errorf("failed to marshal reply: %w", err)
	}
	if err := s.kv.Set(ctx, replyKey(id), raw, RetentionTTL); err != nil {
		return "", err
	}

	score := float64(ts.UnixMilli())
	if err := s.kv.ZAdd(ctx, threadKey(recordingID), score, id); err != nil {
		return "", err
	}
	// Refresh the index TTL on every append so the index never outlives
	// the retention of its newest body.
	if err := s.kv.Expire(ctx, threadKey(recordingID), RetentionTTL); err != nil {
		return "", err
	}

	return id, nil
}

// GetThread returns a recording's replies in ascending timestamp order.
// Index members whose bodies have expired are skipped so a partially
// expired thread degrades instead of erroring. An unknown recording yields
// an empty slice.
func (s *ThreadStore) GetThread(ctx context.Context, recordingID string) ([]models.Reply, error) {
	if recordingID == "" {
		return nil, ErrRecordingIDRequired
	}

	ids, err := s.kv.ZRange(ctx, threadKey(recordingID))
	if err != nil {
		return nil, err
	}

	replies := make([]models.Reply, 0, len(ids))
	for _, id := range ids {
		raw, err := s.kv.Get(ctx, replyKey(id))
		if err != nil {
			if errors.Is(err, ErrKeyNotFound) {
				continue
			}
			return nil, err
		}
		var reply models.Reply
		if err := json.Unmarshal(raw, &reply); err != nil {
			// Unreadable body: skip it like an expired one.
			continue
		}
		replies = append(replies, reply)
	}
	return replies, nil
}

// GetThreadWithCount returns the ordered thread plus the index cardinality.
// The count is authoritative for "how many replies were ever added" and may
// exceed the number of resolved bodies once some have expired.
func (s *ThreadStore) GetThreadWithCount(ctx context.Context, recordingID string) ([]models.Reply, int64, error) {
	count, err := s.kv.ZCard(ctx, threadKey(recordingID))
	if err != nil {
		return nil, 0, err
	}
	replies, err := s.GetThread(ctx, recordingID)
	if err != nil {
		return nil, 0, err
	}
	return replies, count, nil
}
