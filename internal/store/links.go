package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"voicelinks/internal/models"
	"voicelinks/internal/shortid"
	"voicelinks/internal/validation"
)

const (
	shortIDLength    = 6
	fallbackIDLength = 8
	// Attempts at the short length before escalating to the larger keyspace.
	maxShortIDAttempts = 5
)

// LinkStore persists share-link records keyed by short identifier.
type LinkStore struct {
	kv KV
}

// NewLinkStore creates a link store on the given keyed store.
func NewLinkStore(kv KV) *LinkStore {
	return &LinkStore{kv: kv}
}

// Create mints a short identifier and persists a link record under it with
// the retention TTL. Identifier uniqueness is enforced by an existence probe:
// up to five 6-character candidates, then one unconditional 8-character
// fallback whose keyspace is large enough that a further check isn't worth a
// round trip.
func (s *LinkStore) Create(ctx context.Context, data models.ShareLinkData) (string, error) {
	if data.URL == "" {
		return "", ErrURLRequired
	}

	id := ""
	for attempt := 0; attempt < maxShortIDAttempts; attempt++ {
		candidate, err := shortid.Generate(shortIDLength)
		if err != nil {
			return "", fmt.Errorf("failed to generate identifier: %w", err)
		}
		exists, err := s.kv.Exists(ctx, linkKey(candidate))
		if err != nil {
			return "", err
		}
		if !exists {
			id = candidate
			break
		}
	}
	if id == "" {
		fallback, err := shortid.Generate(fallbackIDLength)
		if err != nil {
			return "", fmt.Errorf("failed to generate identifier: %w", err)
		}
		id = fallback
	}

	record := models.ShareLink{
		URL:           data.URL,
		Title:         data.Title,
		Transcription: data.Transcription,
		TLDR:          data.TLDR,
		Duration:      normalizeDuration(data.Duration),
		RecordingID:   validation.RecordingIDFromURL(data.URL),
		Created:       time.Now().UTC(),
		Clicks:        0,
	}

	raw, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("failed to marshal link record: %w", err)
	}
	if err := s.kv.Set(ctx, linkKey(id), raw, RetentionTTL); err != nil {
		return "", err
	}
	if err := s.kv.Set(ctx, clicksKey(id), []byte("0"), RetentionTTL); err != nil {
		return "", err
	}

	return id, nil
}

// Get looks up a link record by identifier. Absent or expired records
// return ErrLinkNotFound.
func (s *LinkStore) Get(ctx context.Context, id string) (*models.ShareLink, error) {
	raw, err := s.kv.Get(ctx, linkKey(id))
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return nil, ErrLinkNotFound
		}
		return nil, err
	}

	var record models.ShareLink
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal link record: %w", err)
	}
	return &record, nil
}

// IncrementClicks bumps the link's click counter. Callers invoke it
// fire-and-forget; losing an increment is acceptable.
func (s *LinkStore) IncrementClicks(ctx context.Context, id string) error {
	_, err := s.kv.Incr(ctx, clicksKey(id))
	return err
}

// normalizeDuration treats non-finite durations as absent.
func normalizeDuration(d *float64) *float64 {
	if d == nil || math.IsNaN(*d) || math.IsInf(*d, 0) {
		return nil
	}
	return d
}
