package store

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"voicelinks/internal/models"
	"voicelinks/internal/shortid"
)

func strPtr(s string) *string   { return &s }
func numPtr(f float64) *float64 { return &f }

func TestCreateAndGetLink(t *testing.T) {
	kv := newMemKV()
	links := NewLinkStore(kv)
	ctx := context.Background()

	id, err := links.Create(ctx, models.ShareLinkData{
		URL:      "https://bucket.s3.amazonaws.com/shared/recording-42.webm",
		Title:    strPtr("Standup notes"),
		Duration: numPtr(5),
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if !shortid.IsShortID(id) {
		t.Fatalf("Create() returned identifier %q outside the short-ID format", id)
	}
	if len(id) != 6 {
		t.Errorf("Create() identifier length = %d, want 6 on a collision-free store", len(id))
	}

	record, err := links.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get(%q) error = %v", id, err)
	}
	if record.URL != "https://bucket.s3.amazonaws.com/shared/recording-42.webm" {
		t.Errorf("URL = %q", record.URL)
	}
	if record.Title == nil || *record.Title != "Standup notes" {
		t.Errorf("Title = %v, want %q", record.Title, "Standup notes")
	}
	if record.Transcription != nil {
		t.Errorf("Transcription = %v, want nil", record.Transcription)
	}
	if record.TLDR != nil {
		t.Errorf("TLDR = %v, want nil", record.TLDR)
	}
	if record.Duration == nil || *record.Duration != 5 {
		t.Errorf("Duration = %v, want 5", record.Duration)
	}
	if record.RecordingID != "recording-42" {
		t.Errorf("RecordingID = %q, want %q", record.RecordingID, "recording-42")
	}
	if record.Clicks != 0 {
		t.Errorf("Clicks = %d, want 0", record.Clicks)
	}
	if record.Created.IsZero() {
		t.Error("Created timestamp not set")
	}
}

func TestCreateRequiresURL(t *testing.T) {
	links := NewLinkStore(newMemKV())

	_, err := links.Create(context.Background(), models.ShareLinkData{})
	if !errors.Is(err, ErrURLRequired) {
		t.Errorf("Create() error = %v, want ErrURLRequired", err)
	}
}

func TestCreateStoresWithRetentionTTL(t *testing.T) {
	kv := newMemKV()
	links := NewLinkStore(kv)

	id, err := links.Create(context.Background(), models.ShareLinkData{URL: "https://x/a.webm"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if got := kv.ttls[linkKey(id)]; got != RetentionTTL {
		t.Errorf("record TTL = %v, want %v", got, RetentionTTL)
	}
	if got := kv.ttls[clicksKey(id)]; got != RetentionTTL {
		t.Errorf("counter TTL = %v, want %v", got, RetentionTTL)
	}
}

func TestGetMissingLink(t *testing.T) {
	links := NewLinkStore(newMemKV())

	_, err := links.Get(context.Background(), "AAAAAA")
	if !errors.Is(err, ErrLinkNotFound) {
		t.Errorf("Get() error = %v, want ErrLinkNotFound", err)
	}
}

func TestGetExpiredLink(t *testing.T) {
	kv := newMemKV()
	links := NewLinkStore(kv)
	ctx := context.Background()

	id, err := links.Create(ctx, models.ShareLinkData{URL: "https://x/a.webm"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	kv.delete(linkKey(id))

	if _, err := links.Get(ctx, id); !errors.Is(err, ErrLinkNotFound) {
		t.Errorf("Get() after expiry error = %v, want ErrLinkNotFound", err)
	}
}

func TestCreateNormalizesDuration(t *testing.T) {
	kv := newMemKV()
	links := NewLinkStore(kv)
	ctx := context.Background()

	id, err := links.Create(ctx, models.ShareLinkData{URL: "https://x/a.webm", Duration: numPtr(math.NaN())})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	record, err := links.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if record.Duration != nil {
		t.Errorf("Duration = %v, want nil for non-finite input", record.Duration)
	}
}

func TestIncrementClicks(t *testing.T) {
	kv := newMemKV()
	links := NewLinkStore(kv)
	ctx := context.Background()

	id, err := links.Create(ctx, models.ShareLinkData{URL: "https://x/a.webm"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := links.IncrementClicks(ctx, id); err != nil {
			t.Fatalf("IncrementClicks() error = %v", err)
		}
	}

	raw, err := kv.Get(ctx, clicksKey(id))
	if err != nil {
		t.Fatalf("counter read error = %v", err)
	}
	if string(raw) != "3" {
		t.Errorf("click counter = %s, want 3", raw)
	}
}

// collidingKV reports every 6-character link key as taken, forcing the
// store through all short-length attempts.
type collidingKV struct {
	*memKV
	probes int
}

func (c *collidingKV) Exists(ctx context.Context, key string) (bool, error) {
	c.probes++
	return true, nil
}

func TestCreateEscalatesToLongIdentifier(t *testing.T) {
	kv := &collidingKV{memKV: newMemKV()}
	links := NewLinkStore(kv)
	ctx := context.Background()

	id, err := links.Create(ctx, models.ShareLinkData{URL: "https://x/a.webm"})
	if err != nil {
		t.Fatalf("Create() error = %v, want success via 8-char fallback", err)
	}
	if len(id) != 8 {
		t.Errorf("identifier length = %d, want 8 after exhausted short attempts", len(id))
	}
	if kv.probes != 5 {
		t.Errorf("existence probes = %d, want 5", kv.probes)
	}

	record, err := links.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if record.URL != "https://x/a.webm" {
		t.Errorf("URL = %q", record.URL)
	}
}

func TestCreatedTimestampIsRecent(t *testing.T) {
	kv := newMemKV()
	links := NewLinkStore(kv)
	ctx := context.Background()

	before := time.Now().UTC().Add(-time.Second)
	id, err := links.Create(ctx, models.ShareLinkData{URL: "https://x/a.webm"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	record, err := links.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if record.Created.Before(before) || record.Created.After(time.Now().UTC().Add(time.Second)) {
		t.Errorf("Created = %v, outside the call window", record.Created)
	}
}
