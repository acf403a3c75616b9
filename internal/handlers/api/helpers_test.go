package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"

	"voicelinks/internal/config"
	"voicelinks/internal/store"
)

// fakeKV is an in-memory store.KV for handler tests.
type fakeKV struct {
	mu   sync.Mutex
	data map[string][]byte
	zset map[string]map[string]float64
}

func newFakeKV() *fakeKV {
	return &fakeKV{
		data: make(map[string][]byte),
		zset: make(map[string]map[string]float64),
	}
}

func (f *fakeKV) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = append([]byte(nil), value...)
	return nil
}

func (f *fakeKV) Get(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	if !ok {
		return nil, store.ErrKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

func (f *fakeKV) Exists(_ context.Context, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.data[key]
	return ok, nil
}

func (f *fakeKV) Incr(_ context.Context, key string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, _ := strconv.ParseInt(string(f.data[key]), 10, 64)
	n++
	f.data[key] = []byte(strconv.FormatInt(n, 10))
	return n, nil
}

func (f *fakeKV) ZAdd(_ context.Context, key string, score float64, member string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.zset[key] == nil {
		f.zset[key] = make(map[string]float64)
	}
	f.zset[key][member] = score
	return nil
}

func (f *fakeKV) ZRange(_ context.Context, key string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	members := make([]string, 0, len(f.zset[key]))
	for member := range f.zset[key] {
		members = append(members, member)
	}
	scores := f.zset[key]
	sort.Slice(members, func(i, j int) bool {
		if scores[members[i]] != scores[members[j]] {
			return scores[members[i]] < scores[members[j]]
		}
		return members[i] < members[j]
	})
	return members, nil
}

func (f *fakeKV) ZCard(_ context.Context, key string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.zset[key])), nil
}

func (f *fakeKV) Expire(_ context.Context, _ string, _ time.Duration) error {
	return nil
}

// raw returns the stored bytes for key without error translation.
func (f *fakeKV) raw(key string) []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]byte(nil), f.data[key]...)
}

// newTestApp wires the share link and reply handlers onto a bare app.
func newTestApp(kv store.KV) *fiber.App {
	cfg := &config.Config{BaseURL: "http://localhost:3001"}

	shareLinkHandler := NewShareLinkHandler(store.NewLinkStore(kv), cfg)
	replyHandler := NewReplyHandler(store.NewThreadStore(kv))

	app := fiber.New()
	app.Post("/api/create-share-link", shareLinkHandler.Create)
	app.Get("/api/get-share-link", shareLinkHandler.Resolve)
	app.Post("/api/recordings/:recordingId/replies", replyHandler.Append)
	app.Get("/api/recordings/:recordingId/replies", replyHandler.List)
	app.Get("/api/recordings/:recordingId/thread", replyHandler.Summary)
	return app
}

// doJSON sends a JSON request and decodes the JSON response into out.
func doJSON(t *testing.T, app *fiber.App, method, path string, body any, out any) *http.Response {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("%s %s: failed to decode response: %v", method, path, err)
		}
	}
	return resp
}

func errorMessage(t *testing.T, body map[string]any) string {
	t.Helper()
	msg, _ := body["error"].(string)
	return msg
}
