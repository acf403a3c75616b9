package store

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"
)

// memKV is an in-memory KV for tests. TTLs are recorded but never enforced;
// tests simulate expiry by deleting keys directly.
type memKV struct {
	mu   sync.Mutex
	data map[string][]byte
	ttls map[string]time.Duration
	zset map[string]map[string]float64
}

func newMemKV() *memKV {
	return &memKV{
		data: make(map[string][]byte),
		ttls: make(map[string]time.Duration),
		zset: make(map[string]map[string]float64),
	}
}

func (m *memKV) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	m.ttls[key] = ttl
	return nil
}

func (m *memKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *memKV) Exists(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok, nil
}

func (m *memKV) Incr(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, _ := strconv.ParseInt(string(m.data[key]), 10, 64)
	n++
	m.data[key] = []byte(strconv.FormatInt(n, 10))
	return n, nil
}

func (m *memKV) ZAdd(_ context.Context, key string, score float64, member string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.zset[key] == nil {
		m.zset[key] = make(map[string]float64)
	}
	m.zset[key][member] = score
	return nil
}

func (m *memKV) ZRange(_ context.Context, key string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	members := make([]string, 0, len(m.zset[key]))
	for member := range m.zset[key] {
		members = append(members, member)
	}
	scores := m.zset[key]
	sort.Slice(members, func(i, j int) bool {
		if scores[members[i]] != scores[members[j]] {
			return scores[members[i]] < scores[members[j]]
		}
		return members[i] < members[j]
	})
	return members, nil
}

func (m *memKV) ZCard(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.zset[key])), nil
}

func (m *memKV) Expire(_ context.Context, key string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ttls[key] = ttl
	return nil
}

// delete removes a key, simulating TTL expiry.
func (m *memKV) delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
}
