package sessions

import (
	"context"
	"slices"
	"sync"
	"time"
)

type memSession struct {
	data   []byte
	expire time.Time
}

// MemoryStore keeps sessions in process memory with the same expiry rules as
// Store. It is meant for tests and single-process development.
type MemoryStore struct {
	mu   sync.Mutex
	rows map[string]memSession
	ttl  time.Duration
	now  func() time.Time
}

func NewMemoryStore(ttl time.Duration, now func() time.Time) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{rows: make(map[string]memSession), ttl: ttl, now: now}
}

func (m *MemoryStore) live(s memSession) bool {
	return !s.expire.Before(m.now())
}

func (m *MemoryStore) Get(_ context.Context, sid string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.rows[sid]
	if !ok || !m.live(s) {
		return nil, false, nil
	}
	return slices.Clone(s.data), true, nil
}

func (m *MemoryStore) Set(_ context.Context, sid string, data []byte, expiresAt time.Time) error {
	if err := validatePayload(data); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if expiresAt.IsZero() {
		expiresAt = m.now().Add(m.ttl)
	}
	m.rows[sid] = memSession{data: slices.Clone(data), expire: expiresAt}
	return nil
}

func (m *MemoryStore) Destroy(_ context.Context, sid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rows, sid)
	return nil
}

func (m *MemoryStore) Touch(_ context.Context, sid string, expiresAt time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.rows[sid]
	if !ok || !m.live(s) {
		return false, nil
	}
	if expiresAt.IsZero() {
		expiresAt = m.now().Add(m.ttl)
	}
	s.expire = expiresAt
	m.rows[sid] = s
	return true, nil
}

func (m *MemoryStore) Length(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, s := range m.rows {
		if m.live(s) {
			n++
		}
	}
	return n, nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.rows)
	return nil
}

func (m *MemoryStore) Prune(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for sid, s := range m.rows {
		if !m.live(s) {
			delete(m.rows, sid)
			n++
		}
	}
	return n, nil
}
