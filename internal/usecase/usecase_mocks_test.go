package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"ayunova/internal/domain/profile"
	"ayunova/internal/domain/wellness"

	"github.com/google/uuid"
)

type mockProfileRepo struct {
	mu    sync.Mutex
	rows  map[uuid.UUID]profile.Profile
	err   error
	calls int
}

func (m *mockProfileRepo) FindByID(ctx context.Context, id uuid.UUID) (profile.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return profile.Profile{}, m.err
	}
	p, ok := m.rows[id]
	if !ok {
		return profile.Profile{}, profile.ErrNotFound
	}
	return p, nil
}

func (m *mockProfileRepo) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type mockCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	ttls    map[string]time.Duration
	readErr error
}

func newMockCache() *mockCache {
	return &mockCache{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (c *mockCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.readErr != nil {
		return false, c.readErr
	}
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *mockCache) SetJSON(_ context.Context, key string, value any, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = b
	c.ttls[key] = ttl
	return nil
}

type mockWellnessRepo struct {
	assessment *wellness.DoshaAssessment
	plans      []wellness.WellnessPlan
	logs       []wellness.LifestyleLog
	insights   []wellness.Insight
	planErr    error
	limit      int
}

func (m *mockWellnessRepo) LatestDoshaAssessment(context.Context, uuid.UUID) (*wellness.DoshaAssessment, error) {
	return m.assessment, nil
}

func (m *mockWellnessRepo) ListWellnessPlans(context.Context, uuid.UUID) ([]wellness.WellnessPlan, error) {
	return m.plans, m.planErr
}

func (m *mockWellnessRepo) ListLifestyleLogs(context.Context, uuid.UUID) ([]wellness.LifestyleLog, error) {
	return m.logs, nil
}

func (m *mockWellnessRepo) ListInsights(_ context.Context, _ uuid.UUID, limit int) ([]wellness.Insight, error) {
	m.limit = limit
	return m.insights, nil
}

type stubWellness struct {
	snap wellness.Snapshot
	err  error
}

func (s stubWellness) Snapshot(context.Context, uuid.UUID) (wellness.Snapshot, error) {
	return s.snap, s.err
}

var errBoom = errors.New("boom")

func strptr(s string) *string { return &s }
