package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/vannoorsab/FINAI/internal/domain"
)

// Memory is an in-process AssessmentRepository. Assessments are stored by
// value; nested slices are shared with the caller.
type Memory struct {
	mu   sync.RWMutex
	data map[string]domain.Assessment
}

// NewMemory creates an empty Memory repository.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]domain.Assessment)}
}

func (m *Memory) Save(ctx context.Context, a *domain.Assessment) error {
	if a == nil || a.ID == "" {
		return fmt.Errorf("Memory.Save: assessment ID is required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[a.ID] = *a
	return nil
}

func (m *Memory) Get(ctx context.Context, id string) (*domain.Assessment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.data[id]
	if !ok {
		return nil, fmt.Errorf("Memory.Get: %s: %w", id, domain.ErrNotFound)
	}
	return &a, nil
}

func (m *Memory) FindByChecksum(ctx context.Context, checksum string, strategy domain.Strategy) (*domain.Assessment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var found *domain.Assessment
	for _, a := range m.data {
		if a.Checksum != checksum || a.Strategy != strategy {
			continue
		}
		if found == nil || a.CreatedAt.After(found.CreatedAt) {
			a := a
			found = &a
		}
	}
	if found == nil {
		return nil, fmt.Errorf("Memory.FindByChecksum: %s: %w", checksum, domain.ErrNotFound)
	}
	return found, nil
}

func (m *Memory) List(ctx context.Context, limit int) ([]*domain.Assessment, error) {
	m.mu.RLock()
	out := make([]*domain.Assessment, 0, len(m.data))
	for _, a := range m.data {
		a := a
		out = append(out, &a)
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit = normalizeLimit(limit); len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *Memory) Close() error { return nil }
