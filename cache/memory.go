package cache

import (
	"context"
	"sync"
	"time"

	"github.com/XTHN9RF/Foodify-API/models"
)

// Memory is an in-process Catalog for single-instance deployments without redis.
type Memory struct {
	mu         sync.RWMutex
	categories []models.Category
	expires    time.Time
	now        func() time.Time
}

func NewMemory() *Memory {
	return &Memory{now: time.Now}
}

func (m *Memory) Categories(ctx context.Context) ([]models.Category, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.categories == nil || !m.now().Before(m.expires) {
		return nil, false
	}
	out := make([]models.Category, len(m.categories))
	copy(out, m.categories)
	return out, true
}

func (m *Memory) SetCategories(ctx context.Context, categories []models.Category) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories = make([]models.Category, len(categories))
	copy(m.categories, categories)
	m.expires = m.now().Add(CategoriesTTL)
}

func (m *Memory) Invalidate(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories = nil
}
