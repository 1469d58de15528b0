package repository

import (
	"context"
	"sync"
	"time"

	"faylbot/internal/models"
)

// MemoryStateRepository keeps state in-process. Used as the failover target
// when redis is unavailable; state is lost on restart, which is acceptable
// for short conversation flows.
type MemoryStateRepository struct {
	states     sync.Map // userID -> *models.UserState
	rateLimits sync.Map // userID -> *rateLimitEntry
}

type rateLimitEntry struct {
	mu       sync.Mutex
	count    int
	windowAt time.Time
}

func NewMemoryStateRepository() *MemoryStateRepository {
	return &MemoryStateRepository{}
}

func (r *MemoryStateRepository) GetState(_ context.Context, userID int64) (*models.UserState, error) {
	v, ok := r.states.Load(userID)
	if !ok {
		return nil, nil
	}
	return v.(*models.UserState), nil
}

func (r *MemoryStateRepository) SetState(_ context.Context, state *models.UserState) error {
	r.states.Store(state.UserID, state)
	return nil
}

func (r *MemoryStateRepository) DeleteState(_ context.Context, userID int64) error {
	r.states.Delete(userID)
	return nil
}

func (r *MemoryStateRepository) CheckRateLimit(_ context.Context, userID int64, limit int, window time.Duration) (bool, error) {
	v, _ := r.rateLimits.LoadOrStore(userID, &rateLimitEntry{})
	entry := v.(*rateLimitEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	now := time.Now()
	if now.Sub(entry.windowAt) >= window {
		entry.count = 0
		entry.windowAt = now
	}
	entry.count++
	return entry.count <= limit, nil
}

func (r *MemoryStateRepository) Ping(context.Context) error {
	return nil
}
