package diary

import (
	"context"
	"sync"
)

// Repository persists diary data per user. Lists are returned in insertion
// order.
type Repository interface {
	AddCheckIn(ctx context.Context, userID string, c CheckIn) error
	AddEntry(ctx context.Context, userID string, e Entry) error
	CheckIns(ctx context.Context, userID string) ([]CheckIn, error)
	Entries(ctx context.Context, userID string) ([]Entry, error)
	SetTaskDone(ctx context.Context, userID, taskID string, done bool) error
	TaskStates(ctx context.Context, userID string) (map[string]bool, error)
	DeleteUser(ctx context.Context, userID string) error
}

type userData struct {
	checkIns []CheckIn
	entries  []Entry
	tasks    map[string]bool
}

// MemoryRepository is a volatile Repository; data lives as long as the
// process.
type MemoryRepository struct {
	mu    sync.Mutex
	users map[string]*userData
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[string]*userData)}
}

func (r *MemoryRepository) user(id string) *userData {
	u, ok := r.users[id]
	if !ok {
		u = &userData{tasks: make(map[string]bool)}
		r.users[id] = u
	}
	return u
}

func (r *MemoryRepository) AddCheckIn(_ context.Context, userID string, c CheckIn) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := r.user(userID)
	u.checkIns = append(u.checkIns, c)
	return nil
}

func (r *MemoryRepository) AddEntry(_ context.Context, userID string, e Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := r.user(userID)
	u.entries = append(u.entries, e)
	return nil
}

func (r *MemoryRepository) CheckIns(_ context.Context, userID string) ([]CheckIn, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]CheckIn(nil), r.user(userID).checkIns...), nil
}

func (r *MemoryRepository) Entries(_ context.Context, userID string) ([]Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.user(userID).entries...), nil
}

func (r *MemoryRepository) SetTaskDone(_ context.Context, userID, taskID string, done bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.user(userID).tasks[taskID] = done
	return nil
}

func (r *MemoryRepository) TaskStates(_ context.Context, userID string) (map[string]bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]bool, len(r.user(userID).tasks))
	for k, v := range r.user(userID).tasks {
		out[k] = v
	}
	return out, nil
}

func (r *MemoryRepository) DeleteUser(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, userID)
	return nil
}
