package player

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

type MemoryRepo struct {
	mu        sync.RWMutex
	players   map[string]PlayerState
	snapshots map[string]PlayerState
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		players:   make(map[string]PlayerState),
		snapshots: make(map[string]PlayerState),
	}
}

func (r *MemoryRepo) Get(ctx context.Context, id string) (PlayerState, bool, error) {
	_ = ctx

	r.mu.RLock()
	st, ok := r.players[id]
	r.mu.RUnlock()

	if !ok {
		return PlayerState{}, false, nil
	}
	return st.Clone(), true, nil
}

func (r *MemoryRepo) Put(ctx context.Context, st PlayerState) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	r.players[st.ID] = st.Clone()
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) (bool, error) {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.players[id]; !ok {
		return false, nil
	}
	delete(r.players, id)
	return true, nil
}

func (r *MemoryRepo) List(ctx context.Context) ([]PlayerState, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]PlayerState, 0, len(r.players))
	for _, st := range r.players {
		out = append(out, st.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryRepo) Save(ctx context.Context, st PlayerState) (string, error) {
	_ = ctx

	token := uuid.NewString()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.snapshots[token] = st.Clone()
	return token, nil
}

func (r *MemoryRepo) Load(ctx context.Context, token string) (PlayerState, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	st, ok := r.snapshots[token]
	if !ok {
		return PlayerState{}, fmt.Errorf("%w: %s", ErrSnapshotNotFound, token)
	}
	return st.Clone(), nil
}

func (r *MemoryRepo) Snapshots(ctx context.Context) ([]string, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.snapshots))
	for token := range r.snapshots {
		out = append(out, token)
	}
	sort.Strings(out)
	return out, nil
}
