package player

import "context"

// Repository stores player states keyed by ID.
type Repository interface {
	Get(ctx context.Context, id string) (PlayerState, bool, error)
	Put(ctx context.Context, st PlayerState) error
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]PlayerState, error)
}

// Snapshotter stores explicit point-in-time saves next to the live states.
// Save returns the token a later Load takes back.
type Snapshotter interface {
	Save(ctx context.Context, st PlayerState) (string, error)
	Load(ctx context.Context, token string) (PlayerState, error)
	Snapshots(ctx context.Context) ([]string, error)
}
