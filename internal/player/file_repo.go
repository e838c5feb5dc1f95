package player

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SnapshotVersion is the current on-disk schema. Version 1 kept achievements
// as a set; loads migrate it forward.
const SnapshotVersion = 2

var ErrSnapshotNotFound = errors.New("snapshot not found")

type fileState struct {
	Version int                    `json:"version"`
	Players map[string]PlayerState `json:"players"`
}

type store struct {
	mu   sync.RWMutex
	dir  string
	path string
	s    fileState
}

// FileRepo is a Repository backed by a single JSON file in dataDir, with
// explicit point-in-time snapshots stored alongside it.
type FileRepo struct {
	store *store
}

func NewFileRepo(dataDir string) (*FileRepo, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	st := &store{
		dir:  dataDir,
		path: filepath.Join(dataDir, "state.json"),
		s: fileState{
			Version: SnapshotVersion,
			Players: map[string]PlayerState{},
		},
	}
	if err := st.load(); err != nil {
		return nil, err
	}
	return &FileRepo{store: st}, nil
}

func (s *store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.s = fileState{Version: SnapshotVersion, Players: map[string]PlayerState{}}
			return nil
		}
		return err
	}

	loaded, err := decodeFileState(b)
	if err != nil {
		return fmt.Errorf("load %s: %w", s.path, err)
	}
	s.s = loaded
	return nil
}

func decodeFileState(b []byte) (fileState, error) {
	var header struct {
		Version int `json:"version"`
	}
	if err := json.Unmarshal(b, &header); err != nil {
		return fileState{}, err
	}
	if header.Version > SnapshotVersion {
		return fileState{}, fmt.Errorf("state version %d is newer than supported %d", header.Version, SnapshotVersion)
	}

	if header.Version < SnapshotVersion {
		var legacy struct {
			Players map[string]playerStateV1 `json:"players"`
		}
		if err := json.Unmarshal(b, &legacy); err != nil {
			return fileState{}, err
		}
		out := fileState{Version: SnapshotVersion, Players: map[string]PlayerState{}}
		for id, v := range legacy.Players {
			out.Players[id] = v.migrate()
		}
		return out, nil
	}

	var loaded fileState
	if err := json.Unmarshal(b, &loaded); err != nil {
		return fileState{}, err
	}
	if loaded.Players == nil {
		loaded.Players = map[string]PlayerState{}
	}
	for id, st := range loaded.Players {
		loaded.Players[id] = Normalize(st)
	}
	return loaded, nil
}

// playerStateV1 is the pre-version-2 layout where achievements were a set.
// Unlock order is not recoverable, so migrated achievements sort by ID.
type playerStateV1 struct {
	PlayerState
	Achievements map[string]bool `json:"achievements,omitempty"`
}

func (v playerStateV1) migrate() PlayerState {
	st := v.PlayerState
	ids := make([]string, 0, len(v.Achievements))
	for id, unlocked := range v.Achievements {
		if unlocked {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	st.Achievements = ids
	return Normalize(st)
}

func (s *store) saveLocked() error {
	s.s.Version = SnapshotVersion
	b, err := json.MarshalIndent(s.s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, b, 0o644)
}

func (r *FileRepo) Get(ctx context.Context, id string) (PlayerState, bool, error) {
	_ = ctx

	r.store.mu.RLock()
	st, ok := r.store.s.Players[id]
	r.store.mu.RUnlock()

	if !ok {
		return PlayerState{}, false, nil
	}
	return st.Clone(), true, nil
}

func (r *FileRepo) Put(ctx context.Context, st PlayerState) error {
	_ = ctx

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.s.Players[st.ID] = st.Clone()
	return r.store.saveLocked()
}

func (r *FileRepo) Delete(ctx context.Context, id string) (bool, error) {
	_ = ctx

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.s.Players[id]; !ok {
		return false, nil
	}
	delete(r.store.s.Players, id)
	return true, r.store.saveLocked()
}

func (r *FileRepo) List(ctx context.Context) ([]PlayerState, error) {
	_ = ctx

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]PlayerState, 0, len(r.store.s.Players))
	for _, st := range r.store.s.Players {
		out = append(out, st.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// --- Snapshots ---

type snapshotFile struct {
	Version int         `json:"version"`
	SavedAt time.Time   `json:"saved_at"`
	Player  PlayerState `json:"player"`
}

// Save writes a point-in-time copy of the state and returns its token.
func (r *FileRepo) Save(ctx context.Context, st PlayerState) (string, error) {
	_ = ctx

	token := uuid.NewString()
	snap := snapshotFile{
		Version: SnapshotVersion,
		SavedAt: time.Now().UTC(),
		Player:  st.Clone(),
	}
	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := os.WriteFile(r.snapshotPath(token), b, 0o644); err != nil {
		return "", err
	}
	return token, nil
}

// Load reads the snapshot for token. Older snapshot versions migrate on the
// way in; newer versions are rejected.
func (r *FileRepo) Load(ctx context.Context, token string) (PlayerState, error) {
	_ = ctx

	if _, err := uuid.Parse(token); err != nil {
		return PlayerState{}, fmt.Errorf("invalid snapshot token %q: %w", token, err)
	}

	r.store.mu.RLock()
	b, err := os.ReadFile(r.snapshotPath(token))
	r.store.mu.RUnlock()
	if err != nil {
		if os.IsNotExist(err) {
			return PlayerState{}, fmt.Errorf("%w: %s", ErrSnapshotNotFound, token)
		}
		return PlayerState{}, err
	}

	var header struct {
		Version int `json:"version"`
	}
	if err := json.Unmarshal(b, &header); err != nil {
		return PlayerState{}, err
	}
	if header.Version > SnapshotVersion {
		return PlayerState{}, fmt.Errorf("snapshot version %d is newer than supported %d", header.Version, SnapshotVersion)
	}

	if header.Version < SnapshotVersion {
		var legacy struct {
			Player playerStateV1 `json:"player"`
		}
		if err := json.Unmarshal(b, &legacy); err != nil {
			return PlayerState{}, err
		}
		return legacy.Player.migrate(), nil
	}

	var snap snapshotFile
	if err := json.Unmarshal(b, &snap); err != nil {
		return PlayerState{}, err
	}
	return Normalize(snap.Player), nil
}

// Snapshots lists the tokens of every snapshot on disk, oldest file first.
func (r *FileRepo) Snapshots(ctx context.Context) ([]string, error) {
	_ = ctx

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	entries, err := os.ReadDir(r.store.dir)
	if err != nil {
		return nil, err
	}
	out := []string{}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, "save_") || !strings.HasSuffix(name, ".json") {
			continue
		}
		token := strings.TrimSuffix(strings.TrimPrefix(name, "save_"), ".json")
		if _, err := uuid.Parse(token); err != nil {
			continue
		}
		out = append(out, token)
	}
	sort.Strings(out)
	return out, nil
}

func (r *FileRepo) snapshotPath(token string) string {
	return filepath.Join(r.store.dir, "save_"+token+".json")
}
