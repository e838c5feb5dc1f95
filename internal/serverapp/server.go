// Package serverapp assembles the complete HTTP server from configuration:
// file-backed storage, the simulation engine with its data tables, the JSON
// API, the admin routes page, static assets, health probes, and the
// middleware chain. Both cmd/server and the integration tests build the
// handler through NewHandler so they exercise the same wiring.
package serverapp

import (
	"encoding/json"
	"errors"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"moneypath/internal/achievement"
	"moneypath/internal/catalog"
	"moneypath/internal/config"
	"moneypath/internal/event"
	"moneypath/internal/game"
	"moneypath/internal/httpmw"
	"moneypath/internal/minigame"
	"moneypath/internal/player"
	"moneypath/internal/server"
	"moneypath/internal/telemetry"
	staticfiles "moneypath/static"
)

type Options struct {
	Config        *config.Config
	DataDir       string
	StaticDir     string
	UseDiskStatic bool
	Logger        *slog.Logger
}

func NewHandler(opts Options) (http.Handler, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if strings.TrimSpace(opts.DataDir) == "" {
		opts.DataDir = opts.Config.Server.DataDir
	}
	if strings.TrimSpace(opts.StaticDir) == "" {
		opts.StaticDir = "static"
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	mux := http.NewServeMux()

	staticHandler := http.FileServer(http.FS(staticfiles.EmbeddedFS()))
	if opts.UseDiskStatic {
		staticHandler = http.FileServer(http.Dir(opts.StaticDir))
	}
	mux.Handle("/static/", http.StripPrefix("/static/", staticHandler))

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "moneypath",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	playerRepo, err := player.NewFileRepo(filepath.Join(opts.DataDir, "players"))
	if err != nil {
		return nil, err
	}

	cat := catalog.Default()
	if opts.Config.CatalogPath != "" {
		cat, err = catalog.Load(opts.Config.CatalogPath)
		if err != nil {
			return nil, err
		}
		opts.Logger.Info("catalog loaded", "path", opts.Config.CatalogPath,
			"paths", len(cat.Paths), "vehicles", len(cat.Vehicles))
	}

	events := event.Seed()
	if err := events.Validate(); err != nil {
		return nil, err
	}

	var rng *rand.Rand
	if opts.Config.SeededRNG.Enabled {
		rng = game.NewRNG(opts.Config.SeededRNG.Seed)
		opts.Logger.Info("seeded rng enabled", "seed", opts.Config.SeededRNG.Seed)
	}

	clock := game.RealClock{}
	engine := game.Engine{
		Players:      playerRepo,
		Catalog:      cat,
		Events:       events,
		Achievements: achievement.Seed(),
		Minigames:    minigame.Default(),
		Balance:      opts.Config.EffectiveBalance(),
		Telemetry:    telemetry.NewMemoryRepository(),
		Clock:        clock,
		RNG:          rng,
	}

	app := &server.App{
		Engine:  engine,
		Saves:   playerRepo,
		BootNow: clock.Now(),
	}

	rr := &server.RouteRegistry{}
	server.RegisterAPIRoutes(mux, rr, app)
	server.RegisterAdminUI(mux, rr, portOf(opts.Config.Server.Addr))

	server.Handle(mux, rr, "GET /api/config", "The server's effective configuration", "", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(opts.Config); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})

	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if _, err := playerRepo.List(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{
				"ok":    false,
				"error": "player storage unavailable",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "moneypath",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	// Request ID first so the access log and panic reports can carry it.
	return httpmw.Chain(
		mux,
		httpmw.WithRequestID,
		httpmw.WithAccessLog(opts.Logger),
		httpmw.WithRecover(opts.Logger),
	), nil
}

func UseDiskStaticByEnv() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("MONEYPATH_DEV_STATIC"))) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

func portOf(addr string) string {
	if i := strings.LastIndexByte(addr, ':'); i >= 0 {
		return addr[i+1:]
	}
	return addr
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
