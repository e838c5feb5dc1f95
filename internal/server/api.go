package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"moneypath/internal/event"
	"moneypath/internal/game"
	"moneypath/internal/minigame"
	"moneypath/internal/player"
	"moneypath/internal/telemetry"
	staticfiles "moneypath/static"
)

// App holds what the handlers depend on. The engine carries the repositories
// and tables; Saves is the snapshot store next to the live player states.
type App struct {
	Engine game.Engine
	Saves  player.Snapshotter

	BootNow time.Time
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the engine's sentinel errors onto status codes so every
// handler reports them the same way.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrPlayerNotFound),
		errors.Is(err, player.ErrSnapshotNotFound):
		http.Error(w, err.Error(), 404)
	case errors.Is(err, game.ErrInvalidDuration),
		errors.Is(err, game.ErrInvalidAllocation),
		errors.Is(err, game.ErrInvalidAmount),
		errors.Is(err, game.ErrDecisionRequired),
		errors.Is(err, game.ErrNoPendingDecision),
		errors.Is(err, game.ErrMinigameUnavailable),
		errors.Is(err, game.ErrUnknownPath),
		errors.Is(err, game.ErrUnknownVehicle),
		errors.Is(err, game.ErrUnknownSideJob),
		errors.Is(err, game.ErrUnknownGoal),
		errors.Is(err, game.ErrUnknownDecision),
		errors.Is(err, game.ErrUnknownMinigame),
		errors.Is(err, game.ErrNoChoiceProvided),
		errors.Is(err, player.ErrInsufficientFunds):
		http.Error(w, err.Error(), 400)
	default:
		http.Error(w, err.Error(), 500)
	}
}

// RegisterStatic serves the embedded admin assets. Hosts that want
// disk-backed assets during development mount their own handler instead.
func RegisterStatic(mux *http.ServeMux) {
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticfiles.EmbeddedFS()))))
}

func RegisterAPIRoutes(mux *http.ServeMux, rr *RouteRegistry, app *App) {
	engine := app.Engine

	// --- Players ---

	Handle(mux, rr, "GET /api/players", "List players", "", func(w http.ResponseWriter, r *http.Request) {
		players, err := engine.ListPlayers(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, players)
	})

	Handle(mux, rr, "POST /api/players", "Create a player", `{"name":"Alex","path_id":"trade_school","goals":["own_car"]}`, func(w http.ResponseWriter, r *http.Request) {
		var body game.CreatePlayerParams
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json body", 400)
			return
		}
		if body.Name == "" {
			http.Error(w, "name is required", 400)
			return
		}
		if body.PathID == "" {
			http.Error(w, "path_id is required", 400)
			return
		}

		st, err := engine.CreatePlayer(r.Context(), body)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, st)
	})

	Handle(mux, rr, "GET /api/players/{id}", "Get a player's state", "", func(w http.ResponseWriter, r *http.Request) {
		st, err := engine.Player(r.Context(), r.PathValue("id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, st)
	})

	Handle(mux, rr, "DELETE /api/players/{id}", "Delete a player", "", func(w http.ResponseWriter, r *http.Request) {
		if err := engine.DeletePlayer(r.Context(), r.PathValue("id")); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, map[string]string{"status": "deleted"})
	})

	// --- Simulation ---

	// Choices pre-answer decisions that fire mid-batch, in order. When the
	// list runs out the advance halts at the month boundary and the report
	// carries the pending decision.
	Handle(mux, rr, "POST /api/players/{id}/advance", "Advance the simulation by 1, 3 or 6 months", `{"months":3,"choices":["attend"]}`, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Months  int      `json:"months"`
			Choices []string `json:"choices"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json body", 400)
			return
		}

		provider := game.NewScriptedProvider(body.Choices...)
		report, err := engine.Advance(r.Context(), r.PathValue("id"), body.Months, provider)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, report)
	})

	Handle(mux, rr, "POST /api/players/{id}/decision", "Resolve a budget, vehicle, event or repair decision", `{"kind":"event","choice_id":"accept"}`, func(w http.ResponseWriter, r *http.Request) {
		var body game.Decision
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json body", 400)
			return
		}
		if body.Kind == "" {
			http.Error(w, "kind is required", 400)
			return
		}

		res, err := engine.ResolveDecision(r.Context(), r.PathValue("id"), body)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, res)
	})

	// --- Money operations ---

	Handle(mux, rr, "POST /api/players/{id}/savings/deposit", "Move cash into savings", `{"amount":"200"}`, func(w http.ResponseWriter, r *http.Request) {
		amount, ok := decodeAmount(w, r)
		if !ok {
			return
		}
		res, err := engine.DepositSavings(r.Context(), r.PathValue("id"), amount)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, res)
	})

	Handle(mux, rr, "POST /api/players/{id}/savings/withdraw", "Move savings back into cash", `{"amount":"150"}`, func(w http.ResponseWriter, r *http.Request) {
		amount, ok := decodeAmount(w, r)
		if !ok {
			return
		}
		res, err := engine.WithdrawSavings(r.Context(), r.PathValue("id"), amount)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, res)
	})

	Handle(mux, rr, "POST /api/players/{id}/debt/pay", "Pay down debt ahead of schedule", `{"amount":"500"}`, func(w http.ResponseWriter, r *http.Request) {
		amount, ok := decodeAmount(w, r)
		if !ok {
			return
		}
		res, err := engine.PayDebt(r.Context(), r.PathValue("id"), amount)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, res)
	})

	Handle(mux, rr, "POST /api/players/{id}/side-job", "Take a side job from the catalog", `{"side_job_id":"tutoring"}`, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			SideJobID string `json:"side_job_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json body", 400)
			return
		}
		if body.SideJobID == "" {
			http.Error(w, "side_job_id is required", 400)
			return
		}

		st, err := engine.TakeSideJob(r.Context(), r.PathValue("id"), body.SideJobID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, st)
	})

	Handle(mux, rr, "DELETE /api/players/{id}/side-job", "Quit the current side job", "", func(w http.ResponseWriter, r *http.Request) {
		st, err := engine.QuitSideJob(r.Context(), r.PathValue("id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, st)
	})

	// --- Minigames ---

	Handle(mux, rr, "GET /api/players/{id}/minigames", "List the minigames the player can start", "", func(w http.ResponseWriter, r *http.Request) {
		games, err := engine.AvailableMinigames(r.Context(), r.PathValue("id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, games)
	})

	Handle(mux, rr, "POST /api/players/{id}/minigames", "Play a minigame", `{"game_id":"comparison_shopping","category":"laptop","option_id":"budget_laptop"}`, func(w http.ResponseWriter, r *http.Request) {
		var body minigame.Request
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json body", 400)
			return
		}
		if body.GameID == "" {
			http.Error(w, "game_id is required", 400)
			return
		}

		res, err := engine.PlayMinigame(r.Context(), r.PathValue("id"), body)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, res)
	})

	// --- Saves ---

	Handle(mux, rr, "POST /api/players/{id}/saves", "Snapshot the player's current state", `{}`, func(w http.ResponseWriter, r *http.Request) {
		st, err := engine.Player(r.Context(), r.PathValue("id"))
		if err != nil {
			writeError(w, err)
			return
		}

		token, err := app.Saves.Save(r.Context(), st)
		if err != nil {
			writeError(w, err)
			return
		}
		if engine.Telemetry != nil {
			_ = engine.Telemetry.RecordEvent(telemetry.EventSnapshotSaved, st.ID, telemetry.EventMetadata{"token": token})
		}
		writeJSON(w, map[string]string{"token": token})
	})

	Handle(mux, rr, "GET /api/saves", "List snapshot tokens", "", func(w http.ResponseWriter, r *http.Request) {
		tokens, err := app.Saves.Snapshots(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, tokens)
	})

	Handle(mux, rr, "POST /api/saves/{token}/restore", "Restore a snapshot into the live store", `{}`, func(w http.ResponseWriter, r *http.Request) {
		token := r.PathValue("token")
		st, err := app.Saves.Load(r.Context(), token)
		if err != nil {
			writeError(w, err)
			return
		}
		if err := engine.Players.Put(r.Context(), st); err != nil {
			writeError(w, err)
			return
		}
		if engine.Telemetry != nil {
			_ = engine.Telemetry.RecordEvent(telemetry.EventSnapshotLoaded, st.ID, telemetry.EventMetadata{"token": token})
		}
		writeJSON(w, st)
	})

	// --- Telemetry ---

	Handle(mux, rr, "GET /api/players/{id}/history", "List the player's telemetry events", "", func(w http.ResponseWriter, r *http.Request) {
		if engine.Telemetry == nil {
			writeJSON(w, []telemetry.Event{})
			return
		}
		events, err := engine.Telemetry.GetEvents(time.Time{}, nil)
		if err != nil {
			writeError(w, err)
			return
		}
		id := r.PathValue("id")
		out := make([]telemetry.Event, 0, len(events))
		for _, ev := range events {
			if ev.PlayerID == id {
				out = append(out, ev)
			}
		}
		writeJSON(w, out)
	})

	Handle(mux, rr, "GET /api/stats", "Tuning stats since boot (override with ?since=RFC3339)", "", func(w http.ResponseWriter, r *http.Request) {
		since := app.BootNow
		if s := r.URL.Query().Get("since"); s != "" {
			parsed, err := time.Parse(time.RFC3339, s)
			if err != nil {
				http.Error(w, "since must be RFC3339", 400)
				return
			}
			since = parsed
		}

		if engine.Telemetry == nil {
			writeJSON(w, telemetry.Stats{})
			return
		}
		events, err := engine.Telemetry.GetEvents(since, nil)
		if err != nil {
			writeError(w, err)
			return
		}
		stats, err := telemetry.CalculateStats(events, since)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, stats)
	})

	// --- Catalog and tuning tables ---

	Handle(mux, rr, "GET /api/catalog", "The full data catalog", "", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, engine.Catalog)
	})

	Handle(mux, rr, "GET /api/catalog/paths", "List post-graduation paths", "", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, engine.Catalog.Paths)
	})

	Handle(mux, rr, "GET /api/catalog/vehicles", "List vehicles", "", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, engine.Catalog.Vehicles)
	})

	Handle(mux, rr, "GET /api/catalog/side-jobs", "List side jobs", "", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, engine.Catalog.SideJobs)
	})

	Handle(mux, rr, "GET /api/catalog/goals", "List life goals", "", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, engine.Catalog.Goals)
	})

	Handle(mux, rr, "GET /api/catalog/events", "List the life-event table", "", func(w http.ResponseWriter, r *http.Request) {
		events := engine.Events
		if events == nil {
			events = event.Table{}
		}
		writeJSON(w, events)
	})

	Handle(mux, rr, "GET /api/catalog/achievements", "List achievement definitions", "", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, engine.Achievements)
	})

	Handle(mux, rr, "GET /api/balance", "The effective simulation tuning", "", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, engine.Balance)
	})
}

func decodeAmount(w http.ResponseWriter, r *http.Request) (decimal.Decimal, bool) {
	var body struct {
		Amount decimal.Decimal `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid json body", 400)
		return decimal.Zero, false
	}
	return body.Amount, true
}
