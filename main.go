package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"moneypath/internal/achievement"
	"moneypath/internal/catalog"
	"moneypath/internal/config"
	"moneypath/internal/event"
	"moneypath/internal/game"
	"moneypath/internal/minigame"
	"moneypath/internal/player"
	"moneypath/internal/server"
	"moneypath/internal/telemetry"
)

const PORT = "8480"

// Dev server: in-memory storage, built-in tables, one pre-seeded player.
// cmd/server is the file-backed equivalent.
func main() {
	ctx := context.Background()

	mux := http.NewServeMux()

	rr := &server.RouteRegistry{}
	server.RegisterAdminUI(mux, rr, PORT)
	server.RegisterStatic(mux)

	app, err := SeedDemo(ctx)
	if err != nil {
		log.Fatal(err)
	}

	server.RegisterAPIRoutes(mux, rr, app)

	addr := ":" + PORT
	fmt.Printf("moneypath listening on %s (routes at http://localhost%s/_/admin)\n", addr, addr)
	log.Fatal(http.ListenAndServe(addr, mux))
}

// SeedDemo builds an in-memory engine and walks one player a few months in
// so the API has something to show.
func SeedDemo(ctx context.Context) (*server.App, error) {
	playerRepo := player.NewMemoryRepo()

	clock := game.RealClock{}

	engine := game.Engine{
		Players:      playerRepo,
		Catalog:      catalog.Default(),
		Events:       event.Seed(),
		Achievements: achievement.Seed(),
		Minigames:    minigame.Default(),
		Balance:      config.Default(),
		Telemetry:    telemetry.NewMemoryRepository(),
		Clock:        clock,
		RNG:          game.NewRNG(1),
	}

	bootNow := engine.Clock.Now()

	st, err := engine.CreatePlayer(ctx, game.CreatePlayerParams{
		ID:     "demo",
		Name:   "Demo Player",
		PathID: "community_college",
		Goals:  []string{"emergency_fund", "debt_free"},
	})
	if err != nil {
		return nil, err
	}

	if _, err := engine.TakeSideJob(ctx, st.ID, "barista"); err != nil {
		return nil, err
	}

	// No provider: if an input-required event fires the batch halts and the
	// demo player starts with a pending decision to resolve over the API.
	report, err := engine.Advance(ctx, st.ID, 3, nil)
	if err != nil {
		return nil, err
	}
	if report.Pending != nil {
		fmt.Printf("demo player halted on a %s decision after %d month(s); resolve it via POST /api/players/demo/decision\n",
			report.Pending.Kind, report.MonthsCompleted)
	}

	return &server.App{
		Engine:  engine,
		Saves:   playerRepo,
		BootNow: bootNow,
	}, nil
}
