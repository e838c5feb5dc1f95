// Package minigame holds the short educational exercises offered between
// months: comparison shopping, budget allocation, and an investment
// simulation. Games are pure referee logic over the player state; the engine
// applies their outcomes.
package minigame

import (
	"math/rand"

	"github.com/shopspring/decimal"

	"moneypath/internal/player"
)

// Lesson identifiers carried on outcomes.
const (
	LessonComparisonShopping = "comparison_shopping"
	LessonBudgetConstraint   = "budget_constraint"
	LessonBudgetAllocation   = "budget_allocation"
	LessonInvestmentBasics   = "investment_basics"
)

// Request selects a game and carries its inputs. OptionID picks a product or
// investment vehicle; Allocation carries the budget challenge amounts.
type Request struct {
	GameID     string             `json:"game_id"`
	Category   string             `json:"category,omitempty"`
	OptionID   string             `json:"option_id,omitempty"`
	Allocation map[string]float64 `json:"allocation,omitempty"`
}

// Outcome is what a game did. WellbeingDelta is the game's own
// performance-based reward; games that score nothing leave it zero and the
// engine grants the configured flat reward instead.
type Outcome struct {
	GameID         string            `json:"game_id"`
	Won            bool              `json:"won"`
	Score          int               `json:"score,omitempty"`
	CashDelta      decimal.Decimal   `json:"cash_delta"`
	WellbeingDelta int               `json:"wellbeing_delta,omitempty"`
	Lesson         string            `json:"lesson"`
	Details        map[string]string `json:"details,omitempty"`
}

type Game interface {
	ID() string
	Title() string
	Description() string

	// Available gates the game on the player's situation.
	Available(st player.PlayerState) bool

	Play(rng *rand.Rand, st player.PlayerState, req Request) (Outcome, error)
}

// Registry is an immutable ordered game table, injected at construction.
type Registry []Game

func (r Registry) ByID(id string) (Game, bool) {
	for _, g := range r {
		if g.ID() == id {
			return g, true
		}
	}
	return nil, false
}

// Available lists the games the player can start right now, in table order.
func (r Registry) Available(st player.PlayerState) []Game {
	out := []Game{}
	for _, g := range r {
		if g.Available(st) {
			out = append(out, g)
		}
	}
	return out
}

// Default returns the built-in games.
func Default() Registry {
	return Registry{
		NewComparisonShopping(),
		NewBudgetChallenge(),
		NewInvestmentSim(),
	}
}
