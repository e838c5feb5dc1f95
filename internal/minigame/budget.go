package minigame

import (
	"fmt"
	"math/rand"

	"github.com/shopspring/decimal"

	"moneypath/internal/player"
)

// Budget challenge category keys.
const (
	AllocHousing       = "housing"
	AllocFood          = "food"
	AllocTransport     = "transport"
	AllocSavings       = "savings"
	AllocEntertainment = "entertainment"
)

var allocCategories = []string{AllocHousing, AllocFood, AllocTransport, AllocSavings, AllocEntertainment}

// BudgetChallenge scores a split of one month's income across the five
// spending categories against the usual guideline ranges. It is a planning
// drill; no money moves.
type BudgetChallenge struct{}

func NewBudgetChallenge() *BudgetChallenge { return &BudgetChallenge{} }

func (g *BudgetChallenge) ID() string    { return "budget_challenge" }
func (g *BudgetChallenge) Title() string { return "Budget Allocation Challenge" }
func (g *BudgetChallenge) Description() string {
	return "Split a month of income across housing, food, transport, savings, and fun."
}

func (g *BudgetChallenge) Available(st player.PlayerState) bool {
	return st.MonthlyIncome().IsPositive()
}

func (g *BudgetChallenge) Play(rng *rand.Rand, st player.PlayerState, req Request) (Outcome, error) {
	_ = rng

	income := st.MonthlyIncome()
	if !income.IsPositive() {
		return Outcome{}, fmt.Errorf("budget challenge needs monthly income")
	}

	for key := range req.Allocation {
		if !validAllocCategory(key) {
			return Outcome{}, fmt.Errorf("unknown budget category %q", key)
		}
	}

	total := decimal.Zero
	amounts := map[string]decimal.Decimal{}
	for _, key := range allocCategories {
		amt := decimal.NewFromFloat(req.Allocation[key]).Round(2)
		if amt.IsNegative() {
			return Outcome{}, fmt.Errorf("budget category %s cannot be negative", key)
		}
		amounts[key] = amt
		total = total.Add(amt)
	}
	if !total.Equal(income) {
		return Outcome{}, fmt.Errorf("allocations total %s but monthly income is %s", total.StringFixed(2), income.StringFixed(2))
	}

	pct := func(key string) float64 {
		p, _ := amounts[key].Div(income).Mul(decimal.NewFromInt(100)).Float64()
		return p
	}

	score := 0
	notes := map[string]string{}

	housing := pct(AllocHousing)
	switch {
	case housing >= 25 && housing <= 30:
		score += 20
		notes["housing"] = "in the ideal range"
	case housing > 30:
		notes["housing"] = "high, consider a cheaper option"
	default:
		notes["housing"] = "low costs give you flexibility"
	}

	savings := pct(AllocSavings)
	switch {
	case savings >= 20:
		score += 25
		notes["savings"] = "excellent savings rate"
	case savings >= 10:
		score += 15
		notes["savings"] = "good start, push higher when you can"
	default:
		notes["savings"] = "even 10% makes a big difference"
	}

	food := pct(AllocFood)
	switch {
	case food >= 10 && food <= 15:
		score += 15
		notes["food"] = "looks reasonable"
	case food > 15:
		notes["food"] = "high, cooking at home helps"
	}

	wellbeing := 2
	switch {
	case score >= 50:
		wellbeing = 10
	case score >= 30:
		wellbeing = 5
	}

	return Outcome{
		GameID:         g.ID(),
		Won:            true,
		Score:          score,
		WellbeingDelta: wellbeing,
		Lesson:         LessonBudgetAllocation,
		Details:        notes,
	}, nil
}

func validAllocCategory(key string) bool {
	for _, c := range allocCategories {
		if c == key {
			return true
		}
	}
	return false
}
