package minigame

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moneypath/internal/player"
)

func newPlayerForTest(t *testing.T, cash float64) player.PlayerState {
	t.Helper()
	st, err := player.New("p1", "Alex", player.NewOptions{
		PathID:      "trade_school",
		Cash:        decimal.NewFromFloat(cash),
		CreditScore: 650,
		Wellbeing:   70,
		Employment: &player.Employment{
			Kind:           player.KindJob,
			Title:          "Apprentice",
			IncomePerMonth: decimal.NewFromInt(2000),
		},
	})
	require.NoError(t, err)
	return st
}

func TestRegistry_GatesOnPlayerSituation(t *testing.T) {
	reg := Default()
	require.Len(t, reg, 3)

	rich := newPlayerForTest(t, 2000)
	ids := []string{}
	for _, g := range reg.Available(rich) {
		ids = append(ids, g.ID())
	}
	assert.Equal(t, []string{"comparison_shopping", "budget_challenge", "investment_sim"}, ids)

	broke := newPlayerForTest(t, 100)
	ids = ids[:0]
	for _, g := range reg.Available(broke) {
		ids = append(ids, g.ID())
	}
	assert.Equal(t, []string{"budget_challenge"}, ids, "shopping and investing need cash on hand")

	_, ok := reg.ByID("investment_sim")
	assert.True(t, ok)
	_, ok = reg.ByID("poker")
	assert.False(t, ok)
}

func TestComparisonShopping_BudgetIsThirtyPercentCapped(t *testing.T) {
	g := NewComparisonShopping()

	st := newPlayerForTest(t, 2000)
	assert.True(t, decimal.NewFromInt(600).Equal(g.Budget(st)))

	st = newPlayerForTest(t, 50000)
	assert.True(t, decimal.NewFromInt(1000).Equal(g.Budget(st)), "budget caps at $1,000 regardless of wealth")
}

func TestComparisonShopping_RewardsValueOverPrice(t *testing.T) {
	g := NewComparisonShopping()
	rng := rand.New(rand.NewSource(1))
	st := newPlayerForTest(t, 50000)

	// Budget laptop: quality 6 at $400 is 15 per thousand, the top tier.
	out, err := g.Play(rng, st, Request{Category: "laptop", OptionID: "budget_laptop"})
	require.NoError(t, err)
	assert.True(t, out.Won)
	assert.Equal(t, 5, out.WellbeingDelta)
	assert.True(t, decimal.NewFromInt(-400).Equal(out.CashDelta))
	assert.Equal(t, LessonComparisonShopping, out.Lesson)

	// Mid-range laptop: quality 8 at $700 is about 11.4, the middle tier.
	out, err = g.Play(rng, st, Request{Category: "laptop", OptionID: "midrange_laptop"})
	require.NoError(t, err)
	assert.Equal(t, 3, out.WellbeingDelta)
}

func TestComparisonShopping_OverBudgetChoiceRejected(t *testing.T) {
	g := NewComparisonShopping()
	rng := rand.New(rand.NewSource(1))
	st := newPlayerForTest(t, 50000)

	// Premium laptop costs $1,200, over the capped budget.
	_, err := g.Play(rng, st, Request{Category: "laptop", OptionID: "premium_laptop"})
	assert.Error(t, err)
}

func TestComparisonShopping_NothingAffordableTeachesSaving(t *testing.T) {
	g := NewComparisonShopping()
	rng := rand.New(rand.NewSource(1))
	st := newPlayerForTest(t, 600)

	// $180 budget cannot touch any car.
	out, err := g.Play(rng, st, Request{Category: "car"})
	require.NoError(t, err)
	assert.False(t, out.Won)
	assert.Equal(t, LessonBudgetConstraint, out.Lesson)
	assert.True(t, out.CashDelta.IsZero())
}

func TestComparisonShopping_UnknownCategoryRejected(t *testing.T) {
	g := NewComparisonShopping()
	rng := rand.New(rand.NewSource(1))
	st := newPlayerForTest(t, 2000)

	_, err := g.Play(rng, st, Request{Category: "yacht"})
	assert.Error(t, err)
}

func TestBudgetChallenge_ScoresGuidelineRanges(t *testing.T) {
	g := NewBudgetChallenge()
	rng := rand.New(rand.NewSource(1))
	st := newPlayerForTest(t, 1000)

	out, err := g.Play(rng, st, Request{Allocation: map[string]float64{
		"housing":       560, // 28%, ideal
		"food":          240, // 12%, reasonable
		"transport":     400,
		"savings":       400, // 20%, excellent
		"entertainment": 400,
	}})
	require.NoError(t, err)
	assert.True(t, out.Won)
	assert.Equal(t, 60, out.Score)
	assert.Equal(t, 10, out.WellbeingDelta)
	assert.Equal(t, LessonBudgetAllocation, out.Lesson)
	assert.True(t, out.CashDelta.IsZero(), "the challenge is a planning drill")
}

func TestBudgetChallenge_MiddlingPlanScoresLower(t *testing.T) {
	g := NewBudgetChallenge()
	rng := rand.New(rand.NewSource(1))
	st := newPlayerForTest(t, 1000)

	out, err := g.Play(rng, st, Request{Allocation: map[string]float64{
		"housing":       900, // 45%, too high
		"food":          500, // 25%, too high
		"transport":     300,
		"savings":       200, // 10%, good start
		"entertainment": 100,
	}})
	require.NoError(t, err)
	assert.Equal(t, 15, out.Score)
	assert.Equal(t, 2, out.WellbeingDelta)
}

func TestBudgetChallenge_RejectsBadAllocations(t *testing.T) {
	g := NewBudgetChallenge()
	rng := rand.New(rand.NewSource(1))
	st := newPlayerForTest(t, 1000)

	_, err := g.Play(rng, st, Request{Allocation: map[string]float64{
		"housing": 500, "food": 200, "transport": 100, "savings": 100, "entertainment": 100,
	}})
	assert.Error(t, err, "totals below income are rejected")

	_, err = g.Play(rng, st, Request{Allocation: map[string]float64{
		"housing": 1400, "food": 400, "transport": 200, "savings": 200, "entertainment": 200,
	}})
	assert.Error(t, err, "totals above income are rejected")

	_, err = g.Play(rng, st, Request{Allocation: map[string]float64{
		"housing": 1600, "food": 200, "transport": 100, "savings": 100, "lottery": 0,
	}})
	assert.Error(t, err, "unknown categories are rejected")

	_, err = g.Play(rng, st, Request{Allocation: map[string]float64{
		"housing": 2100, "food": 200, "transport": 100, "savings": -200, "entertainment": -200,
	}})
	assert.Error(t, err, "negative amounts are rejected")
}

func TestInvestmentSim_TenYearProjection(t *testing.T) {
	g := NewInvestmentSim()
	rng := rand.New(rand.NewSource(42))
	st := newPlayerForTest(t, 5000)

	out, err := g.Play(rng, st, Request{OptionID: "savings"})
	require.NoError(t, err)
	assert.True(t, out.Won)
	assert.Zero(t, out.WellbeingDelta, "the flat reward comes from the engine")
	assert.True(t, out.CashDelta.IsZero(), "the projection is hypothetical")
	assert.Equal(t, LessonInvestmentBasics, out.Lesson)
	assert.Equal(t, "Savings Account", out.Details["option"])
	assert.Equal(t, "1000.00", out.Details["invested"])

	// A savings account compounds near its 1.5% rate with negligible noise.
	final, err := decimal.NewFromString(out.Details["final_value"])
	require.NoError(t, err)
	assert.True(t, final.GreaterThan(decimal.NewFromInt(1100)), "final value %s", final)
	assert.True(t, final.LessThan(decimal.NewFromInt(1250)), "final value %s", final)
}

func TestInvestmentSim_CapsStakeAtCashOnHand(t *testing.T) {
	g := NewInvestmentSim()
	rng := rand.New(rand.NewSource(42))
	st := newPlayerForTest(t, 800)

	out, err := g.Play(rng, st, Request{OptionID: "bonds"})
	require.NoError(t, err)
	assert.Equal(t, "800.00", out.Details["invested"])
}

func TestInvestmentSim_UnknownOptionRejected(t *testing.T) {
	g := NewInvestmentSim()
	rng := rand.New(rand.NewSource(42))
	st := newPlayerForTest(t, 5000)

	_, err := g.Play(rng, st, Request{OptionID: "crypto"})
	assert.Error(t, err)
}
