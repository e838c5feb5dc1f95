package achievement

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moneypath/internal/player"
)

func TestSeed_IsValid(t *testing.T) {
	set := Seed()
	require.NoError(t, set.Validate())
	require.Len(t, set, 6)

	d, ok := set.ByID("debt_free")
	require.True(t, ok)
	assert.Equal(t, 15, d.WellbeingReward)
}

func TestEvaluate_UnlocksInTableOrder(t *testing.T) {
	set := Seed()

	st, err := player.New("p1", "Alex", player.NewOptions{
		Cash:        decimal.NewFromInt(2000),
		CreditScore: 760,
		Wellbeing:   50,
		Employment:  &player.Employment{Kind: player.KindJob, IncomePerMonth: decimal.NewFromInt(2400)},
	})
	require.NoError(t, err)
	require.NoError(t, st.DepositSavings(decimal.NewFromInt(1200)))

	unlocked := set.Evaluate(&st)

	var ids []string
	for _, d := range unlocked {
		ids = append(ids, d.ID)
	}
	assert.Equal(t, []string{"first_dollar", "emergency_fund", "debt_free", "investor", "high_credit", "net_worth_positive"}, ids)
	assert.Equal(t, ids, st.Achievements, "state records the same order")

	// 50 + 5 + 10 + 15 + 8 + 12 + 10 = 100 exactly at the cap.
	assert.Equal(t, 100, st.Wellbeing)
}

func TestEvaluate_Idempotent(t *testing.T) {
	set := Seed()

	st, err := player.New("p1", "Alex", player.NewOptions{
		Cash:      decimal.NewFromInt(100),
		Wellbeing: 50,
	})
	require.NoError(t, err)

	first := set.Evaluate(&st)
	require.NotEmpty(t, first, "no-debt start satisfies debt_free and net_worth_positive")

	again := set.Evaluate(&st)
	assert.Empty(t, again)
	require.NoError(t, st.CheckInvariants())
}

func TestEvaluate_PredicatesGateCorrectly(t *testing.T) {
	set := Seed()

	st, err := player.New("p1", "Alex", player.NewOptions{
		Cash:        decimal.NewFromInt(500),
		Debt:        decimal.NewFromInt(40000),
		CreditScore: 650,
		Wellbeing:   50,
	})
	require.NoError(t, err)

	set.Evaluate(&st)
	assert.False(t, st.HasAchievement("first_dollar"), "no income yet")
	assert.False(t, st.HasAchievement("debt_free"))
	assert.False(t, st.HasAchievement("high_credit"))
	assert.False(t, st.HasAchievement("net_worth_positive"), "debt exceeds cash")

	st.Employment = &player.Employment{Kind: player.KindJob, IncomePerMonth: decimal.NewFromInt(3400)}
	set.Evaluate(&st)
	assert.True(t, st.HasAchievement("first_dollar"))
}
