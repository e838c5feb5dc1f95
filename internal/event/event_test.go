package event

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moneypath/internal/player"
)

func TestSeed_IsValid(t *testing.T) {
	tbl := Seed()
	require.NoError(t, tbl.Validate())
	require.NotEmpty(t, tbl)

	car, ok := tbl.ByID("car_trouble")
	require.True(t, ok)
	assert.True(t, car.InputRequired)
	require.Len(t, car.Choices, 3)

	_, ok = car.Choice("full_repair")
	assert.True(t, ok)
	_, ok = car.Choice("teleport")
	assert.False(t, ok)
}

func TestPick_FirstEligibleByPriority(t *testing.T) {
	tbl := Table{
		{ID: "late", Priority: 50},
		{ID: "gated", Priority: 5, Requires: Condition{RequiresVehicle: true}},
		{ID: "early", Priority: 10},
	}
	require.NoError(t, tbl.Validate())

	st := player.PlayerState{}
	got, ok := tbl.Pick(st)
	require.True(t, ok)
	assert.Equal(t, "early", got.ID, "ineligible entries are skipped even at lower priority")

	st.Assets = []player.Asset{{ID: "old_beater", Kind: player.AssetVehicle}}
	got, ok = tbl.Pick(st)
	require.True(t, ok)
	assert.Equal(t, "gated", got.ID)
}

func TestPick_InsertionOrderBreaksTies(t *testing.T) {
	tbl := Table{
		{ID: "first", Priority: 10},
		{ID: "second", Priority: 10},
	}

	got, ok := tbl.Pick(player.PlayerState{})
	require.True(t, ok)
	assert.Equal(t, "first", got.ID)
}

func TestPick_NoneEligible(t *testing.T) {
	tbl := Table{
		{ID: "students", Priority: 1, Requires: Condition{StudentsOnly: true}},
	}

	_, ok := tbl.Pick(player.PlayerState{})
	assert.False(t, ok)
}

func TestCondition_Met(t *testing.T) {
	st := player.PlayerState{
		Month:       4,
		CreditScore: 640,
		Employment: &player.Employment{
			Kind:           player.KindEducation,
			IncomePerMonth: decimal.Zero,
		},
	}

	assert.True(t, Condition{}.Met(st))
	assert.True(t, Condition{StudentsOnly: true}.Met(st))
	assert.False(t, Condition{RequiresJob: true}.Met(st), "education does not count as a job")
	assert.False(t, Condition{RequiresIncome: true}.Met(st))
	assert.False(t, Condition{MinCreditScore: 700}.Met(st))
	assert.True(t, Condition{MinMonth: 4}.Met(st))
	assert.False(t, Condition{MinMonth: 5}.Met(st))
	assert.False(t, Condition{MaxMonth: 3}.Met(st))

	st.Employment = &player.Employment{Kind: player.KindJob, IncomePerMonth: decimal.NewFromInt(2400)}
	assert.True(t, Condition{RequiresJob: true, RequiresIncome: true}.Met(st))
	assert.False(t, Condition{StudentsOnly: true}.Met(st))
}

func TestEffect_RollCash(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	fixed := Effect{CashMin: -200, CashMax: -200}
	assert.True(t, fixed.RollCash(rng).Equal(decimal.NewFromInt(-200)))

	ranged := Effect{CashMin: 120, CashMax: 240}
	for i := 0; i < 50; i++ {
		got := ranged.RollCash(rng)
		assert.True(t, got.GreaterThanOrEqual(decimal.NewFromInt(120)), "roll %s below range", got)
		assert.True(t, got.LessThanOrEqual(decimal.NewFromInt(240)), "roll %s above range", got)
	}
}

func TestValidate_RejectsBadTables(t *testing.T) {
	dup := Table{{ID: "a"}, {ID: "a"}}
	require.Error(t, dup.Validate())

	noChoices := Table{{ID: "a", InputRequired: true}}
	require.Error(t, noChoices.Validate())

	strayChoices := Table{{ID: "a", Choices: []Choice{{ID: "x"}}}}
	require.Error(t, strayChoices.Validate())
}
