package achievement

import (
	"github.com/shopspring/decimal"

	"moneypath/internal/player"
)

var savingsGoal = decimal.NewFromInt(1000)

// Seed returns the built-in achievement table.
func Seed() Set {
	return Set{
		{
			ID:              "first_dollar",
			Title:           "First Dollar Earned",
			Description:     "Earn your first paycheck.",
			WellbeingReward: 5,
			Satisfied: func(st player.PlayerState) bool {
				return st.MonthlyIncome().IsPositive()
			},
		},
		{
			ID:              "emergency_fund",
			Title:           "Emergency Cushion",
			Description:     "Save $1,000 in your emergency fund.",
			WellbeingReward: 10,
			Satisfied: func(st player.PlayerState) bool {
				return st.Savings.GreaterThanOrEqual(savingsGoal)
			},
		},
		{
			ID:              "debt_free",
			Title:           "Debt Free",
			Description:     "Pay off all your debt.",
			WellbeingReward: 15,
			Satisfied: func(st player.PlayerState) bool {
				return !st.Debt.IsPositive()
			},
		},
		{
			ID:              "investor",
			Title:           "Future Investor",
			Description:     "Put your first dollar into savings.",
			WellbeingReward: 8,
			Satisfied: func(st player.PlayerState) bool {
				return st.Savings.IsPositive()
			},
		},
		{
			ID:              "high_credit",
			Title:           "Credit Master",
			Description:     "Reach a credit score of 750.",
			WellbeingReward: 12,
			Satisfied: func(st player.PlayerState) bool {
				return st.CreditScore >= 750
			},
		},
		{
			ID:              "net_worth_positive",
			Title:           "In the Black",
			Description:     "Grow your net worth above zero.",
			WellbeingReward: 10,
			Satisfied: func(st player.PlayerState) bool {
				return st.NetWorth.IsPositive()
			},
		},
	}
}
