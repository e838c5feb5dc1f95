// Package event defines the random life events that can fire during a
// simulated month: their eligibility predicates, effect deltas, and the
// choices for events that need player input.
package event

import (
	"errors"
	"math/rand"

	"github.com/shopspring/decimal"

	"moneypath/internal/player"
)

// ErrNoChoice is returned by a decision provider that cannot answer right
// now. The engine treats it as "halt the batch here", not as a failure.
var ErrNoChoice = errors.New("no choice available")

// Effect is the set of deltas an event (or a chosen response) applies.
// Cash is a closed range in whole dollars; the other fields are fixed.
type Effect struct {
	CashMin        int64   `json:"cash_min,omitempty"`
	CashMax        int64   `json:"cash_max,omitempty"`
	Wellbeing      int     `json:"wellbeing,omitempty"`
	CreditScore    int     `json:"credit_score,omitempty"`
	DebtReduction  int64   `json:"debt_reduction,omitempty"`
	SalaryRaisePct float64 `json:"salary_raise_pct,omitempty"`
}

// RollCash picks the cash delta from the effect's range. Positive credits,
// negative debits. A degenerate range is returned as-is so tables can stay
// deterministic where they want to.
func (e Effect) RollCash(rng *rand.Rand) decimal.Decimal {
	lo, hi := e.CashMin, e.CashMax
	if hi < lo {
		lo, hi = hi, lo
	}
	if lo == hi {
		return decimal.NewFromInt(lo)
	}
	return decimal.NewFromInt(lo + rng.Int63n(hi-lo+1))
}

// Condition gates an event on the player's situation. Zero value matches
// everyone.
type Condition struct {
	RequiresIncome  bool `json:"requires_income,omitempty"`
	RequiresJob     bool `json:"requires_job,omitempty"`
	RequiresVehicle bool `json:"requires_vehicle,omitempty"`
	StudentsOnly    bool `json:"students_only,omitempty"`
	MinCreditScore  int  `json:"min_credit_score,omitempty"`
	MinMonth        int  `json:"min_month,omitempty"`
	MaxMonth        int  `json:"max_month,omitempty"`
}

func (c Condition) Met(st player.PlayerState) bool {
	if c.RequiresIncome && !st.MonthlyIncome().IsPositive() {
		return false
	}
	if c.RequiresJob {
		if st.Employment == nil || st.Employment.Kind == player.KindEducation {
			return false
		}
	}
	if c.RequiresVehicle && !st.HasVehicle() {
		return false
	}
	if c.StudentsOnly {
		if st.Employment == nil || st.Employment.Kind != player.KindEducation {
			return false
		}
	}
	if c.MinCreditScore > 0 && st.CreditScore < c.MinCreditScore {
		return false
	}
	if c.MinMonth > 0 && st.Month < c.MinMonth {
		return false
	}
	if c.MaxMonth > 0 && st.Month > c.MaxMonth {
		return false
	}
	return true
}

type Choice struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Effect Effect `json:"effect"`
}

// Event is one entry of the life-event table. Lower Priority fires first
// when several events are eligible in the same month.
type Event struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Priority      int       `json:"priority"`
	Requires      Condition `json:"requires,omitempty"`
	Effect        Effect    `json:"effect"`
	InputRequired bool      `json:"input_required,omitempty"`
	Choices       []Choice  `json:"choices,omitempty"`
}

func (e Event) Choice(id string) (Choice, bool) {
	for _, c := range e.Choices {
		if c.ID == id {
			return c, true
		}
	}
	return Choice{}, false
}
