package game

import (
	"github.com/shopspring/decimal"

	"moneypath/internal/player"
)

// EventOutcome records what a fired life event (or an answered decision) did
// to the state.
type EventOutcome struct {
	EventID          string           `json:"event_id,omitempty"`
	Title            string           `json:"title,omitempty"`
	ChoiceID         string           `json:"choice_id,omitempty"`
	CashDelta        decimal.Decimal  `json:"cash_delta"`
	WellbeingDelta   int              `json:"wellbeing_delta,omitempty"`
	CreditScoreDelta int              `json:"credit_score_delta,omitempty"`
	DebtReduced      decimal.Decimal  `json:"debt_reduced"`
	NewSalary        *decimal.Decimal `json:"new_salary,omitempty"`
	Pending          bool             `json:"pending,omitempty"`
}

// MonthReport covers one simulated month, step by step.
type MonthReport struct {
	Month         int             `json:"month"`
	Income        decimal.Decimal `json:"income"`
	Expenses      decimal.Decimal `json:"expenses"`
	Interest      decimal.Decimal `json:"interest"`
	DebtPayment   decimal.Decimal `json:"debt_payment"`
	MissedPayment bool            `json:"missed_payment,omitempty"`
	CashNegative  bool            `json:"cash_negative,omitempty"`
	CareerStarted bool            `json:"career_started,omitempty"`
	RepairsQueued []string        `json:"repairs_queued,omitempty"`
	Event         *EventOutcome   `json:"event,omitempty"`
	Achievements  []string        `json:"achievements,omitempty"`
}

// AdvanceReport summarizes one Advance call. MonthsCompleted can fall short
// of MonthsRequested when a pending decision halts the batch; the months
// already applied stay committed.
type AdvanceReport struct {
	PlayerID        string                  `json:"player_id"`
	MonthsRequested int                     `json:"months_requested"`
	MonthsCompleted int                     `json:"months_completed"`
	Months          []MonthReport           `json:"months"`
	Pending         *player.PendingDecision `json:"pending,omitempty"`
	Player          player.PlayerState      `json:"player"`
}

// ResolutionResult summarizes one ResolveDecision call. MonthsRemaining is
// the remainder of an interrupted batch; the host issues the follow-up
// advance for exactly that many months.
type ResolutionResult struct {
	PlayerID        string             `json:"player_id"`
	Kind            string             `json:"kind"`
	Outcome         *EventOutcome      `json:"outcome,omitempty"`
	LoanTaken       decimal.Decimal    `json:"loan_taken"`
	SalePrice       decimal.Decimal    `json:"sale_price"`
	MonthsRemaining int                `json:"months_remaining"`
	Achievements    []string           `json:"achievements,omitempty"`
	Player          player.PlayerState `json:"player"`
}
