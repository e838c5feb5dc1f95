package player

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Credit adds amount to cash. Negative amounts are ignored; use Debit.
func (p *PlayerState) Credit(amount decimal.Decimal) {
	if amount.IsNegative() {
		return
	}
	p.Cash = p.Cash.Add(amount)
	p.recompute()
}

// Debit removes amount from cash, refusing to cross the overdraft floor.
func (p *PlayerState) Debit(amount, floor decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("debit amount must not be negative, got %s", amount)
	}
	if p.Cash.Sub(amount).LessThan(floor) {
		return fmt.Errorf("%w: cash %s, need %s, floor %s", ErrInsufficientFunds, p.Cash, amount, floor)
	}
	p.Cash = p.Cash.Sub(amount)
	p.recompute()
	return nil
}

// ForceDebit removes amount from cash with no floor check. Scripted monthly
// obligations use this; cash may go negative and the engine penalizes that
// separately.
func (p *PlayerState) ForceDebit(amount decimal.Decimal) {
	if amount.IsNegative() {
		return
	}
	p.Cash = p.Cash.Sub(amount)
	p.recompute()
}

// AccrueInterest grows the debt by rate, rounded to cents, and returns the
// interest added.
func (p *PlayerState) AccrueInterest(rate decimal.Decimal) decimal.Decimal {
	if p.Debt.IsZero() || rate.IsZero() {
		return decimal.Zero
	}
	interest := p.Debt.Mul(rate).Round(2)
	p.Debt = p.Debt.Add(interest)
	p.recompute()
	return interest
}

// PayDownDebt moves amount from cash to debt reduction. The payment is
// capped at the outstanding debt.
func (p *PlayerState) PayDownDebt(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("payment must not be negative, got %s", amount)
	}
	if amount.GreaterThan(p.Debt) {
		amount = p.Debt
	}
	p.Cash = p.Cash.Sub(amount)
	p.Debt = p.Debt.Sub(amount)
	p.recompute()
	return nil
}

// ReduceDebt forgives part of the debt without touching cash.
func (p *PlayerState) ReduceDebt(amount decimal.Decimal) {
	if amount.IsNegative() {
		return
	}
	if amount.GreaterThan(p.Debt) {
		amount = p.Debt
	}
	p.Debt = p.Debt.Sub(amount)
	p.recompute()
}

// Borrow adds amount to both cash and debt.
func (p *PlayerState) Borrow(amount decimal.Decimal) {
	if amount.IsNegative() {
		return
	}
	p.Cash = p.Cash.Add(amount)
	p.Debt = p.Debt.Add(amount)
	p.recompute()
}

// DepositSavings moves amount from cash into savings.
func (p *PlayerState) DepositSavings(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("deposit must not be negative, got %s", amount)
	}
	if p.Cash.LessThan(amount) {
		return fmt.Errorf("%w: cash %s, deposit %s", ErrInsufficientFunds, p.Cash, amount)
	}
	p.Cash = p.Cash.Sub(amount)
	p.Savings = p.Savings.Add(amount)
	p.recompute()
	return nil
}

// WithdrawSavings moves amount from savings back to cash.
func (p *PlayerState) WithdrawSavings(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("withdrawal must not be negative, got %s", amount)
	}
	if p.Savings.LessThan(amount) {
		return fmt.Errorf("%w: savings %s, withdrawal %s", ErrInsufficientFunds, p.Savings, amount)
	}
	p.Savings = p.Savings.Sub(amount)
	p.Cash = p.Cash.Add(amount)
	p.recompute()
	return nil
}

func (p *PlayerState) AdjustCreditScore(delta int) {
	p.CreditScore = clamp(p.CreditScore+delta, CreditScoreMin, CreditScoreMax)
}

func (p *PlayerState) AdjustWellbeing(delta int) {
	p.Wellbeing = clamp(p.Wellbeing+delta, WellbeingMin, WellbeingMax)
}

func (p *PlayerState) AdjustAcademics(delta int) {
	p.Academics = clamp(p.Academics+delta, AcademicsMin, AcademicsMax)
}

// AddAsset inserts the asset keeping the slice sorted by ID. Adding an ID
// that already exists replaces the entry.
func (p *PlayerState) AddAsset(a Asset) {
	for i := range p.Assets {
		if p.Assets[i].ID == a.ID {
			p.Assets[i] = a
			p.recompute()
			return
		}
	}
	i := 0
	for i < len(p.Assets) && p.Assets[i].ID < a.ID {
		i++
	}
	p.Assets = append(p.Assets, Asset{})
	copy(p.Assets[i+1:], p.Assets[i:])
	p.Assets[i] = a
	p.recompute()
}

// RemoveAsset drops the asset by ID, reporting whether it existed.
func (p *PlayerState) RemoveAsset(id string) bool {
	for i := range p.Assets {
		if p.Assets[i].ID == id {
			p.Assets = append(p.Assets[:i], p.Assets[i+1:]...)
			p.recompute()
			return true
		}
	}
	return false
}

// Asset returns a pointer into the assets slice so callers can mutate
// condition in place. The pointer is invalidated by Add/RemoveAsset.
func (p *PlayerState) Asset(id string) (*Asset, bool) {
	for i := range p.Assets {
		if p.Assets[i].ID == id {
			return &p.Assets[i], true
		}
	}
	return nil, false
}

// UnlockAchievement appends the achievement if not already held. Returns
// true when newly unlocked.
func (p *PlayerState) UnlockAchievement(id string) bool {
	if p.HasAchievement(id) {
		return false
	}
	p.Achievements = append(p.Achievements, id)
	return true
}

func (p PlayerState) HasAchievement(id string) bool {
	for _, a := range p.Achievements {
		if a == id {
			return true
		}
	}
	return false
}

func (p PlayerState) HasGoal(id string) bool {
	for _, g := range p.Goals {
		if g == id {
			return true
		}
	}
	return false
}

// HasVehicle reports whether any owned asset is a vehicle.
func (p PlayerState) HasVehicle() bool {
	for _, a := range p.Assets {
		if a.Kind == AssetVehicle {
			return true
		}
	}
	return false
}

// MonthlyIncome sums employment and side job income.
func (p PlayerState) MonthlyIncome() decimal.Decimal {
	total := decimal.Zero
	if p.Employment != nil {
		total = total.Add(p.Employment.IncomePerMonth)
	}
	if p.SideJob != nil {
		total = total.Add(p.SideJob.IncomePerMonth)
	}
	return total
}

func (p *PlayerState) recompute() {
	p.NetWorth = p.Cash.Add(p.Savings).Sub(p.Debt)
}

// CheckInvariants verifies the structural invariants that every committed
// state must satisfy. A violation is a bug in the engine, not a player
// mistake.
func (p PlayerState) CheckInvariants() error {
	if p.Debt.IsNegative() {
		return fmt.Errorf("%w: debt is negative (%s)", ErrInvariantViolation, p.Debt)
	}
	if p.Savings.IsNegative() {
		return fmt.Errorf("%w: savings is negative (%s)", ErrInvariantViolation, p.Savings)
	}
	if p.CreditScore < CreditScoreMin || p.CreditScore > CreditScoreMax {
		return fmt.Errorf("%w: credit score %d out of range", ErrInvariantViolation, p.CreditScore)
	}
	if p.Wellbeing < WellbeingMin || p.Wellbeing > WellbeingMax {
		return fmt.Errorf("%w: wellbeing %d out of range", ErrInvariantViolation, p.Wellbeing)
	}
	if len(p.Goals) > MaxGoals {
		return fmt.Errorf("%w: %d goals selected, max %d", ErrInvariantViolation, len(p.Goals), MaxGoals)
	}
	want := p.Cash.Add(p.Savings).Sub(p.Debt)
	if !p.NetWorth.Equal(want) {
		return fmt.Errorf("%w: net worth %s, expected %s", ErrInvariantViolation, p.NetWorth, want)
	}
	seen := map[string]bool{}
	for _, a := range p.Achievements {
		if seen[a] {
			return fmt.Errorf("%w: duplicate achievement %s", ErrInvariantViolation, a)
		}
		seen[a] = true
	}
	return nil
}
