// Package game runs the month-by-month simulation: income, expenses, debt
// service, asset wear, random life events, and achievement checks, plus the
// decision resolutions that interrupt it.
package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"moneypath/internal/achievement"
	"moneypath/internal/catalog"
	"moneypath/internal/config"
	"moneypath/internal/event"
	"moneypath/internal/minigame"
	"moneypath/internal/player"
	"moneypath/internal/telemetry"
)

// Engine holds the injected tables and collaborators. It is not internally
// synchronized: every operation is a discrete load-mutate-store pass and the
// host serializes operations per player.
type Engine struct {
	Players      player.Repository
	Catalog      *catalog.Catalog
	Events       event.Table
	Achievements achievement.Set
	Minigames    minigame.Registry
	Balance      config.Balance
	Telemetry    telemetry.Repository
	Clock        Clock
	RNG          *rand.Rand
}

// Repair decision option IDs.
const (
	RepairChoiceRepair = "repair"
	RepairChoiceSell   = "sell"
	RepairChoiceIgnore = "ignore"
)

const ignoreRepairWellbeingPenalty = 2

// --- Create ---

type CreatePlayerParams struct {
	ID        string   `json:"id,omitempty"`
	Name      string   `json:"name"`
	PathID    string   `json:"path_id"`
	Goals     []string `json:"goals,omitempty"`
	SideJobID string   `json:"side_job_id,omitempty"`
}

// CreatePlayer starts a new simulation at month zero. The path's upfront
// cost is financed as starting debt; goals are fixed for the whole run.
func (e Engine) CreatePlayer(ctx context.Context, params CreatePlayerParams) (player.PlayerState, error) {
	path, ok := e.Catalog.PathByID(params.PathID)
	if !ok {
		return player.PlayerState{}, fmt.Errorf("%w: %q", ErrUnknownPath, params.PathID)
	}
	for _, g := range params.Goals {
		if _, ok := e.Catalog.GoalByID(g); !ok {
			return player.PlayerState{}, fmt.Errorf("%w: %q", ErrUnknownGoal, g)
		}
	}

	id := params.ID
	if id == "" {
		id = uuid.NewString()
	}
	if _, exists, err := e.Players.Get(ctx, id); err != nil {
		return player.PlayerState{}, err
	} else if exists {
		return player.PlayerState{}, fmt.Errorf("player already exists: %s", id)
	}

	kind := player.KindJob
	if path.Student {
		kind = player.KindEducation
	}

	st, err := player.New(id, params.Name, player.NewOptions{
		PathID:      path.ID,
		Goals:       params.Goals,
		Cash:        money(e.Balance.StartingCash),
		Debt:        money(path.UpfrontCost),
		CreditScore: e.Balance.StartingCreditScore,
		Wellbeing:   e.Balance.StartingWellbeing,
		AgeYears:    e.Balance.StartingAge,
		Academics:   e.Balance.StartingAcademics,
		Employment: &player.Employment{
			Kind:           kind,
			Title:          path.Name,
			IncomePerMonth: money(path.MonthlySalary),
		},
		Now: e.clock().Now(),
	})
	if err != nil {
		return player.PlayerState{}, err
	}

	if params.SideJobID != "" {
		job, ok := e.Catalog.SideJobByID(params.SideJobID)
		if !ok {
			return player.PlayerState{}, fmt.Errorf("%w: %q", ErrUnknownSideJob, params.SideJobID)
		}
		st.SideJob = &player.SideJob{
			ID:             job.ID,
			Name:           job.Name,
			IncomePerMonth: money(job.IncomePerMonth()),
		}
	}

	if err := e.Players.Put(ctx, st); err != nil {
		return player.PlayerState{}, err
	}
	e.record(telemetry.EventPlayerCreated, st.ID, telemetry.EventMetadata{"path_id": path.ID})
	return st, nil
}

// --- Advance ---

// Advance simulates up to months months. A pending decision that cannot be
// answered synchronously halts the batch at the month boundary; everything
// already applied stays committed and the remainder is recorded so a
// follow-up call can finish the batch exactly.
func (e Engine) Advance(ctx context.Context, playerID string, months int, provider DecisionProvider) (AdvanceReport, error) {
	st, err := e.load(ctx, playerID)
	if err != nil {
		return AdvanceReport{}, err
	}
	if st.Pending != nil {
		return AdvanceReport{}, fmt.Errorf("%w: %s", ErrDecisionRequired, st.Pending.Kind)
	}
	if !allowedDuration(months, st.ResumeMonths) {
		return AdvanceReport{}, fmt.Errorf("%w: %d months (choose 1, 3, or 6)", ErrInvalidDuration, months)
	}
	st.ResumeMonths = 0

	path, ok := e.Catalog.PathByID(st.PathID)
	if !ok && st.PathID != "" {
		return AdvanceReport{}, fmt.Errorf("%w: %q", ErrUnknownPath, st.PathID)
	}

	report := AdvanceReport{PlayerID: st.ID, MonthsRequested: months}

	for m := 0; m < months; m++ {
		st.Month++
		mr := MonthReport{Month: st.Month}

		e.applyIncome(&st, path, &mr)
		e.applyExpenses(&st, path, &mr)
		e.applyDebtService(&st, &mr)
		e.applyDepreciation(&st, &mr)

		halted, err := e.applyEventStep(ctx, &st, &mr, provider, months-m-1)
		if err != nil {
			return AdvanceReport{}, err
		}

		for _, d := range e.Achievements.Evaluate(&st) {
			mr.Achievements = append(mr.Achievements, d.ID)
			e.record(telemetry.EventAchievementUnlocked, st.ID, telemetry.EventMetadata{"achievement_id": d.ID, "month": st.Month})
		}

		if st.Month%12 == 0 {
			st.AgeYears++
		}
		st.UpdatedAt = e.clock().Now()

		if err := st.CheckInvariants(); err != nil {
			return AdvanceReport{}, fmt.Errorf("after month %d: %w", st.Month, err)
		}

		report.Months = append(report.Months, mr)
		report.MonthsCompleted++
		e.record(telemetry.EventMonthAdvanced, st.ID, telemetry.EventMetadata{"month": st.Month})

		if halted {
			report.Pending = st.Pending
			break
		}
	}

	if err := e.Players.Put(ctx, st); err != nil {
		return AdvanceReport{}, err
	}
	report.Player = st
	return report, nil
}

func allowedDuration(months, resume int) bool {
	switch months {
	case 1, 3, 6:
		return true
	}
	return resume > 0 && months == resume
}

// Step 1: income and career transition.
func (e Engine) applyIncome(st *player.PlayerState, path catalog.Path, mr *MonthReport) {
	if st.Employment != nil && st.Employment.Kind != player.KindCareer &&
		path.DurationMonths > 0 && st.Month > path.DurationMonths {
		wasStudent := st.Employment.Kind == player.KindEducation
		st.Employment = &player.Employment{
			Kind:           player.KindCareer,
			Title:          path.Name,
			IncomePerMonth: money(path.CareerSalary),
			SkillTags:      st.Employment.SkillTags,
		}
		if wasStudent {
			st.SideJob = nil
		}
		mr.CareerStarted = true
		e.record(telemetry.EventCareerStarted, st.ID, telemetry.EventMetadata{"path_id": path.ID, "month": st.Month})
	}

	income := st.MonthlyIncome()
	if income.IsPositive() {
		st.Credit(income)
	}
	mr.Income = income

	// Working through school wears on grades and mood.
	if st.Employment != nil && st.Employment.Kind == player.KindEducation && st.SideJob != nil {
		st.AdjustWellbeing(-e.Balance.SideJobWellbeingCost)
		st.AdjustAcademics(-e.Balance.SideJobAcademicsPenalty)
	}
}

// Step 2: fixed cost of living. Cash may go negative; going negative costs
// credit score and well-being.
func (e Engine) applyExpenses(st *player.PlayerState, path catalog.Path, mr *MonthReport) {
	costs := money(path.MonthlyCosts.Total())
	if costs.IsPositive() {
		st.ForceDebit(costs)
	}
	mr.Expenses = costs

	if st.Cash.IsNegative() {
		mr.CashNegative = true
		st.AdjustCreditScore(-e.Balance.NegativeCashScorePenalty)
		st.AdjustWellbeing(-e.Balance.NegativeCashWellbeingPenalty)
	}
}

// Step 3: interest accrual, then the minimum payment. An unaffordable
// payment is skipped and penalized, never an error.
func (e Engine) applyDebtService(st *player.PlayerState, mr *MonthReport) {
	if !st.Debt.IsPositive() {
		return
	}

	mr.Interest = st.AccrueInterest(decimal.NewFromFloat(e.Balance.MonthlyInterestRate))

	payment := money(e.Balance.MinPaymentFloor)
	if ratePart := st.Debt.Mul(decimal.NewFromFloat(e.Balance.MinPaymentRate)).Round(2); ratePart.GreaterThan(payment) {
		payment = ratePart
	}
	if payment.GreaterThan(st.Debt) {
		payment = st.Debt
	}

	if st.Cash.LessThan(payment) {
		mr.MissedPayment = true
		st.MissedPayments++
		st.AdjustCreditScore(-e.Balance.MissedPaymentScorePenalty)
		e.record(telemetry.EventMissedPayment, st.ID, telemetry.EventMetadata{"month": st.Month, "payment": payment.String()})
		return
	}

	_ = st.PayDownDebt(payment)
	mr.DebtPayment = payment
}

// Step 4: asset wear. Crossing the repair threshold queues an input-required
// repair decision, once per asset until answered.
func (e Engine) applyDepreciation(st *player.PlayerState, mr *MonthReport) {
	decay := e.Balance.AssetDecayPerMonth
	if decay <= 0 {
		return
	}
	for i := range st.Assets {
		a := &st.Assets[i]
		before := a.Condition
		a.Condition -= decay
		if a.Condition < 0 {
			a.Condition = 0
		}
		if before >= e.Balance.RepairThreshold && a.Condition < e.Balance.RepairThreshold && !a.NeedsRepair {
			a.NeedsRepair = true
			mr.RepairsQueued = append(mr.RepairsQueued, a.ID)
		}
	}
}

// Step 5: at most one event per month. Queued repair decisions take the slot
// first; otherwise a single chance roll decides whether anything fires and
// the event table picks what.
func (e Engine) applyEventStep(ctx context.Context, st *player.PlayerState, mr *MonthReport, provider DecisionProvider, monthsRemaining int) (bool, error) {
	if a, ok := nextRepair(st); ok {
		return e.consult(ctx, st, mr, e.repairDecision(a, monthsRemaining), provider)
	}

	if e.rng().Float64() >= e.Balance.EventChance {
		return false, nil
	}
	ev, ok := e.Events.Pick(*st)
	if !ok {
		return false, nil
	}

	if !ev.InputRequired {
		outcome := e.applyEffect(st, ev.Effect)
		outcome.EventID = ev.ID
		outcome.Title = ev.Title
		mr.Event = &outcome
		e.record(telemetry.EventLifeEventFired, st.ID, telemetry.EventMetadata{"event_id": ev.ID, "month": st.Month})
		return false, nil
	}

	return e.consult(ctx, st, mr, eventDecision(ev, monthsRemaining), provider)
}

// consult asks the provider to answer an input-required decision. No answer
// (nil provider, event.ErrNoChoice, or an unaffordable choice) records the
// decision as pending and halts; a hard provider failure aborts.
func (e Engine) consult(ctx context.Context, st *player.PlayerState, mr *MonthReport, pending *player.PendingDecision, provider DecisionProvider) (bool, error) {
	halt := func() (bool, error) {
		st.Pending = pending
		mr.Event = &EventOutcome{EventID: pending.EventID, Pending: true}
		e.record(telemetry.EventAdvanceHalted, st.ID, telemetry.EventMetadata{"kind": pending.Kind, "month": st.Month})
		return true, nil
	}

	if provider == nil {
		return halt()
	}

	choice, err := provider.Decide(ctx, *pending)
	if errors.Is(err, event.ErrNoChoice) {
		return halt()
	}
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrNoChoiceProvided, err)
	}
	if !pending.HasOption(choice.OptionID) {
		return false, fmt.Errorf("%w: option %q not offered", ErrNoChoiceProvided, choice.OptionID)
	}

	outcome, err := e.applyDecisionChoice(st, pending, choice.OptionID)
	if err != nil {
		if errors.Is(err, player.ErrInsufficientFunds) {
			return halt()
		}
		return false, err
	}
	mr.Event = &outcome
	e.record(telemetry.EventLifeEventFired, st.ID, telemetry.EventMetadata{"event_id": pending.EventID, "choice": choice.OptionID, "month": st.Month})
	return false, nil
}

// --- Resolve ---

// ResolveDecision applies a budget, vehicle, event, or repair decision. The
// state is validated before any mutation and persisted once, on success.
func (e Engine) ResolveDecision(ctx context.Context, playerID string, d Decision) (ResolutionResult, error) {
	st, err := e.load(ctx, playerID)
	if err != nil {
		return ResolutionResult{}, err
	}

	res := ResolutionResult{PlayerID: st.ID, Kind: d.Kind}

	switch d.Kind {
	case DecisionBudget:
		if st.Pending != nil {
			return ResolutionResult{}, fmt.Errorf("%w: %s", ErrDecisionRequired, st.Pending.Kind)
		}
		if err := e.applyBudget(&st, d.Budget); err != nil {
			return ResolutionResult{}, err
		}

	case DecisionVehicle:
		if st.Pending != nil {
			return ResolutionResult{}, fmt.Errorf("%w: %s", ErrDecisionRequired, st.Pending.Kind)
		}
		if err := e.applyVehiclePurchase(&st, d.VehicleID, &res); err != nil {
			return ResolutionResult{}, err
		}

	case DecisionEvent, DecisionRepair:
		if st.Pending == nil {
			return ResolutionResult{}, ErrNoPendingDecision
		}
		if st.Pending.Kind != d.Kind {
			return ResolutionResult{}, fmt.Errorf("%w: pending decision is %s, not %s", ErrNoPendingDecision, st.Pending.Kind, d.Kind)
		}
		if d.ChoiceID == "" {
			return ResolutionResult{}, fmt.Errorf("%w: empty choice", ErrNoChoiceProvided)
		}
		if !st.Pending.HasOption(d.ChoiceID) {
			return ResolutionResult{}, fmt.Errorf("%w: option %q not offered", ErrNoChoiceProvided, d.ChoiceID)
		}
		outcome, err := e.applyDecisionChoice(&st, st.Pending, d.ChoiceID)
		if err != nil {
			return ResolutionResult{}, err
		}
		res.Outcome = &outcome
		res.MonthsRemaining = st.Pending.MonthsRemaining
		st.ResumeMonths = st.Pending.MonthsRemaining
		st.Pending = nil

	default:
		return ResolutionResult{}, fmt.Errorf("%w: %q", ErrUnknownDecision, d.Kind)
	}

	for _, def := range e.Achievements.Evaluate(&st) {
		res.Achievements = append(res.Achievements, def.ID)
		e.record(telemetry.EventAchievementUnlocked, st.ID, telemetry.EventMetadata{"achievement_id": def.ID})
	}
	st.UpdatedAt = e.clock().Now()

	if err := st.CheckInvariants(); err != nil {
		return ResolutionResult{}, err
	}
	if err := e.Players.Put(ctx, st); err != nil {
		return ResolutionResult{}, err
	}
	res.Player = st
	e.record(telemetry.EventDecisionResolved, st.ID, telemetry.EventMetadata{"kind": d.Kind})
	return res, nil
}

func (e Engine) applyBudget(st *player.PlayerState, b *player.BudgetAllocation) error {
	if b == nil {
		return fmt.Errorf("%w: allocation missing", ErrInvalidAllocation)
	}
	if b.NeedsPct < 0 || b.WantsPct < 0 || b.SavingsPct < 0 || b.Sum() != 100 {
		return fmt.Errorf("%w: needs %d + wants %d + savings %d must total 100",
			ErrInvalidAllocation, b.NeedsPct, b.WantsPct, b.SavingsPct)
	}

	alloc := *b
	st.Budget = &alloc

	if st.Cash.IsPositive() && alloc.SavingsPct > 0 {
		share := st.Cash.Mul(decimal.NewFromInt(int64(alloc.SavingsPct))).Div(decimal.NewFromInt(100)).Round(2)
		if share.GreaterThan(st.Cash) {
			share = st.Cash
		}
		if err := st.DepositSavings(share); err != nil {
			return err
		}
	}
	if alloc.SavingsPct >= e.Balance.BudgetSavingsBonusPct {
		st.AdjustWellbeing(e.Balance.BudgetWellbeingBonus)
	}
	return nil
}

func (e Engine) applyVehiclePurchase(st *player.PlayerState, vehicleID string, res *ResolutionResult) error {
	v, ok := e.Catalog.VehicleByID(vehicleID)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownVehicle, vehicleID)
	}

	// Trade in the current vehicle first.
	for _, a := range st.Assets {
		if a.Kind == player.AssetVehicle {
			sale := salvageValue(a.PurchasePrice, e.Balance)
			st.RemoveAsset(a.ID)
			st.Credit(sale)
			res.SalePrice = sale
			break
		}
	}

	// Whatever cash cannot cover becomes a loan; cash lands at zero.
	price := money(v.Price)
	st.ForceDebit(price)
	if st.Cash.IsNegative() {
		shortfall := st.Cash.Neg()
		st.Borrow(shortfall)
		res.LoanTaken = shortfall
	}

	st.AddAsset(player.Asset{
		ID:            v.ID,
		Kind:          player.AssetVehicle,
		Name:          v.Name,
		PurchasePrice: price,
		Condition:     100,
	})
	e.record(telemetry.EventVehiclePurchased, st.ID, telemetry.EventMetadata{"vehicle_id": v.ID})
	return nil
}

func (e Engine) applyDecisionChoice(st *player.PlayerState, pending *player.PendingDecision, optionID string) (EventOutcome, error) {
	switch pending.Kind {
	case player.PendingEvent:
		ev, ok := e.Events.ByID(pending.EventID)
		if !ok {
			return EventOutcome{}, fmt.Errorf("pending decision references unknown event %q", pending.EventID)
		}
		c, ok := ev.Choice(optionID)
		if !ok {
			return EventOutcome{}, fmt.Errorf("%w: option %q not offered", ErrNoChoiceProvided, optionID)
		}
		outcome := e.applyEffect(st, c.Effect)
		outcome.EventID = ev.ID
		outcome.Title = ev.Title
		outcome.ChoiceID = c.ID
		return outcome, nil

	case player.PendingRepair:
		return e.applyRepairChoice(st, pending.AssetID, optionID)
	}
	return EventOutcome{}, fmt.Errorf("%w: %q", ErrUnknownDecision, pending.Kind)
}

func (e Engine) applyRepairChoice(st *player.PlayerState, assetID, optionID string) (EventOutcome, error) {
	a, ok := st.Asset(assetID)
	if !ok {
		return EventOutcome{}, fmt.Errorf("asset not found: %s", assetID)
	}
	out := EventOutcome{Title: a.Name, ChoiceID: optionID}

	switch optionID {
	case RepairChoiceRepair:
		cost := repairCost(a.Condition, e.Balance)
		if err := st.Debit(cost, money(e.Balance.OverdraftFloor)); err != nil {
			return EventOutcome{}, err
		}
		a.Condition = 100
		a.NeedsRepair = false
		out.CashDelta = cost.Neg()

	case RepairChoiceSell:
		sale := salvageValue(a.PurchasePrice, e.Balance)
		st.RemoveAsset(assetID)
		st.Credit(sale)
		out.CashDelta = sale

	case RepairChoiceIgnore:
		a.NeedsRepair = false
		st.AdjustWellbeing(-ignoreRepairWellbeingPenalty)
		out.WellbeingDelta = -ignoreRepairWellbeingPenalty

	default:
		return EventOutcome{}, fmt.Errorf("%w: option %q not offered", ErrNoChoiceProvided, optionID)
	}
	return out, nil
}

func (e Engine) applyEffect(st *player.PlayerState, eff event.Effect) EventOutcome {
	out := EventOutcome{}

	cash := eff.RollCash(e.rng())
	if cash.IsPositive() {
		st.Credit(cash)
	} else if cash.IsNegative() {
		st.ForceDebit(cash.Neg())
	}
	out.CashDelta = cash

	if eff.Wellbeing != 0 {
		st.AdjustWellbeing(eff.Wellbeing)
		out.WellbeingDelta = eff.Wellbeing
	}
	if eff.CreditScore != 0 {
		st.AdjustCreditScore(eff.CreditScore)
		out.CreditScoreDelta = eff.CreditScore
	}
	if eff.DebtReduction > 0 {
		amount := decimal.NewFromInt(eff.DebtReduction)
		if amount.GreaterThan(st.Debt) {
			amount = st.Debt
		}
		st.ReduceDebt(amount)
		out.DebtReduced = amount
	}
	if eff.SalaryRaisePct > 0 && st.Employment != nil && st.Employment.IncomePerMonth.IsPositive() {
		raise := st.Employment.IncomePerMonth.Mul(decimal.NewFromFloat(eff.SalaryRaisePct)).Round(2)
		st.Employment.IncomePerMonth = st.Employment.IncomePerMonth.Add(raise)
		salary := st.Employment.IncomePerMonth
		out.NewSalary = &salary
	}
	return out
}

// --- Helpers ---

func nextRepair(st *player.PlayerState) (player.Asset, bool) {
	for _, a := range st.Assets {
		if a.NeedsRepair {
			return a, true
		}
	}
	return player.Asset{}, false
}

func (e Engine) repairDecision(a player.Asset, monthsRemaining int) *player.PendingDecision {
	cost := repairCost(a.Condition, e.Balance)
	sale := salvageValue(a.PurchasePrice, e.Balance)
	return &player.PendingDecision{
		Kind:    player.PendingRepair,
		AssetID: a.ID,
		Prompt:  fmt.Sprintf("%s is wearing out (condition %d).", a.Name, a.Condition),
		Options: []player.DecisionOption{
			{ID: RepairChoiceRepair, Label: fmt.Sprintf("Repair it for $%s", cost.StringFixed(2))},
			{ID: RepairChoiceSell, Label: fmt.Sprintf("Sell it for $%s", sale.StringFixed(2))},
			{ID: RepairChoiceIgnore, Label: "Keep using it as-is"},
		},
		MonthsRemaining: monthsRemaining,
	}
}

func eventDecision(ev event.Event, monthsRemaining int) *player.PendingDecision {
	opts := make([]player.DecisionOption, 0, len(ev.Choices))
	for _, c := range ev.Choices {
		opts = append(opts, player.DecisionOption{ID: c.ID, Label: c.Label})
	}
	return &player.PendingDecision{
		Kind:            player.PendingEvent,
		EventID:         ev.ID,
		Prompt:          ev.Description,
		Options:         opts,
		MonthsRemaining: monthsRemaining,
	}
}

func repairCost(condition int, b config.Balance) decimal.Decimal {
	points := 100 - condition
	if points < 0 {
		points = 0
	}
	return money(b.RepairCostPerPoint).Mul(decimal.NewFromInt(int64(points))).Round(2)
}

func salvageValue(purchase decimal.Decimal, b config.Balance) decimal.Decimal {
	sale := purchase.Mul(decimal.NewFromFloat(b.VehicleSalvageRate)).Round(2)
	if floor := money(b.VehicleSalvageFloor); sale.LessThan(floor) {
		sale = floor
	}
	return sale
}

func money(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f).Round(2)
}

func (e Engine) load(ctx context.Context, playerID string) (player.PlayerState, error) {
	st, ok, err := e.Players.Get(ctx, playerID)
	if err != nil {
		return player.PlayerState{}, err
	}
	if !ok {
		return player.PlayerState{}, fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
	}
	return st, nil
}

func (e Engine) record(t telemetry.EventType, playerID string, meta telemetry.EventMetadata) {
	if e.Telemetry == nil {
		return
	}
	_ = e.Telemetry.RecordEvent(t, playerID, meta)
}

func (e Engine) clock() Clock {
	if e.Clock != nil {
		return e.Clock
	}
	return RealClock{}
}

func (e Engine) rng() *rand.Rand {
	if e.RNG != nil {
		return e.RNG
	}
	return NewRNG(0)
}
