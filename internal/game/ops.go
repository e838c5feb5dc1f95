package game

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"moneypath/internal/minigame"
	"moneypath/internal/player"
	"moneypath/internal/telemetry"
)

// --- Players ---

func (e Engine) Player(ctx context.Context, playerID string) (player.PlayerState, error) {
	return e.load(ctx, playerID)
}

func (e Engine) ListPlayers(ctx context.Context) ([]player.PlayerState, error) {
	return e.Players.List(ctx)
}

func (e Engine) DeletePlayer(ctx context.Context, playerID string) error {
	ok, err := e.Players.Delete(ctx, playerID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
	}
	return nil
}

// --- Direct money moves ---

// LedgerResult reports a direct money operation between the monthly cycles.
type LedgerResult struct {
	PlayerID     string             `json:"player_id"`
	Amount       decimal.Decimal    `json:"amount"`
	Achievements []string           `json:"achievements,omitempty"`
	Player       player.PlayerState `json:"player"`
}

// DepositSavings moves cash into savings. Allowed even while a decision is
// pending, since answering it may need the money shuffled first.
func (e Engine) DepositSavings(ctx context.Context, playerID string, amount decimal.Decimal) (LedgerResult, error) {
	return e.ledgerOp(ctx, playerID, amount, func(st *player.PlayerState, amt decimal.Decimal) (decimal.Decimal, error) {
		return amt, st.DepositSavings(amt)
	})
}

// WithdrawSavings moves savings back into cash.
func (e Engine) WithdrawSavings(ctx context.Context, playerID string, amount decimal.Decimal) (LedgerResult, error) {
	return e.ledgerOp(ctx, playerID, amount, func(st *player.PlayerState, amt decimal.Decimal) (decimal.Decimal, error) {
		return amt, st.WithdrawSavings(amt)
	})
}

// PayDebt pays down the loan from cash, on top of the scripted minimum
// payments. The payment is capped at the outstanding debt and the cash on
// hand must cover it.
func (e Engine) PayDebt(ctx context.Context, playerID string, amount decimal.Decimal) (LedgerResult, error) {
	return e.ledgerOp(ctx, playerID, amount, func(st *player.PlayerState, amt decimal.Decimal) (decimal.Decimal, error) {
		if amt.GreaterThan(st.Debt) {
			amt = st.Debt
		}
		if st.Cash.LessThan(amt) {
			return decimal.Zero, fmt.Errorf("%w: cash %s, payment %s", player.ErrInsufficientFunds, st.Cash, amt)
		}
		return amt, st.PayDownDebt(amt)
	})
}

func (e Engine) ledgerOp(ctx context.Context, playerID string, amount decimal.Decimal, apply func(*player.PlayerState, decimal.Decimal) (decimal.Decimal, error)) (LedgerResult, error) {
	if !amount.IsPositive() {
		return LedgerResult{}, fmt.Errorf("%w: got %s", ErrInvalidAmount, amount)
	}
	st, err := e.load(ctx, playerID)
	if err != nil {
		return LedgerResult{}, err
	}

	moved, err := apply(&st, amount.Round(2))
	if err != nil {
		return LedgerResult{}, err
	}

	res := LedgerResult{PlayerID: st.ID, Amount: moved}
	e.finish(ctx, &st, &res.Achievements)
	if err := st.CheckInvariants(); err != nil {
		return LedgerResult{}, err
	}
	if err := e.Players.Put(ctx, st); err != nil {
		return LedgerResult{}, err
	}
	res.Player = st
	return res, nil
}

// --- Side jobs ---

// TakeSideJob starts (or swaps to) a part-time job from the catalog.
// Students pay for the hours in well-being and grades each month.
func (e Engine) TakeSideJob(ctx context.Context, playerID, sideJobID string) (player.PlayerState, error) {
	job, ok := e.Catalog.SideJobByID(sideJobID)
	if !ok {
		return player.PlayerState{}, fmt.Errorf("%w: %q", ErrUnknownSideJob, sideJobID)
	}
	st, err := e.load(ctx, playerID)
	if err != nil {
		return player.PlayerState{}, err
	}

	st.SideJob = &player.SideJob{
		ID:             job.ID,
		Name:           job.Name,
		IncomePerMonth: money(job.IncomePerMonth()),
	}

	e.finish(ctx, &st, nil)
	if err := st.CheckInvariants(); err != nil {
		return player.PlayerState{}, err
	}
	if err := e.Players.Put(ctx, st); err != nil {
		return player.PlayerState{}, err
	}
	return st, nil
}

func (e Engine) QuitSideJob(ctx context.Context, playerID string) (player.PlayerState, error) {
	st, err := e.load(ctx, playerID)
	if err != nil {
		return player.PlayerState{}, err
	}
	if st.SideJob == nil {
		return player.PlayerState{}, fmt.Errorf("player %s has no side job", playerID)
	}

	st.SideJob = nil
	st.UpdatedAt = e.clock().Now()
	if err := e.Players.Put(ctx, st); err != nil {
		return player.PlayerState{}, err
	}
	return st, nil
}

// --- Minigames ---

type MinigameInfo struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// MinigameResult reports one play: the game's outcome plus anything the
// engine layered on top of it.
type MinigameResult struct {
	PlayerID     string             `json:"player_id"`
	Outcome      minigame.Outcome   `json:"outcome"`
	Achievements []string           `json:"achievements,omitempty"`
	Player       player.PlayerState `json:"player"`
}

// AvailableMinigames lists the games the player can start right now.
func (e Engine) AvailableMinigames(ctx context.Context, playerID string) ([]MinigameInfo, error) {
	st, err := e.load(ctx, playerID)
	if err != nil {
		return nil, err
	}
	out := []MinigameInfo{}
	for _, g := range e.Minigames.Available(st) {
		out = append(out, MinigameInfo{ID: g.ID(), Title: g.Title(), Description: g.Description()})
	}
	return out, nil
}

// PlayMinigame runs one game and applies its outcome: cash moves through the
// ledger, the game's own well-being reward applies as-is, and a win without
// one earns the configured flat reward.
func (e Engine) PlayMinigame(ctx context.Context, playerID string, req minigame.Request) (MinigameResult, error) {
	st, err := e.load(ctx, playerID)
	if err != nil {
		return MinigameResult{}, err
	}
	g, ok := e.Minigames.ByID(req.GameID)
	if !ok {
		return MinigameResult{}, fmt.Errorf("%w: %q", ErrUnknownMinigame, req.GameID)
	}
	if !g.Available(st) {
		return MinigameResult{}, fmt.Errorf("%w: %s", ErrMinigameUnavailable, g.ID())
	}

	out, err := g.Play(e.rng(), st, req)
	if err != nil {
		return MinigameResult{}, err
	}

	if out.CashDelta.IsNegative() {
		if err := st.Debit(out.CashDelta.Neg(), money(e.Balance.OverdraftFloor)); err != nil {
			return MinigameResult{}, err
		}
	} else if out.CashDelta.IsPositive() {
		st.Credit(out.CashDelta)
	}

	if out.WellbeingDelta != 0 {
		st.AdjustWellbeing(out.WellbeingDelta)
	} else if out.Won {
		st.AdjustWellbeing(e.Balance.MinigameWellbeingReward)
		out.WellbeingDelta = e.Balance.MinigameWellbeingReward
	}

	res := MinigameResult{PlayerID: st.ID, Outcome: out}
	e.finish(ctx, &st, &res.Achievements)
	if err := st.CheckInvariants(); err != nil {
		return MinigameResult{}, err
	}
	if err := e.Players.Put(ctx, st); err != nil {
		return MinigameResult{}, err
	}
	res.Player = st
	e.record(telemetry.EventMinigamePlayed, st.ID, telemetry.EventMetadata{"game_id": out.GameID, "won": out.Won, "lesson": out.Lesson})
	return res, nil
}

// finish runs the shared tail of every direct operation: achievement checks
// and the updated-at stamp. Unlock IDs are appended to out when non-nil.
func (e Engine) finish(ctx context.Context, st *player.PlayerState, out *[]string) {
	_ = ctx
	for _, def := range e.Achievements.Evaluate(st) {
		if out != nil {
			*out = append(*out, def.ID)
		}
		e.record(telemetry.EventAchievementUnlocked, st.ID, telemetry.EventMetadata{"achievement_id": def.ID})
	}
	st.UpdatedAt = e.clock().Now()
}
