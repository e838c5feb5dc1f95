package game

import "errors"

var (
	// ErrInvalidDuration rejects advance requests outside the allowed batch
	// sizes (or the recorded remainder of an interrupted batch).
	ErrInvalidDuration = errors.New("invalid advance duration")

	// ErrInvalidAllocation rejects budget splits that do not sum to 100.
	ErrInvalidAllocation = errors.New("invalid budget allocation")

	// ErrNoChoiceProvided is the terminal failure when a session aborts
	// without answering a decision it was asked to answer.
	ErrNoChoiceProvided = errors.New("no choice provided")

	// ErrDecisionRequired refuses operations while a pending decision is
	// recorded on the state.
	ErrDecisionRequired = errors.New("pending decision must be resolved first")

	// ErrNoPendingDecision refuses event/repair resolutions when nothing is
	// pending.
	ErrNoPendingDecision = errors.New("no pending decision")

	// ErrInvalidAmount rejects non-positive amounts on the direct money
	// operations.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrMinigameUnavailable refuses a game the player cannot start yet.
	ErrMinigameUnavailable = errors.New("minigame not available")

	ErrPlayerNotFound = errors.New("player not found")

	ErrUnknownPath     = errors.New("unknown path")
	ErrUnknownVehicle  = errors.New("unknown vehicle")
	ErrUnknownSideJob  = errors.New("unknown side job")
	ErrUnknownGoal     = errors.New("unknown goal")
	ErrUnknownDecision = errors.New("unknown decision kind")
	ErrUnknownMinigame = errors.New("unknown minigame")
)
