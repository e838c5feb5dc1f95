package game

import (
	"context"
	"sync"

	"moneypath/internal/event"
	"moneypath/internal/player"
)

// Decision kinds accepted by ResolveDecision.
const (
	DecisionBudget  = "budget"
	DecisionVehicle = "vehicle"
	DecisionEvent   = "event"
	DecisionRepair  = "repair"
)

// Decision is a resolution request. Budget and vehicle decisions are
// player-initiated; event and repair decisions answer the pending decision
// recorded on the state.
type Decision struct {
	Kind      string                   `json:"kind"`
	Budget    *player.BudgetAllocation `json:"budget,omitempty"`
	VehicleID string                   `json:"vehicle_id,omitempty"`
	ChoiceID  string                   `json:"choice_id,omitempty"`
}

// Choice is a decision provider's answer: the ID of one of the pending
// decision's options.
type Choice struct {
	OptionID string `json:"option_id"`
}

// DecisionProvider answers pending decisions synchronously during an
// advance. Returning event.ErrNoChoice means the session cannot answer right
// now and halts the batch at the month boundary; any other error aborts the
// advance.
type DecisionProvider interface {
	Decide(ctx context.Context, pending player.PendingDecision) (Choice, error)
}

// ScriptedProvider answers decisions from a fixed queue and declines once
// the queue is drained. Tests and the HTTP host use it.
type ScriptedProvider struct {
	mu    sync.Mutex
	queue []string
}

func NewScriptedProvider(optionIDs ...string) *ScriptedProvider {
	return &ScriptedProvider{queue: append([]string{}, optionIDs...)}
}

func (p *ScriptedProvider) Decide(ctx context.Context, pending player.PendingDecision) (Choice, error) {
	_ = ctx
	_ = pending

	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.queue) == 0 {
		return Choice{}, event.ErrNoChoice
	}
	id := p.queue[0]
	p.queue = p.queue[1:]
	return Choice{OptionID: id}, nil
}
