// Package achievement holds the unlock table: predicate-driven milestones
// that are re-evaluated after every simulated month.
package achievement

import (
	"fmt"

	"moneypath/internal/player"
)

// Definition is one unlockable milestone. Satisfied is a pure predicate over
// the player state; the reward is applied once, on unlock.
type Definition struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	WellbeingReward int    `json:"wellbeing_reward"`

	Satisfied func(player.PlayerState) bool `json:"-"`
}

// Set is an immutable ordered achievement table. Evaluation order is table
// order, which fixes the unlock sequence when several predicates flip in the
// same month.
type Set []Definition

func (s Set) ByID(id string) (Definition, bool) {
	for _, d := range s {
		if d.ID == id {
			return d, true
		}
	}
	return Definition{}, false
}

// Evaluate unlocks every newly satisfied achievement, applies its well-being
// reward, and returns the unlocked definitions in table order. Already-held
// achievements are skipped, so repeated evaluation is idempotent.
func (s Set) Evaluate(st *player.PlayerState) []Definition {
	var unlocked []Definition
	for _, d := range s {
		if st.HasAchievement(d.ID) {
			continue
		}
		if d.Satisfied == nil || !d.Satisfied(*st) {
			continue
		}
		st.UnlockAchievement(d.ID)
		st.AdjustWellbeing(d.WellbeingReward)
		unlocked = append(unlocked, d)
	}
	return unlocked
}

func (s Set) Validate() error {
	seen := map[string]bool{}
	for _, d := range s {
		if d.ID == "" {
			return fmt.Errorf("achievement with empty id")
		}
		if seen[d.ID] {
			return fmt.Errorf("duplicate achievement id: %s", d.ID)
		}
		seen[d.ID] = true
		if d.Satisfied == nil {
			return fmt.Errorf("achievement %s has no predicate", d.ID)
		}
	}
	return nil
}
