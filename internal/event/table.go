package event

import (
	"fmt"

	"moneypath/internal/player"
)

// Table is an immutable ordered event catalog. It is injected into the
// engine at construction; nothing mutates it after that.
type Table []Event

func (t Table) ByID(id string) (Event, bool) {
	for _, ev := range t {
		if ev.ID == id {
			return ev, true
		}
	}
	return Event{}, false
}

// Pick returns the single event that fires this month: the eligible entry
// with the lowest priority, insertion order breaking ties. At most one event
// fires per month so negative effects never compound in a single step.
func (t Table) Pick(st player.PlayerState) (Event, bool) {
	best := -1
	for i, ev := range t {
		if !ev.Requires.Met(st) {
			continue
		}
		if best == -1 || ev.Priority < t[best].Priority {
			best = i
		}
	}
	if best == -1 {
		return Event{}, false
	}
	return t[best], true
}

// Validate checks table integrity: unique IDs, input-required events carry
// at least one choice with unique IDs, plain events carry none.
func (t Table) Validate() error {
	seen := map[string]bool{}
	for _, ev := range t {
		if ev.ID == "" {
			return fmt.Errorf("event with empty id")
		}
		if seen[ev.ID] {
			return fmt.Errorf("duplicate event id: %s", ev.ID)
		}
		seen[ev.ID] = true

		if ev.InputRequired {
			if len(ev.Choices) == 0 {
				return fmt.Errorf("event %s requires input but has no choices", ev.ID)
			}
			choiceSeen := map[string]bool{}
			for _, c := range ev.Choices {
				if c.ID == "" {
					return fmt.Errorf("event %s has a choice with empty id", ev.ID)
				}
				if choiceSeen[c.ID] {
					return fmt.Errorf("event %s has duplicate choice id: %s", ev.ID, c.ID)
				}
				choiceSeen[c.ID] = true
			}
		} else if len(ev.Choices) > 0 {
			return fmt.Errorf("event %s has choices but is not input-required", ev.ID)
		}
	}
	return nil
}
