package telemetry

import (
	"encoding/json"
	"time"
)

type Stats struct {
	Period           string            `json:"period"`
	EventCounts      map[EventType]int `json:"event_counts"`
	MonthsAdvanced   int               `json:"months_advanced"`
	AdvancesHalted   int               `json:"advances_halted"`
	MissedPayments   int               `json:"missed_payments"`
	LifeEventsByID   map[string]int    `json:"life_events_by_id"`
	AchievementsByID map[string]int    `json:"achievements_by_id"`
	DecisionsByKind  map[string]int    `json:"decisions_by_kind"`
	MinigamesByID    map[string]int    `json:"minigames_by_id"`
}

// CalculateStats computes tuning stats from events
func CalculateStats(events []Event, since time.Time) (Stats, error) {
	stats := Stats{
		Period:           since.Format("2006-01-02"),
		EventCounts:      make(map[EventType]int),
		LifeEventsByID:   make(map[string]int),
		AchievementsByID: make(map[string]int),
		DecisionsByKind:  make(map[string]int),
		MinigamesByID:    make(map[string]int),
	}

	for _, event := range events {
		stats.EventCounts[event.Type]++

		var meta EventMetadata
		if event.Metadata != "" {
			if err := json.Unmarshal([]byte(event.Metadata), &meta); err != nil {
				return Stats{}, err
			}
		}

		switch event.Type {
		case EventMonthAdvanced:
			stats.MonthsAdvanced++
		case EventAdvanceHalted:
			stats.AdvancesHalted++
		case EventMissedPayment:
			stats.MissedPayments++
		case EventLifeEventFired:
			if id, ok := meta["event_id"].(string); ok {
				stats.LifeEventsByID[id]++
			}
		case EventAchievementUnlocked:
			if id, ok := meta["achievement_id"].(string); ok {
				stats.AchievementsByID[id]++
			}
		case EventDecisionResolved:
			if kind, ok := meta["kind"].(string); ok {
				stats.DecisionsByKind[kind]++
			}
		case EventMinigamePlayed:
			if id, ok := meta["game_id"].(string); ok {
				stats.MinigamesByID[id]++
			}
		}
	}

	return stats, nil
}
