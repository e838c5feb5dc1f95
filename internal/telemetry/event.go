package telemetry

import "time"

type EventType string

const (
	EventPlayerCreated       EventType = "player_created"
	EventMonthAdvanced       EventType = "month_advanced"
	EventAdvanceHalted       EventType = "advance_halted"
	EventLifeEventFired      EventType = "life_event_fired"
	EventDecisionResolved    EventType = "decision_resolved"
	EventMissedPayment       EventType = "missed_payment"
	EventAchievementUnlocked EventType = "achievement_unlocked"
	EventCareerStarted       EventType = "career_started"
	EventVehiclePurchased    EventType = "vehicle_purchased"
	EventSnapshotSaved       EventType = "snapshot_saved"
	EventSnapshotLoaded      EventType = "snapshot_loaded"
	EventMinigamePlayed      EventType = "minigame_played"
)

type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	PlayerID  string    `json:"player_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Metadata  string    `json:"metadata"`
}

type EventMetadata map[string]interface{}
