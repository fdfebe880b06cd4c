package analytics

import (
	"time"

	"github.com/google/uuid"
)

// EventType names what the user was shown or did. The set is open, but
// services should use the constants below.
type EventType string

const (
	EventTypeAdaptiveWorkoutShown    EventType = "adaptive_workout_shown"
	EventTypeLauncherPredictionShown EventType = "launcher_prediction_shown"
	EventTypeFoodLookup              EventType = "food_lookup"
)

func (et EventType) String() string {
	return string(et)
}

func (et EventType) IsValid() bool {
	switch et {
	case EventTypeAdaptiveWorkoutShown,
		EventTypeLauncherPredictionShown,
		EventTypeFoodLookup:
		return true
	default:
		return false
	}
}

// Event is an append-only record in the analytics event log.
type Event struct {
	ID        uuid.UUID      `json:"id"`
	Type      EventType      `json:"type"`
	UserID    *uuid.UUID     `json:"userId"`
	Payload   map[string]any `json:"payload"`
	CreatedAt time.Time      `json:"createdAt"`
}
