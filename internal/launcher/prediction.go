package launcher

import (
	"github.com/google/uuid"

	"github.com/fitnesshub/backend/internal/workouts"
)

type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// Prediction is the workout offered on the launcher screen. TemplateID is
// nil when the workout comes from a preset.
type Prediction struct {
	TemplateID           *uuid.UUID          `json:"templateId"`
	Name                 string              `json:"name"`
	Exercises            []workouts.Exercise `json:"exercises"`
	EstimatedDurationMin int                 `json:"estimatedDurationMin"`
	Confidence           Confidence          `json:"confidence"`
	Reason               string              `json:"reason"`
}

func predictionFromTemplate(tmpl *workouts.Template, confidence Confidence, reason string) Prediction {
	id := tmpl.ID
	return Prediction{
		TemplateID:           &id,
		Name:                 tmpl.Name,
		Exercises:            workouts.CopyExercises(tmpl.Exercises),
		EstimatedDurationMin: tmpl.EstimatedDurationMin,
		Confidence:           confidence,
		Reason:               reason,
	}
}

func predictionFromPreset(preset workouts.Preset, confidence Confidence, reason string) Prediction {
	return Prediction{
		Name:                 preset.Name,
		Exercises:            preset.Exercises,
		EstimatedDurationMin: preset.EstimatedDurationMin,
		Confidence:           confidence,
		Reason:               reason,
	}
}
