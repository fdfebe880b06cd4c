package workouts

import (
	"time"

	"github.com/google/uuid"
)

type Exercise struct {
	Name        string `json:"name"`
	MuscleGroup string `json:"muscleGroup"`
	Sets        int    `json:"sets"`
	Reps        int    `json:"reps"`
}

type Template struct {
	ID                   uuid.UUID  `json:"id"`
	UserID               uuid.UUID  `json:"userId"`
	Name                 string     `json:"name"`
	Exercises            []Exercise `json:"exercises"`
	EstimatedDurationMin int        `json:"estimatedDurationMin"`
	UpdatedAt            time.Time  `json:"updatedAt"`
}

// Session is a completed workout. Completed sessions are never modified.
type Session struct {
	ID              uuid.UUID  `json:"id"`
	UserID          uuid.UUID  `json:"userId"`
	TemplateID      *uuid.UUID `json:"templateId"`
	Name            string     `json:"name"`
	StartedAt       time.Time  `json:"startedAt"`
	DurationSeconds int        `json:"durationSeconds"`
	TotalVolumeKg   float64    `json:"totalVolumeKg"`
	TotalSets       int        `json:"totalSets"`
}

func CopyExercises(exercises []Exercise) []Exercise {
	out := make([]Exercise, len(exercises))
	copy(out, exercises)
	return out
}
