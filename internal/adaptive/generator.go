// Package adaptive adjusts the predicted workout to the user's fatigue.
package adaptive

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/fitnesshub/backend/internal/analytics"
	"github.com/fitnesshub/backend/internal/apperrors"
	"github.com/fitnesshub/backend/internal/fatigue"
	"github.com/fitnesshub/backend/internal/launcher"
	"github.com/fitnesshub/backend/internal/telemetry/metrics"
	"github.com/fitnesshub/backend/internal/telemetry/tracing"
	"github.com/fitnesshub/backend/internal/workouts"
)

//go:generate mockgen -source=$GOFILE -destination=generator_mocks_test.go -package=adaptive_test

type AdaptationType string

const (
	AdaptationRest      AdaptationType = "REST"
	AdaptationVolume    AdaptationType = "VOLUME"
	AdaptationIntensity AdaptationType = "INTENSITY"

	restVolumeAdjustment      = -40
	intensityVolumeAdjustment = 15
)

type fatigueScorer interface {
	Score(ctx context.Context, userID uuid.UUID, now time.Time) (fatigue.Result, error)
}

type workoutPredictor interface {
	Predict(ctx context.Context, userID uuid.UUID, now time.Time) (launcher.Prediction, error)
}

type eventRecorder interface {
	Record(eventType analytics.EventType, userID uuid.UUID, payload map[string]any)
}

type Workout struct {
	TemplateID       *uuid.UUID          `json:"templateId"`
	Name             string              `json:"name"`
	Exercises        []workouts.Exercise `json:"exercises"`
	AdaptationType   AdaptationType      `json:"adaptationType"`
	VolumeAdjustment int                 `json:"volumeAdjustment"`
	FatigueScore     int                 `json:"fatigueScore"`
	FatigueLevel     fatigue.Level       `json:"fatigueLevel"`
	Reason           string              `json:"reason"`
}

type Generator struct {
	scorer         fatigueScorer
	predictor      workoutPredictor
	recorder       eventRecorder
	metricsManager *metrics.Manager
}

func NewGenerator(
	scorer fatigueScorer,
	predictor workoutPredictor,
	recorder eventRecorder,
	metricsManager *metrics.Manager,
) *Generator {
	return &Generator{
		scorer:         scorer,
		predictor:      predictor,
		recorder:       recorder,
		metricsManager: metricsManager,
	}
}

// Generate picks the base workout and scales it by the fatigue tier:
// high fatigue rests, medium keeps the volume and low raises the reps.
func (g *Generator) Generate(ctx context.Context, userID uuid.UUID, now time.Time) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.adaptive.generate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if userID == uuid.Nil {
		return nil, apperrors.ErrUnauthenticated
	}

	score, err := g.scorer.Score(ctx, userID, now)
	if err != nil {
		return nil, fmt.Errorf("fatigue score: %w", err)
	}

	prediction, err := g.predictor.Predict(ctx, userID, now)
	if err != nil {
		return nil, fmt.Errorf("predict base workout: %w", err)
	}

	workout := adapt(score, prediction)
	span.SetAttributes(
		attribute.String("adaptation.type", string(workout.AdaptationType)),
		attribute.Int("fatigue.score", score.Score),
	)

	if g.metricsManager != nil {
		g.metricsManager.CounterAdaptiveWorkouts.WithLabelValues(string(workout.AdaptationType)).Inc()
	}
	g.emitShown(userID, workout)

	return workout, nil
}

func adapt(score fatigue.Result, prediction launcher.Prediction) *Workout {
	hasTemplate := prediction.TemplateID != nil

	var (
		name      string
		exercises []workouts.Exercise
	)
	if hasTemplate {
		name = prediction.Name
		exercises = workouts.CopyExercises(prediction.Exercises)
	} else {
		preset := workouts.CompoundPreset()
		name = preset.Name
		exercises = preset.Exercises
	}

	workout := &Workout{
		TemplateID:   prediction.TemplateID,
		FatigueScore: score.Score,
		FatigueLevel: score.Level,
	}

	switch score.Level {
	case fatigue.LevelHigh:
		workout.AdaptationType = AdaptationRest
		workout.VolumeAdjustment = restVolumeAdjustment
		workout.Reason = "high fatigue, take it easy today"
		if hasTemplate {
			workout.Name = name
			workout.Exercises = scaleVolume(exercises, restVolumeAdjustment)
		} else {
			recovery := workouts.RecoveryPreset()
			workout.Name = recovery.Name
			workout.Exercises = recovery.Exercises
		}
	case fatigue.LevelMedium:
		workout.AdaptationType = AdaptationVolume
		workout.VolumeAdjustment = 0
		workout.Reason = "moderate fatigue, keep your usual volume"
		workout.Name = name
		workout.Exercises = exercises
	default:
		workout.AdaptationType = AdaptationIntensity
		workout.VolumeAdjustment = intensityVolumeAdjustment
		workout.Reason = "well recovered, push a little harder"
		workout.Name = name
		workout.Exercises = scaleReps(exercises, intensityVolumeAdjustment)
	}

	return workout
}

// scaleVolume applies a percentage to sets and reps.
func scaleVolume(exercises []workouts.Exercise, percent int) []workouts.Exercise {
	out := make([]workouts.Exercise, len(exercises))
	for i, ex := range exercises {
		ex.Sets = scale(ex.Sets, percent)
		ex.Reps = scale(ex.Reps, percent)
		out[i] = ex
	}
	return out
}

func scaleReps(exercises []workouts.Exercise, percent int) []workouts.Exercise {
	out := make([]workouts.Exercise, len(exercises))
	for i, ex := range exercises {
		ex.Reps = scale(ex.Reps, percent)
		out[i] = ex
	}
	return out
}

// scale rounds to the nearest integer and never returns less than 1.
func scale(v, percent int) int {
	scaled := int(math.Round(float64(v) * float64(100+percent) / 100))
	return max(1, scaled)
}

func (g *Generator) emitShown(userID uuid.UUID, workout *Workout) {
	if g.recorder == nil {
		return
	}

	payload := map[string]any{
		"adaptation_type":   string(workout.AdaptationType),
		"fatigue_score":     workout.FatigueScore,
		"volume_adjustment": workout.VolumeAdjustment,
		"template_id":       nil,
	}
	if workout.TemplateID != nil {
		payload["template_id"] = workout.TemplateID.String()
	}
	g.recorder.Record(analytics.EventTypeAdaptiveWorkoutShown, userID, payload)
}
