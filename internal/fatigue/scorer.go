// Package fatigue derives a 0-100 fatigue score from a user's recent
// training load compared with their own baseline.
package fatigue

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/fitnesshub/backend/internal/telemetry/metrics"
	"github.com/fitnesshub/backend/internal/telemetry/tracing"
	"github.com/fitnesshub/backend/internal/workouts"
)

//go:generate mockgen -source=$GOFILE -destination=scorer_mocks_test.go -package=fatigue_test

const (
	HistoryDays = 28
	AcuteDays   = 7

	MinScore = 0
	MaxScore = 100

	ratioWeight        = 50
	sessionBonus       = 6
	sessionsBeforeLoad = 3

	mediumThreshold = 40
	highThreshold   = 70
)

type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// Tier maps a score onto the externally visible fatigue levels.
func Tier(score int) Level {
	switch {
	case score >= highThreshold:
		return LevelHigh
	case score >= mediumThreshold:
		return LevelMedium
	default:
		return LevelLow
	}
}

type sessionHistory interface {
	CompletedSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]workouts.Session, error)
}

type Result struct {
	Score                  int     `json:"score"`
	Level                  Level   `json:"level"`
	AcuteVolumeKg          float64 `json:"acuteVolumeKg"`
	AcuteSessions          int     `json:"acuteSessions"`
	BaselineWeeklyVolumeKg float64 `json:"baselineWeeklyVolumeKg"`
}

type Scorer struct {
	history        sessionHistory
	metricsManager *metrics.Manager
}

func NewScorer(history sessionHistory, metricsManager *metrics.Manager) *Scorer {
	return &Scorer{
		history:        history,
		metricsManager: metricsManager,
	}
}

// Score loads the trailing history window of the user and scores it.
// A user without any history scores 0.
func (s *Scorer) Score(ctx context.Context, userID uuid.UUID, now time.Time) (_ Result, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.fatigue.score")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	sessions, err := s.history.CompletedSince(ctx, userID, now.AddDate(0, 0, -HistoryDays))
	if err != nil {
		return Result{}, fmt.Errorf("session history: %w", err)
	}

	res := Compute(sessions, now)
	span.SetAttributes(
		attribute.Int("fatigue.score", res.Score),
		attribute.String("fatigue.level", string(res.Level)),
		attribute.Int("sessions.count", len(sessions)),
	)
	if s.metricsManager != nil {
		s.metricsManager.HistogramFatigueScore.Observe(float64(res.Score))
	}

	return res, nil
}

// Compute scores the sessions relative to now. Sessions outside the
// history window or after now are ignored.
//
// The acute window is the last AcuteDays days. The baseline is the weekly
// average volume of the remaining part of the history window. The score
// grows with the acute/baseline volume ratio and with every acute session
// above sessionsBeforeLoad, and is clamped to [MinScore, MaxScore].
func Compute(sessions []workouts.Session, now time.Time) Result {
	acuteFrom := now.AddDate(0, 0, -AcuteDays)
	historyFrom := now.AddDate(0, 0, -HistoryDays)

	var (
		acuteVolume    float64
		acuteSessions  int
		baselineVolume float64
	)
	for _, s := range sessions {
		if s.StartedAt.After(now) || s.StartedAt.Before(historyFrom) {
			continue
		}
		volume := math.Max(0, s.TotalVolumeKg)
		if !s.StartedAt.Before(acuteFrom) {
			acuteVolume += volume
			acuteSessions++
		} else {
			baselineVolume += volume
		}
	}

	baselineWeeks := float64(HistoryDays-AcuteDays) / AcuteDays
	baselineWeekly := baselineVolume / baselineWeeks

	var ratio float64
	switch {
	case baselineWeekly > 0:
		ratio = acuteVolume / baselineWeekly
	case acuteVolume > 0:
		ratio = 1
	}

	raw := math.Round(ratioWeight*ratio) + sessionBonus*float64(max(0, acuteSessions-sessionsBeforeLoad))
	score := clamp(raw)

	return Result{
		Score:                  score,
		Level:                  Tier(score),
		AcuteVolumeKg:          round2(acuteVolume),
		AcuteSessions:          acuteSessions,
		BaselineWeeklyVolumeKg: round2(baselineWeekly),
	}
}

func clamp(raw float64) int {
	if math.IsNaN(raw) || raw < MinScore {
		return MinScore
	}
	if raw > MaxScore {
		return MaxScore
	}
	return int(raw)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
