// Package launcher predicts the workout a user most likely wants to start
// today from their recent history.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/fitnesshub/backend/internal/apperrors"
	"github.com/fitnesshub/backend/internal/telemetry/tracing"
	"github.com/fitnesshub/backend/internal/workouts"
)

//go:generate mockgen -source=$GOFILE -destination=predictor_mocks_test.go -package=launcher_test

const (
	HistoryDays = 30

	minWeekdayOccurrences = 2

	DefaultAlternativesLimit = 5
	MaxAlternativesLimit     = 20

	reasonMostRecent  = "most recent workout"
	reasonRecommended = "recommended for you"
)

type sessionHistory interface {
	CompletedSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]workouts.Session, error)
}

type templateStore interface {
	Template(ctx context.Context, userID, id uuid.UUID) (*workouts.Template, error)
	RecentTemplates(ctx context.Context, userID uuid.UUID, limit int) ([]workouts.Template, error)
}

type Predictor struct {
	history   sessionHistory
	templates templateStore
}

func NewPredictor(history sessionHistory, templates templateStore) *Predictor {
	return &Predictor{
		history:   history,
		templates: templates,
	}
}

// Predict applies, in order:
//   - the template done at least twice on today's weekday in the history window (high)
//   - the template of the most recent templated session (medium)
//   - the full body preset (low)
//
// Weekdays are evaluated in now's location. Templates that no longer exist
// are skipped.
func (p *Predictor) Predict(ctx context.Context, userID uuid.UUID, now time.Time) (_ Prediction, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.launcher.predict")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	sessions, err := p.history.CompletedSince(ctx, userID, now.AddDate(0, 0, -HistoryDays))
	if err != nil {
		return Prediction{}, fmt.Errorf("session history: %w", err)
	}
	sortByRecency(sessions)
	span.SetAttributes(attribute.Int("sessions.count", len(sessions)))

	tried := map[uuid.UUID]bool{}
	if templateID, ok := weekdayFavorite(sessions, now); ok {
		tmpl, err := p.template(ctx, userID, templateID)
		if err != nil {
			return Prediction{}, err
		}
		if tmpl != nil {
			return predictionFromTemplate(tmpl, ConfidenceHigh, "usually done on "+now.Weekday().String()), nil
		}
		tried[templateID] = true
	}

	for _, s := range sessions {
		if s.TemplateID == nil || tried[*s.TemplateID] {
			continue
		}
		tried[*s.TemplateID] = true

		tmpl, err := p.template(ctx, userID, *s.TemplateID)
		if err != nil {
			return Prediction{}, err
		}
		if tmpl != nil {
			return predictionFromTemplate(tmpl, ConfidenceMedium, reasonMostRecent), nil
		}
	}

	return predictionFromPreset(workouts.FullBodyPreset(), ConfidenceLow, reasonRecommended), nil
}

// AlternativeTemplates lists the user's most recently updated templates.
// The limit is clamped to [1, MaxAlternativesLimit]; non-positive values
// use DefaultAlternativesLimit.
func (p *Predictor) AlternativeTemplates(ctx context.Context, userID uuid.UUID, limit int) (_ []workouts.Template, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.launcher.alternatives")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if limit <= 0 {
		limit = DefaultAlternativesLimit
	}
	if limit > MaxAlternativesLimit {
		limit = MaxAlternativesLimit
	}
	span.SetAttributes(attribute.Int("limit", limit))

	templates, err := p.templates.RecentTemplates(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent templates: %w", err)
	}
	return templates, nil
}

// template returns nil, nil for templates that do not exist anymore.
func (p *Predictor) template(ctx context.Context, userID, id uuid.UUID) (*workouts.Template, error) {
	tmpl, err := p.templates.Template(ctx, userID, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get template %s: %w", id, err)
	}
	return tmpl, nil
}

// weekdayFavorite counts the templates of sessions on now's weekday and
// returns the most frequent one with at least minWeekdayOccurrences.
// Ties go to the template encountered first, i.e. the most recent one.
func weekdayFavorite(sessions []workouts.Session, now time.Time) (uuid.UUID, bool) {
	loc := now.Location()
	today := now.Weekday()

	counts := map[uuid.UUID]int{}
	var order []uuid.UUID
	for _, s := range sessions {
		if s.TemplateID == nil || s.StartedAt.In(loc).Weekday() != today {
			continue
		}
		if counts[*s.TemplateID] == 0 {
			order = append(order, *s.TemplateID)
		}
		counts[*s.TemplateID]++
	}

	var (
		best      uuid.UUID
		bestCount int
	)
	for _, id := range order {
		if counts[id] > bestCount {
			best = id
			bestCount = counts[id]
		}
	}

	return best, bestCount >= minWeekdayOccurrences
}

func sortByRecency(sessions []workouts.Session) {
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].StartedAt.After(sessions[j].StartedAt)
	})
}
