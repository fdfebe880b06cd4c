package workouts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fitnesshub/backend/internal/apperrors"
	"github.com/fitnesshub/backend/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=workouts_test

const (
	maxNameLength         = 60
	maxTemplateExercises  = 30
	maxSetsPerExercise    = 20
	maxRepsPerSet         = 100
	maxSessionDuration    = 24 * time.Hour
	defaultDurationMin    = 45
	maxTemplateListLimit  = 50
	startedAtFutureMargin = 5 * time.Minute
)

type workoutsRepo interface {
	LogSession(ctx context.Context, session Session) (*Session, error)
	Template(ctx context.Context, userID, id uuid.UUID) (*Template, error)
	RecentTemplates(ctx context.Context, userID uuid.UUID, limit int) ([]Template, error)
	SaveTemplate(ctx context.Context, tmpl Template) (*Template, error)
}

type LogSessionRequest struct {
	TemplateID      *uuid.UUID `json:"templateId"`
	Name            string     `json:"name"`
	StartedAt       time.Time  `json:"startedAt"`
	DurationSeconds int        `json:"durationSeconds"`
	TotalVolumeKg   float64    `json:"totalVolumeKg"`
	TotalSets       int        `json:"totalSets"`
}

type SaveTemplateRequest struct {
	ID                   *uuid.UUID `json:"id"`
	Name                 string     `json:"name"`
	Exercises            []Exercise `json:"exercises"`
	EstimatedDurationMin int        `json:"estimatedDurationMin"`
}

type Service struct {
	repo workoutsRepo
	now  func() time.Time
}

func NewService(repo workoutsRepo) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

func (s *Service) LogSession(ctx context.Context, userID uuid.UUID, req LogSessionRequest) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.logsession")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if userID == uuid.Nil {
		return nil, apperrors.ErrUnauthenticated
	}

	name := strings.TrimSpace(req.Name)
	switch {
	case req.StartedAt.IsZero():
		return nil, apperrors.Validation("workout start time is required")
	case req.StartedAt.After(s.now().Add(startedAtFutureMargin)):
		return nil, apperrors.Validation("workout cannot start in the future")
	case req.DurationSeconds < 0 || time.Duration(req.DurationSeconds)*time.Second > maxSessionDuration:
		return nil, apperrors.Validation("workout duration must be between 0 and 24 hours")
	case req.TotalVolumeKg < 0 || req.TotalSets < 0:
		return nil, apperrors.Validation("workout volume and sets cannot be negative")
	case len([]rune(name)) > maxNameLength:
		return nil, apperrors.Validation(fmt.Sprintf("workout name must be at most %d characters", maxNameLength))
	}

	if req.TemplateID != nil {
		tmpl, err := s.repo.Template(ctx, userID, *req.TemplateID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.Validation("unknown workout template")
			}
			return nil, fmt.Errorf("get template %s: %w", req.TemplateID, err)
		}
		if name == "" {
			name = tmpl.Name
		}
	}
	if name == "" {
		name = "Workout"
	}

	session, err := s.repo.LogSession(ctx, Session{
		UserID:          userID,
		TemplateID:      req.TemplateID,
		Name:            name,
		StartedAt:       req.StartedAt,
		DurationSeconds: req.DurationSeconds,
		TotalVolumeKg:   req.TotalVolumeKg,
		TotalSets:       req.TotalSets,
	})
	if err != nil {
		return nil, fmt.Errorf("log session: %w", err)
	}
	return session, nil
}

func (s *Service) SaveTemplate(ctx context.Context, userID uuid.UUID, req SaveTemplateRequest) (_ *Template, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.savetemplate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if userID == uuid.Nil {
		return nil, apperrors.ErrUnauthenticated
	}

	name := strings.TrimSpace(req.Name)
	if name == "" || len([]rune(name)) > maxNameLength {
		return nil, apperrors.Validation(fmt.Sprintf("template name must be between 1 and %d characters", maxNameLength))
	}
	if len(req.Exercises) == 0 || len(req.Exercises) > maxTemplateExercises {
		return nil, apperrors.Validation(fmt.Sprintf("template must have between 1 and %d exercises", maxTemplateExercises))
	}

	exercises := make([]Exercise, 0, len(req.Exercises))
	for _, ex := range req.Exercises {
		ex.Name = strings.TrimSpace(ex.Name)
		ex.MuscleGroup = strings.ToLower(strings.TrimSpace(ex.MuscleGroup))
		if ex.Name == "" {
			return nil, apperrors.Validation("exercise name is required")
		}
		if ex.Sets < 1 || ex.Sets > maxSetsPerExercise {
			return nil, apperrors.Validation(fmt.Sprintf("sets must be between 1 and %d", maxSetsPerExercise))
		}
		if ex.Reps < 1 || ex.Reps > maxRepsPerSet {
			return nil, apperrors.Validation(fmt.Sprintf("reps must be between 1 and %d", maxRepsPerSet))
		}
		exercises = append(exercises, ex)
	}

	duration := req.EstimatedDurationMin
	if duration == 0 {
		duration = defaultDurationMin
	}
	if duration < 1 || duration > 600 {
		return nil, apperrors.Validation("estimated duration must be between 1 and 600 minutes")
	}

	tmpl := Template{
		UserID:               userID,
		Name:                 name,
		Exercises:            exercises,
		EstimatedDurationMin: duration,
		UpdatedAt:            s.now(),
	}
	if req.ID != nil {
		tmpl.ID = *req.ID
	}

	saved, err := s.repo.SaveTemplate(ctx, tmpl)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("save template: %w", err)
	}
	return saved, nil
}

func (s *Service) ListTemplates(ctx context.Context, userID uuid.UUID, limit int) (_ []Template, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.listtemplates")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if userID == uuid.Nil {
		return nil, apperrors.ErrUnauthenticated
	}
	if limit < 1 || limit > maxTemplateListLimit {
		limit = maxTemplateListLimit
	}

	templates, err := s.repo.RecentTemplates(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent templates: %w", err)
	}
	return templates, nil
}
