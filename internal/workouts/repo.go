package workouts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/fitnesshub/backend/internal/apperrors"
	"github.com/fitnesshub/backend/internal/db"
	"github.com/fitnesshub/backend/internal/telemetry/tracing"
)

const sessionStatusCompleted = "completed"

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// CompletedSince returns the completed sessions of a user started at or
// after since, most recent first.
func (r *Repo) CompletedSince(ctx context.Context, userID uuid.UUID, since time.Time) (_ []Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.completedsince")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID.String()))
	span.SetAttributes(attribute.String("since", since.String()))

	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, template_id, name, started_at, duration_seconds, total_volume_kg, total_sets
		FROM workout_session
		WHERE user_id = $1 AND status = $2 AND started_at >= $3
		ORDER BY started_at DESC, id;
	`, userID, sessionStatusCompleted, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]Session, 0)
	for rows.Next() {
		var s Session
		if err := rows.Scan(
			&s.ID, &s.UserID, &s.TemplateID, &s.Name, &s.StartedAt,
			&s.DurationSeconds, &s.TotalVolumeKg, &s.TotalSets,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("sessions.count", len(sessions)))
	return sessions, nil
}

func (r *Repo) LogSession(ctx context.Context, session Session) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.logsession")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	span.SetAttributes(attribute.String("session.id", session.ID.String()))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	if err := db.EnsureProfile(ctx, tx, session.UserID); err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO workout_session
			(id, user_id, template_id, name, started_at, duration_seconds, total_volume_kg, total_sets, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`,
		session.ID, session.UserID, session.TemplateID, session.Name, session.StartedAt,
		session.DurationSeconds, session.TotalVolumeKg, session.TotalSets, sessionStatusCompleted,
	); err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}

	return &session, nil
}

// Template returns the template owned by userID. Templates of other users
// are reported as not found.
func (r *Repo) Template(ctx context.Context, userID, id uuid.UUID) (_ *Template, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.template")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("template.id", id.String()))

	var (
		t             Template
		exercisesJson []byte
	)
	err = r.db.QueryRow(ctx, `
		SELECT id, user_id, name, exercises, estimated_duration_min, updated_at
		FROM workout_template
		WHERE id = $1 AND user_id = $2;
	`, id, userID).Scan(&t.ID, &t.UserID, &t.Name, &exercisesJson, &t.EstimatedDurationMin, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal(exercisesJson, &t.Exercises); err != nil {
		return nil, fmt.Errorf("unmarshal exercises: %w", err)
	}

	return &t, nil
}

func (r *Repo) RecentTemplates(ctx context.Context, userID uuid.UUID, limit int) (_ []Template, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.recenttemplates")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("limit", limit))

	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, name, exercises, estimated_duration_min, updated_at
		FROM workout_template
		WHERE user_id = $1
		ORDER BY updated_at DESC, id
		LIMIT $2;
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templates := make([]Template, 0, limit)
	for rows.Next() {
		var (
			t             Template
			exercisesJson []byte
		)
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name, &exercisesJson, &t.EstimatedDurationMin, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		if err := json.Unmarshal(exercisesJson, &t.Exercises); err != nil {
			return nil, fmt.Errorf("unmarshal exercises of %s: %w", t.ID, err)
		}
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return templates, nil
}

// SaveTemplate inserts a new template or updates the one with the same id,
// as long as it belongs to the same user.
func (r *Repo) SaveTemplate(ctx context.Context, tmpl Template) (_ *Template, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.savetemplate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if tmpl.ID == uuid.Nil {
		tmpl.ID = uuid.New()
	}
	span.SetAttributes(attribute.String("template.id", tmpl.ID.String()))

	exercisesJson, err := json.Marshal(tmpl.Exercises)
	if err != nil {
		return nil, fmt.Errorf("marshal exercises: %w", err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	if err := db.EnsureProfile(ctx, tx, tmpl.UserID); err != nil {
		return nil, err
	}

	tag, err := tx.Exec(ctx, `
		INSERT INTO workout_template (id, user_id, name, exercises, estimated_duration_min, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE
			SET name = EXCLUDED.name,
			    exercises = EXCLUDED.exercises,
			    estimated_duration_min = EXCLUDED.estimated_duration_min,
			    updated_at = EXCLUDED.updated_at
			WHERE workout_template.user_id = EXCLUDED.user_id;
	`, tmpl.ID, tmpl.UserID, tmpl.Name, exercisesJson, tmpl.EstimatedDurationMin, tmpl.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("upsert template: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperrors.ErrNotFound
	}

	return &tmpl, nil
}
