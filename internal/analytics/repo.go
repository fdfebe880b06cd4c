package analytics

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/fitnesshub/backend/internal/telemetry/tracing"
)

type ListParams struct {
	Type   *EventType
	UserID *uuid.UUID
	Page   int
	Size   int
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, event Event) (_ *Event, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.analytics.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("type", event.Type.String()))

	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.Payload == nil {
		event.Payload = map[string]any{}
	}

	payloadJson, err := json.Marshal(event.Payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
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

	err = tx.QueryRow(ctx, `
		INSERT INTO analytics_event (id, type, user_id, payload, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`,
		event.ID,
		event.Type,
		event.UserID,
		payloadJson,
		event.CreatedAt,
	).Scan(&event.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// List returns a page of events, newest first, and the total number of
// events matching the filters.
func (r *Repo) List(ctx context.Context, params ListParams) (_ []Event, total int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.analytics.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	if params.Type != nil {
		span.SetAttributes(attribute.String("type", params.Type.String()))
	}
	if params.UserID != nil {
		span.SetAttributes(attribute.String("user.id", params.UserID.String()))
	}
	span.SetAttributes(attribute.Int("page", params.Page), attribute.Int("size", params.Size))

	var eventType *string
	if params.Type != nil {
		t := params.Type.String()
		eventType = &t
	}

	if err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM analytics_event
		WHERE ($1::text IS NULL OR type = $1)
		  AND ($2::uuid IS NULL OR user_id = $2);
	`, eventType, params.UserID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, type, user_id, payload, created_at
		FROM analytics_event
		WHERE ($1::text IS NULL OR type = $1)
		  AND ($2::uuid IS NULL OR user_id = $2)
		ORDER BY created_at DESC, id
		LIMIT $3 OFFSET $4;
	`,
		eventType, params.UserID,
		params.Size, params.Size*params.Page,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	events := make([]Event, 0, params.Size)
	for rows.Next() {
		var (
			event       Event
			payloadJson []byte
		)
		if err := rows.Scan(&event.ID, &event.Type, &event.UserID, &payloadJson, &event.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("rows scan: %w", err)
		}
		if err := json.Unmarshal(payloadJson, &event.Payload); err != nil {
			return nil, 0, fmt.Errorf("unmarshal payload of %s: %w", event.ID, err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return events, total, nil
}
