package adaptive

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/fitnesshub/backend/internal/apperrors"
	"github.com/fitnesshub/backend/internal/auth"
	"github.com/fitnesshub/backend/internal/telemetry/tracing"
	"github.com/fitnesshub/backend/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=adaptive_test

type workoutGenerator interface {
	Generate(ctx context.Context, userID uuid.UUID, now time.Time) (*Workout, error)
}

type locationResolver interface {
	Location(r *http.Request) *time.Location
}

type Handler struct {
	generator workoutGenerator
	timezones locationResolver
	now       func() time.Time
}

func NewHandler(generator workoutGenerator, timezones locationResolver) *Handler {
	return &Handler{
		generator: generator,
		timezones: timezones,
		now:       time.Now,
	}
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.adaptive.get")
	defer span.End()

	userID, _ := auth.UserIDFromContext(ctx)
	workout, err := h.generator.Generate(ctx, userID, h.now().In(h.timezones.Location(r)))
	if err != nil {
		if userID != uuid.Nil {
			log.Errorf("adaptive workout for %s: %s", userID, err)
		}
		apperrors.WriteHTTPError(w, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, workout)
}
