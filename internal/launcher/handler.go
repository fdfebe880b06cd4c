package launcher

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/fitnesshub/backend/internal/apperrors"
	"github.com/fitnesshub/backend/internal/auth"
	"github.com/fitnesshub/backend/internal/telemetry/tracing"
	"github.com/fitnesshub/backend/internal/workouts"
	"github.com/fitnesshub/backend/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=launcher_test

type alternativesLister interface {
	AlternativeTemplates(ctx context.Context, userID uuid.UUID, limit int) ([]workouts.Template, error)
}

type locationResolver interface {
	Location(r *http.Request) *time.Location
}

type Handler struct {
	predictor    predictor
	alternatives alternativesLister
	timezones    locationResolver
	now          func() time.Time
}

func NewHandler(predictor predictor, alternatives alternativesLister, timezones locationResolver) *Handler {
	return &Handler{
		predictor:    predictor,
		alternatives: alternatives,
		timezones:    timezones,
		now:          time.Now,
	}
}

func (h *Handler) HandlePrediction(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.launcher.prediction")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		apperrors.WriteHTTPError(w, apperrors.ErrUnauthenticated)
		return
	}

	now := h.now().In(h.timezones.Location(r))
	prediction, err := h.predictor.Predict(ctx, userID, now)
	if err != nil {
		log.Errorf("launcher prediction for %s: %s", userID, err)
		apperrors.WriteHTTPError(w, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, prediction)
}

func (h *Handler) HandleAlternatives(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.launcher.alternatives")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		apperrors.WriteHTTPError(w, apperrors.ErrUnauthenticated)
		return
	}

	limit := pkg.IntQueryParam(r.URL.Query().Get("limit"), DefaultAlternativesLimit, 1, MaxAlternativesLimit)
	templates, err := h.alternatives.AlternativeTemplates(ctx, userID, limit)
	if err != nil {
		log.Errorf("launcher alternatives for %s: %s", userID, err)
		apperrors.WriteHTTPError(w, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, templates)
}
