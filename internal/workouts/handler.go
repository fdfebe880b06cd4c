package workouts

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/fitnesshub/backend/internal/apperrors"
	"github.com/fitnesshub/backend/internal/auth"
	"github.com/fitnesshub/backend/internal/telemetry/tracing"
	"github.com/fitnesshub/backend/pkg"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) HandleLogSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.logsession")
	defer span.End()

	if !pkg.HasJSONBody(r) {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req LogSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("log session, unmarshal json params: %s", err)
		http.Error(w, "invalid workout session", http.StatusBadRequest)
		return
	}

	userID, _ := auth.UserIDFromContext(ctx)
	session, err := h.service.LogSession(ctx, userID, req)
	if err != nil {
		if !apperrors.IsValidation(err) {
			log.Errorf("log session for user %s: %s", userID, err)
		}
		apperrors.WriteHTTPError(w, err)
		return
	}

	pkg.WriteJSON(w, http.StatusCreated, session)
}

func (h *Handler) HandleSaveTemplate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.savetemplate")
	defer span.End()

	if !pkg.HasJSONBody(r) {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req SaveTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("save template, unmarshal json params: %s", err)
		http.Error(w, "invalid workout template", http.StatusBadRequest)
		return
	}

	userID, _ := auth.UserIDFromContext(ctx)
	tmpl, err := h.service.SaveTemplate(ctx, userID, req)
	if err != nil {
		if !apperrors.IsValidation(err) {
			log.Errorf("save template for user %s: %s", userID, err)
		}
		apperrors.WriteHTTPError(w, err)
		return
	}

	status := http.StatusCreated
	if req.ID != nil && *req.ID != uuid.Nil {
		status = http.StatusOK
	}
	pkg.WriteJSON(w, status, tmpl)
}

func (h *Handler) HandleListTemplates(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.listtemplates")
	defer span.End()

	limit := pkg.IntQueryParam(r.URL.Query().Get("limit"), maxTemplateListLimit, 1, maxTemplateListLimit)

	userID, _ := auth.UserIDFromContext(ctx)
	templates, err := h.service.ListTemplates(ctx, userID, limit)
	if err != nil {
		log.Errorf("list templates for user %s: %s", userID, err)
		apperrors.WriteHTTPError(w, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, templates)
}
