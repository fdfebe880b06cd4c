package pods

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/fitnesshub/backend/internal/apperrors"
	"github.com/fitnesshub/backend/internal/auth"
	"github.com/fitnesshub/backend/internal/telemetry/tracing"
	"github.com/fitnesshub/backend/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=pods_test

type locationResolver interface {
	Location(r *http.Request) *time.Location
}

type InviteRequest struct {
	InviteeID uuid.UUID `json:"inviteeId"`
}

type RespondRequest struct {
	Accept bool `json:"accept"`
}

type CommitmentRequest struct {
	Target int `json:"target"`
}

type MessageRequest struct {
	Body string `json:"body"`
}

type Handler struct {
	service   *Service
	timezones locationResolver
	now       func() time.Time
}

func NewHandler(service *Service, timezones locationResolver) *Handler {
	return &Handler{
		service:   service,
		timezones: timezones,
		now:       time.Now,
	}
}

// SetupRoutes registers the pod endpoints on a router mounted at /api/pods.
func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("", h.HandleCreate).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("", h.HandleList).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/invites", h.HandlePendingInvites).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/invites/{id}/respond", h.HandleRespondToInvite).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/{id}", h.HandleDelete).Methods(http.MethodDelete, http.MethodOptions)
	r.HandleFunc("/{id}/invites", h.HandleInvite).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/{id}/leave", h.HandleLeave).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/{id}/commitment", h.HandleSetCommitment).Methods(http.MethodPut, http.MethodOptions)
	r.HandleFunc("/{id}/progress", h.HandleProgress).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/{id}/messages", h.HandleListMessages).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/{id}/messages", h.HandlePostMessage).Methods(http.MethodPost, http.MethodOptions)
}

func pathID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// decodeJSON reports false after writing a 400 response.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, what string) bool {
	if !pkg.HasJSONBody(r) {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		log.Tracef("unmarshal %s: %s", what, err)
		http.Error(w, "invalid "+what, http.StatusBadRequest)
		return false
	}
	return true
}

func writeServiceError(w http.ResponseWriter, op string, userID uuid.UUID, err error) {
	if !apperrors.IsValidation(err) && apperrors.HTTPStatus(err) >= http.StatusInternalServerError {
		log.Errorf("%s for user %s: %s", op, userID, err)
	}
	apperrors.WriteHTTPError(w, err)
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.pods.create")
	defer span.End()

	var req CreatePodRequest
	if !decodeJSON(w, r, &req, "pod") {
		return
	}

	userID, _ := auth.UserIDFromContext(ctx)
	pod, err := h.service.CreatePod(ctx, userID, req)
	if err != nil {
		writeServiceError(w, "create pod", userID, err)
		return
	}

	pkg.WriteJSON(w, http.StatusCreated, pod)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.pods.list")
	defer span.End()

	userID, _ := auth.UserIDFromContext(ctx)
	pods, err := h.service.ListPods(ctx, userID)
	if err != nil {
		writeServiceError(w, "list pods", userID, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, pods)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.pods.delete")
	defer span.End()

	podID, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid pod id", http.StatusBadRequest)
		return
	}

	userID, _ := auth.UserIDFromContext(ctx)
	if err := h.service.DeletePod(ctx, userID, podID); err != nil {
		writeServiceError(w, "delete pod", userID, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleInvite(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.pods.invite")
	defer span.End()

	podID, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid pod id", http.StatusBadRequest)
		return
	}
	var req InviteRequest
	if !decodeJSON(w, r, &req, "invite") {
		return
	}

	userID, _ := auth.UserIDFromContext(ctx)
	invite, err := h.service.Invite(ctx, userID, podID, req.InviteeID)
	if err != nil {
		writeServiceError(w, "invite to pod", userID, err)
		return
	}

	pkg.WriteJSON(w, http.StatusCreated, invite)
}

func (h *Handler) HandlePendingInvites(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.pods.pendinginvites")
	defer span.End()

	userID, _ := auth.UserIDFromContext(ctx)
	invites, err := h.service.PendingInvites(ctx, userID)
	if err != nil {
		writeServiceError(w, "list invites", userID, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, invites)
}

func (h *Handler) HandleRespondToInvite(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.pods.respondtoinvite")
	defer span.End()

	inviteID, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid invite id", http.StatusBadRequest)
		return
	}
	var req RespondRequest
	if !decodeJSON(w, r, &req, "invite response") {
		return
	}

	userID, _ := auth.UserIDFromContext(ctx)
	if err := h.service.RespondToInvite(ctx, userID, inviteID, req.Accept); err != nil {
		writeServiceError(w, "respond to invite", userID, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleLeave(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.pods.leave")
	defer span.End()

	podID, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid pod id", http.StatusBadRequest)
		return
	}

	userID, _ := auth.UserIDFromContext(ctx)
	if err := h.service.Leave(ctx, userID, podID); err != nil {
		writeServiceError(w, "leave pod", userID, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleSetCommitment(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.pods.setcommitment")
	defer span.End()

	podID, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid pod id", http.StatusBadRequest)
		return
	}
	var req CommitmentRequest
	if !decodeJSON(w, r, &req, "commitment") {
		return
	}

	userID, _ := auth.UserIDFromContext(ctx)
	now := h.now().In(h.timezones.Location(r))
	commitment, err := h.service.SetCommitment(ctx, userID, podID, req.Target, now)
	if err != nil {
		writeServiceError(w, "set commitment", userID, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, commitment)
}

func (h *Handler) HandleProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.pods.progress")
	defer span.End()

	podID, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid pod id", http.StatusBadRequest)
		return
	}

	userID, _ := auth.UserIDFromContext(ctx)
	now := h.now().In(h.timezones.Location(r))
	progress, err := h.service.MemberProgress(ctx, userID, podID, now)
	if err != nil {
		writeServiceError(w, "pod progress", userID, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, progress)
}

func (h *Handler) HandleListMessages(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.pods.listmessages")
	defer span.End()

	podID, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid pod id", http.StatusBadRequest)
		return
	}
	limit := pkg.IntQueryParam(r.URL.Query().Get("limit"), DefaultMessagesLimit, 1, MaxMessagesLimit)

	userID, _ := auth.UserIDFromContext(ctx)
	messages, err := h.service.ListMessages(ctx, userID, podID, limit)
	if err != nil {
		writeServiceError(w, "list messages", userID, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, messages)
}

func (h *Handler) HandlePostMessage(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.pods.postmessage")
	defer span.End()

	podID, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid pod id", http.StatusBadRequest)
		return
	}
	var req MessageRequest
	if !decodeJSON(w, r, &req, "message") {
		return
	}

	userID, _ := auth.UserIDFromContext(ctx)
	msg, err := h.service.PostMessage(ctx, userID, podID, req.Body)
	if err != nil {
		writeServiceError(w, "post message", userID, err)
		return
	}

	pkg.WriteJSON(w, http.StatusCreated, msg)
}
