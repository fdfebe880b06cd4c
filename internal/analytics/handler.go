package analytics

import (
	"context"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/fitnesshub/backend/internal/apperrors"
	"github.com/fitnesshub/backend/internal/telemetry/tracing"
	"github.com/fitnesshub/backend/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=analytics_test

const maxPageSize = 200

type eventsLister interface {
	List(ctx context.Context, params ListParams) (_ []Event, total int, err error)
}

type ListResponse struct {
	Events []Event `json:"events"`
	Total  int     `json:"total"`
}

type Handler struct {
	lister eventsLister
}

func NewHandler(lister eventsLister) *Handler {
	return &Handler{
		lister: lister,
	}
}

// HandleList serves /admin/analytics/events/page/{page}/size/{size}.
// Optional type and userId query values filter the page.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.analytics.list")
	defer span.End()

	vars := mux.Vars(r)
	page, err := strconv.Atoi(vars["page"])
	if err != nil || page < 1 {
		http.Error(w, "invalid page", http.StatusBadRequest)
		return
	}
	size, err := strconv.Atoi(vars["size"])
	if err != nil || size < 1 || size > maxPageSize {
		http.Error(w, "invalid size", http.StatusBadRequest)
		return
	}

	params := ListParams{
		Page: page - 1,
		Size: size,
	}
	if rawType := r.URL.Query().Get("type"); rawType != "" {
		eventType := EventType(rawType)
		if !eventType.IsValid() {
			http.Error(w, "invalid event type", http.StatusBadRequest)
			return
		}
		params.Type = &eventType
	}
	if rawUserID := r.URL.Query().Get("userId"); rawUserID != "" {
		userID, err := uuid.Parse(rawUserID)
		if err != nil {
			http.Error(w, "invalid user id", http.StatusBadRequest)
			return
		}
		params.UserID = &userID
	}

	events, total, err := h.lister.List(ctx, params)
	if err != nil {
		log.Errorf("list analytics events: %s", err)
		apperrors.WriteHTTPError(w, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, ListResponse{
		Events: events,
		Total:  total,
	})
}
