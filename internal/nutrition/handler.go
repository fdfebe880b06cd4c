package nutrition

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/fitnesshub/backend/internal/apperrors"
	"github.com/fitnesshub/backend/internal/auth"
	"github.com/fitnesshub/backend/internal/telemetry/tracing"
	"github.com/fitnesshub/backend/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=nutrition_test

type foodService interface {
	Lookup(ctx context.Context, userID uuid.UUID, barcode string) (*FoodItem, error)
	Search(ctx context.Context, query string, limit int) ([]FoodItem, error)
}

type Handler struct {
	service foodService
}

func NewHandler(service foodService) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) HandleBarcode(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.nutrition.barcode")
	defer span.End()

	userID, _ := auth.UserIDFromContext(ctx)
	item, err := h.service.Lookup(ctx, userID, mux.Vars(r)["code"])
	if err != nil {
		log.Tracef("barcode lookup: %s", err)
		apperrors.WriteHTTPError(w, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, item)
}

func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.nutrition.search")
	defer span.End()

	query := r.URL.Query().Get("q")
	limit := pkg.IntQueryParam(r.URL.Query().Get("limit"), DefaultSearchLimit, 1, MaxSearchLimit)

	items, err := h.service.Search(ctx, query, limit)
	if err != nil {
		log.Tracef("food search: %s", err)
		apperrors.WriteHTTPError(w, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, items)
}
