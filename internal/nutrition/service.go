package nutrition

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/fitnesshub/backend/internal/analytics"
	"github.com/fitnesshub/backend/internal/apperrors"
	"github.com/fitnesshub/backend/internal/telemetry/metrics"
	"github.com/fitnesshub/backend/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=nutrition_test

const (
	DefaultSearchLimit = 20
	MaxSearchLimit     = 50

	minQueryLength = 2
	maxQueryLength = 100
)

var barcodeRegex = regexp.MustCompile(`^\d{6,14}$`)

type productSource interface {
	LookupBarcode(ctx context.Context, barcode string) (*RawProduct, error)
	Search(ctx context.Context, query string, limit int) ([]RawProduct, error)
}

type eventRecorder interface {
	Record(eventType analytics.EventType, userID uuid.UUID, payload map[string]any)
}

type Service struct {
	source         productSource
	recorder       eventRecorder
	metricsManager *metrics.Manager
}

func NewService(source productSource, recorder eventRecorder, metricsManager *metrics.Manager) *Service {
	return &Service{
		source:         source,
		recorder:       recorder,
		metricsManager: metricsManager,
	}
}

func (s *Service) Lookup(ctx context.Context, userID uuid.UUID, barcode string) (_ *FoodItem, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.nutrition.lookup")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	barcode = strings.TrimSpace(barcode)
	if !barcodeRegex.MatchString(barcode) {
		return nil, apperrors.Validation("barcode must be 6 to 14 digits")
	}

	raw, err := s.source.LookupBarcode(ctx, barcode)
	s.recordLookup(userID, barcode, err)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.count("barcode", "not_found")
			return nil, apperrors.ErrNotFound
		}
		s.count("barcode", "error")
		log.Errorf("lookup barcode %s: %s", barcode, err)
		return nil, fmt.Errorf("lookup barcode %s: %w", barcode, err)
	}

	item := Normalize(*raw)
	if item.Name == "" {
		s.count("barcode", "not_found")
		return nil, apperrors.ErrNotFound
	}

	s.count("barcode", "found")
	return &item, nil
}

// Search returns normalized matches for the query. Upstream failures
// degrade to an empty result.
func (s *Service) Search(ctx context.Context, query string, limit int) (_ []FoodItem, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.nutrition.search")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	query = strings.TrimSpace(query)
	if l := len([]rune(query)); l < minQueryLength || l > maxQueryLength {
		return nil, apperrors.Validation(fmt.Sprintf("search query must be between %d and %d characters", minQueryLength, maxQueryLength))
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}

	raws, err := s.source.Search(ctx, query, limit)
	if err != nil {
		log.Errorf("search foods %q: %s", query, err)
		s.count("search", "error")
		return []FoodItem{}, nil
	}

	items := make([]FoodItem, 0, len(raws))
	for _, raw := range raws {
		item := Normalize(raw)
		if item.Name == "" {
			continue
		}
		items = append(items, item)
	}

	outcome := "found"
	if len(items) == 0 {
		outcome = "not_found"
	}
	s.count("search", outcome)

	return items, nil
}

func (s *Service) recordLookup(userID uuid.UUID, barcode string, err error) {
	if s.recorder == nil || userID == uuid.Nil {
		return
	}
	s.recorder.Record(analytics.EventTypeFoodLookup, userID, map[string]any{
		"barcode": barcode,
		"found":   err == nil,
	})
}

func (s *Service) count(source, outcome string) {
	if s.metricsManager != nil {
		s.metricsManager.CounterNutritionLookups.WithLabelValues(source, outcome).Inc()
	}
}
