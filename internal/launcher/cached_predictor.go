package launcher

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/fitnesshub/backend/internal/analytics"
	"github.com/fitnesshub/backend/internal/apperrors"
	"github.com/fitnesshub/backend/internal/telemetry/metrics"
	"github.com/fitnesshub/backend/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=cached_predictor_mocks_test.go -package=launcher_test

const refreshTimeout = 10 * time.Second

type predictor interface {
	Predict(ctx context.Context, userID uuid.UUID, now time.Time) (Prediction, error)
}

type predictionCache interface {
	Get(ctx context.Context, userID uuid.UUID, now time.Time) (*Prediction, bool, error)
	Set(ctx context.Context, userID uuid.UUID, prediction Prediction, now time.Time) error
}

type eventRecorder interface {
	Record(eventType analytics.EventType, userID uuid.UUID, payload map[string]any)
}

// CachedPredictor serves predictions from the cache and refreshes them in
// the background. Concurrent refreshes of the same user are collapsed into
// one; the last write wins.
type CachedPredictor struct {
	predictor      predictor
	cache          predictionCache
	recorder       eventRecorder
	metricsManager *metrics.Manager

	refreshing sync.Map
	wg         sync.WaitGroup
}

func NewCachedPredictor(
	predictor predictor,
	cache predictionCache,
	recorder eventRecorder,
	metricsManager *metrics.Manager,
) *CachedPredictor {
	return &CachedPredictor{
		predictor:      predictor,
		cache:          cache,
		recorder:       recorder,
		metricsManager: metricsManager,
	}
}

// Predict serves the launcher prediction shown to the user and records it
// as shown.
func (cp *CachedPredictor) Predict(ctx context.Context, userID uuid.UUID, now time.Time) (_ Prediction, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.launcher.cached.predict")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	prediction, cached, err := cp.lookup(ctx, userID, now)
	if err != nil {
		return Prediction{}, err
	}
	span.SetAttributes(attribute.Bool("cache.hit", cached))

	cp.emitShown(userID, prediction, cached)
	return prediction, nil
}

// Quiet returns a predictor backed by the same cache that does not count
// its results as shown. Other services building on the prediction use it.
func (cp *CachedPredictor) Quiet() *QuietPredictor {
	return &QuietPredictor{cp: cp}
}

type QuietPredictor struct {
	cp *CachedPredictor
}

func (qp *QuietPredictor) Predict(ctx context.Context, userID uuid.UUID, now time.Time) (_ Prediction, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.launcher.cached.quietpredict")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	prediction, _, err := qp.cp.lookup(ctx, userID, now)
	return prediction, err
}

func (cp *CachedPredictor) lookup(ctx context.Context, userID uuid.UUID, now time.Time) (_ Prediction, cached bool, err error) {
	if userID == uuid.Nil {
		return Prediction{}, false, apperrors.ErrUnauthenticated
	}

	prediction, found, err := cp.cache.Get(ctx, userID, now)
	switch {
	case err != nil:
		log.Errorf("launcher cache get for %s: %s", userID, err)
		cp.countCache("error")
	case found:
		cp.countCache("hit")
		cp.refreshInBackground(ctx, userID, now)
		return *prediction, true, nil
	default:
		cp.countCache("miss")
	}

	computed, err := cp.predictor.Predict(ctx, userID, now)
	if err != nil {
		return Prediction{}, false, err
	}
	if err := cp.cache.Set(ctx, userID, computed, now); err != nil {
		log.Errorf("launcher cache set for %s: %s", userID, err)
	}

	return computed, false, nil
}

// Wait blocks until all background refreshes are done.
func (cp *CachedPredictor) Wait() {
	cp.wg.Wait()
}

func (cp *CachedPredictor) refreshInBackground(ctx context.Context, userID uuid.UUID, now time.Time) {
	if _, inFlight := cp.refreshing.LoadOrStore(userID, struct{}{}); inFlight {
		return
	}

	refreshCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), refreshTimeout)
	cp.wg.Add(1)
	go func() {
		defer cp.wg.Done()
		defer cancel()
		defer cp.refreshing.Delete(userID)

		prediction, err := cp.predictor.Predict(refreshCtx, userID, now)
		if err != nil {
			log.Errorf("launcher background refresh for %s: %s", userID, err)
			return
		}
		if err := cp.cache.Set(refreshCtx, userID, prediction, now); err != nil {
			log.Errorf("launcher background refresh, cache set for %s: %s", userID, err)
		}
	}()
}

func (cp *CachedPredictor) emitShown(userID uuid.UUID, prediction Prediction, cached bool) {
	if cp.metricsManager != nil {
		cp.metricsManager.CounterLauncherPredictions.WithLabelValues(string(prediction.Confidence)).Inc()
	}
	if cp.recorder == nil {
		return
	}

	payload := map[string]any{
		"confidence": string(prediction.Confidence),
		"reason":     prediction.Reason,
		"cached":     cached,
	}
	if prediction.TemplateID != nil {
		payload["template_id"] = prediction.TemplateID.String()
	}
	cp.recorder.Record(analytics.EventTypeLauncherPredictionShown, userID, payload)
}

func (cp *CachedPredictor) countCache(result string) {
	if cp.metricsManager != nil {
		cp.metricsManager.CounterLauncherCache.WithLabelValues(result).Inc()
	}
}
