package analytics

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/fitnesshub/backend/internal/telemetry/metrics"
)

//go:generate mockgen -source=$GOFILE -destination=recorder_mocks_test.go -package=analytics_test

const (
	DefaultBufferSize = 256
	storeTimeout      = 5 * time.Second
)

type eventsStore interface {
	Add(ctx context.Context, event Event) (*Event, error)
}

// Recorder persists analytics events in the background. Record never
// blocks the caller: when the buffer is full the event is dropped.
type Recorder struct {
	store          eventsStore
	metricsManager *metrics.Manager

	mu     sync.RWMutex
	closed bool
	events chan Event
	done   chan struct{}

	now func() time.Time
}

func NewRecorder(store eventsStore, bufferSize int, metricsManager *metrics.Manager) *Recorder {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}

	r := &Recorder{
		store:          store,
		metricsManager: metricsManager,
		events:         make(chan Event, bufferSize),
		done:           make(chan struct{}),
		now:            time.Now,
	}
	go r.run()

	return r
}

// Record enqueues an event. A nil user id stores the event without a user.
func (r *Recorder) Record(eventType EventType, userID uuid.UUID, payload map[string]any) {
	event := Event{
		ID:        uuid.New(),
		Type:      eventType,
		Payload:   payload,
		CreatedAt: r.now(),
	}
	if userID != uuid.Nil {
		event.UserID = &userID
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		log.Warnf("analytics recorder closed, dropping event %s", eventType)
		r.count("dropped")
		return
	}

	select {
	case r.events <- event:
	default:
		log.Warnf("analytics buffer full, dropping event %s", eventType)
		r.count("dropped")
	}
}

// Close stops accepting events and waits until the buffered ones are stored.
func (r *Recorder) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	close(r.events)
	r.mu.Unlock()

	<-r.done
}

func (r *Recorder) run() {
	defer close(r.done)

	for event := range r.events {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		if _, err := r.store.Add(ctx, event); err != nil {
			log.Errorf("store analytics event %s: %s", event.Type, err)
			r.count("failed")
		} else {
			r.count("stored")
		}
		cancel()
	}
}

func (r *Recorder) count(outcome string) {
	if r.metricsManager == nil {
		return
	}
	r.metricsManager.CounterAnalyticsEvents.WithLabelValues(outcome).Inc()
}
