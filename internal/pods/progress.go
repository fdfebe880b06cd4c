package pods

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/fitnesshub/backend/internal/telemetry/tracing"
	"github.com/fitnesshub/backend/internal/weekwindow"
)

//go:generate mockgen -source=$GOFILE -destination=progress_mocks_test.go -package=pods_test

// StreakLookbackWeeks bounds the streak, current week included.
const StreakLookbackWeeks = 12

// ProgressPercentage is completed/commitment as a whole percentage capped at
// 100. Without a commitment there is no progress to report.
func ProgressPercentage(completed, commitment int) int {
	if commitment <= 0 || completed <= 0 {
		return 0
	}
	p := int(math.Round(float64(completed) / float64(commitment) * 100))
	if p > 100 {
		return 100
	}
	return p
}

// IsOnTrack reports whether the commitment is met. A missing commitment is
// never on track.
func IsOnTrack(completed, commitment int) bool {
	return commitment > 0 && completed >= commitment
}

// WeekTally is one week of a member's history. Target is 0 when the member
// set no commitment that week.
type WeekTally struct {
	Target    int
	Completed int
}

type streakState struct {
	streak int
	broken bool
}

// observe feeds week weeksBack (0 = current) into the state machine. The
// current week may still be in progress, so it never breaks the streak.
func (s *streakState) observe(weeksBack int, week WeekTally) {
	if s.broken {
		return
	}
	if IsOnTrack(week.Completed, week.Target) {
		s.streak++
		return
	}
	if weeksBack > 0 {
		s.broken = true
	}
}

// Streak counts consecutive weeks with a met commitment, starting at the
// current week (weeks[0]) and looking back at most StreakLookbackWeeks.
func Streak(weeks []WeekTally) int {
	var s streakState
	for i, week := range weeks {
		if i >= StreakLookbackWeeks {
			break
		}
		s.observe(i, week)
	}
	return s.streak
}

type progressStore interface {
	ActiveMembers(ctx context.Context, podID uuid.UUID) ([]Member, error)
	Commitments(ctx context.Context, podID uuid.UUID, from, to time.Time) ([]Commitment, error)
	// CompletedCounts counts completed sessions started in [from, to) per
	// user. A zero to leaves the range open ended.
	CompletedCounts(ctx context.Context, userIDs []uuid.UUID, from, to time.Time) (map[uuid.UUID]int, error)
}

type Aggregator struct {
	store progressStore
}

func NewAggregator(store progressStore) *Aggregator {
	return &Aggregator{
		store: store,
	}
}

func weekKey(t time.Time) string {
	return t.Format(time.DateOnly)
}

// Progress returns one record per active member, in membership order. Store
// failures never surface: a failed member fetch yields an empty list, and
// other failures fall back to zero values.
func (a *Aggregator) Progress(ctx context.Context, podID uuid.UUID, now time.Time) []MemberProgress {
	ctx, span := tracing.GlobalTracer.Start(ctx, "pods.aggregator.progress")
	defer span.End()
	span.SetAttributes(attribute.String("pod.id", podID.String()))

	members, err := a.store.ActiveMembers(ctx, podID)
	if err != nil {
		log.Errorf("pod %s progress, fetch members: %s", podID, err)
		span.RecordError(err)
		return []MemberProgress{}
	}
	if len(members) == 0 {
		return []MemberProgress{}
	}

	userIDs := make([]uuid.UUID, 0, len(members))
	for _, m := range members {
		userIDs = append(userIDs, m.UserID)
	}

	weekStart := weekwindow.CurrentWeekStart(now)
	oldestWeek := weekwindow.WeekStartAt(now, StreakLookbackWeeks-1)
	_, weekEnd := weekwindow.WeekRange(weekStart)

	// user -> week start -> target
	targets := make(map[uuid.UUID]map[string]int, len(members))
	commitments, err := a.store.Commitments(ctx, podID, oldestWeek, weekEnd)
	if err != nil {
		log.Errorf("pod %s progress, fetch commitments: %s", podID, err)
		span.RecordError(err)
	}
	for _, c := range commitments {
		if targets[c.UserID] == nil {
			targets[c.UserID] = make(map[string]int)
		}
		targets[c.UserID][weekKey(c.WeekStart)] = c.Target
	}

	completed, err := a.store.CompletedCounts(ctx, userIDs, weekStart, time.Time{})
	if err != nil {
		log.Errorf("pod %s progress, count workouts: %s", podID, err)
		span.RecordError(err)
		completed = map[uuid.UUID]int{}
	}

	streaks := a.streaks(ctx, podID, userIDs, targets, now)

	progress := make([]MemberProgress, 0, len(members))
	for _, m := range members {
		commitment := targets[m.UserID][weekKey(weekStart)]
		done := completed[m.UserID]
		progress = append(progress, MemberProgress{
			UserID:             m.UserID,
			DisplayName:        m.DisplayName,
			Commitment:         commitment,
			Completed:          done,
			ProgressPercentage: ProgressPercentage(done, commitment),
			IsOnTrack:          IsOnTrack(done, commitment),
			Streak:             streaks[m.UserID].streak,
		})
	}

	return progress
}

// streaks walks back week by week, counting all still accumulating members
// in one query per week, and stops once every member's streak is broken.
func (a *Aggregator) streaks(
	ctx context.Context,
	podID uuid.UUID,
	userIDs []uuid.UUID,
	targets map[uuid.UUID]map[string]int,
	now time.Time,
) map[uuid.UUID]*streakState {
	states := make(map[uuid.UUID]*streakState, len(userIDs))
	for _, id := range userIDs {
		states[id] = &streakState{}
	}

	for i := 0; i < StreakLookbackWeeks; i++ {
		from, to := weekwindow.WeekRange(weekwindow.WeekStartAt(now, i))

		accumulating := make([]uuid.UUID, 0, len(userIDs))
		for _, id := range userIDs {
			if states[id].broken {
				continue
			}
			if targets[id][weekKey(from)] == 0 {
				// nothing to count, the state machine only needs the target
				states[id].observe(i, WeekTally{})
				continue
			}
			accumulating = append(accumulating, id)
		}
		if len(accumulating) == 0 {
			if allBroken(states) {
				break
			}
			continue
		}

		counts, err := a.store.CompletedCounts(ctx, accumulating, from, to)
		if err != nil {
			log.Errorf("pod %s streak, count workouts of week %s: %s", podID, weekKey(from), err)
			counts = map[uuid.UUID]int{}
		}
		for _, id := range accumulating {
			states[id].observe(i, WeekTally{
				Target:    targets[id][weekKey(from)],
				Completed: counts[id],
			})
		}
	}

	return states
}

func allBroken(states map[uuid.UUID]*streakState) bool {
	for _, s := range states {
		if !s.broken {
			return false
		}
	}
	return true
}
