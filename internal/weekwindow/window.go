// Package weekwindow computes Monday-based week boundaries.
package weekwindow

import "time"

const DaysInWeek = 7

// CurrentWeekStart returns Monday 00:00:00 of the week containing now,
// in now's location.
func CurrentWeekStart(now time.Time) time.Time {
	offset := (int(now.Weekday()) + 6) % DaysInWeek
	y, m, d := now.Date()
	return time.Date(y, m, d-offset, 0, 0, 0, 0, now.Location())
}

// WeekStartAt returns the start of the week weeksBack weeks before the
// week containing now. WeekStartAt(now, 0) == CurrentWeekStart(now).
func WeekStartAt(now time.Time, weeksBack int) time.Time {
	return CurrentWeekStart(now).AddDate(0, 0, -DaysInWeek*weeksBack)
}

// WeekRange returns the half-open interval [weekStart, weekStart+7d).
// Calendar days are used so DST transitions do not move the boundary.
func WeekRange(weekStart time.Time) (from, to time.Time) {
	return weekStart, weekStart.AddDate(0, 0, DaysInWeek)
}
