package model

import (
	"fmt"
	"time"
)

type CountdownState string

const (
	CountdownNone     CountdownState = "none"
	CountdownSafe     CountdownState = "safe"
	CountdownWarning  CountdownState = "warning"
	CountdownUrgent   CountdownState = "urgent"
	CountdownCritical CountdownState = "critical"
	CountdownOverdue  CountdownState = "overdue"
)

type Countdown struct {
	State     CountdownState
	Remaining time.Duration
	// Overdue breakdown, populated only when State is CountdownOverdue.
	OverdueDays  int
	OverdueHours int
}

// EvaluateCountdown derives the display bucket for a deadline. The boundary
// is the deadline date at 23:59:59 local time; past it the task is overdue.
// Remaining time buckets: under 24h critical, under 48h urgent, under 168h
// (7 days) warning, otherwise safe. Exactly 24h out is urgent, exactly 168h
// out is safe.
func EvaluateCountdown(deadline *time.Time, now time.Time) Countdown {
	if deadline == nil {
		return Countdown{State: CountdownNone}
	}
	boundary := EndOfDay(*deadline)
	if now.After(boundary) {
		elapsed := now.Sub(boundary)
		return Countdown{
			State:        CountdownOverdue,
			OverdueDays:  int(elapsed.Hours()) / 24,
			OverdueHours: int(elapsed.Hours()) % 24,
		}
	}

	remaining := boundary.Sub(now)
	state := CountdownSafe
	switch {
	case remaining < 24*time.Hour:
		state = CountdownCritical
	case remaining < 48*time.Hour:
		state = CountdownUrgent
	case remaining < 168*time.Hour:
		state = CountdownWarning
	}
	return Countdown{State: state, Remaining: remaining}
}

// EndOfDay returns the overdue boundary for a deadline date: 23:59:59 in
// the deadline's location.
func EndOfDay(deadline time.Time) time.Time {
	y, m, d := deadline.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, deadline.Location())
}

func (c Countdown) Label() string {
	switch c.State {
	case CountdownNone:
		return ""
	case CountdownOverdue:
		return fmt.Sprintf("overdue %dd %dh", c.OverdueDays, c.OverdueHours)
	default:
		hours := int(c.Remaining.Hours())
		if hours < 48 {
			return fmt.Sprintf("%s %dh left", c.State, hours)
		}
		return fmt.Sprintf("%s %dd left", c.State, hours/24)
	}
}
