package model

import (
	"testing"
	"time"
)

func TestEvaluateCountdownNoDeadline(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	got := EvaluateCountdown(nil, now)
	if got.State != CountdownNone {
		t.Fatalf("state = %s, want none", got.State)
	}
	if got.Label() != "" {
		t.Fatalf("label = %q, want empty", got.Label())
	}
}

func TestEvaluateCountdownBuckets(t *testing.T) {
	deadline := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	boundary := time.Date(2026, 3, 20, 23, 59, 59, 0, time.UTC)

	cases := []struct {
		name string
		now  time.Time
		want CountdownState
	}{
		{"under 24h", boundary.Add(-23 * time.Hour), CountdownCritical},
		{"exactly 24h", boundary.Add(-24 * time.Hour), CountdownUrgent},
		{"under 48h", boundary.Add(-47 * time.Hour), CountdownUrgent},
		{"exactly 48h", boundary.Add(-48 * time.Hour), CountdownWarning},
		{"under 168h", boundary.Add(-167 * time.Hour), CountdownWarning},
		{"exactly 168h", boundary.Add(-168 * time.Hour), CountdownSafe},
		{"far out", boundary.Add(-400 * time.Hour), CountdownSafe},
	}
	for _, tc := range cases {
		got := EvaluateCountdown(&deadline, tc.now)
		if got.State != tc.want {
			t.Fatalf("%s: state = %s, want %s", tc.name, got.State, tc.want)
		}
	}
}

func TestEvaluateCountdownOverdueBreakdown(t *testing.T) {
	deadline := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	boundary := time.Date(2026, 3, 20, 23, 59, 59, 0, time.UTC)

	now := boundary.Add(26 * time.Hour)
	got := EvaluateCountdown(&deadline, now)
	if got.State != CountdownOverdue {
		t.Fatalf("state = %s, want overdue", got.State)
	}
	if got.OverdueDays != 1 || got.OverdueHours != 2 {
		t.Fatalf("overdue breakdown = %dd %dh, want 1d 2h", got.OverdueDays, got.OverdueHours)
	}
	if got.Label() != "overdue 1d 2h" {
		t.Fatalf("label = %q", got.Label())
	}
}

func TestEvaluateCountdownBoundaryInstantIsNotOverdue(t *testing.T) {
	deadline := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	boundary := time.Date(2026, 3, 20, 23, 59, 59, 0, time.UTC)

	got := EvaluateCountdown(&deadline, boundary)
	if got.State == CountdownOverdue {
		t.Fatal("the boundary instant itself must not count as overdue")
	}
	got = EvaluateCountdown(&deadline, boundary.Add(time.Second))
	if got.State != CountdownOverdue {
		t.Fatal("one second past the boundary must be overdue")
	}
}

func TestEndOfDayUsesDeadlineLocation(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	deadline := time.Date(2026, 3, 20, 0, 0, 0, 0, loc)
	boundary := EndOfDay(deadline)
	if boundary.Hour() != 23 || boundary.Minute() != 59 || boundary.Second() != 59 {
		t.Fatalf("boundary = %v, want 23:59:59", boundary)
	}
	if boundary.Location() != loc {
		t.Fatalf("boundary location = %v, want %v", boundary.Location(), loc)
	}
}
