package model

import (
	"testing"
	"time"
)

func datePtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func textOrder(tasks []Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Text
	}
	return out
}

func assertOrder(t *testing.T, tasks []Task, want ...string) {
	t.Helper()
	got := textOrder(tasks)
	if len(got) != len(want) {
		t.Fatalf("got %d tasks, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order mismatch at %d: got %v, want %v", i, got, want)
		}
	}
}

func TestSortByUrgencyPriorityThenDeadline(t *testing.T) {
	tasks := []Task{
		{ID: "a", Text: "low", Priority: PriorityLow},
		{ID: "b", Text: "high-late", Priority: PriorityHigh, Deadline: datePtr(2026, 4, 20)},
		{ID: "c", Text: "high-early", Priority: PriorityHigh, Deadline: datePtr(2026, 4, 10)},
		{ID: "d", Text: "medium", Priority: PriorityMedium},
	}
	SortTasks(tasks, SortByUrgency)
	assertOrder(t, tasks, "high-early", "high-late", "medium", "low")
}

func TestSortByUrgencyMissingDeadlineSortsLast(t *testing.T) {
	tasks := []Task{
		{ID: "a", Text: "no-deadline", Priority: PriorityHigh},
		{ID: "b", Text: "dated", Priority: PriorityHigh, Deadline: datePtr(2026, 4, 10)},
	}
	SortTasks(tasks, SortByUrgency)
	assertOrder(t, tasks, "dated", "no-deadline")
}

func TestSortByDeadline(t *testing.T) {
	tasks := []Task{
		{ID: "a", Text: "none", Priority: PriorityHigh},
		{ID: "b", Text: "late", Priority: PriorityLow, Deadline: datePtr(2026, 5, 1)},
		{ID: "c", Text: "early", Priority: PriorityLow, Deadline: datePtr(2026, 4, 1)},
	}
	SortTasks(tasks, SortByDeadline)
	assertOrder(t, tasks, "early", "late", "none")
}

func TestSortByQuadrantKeepsInputOrderWithinBucket(t *testing.T) {
	tasks := []Task{
		{ID: "a", Text: "eliminate", Urgent: false, Important: false},
		{ID: "b", Text: "do-first-1", Urgent: true, Important: true},
		{ID: "c", Text: "schedule", Urgent: false, Important: true},
		{ID: "d", Text: "do-first-2", Urgent: true, Important: true},
	}
	SortTasks(tasks, SortByQuadrant)
	assertOrder(t, tasks, "do-first-1", "do-first-2", "schedule", "eliminate")
}

func TestSortIsIdempotent(t *testing.T) {
	tasks := []Task{
		{ID: "a", Text: "one", Priority: PriorityMedium},
		{ID: "b", Text: "two", Priority: PriorityMedium},
		{ID: "c", Text: "three", Priority: PriorityHigh},
	}
	SortTasks(tasks, SortByUrgency)
	first := textOrder(tasks)
	SortTasks(tasks, SortByUrgency)
	second := textOrder(tasks)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("second sort changed order: %v vs %v", first, second)
		}
	}
}

func TestSortModeNextCycles(t *testing.T) {
	mode := SortByUrgency
	seen := []SortMode{mode}
	for i := 0; i < 3; i++ {
		mode = mode.Next()
		seen = append(seen, mode)
	}
	want := []SortMode{SortByUrgency, SortByDeadline, SortByQuadrant, SortByUrgency}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("cycle mismatch: got %v, want %v", seen, want)
		}
	}
}
