package board

import (
	"errors"
	"testing"
	"time"

	"github.com/focusboard/focusboard/internal/model"
)

func fixedClock() func() time.Time {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	return func() time.Time { return now }
}

func intPtr(v int) *int { return &v }

func TestAddTaskRejectsEmptyText(t *testing.T) {
	b := New(fixedClock())
	if _, err := b.AddTask("   "); !errors.Is(err, model.ErrEmptyText) {
		t.Fatalf("expected ErrEmptyText, got: %v", err)
	}
	if b.Len() != 0 {
		t.Fatalf("rejected add changed state: %d tasks", b.Len())
	}
}

func TestAddTaskClassifiesImmediately(t *testing.T) {
	b := New(fixedClock())
	task, err := b.AddTask("plan sprint")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !task.Important || task.Urgent {
		t.Fatalf("fresh task flags: urgent=%v important=%v", task.Urgent, task.Important)
	}
	if task.Priority != model.PriorityMedium {
		t.Fatalf("default priority = %s", task.Priority)
	}
}

func TestCountersInvariant(t *testing.T) {
	b := New(fixedClock())
	a, _ := b.AddTask("one")
	b.AddTask("two")
	b.AddTask("three")

	if _, err := b.ToggleTaskCompleted(a.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	c := b.Counters()
	if c.Completed != 1 || c.Remaining != 2 || c.Total != 3 {
		t.Fatalf("counters = %+v", c)
	}
	if c.Completed+c.Remaining != c.Total {
		t.Fatalf("counter invariant broken: %+v", c)
	}
}

func TestToggleRefusedWhenSubstepsExist(t *testing.T) {
	b := New(fixedClock())
	task, _ := b.AddTask("parent")
	if _, err := b.AddSubstep(task.ID, "child"); err != nil {
		t.Fatalf("add substep: %v", err)
	}
	if _, err := b.ToggleTaskCompleted(task.ID); !errors.Is(err, ErrHasSubsteps) {
		t.Fatalf("expected ErrHasSubsteps, got: %v", err)
	}
}

func TestSubstepRollUp(t *testing.T) {
	b := New(fixedClock())
	task, _ := b.AddTask("parent")
	s1, _ := b.AddSubstep(task.ID, "first")
	s2, _ := b.AddSubstep(task.ID, "second")

	if err := b.ToggleSubstep(task.ID, s1.ID); err != nil {
		t.Fatalf("toggle substep: %v", err)
	}
	got, _ := b.Task(task.ID)
	if got.Completed {
		t.Fatal("parent completed with one of two substeps done")
	}

	if err := b.ToggleSubstep(task.ID, s2.ID); err != nil {
		t.Fatalf("toggle substep: %v", err)
	}
	got, _ = b.Task(task.ID)
	if !got.Completed {
		t.Fatal("parent not completed with all substeps done")
	}
	if sum := SummaryFor(got); sum.Percent != 100 || sum.Done != 2 {
		t.Fatalf("summary = %+v", sum)
	}

	// Un-checking one substep reopens the parent.
	if err := b.ToggleSubstep(task.ID, s1.ID); err != nil {
		t.Fatalf("toggle substep: %v", err)
	}
	got, _ = b.Task(task.ID)
	if got.Completed {
		t.Fatal("parent stayed completed after a substep reopened")
	}
}

func TestSummaryPercentRounds(t *testing.T) {
	b := New(fixedClock())
	task, _ := b.AddTask("parent")
	s1, _ := b.AddSubstep(task.ID, "a")
	b.AddSubstep(task.ID, "b")
	b.AddSubstep(task.ID, "c")
	b.ToggleSubstep(task.ID, s1.ID)

	got, _ := b.Task(task.ID)
	if sum := SummaryFor(got); sum.Percent != 33 {
		t.Fatalf("percent = %d, want 33", sum.Percent)
	}
}

func TestDeleteTaskCascades(t *testing.T) {
	b := New(fixedClock())
	task, _ := b.AddTask("parent")
	step, _ := b.AddSubstep(task.ID, "child")
	if err := b.StartStopwatch(step.ID); err != nil {
		t.Fatalf("start substep stopwatch: %v", err)
	}

	if err := b.DeleteTask(task.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if b.Len() != 0 {
		t.Fatalf("task survived delete")
	}
	if b.AnyStopwatchRunning() {
		t.Fatal("substep stopwatch survived cascade delete")
	}
	if err := b.StartStopwatch(step.ID); !errors.Is(err, ErrEntityNotFound) {
		t.Fatalf("expected ErrEntityNotFound, got: %v", err)
	}
}

func TestSetEstimateInputInvalidClears(t *testing.T) {
	b := New(fixedClock())
	task, _ := b.AddTask("estimate me")
	if err := b.SetEstimateInput(task.ID, "45"); err != nil {
		t.Fatalf("set estimate: %v", err)
	}
	got, _ := b.Task(task.ID)
	if got.EstimateMin == nil || *got.EstimateMin != 45 {
		t.Fatalf("estimate = %v, want 45", got.EstimateMin)
	}

	for _, raw := range []string{"abc", "-3", "4.5", ""} {
		if err := b.SetEstimateInput(task.ID, raw); err != nil {
			t.Fatalf("set estimate %q: %v", raw, err)
		}
		got, _ = b.Task(task.ID)
		if got.EstimateMin != nil {
			t.Fatalf("input %q did not clear the estimate", raw)
		}
	}
}

func TestMoveToQuadrantPinsClassification(t *testing.T) {
	b := New(fixedClock())
	task, _ := b.AddTask("reclassify me")
	if err := b.MoveToQuadrant(task.ID, model.QuadrantEliminate); err != nil {
		t.Fatalf("move: %v", err)
	}

	got, _ := b.Task(task.ID)
	if got.Quadrant() != model.QuadrantEliminate || !got.ManuallyClassified {
		t.Fatalf("quadrant=%s manual=%v", got.Quadrant(), got.ManuallyClassified)
	}

	// A later estimate edit re-settles but must not unpin the override.
	if err := b.SetEstimateInput(task.ID, "5"); err != nil {
		t.Fatalf("set estimate: %v", err)
	}
	got, _ = b.Task(task.ID)
	if got.Quadrant() != model.QuadrantEliminate {
		t.Fatalf("pinned quadrant re-derived to %s", got.Quadrant())
	}
}

func TestTickAdvancesOnlyRunningStopwatches(t *testing.T) {
	b := New(fixedClock())
	running, _ := b.AddTask("running")
	paused, _ := b.AddTask("paused")
	b.StartStopwatch(running.ID)

	if !b.Tick() {
		t.Fatal("Tick must report a still-running stopwatch")
	}
	gotRunning, _ := b.Task(running.ID)
	gotPaused, _ := b.Task(paused.ID)
	if gotRunning.ElapsedMs != model.TickMs {
		t.Fatalf("running elapsed = %d", gotRunning.ElapsedMs)
	}
	if gotPaused.ElapsedMs != 0 {
		t.Fatalf("paused stopwatch advanced: %d", gotPaused.ElapsedMs)
	}

	b.PauseStopwatch(running.ID)
	if b.Tick() {
		t.Fatal("Tick reported running after everything paused")
	}
}

func TestAddComposite(t *testing.T) {
	b := New(fixedClock())
	task, err := b.AddComposite("Trip prep", "Pack for the trip", []string{"passport", "", "charger"})
	if err != nil {
		t.Fatalf("composite: %v", err)
	}
	if len(task.Substeps) != 2 {
		t.Fatalf("substeps = %d, want 2 (blank skipped)", len(task.Substeps))
	}
	if task.Substeps[0].Text != "passport" || task.Substeps[1].Text != "charger" {
		t.Fatalf("substep order lost: %+v", task.Substeps)
	}
	if task.Description != "Pack for the trip" {
		t.Fatalf("description = %q", task.Description)
	}
}

func TestOnChangeFiresPerMutation(t *testing.T) {
	b := New(fixedClock())
	calls := 0
	b.SetOnChange(func() { calls++ })

	task, _ := b.AddTask("observe me")
	b.SetPriority(task.ID, model.PriorityHigh)
	b.DeleteTask(task.ID)

	if calls != 3 {
		t.Fatalf("onChange fired %d times, want 3", calls)
	}
}

func TestRestoreNormalizesAndSettles(t *testing.T) {
	b := New(fixedClock())
	calls := 0
	b.SetOnChange(func() { calls++ })

	b.Restore([]model.Task{
		{ID: "keep", Text: "valid", Priority: model.Priority("Garbage"), EstimateMin: intPtr(10)},
		{ID: "", Text: "no id"},
		{ID: "x", Text: "   "},
	}, model.SortByDeadline)

	if b.Len() != 1 {
		t.Fatalf("restored %d tasks, want 1", b.Len())
	}
	got, _ := b.Task("keep")
	if got.Priority != model.PriorityMedium {
		t.Fatalf("priority not normalized: %s", got.Priority)
	}
	if !got.Urgent || got.Important {
		t.Fatalf("restore did not reclassify: urgent=%v important=%v", got.Urgent, got.Important)
	}
	if b.SortMode() != model.SortByDeadline {
		t.Fatalf("sort mode = %s", b.SortMode())
	}
	if calls != 1 {
		t.Fatalf("restore settled %d times, want 1", calls)
	}
}

func TestSetSortModeValidation(t *testing.T) {
	b := New(fixedClock())
	if err := b.SetSortMode(model.SortMode("bogus")); err == nil {
		t.Fatal("invalid sort mode accepted")
	}
	if err := b.SetSortMode(model.SortByQuadrant); err != nil {
		t.Fatalf("valid sort mode rejected: %v", err)
	}
	if mode := b.CycleSortMode(); mode != model.SortByUrgency {
		t.Fatalf("cycle from quadrant = %s, want urgency", mode)
	}
}
