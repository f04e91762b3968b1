package model

import (
	"errors"
	"testing"
	"time"
)

func TestTaskValidate(t *testing.T) {
	task := Task{ID: "t1", Text: "valid task", Priority: PriorityMedium}
	if err := task.Validate(); err != nil {
		t.Fatalf("expected valid task, got: %v", err)
	}

	task.Text = "   "
	if err := task.Validate(); !errors.Is(err, ErrEmptyText) {
		t.Fatalf("expected ErrEmptyText, got: %v", err)
	}

	task.Text = "valid task"
	task.Priority = Priority("Whenever")
	if err := task.Validate(); !errors.Is(err, ErrInvalidPriority) {
		t.Fatalf("expected ErrInvalidPriority, got: %v", err)
	}

	task.Priority = PriorityLow
	task.EstimateMin = intPtr(-5)
	if err := task.Validate(); !errors.Is(err, ErrInvalidEstimate) {
		t.Fatalf("expected ErrInvalidEstimate, got: %v", err)
	}
}

func TestTaskValidateChecksSubsteps(t *testing.T) {
	task := Task{
		ID:       "t1",
		Text:     "parent",
		Priority: PriorityMedium,
		Substeps: []Substep{{ID: "s1", Text: ""}},
	}
	if err := task.Validate(); !errors.Is(err, ErrEmptyText) {
		t.Fatalf("expected substep validation error, got: %v", err)
	}
}

func TestTaskCloneIsDeep(t *testing.T) {
	deadline := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	task := Task{
		ID:          "t1",
		Text:        "parent",
		Priority:    PriorityHigh,
		Deadline:    &deadline,
		EstimateMin: intPtr(30),
		Substeps:    []Substep{{ID: "s1", Text: "child", EstimateMin: intPtr(10)}},
	}

	clone := task.Clone()
	*clone.Deadline = clone.Deadline.AddDate(0, 0, 7)
	*clone.EstimateMin = 99
	clone.Substeps[0].Text = "changed"
	*clone.Substeps[0].EstimateMin = 99

	if !task.Deadline.Equal(deadline) {
		t.Fatal("clone shares the deadline pointer")
	}
	if *task.EstimateMin != 30 {
		t.Fatal("clone shares the estimate pointer")
	}
	if task.Substeps[0].Text != "child" || *task.Substeps[0].EstimateMin != 10 {
		t.Fatal("clone shares substep state")
	}
}

func TestNewIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewID()
		if id == "" {
			t.Fatal("empty id")
		}
		if seen[id] {
			t.Fatalf("duplicate id: %s", id)
		}
		seen[id] = true
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC)
	b := time.Date(2026, 3, 10, 1, 0, 0, 0, time.UTC)
	c := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)
	if !SameDay(a, b) {
		t.Fatal("same calendar day not detected")
	}
	if SameDay(a, c) {
		t.Fatal("different days reported as same")
	}
}
