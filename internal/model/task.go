package model

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrEmptyText       = errors.New("model: text must not be empty")
	ErrInvalidPriority = errors.New("model: invalid priority")
	ErrInvalidEstimate = errors.New("model: estimate must be a non-negative integer")
)

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// Weight orders priorities for the urgency sort: High > Medium > Low.
func (p Priority) Weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Stopwatch is the elapsed-time state shared by tasks and substeps.
// ElapsedMs only grows while the stopwatch runs; Reset is the sole path
// back to zero.
type Stopwatch struct {
	ElapsedMs    int64
	TimerRunning bool
}

type Task struct {
	ID          string
	Text        string
	Description string
	Priority    Priority
	Deadline    *time.Time
	EstimateMin *int
	Completed   bool
	Urgent      bool
	Important   bool
	// ManuallyClassified marks tasks whose urgent/important flags were set
	// by an explicit user action; the classifier never touches them again.
	ManuallyClassified bool
	Collapsed          bool
	Stopwatch
	Substeps []Substep
}

type Substep struct {
	ID          string
	Text        string
	Completed   bool
	EstimateMin *int
	Stopwatch
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Text) == "" {
		return fmt.Errorf("task text: %w", ErrEmptyText)
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}
	if t.EstimateMin != nil && *t.EstimateMin < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidEstimate, *t.EstimateMin)
	}
	if t.ElapsedMs < 0 {
		return errors.New("model: elapsed time must not be negative")
	}
	for _, s := range t.Substeps {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (s Substep) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return errors.New("model: substep id is required")
	}
	if strings.TrimSpace(s.Text) == "" {
		return fmt.Errorf("substep text: %w", ErrEmptyText)
	}
	if s.ElapsedMs < 0 {
		return errors.New("model: elapsed time must not be negative")
	}
	return nil
}

// Clone returns a deep copy; substep slices are never shared between copies.
func (t Task) Clone() Task {
	out := t
	out.Deadline = cloneTime(t.Deadline)
	out.EstimateMin = cloneInt(t.EstimateMin)
	out.Substeps = make([]Substep, len(t.Substeps))
	for i, s := range t.Substeps {
		out.Substeps[i] = s
		out.Substeps[i].EstimateMin = cloneInt(s.EstimateMin)
	}
	return out
}

// NewID returns a random hex identifier. IDs are never reused within a
// session; on the unlikely entropy failure it falls back to a timestamp.
func NewID() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("fallback-%d", time.Now().UTC().UnixNano())
	}
	return hex.EncodeToString(buf)
}

// SameDay reports whether two instants fall on the same calendar day in the
// location of a.
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.In(a.Location()).Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func cloneTime(v *time.Time) *time.Time {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
