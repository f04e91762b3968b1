package model

import "time"

type Quadrant string

const (
	QuadrantDoFirst   Quadrant = "Do First"
	QuadrantSchedule  Quadrant = "Schedule"
	QuadrantDelegate  Quadrant = "Delegate"
	QuadrantEliminate Quadrant = "Eliminate"
)

// Score orders quadrants for the quadrant sort: Do First highest.
func (q Quadrant) Score() int {
	switch q {
	case QuadrantDoFirst:
		return 4
	case QuadrantSchedule:
		return 3
	case QuadrantDelegate:
		return 2
	case QuadrantEliminate:
		return 1
	default:
		return 0
	}
}

// QuadrantFor maps the urgent/important pair onto exactly one quadrant.
func QuadrantFor(urgent, important bool) Quadrant {
	switch {
	case urgent && important:
		return QuadrantDoFirst
	case !urgent && important:
		return QuadrantSchedule
	case urgent && !important:
		return QuadrantDelegate
	default:
		return QuadrantEliminate
	}
}

// Quadrant returns the matrix bucket the task currently belongs to.
func (t Task) Quadrant() Quadrant {
	return QuadrantFor(t.Urgent, t.Important)
}

type EstimateCategory string

const (
	EstimateQuick EstimateCategory = "Quick"
	EstimateCore  EstimateCategory = "Core"
	EstimateMajor EstimateCategory = "Major"
	EstimateNone  EstimateCategory = "None"
)

const (
	quickEstimateMaxMin = 15
	coreEstimateMaxMin  = 60
)

// Categorize buckets an effort estimate: Quick [0,15), Core [15,60],
// Major (60, inf) minutes.
func Categorize(estimateMin *int) EstimateCategory {
	if estimateMin == nil {
		return EstimateNone
	}
	switch {
	case *estimateMin < quickEstimateMaxMin:
		return EstimateQuick
	case *estimateMin <= coreEstimateMaxMin:
		return EstimateCore
	default:
		return EstimateMajor
	}
}

// Classify derives the urgent/important flags from estimate and deadline.
// Tasks the user classified by hand keep their flags untouched.
//
// A task is important unless its estimate category is Quick. It is urgent
// when the estimate is under an hour or the deadline falls on the current
// calendar day.
func Classify(t *Task, now time.Time) {
	if t.ManuallyClassified {
		return
	}
	category := Categorize(t.EstimateMin)
	t.Important = category != EstimateQuick

	urgent := false
	if t.EstimateMin != nil && *t.EstimateMin < coreEstimateMaxMin {
		urgent = true
	}
	if t.Deadline != nil && SameDay(now, *t.Deadline) {
		urgent = true
	}
	t.Urgent = urgent
}

// SetClassification applies an explicit user override and pins the task
// against future automatic derivation. There is no un-pinning path.
func (t *Task) SetClassification(urgent, important bool) {
	t.Urgent = urgent
	t.Important = important
	t.ManuallyClassified = true
}
