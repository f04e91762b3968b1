package model

import (
	"sort"
	"time"
)

type SortMode string

const (
	SortByUrgency  SortMode = "urgency"
	SortByDeadline SortMode = "deadline"
	SortByQuadrant SortMode = "quadrant"
)

func (m SortMode) IsValid() bool {
	switch m {
	case SortByUrgency, SortByDeadline, SortByQuadrant:
		return true
	default:
		return false
	}
}

// Next cycles through the selectable sort strategies.
func (m SortMode) Next() SortMode {
	switch m {
	case SortByUrgency:
		return SortByDeadline
	case SortByDeadline:
		return SortByQuadrant
	default:
		return SortByUrgency
	}
}

// SortTasks reorders tasks in place by the selected strategy. All
// strategies use a stable sort, so equal keys keep their prior relative
// order and sorting twice is a no-op. Substep order is never resorted.
func SortTasks(tasks []Task, mode SortMode) {
	switch mode {
	case SortByDeadline:
		sort.SliceStable(tasks, func(i, j int) bool {
			return deadlineKey(tasks[i].Deadline).Before(deadlineKey(tasks[j].Deadline))
		})
	case SortByQuadrant:
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].Quadrant().Score() > tasks[j].Quadrant().Score()
		})
	default: // SortByUrgency
		sort.SliceStable(tasks, func(i, j int) bool {
			wi, wj := tasks[i].Priority.Weight(), tasks[j].Priority.Weight()
			if wi != wj {
				return wi > wj
			}
			return deadlineKey(tasks[i].Deadline).Before(deadlineKey(tasks[j].Deadline))
		})
	}
}

// deadlineKey maps a missing deadline to a far-future instant so it sorts
// after every real date.
func deadlineKey(deadline *time.Time) time.Time {
	if deadline == nil {
		return time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)
	}
	return *deadline
}
