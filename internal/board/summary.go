package board

import (
	"math"

	"github.com/focusboard/focusboard/internal/model"
)

// Counters are the global top-level tallies. Completed + Remaining always
// equals Total at any quiescent point.
type Counters struct {
	Completed int
	Remaining int
	Total     int
}

// Summary is the per-task substep roll-up.
type Summary struct {
	Done    int
	Total   int
	Percent int
}

// SummaryFor computes the substep completion ratio for display. Percent is
// rounded and zero for tasks without substeps.
func SummaryFor(t model.Task) Summary {
	total := len(t.Substeps)
	done := 0
	for _, s := range t.Substeps {
		if s.Completed {
			done++
		}
	}
	percent := 0
	if total > 0 {
		percent = int(math.Round(100 * float64(done) / float64(total)))
	}
	return Summary{Done: done, Total: total, Percent: percent}
}

// recomputeSummaries re-derives parent completion from substeps and the
// global counters. While substeps exist the parent flag cannot diverge from
// them; with none it stays under direct user control.
func (b *Board) recomputeSummaries() {
	completed := 0
	for i := range b.tasks {
		if len(b.tasks[i].Substeps) > 0 {
			sum := SummaryFor(b.tasks[i])
			b.tasks[i].Completed = sum.Done == sum.Total
		}
		if b.tasks[i].Completed {
			completed++
		}
	}
	remaining := len(b.tasks) - completed
	if remaining < 0 {
		remaining = 0
	}
	b.counters = Counters{
		Completed: completed,
		Remaining: remaining,
		Total:     len(b.tasks),
	}
}
