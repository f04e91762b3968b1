package update

import (
	"time"

	"github.com/focusboard/focusboard/internal/board"
	"github.com/focusboard/focusboard/internal/model"
	"github.com/focusboard/focusboard/internal/views"
)

func (m Model) selectedTask() (model.Task, bool) {
	switch m.CurrentView {
	case ViewList:
		ref, ok := m.currentRow()
		if !ok {
			return model.Task{}, false
		}
		t, err := m.Board.Task(ref.TaskID)
		return t, err == nil
	case ViewMatrix:
		ordered := m.matrixOrder()
		if len(ordered) == 0 {
			return model.Task{}, false
		}
		return ordered[clampCursor(m.Cursor, len(ordered))], true
	default:
		return model.Task{}, false
	}
}

func (m Model) renderDetailPane() string {
	t, ok := m.selectedTask()
	if !ok {
		return views.RenderDetailPanel(views.DetailPanelData{})
	}
	sum := board.SummaryFor(t)
	data := views.DetailPanelData{
		Title:           t.Text,
		Priority:        string(t.Priority),
		Quadrant:        string(t.Quadrant()),
		Manual:          t.ManuallyClassified,
		Countdown:       model.EvaluateCountdown(t.Deadline, time.Now()).Label(),
		Estimate:        estimateLabel(t.EstimateMin),
		Category:        string(model.Categorize(t.EstimateMin)),
		Stopwatch:       t.Stopwatch.Display(),
		Running:         t.TimerRunning,
		DescriptionView: views.RenderMarkdown(t.Description, m.Prefs.Theme),
	}
	if t.Deadline != nil {
		data.Deadline = t.Deadline.Format(deadlineInputLayout)
	}
	if sum.Total > 0 {
		data.Percent = sum.Percent
		data.ProgressView = m.progressBar.ViewAs(float64(sum.Percent) / 100)
	}
	return views.RenderDetailPanel(data)
}

func (m Model) renderHelpPane() string {
	return "help:\n" +
		"  global: [tab]cycle views [/]command [p]paste [?]help [q]quit\n" +
		"  list:   [j/k]move [a]dd [s]ubstep [e]dit [c]description [D]eadline\n" +
		"          [E]stimate [!]priority [x]toggle [d]elete [t]imer [r]eset\n" +
		"          [z]fold [o]cycle sort\n" +
		"  matrix: [j/k]select [1-4]move to quadrant\n" +
		"  notes:  [j/k]move [e]dit [T]heme [H]abit-add [D]elete [space]check\n" +
		"  palette: /add <title> | /sort <mode> | /view <name> | /theme <name>"
}
