package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/focusboard/focusboard/internal/model"
	"github.com/focusboard/focusboard/internal/views"
)

// matrixOrder lists open tasks grouped by quadrant, Do First down to
// Eliminate, so the selection cursor walks a stable sequence.
func (m Model) matrixOrder() []model.Task {
	var out []model.Task
	for _, q := range []model.Quadrant{
		model.QuadrantDoFirst,
		model.QuadrantSchedule,
		model.QuadrantDelegate,
		model.QuadrantEliminate,
	} {
		for _, t := range m.Board.Tasks() {
			if t.Completed || t.Quadrant() != q {
				continue
			}
			out = append(out, t)
		}
	}
	return out
}

func (m Model) handleMatrixKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ordered := m.matrixOrder()
	m.Cursor = clampCursor(m.Cursor, len(ordered))

	switch msg.String() {
	case "j", "down":
		m.Cursor = clampCursor(m.Cursor+1, len(ordered))
		return m, nil
	case "k", "up":
		m.Cursor = clampCursor(m.Cursor-1, len(ordered))
		return m, nil
	}

	target, ok := quadrantForDigit(msg.String())
	if !ok || len(ordered) == 0 {
		return m, nil
	}
	selected := ordered[clampCursor(m.Cursor, len(ordered))]
	if err := m.Board.MoveToQuadrant(selected.ID, target); err != nil {
		return m, nil
	}
	m.Status = StatusBar{Text: fmt.Sprintf("moved to %s (pinned)", target)}
	return m, nil
}

func quadrantForDigit(key string) (model.Quadrant, bool) {
	switch key {
	case "1":
		return model.QuadrantDoFirst, true
	case "2":
		return model.QuadrantSchedule, true
	case "3":
		return model.QuadrantDelegate, true
	case "4":
		return model.QuadrantEliminate, true
	default:
		return "", false
	}
}

func (m Model) renderMatrixView() string {
	ordered := m.matrixOrder()
	cursor := clampCursor(m.Cursor, len(ordered))
	cells := map[model.Quadrant]*views.QuadrantCellData{
		model.QuadrantDoFirst:   {Title: "1. Do First (urgent + important)"},
		model.QuadrantSchedule:  {Title: "2. Schedule (important)"},
		model.QuadrantDelegate:  {Title: "3. Delegate (urgent)"},
		model.QuadrantEliminate: {Title: "4. Eliminate"},
	}
	for i, t := range ordered {
		line := "  " + t.Text
		if i == cursor {
			line = "> " + t.Text
		}
		if t.ManuallyClassified {
			line += " *"
		}
		cell := cells[t.Quadrant()]
		cell.Tasks = append(cell.Tasks, line)
	}
	return views.RenderMatrixPanel(views.MatrixPanelData{
		DoFirst:   *cells[model.QuadrantDoFirst],
		Schedule:  *cells[model.QuadrantSchedule],
		Delegate:  *cells[model.QuadrantDelegate],
		Eliminate: *cells[model.QuadrantEliminate],
	})
}
