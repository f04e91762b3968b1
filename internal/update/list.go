package update

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/focusboard/focusboard/internal/board"
	"github.com/focusboard/focusboard/internal/model"
	"github.com/focusboard/focusboard/internal/views"
)

const deadlineInputLayout = "2006-01-02"

// rows flattens tasks and their visible substeps into the list the cursor
// walks. Substeps of a collapsed task are skipped.
func (m Model) rows() []rowRef {
	var out []rowRef
	for _, t := range m.Board.Tasks() {
		out = append(out, rowRef{TaskID: t.ID})
		if t.Collapsed {
			continue
		}
		for _, s := range t.Substeps {
			out = append(out, rowRef{TaskID: t.ID, SubstepID: s.ID})
		}
	}
	return out
}

func clampCursor(cursor, length int) int {
	if length == 0 {
		return 0
	}
	if cursor < 0 {
		return 0
	}
	if cursor >= length {
		return length - 1
	}
	return cursor
}

// currentRow resolves the cursor to a concrete task/substep reference.
func (m Model) currentRow() (rowRef, bool) {
	rows := m.rows()
	if len(rows) == 0 {
		return rowRef{}, false
	}
	return rows[clampCursor(m.Cursor, len(rows))], true
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.rows()
	m.Cursor = clampCursor(m.Cursor, len(rows))

	switch msg.String() {
	case "j", "down":
		m.Cursor = clampCursor(m.Cursor+1, len(rows))
	case "k", "up":
		m.Cursor = clampCursor(m.Cursor-1, len(rows))
	case "a":
		m.Mode = modeAddTask
		m.addInput.SetValue("")
		m.addInput.Focus()
	case "s":
		if ref, ok := m.currentRow(); ok {
			m.Mode = modeAddSubstep
			m.editTaskID = ref.TaskID
			m.addInput.SetValue("")
			m.addInput.Focus()
		}
	case "e":
		m.beginTextEdit()
	case "c":
		if ref, ok := m.currentRow(); ok && ref.SubstepID == "" {
			if t, err := m.Board.Task(ref.TaskID); err == nil {
				m.Mode = modeEditDesc
				m.editTaskID = ref.TaskID
				m.editInput.SetValue(t.Description)
				m.editInput.Focus()
			}
		}
	case "D":
		if ref, ok := m.currentRow(); ok && ref.SubstepID == "" {
			m.Mode = modeEditDeadline
			m.editTaskID = ref.TaskID
			m.editInput.SetValue(m.currentDeadlineInput(ref.TaskID))
			m.editInput.Focus()
		}
	case "E":
		if ref, ok := m.currentRow(); ok {
			m.Mode = modeEditEstimate
			m.editTaskID = ref.TaskID
			m.editSubstepID = ref.SubstepID
			m.editInput.SetValue("")
			m.editInput.Focus()
		}
	case "x", " ":
		return m.toggleCurrent()
	case "d":
		m.deleteCurrent()
	case "!":
		m.cyclePriority()
	case "t":
		return m.toggleStopwatch()
	case "r":
		if ref, ok := m.currentRow(); ok {
			id := ref.SubstepID
			if id == "" {
				id = ref.TaskID
			}
			if err := m.Board.ResetStopwatch(id); err == nil {
				m.Status = StatusBar{Text: "stopwatch reset"}
			}
		}
	case "z":
		if ref, ok := m.currentRow(); ok {
			_ = m.Board.ToggleCollapsed(ref.TaskID)
			m.Cursor = clampCursor(m.Cursor, len(m.rows()))
		}
	case "o":
		mode := m.Board.CycleSortMode()
		m.Status = StatusBar{Text: fmt.Sprintf("sort: %s", mode)}
	}
	return m, nil
}

func (m *Model) beginTextEdit() {
	ref, ok := m.currentRow()
	if !ok {
		return
	}
	t, err := m.Board.Task(ref.TaskID)
	if err != nil {
		return
	}
	m.Mode = modeEditText
	m.editTaskID = ref.TaskID
	m.editSubstepID = ref.SubstepID
	if ref.SubstepID == "" {
		m.editInput.SetValue(t.Text)
	} else {
		for _, s := range t.Substeps {
			if s.ID == ref.SubstepID {
				m.editInput.SetValue(s.Text)
			}
		}
	}
	m.editInput.Focus()
}

func (m Model) toggleCurrent() (tea.Model, tea.Cmd) {
	ref, ok := m.currentRow()
	if !ok {
		return m, nil
	}
	if ref.SubstepID == "" {
		task, err := m.Board.ToggleTaskCompleted(ref.TaskID)
		if errors.Is(err, board.ErrHasSubsteps) {
			m.Status = StatusBar{Text: "completion follows substeps; toggle those instead", IsError: true}
			return m, nil
		}
		if err == nil {
			if task.Completed {
				m.celebrate(task.Text)
			}
			// Completing cancels the pending deadline alert; reopening
			// reschedules it.
			m.scheduleAlerts()
		}
		return m, nil
	}
	before, _ := m.Board.Task(ref.TaskID)
	if err := m.Board.ToggleSubstep(ref.TaskID, ref.SubstepID); err != nil {
		return m, nil
	}
	after, err := m.Board.Task(ref.TaskID)
	if err == nil {
		if !before.Completed && after.Completed {
			m.celebrate(after.Text)
		}
		if before.Completed != after.Completed {
			m.scheduleAlerts()
		}
	}
	return m, nil
}

func (m *Model) celebrate(title string) {
	m.Status = StatusBar{Text: fmt.Sprintf("completed: %s", title)}
	m.notify("Task complete", title)
}

func (m *Model) deleteCurrent() {
	ref, ok := m.currentRow()
	if !ok {
		return
	}
	if ref.SubstepID == "" {
		if err := m.Board.DeleteTask(ref.TaskID); err == nil {
			// scheduleAlerts only walks live tasks, so a deleted task's
			// pending alert has to be cancelled here by ID.
			if m.Alerts != nil {
				m.Alerts.Cancel(ref.TaskID)
			}
			m.Status = StatusBar{Text: "task deleted"}
		}
	} else {
		if err := m.Board.DeleteSubstep(ref.TaskID, ref.SubstepID); err == nil {
			m.Status = StatusBar{Text: "substep deleted"}
		}
	}
	m.scheduleAlerts()
	m.Cursor = clampCursor(m.Cursor, len(m.rows()))
}

func (m *Model) cyclePriority() {
	ref, ok := m.currentRow()
	if !ok || ref.SubstepID != "" {
		return
	}
	t, err := m.Board.Task(ref.TaskID)
	if err != nil {
		return
	}
	next := model.PriorityMedium
	switch t.Priority {
	case model.PriorityMedium:
		next = model.PriorityHigh
	case model.PriorityHigh:
		next = model.PriorityLow
	case model.PriorityLow:
		next = model.PriorityMedium
	}
	_ = m.Board.SetPriority(ref.TaskID, next)
	m.Status = StatusBar{Text: fmt.Sprintf("priority: %s", next)}
}

func (m Model) toggleStopwatch() (tea.Model, tea.Cmd) {
	ref, ok := m.currentRow()
	if !ok {
		return m, nil
	}
	id := ref.SubstepID
	taskID := ref.TaskID
	if id == "" {
		id = taskID
	}
	running := false
	if t, err := m.Board.Task(taskID); err == nil {
		if ref.SubstepID == "" {
			running = t.TimerRunning
		} else {
			for _, s := range t.Substeps {
				if s.ID == ref.SubstepID {
					running = s.TimerRunning
				}
			}
		}
	}
	if running {
		_ = m.Board.PauseStopwatch(id)
		m.Status = StatusBar{Text: "stopwatch paused"}
		return m, nil
	}
	if err := m.Board.StartStopwatch(id); err != nil {
		return m, nil
	}
	m.Status = StatusBar{Text: "stopwatch running"}
	if !m.timerTickActive {
		m.timerTickActive = true
		return m, timerTickCmd()
	}
	return m, nil
}

// handleEditingKey routes keystrokes while a text field is active. Enter
// commits, escape discards with no state change.
func (m Model) handleEditingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Mode = modeNormal
		m.addInput.Blur()
		m.editInput.Blur()
		m.pasteArea.Blur()
		m.Status = StatusBar{Text: "edit discarded"}
		return m, nil
	case "ctrl+d":
		if m.Mode == modePasteCapture {
			return m.commitPaste()
		}
	case "enter":
		if m.Mode != modePasteCapture {
			return m.commitEdit()
		}
	}

	var cmd tea.Cmd
	switch m.Mode {
	case modeAddTask, modeAddSubstep, modeAddHabit:
		m.addInput, cmd = m.addInput.Update(msg)
	case modePasteCapture:
		m.pasteArea, cmd = m.pasteArea.Update(msg)
	default:
		m.editInput, cmd = m.editInput.Update(msg)
	}
	return m, cmd
}

func (m Model) commitEdit() (tea.Model, tea.Cmd) {
	mode := m.Mode
	m.Mode = modeNormal
	m.addInput.Blur()
	m.editInput.Blur()

	switch mode {
	case modeAddTask:
		if _, err := m.Board.AddTask(m.addInput.Value()); err != nil {
			m.Status = StatusBar{Text: "task text cannot be empty", IsError: true}
		} else {
			m.Status = StatusBar{Text: "task added"}
		}
	case modeAddSubstep:
		if _, err := m.Board.AddSubstep(m.editTaskID, m.addInput.Value()); err != nil {
			m.Status = StatusBar{Text: "substep text cannot be empty", IsError: true}
		} else {
			m.Status = StatusBar{Text: "substep added"}
		}
	case modeEditText:
		var err error
		if m.editSubstepID == "" {
			err = m.Board.UpdateTaskText(m.editTaskID, m.editInput.Value())
		} else {
			err = m.Board.UpdateSubstepText(m.editTaskID, m.editSubstepID, m.editInput.Value())
		}
		if errors.Is(err, model.ErrEmptyText) {
			m.Status = StatusBar{Text: "text cannot be empty", IsError: true}
		} else if err == nil {
			m.Status = StatusBar{Text: "text updated"}
			m.scheduleAlerts()
		}
	case modeEditDesc:
		_ = m.Board.SetDescription(m.editTaskID, m.editInput.Value())
		m.Status = StatusBar{Text: "description updated"}
	case modeEditDeadline:
		return m.commitDeadline()
	case modeEditEstimate:
		raw := m.editInput.Value()
		var err error
		if m.editSubstepID == "" {
			err = m.Board.SetEstimateInput(m.editTaskID, raw)
		} else {
			err = m.Board.SetSubstepEstimateInput(m.editTaskID, m.editSubstepID, raw)
		}
		if err == nil {
			if _, convErr := strconv.Atoi(strings.TrimSpace(raw)); convErr != nil && strings.TrimSpace(raw) != "" {
				m.Status = StatusBar{Text: "estimate must be a whole number of minutes; cleared", IsError: true}
			} else {
				m.Status = StatusBar{Text: "estimate updated"}
			}
		}
	case modeEditNote, modeEditGoal, modeAddHabit:
		return m.commitNotesEdit(mode)
	}
	return m, nil
}

func (m Model) commitDeadline() (tea.Model, tea.Cmd) {
	raw := strings.TrimSpace(m.editInput.Value())
	if raw == "" {
		_ = m.Board.SetDeadline(m.editTaskID, nil)
		m.Status = StatusBar{Text: "deadline cleared"}
		m.scheduleAlerts()
		return m, nil
	}
	day, err := time.ParseInLocation(deadlineInputLayout, raw, time.Local)
	if err != nil {
		m.Status = StatusBar{Text: "deadline must be YYYY-MM-DD", IsError: true}
		return m, nil
	}
	if err := m.Board.SetDeadline(m.editTaskID, &day); err == nil {
		m.Status = StatusBar{Text: fmt.Sprintf("deadline set: %s", raw)}
		m.scheduleAlerts()
	}
	return m, nil
}

func (m Model) currentDeadlineInput(taskID string) string {
	t, err := m.Board.Task(taskID)
	if err != nil || t.Deadline == nil {
		return ""
	}
	return t.Deadline.Format(deadlineInputLayout)
}

func (m Model) renderListView() string {
	counters := m.Board.Counters()
	data := views.ListPanelData{
		SortMode:       string(m.Board.SortMode()),
		CompletedCount: counters.Completed,
		RemainingCount: counters.Remaining,
		Adding:         m.Mode == modeAddTask || m.Mode == modeAddSubstep,
		AddView:        m.addInput.View(),
		Editing:        m.isFieldEdit(),
		EditView:       m.editInput.View(),
		EditField:      m.editFieldName(),
	}

	now := time.Now()
	rows := m.rows()
	cursor := clampCursor(m.Cursor, len(rows))
	rowIdx := 0
	for _, t := range m.Board.Tasks() {
		sum := board.SummaryFor(t)
		row := views.TaskRowData{
			Selected:  rowIdx == cursor,
			Completed: t.Completed,
			Text:      t.Text,
			Priority:  string(t.Priority),
			Quadrant:  string(t.Quadrant()),
			Countdown: model.EvaluateCountdown(t.Deadline, now).Label(),
			Estimate:  estimateLabel(t.EstimateMin),
			Stopwatch: t.Stopwatch.Display(),
			Running:   t.TimerRunning,
			Collapsed: t.Collapsed,
			Percent:   sum.Percent,
			Done:      sum.Done,
			Total:     sum.Total,
		}
		rowIdx++
		if !t.Collapsed {
			for _, s := range t.Substeps {
				row.Substeps = append(row.Substeps, views.SubstepRowData{
					Selected:  rowIdx == cursor,
					Completed: s.Completed,
					Text:      s.Text,
					Estimate:  estimateLabel(s.EstimateMin),
					Stopwatch: s.Stopwatch.Display(),
					Running:   s.TimerRunning,
				})
				rowIdx++
			}
		}
		data.Rows = append(data.Rows, row)
	}
	return views.RenderListPanel(data)
}

func (m Model) isFieldEdit() bool {
	switch m.Mode {
	case modeEditText, modeEditDeadline, modeEditEstimate, modeEditDesc:
		return true
	default:
		return false
	}
}

func (m Model) editFieldName() string {
	switch m.Mode {
	case modeEditText:
		return "text"
	case modeEditDeadline:
		return "deadline"
	case modeEditEstimate:
		return "estimate"
	case modeEditDesc:
		return "description"
	default:
		return ""
	}
}

func estimateLabel(estimateMin *int) string {
	if estimateMin == nil {
		return ""
	}
	return strconv.Itoa(*estimateMin)
}
