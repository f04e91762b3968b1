package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/focusboard/focusboard/internal/storage"
	"github.com/focusboard/focusboard/internal/views"
)

// Notes view rows: 0 is the sleep goal, 1-4 the quick note slots, then one
// row per habit.
const (
	notesGoalRow       = 0
	notesFirstNoteRow  = 1
	notesFirstHabitRow = notesFirstNoteRow + len(storage.Preferences{}.QuickNotes)
)

func (m Model) notesRowCount() int {
	return notesFirstHabitRow + len(m.Prefs.Habits)
}

func (m Model) handleNotesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := m.notesRowCount()
	m.NotesCursor = clampCursor(m.NotesCursor, count)

	switch msg.String() {
	case "j", "down":
		m.NotesCursor = clampCursor(m.NotesCursor+1, count)
	case "k", "up":
		m.NotesCursor = clampCursor(m.NotesCursor-1, count)
	case "e":
		m.beginNotesEdit()
	case "T":
		if m.Prefs.Theme == "dark" {
			m.Prefs.Theme = "light"
		} else {
			m.Prefs.Theme = "dark"
		}
		m.savePrefs()
		m.Status = StatusBar{Text: fmt.Sprintf("theme: %s", m.Prefs.Theme)}
	case "H":
		m.Mode = modeAddHabit
		m.addInput.SetValue("")
		m.addInput.Focus()
	case "D":
		if idx := m.NotesCursor - notesFirstHabitRow; idx >= 0 && idx < len(m.Prefs.Habits) {
			m.Prefs.Habits = append(m.Prefs.Habits[:idx], m.Prefs.Habits[idx+1:]...)
			m.savePrefs()
			m.NotesCursor = clampCursor(m.NotesCursor, m.notesRowCount())
			m.Status = StatusBar{Text: "habit removed"}
		}
	case " ":
		if idx := m.NotesCursor - notesFirstHabitRow; idx >= 0 && idx < len(m.Prefs.Habits) {
			m.Prefs.Habits[idx].Checked = !m.Prefs.Habits[idx].Checked
			m.savePrefs()
		}
	}
	return m, nil
}

func (m *Model) beginNotesEdit() {
	switch {
	case m.NotesCursor == notesGoalRow:
		m.Mode = modeEditGoal
		m.editInput.SetValue(m.Prefs.SleepGoal)
	case m.NotesCursor < notesFirstHabitRow:
		m.Mode = modeEditNote
		m.editInput.SetValue(m.Prefs.QuickNotes[m.NotesCursor-notesFirstNoteRow])
	default:
		idx := m.NotesCursor - notesFirstHabitRow
		if idx >= len(m.Prefs.Habits) {
			return
		}
		m.Mode = modeEditNote
		m.editInput.SetValue(m.Prefs.Habits[idx].Text)
	}
	m.editInput.Focus()
}

func (m Model) commitNotesEdit(mode Mode) (tea.Model, tea.Cmd) {
	value := m.editInput.Value()
	switch mode {
	case modeEditGoal:
		m.Prefs.SleepGoal = strings.TrimSpace(value)
		m.Status = StatusBar{Text: "sleep goal updated"}
	case modeAddHabit:
		text := strings.TrimSpace(m.addInput.Value())
		if text == "" {
			m.Status = StatusBar{Text: "habit text cannot be empty", IsError: true}
			return m, nil
		}
		m.Prefs.Habits = append(m.Prefs.Habits, storage.Habit{Text: text})
		m.Status = StatusBar{Text: "habit added"}
	case modeEditNote:
		switch {
		case m.NotesCursor >= notesFirstNoteRow && m.NotesCursor < notesFirstHabitRow:
			m.Prefs.QuickNotes[m.NotesCursor-notesFirstNoteRow] = value
			m.Status = StatusBar{Text: "note updated"}
		default:
			idx := m.NotesCursor - notesFirstHabitRow
			if idx >= 0 && idx < len(m.Prefs.Habits) {
				text := strings.TrimSpace(value)
				if text == "" {
					m.Status = StatusBar{Text: "habit text cannot be empty", IsError: true}
					return m, nil
				}
				m.Prefs.Habits[idx].Text = text
				m.Status = StatusBar{Text: "habit updated"}
			}
		}
	}
	m.savePrefs()
	return m, nil
}

func (m Model) renderNotesView() string {
	data := views.NotesPanelData{
		Theme:      m.Prefs.Theme,
		SleepGoal:  m.Prefs.SleepGoal,
		QuickNotes: m.Prefs.QuickNotes[:],
		Editing:    m.Mode == modeEditNote || m.Mode == modeEditGoal,
		EditView:   m.editInput.View(),
		EditField:  notesEditFieldName(m.Mode),
	}
	for i, h := range m.Prefs.Habits {
		data.Habits = append(data.Habits, views.HabitRowData{
			Selected: m.NotesCursor == notesFirstHabitRow+i,
			Checked:  h.Checked,
			Text:     h.Text,
		})
	}
	return views.RenderNotesPanel(data)
}

func notesEditFieldName(mode Mode) string {
	switch mode {
	case modeEditGoal:
		return "sleep goal"
	case modeEditNote:
		return "note"
	default:
		return ""
	}
}
