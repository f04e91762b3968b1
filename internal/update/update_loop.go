package update

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/focusboard/focusboard/internal/alert"
	"github.com/focusboard/focusboard/internal/views"
)

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{countdownTickCmd()}
	if m.Alerts != nil {
		cmds = append(cmds, waitForAlertCmd(m.Alerts.C()))
	}
	// Stopwatches persisted as running resume ticking immediately on load.
	if m.timerTickActive {
		cmds = append(cmds, timerTickCmd())
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)

	case TimerTickMsg:
		if !m.timerTickActive {
			return m, nil
		}
		if m.Board.Tick() {
			return m, timerTickCmd()
		}
		m.timerTickActive = false
		return m, nil

	case CountdownTickMsg:
		// Countdown badges derive from the clock at render time; the tick
		// only forces a refresh at least once per minute.
		return m, countdownTickCmd()

	case PromptTickMsg:
		if m.PastePrompt == nil {
			return m, nil
		}
		m.PastePrompt.SecondsLeft--
		if m.PastePrompt.SecondsLeft <= 0 {
			m.PastePrompt = nil
			m.Status = StatusBar{Text: "paste dismissed"}
			return m, nil
		}
		return m, promptTickCmd()

	case AlertDueMsg:
		m.AlertLog = append(m.AlertLog, typed.Event)
		if len(m.AlertLog) > 20 {
			m.AlertLog = m.AlertLog[len(m.AlertLog)-20:]
		}
		m.Status = StatusBar{Text: fmt.Sprintf("deadline passed: %s", typed.Event.Title)}
		m.notify("Overdue", typed.Event.Title)
		if m.Alerts != nil {
			return m, waitForAlertCmd(m.Alerts.C())
		}
		return m, nil

	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
		}
		return m, nil

	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil

	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.Palette.Active {
		return m.handlePaletteKey(msg)
	}
	if m.PastePrompt != nil {
		return m.handlePromptKey(msg)
	}
	if m.Mode != modeNormal {
		return m.handleEditingKey(msg)
	}

	key := msg.String()
	switch key {
	case "/":
		m.Palette.Active = true
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Focus()
		m.Status = StatusBar{Text: "command palette active"}
		return m, nil
	case "tab":
		m.CurrentView = nextView(m.CurrentView)
		return m, nil
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case "p":
		m.Mode = modePasteCapture
		m.pasteArea.SetValue("")
		m.pasteArea.Focus()
		m.Status = StatusBar{Text: "paste capture: ctrl+d applies, esc cancels"}
		return m, nil
	case "ctrl+c", m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	}

	// The matrix view owns the digit keys for quadrant moves, so the digit
	// view shortcuts only apply elsewhere; tab always cycles.
	if m.CurrentView != ViewMatrix {
		switch key {
		case m.Keys.List:
			m.CurrentView = ViewList
			return m, nil
		case m.Keys.Matrix:
			m.CurrentView = ViewMatrix
			return m, nil
		case m.Keys.Notes:
			m.CurrentView = ViewNotes
			return m, nil
		}
	}

	switch m.CurrentView {
	case ViewList:
		return m.handleListKey(msg)
	case ViewMatrix:
		return m.handleMatrixKey(msg)
	case ViewNotes:
		return m.handleNotesKey(msg)
	}
	return m, nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	leftPane := ""
	switch m.CurrentView {
	case ViewList:
		leftPane = m.renderListView()
	case ViewMatrix:
		leftPane = m.renderMatrixView()
	case ViewNotes:
		leftPane = m.renderNotesView()
	}

	rightPane := m.renderDetailPane()
	if m.Mode == modePasteCapture {
		rightPane = "paste:\n" + m.pasteArea.View()
	}
	if m.PastePrompt != nil {
		rightPane = views.RenderPastePrompt(views.PastePromptData{
			Title:     m.PastePrompt.Draft.Title,
			StepCount: len(m.PastePrompt.Draft.Steps),
			Seconds:   m.PastePrompt.SecondsLeft,
		})
	}
	if m.Palette.Active {
		rightPane += "\n\ncommand: /" + m.commandInput.Value()
	}
	if m.HelpVisible {
		rightPane += "\n\n" + m.renderHelpPane()
	}

	counters := m.Board.Counters()
	notification := ""
	if len(m.AlertLog) > 0 {
		last := m.AlertLog[len(m.AlertLog)-1]
		notification = fmt.Sprintf("last-alert: %s @ %s", last.Title, last.BoundaryAt.Format("Jan 2 15:04"))
	}

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("focusboard | view: %s | %d done / %d open", m.CurrentView, counters.Completed, counters.Remaining),
		LeftPane:     leftPane,
		RightPane:    rightPane,
		StatusLine:   status,
		Notification: notification,
		Footer: fmt.Sprintf("keys: %s list | %s matrix | %s notes | p paste | / cmd | %s help | %s quit",
			m.Keys.List, m.Keys.Matrix, m.Keys.Notes, m.Keys.Help, m.Keys.Quit),
	})
}

func (m *Model) notify(title, body string) {
	if !m.DesktopEnabled || m.notifier == nil {
		return
	}
	_ = m.notifier.Send(title, body)
}

func nextView(v View) View {
	switch v {
	case ViewList:
		return ViewMatrix
	case ViewMatrix:
		return ViewNotes
	default:
		return ViewList
	}
}

func isKnownView(v View) bool {
	switch v {
	case ViewList, ViewMatrix, ViewNotes:
		return true
	default:
		return false
	}
}

func timerTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return TimerTickMsg{} })
}

func countdownTickCmd() tea.Cmd {
	return tea.Tick(time.Minute, func(time.Time) tea.Msg { return CountdownTickMsg{} })
}

func promptTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return PromptTickMsg{} })
}

func waitForAlertCmd(ch <-chan alert.DeadlineEvent) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return AlertDueMsg{Event: ev}
	}
}
