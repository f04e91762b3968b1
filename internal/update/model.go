package update

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/focusboard/focusboard/internal/alert"
	"github.com/focusboard/focusboard/internal/board"
	"github.com/focusboard/focusboard/internal/model"
	"github.com/focusboard/focusboard/internal/paste"
	"github.com/focusboard/focusboard/internal/storage"
)

type View string

const (
	ViewList   View = "List"
	ViewMatrix View = "Matrix"
	ViewNotes  View = "Notes"
)

// Mode is the current input mode; anything other than modeNormal routes
// keystrokes into a text field. Escape always discards the edit.
type Mode string

const (
	modeNormal       Mode = "normal"
	modeAddTask      Mode = "add-task"
	modeAddSubstep   Mode = "add-substep"
	modeEditText     Mode = "edit-text"
	modeEditDeadline Mode = "edit-deadline"
	modeEditEstimate Mode = "edit-estimate"
	modeEditDesc     Mode = "edit-description"
	modeEditNote     Mode = "edit-note"
	modeEditGoal     Mode = "edit-goal"
	modeAddHabit     Mode = "add-habit"
	modePasteCapture Mode = "paste-capture"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	List   string
	Matrix string
	Notes  string
	Help   string
	Quit   string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

// PastePrompt is the confirmation shown for large pastes; it dismisses
// itself after promptDismissSec seconds without an answer.
type PastePrompt struct {
	Draft       paste.Draft
	SecondsLeft int
}

const promptDismissSec = 5

// rowRef addresses one visible row in the list view: a task line or one of
// its substep lines.
type rowRef struct {
	TaskID    string
	SubstepID string
}

type Model struct {
	Board *board.Board
	Prefs storage.Preferences

	CurrentView View
	Cursor      int
	NotesCursor int
	Mode        Mode

	Alerts         *alert.Engine
	AlertLog       []alert.DeadlineEvent
	DesktopEnabled bool
	notifier       DesktopNotifier

	Palette     CommandPaletteState
	PastePrompt *PastePrompt
	HelpVisible bool
	Status      StatusBar
	Keys        GlobalKeyMap
	Quitting    bool

	kv storage.KV

	// editTask/editSubstep pin the entity a text field commits to.
	editTaskID    string
	editSubstepID string

	addInput     textinput.Model
	editInput    textinput.Model
	commandInput textinput.Model
	pasteArea    textarea.Model
	progressBar  progress.Model

	timerTickActive bool
}

type DesktopNotifier interface {
	Send(title, body string) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(string, string) error { return nil }

type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(title, body string) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", title, body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(body), escapeAppleScript(title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

type TimerTickMsg struct{}

type CountdownTickMsg struct{}

type PromptTickMsg struct{}

type AlertDueMsg struct {
	Event alert.DeadlineEvent
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

func NewModel(b *board.Board, kv storage.KV, prefs storage.Preferences, engine *alert.Engine, cfg RuntimeConfig, notifier DesktopNotifier) Model {
	if b == nil {
		b = board.New(nil)
	}
	if notifier == nil {
		notifier = NoopDesktopNotifier{}
	}

	addInput := textinput.New()
	addInput.Placeholder = "task text"
	addInput.CharLimit = 200

	editInput := textinput.New()
	editInput.CharLimit = 200

	commandInput := textinput.New()
	commandInput.Placeholder = "add | sort | view | theme"

	pasteArea := textarea.New()
	pasteArea.Placeholder = "paste task text here, ctrl+d to apply"

	m := Model{
		Board:          b,
		Prefs:          prefs,
		CurrentView:    ViewList,
		Mode:           modeNormal,
		Alerts:         engine,
		DesktopEnabled: cfg.DesktopNotifications,
		notifier:       notifier,
		kv:             kv,
		addInput:       addInput,
		editInput:      editInput,
		commandInput:   commandInput,
		pasteArea:      pasteArea,
		progressBar:    progress.New(progress.WithDefaultGradient()),
		Keys: GlobalKeyMap{
			List:   "1",
			Matrix: "2",
			Notes:  "3",
			Help:   "?",
			Quit:   "q",
		},
	}

	if kv != nil {
		m.Board.SetOnChange(func() {
			// Best effort: a failed write never interrupts the session.
			_ = storage.SaveTasks(context.Background(), kv, b.Tasks(), b.SortMode())
		})
	}
	m.scheduleAlerts()
	m.timerTickActive = b.AnyStopwatchRunning()
	return m
}

// scheduleAlerts (re)queues the overdue boundary for every open task with a
// deadline. Schedule replaces by task ID, so calling this again after a
// deadline edit is safe.
func (m *Model) scheduleAlerts() {
	if m.Alerts == nil {
		return
	}
	for _, t := range m.Board.Tasks() {
		if t.Deadline == nil || t.Completed {
			m.Alerts.Cancel(t.ID)
			continue
		}
		boundary := model.EndOfDay(*t.Deadline)
		if boundary.Before(time.Now()) {
			continue
		}
		_ = m.Alerts.Schedule(alert.DeadlineEvent{TaskID: t.ID, Title: t.Text, BoundaryAt: boundary})
	}
}

func (m *Model) savePrefs() {
	if m.kv == nil {
		return
	}
	_ = storage.SavePreferences(context.Background(), m.kv, m.Prefs)
}

func escapeAppleScript(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}
