package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/focusboard/focusboard/internal/paste"
)

// commitPaste parses the captured text. Small pastes apply immediately;
// anything with enough line breaks goes through the confirmation prompt.
func (m Model) commitPaste() (tea.Model, tea.Cmd) {
	raw := m.pasteArea.Value()
	m.Mode = modeNormal
	m.pasteArea.Blur()

	draft := paste.Parse(raw)
	if draft.IsEmpty() {
		m.Status = StatusBar{Text: "nothing to paste", IsError: true}
		return m, nil
	}
	if draft.NeedsConfirm {
		m.PastePrompt = &PastePrompt{Draft: draft, SecondsLeft: promptDismissSec}
		return m, promptTickCmd()
	}
	return m.applyDraft(draft)
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		draft := m.PastePrompt.Draft
		m.PastePrompt = nil
		return m.applyDraft(draft)
	case "esc":
		m.PastePrompt = nil
		m.Status = StatusBar{Text: "paste dismissed"}
	}
	return m, nil
}

func (m Model) applyDraft(draft paste.Draft) (tea.Model, tea.Cmd) {
	steps := make([]string, 0, len(draft.Steps))
	for _, s := range draft.Steps {
		steps = append(steps, paste.StripMarker(s))
	}
	task, err := m.Board.AddComposite(draft.Title, draft.Description, steps)
	if err != nil {
		m.Status = StatusBar{Text: "paste produced no usable task", IsError: true}
		return m, nil
	}
	m.Status = StatusBar{Text: fmt.Sprintf("created %q with %d substeps", task.Text, len(task.Substeps))}
	return m, nil
}
