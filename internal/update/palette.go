package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/focusboard/focusboard/internal/commands"
	"github.com/focusboard/focusboard/internal/model"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Palette = CommandPaletteState{}
		m.commandInput.Blur()
		m.Status = StatusBar{}
		return m, nil
	case "enter":
		input := m.commandInput.Value()
		m.Palette = CommandPaletteState{}
		m.commandInput.Blur()
		return m.runCommand(input), nil
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	m.Palette.Input = m.commandInput.Value()
	return m, cmd
}

func (m Model) runCommand(input string) Model {
	cmd, err := commands.Parse(input)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	result, err := commands.Execute(cmd, m.paletteHandlers())
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m.Status = StatusBar{Text: result.Message}
	return m
}

// paletteHandlers binds the parsed palette commands to board and model
// mutations. Handlers write through the pointer receiver so the model copy
// returned to bubbletea carries the changes.
func (m *Model) paletteHandlers() commands.Handlers {
	target := m
	return commands.Handlers{
		Add: func(args commands.AddArgs) (commands.Result, error) {
			task, err := target.Board.AddTask(args.Title)
			if err != nil {
				return commands.Result{}, &commands.CommandError{
					Code:    commands.ErrCodeInvalidArgument,
					Message: "task text cannot be empty",
				}
			}
			return commands.Result{Message: fmt.Sprintf("added %q", task.Text)}, nil
		},
		Sort: func(args commands.SortArgs) (commands.Result, error) {
			mode := model.SortMode(args.Mode)
			if err := target.Board.SetSortMode(mode); err != nil {
				return commands.Result{}, &commands.CommandError{
					Code:    commands.ErrCodeInvalidArgument,
					Message: err.Error(),
				}
			}
			return commands.Result{Message: fmt.Sprintf("sort: %s", mode)}, nil
		},
		View: func(args commands.ViewArgs) (commands.Result, error) {
			switch args.Name {
			case "list":
				target.CurrentView = ViewList
			case "matrix":
				target.CurrentView = ViewMatrix
			case "notes":
				target.CurrentView = ViewNotes
			}
			return commands.Result{Message: fmt.Sprintf("view: %s", target.CurrentView)}, nil
		},
		Theme: func(args commands.ThemeArgs) (commands.Result, error) {
			switch args.Name {
			case "dark", "light":
				target.Prefs.Theme = args.Name
				target.savePrefs()
				return commands.Result{Message: fmt.Sprintf("theme: %s", args.Name)}, nil
			default:
				return commands.Result{}, &commands.CommandError{
					Code:    commands.ErrCodeInvalidArgument,
					Message: fmt.Sprintf("unknown theme: %s", args.Name),
				}
			}
		},
	}
}
