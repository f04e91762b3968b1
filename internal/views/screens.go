package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type SubstepRowData struct {
	Selected  bool
	Completed bool
	Text      string
	Estimate  string
	Stopwatch string
	Running   bool
}

type TaskRowData struct {
	Selected  bool
	Completed bool
	Text      string
	Priority  string
	Quadrant  string
	Countdown string
	Estimate  string
	Stopwatch string
	Running   bool
	Collapsed bool
	Percent   int
	Done      int
	Total     int
	Substeps  []SubstepRowData
}

type ListPanelData struct {
	Rows           []TaskRowData
	SortMode       string
	CompletedCount int
	RemainingCount int
	AddView        string
	Adding         bool
	EditView       string
	Editing        bool
	EditField      string
}

func RenderListPanel(data ListPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("tasks (%d done / %d open) | sort: %s\n", data.CompletedCount, data.RemainingCount, data.SortMode))
	b.WriteString("actions: [a]dd [e]dit [x]toggle [d]elete [s]ubstep [t]imer [o]sort [z]fold\n")
	if data.Adding {
		b.WriteString("add: " + data.AddView + "\n")
	}
	if data.Editing {
		b.WriteString(fmt.Sprintf("edit %s: %s\n", data.EditField, data.EditView))
	}
	if len(data.Rows) == 0 {
		b.WriteString("(no tasks yet; press a to add one)")
		return strings.TrimSpace(b.String())
	}
	for _, row := range data.Rows {
		b.WriteString(renderTaskRow(row))
	}
	return strings.TrimSpace(b.String())
}

func renderTaskRow(row TaskRowData) string {
	var b strings.Builder
	cursor := " "
	if row.Selected {
		cursor = ">"
	}
	check := "[ ]"
	if row.Completed {
		check = "[x]"
	}
	b.WriteString(fmt.Sprintf("%s %s %s %s", cursor, check, priorityBadge(row.Priority), row.Text))
	if row.Countdown != "" {
		b.WriteString(" (" + row.Countdown + ")")
	}
	if row.Estimate != "" {
		b.WriteString(" ~" + row.Estimate + "m")
	}
	if row.Stopwatch != "" && (row.Running || row.Stopwatch != "00:00:00") {
		marker := " "
		if row.Running {
			marker = "*"
		}
		b.WriteString(fmt.Sprintf(" %s%s", marker, row.Stopwatch))
	}
	if row.Total > 0 {
		b.WriteString(fmt.Sprintf(" [%d/%d %d%%]", row.Done, row.Total, row.Percent))
	}
	b.WriteString("\n")
	if row.Collapsed && row.Total > 0 {
		b.WriteString(fmt.Sprintf("    ... %d substeps folded\n", row.Total))
		return b.String()
	}
	for _, step := range row.Substeps {
		b.WriteString(renderSubstepRow(step))
	}
	return b.String()
}

func renderSubstepRow(step SubstepRowData) string {
	cursor := " "
	if step.Selected {
		cursor = ">"
	}
	check := "[ ]"
	if step.Completed {
		check = "[x]"
	}
	line := fmt.Sprintf("   %s %s %s", cursor, check, step.Text)
	if step.Estimate != "" {
		line += " ~" + step.Estimate + "m"
	}
	if step.Stopwatch != "" && (step.Running || step.Stopwatch != "00:00:00") {
		marker := " "
		if step.Running {
			marker = "*"
		}
		line += fmt.Sprintf(" %s%s", marker, step.Stopwatch)
	}
	return line + "\n"
}

type QuadrantCellData struct {
	Title string
	Tasks []string
}

type MatrixPanelData struct {
	DoFirst   QuadrantCellData
	Schedule  QuadrantCellData
	Delegate  QuadrantCellData
	Eliminate QuadrantCellData
}

// RenderMatrixPanel lays the four quadrants out as a 2x2 grid:
// urgent+important top-left, then clockwise by decreasing score.
func RenderMatrixPanel(data MatrixPanelData) string {
	topRow := lipgloss.JoinHorizontal(lipgloss.Top,
		renderQuadrantCell(data.DoFirst),
		renderQuadrantCell(data.Schedule),
	)
	bottomRow := lipgloss.JoinHorizontal(lipgloss.Top,
		renderQuadrantCell(data.Delegate),
		renderQuadrantCell(data.Eliminate),
	)
	grid := lipgloss.JoinVertical(lipgloss.Left, topRow, bottomRow)
	help := "actions: [j/k]select [1-4]move selected to quadrant"
	return grid + "\n" + help
}

func renderQuadrantCell(cell QuadrantCellData) string {
	var b strings.Builder
	b.WriteString(quadTitle.Render(cell.Title) + "\n")
	if len(cell.Tasks) == 0 {
		b.WriteString("(empty)")
	} else {
		b.WriteString(strings.Join(cell.Tasks, "\n"))
	}
	return quadrantStyle.Render(b.String())
}

type DetailPanelData struct {
	Title           string
	Priority        string
	Quadrant        string
	Manual          bool
	Deadline        string
	Countdown       string
	Estimate        string
	Category        string
	Stopwatch       string
	Running         bool
	ProgressView    string
	Percent         int
	DescriptionView string
}

func RenderDetailPanel(data DetailPanelData) string {
	if strings.TrimSpace(data.Title) == "" {
		return "detail:\n(no selection)"
	}
	var b strings.Builder
	b.WriteString("detail:\n")
	b.WriteString(fmt.Sprintf("task: %s\n", data.Title))
	b.WriteString(fmt.Sprintf("priority: %s | quadrant: %s", data.Priority, data.Quadrant))
	if data.Manual {
		b.WriteString(" (pinned)")
	}
	b.WriteString("\n")
	if data.Deadline != "" {
		b.WriteString(fmt.Sprintf("deadline: %s", data.Deadline))
		if data.Countdown != "" {
			b.WriteString(" (" + data.Countdown + ")")
		}
		b.WriteString("\n")
	}
	if data.Estimate != "" {
		b.WriteString(fmt.Sprintf("estimate: %sm (%s)\n", data.Estimate, data.Category))
	}
	state := "paused"
	if data.Running {
		state = "running"
	}
	b.WriteString(fmt.Sprintf("stopwatch: %s (%s)\n", data.Stopwatch, state))
	if data.ProgressView != "" {
		b.WriteString(fmt.Sprintf("substeps: %s %d%%\n", data.ProgressView, data.Percent))
	}
	if data.DescriptionView != "" {
		b.WriteString("\n" + data.DescriptionView)
	}
	return strings.TrimSpace(b.String())
}

type HabitRowData struct {
	Selected bool
	Checked  bool
	Text     string
}

type NotesPanelData struct {
	Theme      string
	QuickNotes []string
	SleepGoal  string
	Habits     []HabitRowData
	EditView   string
	Editing    bool
	EditField  string
}

func RenderNotesPanel(data NotesPanelData) string {
	var b strings.Builder
	b.WriteString("notes:\n")
	b.WriteString(fmt.Sprintf("theme: %s | sleep goal: %s\n", data.Theme, emptyDash(data.SleepGoal)))
	b.WriteString("actions: [e]dit [T]heme [H]abit-add [D]el [space]check [j/k]move\n")
	if data.Editing {
		b.WriteString(fmt.Sprintf("edit %s: %s\n", data.EditField, data.EditView))
	}
	b.WriteString("quick notes:\n")
	for i, note := range data.QuickNotes {
		b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, emptyDash(note)))
	}
	b.WriteString("habits:\n")
	if len(data.Habits) == 0 {
		b.WriteString("  (none)")
	}
	for _, h := range data.Habits {
		cursor := " "
		if h.Selected {
			cursor = ">"
		}
		check := "[ ]"
		if h.Checked {
			check = "[x]"
		}
		b.WriteString(fmt.Sprintf("  %s %s %s\n", cursor, check, h.Text))
	}
	return strings.TrimSpace(b.String())
}

type PastePromptData struct {
	Title     string
	StepCount int
	Seconds   int
}

func RenderPastePrompt(data PastePromptData) string {
	return fmt.Sprintf(
		"paste:\ncreate %q with %d substeps?\n[enter] apply  [esc] dismiss  (auto-dismiss in %ds)",
		data.Title, data.StepCount, data.Seconds,
	)
}

func emptyDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func priorityBadge(priority string) string {
	switch priority {
	case "High":
		return "[!]"
	case "Low":
		return "[.]"
	default:
		return "[-]"
	}
}
