// Package board owns the ordered task collection and keeps its derived
// state consistent: every mutation ends with a synchronous settle pass that
// reclassifies, resorts, rolls up substep completion and notifies the
// persistence observer.
package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/focusboard/focusboard/internal/model"
)

var (
	ErrTaskNotFound    = errors.New("board: task not found")
	ErrSubstepNotFound = errors.New("board: substep not found")
	ErrEntityNotFound  = errors.New("board: no task or substep with that id")
	ErrHasSubsteps     = errors.New("board: completion is derived from substeps")
)

// Board is the single authoritative task store. It is not safe for
// concurrent use; the TUI event loop is its only caller.
type Board struct {
	tasks    []model.Task
	sortMode model.SortMode
	counters Counters
	now      func() time.Time
	onChange func()
}

func New(now func() time.Time) *Board {
	if now == nil {
		now = time.Now
	}
	return &Board{
		tasks:    []model.Task{},
		sortMode: model.SortByUrgency,
		now:      now,
	}
}

// SetOnChange registers the observer invoked at the end of every settle
// pass. The observer is where persistence happens; it must not mutate the
// board re-entrantly.
func (b *Board) SetOnChange(fn func()) {
	b.onChange = fn
}

// Restore replaces the whole collection, normally right after decoding a
// persisted snapshot, and runs a settle pass so derived state is consistent
// before the first render.
func (b *Board) Restore(tasks []model.Task, sortMode model.SortMode) {
	b.tasks = make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if strings.TrimSpace(t.ID) == "" || strings.TrimSpace(t.Text) == "" {
			continue
		}
		if !t.Priority.IsValid() {
			t.Priority = model.PriorityMedium
		}
		b.tasks = append(b.tasks, t.Clone())
	}
	if sortMode.IsValid() {
		b.sortMode = sortMode
	}
	b.settle()
}

// Tasks returns deep copies in display order.
func (b *Board) Tasks() []model.Task {
	out := make([]model.Task, len(b.tasks))
	for i, t := range b.tasks {
		out[i] = t.Clone()
	}
	return out
}

func (b *Board) Task(id string) (model.Task, error) {
	idx := b.findTask(id)
	if idx < 0 {
		return model.Task{}, ErrTaskNotFound
	}
	return b.tasks[idx].Clone(), nil
}

func (b *Board) Len() int { return len(b.tasks) }

func (b *Board) SortMode() model.SortMode { return b.sortMode }

func (b *Board) SetSortMode(mode model.SortMode) error {
	if !mode.IsValid() {
		return fmt.Errorf("board: invalid sort mode %q", mode)
	}
	b.sortMode = mode
	b.settle()
	return nil
}

func (b *Board) CycleSortMode() model.SortMode {
	b.sortMode = b.sortMode.Next()
	b.settle()
	return b.sortMode
}

// AddTask appends a task with default fields. Empty text is rejected with
// no state change.
func (b *Board) AddTask(text string) (model.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Task{}, model.ErrEmptyText
	}
	task := model.Task{
		ID:       model.NewID(),
		Text:     text,
		Priority: model.PriorityMedium,
	}
	b.tasks = append(b.tasks, task)
	b.settle()
	return b.mustTask(task.ID), nil
}

// AddComposite creates a task plus ordered substeps in one mutation; the
// smart-paste flow lands here.
func (b *Board) AddComposite(title, description string, steps []string) (model.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Task{}, model.ErrEmptyText
	}
	task := model.Task{
		ID:          model.NewID(),
		Text:        title,
		Description: description,
		Priority:    model.PriorityMedium,
	}
	for _, step := range steps {
		step = strings.TrimSpace(step)
		if step == "" {
			continue
		}
		task.Substeps = append(task.Substeps, model.Substep{ID: model.NewID(), Text: step})
	}
	b.tasks = append(b.tasks, task)
	b.settle()
	return b.mustTask(task.ID), nil
}

func (b *Board) UpdateTaskText(id, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.ErrEmptyText
	}
	idx := b.findTask(id)
	if idx < 0 {
		return ErrTaskNotFound
	}
	b.tasks[idx].Text = text
	b.settle()
	return nil
}

func (b *Board) SetDescription(id, description string) error {
	idx := b.findTask(id)
	if idx < 0 {
		return ErrTaskNotFound
	}
	b.tasks[idx].Description = description
	b.settle()
	return nil
}

func (b *Board) SetPriority(id string, priority model.Priority) error {
	if !priority.IsValid() {
		return fmt.Errorf("%w: %q", model.ErrInvalidPriority, priority)
	}
	idx := b.findTask(id)
	if idx < 0 {
		return ErrTaskNotFound
	}
	b.tasks[idx].Priority = priority
	b.settle()
	return nil
}

// SetDeadline sets or clears (nil) the calendar deadline.
func (b *Board) SetDeadline(id string, deadline *time.Time) error {
	idx := b.findTask(id)
	if idx < 0 {
		return ErrTaskNotFound
	}
	if deadline == nil {
		b.tasks[idx].Deadline = nil
	} else {
		y, m, d := deadline.Date()
		day := time.Date(y, m, d, 0, 0, 0, 0, deadline.Location())
		b.tasks[idx].Deadline = &day
	}
	b.settle()
	return nil
}

// SetEstimateInput parses raw user input for the effort estimate. Anything
// that is not a non-negative integer clears the field instead of storing an
// invalid value.
func (b *Board) SetEstimateInput(id, raw string) error {
	idx := b.findTask(id)
	if idx < 0 {
		return ErrTaskNotFound
	}
	b.tasks[idx].EstimateMin = parseEstimate(raw)
	b.settle()
	return nil
}

// ToggleTaskCompleted flips direct completion. It refuses when substeps
// exist: the roll-up owns the flag then.
func (b *Board) ToggleTaskCompleted(id string) (model.Task, error) {
	idx := b.findTask(id)
	if idx < 0 {
		return model.Task{}, ErrTaskNotFound
	}
	if len(b.tasks[idx].Substeps) > 0 {
		return model.Task{}, ErrHasSubsteps
	}
	b.tasks[idx].Completed = !b.tasks[idx].Completed
	b.settle()
	return b.mustTask(id), nil
}

// SetClassification applies an explicit urgent/important override and pins
// the task against automatic re-derivation.
func (b *Board) SetClassification(id string, urgent, important bool) error {
	idx := b.findTask(id)
	if idx < 0 {
		return ErrTaskNotFound
	}
	b.tasks[idx].SetClassification(urgent, important)
	b.settle()
	return nil
}

// MoveToQuadrant is the matrix drag analogue; it is an explicit override.
func (b *Board) MoveToQuadrant(id string, quadrant model.Quadrant) error {
	switch quadrant {
	case model.QuadrantDoFirst:
		return b.SetClassification(id, true, true)
	case model.QuadrantSchedule:
		return b.SetClassification(id, false, true)
	case model.QuadrantDelegate:
		return b.SetClassification(id, true, false)
	case model.QuadrantEliminate:
		return b.SetClassification(id, false, false)
	default:
		return fmt.Errorf("board: invalid quadrant %q", quadrant)
	}
}

func (b *Board) ToggleCollapsed(id string) error {
	idx := b.findTask(id)
	if idx < 0 {
		return ErrTaskNotFound
	}
	b.tasks[idx].Collapsed = !b.tasks[idx].Collapsed
	b.settle()
	return nil
}

// DeleteTask removes the task permanently, cascading to its substeps and
// their stopwatches.
func (b *Board) DeleteTask(id string) error {
	idx := b.findTask(id)
	if idx < 0 {
		return ErrTaskNotFound
	}
	b.tasks = append(b.tasks[:idx], b.tasks[idx+1:]...)
	b.settle()
	return nil
}

func (b *Board) AddSubstep(taskID, text string) (model.Substep, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Substep{}, model.ErrEmptyText
	}
	idx := b.findTask(taskID)
	if idx < 0 {
		return model.Substep{}, ErrTaskNotFound
	}
	step := model.Substep{ID: model.NewID(), Text: text}
	b.tasks[idx].Substeps = append(b.tasks[idx].Substeps, step)
	b.settle()
	return step, nil
}

func (b *Board) UpdateSubstepText(taskID, substepID, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.ErrEmptyText
	}
	ti, si := b.findSubstep(taskID, substepID)
	if ti < 0 {
		return ErrSubstepNotFound
	}
	b.tasks[ti].Substeps[si].Text = text
	b.settle()
	return nil
}

func (b *Board) ToggleSubstep(taskID, substepID string) error {
	ti, si := b.findSubstep(taskID, substepID)
	if ti < 0 {
		return ErrSubstepNotFound
	}
	b.tasks[ti].Substeps[si].Completed = !b.tasks[ti].Substeps[si].Completed
	b.settle()
	return nil
}

func (b *Board) SetSubstepEstimateInput(taskID, substepID, raw string) error {
	ti, si := b.findSubstep(taskID, substepID)
	if ti < 0 {
		return ErrSubstepNotFound
	}
	b.tasks[ti].Substeps[si].EstimateMin = parseEstimate(raw)
	b.settle()
	return nil
}

func (b *Board) DeleteSubstep(taskID, substepID string) error {
	ti, si := b.findSubstep(taskID, substepID)
	if ti < 0 {
		return ErrSubstepNotFound
	}
	steps := b.tasks[ti].Substeps
	b.tasks[ti].Substeps = append(steps[:si], steps[si+1:]...)
	b.settle()
	return nil
}

// StartStopwatch starts the stopwatch on a task or substep. Starting a
// running stopwatch is a no-op, so duplicate tickers cannot appear.
func (b *Board) StartStopwatch(id string) error {
	sw := b.findStopwatch(id)
	if sw == nil {
		return ErrEntityNotFound
	}
	sw.Start()
	b.settle()
	return nil
}

func (b *Board) PauseStopwatch(id string) error {
	sw := b.findStopwatch(id)
	if sw == nil {
		return ErrEntityNotFound
	}
	sw.Pause()
	b.settle()
	return nil
}

func (b *Board) ResetStopwatch(id string) error {
	sw := b.findStopwatch(id)
	if sw == nil {
		return ErrEntityNotFound
	}
	sw.Reset()
	b.settle()
	return nil
}

// Tick advances every running stopwatch by one increment and reports
// whether any stopwatch is still running. Each tick is an observable
// mutation, so it settles (and therefore persists) like any other.
func (b *Board) Tick() bool {
	changed := false
	for i := range b.tasks {
		if b.tasks[i].Stopwatch.Tick() {
			changed = true
		}
		for j := range b.tasks[i].Substeps {
			if b.tasks[i].Substeps[j].Stopwatch.Tick() {
				changed = true
			}
		}
	}
	if changed {
		b.settle()
	}
	return b.AnyStopwatchRunning()
}

func (b *Board) AnyStopwatchRunning() bool {
	for i := range b.tasks {
		if b.tasks[i].TimerRunning {
			return true
		}
		for j := range b.tasks[i].Substeps {
			if b.tasks[i].Substeps[j].TimerRunning {
				return true
			}
		}
	}
	return false
}

func (b *Board) Counters() Counters { return b.counters }

// settle is the re-derivation pipeline run after every mutation:
// classify, sort, summarize, then notify the persistence observer. It is
// idempotent; running it twice with no intervening mutation changes
// nothing.
func (b *Board) settle() {
	now := b.now()
	for i := range b.tasks {
		model.Classify(&b.tasks[i], now)
	}
	model.SortTasks(b.tasks, b.sortMode)
	b.recomputeSummaries()
	if b.onChange != nil {
		b.onChange()
	}
}

func (b *Board) findTask(id string) int {
	for i := range b.tasks {
		if b.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (b *Board) findSubstep(taskID, substepID string) (int, int) {
	ti := b.findTask(taskID)
	if ti < 0 {
		return -1, -1
	}
	for si := range b.tasks[ti].Substeps {
		if b.tasks[ti].Substeps[si].ID == substepID {
			return ti, si
		}
	}
	return -1, -1
}

func (b *Board) findStopwatch(id string) *model.Stopwatch {
	for i := range b.tasks {
		if b.tasks[i].ID == id {
			return &b.tasks[i].Stopwatch
		}
		for j := range b.tasks[i].Substeps {
			if b.tasks[i].Substeps[j].ID == id {
				return &b.tasks[i].Substeps[j].Stopwatch
			}
		}
	}
	return nil
}

func (b *Board) mustTask(id string) model.Task {
	idx := b.findTask(id)
	if idx < 0 {
		return model.Task{}
	}
	return b.tasks[idx].Clone()
}

func parseEstimate(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return nil
	}
	return &v
}
