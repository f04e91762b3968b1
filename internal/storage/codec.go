package storage

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/focusboard/focusboard/internal/model"
)

// Record keys. Each is an independent document.
const (
	KeyTasks = "tasks"
	KeyPrefs = "prefs"
)

// snapshotVersion 1 was the single-key legacy layout; see legacy.go.
const snapshotVersion = 2

const deadlineLayout = "2006-01-02"

// The wire schema keeps the historical string-typed fields (isUrgent,
// isImportant, elapsedMs, etaMin) for compatibility with records written by
// earlier builds. Booleans and integers are real types everywhere else in
// the program; the conversion lives only here.
type snapshotDoc struct {
	Version  int          `json:"version"`
	SortMode string       `json:"sortMode,omitempty"`
	Tasks    []taskRecord `json:"tasks"`
}

type taskRecord struct {
	ID           string          `json:"id"`
	Text         string          `json:"text"`
	Desc         string          `json:"desc"`
	Deadline     string          `json:"deadline"`
	EtaMin       string          `json:"etaMin"`
	Priority     string          `json:"priority,omitempty"`
	Completed    bool            `json:"completed"`
	IsUrgent     string          `json:"isUrgent"`
	IsImportant  string          `json:"isImportant"`
	Manual       bool            `json:"manual,omitempty"`
	ElapsedMs    string          `json:"elapsedMs"`
	TimerRunning bool            `json:"timerRunning,omitempty"`
	Collapsed    bool            `json:"collapsed"`
	Substeps     []substepRecord `json:"substeps"`
}

type substepRecord struct {
	ID           string `json:"id"`
	Text         string `json:"text"`
	Completed    bool   `json:"completed"`
	EtaMin       string `json:"etaMin"`
	ElapsedMs    string `json:"elapsedMs"`
	TimerRunning bool   `json:"timerRunning,omitempty"`
}

func EncodeSnapshot(tasks []model.Task, sortMode model.SortMode) ([]byte, error) {
	doc := snapshotDoc{
		Version:  snapshotVersion,
		SortMode: string(sortMode),
		Tasks:    make([]taskRecord, 0, len(tasks)),
	}
	for _, t := range tasks {
		doc.Tasks = append(doc.Tasks, encodeTask(t))
	}
	return json.Marshal(doc)
}

// DecodeSnapshot is forward compatible: unknown fields are ignored and
// missing optional fields default. Records without an id or text are
// skipped rather than treated as an error.
func DecodeSnapshot(data []byte) ([]model.Task, model.SortMode, error) {
	var doc snapshotDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, "", err
	}
	tasks := make([]model.Task, 0, len(doc.Tasks))
	for _, rec := range doc.Tasks {
		if strings.TrimSpace(rec.ID) == "" || strings.TrimSpace(rec.Text) == "" {
			continue
		}
		tasks = append(tasks, decodeTask(rec))
	}
	mode := model.SortMode(doc.SortMode)
	if !mode.IsValid() {
		mode = model.SortByUrgency
	}
	return tasks, mode, nil
}

// LoadTasks reads the snapshot record. A missing or malformed record loads
// as an empty store rather than failing.
func LoadTasks(ctx context.Context, kv KV) ([]model.Task, model.SortMode, error) {
	raw, ok, err := kv.Get(ctx, KeyTasks)
	if err != nil {
		return nil, model.SortByUrgency, err
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return []model.Task{}, model.SortByUrgency, nil
	}
	tasks, mode, decodeErr := DecodeSnapshot([]byte(raw))
	if decodeErr != nil {
		return []model.Task{}, model.SortByUrgency, nil
	}
	return tasks, mode, nil
}

func SaveTasks(ctx context.Context, kv KV, tasks []model.Task, sortMode model.SortMode) error {
	data, err := EncodeSnapshot(tasks, sortMode)
	if err != nil {
		return err
	}
	return kv.Put(ctx, KeyTasks, string(data))
}

func encodeTask(t model.Task) taskRecord {
	rec := taskRecord{
		ID:           t.ID,
		Text:         t.Text,
		Desc:         t.Description,
		Deadline:     formatDeadline(t.Deadline),
		EtaMin:       formatEstimate(t.EstimateMin),
		Priority:     string(t.Priority),
		Completed:    t.Completed,
		IsUrgent:     strconv.FormatBool(t.Urgent),
		IsImportant:  strconv.FormatBool(t.Important),
		Manual:       t.ManuallyClassified,
		ElapsedMs:    strconv.FormatInt(t.ElapsedMs, 10),
		TimerRunning: t.TimerRunning,
		Collapsed:    t.Collapsed,
		Substeps:     make([]substepRecord, 0, len(t.Substeps)),
	}
	for _, s := range t.Substeps {
		rec.Substeps = append(rec.Substeps, substepRecord{
			ID:           s.ID,
			Text:         s.Text,
			Completed:    s.Completed,
			EtaMin:       formatEstimate(s.EstimateMin),
			ElapsedMs:    strconv.FormatInt(s.ElapsedMs, 10),
			TimerRunning: s.TimerRunning,
		})
	}
	return rec
}

func decodeTask(rec taskRecord) model.Task {
	t := model.Task{
		ID:                 rec.ID,
		Text:               rec.Text,
		Description:        rec.Desc,
		Priority:           model.Priority(rec.Priority),
		Deadline:           parseDeadline(rec.Deadline),
		EstimateMin:        parseEstimate(rec.EtaMin),
		Completed:          rec.Completed,
		Urgent:             rec.IsUrgent == "true",
		Important:          rec.IsImportant == "true",
		ManuallyClassified: rec.Manual,
		Collapsed:          rec.Collapsed,
	}
	if !t.Priority.IsValid() {
		t.Priority = model.PriorityMedium
	}
	t.ElapsedMs = parseElapsed(rec.ElapsedMs)
	t.TimerRunning = rec.TimerRunning
	for _, s := range rec.Substeps {
		if strings.TrimSpace(s.ID) == "" || strings.TrimSpace(s.Text) == "" {
			continue
		}
		step := model.Substep{
			ID:          s.ID,
			Text:        s.Text,
			Completed:   s.Completed,
			EstimateMin: parseEstimate(s.EtaMin),
		}
		step.ElapsedMs = parseElapsed(s.ElapsedMs)
		step.TimerRunning = s.TimerRunning
		t.Substeps = append(t.Substeps, step)
	}
	return t
}

func formatDeadline(v *time.Time) string {
	if v == nil {
		return ""
	}
	return v.Format(deadlineLayout)
}

func parseDeadline(v string) *time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	parsed, err := time.ParseInLocation(deadlineLayout, v, time.Local)
	if err != nil {
		return nil
	}
	return &parsed
}

func formatEstimate(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func parseEstimate(v string) *int {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	parsed, err := strconv.Atoi(v)
	if err != nil || parsed < 0 {
		return nil
	}
	return &parsed
}

func parseElapsed(v string) int64 {
	parsed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil || parsed < 0 {
		return 0
	}
	return parsed
}
