package storage

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/focusboard/focusboard/internal/model"
)

func intPtr(v int) *int { return &v }

func TestSnapshotRoundTrip(t *testing.T) {
	deadline := time.Date(2026, 4, 15, 0, 0, 0, 0, time.Local)
	tasks := []model.Task{
		{
			ID:                 "t1",
			Text:               "write launch notes",
			Description:        "# Draft\nsome markdown",
			Priority:           model.PriorityHigh,
			Deadline:           &deadline,
			EstimateMin:        intPtr(45),
			Urgent:             true,
			Important:          true,
			ManuallyClassified: true,
			Collapsed:          true,
			Stopwatch:          model.Stopwatch{ElapsedMs: 65000, TimerRunning: false},
			Substeps: []model.Substep{
				{ID: "s1", Text: "outline", Completed: true, EstimateMin: intPtr(10)},
				{ID: "s2", Text: "review", Stopwatch: model.Stopwatch{ElapsedMs: 3000, TimerRunning: true}},
			},
		},
		{ID: "t2", Text: "no extras", Priority: model.PriorityLow},
	}

	data, err := EncodeSnapshot(tasks, model.SortByQuadrant)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, mode, err := DecodeSnapshot(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if mode != model.SortByQuadrant {
		t.Fatalf("sort mode = %s", mode)
	}
	if len(got) != 2 {
		t.Fatalf("decoded %d tasks", len(got))
	}

	first := got[0]
	if first.ElapsedMs != 65000 || first.TimerRunning {
		t.Fatalf("stopwatch = %d/%v, want 65000 paused", first.ElapsedMs, first.TimerRunning)
	}
	if !first.Urgent || !first.Important || !first.ManuallyClassified {
		t.Fatalf("classification lost: %+v", first)
	}
	if first.Deadline == nil || !first.Deadline.Equal(deadline) {
		t.Fatalf("deadline = %v", first.Deadline)
	}
	if first.EstimateMin == nil || *first.EstimateMin != 45 {
		t.Fatalf("estimate = %v", first.EstimateMin)
	}
	if len(first.Substeps) != 2 || !first.Substeps[1].TimerRunning || first.Substeps[1].ElapsedMs != 3000 {
		t.Fatalf("substeps = %+v", first.Substeps)
	}

	second := got[1]
	if second.Deadline != nil || second.EstimateMin != nil || second.ElapsedMs != 0 {
		t.Fatalf("empty optionals not preserved: %+v", second)
	}
}

// The wire format keeps flags and milliseconds as strings; in-memory state
// must still come back as real types.
func TestSnapshotWireTypes(t *testing.T) {
	data, err := EncodeSnapshot([]model.Task{{
		ID:        "t1",
		Text:      "wire check",
		Priority:  model.PriorityMedium,
		Urgent:    true,
		Stopwatch: model.Stopwatch{ElapsedMs: 1234},
	}}, model.SortByUrgency)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	var raw struct {
		Version int `json:"version"`
		Tasks   []struct {
			IsUrgent    string `json:"isUrgent"`
			IsImportant string `json:"isImportant"`
			ElapsedMs   string `json:"elapsedMs"`
		} `json:"tasks"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal raw: %v", err)
	}
	if raw.Version != 2 {
		t.Fatalf("version = %d", raw.Version)
	}
	if raw.Tasks[0].IsUrgent != "true" || raw.Tasks[0].IsImportant != "false" {
		t.Fatalf("flags on the wire: %+v", raw.Tasks[0])
	}
	if raw.Tasks[0].ElapsedMs != "1234" {
		t.Fatalf("elapsedMs on the wire: %q", raw.Tasks[0].ElapsedMs)
	}
}

func TestDecodeSnapshotTolerant(t *testing.T) {
	doc := `{
		"version": 2,
		"sortMode": "sideways",
		"tasks": [
			{"id": "", "text": "no id"},
			{"id": "t1", "text": "  "},
			{"id": "t2", "text": "kept", "priority": "Extreme", "etaMin": "nope", "elapsedMs": "-7",
			 "isUrgent": "yes", "substeps": [{"id": "", "text": "dropped"}, {"id": "s1", "text": "kept step"}]},
			{"id": "t3", "text": "extra fields", "unknown": {"nested": true}}
		]
	}`
	tasks, mode, err := DecodeSnapshot([]byte(doc))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if mode != model.SortByUrgency {
		t.Fatalf("invalid sort mode must default to urgency, got %s", mode)
	}
	if len(tasks) != 2 {
		t.Fatalf("decoded %d tasks, want 2", len(tasks))
	}
	kept := tasks[0]
	if kept.Priority != model.PriorityMedium {
		t.Fatalf("invalid priority must default to Medium, got %s", kept.Priority)
	}
	if kept.EstimateMin != nil || kept.ElapsedMs != 0 || kept.Urgent {
		t.Fatalf("malformed fields not defaulted: %+v", kept)
	}
	if len(kept.Substeps) != 1 || kept.Substeps[0].Text != "kept step" {
		t.Fatalf("substeps = %+v", kept.Substeps)
	}
}

func TestLoadTasksMissingOrMalformed(t *testing.T) {
	kv := openTestKV(t)

	tasks, mode, err := LoadTasks(t.Context(), kv)
	if err != nil || len(tasks) != 0 || mode != model.SortByUrgency {
		t.Fatalf("missing record: tasks=%v mode=%s err=%v", tasks, mode, err)
	}

	if err := kv.Put(t.Context(), KeyTasks, "{not json"); err != nil {
		t.Fatalf("put: %v", err)
	}
	tasks, mode, err = LoadTasks(t.Context(), kv)
	if err != nil || len(tasks) != 0 || mode != model.SortByUrgency {
		t.Fatalf("malformed record: tasks=%v mode=%s err=%v", tasks, mode, err)
	}
}

func TestSaveThenLoadTasks(t *testing.T) {
	kv := openTestKV(t)
	in := []model.Task{{ID: "t1", Text: "persisted", Priority: model.PriorityHigh}}

	if err := SaveTasks(t.Context(), kv, in, model.SortByDeadline); err != nil {
		t.Fatalf("save: %v", err)
	}
	out, mode, err := LoadTasks(t.Context(), kv)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != 1 || out[0].Text != "persisted" || mode != model.SortByDeadline {
		t.Fatalf("round trip: tasks=%+v mode=%s", out, mode)
	}
}
