package storage

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/focusboard/focusboard/internal/model"
)

// legacyKey held the original single-record layout: one flat, unversioned
// object with the theme and bare task texts, no task IDs.
const legacyKey = "focusboard"

type legacyDoc struct {
	Theme string       `json:"theme"`
	Notes string       `json:"notes"`
	Tasks []legacyTask `json:"tasks"`
}

type legacyTask struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// MigrateLegacy detects the old single-key record and splits it one time
// into the current prefs and tasks records, generating the task IDs the old
// format lacked. The legacy key is removed afterwards. Nothing happens when
// current-format records already exist.
func MigrateLegacy(ctx context.Context, kv KV) (bool, error) {
	if _, ok, err := kv.Get(ctx, KeyTasks); err != nil || ok {
		return false, err
	}
	if _, ok, err := kv.Get(ctx, KeyPrefs); err != nil || ok {
		return false, err
	}

	raw, ok, err := kv.Get(ctx, legacyKey)
	if err != nil || !ok {
		return false, err
	}

	var doc legacyDoc
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		// Unreadable legacy data: leave it in place and start empty.
		return false, nil
	}

	prefs := DefaultPreferences()
	if strings.TrimSpace(doc.Theme) != "" {
		prefs.Theme = doc.Theme
	}
	if strings.TrimSpace(doc.Notes) != "" {
		prefs.QuickNotes[0] = doc.Notes
	}
	if err := SavePreferences(ctx, kv, prefs); err != nil {
		return false, err
	}

	tasks := make([]model.Task, 0, len(doc.Tasks))
	for _, lt := range doc.Tasks {
		text := strings.TrimSpace(lt.Text)
		if text == "" {
			continue
		}
		tasks = append(tasks, model.Task{
			ID:        model.NewID(),
			Text:      text,
			Priority:  model.PriorityMedium,
			Completed: lt.Completed,
		})
	}
	if err := SaveTasks(ctx, kv, tasks, model.SortByUrgency); err != nil {
		return false, err
	}

	if err := kv.Delete(ctx, legacyKey); err != nil {
		return false, err
	}
	return true, nil
}
