package storage

import (
	"context"
	"encoding/json"
	"strings"
)

const quickNoteSlots = 4

// Preferences is the dashboard-level record: theme, free-text quick notes,
// sleep goal and the habit checklist. It lives under its own key,
// independent of the task snapshot.
type Preferences struct {
	Theme      string                 `json:"theme"`
	QuickNotes [quickNoteSlots]string `json:"quickNotes"`
	SleepGoal  string                 `json:"sleepGoal"`
	Habits     []Habit                `json:"habits"`
}

type Habit struct {
	Text    string `json:"text"`
	Checked bool   `json:"checked"`
}

func DefaultPreferences() Preferences {
	return Preferences{Theme: "dark", Habits: []Habit{}}
}

// LoadPreferences tolerates a missing or malformed record by returning the
// defaults; habit rows without text are skipped.
func LoadPreferences(ctx context.Context, kv KV) (Preferences, error) {
	raw, ok, err := kv.Get(ctx, KeyPrefs)
	if err != nil {
		return DefaultPreferences(), err
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return DefaultPreferences(), nil
	}
	var prefs Preferences
	if err := json.Unmarshal([]byte(raw), &prefs); err != nil {
		return DefaultPreferences(), nil
	}
	if strings.TrimSpace(prefs.Theme) == "" {
		prefs.Theme = "dark"
	}
	kept := make([]Habit, 0, len(prefs.Habits))
	for _, h := range prefs.Habits {
		if strings.TrimSpace(h.Text) == "" {
			continue
		}
		kept = append(kept, h)
	}
	prefs.Habits = kept
	return prefs, nil
}

func SavePreferences(ctx context.Context, kv KV, prefs Preferences) error {
	data, err := json.Marshal(prefs)
	if err != nil {
		return err
	}
	return kv.Put(ctx, KeyPrefs, string(data))
}
