package storage

import (
	"testing"

	"github.com/focusboard/focusboard/internal/model"
)

func TestMigrateLegacySplitsRecord(t *testing.T) {
	kv := openTestKV(t)
	ctx := t.Context()

	legacy := `{"theme":"light","notes":"call the bank","tasks":[{"text":"pay rent","completed":true},{"text":"  "},{"text":"buy groceries"}]}`
	if err := kv.Put(ctx, "focusboard", legacy); err != nil {
		t.Fatalf("seed legacy: %v", err)
	}

	migrated, err := MigrateLegacy(ctx, kv)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if !migrated {
		t.Fatal("expected migration to run")
	}

	prefs, err := LoadPreferences(ctx, kv)
	if err != nil {
		t.Fatalf("load prefs: %v", err)
	}
	if prefs.Theme != "light" || prefs.QuickNotes[0] != "call the bank" {
		t.Fatalf("prefs = %+v", prefs)
	}

	tasks, mode, err := LoadTasks(ctx, kv)
	if err != nil {
		t.Fatalf("load tasks: %v", err)
	}
	if mode != model.SortByUrgency {
		t.Fatalf("mode = %s", mode)
	}
	if len(tasks) != 2 {
		t.Fatalf("tasks = %+v", tasks)
	}
	if tasks[0].ID == "" || tasks[1].ID == "" || tasks[0].ID == tasks[1].ID {
		t.Fatalf("migrated tasks need distinct generated ids: %+v", tasks)
	}
	if tasks[0].Text != "pay rent" || !tasks[0].Completed {
		t.Fatalf("first task = %+v", tasks[0])
	}

	if _, ok, _ := kv.Get(ctx, "focusboard"); ok {
		t.Fatal("legacy key survived migration")
	}
}

func TestMigrateLegacySkipsWhenCurrentRecordsExist(t *testing.T) {
	kv := openTestKV(t)
	ctx := t.Context()

	if err := SaveTasks(ctx, kv, nil, model.SortByUrgency); err != nil {
		t.Fatalf("seed tasks: %v", err)
	}
	if err := kv.Put(ctx, "focusboard", `{"theme":"light"}`); err != nil {
		t.Fatalf("seed legacy: %v", err)
	}

	migrated, err := MigrateLegacy(ctx, kv)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if migrated {
		t.Fatal("migration must not run over current-format records")
	}
	if _, ok, _ := kv.Get(ctx, "focusboard"); !ok {
		t.Fatal("legacy key must be left in place when skipped")
	}
}

func TestMigrateLegacyUnreadableRecord(t *testing.T) {
	kv := openTestKV(t)
	ctx := t.Context()

	if err := kv.Put(ctx, "focusboard", "{broken"); err != nil {
		t.Fatalf("seed legacy: %v", err)
	}
	migrated, err := MigrateLegacy(ctx, kv)
	if err != nil || migrated {
		t.Fatalf("unreadable legacy: migrated=%v err=%v", migrated, err)
	}
	if _, ok, _ := kv.Get(ctx, "focusboard"); !ok {
		t.Fatal("unreadable legacy data must stay in place")
	}
}

func TestPreferencesRoundTripAndDefaults(t *testing.T) {
	kv := openTestKV(t)
	ctx := t.Context()

	prefs, err := LoadPreferences(ctx, kv)
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if prefs.Theme != "dark" || len(prefs.Habits) != 0 {
		t.Fatalf("defaults = %+v", prefs)
	}

	prefs.Theme = "light"
	prefs.QuickNotes[2] = "standup at 10"
	prefs.SleepGoal = "23:00"
	prefs.Habits = []Habit{{Text: "stretch", Checked: true}, {Text: "   "}}
	if err := SavePreferences(ctx, kv, prefs); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := LoadPreferences(ctx, kv)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Theme != "light" || got.QuickNotes[2] != "standup at 10" || got.SleepGoal != "23:00" {
		t.Fatalf("reloaded = %+v", got)
	}
	if len(got.Habits) != 1 || got.Habits[0].Text != "stretch" || !got.Habits[0].Checked {
		t.Fatalf("habit rows without text must be dropped: %+v", got.Habits)
	}
}
