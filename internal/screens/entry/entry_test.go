package entry

import (
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/scorebook/internal/screen/screentest"
)

func TestEntryScreen_FieldsPerSubject(t *testing.T) {
	env, _ := screentest.NewEnv(t, "Math", "English")
	e := New(env)
	if len(e.fields) != 4 {
		t.Fatalf("fields = %d, want name, date and two scores", len(e.fields))
	}
	view := ansi.Strip(e.View(80, 40))
	for _, want := range []string{"Test name", "Date", "Math", "English", "Add test"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, "Cancel") {
		t.Error("cancel button only shows while editing")
	}
}

func fill(e *EntryScreen, values ...string) {
	for i, v := range values {
		e.fields[i].SetValue(v)
	}
}

func TestEntryScreen_SubmitCreates(t *testing.T) {
	env, _ := screentest.NewEnv(t, "Math", "English")
	e := New(env)
	fill(e, "Midterm", "2024-05-01", "80", "70")

	e.Update(tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl})

	attempts := env.Tracker.Attempts()
	if len(attempts) != 1 {
		t.Fatalf("attempts = %d, want 1", len(attempts))
	}
	if attempts[0].Total != 150 {
		t.Errorf("total = %d, want 150", attempts[0].Total)
	}
	if e.fields[0].Value() != "" {
		t.Error("form should reset after submit")
	}
	if !strings.Contains(ansi.Strip(e.View(80, 40)), "Added Midterm.") {
		t.Error("expected success notice")
	}
}

func TestEntryScreen_EnterOnSubmitButton(t *testing.T) {
	env, _ := screentest.NewEnv(t, "Math")
	e := New(env)
	fill(e, "Quiz", "", "42")
	for e.focus != e.submitIndex() {
		e.Update(screentest.SpecialKey(tea.KeyTab))
	}
	e.Update(screentest.SpecialKey(tea.KeyEnter))

	if got := env.Tracker.Attempts(); len(got) != 1 || got[0].Total != 42 {
		t.Fatalf("attempts = %+v", got)
	}
}

func TestEntryScreen_RequiresName(t *testing.T) {
	env, repo := screentest.NewEnv(t, "Math")
	e := New(env)
	fill(e, "   ", "", "50")
	e.focus = e.submitIndex()
	e.Update(screentest.SpecialKey(tea.KeyEnter))

	if len(env.Tracker.Attempts()) != 0 || repo.Saves != 0 {
		t.Fatal("invalid entry must not be stored")
	}
	if e.focus != fieldName {
		t.Error("expected focus on the name field")
	}
	if !strings.Contains(ansi.Strip(e.View(80, 40)), "test name is required") {
		t.Error("expected validation notice")
	}
}

func TestEntryScreen_EditMergesAndReturnsToAdd(t *testing.T) {
	env, _ := screentest.NewEnv(t, "Math", "English")
	a := screentest.AddTest(t, env, "Midterm", map[string]string{"Math": "80", "English": "70"})

	e, err := NewEdit(env, a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if e.Title() != "Edit test" {
		t.Errorf("Title = %q", e.Title())
	}
	if e.fields[2].Value() != "80" || e.fields[3].Value() != "70" {
		t.Fatalf("prefill = %q %q", e.fields[2].Value(), e.fields[3].Value())
	}
	view := ansi.Strip(e.View(80, 40))
	if !strings.Contains(view, "Update test") || !strings.Contains(view, "Cancel") {
		t.Error("edit mode should show update and cancel")
	}

	e.fields[2].SetValue("90")
	e.focus = e.submitIndex()
	e.Update(screentest.SpecialKey(tea.KeyEnter))

	got, _ := env.Tracker.Attempt(a.ID)
	if got.Scores["Math"] != 90 || got.Scores["English"] != 70 || got.Total != 160 {
		t.Errorf("updated attempt = %+v", got)
	}
	if _, editing := env.Tracker.Editing(); editing {
		t.Error("tracker should be idle after update")
	}
	if e.editing || e.Title() != "Enter scores" {
		t.Error("form should return to add mode")
	}
	if len(env.Tracker.Attempts()) != 1 {
		t.Error("update must not add an attempt")
	}
}

func TestEntryScreen_CancelButton(t *testing.T) {
	env, _ := screentest.NewEnv(t, "Math")
	a := screentest.AddTest(t, env, "Quiz", map[string]string{"Math": "60"})
	e, err := NewEdit(env, a.ID)
	if err != nil {
		t.Fatal(err)
	}
	e.fields[2].SetValue("99")
	e.focus = e.cancelIndex()
	e.Update(screentest.SpecialKey(tea.KeyEnter))

	if _, editing := env.Tracker.Editing(); editing {
		t.Error("cancel should leave editing mode")
	}
	if got, _ := env.Tracker.Attempt(a.ID); got.Total != 60 {
		t.Errorf("cancel must not change the attempt, total = %d", got.Total)
	}
	if e.editing {
		t.Error("form should be back in add mode")
	}
}

func TestEntryScreen_CloseCancelsEdit(t *testing.T) {
	env, _ := screentest.NewEnv(t, "Math")
	a := screentest.AddTest(t, env, "Quiz", nil)
	e, err := NewEdit(env, a.ID)
	if err != nil {
		t.Fatal(err)
	}
	e.Close()
	if _, editing := env.Tracker.Editing(); editing {
		t.Error("closing the form should cancel the edit")
	}
}

func TestEntryScreen_SaveFailureKeepsForm(t *testing.T) {
	env, repo := screentest.NewEnv(t, "Math")
	repo.SaveErr = errors.New("disk full")
	e := New(env)
	fill(e, "Quiz", "", "10")
	e.focus = e.submitIndex()
	e.Update(screentest.SpecialKey(tea.KeyEnter))

	if len(env.Tracker.Attempts()) != 0 {
		t.Fatal("failed save must roll back")
	}
	if e.fields[0].Value() != "Quiz" {
		t.Error("form content should be kept for retry")
	}
	if !strings.Contains(ansi.Strip(e.View(80, 40)), "disk full") {
		t.Error("expected storage error notice")
	}
}

func TestEntryScreen_NewEditUnknown(t *testing.T) {
	env, _ := screentest.NewEnv(t, "Math")
	if _, err := NewEdit(env, 404); err == nil {
		t.Error("expected error for unknown attempt")
	}
}
