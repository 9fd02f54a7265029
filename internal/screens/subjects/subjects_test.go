package subjects

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/scorebook/internal/screen/screentest"
)

func TestSubjectsScreen_Title(t *testing.T) {
	env, _ := screentest.NewEnv(t, "Math")
	if New(env).Title() != "Subjects" {
		t.Errorf("unexpected title %q", New(env).Title())
	}
}

func TestSubjectsScreen_AddSubject(t *testing.T) {
	env, repo := screentest.NewEnv(t, "Math")
	s := New(env)
	s.Init()

	screentest.Type(s, "Art")
	s.Update(screentest.SpecialKey(tea.KeyEnter))

	got := env.Tracker.Subjects()
	if len(got) != 2 || got[1] != "Art" {
		t.Fatalf("subjects = %v, want [Math Art]", got)
	}
	if repo.Saves != 1 {
		t.Errorf("expected one save, got %d", repo.Saves)
	}
	if s.input.Value() != "" {
		t.Errorf("input should be cleared, got %q", s.input.Value())
	}
	if !strings.Contains(ansi.Strip(s.View(80, 24)), "Added Art.") {
		t.Error("expected success notice in view")
	}
}

func TestSubjectsScreen_RejectsDuplicate(t *testing.T) {
	env, _ := screentest.NewEnv(t, "Math")
	s := New(env)
	s.Init()

	screentest.Type(s, "Math")
	s.Update(screentest.SpecialKey(tea.KeyEnter))

	if len(env.Tracker.Subjects()) != 1 {
		t.Fatalf("duplicate must not be added: %v", env.Tracker.Subjects())
	}
	if !strings.Contains(ansi.Strip(s.View(80, 24)), "subject already exists") {
		t.Error("expected duplicate notice in view")
	}
}

func TestSubjectsScreen_RemoveNeedsConfirmation(t *testing.T) {
	env, _ := screentest.NewEnv(t, "Math", "English")
	s := New(env)
	s.Init()

	s.Update(screentest.SpecialKey(tea.KeyTab))
	s.Update(screentest.KeyPress('j'))
	s.Update(screentest.KeyPress('d'))

	if !s.CapturingInput() {
		t.Fatal("expected confirmation to be open")
	}
	if !strings.Contains(ansi.Strip(s.View(80, 24)), "Remove English?") {
		t.Error("expected removal prompt in view")
	}

	s.Update(screentest.KeyPress('n'))
	if len(env.Tracker.Subjects()) != 2 {
		t.Fatalf("declining must keep the subject: %v", env.Tracker.Subjects())
	}

	s.Update(screentest.KeyPress('d'))
	s.Update(screentest.KeyPress('y'))
	if got := env.Tracker.Subjects(); len(got) != 1 || got[0] != "Math" {
		t.Fatalf("subjects = %v, want [Math]", got)
	}
	if s.CapturingInput() {
		t.Error("confirmation should be closed")
	}
}

func TestSubjectsScreen_RemoveLastSubjectRefocusesInput(t *testing.T) {
	env, _ := screentest.NewEnv(t, "Math")
	s := New(env)
	s.Init()

	s.Update(screentest.SpecialKey(tea.KeyTab))
	s.Update(screentest.KeyPress('d'))
	s.Update(screentest.KeyPress('y'))

	if len(env.Tracker.Subjects()) != 0 {
		t.Fatal("expected no subjects")
	}
	if s.focus != focusInput {
		t.Error("expected focus back on the input")
	}
}

func TestSubjectsScreen_SanitizesNames(t *testing.T) {
	env, _ := screentest.NewEnv(t, "Evil\x1b[2J")
	out := New(env).View(80, 24)
	if strings.Contains(out, "\x1b[2J") {
		t.Error("escape sequence leaked into view")
	}
}

func TestSubjectsScreen_KeyHints(t *testing.T) {
	env, _ := screentest.NewEnv(t, "Math")
	if len(New(env).KeyHints()) == 0 {
		t.Error("expected key hints")
	}
}
