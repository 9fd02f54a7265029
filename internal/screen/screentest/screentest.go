// Package screentest builds screen environments backed by memory for
// screen tests.
package screentest

import (
	"context"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/scorebook/internal/charts"
	"github.com/abhisek/scorebook/internal/logger"
	"github.com/abhisek/scorebook/internal/scores"
	"github.com/abhisek/scorebook/internal/screen"
	"github.com/abhisek/scorebook/internal/store"
)

// MemRepo is an in-memory store.StateRepo. Set SaveErr to make writes fail.
type MemRepo struct {
	State   store.PersistedState
	Saves   int
	SaveErr error
}

func (m *MemRepo) Save(_ context.Context, s store.PersistedState) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Saves++
	m.State = s
	return nil
}

func (m *MemRepo) Load(context.Context) (store.PersistedState, error) {
	return m.State, nil
}

func (m *MemRepo) Clear(context.Context) error {
	m.State = store.PersistedState{}
	return nil
}

// NewEnv returns an Env whose tracker starts with subjects and no tests.
// Chart colours are fixed.
func NewEnv(t *testing.T, subjects ...string) (*screen.Env, *MemRepo) {
	t.Helper()
	repo := &MemRepo{State: store.PersistedState{Subjects: append([]string{}, subjects...)}}
	n := 0
	clock := func() time.Time {
		n++
		return time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC).Add(time.Duration(n) * time.Millisecond)
	}
	tr := scores.NewTracker(context.Background(), repo, []string{"Math", "English"}, scores.WithClock(clock))
	return &screen.Env{
		Ctx:     context.Background(),
		Tracker: tr,
		Charts:  charts.NewRegistry(),
		Log:     logger.Nop(),
		Colors:  func() charts.ColorFunc { return charts.FixedColors() },
	}, repo
}

// AddTest records a test through the tracker, failing t on error.
func AddTest(t *testing.T, env *screen.Env, name string, scoreText map[string]string) scores.Attempt {
	t.Helper()
	if _, err := env.Tracker.Submit(env.Context(), scores.Entry{Name: name, Scores: scoreText}); err != nil {
		t.Fatalf("add test %q: %v", name, err)
	}
	attempts := env.Tracker.Attempts()
	return attempts[len(attempts)-1]
}

// KeyPress builds a printable key press.
func KeyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// SpecialKey builds a non-printable key press such as tea.KeyEnter.
func SpecialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// Type sends each rune of s to the screen.
func Type(s screen.Screen, text string) screen.Screen {
	for _, r := range text {
		s, _ = s.Update(KeyPress(r))
	}
	return s
}

// Drain runs cmd and returns its message, or nil.
func Drain(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}
