package entry

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/scorebook/internal/scores"
	"github.com/abhisek/scorebook/internal/screen"
	"github.com/abhisek/scorebook/internal/ui/components"
	"github.com/abhisek/scorebook/internal/ui/layout"
	"github.com/abhisek/scorebook/internal/ui/theme"
)

const (
	fieldName = 0
	fieldDate = 1
	// Score fields follow, one per subject.
	firstScore = 2
)

// EntryScreen is the score-entry form. It records a new attempt, or
// updates the attempt under edit.
type EntryScreen struct {
	env      *screen.Env
	subjects []string
	fields   []components.TextInput
	focus    int
	editing  bool
	notice   scores.Notice
}

var _ screen.Screen = (*EntryScreen)(nil)

// New creates an empty form in add mode.
func New(env *screen.Env) *EntryScreen {
	e := &EntryScreen{env: env}
	e.reset()
	return e
}

// NewEdit starts editing attempt id and returns the prefilled form.
func NewEdit(env *screen.Env, id int64) (*EntryScreen, error) {
	prefill, err := env.Tracker.BeginEdit(id)
	if err != nil {
		return nil, err
	}
	e := &EntryScreen{env: env}
	e.reset()
	e.editing = true
	e.fields[fieldName].SetValue(prefill.Name)
	e.fields[fieldDate].SetValue(prefill.Date)
	for i, sub := range e.subjects {
		e.fields[firstScore+i].SetValue(prefill.Scores[sub])
	}
	return e, nil
}

// reset rebuilds an empty add-mode form over the current subjects.
func (e *EntryScreen) reset() {
	e.editing = false
	e.subjects = e.env.Tracker.Subjects()
	e.fields = []components.TextInput{
		components.NewTextInput("Test name", "e.g. Midterm", false, 60),
		components.NewTextInput("Date", "YYYY-MM-DD", false, 20),
	}
	hint := fmt.Sprintf("%d-%d", scores.ScoreMin, scores.ScoreMax)
	for _, sub := range e.subjects {
		e.fields = append(e.fields, components.NewTextInput(components.Sanitize(sub), hint, true, 6))
	}
	e.focus = fieldName
	e.fields[fieldName].Focus()
}

func (e *EntryScreen) Init() tea.Cmd {
	return e.fields[fieldName].Focus()
}

func (e *EntryScreen) Title() string {
	if e.editing {
		return "Edit test"
	}
	return "Enter scores"
}

// Close abandons an edit in progress.
func (e *EntryScreen) Close() {
	if e.editing {
		e.env.Tracker.CancelEdit()
		e.editing = false
	}
}

// Buttons follow the fields in focus order.
func (e *EntryScreen) submitIndex() int { return len(e.fields) }
func (e *EntryScreen) cancelIndex() int { return len(e.fields) + 1 }

func (e *EntryScreen) focusCount() int {
	if e.editing {
		return len(e.fields) + 2
	}
	return len(e.fields) + 1
}

func (e *EntryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return e, e.forward(msg)
	}

	switch kmsg.String() {
	case "tab", "down":
		return e, e.move(1)
	case "shift+tab", "up":
		return e, e.move(-1)
	case "ctrl+s":
		return e, e.submit()
	case "enter":
		switch {
		case e.focus == e.submitIndex():
			return e, e.submit()
		case e.editing && e.focus == e.cancelIndex():
			e.env.Tracker.CancelEdit()
			e.reset()
			e.notice = scores.Notice{Kind: scores.NoticeInfo, Message: "Edit cancelled."}
			return e, nil
		default:
			return e, e.move(1)
		}
	}
	return e, e.forward(msg)
}

func (e *EntryScreen) forward(msg tea.Msg) tea.Cmd {
	if e.focus >= len(e.fields) {
		return nil
	}
	var cmd tea.Cmd
	e.fields[e.focus], cmd = e.fields[e.focus].Update(msg)
	return cmd
}

func (e *EntryScreen) move(delta int) tea.Cmd {
	n := e.focusCount()
	return e.focusOn(((e.focus+delta)%n + n) % n)
}

func (e *EntryScreen) focusOn(i int) tea.Cmd {
	if e.focus < len(e.fields) {
		e.fields[e.focus].Blur()
	}
	e.focus = i
	if e.focus < len(e.fields) {
		return e.fields[e.focus].Focus()
	}
	return nil
}

// Entry returns the form content.
func (e *EntryScreen) Entry() scores.Entry {
	en := scores.Entry{
		Name:   e.fields[fieldName].Value(),
		Date:   e.fields[fieldDate].Value(),
		Scores: make(map[string]string, len(e.subjects)),
	}
	for i, sub := range e.subjects {
		en.Scores[sub] = e.fields[firstScore+i].Value()
	}
	return en
}

func (e *EntryScreen) submit() tea.Cmd {
	n, err := e.env.Tracker.Submit(e.env.Context(), e.Entry())
	if err != nil {
		e.notice = scores.ErrorNotice(err)
		if scores.IsValidation(err) {
			return e.focusOn(fieldName)
		}
		if _, still := e.env.Tracker.Editing(); !still && e.editing {
			e.reset()
		}
		return nil
	}
	e.reset()
	e.notice = n
	return e.fields[fieldName].Focus()
}

func (e *EntryScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var form strings.Builder
	for i, f := range e.fields {
		if i == firstScore {
			form.WriteString(theme.Label.Render("  Scores") + "\n")
		}
		form.WriteString(f.View() + "\n")
	}
	if len(e.subjects) == 0 {
		form.WriteString(theme.Hint.Render("  No subjects. Add some on the Subjects screen.") + "\n")
	}

	submit := components.NewButton("Add test", nil)
	if e.editing {
		submit.Label = "Update test"
		submit.Style = theme.ButtonUpdate
	}
	submit.Focused = e.focus == e.submitIndex()
	buttons := submit.View()
	if e.editing {
		cancel := components.NewButton("Cancel", nil)
		cancel.Focused = e.focus == e.cancelIndex()
		buttons += "  " + cancel.View()
	}
	form.WriteString("\n" + buttons)

	out := components.Card(form.String(), cw, true)
	if notice := components.NoticeView(e.notice); notice != "" {
		out = notice + "\n" + out
	}

	// Keep the focused field on screen in short terminals.
	offset := 0
	if lines := strings.Count(out, "\n") + 1; lines > height {
		focusLine := 2 + 3*min(e.focus, len(e.fields))
		offset = min(max(focusLine-height/2, 0), lines-height)
	}
	return layout.Clip(out, offset, height)
}

func (e *EntryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Tab/↑↓", Description: "Move"},
		{Key: "Ctrl+S", Description: "Save"},
	}
	if e.editing {
		return append(hints, layout.KeyHint{Key: "Esc", Description: "Cancel edit"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}
