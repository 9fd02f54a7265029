package subjects

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/scorebook/internal/scores"
	"github.com/abhisek/scorebook/internal/screen"
	"github.com/abhisek/scorebook/internal/ui/components"
	"github.com/abhisek/scorebook/internal/ui/layout"
	"github.com/abhisek/scorebook/internal/ui/theme"
)

type focus int

const (
	focusInput focus = iota
	focusList
)

// SubjectsScreen adds and removes subjects.
type SubjectsScreen struct {
	env      *screen.Env
	input    components.TextInput
	focus    focus
	selected int
	confirm  *components.Confirm
	pending  string
	notice   scores.Notice
}

var _ screen.Screen = (*SubjectsScreen)(nil)

// New creates the subjects screen with the add field focused.
func New(env *screen.Env) *SubjectsScreen {
	return &SubjectsScreen{
		env:   env,
		input: components.NewTextInput("New subject", "e.g. History", false, 40),
	}
}

func (s *SubjectsScreen) Init() tea.Cmd {
	return s.input.Focus()
}

func (s *SubjectsScreen) Title() string {
	return "Subjects"
}

// CapturingInput reports whether the removal prompt is open.
func (s *SubjectsScreen) CapturingInput() bool {
	return s.confirm != nil
}

func (s *SubjectsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.confirm != nil {
		c, _ := s.confirm.Update(msg)
		s.confirm = &c
		if c.Done {
			if c.Accepted {
				s.remove(s.pending)
			}
			s.confirm = nil
			s.pending = ""
		}
		return s, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	if s.focus == focusInput {
		return s.updateInput(kmsg)
	}
	return s.updateList(kmsg)
}

func (s *SubjectsScreen) updateInput(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "enter":
		n, err := s.env.Tracker.AddSubject(s.env.Context(), s.input.Value())
		if err != nil {
			s.notice = scores.ErrorNotice(err)
			return s, nil
		}
		s.notice = n
		s.input.SetValue("")
		return s, nil
	case "tab", "down":
		if len(s.env.Tracker.Subjects()) > 0 {
			s.input.Blur()
			s.focus = focusList
			s.clamp()
		}
		return s, nil
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *SubjectsScreen) updateList(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	subs := s.env.Tracker.Subjects()
	switch msg.String() {
	case "up", "k":
		if s.selected == 0 {
			s.focus = focusInput
			return s, s.input.Focus()
		}
		s.selected--
	case "down", "j":
		if s.selected < len(subs)-1 {
			s.selected++
		}
	case "tab", "a":
		s.focus = focusInput
		return s, s.input.Focus()
	case "d", "x", "delete", "backspace":
		if s.selected < len(subs) {
			name := subs[s.selected]
			c := components.NewConfirm(scores.RemoveSubjectPrompt(name))
			s.confirm = &c
			s.pending = name
		}
	}
	return s, nil
}

func (s *SubjectsScreen) remove(name string) {
	if err := s.env.Tracker.RemoveSubject(s.env.Context(), name); err != nil {
		s.notice = scores.ErrorNotice(err)
		return
	}
	s.notice = scores.Notice{Kind: scores.NoticeSuccess, Message: fmt.Sprintf("Removed %s.", name)}
	s.clamp()
	if len(s.env.Tracker.Subjects()) == 0 {
		s.focus = focusInput
		s.input.Focus()
	}
}

func (s *SubjectsScreen) clamp() {
	n := len(s.env.Tracker.Subjects())
	s.selected = min(max(s.selected, 0), max(n-1, 0))
}

func (s *SubjectsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var b strings.Builder

	b.WriteString(components.Card(s.input.View(), cw, s.focus == focusInput))
	b.WriteString("\n")

	subs := s.env.Tracker.Subjects()
	var list strings.Builder
	list.WriteString(theme.Label.Render(fmt.Sprintf("Subjects (%d)", len(subs))) + "\n")
	if len(subs) == 0 {
		list.WriteString(theme.Hint.Render("No subjects yet. Add one above."))
	}
	for i, sub := range subs {
		name := components.Sanitize(sub)
		if s.focus == focusList && i == s.selected {
			list.WriteString(theme.Selected.Render("▸ " + name))
			list.WriteString("  " + theme.Hint.Render("d: remove"))
		} else {
			list.WriteString(theme.Unselected.Render("  " + name))
		}
		if i < len(subs)-1 {
			list.WriteString("\n")
		}
	}
	b.WriteString(components.Card(list.String(), cw, s.focus == focusList))

	if notice := components.NoticeView(s.notice); notice != "" {
		b.WriteString("\n" + notice)
	}

	if s.confirm != nil {
		return lipgloss.JoinVertical(lipgloss.Left,
			layout.Clip(b.String(), 0, max(height-8, 0)),
			s.confirm.View(cw))
	}
	return layout.Clip(b.String(), 0, height)
}

func (s *SubjectsScreen) KeyHints() []layout.KeyHint {
	if s.confirm != nil {
		return []layout.KeyHint{{Key: "y", Description: "Remove"}, {Key: "n/Esc", Description: "Keep"}}
	}
	if s.focus == focusInput {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Add"},
			{Key: "Tab", Description: "List"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Select"},
		{Key: "d", Description: "Remove"},
		{Key: "Tab", Description: "Add field"},
		{Key: "Esc", Description: "Back"},
	}
}
