package table

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/scorebook/internal/router"
	"github.com/abhisek/scorebook/internal/scores"
	"github.com/abhisek/scorebook/internal/screen"
	"github.com/abhisek/scorebook/internal/screens/entry"
	"github.com/abhisek/scorebook/internal/ui/components"
	"github.com/abhisek/scorebook/internal/ui/layout"
	"github.com/abhisek/scorebook/internal/ui/theme"
)

type pendingAction int

const (
	actionNone pendingAction = iota
	actionDelete
	actionReset
)

// TableScreen lists every attempt with edit and delete actions.
type TableScreen struct {
	env       *screen.Env
	selected  int
	offset    int
	confirm   *components.Confirm
	action    pendingAction
	pendingID int64
	notice    scores.Notice
}

var _ screen.Screen = (*TableScreen)(nil)

// New creates the data table screen.
func New(env *screen.Env) *TableScreen {
	return &TableScreen{env: env}
}

func (t *TableScreen) Init() tea.Cmd {
	return nil
}

// Resume re-clamps the selection after returning from the edit form.
func (t *TableScreen) Resume() tea.Cmd {
	t.clamp(len(t.env.Tracker.Attempts()))
	return nil
}

func (t *TableScreen) Title() string {
	return "Data table"
}

// CapturingInput reports whether a confirmation is open.
func (t *TableScreen) CapturingInput() bool {
	return t.confirm != nil
}

func (t *TableScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if t.confirm != nil {
		c, _ := t.confirm.Update(msg)
		t.confirm = &c
		if c.Done {
			if c.Accepted {
				t.run()
			}
			t.confirm = nil
			t.action = actionNone
		}
		return t, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return t, nil
	}

	attempts := t.env.Tracker.Attempts()
	switch kmsg.String() {
	case "up", "k":
		if t.selected > 0 {
			t.selected--
		}
	case "down", "j":
		if t.selected < len(attempts)-1 {
			t.selected++
		}
	case "home", "g":
		t.selected = 0
	case "end", "G":
		t.selected = max(len(attempts)-1, 0)
	case "e", "enter":
		if t.selected < len(attempts) {
			edit, err := entry.NewEdit(t.env, attempts[t.selected].ID)
			if err != nil {
				t.notice = scores.ErrorNotice(err)
				return t, nil
			}
			t.notice = scores.Notice{}
			return t, func() tea.Msg { return router.PushScreenMsg{Screen: edit} }
		}
	case "d", "x", "delete":
		if t.selected < len(attempts) {
			a := attempts[t.selected]
			c := components.NewConfirm(scores.RemoveAttemptPrompt(a))
			t.confirm = &c
			t.action = actionDelete
			t.pendingID = a.ID
		}
	case "R":
		c := components.NewConfirm("Reset everything? All tests are deleted and the default subjects restored.")
		t.confirm = &c
		t.action = actionReset
	}
	return t, nil
}

func (t *TableScreen) run() {
	ctx := t.env.Context()
	switch t.action {
	case actionDelete:
		name := ""
		if a, ok := t.env.Tracker.Attempt(t.pendingID); ok {
			name = a.Name
		}
		if err := t.env.Tracker.RemoveAttempt(ctx, t.pendingID); err != nil {
			t.notice = scores.ErrorNotice(err)
			return
		}
		t.notice = scores.Notice{Kind: scores.NoticeSuccess, Message: fmt.Sprintf("Deleted %s.", name)}
	case actionReset:
		if err := t.env.Tracker.Reset(ctx); err != nil {
			t.notice = scores.ErrorNotice(err)
			return
		}
		t.notice = scores.Notice{Kind: scores.NoticeSuccess, Message: "All data reset."}
	}
	t.clamp(len(t.env.Tracker.Attempts()))
}

func (t *TableScreen) clamp(n int) {
	t.selected = min(max(t.selected, 0), max(n-1, 0))
}

func (t *TableScreen) View(width, height int) string {
	rows := scores.Rows(t.env.Tracker.Snapshot())
	t.clamp(len(rows))

	var b strings.Builder
	if notice := components.NoticeView(t.notice); notice != "" {
		b.WriteString(notice + "\n")
	}

	if len(rows) == 0 {
		b.WriteString(theme.Hint.Render("No tests recorded yet. Use Enter scores to add one."))
		return b.String()
	}

	nameW, dateW, totalW := len("Test"), len("Date"), len("Total")
	for _, r := range rows {
		nameW = max(nameW, lipgloss.Width(components.Sanitize(r.Name)))
		dateW = max(dateW, lipgloss.Width(components.Sanitize(r.Date)))
		totalW = max(totalW, len(fmt.Sprint(r.Total)))
	}
	nameW = min(nameW, 24)
	dateW = min(dateW, 12)
	summaryW := max(width-nameW-dateW-totalW-10, 10)

	line := func(name, date, total, summary string) string {
		return fmt.Sprintf("  %-*s  %-*s  %*s  %s",
			nameW, components.Truncate(name, nameW),
			dateW, components.Truncate(date, dateW),
			totalW, total,
			components.Truncate(summary, summaryW))
	}

	b.WriteString(theme.TableHeader.Render(line("Test", "Date", "Total", "Scores")) + "\n")

	visible := max(height-lipgloss.Height(b.String())-1, 1)
	if t.confirm != nil {
		visible = max(visible-7, 1)
	}
	if t.selected < t.offset {
		t.offset = t.selected
	}
	if t.selected >= t.offset+visible {
		t.offset = t.selected - visible + 1
	}

	end := min(t.offset+visible, len(rows))
	for i := t.offset; i < end; i++ {
		r := rows[i]
		text := line(components.Sanitize(r.Name), components.Sanitize(r.Date), fmt.Sprint(r.Total), components.Sanitize(r.Summary))
		if i == t.selected {
			b.WriteString(theme.TableSelected.Render(text))
		} else {
			b.WriteString(theme.TableRow.Render(text))
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	if t.confirm != nil {
		b.WriteString("\n" + t.confirm.View(components.ContentWidth(width)))
	}
	return b.String()
}

func (t *TableScreen) KeyHints() []layout.KeyHint {
	if t.confirm != nil {
		return []layout.KeyHint{{Key: "y", Description: "Confirm"}, {Key: "n/Esc", Description: "Cancel"}}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Select"},
		{Key: "e", Description: "Edit"},
		{Key: "d", Description: "Delete"},
		{Key: "R", Description: "Reset all"},
		{Key: "Esc", Description: "Back"},
	}
}
