package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/scorebook/internal/ui/theme"
)

// Confirm is a yes/no question. It starts on "No".
type Confirm struct {
	Question string
	Yes      bool
	Done     bool
	Accepted bool
}

// NewConfirm creates a confirmation for question.
func NewConfirm(question string) Confirm {
	return Confirm{Question: question}
}

// Update handles y/n, left/right, enter and esc.
func (c Confirm) Update(msg tea.Msg) (Confirm, tea.Cmd) {
	if c.Done {
		return c, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch kmsg.String() {
	case "left", "right", "tab", "h", "l":
		c.Yes = !c.Yes
	case "y", "Y":
		c.Done, c.Accepted = true, true
	case "n", "N", "esc":
		c.Done, c.Accepted = true, false
	case "enter":
		c.Done, c.Accepted = true, c.Yes
	}
	return c, nil
}

// View renders the confirmation.
func (c Confirm) View(width int) string {
	question := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Width(max(width-4, 10)).
		Render(Sanitize(c.Question))

	yes := NewButton("Yes (y)", nil)
	yes.Style = theme.NoticeError
	no := NewButton("No (n)", nil)
	yes.Focused = c.Yes
	no.Focused = !c.Yes

	return theme.FocusedCard.Render(question + "\n\n" + yes.View() + "  " + no.View())
}
