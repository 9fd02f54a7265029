package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/scorebook/internal/ui/theme"
)

// Button is a styled button component.
type Button struct {
	Label   string
	Focused bool
	Style   lipgloss.Style
	OnPress func() tea.Cmd
}

// NewButton creates a new button. A zero style uses theme.ButtonActive
// when focused.
func NewButton(label string, onPress func() tea.Cmd) Button {
	return Button{
		Label:   label,
		Style:   theme.ButtonActive,
		OnPress: onPress,
	}
}

// Update presses the button on enter while focused.
func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	if !b.Focused {
		return b, nil
	}

	if kmsg, ok := msg.(tea.KeyMsg); ok {
		if kmsg.String() == "enter" && b.OnPress != nil {
			return b, b.OnPress()
		}
	}

	return b, nil
}

// View renders the button.
func (b Button) View() string {
	if b.Focused {
		return b.Style.Render("▸ " + b.Label)
	}
	return theme.ButtonInactive.Render("  " + b.Label)
}
