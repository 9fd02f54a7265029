package components

import (
	"github.com/abhisek/scorebook/internal/scores"
	"github.com/abhisek/scorebook/internal/ui/theme"
)

// NoticeView renders a notice banner, or "" for an empty notice.
func NoticeView(n scores.Notice) string {
	if n.Message == "" {
		return ""
	}
	msg := Sanitize(n.Message)
	switch n.Kind {
	case scores.NoticeSuccess:
		return theme.NoticeSuccess.Render("✓ " + msg)
	case scores.NoticeError:
		return theme.NoticeError.Render("✗ " + msg)
	default:
		return theme.NoticeInfo.Render(msg)
	}
}
