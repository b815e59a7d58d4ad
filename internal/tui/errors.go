package tui

import (
	"strings"

	"github.com/Taishi66/folio-tui/internal/domain"
)

// renderInlineError draws a one-line field message; "" draws nothing.
func renderInlineError(msg string) string {
	if msg == "" {
		return ""
	}
	return inlineErrorStyle.Render("⚠ " + msg)
}

type pageErrorOptions struct {
	Title   string
	CanHome bool
	Dev     bool
	Locale  domain.Locale
}

// renderPageError replaces a whole view with err. The reload action is
// offered only when err is retryable.
func renderPageError(err *domain.APIError, opts pageErrorOptions) string {
	if err == nil {
		return ""
	}
	title := opts.Title
	if title == "" {
		title = "页面加载失败"
	}
	sev := domain.SeverityOf(err.Kind)
	color := severityColor(sev)

	var b strings.Builder
	b.WriteString(pageErrorTitleStyle.Foreground(color).Render(severityIcon(sev) + " " + title))
	b.WriteString("\n\n")
	b.WriteString("  " + localizedMessage(err, opts.Locale) + "\n\n")

	var actions []string
	if err.IsRetryable() {
		actions = append(actions, "[r] 重新加载")
	}
	if opts.CanHome {
		actions = append(actions, "[h] 返回首页")
	}
	if len(actions) > 0 {
		b.WriteString("  " + strings.Join(actions, "  ") + "\n")
	}

	if opts.Dev && err.Details != "" {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("  开发者信息: "+err.Details) + "\n")
	}
	return b.String()
}
