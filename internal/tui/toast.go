package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Taishi66/folio-tui/internal/domain"
)

type toastLevel int

const (
	toastInfo toastLevel = iota
	toastSuccess
	toastError
)

const toastDuration = 5 * time.Second

// toast is the floating notice at the bottom of the screen. Error toasts
// carry the error they describe; the others are plain messages.
type toast struct {
	id      int
	message string
	level   toastLevel
	err     *domain.APIError
	source  View // view whose load failed, for error toasts
	opts    toastOptions
	expires time.Time // zero: stays until dismissed
}

type toastExpiredMsg struct{ id int }

// toastOptions controls how an error toast is drawn.
type toastOptions struct {
	Title       string
	Dismissible bool
	ForceRetry  bool
	ShowDetails bool
	Dev         bool
	Locale      domain.Locale
}

var toastSeq int

func (t toast) isActive() bool {
	if t.message == "" && t.err == nil {
		return false
	}
	return t.expires.IsZero() || time.Now().Before(t.expires)
}

func (t toast) render() string {
	if !t.isActive() {
		return ""
	}
	if t.err != nil {
		return renderErrorToast(t.err, t.opts)
	}
	switch t.level {
	case toastSuccess:
		return toastSuccessStyle.Render(t.message)
	case toastError:
		return inlineErrorStyle.Bold(true).Render(t.message)
	default:
		return toastInfoStyle.Render(t.message)
	}
}

func newToast(msg string, level toastLevel) toast {
	toastSeq++
	return toast{
		id:      toastSeq,
		message: msg,
		level:   level,
		expires: time.Now().Add(toastDuration),
	}
}

// newErrorToast builds a toast for err. With autoDismiss it expires after
// the usual delay; otherwise it stays until dismissed or retried.
func newErrorToast(err *domain.APIError, opts toastOptions, autoDismiss bool) toast {
	toastSeq++
	t := toast{id: toastSeq, err: err, level: toastError, opts: opts}
	if autoDismiss {
		t.expires = time.Now().Add(toastDuration)
	}
	return t
}

func scheduleToastClear(id int) tea.Cmd {
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

// localizedMessage picks the message to show for err in locale. A message
// the server sent is shown as is; the built-in text is translated.
func localizedMessage(err *domain.APIError, locale domain.Locale) string {
	msg := domain.UserFriendlyMessage(err)
	if locale != "" && locale != domain.LocaleZH && msg == domain.DefaultMessage(err.Kind) {
		return domain.MessageFor(err.Kind, locale)
	}
	return msg
}

// renderErrorToast draws err as a bordered notice. A nil error draws
// nothing.
func renderErrorToast(err *domain.APIError, opts toastOptions) string {
	if err == nil {
		return ""
	}
	sev := domain.SeverityOf(err.Kind)

	var lines []string
	if opts.Title != "" {
		lines = append(lines, severityIcon(sev)+" "+opts.Title)
		lines = append(lines, localizedMessage(err, opts.Locale))
	} else {
		lines = append(lines, severityIcon(sev)+" "+localizedMessage(err, opts.Locale))
	}

	if opts.ShowDetails && err.Details != "" {
		lines = append(lines, mutedStyle.Render("错误详情: "+truncate(err.Details, 200)))
	}
	if opts.Dev {
		code := "错误代码: " + err.Kind.String()
		if err.HTTPStatus != 0 {
			code += fmt.Sprintf(" (HTTP %d)", err.HTTPStatus)
		}
		if err.RequestID != "" {
			code += " · 请求ID: " + err.RequestID
		}
		lines = append(lines, mutedStyle.Render(code))
	}

	var actions []string
	if opts.ForceRetry || err.IsRetryable() {
		actions = append(actions, "[r] 重试")
	}
	if opts.Dismissible {
		actions = append(actions, "[esc] 关闭")
	}
	if len(actions) > 0 {
		lines = append(lines, strings.Join(actions, "  "))
	}

	return toastBoxStyle(sev).Render(strings.Join(lines, "\n"))
}
