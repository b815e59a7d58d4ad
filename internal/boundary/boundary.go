// Package boundary is the last line of defence for the TUI: it recovers a
// panic raised while updating or rendering a view and turns it into a
// frozen screen the user can recover from.
package boundary

import (
	"encoding/base64"
	"fmt"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/atotto/clipboard"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxRetries bounds how often the user may re-render after a panic.
const MaxRetries = 3

// PanicReporter receives recovered panics in production.
type PanicReporter interface {
	ReportPanic(id, message, stack, componentStack string)
}

// Failure describes a recovered panic.
type Failure struct {
	ID        string
	Message   string
	Stack     string
	Component string
	At        time.Time
}

type Options struct {
	Logger   *zap.Logger
	Dev      bool
	Reporter PanicReporter
}

// Boundary records at most one failure at a time.
type Boundary struct {
	mu         sync.Mutex
	failure    *Failure
	retryCount int

	logger   *zap.Logger
	dev      bool
	reporter PanicReporter

	now       func() time.Time
	writeClip func(string) error
}

func New(opts Options) *Boundary {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Boundary{
		logger:    logger,
		dev:       opts.Dev,
		reporter:  opts.Reporter,
		now:       time.Now,
		writeClip: clipboard.WriteAll,
	}
}

// Guard runs fn and reports whether it panicked. The panic is recorded
// and not re-raised.
func (b *Boundary) Guard(component string, fn func()) (panicked bool) {
	defer func() {
		if rec := recover(); rec != nil {
			b.Capture(component, rec, string(debug.Stack()))
			panicked = true
		}
	}()
	fn()
	return false
}

// Capture records a recovered value. component names the view or step
// that failed and is reported as the component stack.
func (b *Boundary) Capture(component string, rec any, stack string) {
	f := &Failure{
		ID:        uuid.NewString(),
		Message:   fmt.Sprint(rec),
		Stack:     stack,
		Component: component,
		At:        b.now(),
	}
	if err, ok := rec.(error); ok {
		f.Message = err.Error()
	}

	b.mu.Lock()
	b.failure = f
	b.mu.Unlock()

	if b.dev {
		b.logger.Error("panic recovered",
			zap.String("error_id", f.ID),
			zap.String("component", component),
			zap.String("message", f.Message),
			zap.String("stack", stack))
	} else {
		b.logger.Error("panic recovered",
			zap.String("error_id", f.ID),
			zap.String("component", component),
			zap.String("message", f.Message))
		if b.reporter != nil {
			b.reporter.ReportPanic(f.ID, f.Message, stack, component)
		}
	}
}

// Tripped reports whether a failure is being shown.
func (b *Boundary) Tripped() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.failure != nil
}

// Failure returns a copy of the current failure, nil if none.
func (b *Boundary) Failure() *Failure {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failure == nil {
		return nil
	}
	f := *b.failure
	return &f
}

// RetriesLeft is how many retries remain.
func (b *Boundary) RetriesLeft() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return MaxRetries - b.retryCount
}

func (b *Boundary) CanRetry() bool { return b.RetriesLeft() > 0 }

// Retry clears the failure if retries remain and reports whether it did.
func (b *Boundary) Retry() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.retryCount >= MaxRetries {
		return false
	}
	b.retryCount++
	b.failure = nil
	return true
}

// Home clears the failure without spending a retry; the caller navigates
// to the first view.
func (b *Boundary) Home() {
	b.mu.Lock()
	b.failure = nil
	b.mu.Unlock()
}

// Reload clears the failure and the retry budget; the caller drops its
// caches and reloads the current view.
func (b *Boundary) Reload() {
	b.mu.Lock()
	b.failure = nil
	b.retryCount = 0
	b.mu.Unlock()
}

// DiagnosticText formats the failure for a bug report.
func (b *Boundary) DiagnosticText(route string) string {
	f := b.Failure()
	if f == nil {
		return ""
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "错误ID: %s\n", f.ID)
	fmt.Fprintf(&sb, "错误消息: %s\n", f.Message)
	fmt.Fprintf(&sb, "错误堆栈:\n%s\n\n", strings.TrimSpace(f.Stack))
	fmt.Fprintf(&sb, "组件堆栈:\n%s\n\n", f.Component)
	fmt.Fprintf(&sb, "页面URL: %s\n", route)
	fmt.Fprintf(&sb, "时间: %s", b.now().UTC().Format("2006-01-02T15:04:05.000Z07:00"))
	return sb.String()
}

// Copy puts the diagnostic text on the system clipboard. When no
// clipboard is available it returns an OSC52 sequence the caller should
// print instead.
func (b *Boundary) Copy(route string) (osc52 string, err error) {
	text := b.DiagnosticText(route)
	if text == "" {
		return "", nil
	}
	if err := b.writeClip(text); err != nil {
		b.logger.Debug("clipboard unavailable, falling back to OSC52", zap.Error(err))
		return OSC52(text), err
	}
	return "", nil
}

// OSC52 returns the terminal escape sequence that sets the clipboard.
func OSC52(text string) string {
	return "\033]52;c;" + base64.StdEncoding.EncodeToString([]byte(text)) + "\a"
}
