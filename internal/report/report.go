// Package report sends production error reports to the backend.
//
// Reporting is strictly best effort: nothing in this package returns an
// error to the code that triggered the report. Failures are logged at warn
// level and dropped.
package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"runtime"
	"runtime/debug"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Taishi66/folio-tui/internal/domain"
)

const sendTimeout = 5 * time.Second

// Report is the payload POSTed to the error collection endpoint.
type Report struct {
	ID             string `json:"id"`
	Message        string `json:"message"`
	Stack          string `json:"stack"`
	ComponentStack string `json:"componentStack,omitempty"`
	UserAgent      string `json:"userAgent"`
	URL            string `json:"url"`
	Timestamp      string `json:"timestamp"`
	BuildVersion   string `json:"buildVersion"`
}

// Reporter submits reports in the background. A nil *Reporter is valid and
// drops everything, which is what development mode uses.
type Reporter struct {
	endpoint     string
	buildVersion string
	client       *http.Client
	logger       *zap.Logger
	now          func() time.Time

	mu    sync.Mutex
	route string

	wg sync.WaitGroup
}

// New creates a Reporter posting to endpoint.
func New(endpoint, buildVersion string, logger *zap.Logger) *Reporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	if buildVersion == "" {
		buildVersion = "unknown"
	}
	return &Reporter{
		endpoint:     endpoint,
		buildVersion: buildVersion,
		client:       &http.Client{Timeout: sendTimeout},
		logger:       logger,
		now:          time.Now,
		route:        "folio://",
	}
}

// UserAgent identifies this client in reports.
func UserAgent(version string) string {
	return fmt.Sprintf("folio/%s (%s/%s)", version, runtime.GOOS, runtime.GOARCH)
}

// SetRoute records the view the user is on, e.g. "projects".
func (r *Reporter) SetRoute(view string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.route = "folio://" + view
	r.mu.Unlock()
}

// Route returns the current view route.
func (r *Reporter) Route() string {
	if r == nil {
		return "folio://"
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.route
}

// ReportAPIError submits a handled API failure.
func (r *Reporter) ReportAPIError(id string, err *domain.APIError) {
	if r == nil || err == nil {
		return
	}
	stack := err.Details
	if err.Err != nil && stack == "" {
		stack = err.Err.Error()
	}
	r.Submit(Report{
		ID:      id,
		Message: fmt.Sprintf("[%s] %s", err.Kind, err.Message),
		Stack:   stack,
	})
}

// ReportPanic submits a recovered panic with its goroutine stack.
func (r *Reporter) ReportPanic(id, message, stack, componentStack string) {
	if r == nil {
		return
	}
	r.Submit(Report{
		ID:             id,
		Message:        message,
		Stack:          stack,
		ComponentStack: componentStack,
	})
}

// Submit fills the environment fields and sends rep on a tracked goroutine.
func (r *Reporter) Submit(rep Report) {
	if r == nil {
		return
	}
	r.fill(&rep)

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		BestEffort(r.logger, "error report", func() error {
			ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
			defer cancel()
			return r.Send(ctx, rep)
		})
	}()
}

// Close waits for in-flight reports.
func (r *Reporter) Close() {
	if r == nil {
		return
	}
	r.wg.Wait()
}

// Send posts rep synchronously. Most callers want Submit.
func (r *Reporter) Send(ctx context.Context, rep Report) error {
	body, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", rep.UserAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("report request failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("report endpoint returned status %d", resp.StatusCode)
	}
	return nil
}

func (r *Reporter) fill(rep *Report) {
	if rep.UserAgent == "" {
		rep.UserAgent = UserAgent(r.buildVersion)
	}
	if rep.URL == "" {
		rep.URL = r.Route()
	}
	if rep.Timestamp == "" {
		rep.Timestamp = r.now().UTC().Format("2006-01-02T15:04:05.000Z07:00")
	}
	if rep.BuildVersion == "" {
		rep.BuildVersion = r.buildVersion
	}
}

// BestEffort runs fn and swallows whatever goes wrong. Errors and panics
// are logged at warn level under what; nothing reaches the caller.
func BestEffort(logger *zap.Logger, what string, fn func() error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	defer func() {
		if rec := recover(); rec != nil {
			logger.Warn(what+" panicked",
				zap.Any("panic", rec),
				zap.ByteString("stack", debug.Stack()))
		}
	}()
	if err := fn(); err != nil {
		logger.Warn(what+" failed", zap.Error(err))
	}
}
