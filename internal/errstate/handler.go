// Package errstate holds the error state behind each screen: the current
// failure, its id, and how to retry the operation that produced it.
package errstate

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Taishi66/folio-tui/internal/domain"
)

// ErrorReporter receives errors recorded in production.
type ErrorReporter interface {
	ReportAPIError(id string, err *domain.APIError)
}

// Options configures a Handler. The zero value is usable.
type Options struct {
	Logger   *zap.Logger
	Dev      bool
	Reporter ErrorReporter
}

// Handler stores at most one current error. It is safe for concurrent use;
// concurrent writers race and the last one wins.
type Handler struct {
	mu      sync.Mutex
	current *domain.APIError
	errorID string
	retry   func()

	dev      bool
	logger   *zap.Logger
	reporter ErrorReporter
}

func NewHandler(opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		dev:      opts.Dev,
		logger:   logger,
		reporter: opts.Reporter,
	}
}

// SetError records a failure and assigns it a fresh id.
func (h *Handler) SetError(in Input) {
	apiErr := Normalize(in)
	id := uuid.NewString()

	h.mu.Lock()
	h.current = apiErr
	h.errorID = id
	h.mu.Unlock()

	h.logger.Error(apiErr.Message,
		zap.String("error_id", id),
		zap.String("code", apiErr.Kind.String()),
		zap.Int("http_status", apiErr.HTTPStatus),
		zap.String("request_id", apiErr.RequestID),
		zap.String("details", apiErr.Details))

	if !h.dev && h.reporter != nil {
		h.reporter.ReportAPIError(id, apiErr)
	}
}

// HandleGlobal records a value of unknown shape, such as a recovered panic
// value or an error surfaced outside any Execute call.
func (h *Handler) HandleGlobal(v any) {
	switch e := v.(type) {
	case *domain.APIError:
		h.SetError(FromAPIError(e))
	case error:
		h.SetError(FromError(e))
	case string:
		h.SetError(FromMessage(e))
	default:
		h.SetError(FromMessage(fmt.Sprint(v)))
	}
}

// ClearError resets the state. Calling it twice is the same as once.
func (h *Handler) ClearError() {
	h.mu.Lock()
	h.current = nil
	h.errorID = ""
	h.mu.Unlock()
}

// SetRetryCallback replaces the function Retry invokes.
func (h *Handler) SetRetryCallback(fn func()) {
	h.mu.Lock()
	h.retry = fn
	h.mu.Unlock()
}

// Retry clears the error and invokes the retry callback on the calling
// goroutine. Without a callback it does nothing.
func (h *Handler) Retry() {
	h.mu.Lock()
	fn := h.retry
	h.mu.Unlock()
	if fn == nil {
		return
	}
	h.ClearError()
	fn()
}

// CanRetry reports whether the current error is retryable.
func (h *Handler) CanRetry() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current != nil && h.current.IsRetryable()
}

func (h *Handler) Err() *domain.APIError {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

func (h *Handler) IsError() bool {
	return h.Err() != nil
}

func (h *Handler) ErrorID() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.errorID
}

// ErrorMessage is the user-facing text, "" when there is no error.
func (h *Handler) ErrorMessage() string {
	return domain.UserFriendlyMessage(h.Err())
}

func (h *Handler) ShouldShowDetails() bool {
	err := h.Err()
	if err == nil {
		return false
	}
	return domain.ShouldShowDetails(err, h.dev)
}

// Dev reports whether the handler runs in development mode.
func (h *Handler) Dev() bool { return h.dev }
