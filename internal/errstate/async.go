package errstate

import (
	"context"
	"sync"

	"github.com/Taishi66/folio-tui/internal/domain"
)

// Async pairs a Handler with a loading flag for one asynchronous
// operation slot.
type Async struct {
	*Handler

	mu         sync.Mutex
	loading    bool
	latestOnly bool
	seq        uint64
}

// AsyncOption configures an Async.
type AsyncOption func(*Async)

// LatestOnly makes only the most recently started Execute call write
// state. Calls superseded by a newer one finish silently.
func LatestOnly() AsyncOption {
	return func(a *Async) { a.latestOnly = true }
}

// NewAsync wraps h, or a default Handler when h is nil.
func NewAsync(h *Handler, opts ...AsyncOption) *Async {
	if h == nil {
		h = NewHandler(Options{})
	}
	a := &Async{Handler: h}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Async) IsLoading() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loading
}

func (a *Async) begin() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.seq++
	a.loading = true
	return a.seq
}

// finish clears loading and reports whether call seq may write state.
func (a *Async) finish(seq uint64) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.latestOnly && seq != a.seq {
		return false
	}
	a.loading = false
	return true
}

// Option configures a single Execute call.
type Option[T any] func(*execOptions[T])

type execOptions[T any] struct {
	onSuccess func(T)
	onError   func(*domain.APIError)
	retry     bool
}

// OnSuccess is called with the result of a successful call.
func OnSuccess[T any](fn func(T)) Option[T] {
	return func(o *execOptions[T]) { o.onSuccess = fn }
}

// OnError is called with the classified failure.
func OnError[T any](fn func(*domain.APIError)) Option[T] {
	return func(o *execOptions[T]) { o.onError = fn }
}

// WithRetry controls whether a retryable failure registers a retry
// callback. It defaults to true.
func WithRetry[T any](enabled bool) Option[T] {
	return func(o *execOptions[T]) { o.retry = enabled }
}

// Execute runs op while tracking loading and error state on a. It never
// returns the failure: ok is false and the error is recorded on a instead.
// A retryable failure registers a callback that runs the same call again.
func Execute[T any](ctx context.Context, a *Async, op func(context.Context) (T, error), opts ...Option[T]) (T, bool) {
	o := execOptions[T]{retry: true}
	for _, opt := range opts {
		opt(&o)
	}

	seq := a.begin()
	a.ClearError()

	v, err := op(ctx)
	if !a.finish(seq) {
		var zero T
		return zero, false
	}

	if err == nil {
		if o.onSuccess != nil {
			o.onSuccess(v)
		}
		return v, true
	}

	apiErr := Normalize(FromError(err))
	a.SetError(FromAPIError(apiErr))
	if o.onError != nil {
		o.onError(apiErr)
	}
	if o.retry && apiErr.IsRetryable() {
		a.SetRetryCallback(func() {
			Execute(ctx, a, op, opts...)
		})
	}

	var zero T
	return zero, false
}
