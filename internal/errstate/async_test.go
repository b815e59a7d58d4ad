package errstate

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Taishi66/folio-tui/internal/domain"
)

func TestExecute_Success(t *testing.T) {
	a := NewAsync(nil)
	a.SetError(FromMessage("stale"))

	var got []string
	v, ok := Execute(context.Background(), a,
		func(context.Context) ([]string, error) {
			if !a.IsLoading() {
				t.Error("loading should be set while op runs")
			}
			if a.IsError() {
				t.Error("previous error should be cleared before op runs")
			}
			return []string{"a", "b"}, nil
		},
		OnSuccess(func(v []string) { got = v }),
	)
	if !ok || len(v) != 2 {
		t.Fatalf("Execute = %v, %v", v, ok)
	}
	if len(got) != 2 {
		t.Error("OnSuccess not called with result")
	}
	if a.IsLoading() || a.IsError() {
		t.Error("loading and error should be clear after success")
	}
}

func TestExecute_FailureIsRecordedNotReturned(t *testing.T) {
	a := NewAsync(nil)
	var seen *domain.APIError
	v, ok := Execute(context.Background(), a,
		func(context.Context) (int, error) { return 7, errors.New("connection refused") },
		OnError[int](func(e *domain.APIError) { seen = e }),
	)
	if ok || v != 0 {
		t.Errorf("Execute = %v, %v; want zero, false", v, ok)
	}
	if seen == nil || seen.Kind != domain.NetworkError {
		t.Errorf("OnError got %v", seen)
	}
	if a.Err() != seen {
		t.Error("recorded error should be the one passed to OnError")
	}
	if a.IsLoading() {
		t.Error("loading should be cleared after failure")
	}
}

// A retryable failure re-invokes the operation exactly once
// per Retry.
func TestExecute_RetryReinvokesOnce(t *testing.T) {
	a := NewAsync(nil)
	calls := 0
	op := func(context.Context) (string, error) {
		calls++
		if calls == 1 {
			return "", domain.NewTimeout("")
		}
		return "ok", nil
	}

	var result string
	Execute(context.Background(), a, op, OnSuccess(func(s string) { result = s }))
	if !a.CanRetry() {
		t.Fatal("timeout should be retryable")
	}

	a.Retry()
	if calls != 2 {
		t.Errorf("op called %d times, want 2", calls)
	}
	if result != "ok" {
		t.Errorf("OnSuccess after retry got %q", result)
	}
	if a.IsError() {
		t.Error("error should be cleared after a successful retry")
	}
}

func TestExecute_NonRetryableRegistersNothing(t *testing.T) {
	a := NewAsync(nil)
	calls := 0
	Execute(context.Background(), a, func(context.Context) (int, error) {
		calls++
		return 0, domain.NewNotFound("项目")
	})
	a.Retry()
	if calls != 1 {
		t.Errorf("op called %d times, want 1", calls)
	}
	if !a.IsError() {
		t.Error("no-op retry must keep the error")
	}
}

func TestExecute_WithRetryDisabled(t *testing.T) {
	a := NewAsync(nil)
	calls := 0
	Execute(context.Background(), a, func(context.Context) (int, error) {
		calls++
		return 0, domain.NewServerError("")
	}, WithRetry[int](false))
	a.Retry()
	if calls != 1 {
		t.Errorf("op called %d times, want 1", calls)
	}
}

// race runs two overlapping Execute calls on a. The second call starts
// after the first and resolves before it.
func race(t *testing.T, a *Async) (firstDone, secondDone chan struct{}) {
	t.Helper()
	releaseFirst := make(chan struct{})
	firstStarted := make(chan struct{})
	firstDone = make(chan struct{})
	secondDone = make(chan struct{})

	go func() {
		defer close(firstDone)
		Execute(context.Background(), a, func(context.Context) (int, error) {
			close(firstStarted)
			<-releaseFirst
			return 0, domain.NewServerError("first")
		})
	}()
	<-firstStarted

	go func() {
		defer close(secondDone)
		Execute(context.Background(), a, func(context.Context) (int, error) {
			return 0, domain.NewNotFound("second")
		})
	}()
	<-secondDone
	close(releaseFirst)
	<-firstDone
	return firstDone, secondDone
}

// Without a guard, the call that resolves last wins even
// though it started first.
func TestExecute_LastWriteWins(t *testing.T) {
	a := NewAsync(nil)
	race(t, a)
	if got := a.Err(); got == nil || got.Kind != domain.InternalError {
		t.Errorf("Err = %v, want the first-started, last-resolved InternalError", got)
	}
	if a.IsLoading() {
		t.Error("loading should be cleared")
	}
}

func TestExecute_LatestOnly(t *testing.T) {
	a := NewAsync(nil, LatestOnly())
	race(t, a)
	if got := a.Err(); got == nil || got.Kind != domain.NotFound {
		t.Errorf("Err = %v, want the latest-started NotFound", got)
	}
	if a.IsLoading() {
		t.Error("loading should be cleared by the latest call")
	}
}

func TestExecute_ConcurrentCallsAreSafe(t *testing.T) {
	a := NewAsync(nil)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			Execute(context.Background(), a, func(context.Context) (int, error) {
				if i%2 == 0 {
					return 0, domain.NewTimeout("")
				}
				return i, nil
			})
		}(i)
	}
	wg.Wait()
	if a.IsLoading() {
		t.Error("loading should be cleared once all calls finish")
	}
}
