package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"testing"

	"github.com/Taishi66/folio-tui/internal/domain"
)

func newResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     make(http.Header),
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestParseErrorResponse_StatusTableWithUnparsableBody(t *testing.T) {
	tests := []struct {
		status    int
		want      domain.ErrorKind
		retryable bool
	}{
		{400, domain.BadRequest, false},
		{401, domain.Unauthorized, false},
		{403, domain.Forbidden, false},
		{404, domain.NotFound, false},
		{409, domain.Conflict, false},
		{422, domain.ValidationError, false},
		{429, domain.RateLimited, true},
		{500, domain.InternalError, true},
		{502, domain.InternalError, true},
		{503, domain.InternalError, true},
		{504, domain.Timeout, true},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.status), func(t *testing.T) {
			apiErr := ParseErrorResponse(newResponse(tt.status, "<html>upstream error</html>"))
			if apiErr.Kind != tt.want {
				t.Errorf("Kind = %v, want %v", apiErr.Kind, tt.want)
			}
			if apiErr.IsRetryable() != tt.retryable {
				t.Errorf("IsRetryable() = %v, want %v", apiErr.IsRetryable(), tt.retryable)
			}
			if apiErr.HTTPStatus != tt.status {
				t.Errorf("HTTPStatus = %d, want %d", apiErr.HTTPStatus, tt.status)
			}
			if !strings.Contains(apiErr.Message, fmt.Sprintf("HTTP %d", tt.status)) {
				t.Errorf("Message = %q, want it to mention the status", apiErr.Message)
			}
			if !strings.HasPrefix(apiErr.Details, "Failed to parse error response:") {
				t.Errorf("Details = %q, want parse diagnostic", apiErr.Details)
			}
		})
	}
}

func TestParseErrorResponse_UnmappedStatus(t *testing.T) {
	apiErr := ParseErrorResponse(newResponse(418, ""))
	if apiErr.Kind != domain.UnknownError {
		t.Errorf("Kind = %v, want UnknownError", apiErr.Kind)
	}
	if apiErr.IsRetryable() {
		t.Error("418 should not be retryable")
	}
}

func TestParseErrorResponse_NotFoundWithBody(t *testing.T) {
	resp := newResponse(404, `{"code":"NOT_FOUND","message":"项目不存在"}`)
	apiErr := ParseErrorResponse(resp)

	if apiErr.Kind != domain.NotFound {
		t.Errorf("Kind = %v, want NotFound", apiErr.Kind)
	}
	if apiErr.IsRetryable() {
		t.Error("404 should not be retryable")
	}
	if got := domain.UserFriendlyMessage(apiErr); got != "项目不存在" {
		t.Errorf("UserFriendlyMessage = %q, want 项目不存在", got)
	}
	if apiErr.Details != "" {
		t.Errorf("Details = %q, want empty", apiErr.Details)
	}
}

func TestParseErrorResponse_ServiceUnavailableUnparsable(t *testing.T) {
	apiErr := ParseErrorResponse(newResponse(503, "Service Unavailable"))

	if apiErr.Kind != domain.InternalError {
		t.Errorf("Kind = %v, want InternalError", apiErr.Kind)
	}
	if !apiErr.IsRetryable() {
		t.Error("503 should be retryable")
	}
	if !strings.Contains(apiErr.Message, "HTTP 503") {
		t.Errorf("Message = %q, want it to contain HTTP 503", apiErr.Message)
	}
}

func TestParseErrorResponse_CodeIsCaseInsensitive(t *testing.T) {
	apiErr := ParseErrorResponse(newResponse(400, `{"code":"validation_error","message":"标题不能为空","details":"{\"title\":\"required\"}","request_id":"r-1"}`))
	if apiErr.Kind != domain.ValidationError {
		t.Errorf("Kind = %v, want ValidationError", apiErr.Kind)
	}
	if apiErr.RequestID != "r-1" {
		t.Errorf("RequestID = %q, want r-1", apiErr.RequestID)
	}
	if apiErr.Details != `{"title":"required"}` {
		t.Errorf("Details = %q", apiErr.Details)
	}
}

func TestParseErrorResponse_UnknownCodeFallsBackToStatus(t *testing.T) {
	apiErr := ParseErrorResponse(newResponse(409, `{"code":"WIDGET_JAMMED","message":"jammed"}`))
	if apiErr.Kind != domain.Conflict {
		t.Errorf("Kind = %v, want Conflict (status mapping wins over unknown code)", apiErr.Kind)
	}
	if apiErr.Message != "jammed" {
		t.Errorf("Message = %q, want server message", apiErr.Message)
	}

	unmapped := ParseErrorResponse(newResponse(418, `{"code":"WIDGET_JAMMED","message":"jammed"}`))
	if unmapped.Kind != domain.UnknownError {
		t.Errorf("Kind = %v, want UnknownError", unmapped.Kind)
	}
}

func TestParseErrorResponse_EmptyMessageUsesTable(t *testing.T) {
	apiErr := ParseErrorResponse(newResponse(403, `{"code":"FORBIDDEN","message":""}`))
	if apiErr.Message != domain.DefaultMessage(domain.Forbidden) {
		t.Errorf("Message = %q, want table entry", apiErr.Message)
	}
}

func TestParseErrorResponse_RequestIDHeader(t *testing.T) {
	resp := newResponse(500, `{"code":"INTERNAL_ERROR","message":"boom"}`)
	resp.Header.Set("X-Request-Id", "hdr-7")
	if got := ParseErrorResponse(resp).RequestID; got != "hdr-7" {
		t.Errorf("RequestID = %q, want hdr-7", got)
	}
}

func TestParseErrorResponse_NilBody(t *testing.T) {
	resp := &http.Response{StatusCode: 502, Header: make(http.Header)}
	apiErr := ParseErrorResponse(resp)
	if apiErr.Kind != domain.InternalError {
		t.Errorf("Kind = %v, want InternalError", apiErr.Kind)
	}
}

// The status table must never yield UnknownError for a mapped status.
func TestParseErrorResponse_KnownStatusNeverUnknown(t *testing.T) {
	for status := range statusKinds {
		for _, body := range []string{"", "{}", `{"code":"UNKNOWN_ERROR","message":"x"}`, `{"code":"???","message":"x"}`} {
			if k := ParseErrorResponse(newResponse(status, body)).Kind; k == domain.UnknownError {
				t.Errorf("status %d body %q produced UnknownError", status, body)
			}
		}
	}
}

func TestParseError_Nil(t *testing.T) {
	if ParseError(nil) != nil {
		t.Error("ParseError(nil) should be nil")
	}
}

func TestParseError_PassesThroughAPIError(t *testing.T) {
	orig := domain.NewNotFound("项目")
	wrapped := fmt.Errorf("loading: %w", orig)
	if got := ParseError(wrapped); got != orig {
		t.Errorf("ParseError should return the wrapped APIError unchanged, got %+v", got)
	}
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o wait" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestParseError_Classification(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want domain.ErrorKind
	}{
		{"deadline", context.DeadlineExceeded, domain.Timeout},
		{"canceled", context.Canceled, domain.Timeout},
		{"timeout interface", timeoutErr{}, domain.Timeout},
		{"timeout message", errors.New("request timeout after 10s"), domain.Timeout},
		{"url timeout", &url.Error{Op: "Get", URL: "http://x", Err: timeoutErr{}}, domain.Timeout},
		{"dial refused", &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}, domain.NetworkError},
		{"dns", &net.DNSError{Err: "no such host", Name: "api.invalid"}, domain.NetworkError},
		{"url dial", &url.Error{Op: "Get", URL: "http://x", Err: &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}}, domain.NetworkError},
		{"url eof", &url.Error{Op: "Get", URL: "http://x", Err: io.EOF}, domain.NetworkError},
		{"bad scheme", &url.Error{Op: "Get", URL: "localhost:8000/api/projects", Err: errors.New(`unsupported protocol scheme "localhost"`)}, domain.UnknownError},
		{"reset", fmt.Errorf("read: %w", syscall.ECONNRESET), domain.NetworkError},
		{"refused message", errors.New("connection refused"), domain.NetworkError},
		{"json syntax", json.Unmarshal([]byte("{"), &struct{}{}), domain.ParseError},
		{"json type", json.Unmarshal([]byte(`{"a":"x"}`), &struct{ A int }{}), domain.ParseError},
		{"other", errors.New("something odd"), domain.UnknownError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := ParseError(tt.err)
			if apiErr.Kind != tt.want {
				t.Errorf("Kind = %v, want %v", apiErr.Kind, tt.want)
			}
			if apiErr.Details != tt.err.Error() {
				t.Errorf("Details = %q, want original error text", apiErr.Details)
			}
			if !errors.Is(apiErr, tt.err) {
				t.Error("APIError should wrap the original error")
			}
			if apiErr.Message == "" {
				t.Error("Message should never be empty")
			}
		})
	}
}
