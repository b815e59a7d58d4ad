package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"syscall"

	"github.com/Taishi66/folio-tui/internal/domain"
)

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 1 << 20

// statusKinds maps HTTP statuses to error kinds when the body does not
// carry a usable code.
var statusKinds = map[int]domain.ErrorKind{
	http.StatusBadRequest:          domain.BadRequest,
	http.StatusUnauthorized:        domain.Unauthorized,
	http.StatusForbidden:           domain.Forbidden,
	http.StatusNotFound:            domain.NotFound,
	http.StatusConflict:            domain.Conflict,
	http.StatusUnprocessableEntity: domain.ValidationError,
	http.StatusTooManyRequests:     domain.RateLimited,
	http.StatusInternalServerError: domain.InternalError,
	http.StatusBadGateway:          domain.InternalError,
	http.StatusServiceUnavailable:  domain.InternalError,
	http.StatusGatewayTimeout:      domain.Timeout,
}

// errorBody is the backend's JSON error envelope.
type errorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Details   string `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// KindForStatus returns the kind for an HTTP status, UnknownError if unmapped.
func KindForStatus(status int) domain.ErrorKind {
	if k, ok := statusKinds[status]; ok {
		return k
	}
	return domain.UnknownError
}

// ParseErrorResponse converts a non-2xx response into an APIError.
// It consumes the body but does not close it. It never fails: a body that
// cannot be decoded falls back to the status table and the decode failure
// is recorded in Details.
func ParseErrorResponse(resp *http.Response) *domain.APIError {
	status := resp.StatusCode

	var raw []byte
	var readErr error
	if resp.Body != nil {
		raw, readErr = io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	}

	var body errorBody
	decodeErr := readErr
	if decodeErr == nil {
		decodeErr = json.Unmarshal(raw, &body)
	}
	if decodeErr == nil && body.Code == "" && body.Message == "" {
		decodeErr = errors.New("error response has no code or message")
	}

	if decodeErr != nil {
		kind := KindForStatus(status)
		e := domain.NewAPIError(kind, fmt.Sprintf("%s (HTTP %d)", domain.DefaultMessage(kind), status))
		e.Details = fmt.Sprintf("Failed to parse error response: %v", decodeErr)
		e.HTTPStatus = status
		e.RequestID = resp.Header.Get("X-Request-Id")
		return e
	}

	kind := domain.ParseErrorKind(body.Code)
	if kind == domain.UnknownError {
		kind = KindForStatus(status)
	}
	message := body.Message
	if message == "" {
		message = domain.DefaultMessage(kind)
	}
	requestID := body.RequestID
	if requestID == "" {
		requestID = resp.Header.Get("X-Request-Id")
	}

	e := domain.NewAPIError(kind, message)
	e.Details = body.Details
	e.HTTPStatus = status
	e.RequestID = requestID
	return e
}

// ParseError classifies a failure that happened without a usable response.
// An APIError already in the chain is returned unchanged.
func ParseError(err error) *domain.APIError {
	if err == nil {
		return nil
	}

	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	kind := domain.UnknownError
	switch {
	case isTimeout(err):
		kind = domain.Timeout
	case isConnectivity(err):
		kind = domain.NetworkError
	case isDecode(err):
		kind = domain.ParseError
	}

	e := domain.NewAPIError(kind, domain.DefaultMessage(kind))
	e.Details = err.Error()
	e.Err = err
	return e
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var t interface{ Timeout() bool }
	if errors.As(err, &t) && t.Timeout() {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "timeout") || strings.Contains(msg, "timed out")
}

func isConnectivity(err error) bool {
	// *url.Error alone says nothing: http.Client wraps every failure in
	// one, including a bad scheme. Only what it wraps counts.
	var opErr *net.OpError
	var dnsErr *net.DNSError
	if errors.As(err, &opErr) || errors.As(err, &dnsErr) {
		return true
	}
	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "dial tcp") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "no such host")
}

func isDecode(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr)
}
