package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// ErrorKind classifies API failures for retry and severity decisions.
type ErrorKind int

const (
	NetworkError    ErrorKind = iota // connection failed before a response
	Timeout                          // deadline, abort or 504
	NotFound                         // 404
	BadRequest                       // 400
	Unauthorized                     // 401
	Forbidden                        // 403
	Conflict                         // 409
	ValidationError                  // 422
	RateLimited                      // 429
	InternalError                    // 500, 502, 503
	ParseError                       // response body could not be decoded
	UnknownError
)

var kindCodes = map[ErrorKind]string{
	NetworkError:    "NETWORK_ERROR",
	Timeout:         "TIMEOUT",
	NotFound:        "NOT_FOUND",
	BadRequest:      "BAD_REQUEST",
	Unauthorized:    "UNAUTHORIZED",
	Forbidden:       "FORBIDDEN",
	Conflict:        "CONFLICT",
	ValidationError: "VALIDATION_ERROR",
	RateLimited:     "RATE_LIMITED",
	InternalError:   "INTERNAL_ERROR",
	ParseError:      "PARSE_ERROR",
	UnknownError:    "UNKNOWN_ERROR",
}

// Kinds lists every ErrorKind in declaration order.
var Kinds = []ErrorKind{
	NetworkError, Timeout, NotFound, BadRequest, Unauthorized, Forbidden,
	Conflict, ValidationError, RateLimited, InternalError, ParseError, UnknownError,
}

// String returns the wire code used by the backend (e.g. "NOT_FOUND").
func (k ErrorKind) String() string {
	if c, ok := kindCodes[k]; ok {
		return c
	}
	return kindCodes[UnknownError]
}

// ParseErrorKind maps a backend error code to an ErrorKind, ignoring case.
// Unrecognized codes degrade to UnknownError.
func ParseErrorKind(code string) ErrorKind {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	for k, c := range kindCodes {
		if c == normalized {
			return k
		}
	}
	return UnknownError
}

// APIError is the normalized form of every failure shown to the user.
// It is never mutated after construction.
type APIError struct {
	Kind       ErrorKind
	Message    string
	Details    string
	HTTPStatus int // 0 when the failure happened before a response
	RequestID  string
	Timestamp  time.Time
	Err        error
}

// NewAPIError stamps a new error with the current time.
func NewAPIError(kind ErrorKind, message string) *APIError {
	return &APIError{
		Kind:      kind,
		Message:   message,
		Timestamp: time.Now(),
	}
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return DefaultMessage(e.Kind)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func (e *APIError) IsNetworkError() bool {
	return e.Kind == NetworkError || e.Kind == Timeout
}

func (e *APIError) IsClientError() bool {
	return e.HTTPStatus >= 400 && e.HTTPStatus < 500
}

func (e *APIError) IsServerError() bool {
	return e.HTTPStatus >= 500
}

// IsRetryable reports whether re-running the failed operation may succeed.
func (e *APIError) IsRetryable() bool {
	return e.IsNetworkError() || e.IsServerError() || e.Kind == RateLimited
}

type apiErrorJSON struct {
	Name       string  `json:"name"`
	Code       string  `json:"code"`
	Message    string  `json:"message"`
	Details    *string `json:"details,omitempty"`
	HTTPStatus *int    `json:"httpStatus"`
	RequestID  *string `json:"requestId"`
	Timestamp  string  `json:"timestamp"`
}

// MarshalJSON renders the error for logs and reports. Absent optional
// fields are emitted as null so consumers always see the same keys.
func (e *APIError) MarshalJSON() ([]byte, error) {
	out := apiErrorJSON{
		Name:      "ApiError",
		Code:      e.Kind.String(),
		Message:   e.Message,
		Timestamp: e.Timestamp.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	}
	if e.Details != "" {
		out.Details = &e.Details
	}
	if e.HTTPStatus != 0 {
		out.HTTPStatus = &e.HTTPStatus
	}
	if e.RequestID != "" {
		out.RequestID = &e.RequestID
	}
	return json.Marshal(out)
}

// --- Constructors ---

func NewNetworkError(message string) *APIError {
	return NewAPIError(NetworkError, orDefault(message, NetworkError))
}

func NewTimeout(message string) *APIError {
	return NewAPIError(Timeout, orDefault(message, Timeout))
}

// NewNotFound names the missing resource when one is given.
func NewNotFound(resource string) *APIError {
	if resource == "" {
		return NewAPIError(NotFound, DefaultMessage(NotFound))
	}
	return NewAPIError(NotFound, resource+"不存在")
}

func NewBadRequest(message string) *APIError {
	return NewAPIError(BadRequest, orDefault(message, BadRequest))
}

func NewUnauthorized(message string) *APIError {
	return NewAPIError(Unauthorized, orDefault(message, Unauthorized))
}

func NewForbidden(message string) *APIError {
	return NewAPIError(Forbidden, orDefault(message, Forbidden))
}

func NewValidation(message string) *APIError {
	return NewAPIError(ValidationError, orDefault(message, ValidationError))
}

func NewServerError(message string) *APIError {
	return NewAPIError(InternalError, orDefault(message, InternalError))
}

func orDefault(message string, kind ErrorKind) string {
	if message != "" {
		return message
	}
	return DefaultMessage(kind)
}
