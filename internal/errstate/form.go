package errstate

import (
	"encoding/json"
	"sync"

	"github.com/Taishi66/folio-tui/internal/domain"
)

// FieldErrors tracks per-field validation messages for a form, falling
// back to the embedded Handler for anything that is not field-shaped.
type FieldErrors struct {
	*Handler

	mu     sync.Mutex
	fields map[string]string
}

// NewFieldErrors wraps h, or a default Handler when h is nil.
func NewFieldErrors(h *Handler) *FieldErrors {
	if h == nil {
		h = NewHandler(Options{})
	}
	return &FieldErrors{Handler: h, fields: make(map[string]string)}
}

func (f *FieldErrors) SetField(field, message string) {
	f.mu.Lock()
	f.fields[field] = message
	f.mu.Unlock()
}

func (f *FieldErrors) ClearField(field string) {
	f.mu.Lock()
	delete(f.fields, field)
	f.mu.Unlock()
}

func (f *FieldErrors) ClearAll() {
	f.mu.Lock()
	f.fields = make(map[string]string)
	f.mu.Unlock()
}

// Field returns the message for field, "" if none.
func (f *FieldErrors) Field(field string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields[field]
}

func (f *FieldErrors) HasField(field string) bool {
	return f.Field(field) != ""
}

func (f *FieldErrors) HasAny() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.fields) > 0
}

// Fields returns a copy of all field messages.
func (f *FieldErrors) Fields() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string, len(f.fields))
	for k, v := range f.fields {
		out[k] = v
	}
	return out
}

// HandleValidationError spreads a validation error whose details are a
// JSON object of field messages onto the fields, replacing any previous
// ones. Every other error goes to the Handler.
func (f *FieldErrors) HandleValidationError(err *domain.APIError) {
	if err == nil {
		return
	}
	if err.Kind == domain.ValidationError && err.Details != "" {
		var fields map[string]string
		if jsonErr := json.Unmarshal([]byte(err.Details), &fields); jsonErr == nil && fields != nil {
			f.mu.Lock()
			f.fields = fields
			f.mu.Unlock()
			return
		}
	}
	f.SetError(FromAPIError(err))
}
