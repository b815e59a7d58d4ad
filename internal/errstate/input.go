package errstate

import (
	"github.com/Taishi66/folio-tui/internal/api"
	"github.com/Taishi66/folio-tui/internal/domain"
)

const unknownMessage = "未知错误"

// Input is anything SetError accepts. Build one with FromAPIError,
// FromError or FromMessage.
type Input interface {
	isInput()
}

type apiInput struct{ err *domain.APIError }
type errInput struct{ err error }
type msgInput struct{ msg string }

func (apiInput) isInput() {}
func (errInput) isInput() {}
func (msgInput) isInput() {}

// FromAPIError wraps an already classified error; it is stored as is.
func FromAPIError(err *domain.APIError) Input { return apiInput{err} }

// FromError wraps an arbitrary failure; it is classified on Normalize.
func FromError(err error) Input { return errInput{err} }

// FromMessage wraps a bare message; it becomes an UnknownError.
func FromMessage(msg string) Input { return msgInput{msg} }

// Normalize converts in to the canonical error. It never returns nil.
func Normalize(in Input) *domain.APIError {
	switch v := in.(type) {
	case apiInput:
		if v.err != nil {
			return v.err
		}
	case errInput:
		if e := api.ParseError(v.err); e != nil {
			return e
		}
	case msgInput:
		if v.msg != "" {
			return domain.NewAPIError(domain.UnknownError, v.msg)
		}
	}
	return domain.NewAPIError(domain.UnknownError, unknownMessage)
}
