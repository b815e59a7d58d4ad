package domain

// Severity drives how loudly an error is presented.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityCritical:
		return "critical"
	default:
		return "error"
	}
}

// SeverityOf maps an error kind to its display severity.
func SeverityOf(kind ErrorKind) Severity {
	switch kind {
	case Unauthorized, Forbidden:
		return SeverityCritical
	case InternalError:
		return SeverityError
	case ValidationError, BadRequest:
		return SeverityWarning
	case NotFound, NetworkError, Timeout:
		return SeverityInfo
	default:
		return SeverityError
	}
}
