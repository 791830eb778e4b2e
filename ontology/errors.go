package ontology

import (
	"errors"
	"fmt"
)

// Sentinel conditions of the translation engine. Callers match them with
// errors.Is; the concrete error carries the detail.
var (
	// ErrMalformedPattern: a statement matched a kind's predicate but not its shape.
	ErrMalformedPattern = errors.New("malformed pattern")
	// ErrSignatureConflict: an IRI would be used as two incompatible entity kinds.
	ErrSignatureConflict = errors.New("signature conflict")
	// ErrNotFound: a node has no declaration matching the requested role.
	ErrNotFound = errors.New("not found")
	// ErrInvariantViolation: an internal consistency check failed.
	ErrInvariantViolation = errors.New("invariant violation")
	// ErrUnsupported: the operation does not apply to the given axiom kind.
	ErrUnsupported = errors.New("unsupported")
)

// ErrorClass groups errors by how the caller should react.
type ErrorClass int

const (
	// ErrorRecoverable errors are skipped locally on the read path.
	ErrorRecoverable ErrorClass = iota
	// ErrorRejected errors reject a mutation and leave the graph unchanged.
	ErrorRejected
	// ErrorFatal errors indicate a programming or storage fault.
	ErrorFatal
)

func (c ErrorClass) String() string {
	switch c {
	case ErrorRecoverable:
		return "recoverable"
	case ErrorRejected:
		return "rejected"
	case ErrorFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Error wraps a sentinel condition with its classification and context.
type Error struct {
	Class     ErrorClass
	Err       error
	Message   string
	Component string
	Operation string
}

func (e *Error) Error() string {
	prefix := ""
	if e.Component != "" {
		prefix = e.Component + "." + e.Operation + ": "
	}
	if e.Message != "" {
		return prefix + e.Message
	}
	return prefix + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Malformed reports a structural anomaly in the graph.
func Malformed(format string, args ...any) error {
	return &Error{
		Class:   ErrorRecoverable,
		Err:     ErrMalformedPattern,
		Message: fmt.Sprintf("%s: %s", ErrMalformedPattern, fmt.Sprintf(format, args...)),
	}
}

// NotFoundf reports a missing declaration.
func NotFoundf(format string, args ...any) error {
	return &Error{
		Class:   ErrorRecoverable,
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s: %s", ErrNotFound, fmt.Sprintf(format, args...)),
	}
}

// Conflict reports a punning violation on iri.
func Conflict(iri string, kinds ...EntityKind) error {
	return &Error{
		Class:   ErrorRejected,
		Err:     ErrSignatureConflict,
		Message: fmt.Sprintf("%s: <%s> used as %v", ErrSignatureConflict, iri, kinds),
	}
}

// Invariant reports an internal consistency failure.
func Invariant(format string, args ...any) error {
	return &Error{
		Class:   ErrorFatal,
		Err:     ErrInvariantViolation,
		Message: fmt.Sprintf("%s: %s", ErrInvariantViolation, fmt.Sprintf(format, args...)),
	}
}

// Wrap adds component and operation context to err, keeping its class.
// Returns nil if err is nil.
func Wrap(err error, component, operation, action string) error {
	if err == nil {
		return nil
	}
	class := ErrorFatal
	var e *Error
	if errors.As(err, &e) {
		class = e.Class
	}
	return &Error{
		Class:     class,
		Err:       err,
		Message:   fmt.Sprintf("%s failed: %v", action, err),
		Component: component,
		Operation: operation,
	}
}

// Classify returns the class of err. Unclassified errors are fatal.
func Classify(err error) ErrorClass {
	var e *Error
	if errors.As(err, &e) {
		return e.Class
	}
	if errors.Is(err, ErrMalformedPattern) || errors.Is(err, ErrNotFound) {
		return ErrorRecoverable
	}
	if errors.Is(err, ErrSignatureConflict) {
		return ErrorRejected
	}
	return ErrorFatal
}

// IsRecoverable reports whether a read may skip past err.
func IsRecoverable(err error) bool {
	return err != nil && Classify(err) == ErrorRecoverable
}

// IsFatal reports whether err must abort the current operation.
func IsFatal(err error) bool {
	return err != nil && Classify(err) == ErrorFatal
}
