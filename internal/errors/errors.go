package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind classifies a failure so callers can decide whether to retry or degrade.
type Kind string

const (
	KindTransport  Kind = "transport"  // network or HTTP status failure
	KindDecode     Kind = "decode"     // payload does not match the expected shape
	KindCredential Kind = "credential" // no usable token, or the provider rejected a grant
	KindPersist    Kind = "persist"    // durable store read/write failure
	KindParse      Kind = "parse"      // a single textual field could not be parsed
)

// Error carries the kind of failure, the operation that produced it and the cause.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Op)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Transport wraps a network or non-2xx HTTP failure.
func Transport(op string, err error) error { return newError(KindTransport, op, err) }

// Decode wraps a payload decoding failure.
func Decode(op string, err error) error { return newError(KindDecode, op, err) }

// Credential wraps a missing or rejected credential.
func Credential(op string, err error) error { return newError(KindCredential, op, err) }

// Persist wraps a durable store failure.
func Persist(op string, err error) error { return newError(KindPersist, op, err) }

// Parse wraps a single field parse failure.
func Parse(op string, err error) error { return newError(KindParse, op, err) }

// KindOf returns the kind of the first *Error in err's chain, or "" when there is none.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Retryable reports whether err is worth another attempt.
func Retryable(err error) bool {
	switch KindOf(err) {
	case KindTransport, KindDecode:
		return true
	default:
		return false
	}
}
