package readout

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// Kind classifies why a field could not be produced.
type Kind int

const (
	// KindNotImplemented means the platform does not support the field at all.
	KindNotImplemented Kind = iota + 1
	// KindMetricNotAvailable means the field is supported but this attempt failed.
	KindMetricNotAvailable
	// KindOther is an unexpected backend error, kept for diagnostics.
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindNotImplemented:
		return "not implemented"
	case KindMetricNotAvailable:
		return "metric not available"
	case KindOther:
		return "other"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Sentinels for errors.Is. Any *Error matches the sentinel of its Kind.
var (
	ErrNotImplemented     = errors.New("not implemented")
	ErrMetricNotAvailable = errors.New("metric not available")
	ErrOther              = errors.New("other")
)

func (k Kind) sentinel() error {
	switch k {
	case KindNotImplemented:
		return ErrNotImplemented
	case KindMetricNotAvailable:
		return ErrMetricNotAvailable
	default:
		return ErrOther
	}
}

// Error is the failure value returned by every adapter, resolver and readout.
type Error struct {
	Kind Kind
	// Field is empty when the error was raised by an adapter that does not
	// know which field it serves; the resolver fills it in.
	Field Field
	// Adapter names the adapter that produced the error, if any.
	Adapter string
	// Attempted lists every adapter tried, in chain order, when a whole chain failed.
	Attempted []string
	// Causes holds the per-adapter failures behind Attempted.
	Causes []*Error
	Detail string
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder

	if !e.Field.IsZero() {
		b.WriteString(e.Field.String())
		b.WriteString(": ")
	}

	b.WriteString(e.Kind.String())

	if e.Adapter != "" {
		fmt.Fprintf(&b, " [%s]", e.Adapter)
	}

	if len(e.Attempted) > 0 {
		fmt.Fprintf(&b, " (tried %d: %s)", len(e.Attempted), strings.Join(e.Attempted, ", "))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Err != nil && e.Detail == "" {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}

	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the Kind sentinels.
func (e *Error) Is(target error) bool {
	return target == e.Kind.sentinel()
}

// NotImplemented reports a field the platform does not support.
func NotImplemented(field Field) *Error {
	return &Error{Kind: KindNotImplemented, Field: field}
}

// Unavailable reports a supported field that could not be read right now.
func Unavailable(detail string) *Error {
	return &Error{Kind: KindMetricNotAvailable, Detail: detail}
}

// Unavailablef is Unavailable with formatting.
func Unavailablef(format string, args ...any) *Error {
	return Unavailable(fmt.Sprintf(format, args...))
}

// Other reports an unexpected backend error.
func Other(detail string) *Error {
	return &Error{Kind: KindOther, Detail: detail}
}

// Otherf is Other with formatting.
func Otherf(format string, args ...any) *Error {
	return Other(fmt.Sprintf(format, args...))
}

// Wrap classifies err. Missing files and permission problems are treated as
// MetricNotAvailable, anything that is not already an *Error becomes KindOther.
func Wrap(err error) *Error {
	if err == nil {
		return nil
	}

	var re *Error
	if errors.As(err, &re) {
		cp := *re
		return &cp
	}

	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return &Error{Kind: KindMetricNotAvailable, Err: err}
	}

	return &Error{Kind: KindOther, Err: err}
}

// KindOf returns the Kind carried by err, or 0 when err is nil.
func KindOf(err error) Kind {
	if err == nil {
		return 0
	}

	return Wrap(err).Kind
}

// IsNotImplemented reports whether err is a KindNotImplemented failure.
func IsNotImplemented(err error) bool { return errors.Is(err, ErrNotImplemented) }

// IsUnavailable reports whether err is a KindMetricNotAvailable failure.
func IsUnavailable(err error) bool { return errors.Is(err, ErrMetricNotAvailable) }
