package pformat

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind categorises a FormatError.
type ErrorKind string

const (
	KindMalformedIndex     ErrorKind = "malformed_index"
	KindMalformedAlignment ErrorKind = "malformed_alignment"
	KindUnsupportedSpec    ErrorKind = "unsupported_spec"
)

// Sentinels for errors.Is checks.
var (
	ErrMalformedIndex     = &FormatError{Kind: KindMalformedIndex}
	ErrMalformedAlignment = &FormatError{Kind: KindMalformedAlignment}
	ErrUnsupportedSpec    = &FormatError{Kind: KindUnsupportedSpec}
	ErrIndexRange         = &IndexRangeError{}
)

// FormatError reports a placeholder that could not be interpreted.
type FormatError struct {
	Kind    ErrorKind
	Token   string
	Offset  int
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	var parts []string

	parts = append(parts, "pformat:")
	if e.Token != "" {
		parts = append(parts, fmt.Sprintf("token %q at offset %d:", e.Token, e.Offset))
	}

	msg := e.Message
	if msg == "" {
		msg = strings.ReplaceAll(string(e.Kind), "_", " ")
	}
	parts = append(parts, msg)

	result := strings.Join(parts, " ")
	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}

	return result
}

// Unwrap returns the underlying cause error.
func (e *FormatError) Unwrap() error {
	return e.Cause
}

// Is matches any FormatError of the same kind.
func (e *FormatError) Is(target error) bool {
	var t *FormatError
	if errors.As(target, &t) {
		return t.Kind == "" || e.Kind == t.Kind
	}

	return false
}

// IndexRangeError reports a placeholder index that cannot address the
// argument list.
type IndexRangeError struct {
	Index  int
	Args   int
	Token  string
	Offset int
}

// Error implements the error interface.
func (e *IndexRangeError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("pformat: token %q at offset %d: negative index %d",
			e.Token, e.Offset, e.Index)
	}

	return fmt.Sprintf("pformat: token %q at offset %d: index %d out of range for %d argument(s)",
		e.Token, e.Offset, e.Index, e.Args)
}

// Is matches any IndexRangeError.
func (e *IndexRangeError) Is(target error) bool {
	var t *IndexRangeError

	return errors.As(target, &t)
}

func malformedIndex(raw rawToken, cause error) *FormatError {
	return &FormatError{
		Kind:    KindMalformedIndex,
		Token:   raw.text,
		Offset:  raw.start,
		Message: "invalid placeholder index",
		Cause:   cause,
	}
}

func malformedAlignment(raw rawToken, cause error) *FormatError {
	return &FormatError{
		Kind:    KindMalformedAlignment,
		Token:   raw.text,
		Offset:  raw.start,
		Message: "invalid placeholder alignment",
		Cause:   cause,
	}
}

func unsupportedSpec(spec string, value any) *FormatError {
	return &FormatError{
		Kind:    KindUnsupportedSpec,
		Message: fmt.Sprintf("format spec %q does not apply to %T", spec, value),
	}
}
