// Copyright (c) 2025 Conflux Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package conflux

import (
	"fmt"
	"strings"
)

// MissingValueError occurs when a descriptor expects a value at a path and
// every consulted source resolves it to absence.
type MissingValueError struct {
	Path []string
}

// Error implements the error interface.
func (e MissingValueError) Error() string {
	return fmt.Sprintf("missing value at %s", renderPath(e.Path))
}

// ConversionError occurs when a value is present but cannot be converted
// to the expected kind. It keeps the offending raw string and the path so
// the failing source entry can be found and fixed.
type ConversionError struct {
	Path     []string
	Raw      string
	Expected string
	Cause    error
}

// Error implements the error interface.
func (e ConversionError) Error() string {
	return fmt.Sprintf("cannot convert %q at %s to %s: %s", e.Raw, renderPath(e.Path), e.Expected, e.Cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e ConversionError) Unwrap() error {
	return e.Cause
}

// SourceError occurs when a source itself fails to resolve a path, for
// example an I/O failure inside a custom adapter. Source errors are fatal:
// neither [OrElseEither] nor [Source.OrElse] falls back past one.
type SourceError struct {
	Source string
	Cause  error
}

// Error implements the error interface.
func (e SourceError) Error() string {
	return fmt.Sprintf("source %s failed: %s", e.Source, e.Cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e SourceError) Unwrap() error {
	return e.Cause
}

// AndError accumulates independent failures from both branches of a [Zip],
// so one read reports every broken path instead of only the first.
type AndError struct {
	Errors []error
}

// Error implements the error interface.
func (e AndError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e AndError) Unwrap() []error {
	return e.Errors
}

// OrError occurs when both branches of an [OrElseEither] or [OrElse] fail.
// The message leads with the last attempted branch; the first branch stays
// reachable through Unwrap and [FormatError].
type OrError struct {
	Left  error
	Right error
}

// Error implements the error interface.
func (e OrError) Error() string {
	return fmt.Sprintf("%s (first alternative failed: %s)", e.Right, e.Left)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e OrError) Unwrap() []error {
	return []error{e.Left, e.Right}
}

// AtIndexError annotates a failure inside a sequence element with its
// position.
type AtIndexError struct {
	Path  []string
	Index int
	Cause error
}

// Error implements the error interface.
func (e AtIndexError) Error() string {
	return fmt.Sprintf("at %s[%d]: %s", renderPath(e.Path), e.Index, e.Cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e AtIndexError) Unwrap() error {
	return e.Cause
}

// EmptyEitherError occurs when writing an [Either] with neither side set.
type EmptyEitherError struct{}

// Error implements the error interface.
func (EmptyEitherError) Error() string {
	return "neither side of the either value is set"
}

func renderPath(path []string) string {
	if len(path) == 0 {
		return "<root>"
	}
	return strings.Join(path, ".")
}

// recoverable reports whether a read failure may be retried against an
// alternate branch. Missing values and conversion failures are
// recoverable; a failure of the source itself is not.
func recoverable(err error) bool {
	found := false
	walk(err, func(e error) {
		if _, ok := e.(SourceError); ok {
			found = true
		}
	})
	return !found
}

// missingOnly reports whether a failure is entirely about absent values.
// Default substitution applies only to such failures: a present but
// malformed value must surface, not silently become the fallback.
func missingOnly(err error) bool {
	switch e := err.(type) {
	case MissingValueError:
		return true
	case AndError:
		for _, sub := range e.Errors {
			if !missingOnly(sub) {
				return false
			}
		}
		return true
	case OrError:
		return missingOnly(e.Left) && missingOnly(e.Right)
	default:
		return false
	}
}

func walk(err error, f func(error)) {
	if err == nil {
		return
	}
	f(err)
	switch e := err.(type) {
	case interface{ Unwrap() []error }:
		for _, sub := range e.Unwrap() {
			walk(sub, f)
		}
	case interface{ Unwrap() error }:
		walk(e.Unwrap(), f)
	}
}

// FormatError renders a read failure as an indented multi-line report,
// one line per failing path and reason.
func FormatError(err error) string {
	var sb strings.Builder
	formatError(&sb, err, 0)
	return sb.String()
}

func formatError(sb *strings.Builder, err error, depth int) {
	indent := strings.Repeat("  ", depth)
	switch e := err.(type) {
	case AndError:
		sb.WriteString(indent + "all of the following failed:\n")
		for _, sub := range e.Errors {
			formatError(sb, sub, depth+1)
		}
	case OrError:
		sb.WriteString(indent + "every alternative failed:\n")
		formatError(sb, e.Left, depth+1)
		formatError(sb, e.Right, depth+1)
	case AtIndexError:
		fmt.Fprintf(sb, "%sat %s[%d]:\n", indent, renderPath(e.Path), e.Index)
		formatError(sb, e.Cause, depth+1)
	default:
		sb.WriteString(indent + err.Error() + "\n")
	}
}
