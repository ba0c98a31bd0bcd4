// Package validate carries the outcome of domain checks on command-line input.
// Argument shape is parsed elsewhere; these results say whether parsed values
// make sense for the tool, and why not when they don't.
package validate

import "fmt"

// Result is either Valid with a value or Invalid with a reason.
type Result[T any] struct {
	value  T
	reason string
	code   int
	valid  bool
}

// Valid wraps an accepted value.
func Valid[T any](v T) Result[T] {
	return Result[T]{value: v, valid: true}
}

// Invalid rejects the input with a human readable reason.
func Invalid[T any](format string, args ...interface{}) Result[T] {
	return Result[T]{reason: fmt.Sprintf(format, args...), code: 1}
}

// InvalidCode rejects the input and records the process exit code a caller
// should use when reporting it.
func InvalidCode[T any](code int, format string, args ...interface{}) Result[T] {
	r := Invalid[T](format, args...)
	r.code = code
	return r
}

// OK reports whether the result is Valid.
func (r Result[T]) OK() bool { return r.valid }

// Value returns the accepted value and whether there was one.
func (r Result[T]) Value() (T, bool) { return r.value, r.valid }

// Reason is empty for Valid results.
func (r Result[T]) Reason() string { return r.reason }

// Code is the exit code attached to an Invalid result, 0 when Valid.
func (r Result[T]) Code() int {
	if r.valid {
		return 0
	}
	return r.code
}

// Err converts an Invalid result into an *Error, nil when Valid.
func (r Result[T]) Err() error {
	if r.valid {
		return nil
	}
	return &Error{Reason: r.reason, Code: r.code}
}

// Error is the error form of an Invalid result.
type Error struct {
	Reason string
	Code   int
}

func (e *Error) Error() string { return e.Reason }
