package core

// Result is the outcome of one remote call: a value or the reason it failed.
// A successful Result holding a zero value means the chain answered with
// nothing, which is distinct from a failed call.
type Result[T any] struct {
	value T
	err   error
}

// Success wraps the value of a completed call.
func Success[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Failure wraps the reason a call did not complete.
func Failure[T any](err error) Result[T] {
	return Result[T]{err: err}
}

// Ok reports whether the call completed.
func (r Result[T]) Ok() bool {
	return r.err == nil
}

// Err returns the failure reason, nil on success.
func (r Result[T]) Err() error {
	return r.err
}

// Unwrap returns the value and the failure reason.
func (r Result[T]) Unwrap() (T, error) {
	return r.value, r.err
}

// OrAbsent returns the value, or the zero value of T when the call failed.
func (r Result[T]) OrAbsent() T {
	if r.err != nil {
		var absent T
		return absent
	}
	return r.value
}
