package argument

// Result is the outcome of a parse: either a value or a *ParseError.
type Result[T any] struct {
	value T
	err   *ParseError
}

// Success returns a successful Result holding v.
func Success[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Failure returns a failed Result. err must not be nil.
func Failure[T any](err *ParseError) Result[T] {
	if err == nil {
		panic("argument: Failure called with nil error")
	}
	return Result[T]{err: err}
}

// Ok reports whether the parse succeeded.
func (r Result[T]) Ok() bool { return r.err == nil }

// Value returns the parsed value, or the zero value on failure.
func (r Result[T]) Value() T { return r.value }

// Err returns the failure, or nil on success.
func (r Result[T]) Err() *ParseError { return r.err }

// Get returns the value and the failure as a plain error.
func (r Result[T]) Get() (T, error) {
	if r.err != nil {
		return r.value, r.err
	}
	return r.value, nil
}

