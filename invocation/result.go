package invocation

// Result is the terminal outcome of an invocation: either Value (Failure == nil)
// or Failure.
type Result[T any] struct {
	Value   T
	Failure *Failure
}

// Success creates a success result.
func Success[T any](value T) Result[T] {
	return Result[T]{Value: value}
}

// Failed creates a failure result.
func Failed[T any](err error) Result[T] {
	failure := AsFailure(err)
	if failure == nil {
		failure = &Failure{Kind: HostExecutionFailure, Message: "unspecified failure"}
	}
	return Result[T]{Failure: failure}
}

func (r Result[T]) IsSuccess() bool {
	return r.Failure == nil
}

// Unpack returns the result in the conventional (value, error) form.
func (r Result[T]) Unpack() (T, error) {
	if r.Failure != nil {
		var zero T
		return zero, r.Failure
	}
	return r.Value, nil
}
