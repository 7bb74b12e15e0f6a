package core

// ResultKind tags the variant held by a Result.
type ResultKind int

const (
	KindLoading ResultKind = iota
	KindSuccess
	KindError
)

// String implements fmt.Stringer
func (k ResultKind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindError:
		return "error"
	default:
		return "loading"
	}
}

// Result is the outcome of an asynchronous gateway call. The zero value is Loading.
// A Result never holds a value and an error at the same time.
type Result[T any] struct {
	kind    ResultKind
	value   T
	message string
	cause   error
}

// Success wraps a value.
func Success[T any](v T) Result[T] {
	return Result[T]{kind: KindSuccess, value: v}
}

// Failure wraps a user-facing message and an optional underlying cause.
func Failure[T any](message string, cause error) Result[T] {
	return Result[T]{kind: KindError, message: message, cause: cause}
}

// Loading marks a call that has not completed yet.
func Loading[T any]() Result[T] {
	return Result[T]{kind: KindLoading}
}

func (r Result[T]) Kind() ResultKind { return r.kind }
func (r Result[T]) IsSuccess() bool  { return r.kind == KindSuccess }
func (r Result[T]) IsError() bool    { return r.kind == KindError }
func (r Result[T]) IsLoading() bool  { return r.kind == KindLoading }

// Value returns the wrapped value and whether the result is a success.
func (r Result[T]) Value() (T, bool) {
	if r.kind != KindSuccess {
		var zero T
		return zero, false
	}
	return r.value, true
}

// Message returns the error message, empty unless the result is an error.
func (r Result[T]) Message() string {
	return r.message
}

// Cause returns the underlying error that produced a failure, if any.
func (r Result[T]) Cause() error {
	return r.cause
}

// Err converts a failure into an error value; nil for any other kind.
func (r Result[T]) Err() error {
	if r.kind != KindError {
		return nil
	}
	return &ResultError{Message: r.message, Cause: r.cause}
}

// Match calls exactly one of the handlers depending on the variant.
// Nil handlers are skipped.
func (r Result[T]) Match(onSuccess func(T), onError func(message string, cause error), onLoading func()) {
	switch r.kind {
	case KindSuccess:
		if onSuccess != nil {
			onSuccess(r.value)
		}
	case KindError:
		if onError != nil {
			onError(r.message, r.cause)
		}
	default:
		if onLoading != nil {
			onLoading()
		}
	}
}

// ResultError is the error form of a failed Result.
type ResultError struct {
	Message string
	Cause   error
}

func (e *ResultError) Error() string {
	return e.Message
}

func (e *ResultError) Unwrap() error {
	return e.Cause
}
