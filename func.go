package taint

// Adapters for tainting function inputs and outputs at the boundary between
// a framework (which hands out raw values) and application code written
// against tainted parameters. Purely syntactic sugar over Wrap: observable
// behavior is unchanged beyond the wrapping.

// Func1 adapts a handler that expects a tainted argument into one taking
// the raw value, for registration with callers that know nothing about
// taint.
func Func1[A, R any](fn func(Value[A]) R) func(A) R {
	return func(a A) R { return fn(Wrap(a)) }
}

// Func2 is Func1 for two arguments.
func Func2[A, B, R any](fn func(Value[A], Value[B]) R) func(A, B) R {
	return func(a A, b B) R { return fn(Wrap(a), Wrap(b)) }
}

// Func3 is Func1 for three arguments.
func Func3[A, B, C, R any](fn func(Value[A], Value[B], Value[C]) R) func(A, B, C) R {
	return func(a A, b B, c C) R { return fn(Wrap(a), Wrap(b), Wrap(c)) }
}

// Output taints a producer's return value on exit.
func Output[R any](fn func() R) func() Value[R] {
	return func() Value[R] { return Wrap(fn()) }
}

// Output1 taints the return value of a single-argument producer.
func Output1[A, R any](fn func(A) R) func(A) Value[R] {
	return func(a A) Value[R] { return Wrap(fn(a)) }
}
