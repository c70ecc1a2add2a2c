package ai

// Result carries a value that is always usable. Degraded results hold a
// fallback value and the reason the primary path was abandoned.
type Result[T any] struct {
	Value  T
	Reason error
}

// Success wraps a value produced by the primary path.
func Success[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

// Degraded wraps a fallback value together with the failure that caused it.
func Degraded[T any](v T, reason error) Result[T] {
	return Result[T]{Value: v, Reason: reason}
}

// IsDegraded reports whether the value came from a fallback path.
func (r Result[T]) IsDegraded() bool {
	return r.Reason != nil
}
