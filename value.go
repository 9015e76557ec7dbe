// Copyright (c) 2025 Conflux Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package conflux

// Value represents a configuration value that may or may not be set. This
// distinguishes "not set" from "set to the zero value", which matters for
// optional configuration.
type Value[T any] struct {
	value T
	set   bool
}

// ValueOf returns a set Value holding v.
func ValueOf[T any](v T) Value[T] {
	return Value[T]{value: v, set: true}
}

// Value returns the underlying value and whether it was set.
func (v Value[T]) Value() (T, bool) {
	return v.value, v.set
}

// GetOrElse returns the underlying value, or def when unset.
func (v Value[T]) GetOrElse(def T) T {
	if !v.set {
		return def
	}
	return v.value
}

// Pair is the product of two descriptor results, produced by [Zip].
type Pair[A, B any] struct {
	First  A
	Second B
}

// PairOf returns a Pair of the two values.
func PairOf[A, B any](a A, b B) Pair[A, B] {
	return Pair[A, B]{First: a, Second: b}
}

// Either is the sum of two descriptor results, produced by [OrElseEither].
// Exactly one side is set.
type Either[A, B any] struct {
	left  Value[A]
	right Value[B]
}

// LeftOf returns an Either holding the left side.
func LeftOf[A, B any](a A) Either[A, B] {
	return Either[A, B]{left: ValueOf(a)}
}

// RightOf returns an Either holding the right side.
func RightOf[A, B any](b B) Either[A, B] {
	return Either[A, B]{right: ValueOf(b)}
}

// Left returns the left side and whether it is the set one.
func (e Either[A, B]) Left() (A, bool) {
	return e.left.Value()
}

// Right returns the right side and whether it is the set one.
func (e Either[A, B]) Right() (B, bool) {
	return e.right.Value()
}
