// Copyright (c) 2025 Conflux Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package tree

import "strconv"

// Tree is the universal intermediate representation for configuration
// data. Every source, regardless of format, resolves into a Tree and
// every written value serializes back into one.
//
// A Tree is always one of [Leaf], [Record], [Sequence] or [Empty].
// Trees are built bottom-up and never mutated after construction, so
// they are safe to share across concurrent readers.
type Tree[V any] interface {
	// IsEmpty reports whether the tree holds no values. Emptiness is
	// structural: a Record is empty iff all of its values are empty
	// and a Sequence is empty iff all of its elements are.
	IsEmpty() bool

	node()
}

// Leaf holds a single scalar value.
type Leaf[V any] struct {
	Value V
}

// Record maps unique string keys to subtrees. Key order is not significant.
type Record[V any] struct {
	Entries map[string]Tree[V]
}

// Sequence is an ordered, possibly empty, list of subtrees.
type Sequence[V any] struct {
	Elems []Tree[V]
}

// Empty represents absence. It is distinct from a zero-length Sequence
// but both satisfy IsEmpty.
type Empty[V any] struct{}

// LeafOf returns a Leaf holding v.
func LeafOf[V any](v V) Leaf[V] {
	return Leaf[V]{Value: v}
}

// RecordOf returns a Record with the given entries.
func RecordOf[V any](entries map[string]Tree[V]) Record[V] {
	return Record[V]{Entries: entries}
}

// SequenceOf returns a Sequence of the given elements.
func SequenceOf[V any](elems ...Tree[V]) Sequence[V] {
	return Sequence[V]{Elems: elems}
}

// IsEmpty implements the [Tree] interface.
func (Leaf[V]) IsEmpty() bool { return false }

// IsEmpty implements the [Tree] interface.
func (t Record[V]) IsEmpty() bool {
	for _, v := range t.Entries {
		if !v.IsEmpty() {
			return false
		}
	}
	return true
}

// IsEmpty implements the [Tree] interface.
func (t Sequence[V]) IsEmpty() bool {
	for _, e := range t.Elems {
		if !e.IsEmpty() {
			return false
		}
	}
	return true
}

// IsEmpty implements the [Tree] interface.
func (Empty[V]) IsEmpty() bool { return true }

func (Leaf[V]) node()     {}
func (Record[V]) node()   {}
func (Sequence[V]) node() {}
func (Empty[V]) node()    {}

// Get walks the tree along the given path of keys. Record nodes are
// descended by key. Sequence nodes accept a numeric segment as an index;
// any other segment is looked up in every element, yielding the Sequence
// of non-empty matches. Absence at any step yields Empty.
func Get[V any](t Tree[V], path ...string) Tree[V] {
	if len(path) == 0 {
		return t
	}
	switch x := t.(type) {
	case Record[V]:
		sub, ok := x.Entries[path[0]]
		if !ok {
			return Empty[V]{}
		}
		return Get[V](sub, path[1:]...)
	case Sequence[V]:
		if i, err := strconv.Atoi(path[0]); err == nil && i >= 0 && i < len(x.Elems) {
			return Get[V](x.Elems[i], path[1:]...)
		}
		var elems []Tree[V]
		for _, e := range x.Elems {
			sub := Get[V](e, path...)
			if !sub.IsEmpty() {
				elems = append(elems, sub)
			}
		}
		if len(elems) == 0 {
			return Empty[V]{}
		}
		return Sequence[V]{Elems: elems}
	default:
		return Empty[V]{}
	}
}

// Equal reports structural equality of two trees. Records must share the
// same key set, Sequences the same length and element order.
func Equal[V comparable](a, b Tree[V]) bool {
	switch x := a.(type) {
	case Leaf[V]:
		y, ok := b.(Leaf[V])
		return ok && x.Value == y.Value
	case Record[V]:
		y, ok := b.(Record[V])
		if !ok || len(x.Entries) != len(y.Entries) {
			return false
		}
		for k, v := range x.Entries {
			w, ok := y.Entries[k]
			if !ok || !Equal[V](v, w) {
				return false
			}
		}
		return true
	case Sequence[V]:
		y, ok := b.(Sequence[V])
		if !ok || len(x.Elems) != len(y.Elems) {
			return false
		}
		for i := range x.Elems {
			if !Equal[V](x.Elems[i], y.Elems[i]) {
				return false
			}
		}
		return true
	case Empty[V]:
		_, ok := b.(Empty[V])
		return ok
	default:
		return false
	}
}
