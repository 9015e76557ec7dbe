// Copyright (c) 2025 Conflux Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package tree

// Map applies f to every leaf value, preserving the shape of the tree.
func Map[A, B any](t Tree[A], f func(A) B) Tree[B] {
	switch x := t.(type) {
	case Leaf[A]:
		return Leaf[B]{Value: f(x.Value)}
	case Record[A]:
		entries := make(map[string]Tree[B], len(x.Entries))
		for k, v := range x.Entries {
			entries[k] = Map(v, f)
		}
		return Record[B]{Entries: entries}
	case Sequence[A]:
		elems := make([]Tree[B], len(x.Elems))
		for i, e := range x.Elems {
			elems[i] = Map(e, f)
		}
		return Sequence[B]{Elems: elems}
	default:
		return Empty[B]{}
	}
}

// ZipWith pairs corresponding leaf positions of two trees. Positions where
// the shapes diverge, or where only one side holds a value, become Empty.
func ZipWith[A, B, C any](a Tree[A], b Tree[B], f func(A, B) C) Tree[C] {
	switch x := a.(type) {
	case Leaf[A]:
		y, ok := b.(Leaf[B])
		if !ok {
			return Empty[C]{}
		}
		return Leaf[C]{Value: f(x.Value, y.Value)}
	case Record[A]:
		y, ok := b.(Record[B])
		if !ok {
			return Empty[C]{}
		}
		entries := make(map[string]Tree[C], len(x.Entries))
		for k, v := range x.Entries {
			w, ok := y.Entries[k]
			if !ok {
				entries[k] = Empty[C]{}
				continue
			}
			entries[k] = ZipWith(v, w, f)
		}
		for k := range y.Entries {
			if _, ok := x.Entries[k]; !ok {
				entries[k] = Empty[C]{}
			}
		}
		return Record[C]{Entries: entries}
	case Sequence[A]:
		y, ok := b.(Sequence[B])
		if !ok {
			return Empty[C]{}
		}
		n := max(len(x.Elems), len(y.Elems))
		elems := make([]Tree[C], n)
		for i := range n {
			if i >= len(x.Elems) || i >= len(y.Elems) {
				elems[i] = Empty[C]{}
				continue
			}
			elems[i] = ZipWith(x.Elems[i], y.Elems[i], f)
		}
		return Sequence[C]{Elems: elems}
	default:
		return Empty[C]{}
	}
}

// DropEmpty removes empty subtrees recursively. A Record whose values are
// all empty, or a Sequence whose elements are, collapses to Empty. Sources
// are normalized with DropEmpty before merging so that an absent key in one
// source never shadows a present key in another.
func DropEmpty[V any](t Tree[V]) Tree[V] {
	switch x := t.(type) {
	case Record[V]:
		entries := make(map[string]Tree[V], len(x.Entries))
		for k, v := range x.Entries {
			sub := DropEmpty[V](v)
			if !sub.IsEmpty() {
				entries[k] = sub
			}
		}
		if len(entries) == 0 {
			return Empty[V]{}
		}
		return Record[V]{Entries: entries}
	case Sequence[V]:
		var elems []Tree[V]
		for _, e := range x.Elems {
			sub := DropEmpty[V](e)
			if !sub.IsEmpty() {
				elems = append(elems, sub)
			}
		}
		if len(elems) == 0 {
			return Empty[V]{}
		}
		return Sequence[V]{Elems: elems}
	default:
		return t
	}
}

// UnwrapSingletons collapses every Sequence of exactly one element into
// that element. Scalar sources cannot distinguish "one value" from a
// one-element list, so merging them can inject spurious nesting which this
// normalization removes.
func UnwrapSingletons[V any](t Tree[V]) Tree[V] {
	switch x := t.(type) {
	case Record[V]:
		entries := make(map[string]Tree[V], len(x.Entries))
		for k, v := range x.Entries {
			entries[k] = UnwrapSingletons[V](v)
		}
		return Record[V]{Entries: entries}
	case Sequence[V]:
		elems := make([]Tree[V], len(x.Elems))
		for i, e := range x.Elems {
			elems[i] = UnwrapSingletons[V](e)
		}
		if len(elems) == 1 {
			return elems[0]
		}
		return Sequence[V]{Elems: elems}
	default:
		return t
	}
}
