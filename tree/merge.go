// Copyright (c) 2025 Conflux Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package tree

import (
	"fmt"
	"strings"
)

// Merge combines two trees. Records merge recursively per shared key,
// Sequences concatenate, and when both sides hold a leaf at the same
// position the left value wins. Empty never shadows a present value.
func Merge[V any](a, b Tree[V]) Tree[V] {
	return merge[V](a, b, false)
}

// MergeAppend is Merge with accumulating leaves: when both sides hold a
// value at the same position the values collect into a Sequence instead of
// the left winning. Repeated CLI flags accumulate through MergeAppend.
func MergeAppend[V any](a, b Tree[V]) Tree[V] {
	return merge[V](a, b, true)
}

// MergeAll folds Merge over any number of trees, left to right.
func MergeAll[V any](ts ...Tree[V]) Tree[V] {
	res := Tree[V](Empty[V]{})
	for _, t := range ts {
		res = Merge[V](res, t)
	}
	return res
}

func merge[V any](a, b Tree[V], appendLeaves bool) Tree[V] {
	if a.IsEmpty() {
		if b.IsEmpty() {
			return Empty[V]{}
		}
		return b
	}
	if b.IsEmpty() {
		return a
	}

	if x, ok := a.(Record[V]); ok {
		if y, ok := b.(Record[V]); ok {
			entries := make(map[string]Tree[V], len(x.Entries)+len(y.Entries))
			for k, v := range x.Entries {
				entries[k] = v
			}
			for k, v := range y.Entries {
				old, ok := entries[k]
				if !ok {
					entries[k] = v
					continue
				}
				entries[k] = merge[V](old, v, appendLeaves)
			}
			return Record[V]{Entries: entries}
		}
	}
	if x, ok := a.(Sequence[V]); ok {
		if y, ok := b.(Sequence[V]); ok {
			elems := make([]Tree[V], 0, len(x.Elems)+len(y.Elems))
			elems = append(elems, x.Elems...)
			elems = append(elems, y.Elems...)
			return Sequence[V]{Elems: elems}
		}
	}
	if !appendLeaves {
		return a
	}

	// Append semantics: values which cannot merge structurally accumulate
	// into a sequence instead of one side winning.
	left, right := elemsOf[V](a), elemsOf[V](b)
	elems := make([]Tree[V], 0, len(left)+len(right))
	elems = append(elems, left...)
	elems = append(elems, right...)
	return Sequence[V]{Elems: elems}
}

func elemsOf[V any](t Tree[V]) []Tree[V] {
	if s, ok := t.(Sequence[V]); ok {
		return s.Elems
	}
	return []Tree[V]{t}
}

// CollisionError occurs when MergeStrict finds both trees holding a value
// at the same position. Schemas are expected to address disjoint subtrees,
// so a collision is a programming error in the schema, not bad input.
type CollisionError struct {
	Path []string
}

// Error implements the error interface.
func (e CollisionError) Error() string {
	path := strings.Join(e.Path, ".")
	if path == "" {
		path = "<root>"
	}
	return fmt.Sprintf("both trees hold a value at %s", path)
}

// MergeStrict unions two trees, merging Records recursively per key, and
// fails with a CollisionError if both sides hold a non-empty, non-record
// value at the same position.
func MergeStrict[V any](a, b Tree[V]) (Tree[V], error) {
	return mergeStrict[V](a, b, nil)
}

func mergeStrict[V any](a, b Tree[V], path []string) (Tree[V], error) {
	if a.IsEmpty() {
		if b.IsEmpty() {
			return Empty[V]{}, nil
		}
		return b, nil
	}
	if b.IsEmpty() {
		return a, nil
	}

	x, ok := a.(Record[V])
	if !ok {
		return nil, CollisionError{Path: path}
	}
	y, ok := b.(Record[V])
	if !ok {
		return nil, CollisionError{Path: path}
	}

	entries := make(map[string]Tree[V], len(x.Entries)+len(y.Entries))
	for k, v := range x.Entries {
		entries[k] = v
	}
	for k, v := range y.Entries {
		old, ok := entries[k]
		if !ok {
			entries[k] = v
			continue
		}
		sub, err := mergeStrict[V](old, v, append(path, k))
		if err != nil {
			return nil, err
		}
		entries[k] = sub
	}
	return Record[V]{Entries: entries}, nil
}

// FromPath builds a single-branch tree nesting t under the given path.
func FromPath[V any](path []string, t Tree[V]) Tree[V] {
	res := t
	for i := len(path) - 1; i >= 0; i-- {
		res = Record[V]{Entries: map[string]Tree[V]{path[i]: res}}
	}
	return res
}
