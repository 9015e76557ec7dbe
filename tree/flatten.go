// Copyright (c) 2025 Conflux Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package tree

import (
	"maps"
	"slices"
	"strconv"
)

// Entry is one flattened branch of a tree: the path of keys from the root
// and the non-empty list of leaf values found there. A Sequence of leaves
// flattens into a single Entry with multiple values, which is how
// multi-valued flags survive the round trip through flat sources.
type Entry[V any] struct {
	Path   []string
	Values []V
}

// Flatten converts a tree into its flat (path, values) form. Record keys
// are visited in sorted order so the result is deterministic. Sequences of
// non-leaf elements contribute their position as a numeric path segment.
func Flatten[V any](t Tree[V]) []Entry[V] {
	return flatten[V](t, nil)
}

func flatten[V any](t Tree[V], path []string) []Entry[V] {
	switch x := t.(type) {
	case Leaf[V]:
		return []Entry[V]{{Path: slices.Clone(path), Values: []V{x.Value}}}
	case Record[V]:
		var entries []Entry[V]
		for _, k := range slices.Sorted(maps.Keys(x.Entries)) {
			entries = append(entries, flatten[V](x.Entries[k], append(path, k))...)
		}
		return entries
	case Sequence[V]:
		if len(x.Elems) == 0 {
			return nil
		}
		if values, ok := leafValues(x.Elems); ok {
			return []Entry[V]{{Path: slices.Clone(path), Values: values}}
		}
		var entries []Entry[V]
		for i, e := range x.Elems {
			entries = append(entries, flatten[V](e, append(path, strconv.Itoa(i)))...)
		}
		return entries
	default:
		return nil
	}
}

func leafValues[V any](elems []Tree[V]) ([]V, bool) {
	values := make([]V, len(elems))
	for i, e := range elems {
		leaf, ok := e.(Leaf[V])
		if !ok {
			return nil, false
		}
		values[i] = leaf.Value
	}
	return values, true
}

// Unflatten reconstructs a tree from flat (path, values) entries. Entries
// sharing a path prefix merge into a common Record node; sibling keys that
// are all numeric positions starting at zero rebuild a Sequence. A single
// value becomes a Leaf, multiple values a Sequence of leaves, so
// Unflatten(Flatten(t)) equals t up to singleton-sequence normalization.
func Unflatten[V any](entries []Entry[V]) Tree[V] {
	res := Tree[V](Empty[V]{})
	for _, e := range entries {
		var t Tree[V]
		switch len(e.Values) {
		case 0:
			t = Empty[V]{}
		case 1:
			t = Leaf[V]{Value: e.Values[0]}
		default:
			elems := make([]Tree[V], len(e.Values))
			for i, v := range e.Values {
				elems[i] = Leaf[V]{Value: v}
			}
			t = Sequence[V]{Elems: elems}
		}
		res = Merge[V](res, FromPath[V](e.Path, t))
	}
	return rebuildSequences[V](res)
}

// rebuildSequences converts Records whose keys are exactly the positions
// 0..n-1 back into Sequences, bottom-up.
func rebuildSequences[V any](t Tree[V]) Tree[V] {
	switch x := t.(type) {
	case Record[V]:
		entries := make(map[string]Tree[V], len(x.Entries))
		for k, v := range x.Entries {
			entries[k] = rebuildSequences[V](v)
		}
		if elems, ok := positional(entries); ok {
			return Sequence[V]{Elems: elems}
		}
		return Record[V]{Entries: entries}
	case Sequence[V]:
		elems := make([]Tree[V], len(x.Elems))
		for i, e := range x.Elems {
			elems[i] = rebuildSequences[V](e)
		}
		return Sequence[V]{Elems: elems}
	default:
		return t
	}
}

func positional[V any](entries map[string]Tree[V]) ([]Tree[V], bool) {
	if len(entries) == 0 {
		return nil, false
	}
	elems := make([]Tree[V], len(entries))
	for k, v := range entries {
		i, err := strconv.Atoi(k)
		if err != nil || i < 0 || i >= len(elems) || elems[i] != nil {
			return nil, false
		}
		elems[i] = v
	}
	return elems, true
}
