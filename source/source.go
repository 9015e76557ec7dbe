// Copyright (c) 2025 Conflux Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package source

import (
	"maps"
	"slices"
	"strings"

	"github.com/confluxkit/conflux/tree"
)

// LeafForSequence governs whether a bare scalar may satisfy a
// sequence-typed schema node. Scalar-shaped sources (environment
// variables, single-valued maps) cannot distinguish "one value" from a
// one-element list, so they declare the leaf valid; structured formats
// which can represent real lists declare it invalid.
type LeafForSequence int

const (
	// LeafForSequenceInvalid rejects a bare leaf where a sequence is expected.
	LeafForSequenceInvalid LeafForSequence = iota

	// LeafForSequenceValid treats a bare leaf as a one-element sequence.
	LeafForSequenceValid
)

// LookupFunc resolves a path into the subtree of configuration data found
// there. Absence is reported as an empty tree, never as an error; a non-nil
// error means the source itself failed (for example, I/O inside a custom
// adapter) and is treated as fatal by readers.
type LookupFunc func(path []string) (tree.Tree[string], error)

// Source is a named, composable path-to-tree resolver. The zero value is a
// source that resolves every path to Empty.
type Source struct {
	names  []string
	policy LeafForSequence
	lookup LookupFunc
}

// New returns a Source backed by the given lookup function. The name is
// carried for diagnostics only.
func New(name string, policy LeafForSequence, lookup LookupFunc) Source {
	return Source{
		names:  []string{name},
		policy: policy,
		lookup: lookup,
	}
}

// FromTree returns a Source resolving paths against a fixed tree.
func FromTree(name string, t tree.Tree[string], policy LeafForSequence) Source {
	return New(name, policy, func(path []string) (tree.Tree[string], error) {
		return tree.Get[string](t, path...), nil
	})
}

// FromMap returns a Source over flat string pairs. Keys are split into
// path segments on keyDelim; pass an empty delimiter to keep keys whole.
func FromMap(name string, m map[string]string, keyDelim string) Source {
	entries := make([]tree.Entry[string], 0, len(m))
	for _, k := range slices.Sorted(maps.Keys(m)) {
		entries = append(entries, tree.Entry[string]{
			Path:   splitKey(k, keyDelim),
			Values: []string{m[k]},
		})
	}
	return FromTree(name, tree.Unflatten(entries), LeafForSequenceValid)
}

// FromMultiMap returns a Source over flat multi-valued pairs, such as
// parsed query strings or repeated property keys.
func FromMultiMap(name string, m map[string][]string, keyDelim string) Source {
	entries := make([]tree.Entry[string], 0, len(m))
	for _, k := range slices.Sorted(maps.Keys(m)) {
		entries = append(entries, tree.Entry[string]{
			Path:   splitKey(k, keyDelim),
			Values: slices.Clone(m[k]),
		})
	}
	return FromTree(name, tree.Unflatten(entries), LeafForSequenceValid)
}

func splitKey(k, delim string) []string {
	if delim == "" {
		return []string{k}
	}
	return strings.Split(k, delim)
}

// GetValue resolves the subtree at the given path. Absence is Empty.
func (s Source) GetValue(path ...string) (tree.Tree[string], error) {
	if s.lookup == nil {
		return tree.Empty[string]{}, nil
	}
	return s.lookup(path)
}

// Name returns the provenance of the source for diagnostics. Composed
// sources join the names of their parts.
func (s Source) Name() string {
	return strings.Join(s.names, ", ")
}

// LeafForSequence returns the singleton-ambiguity policy of the source.
func (s Source) LeafForSequence() LeafForSequence {
	return s.policy
}

// OrElse composes two sources with ordered fallback. Each queried path is
// resolved against s first and falls back to other only when s yields an
// empty result; errors do not fall back. Neither side is resolved eagerly,
// so an unused fallback source is never queried. Fallback is per path, not
// global: different branches of one read may be satisfied by different
// sources.
func (s Source) OrElse(other Source) Source {
	policy := s.policy
	if other.policy == LeafForSequenceValid {
		policy = LeafForSequenceValid
	}

	names := make([]string, 0, len(s.names)+len(other.names))
	names = append(names, s.names...)
	names = append(names, other.names...)

	return Source{
		names:  names,
		policy: policy,
		lookup: func(path []string) (tree.Tree[string], error) {
			t, err := s.GetValue(path...)
			if err != nil {
				return nil, err
			}
			if !t.IsEmpty() {
				return t, nil
			}
			return other.GetValue(path...)
		},
	}
}

// ConvertKeys returns a Source which remaps every path segment through f
// before delegating, e.g. case-folding descriptor keys onto environment
// variable naming.
func (s Source) ConvertKeys(f func(string) string) Source {
	inner := s
	return Source{
		names:  s.names,
		policy: s.policy,
		lookup: func(path []string) (tree.Tree[string], error) {
			mapped := make([]string, len(path))
			for i, seg := range path {
				mapped[i] = f(seg)
			}
			return inner.GetValue(mapped...)
		},
	}
}
