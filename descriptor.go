// Copyright (c) 2025 Conflux Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package conflux

import (
	"github.com/confluxkit/conflux/source"
	"github.com/confluxkit/conflux/tree"
)

// Descriptor describes a configuration schema for values of type A in both
// directions at once: the same expression is interpreted by [Read] to
// produce an A out of a [source.Source] and by [Write] to serialize an A
// back into a tree. Because both interpreters walk one structure, the two
// directions cannot drift apart.
//
// Descriptors are immutable and safe to share; build them once and read
// them from as many goroutines as needed.
type Descriptor[A any] interface {
	read(rc readContext) (A, error)
	write(v A) (tree.Tree[string], error)
}

type readContext struct {
	src  source.Source
	path []string
}

func (rc readContext) at(key string) readContext {
	path := make([]string, 0, len(rc.path)+1)
	path = append(path, rc.path...)
	path = append(path, key)
	return readContext{src: rc.src, path: path}
}

func (rc readContext) lookup() (tree.Tree[string], error) {
	t, err := rc.src.GetValue(rc.path...)
	if err != nil {
		return nil, SourceError{Source: rc.src.Name(), Cause: err}
	}
	return t, nil
}

// Read interprets the descriptor against a source and produces the typed
// value, or a structured error naming every failing path.
func Read[A any](d Descriptor[A], src source.Source) (A, error) {
	return d.read(readContext{src: src})
}

// Write interprets the descriptor against a value and produces the tree it
// serializes into. Write fails only when a [Transform] backward conversion
// rejects the value or when two [Zip] branches collide on a path.
func Write[A any](d Descriptor[A], v A) (tree.Tree[string], error) {
	return d.write(v)
}
