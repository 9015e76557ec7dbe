// Copyright (c) 2025 Conflux Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package tree defines the hierarchical value model shared by every
// configuration source and sink.
//
// A [Tree] is a sum of four shapes: [Leaf] for scalars, [Record] for keyed
// subtrees, [Sequence] for ordered subtrees and [Empty] for absence. All
// operations are pure: they return new trees and never mutate their
// arguments, which makes concurrent use safe without coordination.
//
// The package carries the algebra the rest of the module is built on:
// [Merge] and friends for combining partially populated sources, [Flatten]
// and [Unflatten] for moving between the tree and the flat key-value shape
// of environment variables and properties files, and the normalization
// passes [DropEmpty] and [UnwrapSingletons].
package tree
