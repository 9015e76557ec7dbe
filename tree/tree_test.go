// Copyright (c) 2025 Conflux Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package tree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleTree() Tree[string] {
	return RecordOf(map[string]Tree[string]{
		"db": RecordOf(map[string]Tree[string]{
			"host": LeafOf("localhost"),
			"port": LeafOf("5432"),
		}),
		"regions": SequenceOf[string](LeafOf("111"), LeafOf("122")),
		"nodes": SequenceOf[string](
			RecordOf(map[string]Tree[string]{"name": LeafOf("a")}),
			RecordOf(map[string]Tree[string]{"name": LeafOf("b")}),
		),
	})
}

func TestIsEmpty(t *testing.T) {
	testCases := []struct {
		name     string
		tree     Tree[string]
		expected bool
	}{
		{
			name:     "leaf is never empty",
			tree:     LeafOf("x"),
			expected: false,
		},
		{
			name:     "empty is empty",
			tree:     Empty[string]{},
			expected: true,
		},
		{
			name:     "zero length sequence is empty",
			tree:     SequenceOf[string](),
			expected: true,
		},
		{
			name:     "sequence of empties is empty",
			tree:     SequenceOf[string](Empty[string]{}, Empty[string]{}),
			expected: true,
		},
		{
			name:     "record of empties is empty",
			tree:     RecordOf(map[string]Tree[string]{"a": Empty[string]{}}),
			expected: true,
		},
		{
			name: "record with one present value is not empty",
			tree: RecordOf(map[string]Tree[string]{
				"a": Empty[string]{},
				"b": LeafOf("x"),
			}),
			expected: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, tc.tree.IsEmpty())
		})
	}
}

func TestGet(t *testing.T) {
	testCases := []struct {
		name     string
		path     []string
		expected Tree[string]
	}{
		{
			name:     "empty path returns the tree itself",
			path:     nil,
			expected: sampleTree(),
		},
		{
			name:     "record key",
			path:     []string{"db", "host"},
			expected: LeafOf("localhost"),
		},
		{
			name:     "missing key",
			path:     []string{"db", "user"},
			expected: Empty[string]{},
		},
		{
			name:     "numeric segment indexes a sequence",
			path:     []string{"regions", "1"},
			expected: LeafOf("122"),
		},
		{
			name:     "key segment maps over sequence elements",
			path:     []string{"nodes", "name"},
			expected: SequenceOf[string](LeafOf("a"), LeafOf("b")),
		},
		{
			name:     "lookup into a leaf",
			path:     []string{"db", "host", "deeper"},
			expected: Empty[string]{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Get[string](sampleTree(), tc.path...)
			require.True(t, Equal[string](tc.expected, got), "expected %v, got %v", tc.expected, got)
		})
	}
}

func TestEqual(t *testing.T) {
	require.True(t, Equal[string](sampleTree(), sampleTree()))
	require.False(t, Equal[string](LeafOf("a"), LeafOf("b")))
	require.False(t, Equal[string](LeafOf("a"), Empty[string]{}))
	require.False(t, Equal[string](
		SequenceOf[string](LeafOf("a")),
		SequenceOf[string](LeafOf("a"), LeafOf("b")),
	))
	require.False(t, Equal[string](
		RecordOf(map[string]Tree[string]{"a": LeafOf("1")}),
		RecordOf(map[string]Tree[string]{"b": LeafOf("1")}),
	))
}
