// Copyright (c) 2025 Conflux Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package source

import (
	"fmt"

	"github.com/confluxkit/conflux/tree"

	"github.com/spf13/cast"
)

// anyToTree converts the nested map/slice/scalar shape produced by the
// format parsers into the tree model. Scalars are normalized to strings;
// typed conversion happens later at the descriptor level.
func anyToTree(v any) tree.Tree[string] {
	switch x := v.(type) {
	case nil:
		return tree.Empty[string]{}
	case map[string]any:
		entries := make(map[string]tree.Tree[string], len(x))
		for k, sub := range x {
			entries[k] = anyToTree(sub)
		}
		return tree.Record[string]{Entries: entries}
	case []any:
		elems := make([]tree.Tree[string], len(x))
		for i, sub := range x {
			elems[i] = anyToTree(sub)
		}
		return tree.Sequence[string]{Elems: elems}
	default:
		s, err := cast.ToStringE(x)
		if err != nil {
			s = fmt.Sprint(x)
		}
		return tree.Leaf[string]{Value: s}
	}
}
