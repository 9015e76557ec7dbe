// Copyright (c) 2025 Conflux Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package source

import (
	"strings"

	"github.com/confluxkit/conflux/tree"
)

type argsOptions struct {
	name       string
	keyDelim   string
	valueDelim string
}

// ArgsOption configures FromArgs.
type ArgsOption func(*argsOptions)

// WithKeyDelimiter splits a token's key portion into nested path segments,
// e.g. "db.port" nests port under db when the delimiter is ".".
func WithKeyDelimiter(delim string) ArgsOption {
	return func(ao *argsOptions) {
		ao.keyDelim = delim
	}
}

// WithValueDelimiter splits a token's value portion into a sequence of
// values, e.g. "111,122" with delimiter "," yields two values.
func WithValueDelimiter(delim string) ArgsOption {
	return func(ao *argsOptions) {
		ao.valueDelim = delim
	}
}

// WithName overrides the provenance name of the source. The default is "args".
func WithName(name string) ArgsOption {
	return func(ao *argsOptions) {
		ao.name = name
	}
}

// FromArgs returns a Source over a flat command line argument list.
//
// Tokens of the form "--key=value" assign directly. A dashed token without
// a value ("--key") nests whatever the following tokens parse into, and a
// plain token stands as a bare value, so "--key value" and "--outer --inner=v"
// behave as expected. Repeated assignments to one key accumulate into a
// sequence instead of overwriting. A chain of dashed keys which never
// reaches a parseable value is dropped without error.
func FromArgs(args []string, opts ...ArgsOption) Source {
	ao := argsOptions{name: "args"}
	for _, opt := range opts {
		opt(&ao)
	}

	tokens := make([]argToken, len(args))
	for i, arg := range args {
		tokens[i] = classify(arg)
	}

	acc := tree.Tree[string](tree.Empty[string]{})
	for _, t := range ao.parse(tokens) {
		acc = tree.MergeAppend[string](acc, t)
	}
	acc = tree.DropEmpty[string](acc)
	acc = tree.Unflatten(tree.Flatten[string](acc))
	acc = tree.UnwrapSingletons[string](acc)

	return FromTree(ao.name, acc, LeafForSequenceValid)
}

type tokenKind int

const (
	valueToken tokenKind = iota
	keyToken
	bothToken
)

type argToken struct {
	kind  tokenKind
	key   string
	value string
}

// classify sorts a raw token into one of three shapes: key and value in
// one token ("--key=value"), key only ("--key"), or a bare value. A dashed
// token whose stripped prefix does not qualify as a key falls back to a
// bare value.
func classify(raw string) argToken {
	if !strings.HasPrefix(raw, "-") {
		return argToken{kind: valueToken, value: raw}
	}

	trimmed := strings.TrimLeft(raw, "-")
	key, value, found := strings.Cut(trimmed, "=")
	if key == "" {
		return argToken{kind: valueToken, value: raw}
	}
	if !found || value == "" {
		return argToken{kind: keyToken, key: key}
	}
	return argToken{kind: bothToken, key: key, value: value}
}

// parse converts a token list into the partial trees of its assignments,
// consuming tokens left to right with lookahead through key-only chains.
func (ao argsOptions) parse(tokens []argToken) []tree.Tree[string] {
	if len(tokens) == 0 {
		return nil
	}

	switch tokens[0].kind {
	case bothToken:
		t := tree.FromPath[string](ao.splitKey(tokens[0].key), ao.valueTree(tokens[0].value))
		return append([]tree.Tree[string]{t}, ao.parse(tokens[1:])...)
	case valueToken:
		return append([]tree.Tree[string]{ao.valueTree(tokens[0].value)}, ao.parse(tokens[1:])...)
	default:
		// A run of key-only tokens collapses into nesting levels around
		// the next unit that parses into a non-empty tree. A chain that
		// never reaches one is discarded, not an error.
		i := 0
		var path []string
		for i < len(tokens) && tokens[i].kind == keyToken {
			path = append(path, ao.splitKey(tokens[i].key)...)
			i++
		}

		rest := ao.parse(tokens[i:])
		if len(rest) == 0 {
			return nil
		}
		nested := tree.FromPath[string](path, rest[0])
		return append([]tree.Tree[string]{nested}, rest[1:]...)
	}
}

func (ao argsOptions) splitKey(k string) []string {
	return splitKey(k, ao.keyDelim)
}

func (ao argsOptions) valueTree(v string) tree.Tree[string] {
	if ao.valueDelim != "" && strings.Contains(v, ao.valueDelim) {
		parts := strings.Split(v, ao.valueDelim)
		elems := make([]tree.Tree[string], len(parts))
		for i, p := range parts {
			elems[i] = tree.Leaf[string]{Value: p}
		}
		return tree.Sequence[string]{Elems: elems}
	}
	return tree.Leaf[string]{Value: v}
}
