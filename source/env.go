// Copyright (c) 2025 Conflux Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package source

import (
	"os"
	"strings"
	"sync"

	"github.com/confluxkit/conflux/tree"
)

type envOptions struct {
	name       string
	prefix     string
	keyDelim   string
	valueDelim string
	environ    func() []string
}

// EnvOption configures FromEnv.
type EnvOption func(*envOptions)

// EnvPrefix keeps only variables carrying the given prefix and strips it
// before splitting the name into path segments.
func EnvPrefix(prefix string) EnvOption {
	return func(eo *envOptions) {
		eo.prefix = prefix
	}
}

// EnvKeyDelimiter overrides the delimiter used to split variable names
// into nested path segments. The default is "_".
func EnvKeyDelimiter(delim string) EnvOption {
	return func(eo *envOptions) {
		eo.keyDelim = delim
	}
}

// EnvValueDelimiter splits variable values into sequences on the given
// delimiter. Values are kept whole by default.
func EnvValueDelimiter(delim string) EnvOption {
	return func(eo *envOptions) {
		eo.valueDelim = delim
	}
}

// EnvFunc overrides where variables are read from. Meant for testing.
func EnvFunc(environ func() []string) EnvOption {
	return func(eo *envOptions) {
		eo.environ = environ
	}
}

// FromEnv returns a Source over the environment variables of the current
// process. Variable names split on "_" into nested path segments. The
// environment is snapshotted lazily on first lookup.
func FromEnv(opts ...EnvOption) Source {
	eo := envOptions{
		name:     "env",
		keyDelim: "_",
		environ:  os.Environ,
	}
	for _, opt := range opts {
		opt(&eo)
	}

	var once sync.Once
	var snapshot tree.Tree[string]
	return New(eo.name, LeafForSequenceValid, func(path []string) (tree.Tree[string], error) {
		once.Do(func() {
			snapshot = eo.load()
		})
		return tree.Get[string](snapshot, path...), nil
	})
}

func (eo envOptions) load() tree.Tree[string] {
	var entries []tree.Entry[string]
	for _, pair := range eo.environ() {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		if eo.prefix != "" {
			if !strings.HasPrefix(k, eo.prefix) {
				continue
			}
			k = strings.TrimPrefix(k, eo.prefix)
		}

		values := []string{v}
		if eo.valueDelim != "" && strings.Contains(v, eo.valueDelim) {
			values = strings.Split(v, eo.valueDelim)
		}
		entries = append(entries, tree.Entry[string]{
			Path:   splitKey(k, eo.keyDelim),
			Values: values,
		})
	}
	return tree.Unflatten(entries)
}
