// Copyright (c) 2025 Conflux Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package conflux

import (
	"errors"
	"strconv"
	"time"

	"github.com/confluxkit/conflux/tree"

	"github.com/spf13/cast"
)

type scalarDesc[A any] struct {
	kind   string
	parse  func(string) (A, error)
	format func(A) string
}

// Scalar returns a descriptor reading and writing a scalar at the current
// node. kind names the expected type in conversion errors. Most callers
// want the keyed helpers ([String], [Int], ...) instead; the keyless form
// exists for composing with [SequenceOf] and [Optional].
func Scalar[A any](kind string, parse func(string) (A, error), format func(A) string) Descriptor[A] {
	return scalarDesc[A]{
		kind:   kind,
		parse:  parse,
		format: format,
	}
}

func (d scalarDesc[A]) read(rc readContext) (A, error) {
	var zero A

	t, err := rc.lookup()
	if err != nil {
		return zero, err
	}
	if t.IsEmpty() {
		return zero, MissingValueError{Path: rc.path}
	}

	// A one-element sequence satisfies a scalar; flat sources cannot
	// distinguish the two shapes.
	if s, ok := t.(tree.Sequence[string]); ok && len(s.Elems) == 1 {
		t = s.Elems[0]
	}

	leaf, ok := t.(tree.Leaf[string])
	if !ok {
		return zero, ConversionError{
			Path:     rc.path,
			Expected: d.kind,
			Cause:    errors.New("expected a single value, found a nested structure"),
		}
	}

	v, err := d.parse(leaf.Value)
	if err != nil {
		return zero, ConversionError{
			Path:     rc.path,
			Raw:      leaf.Value,
			Expected: d.kind,
			Cause:    err,
		}
	}
	return v, nil
}

func (d scalarDesc[A]) write(v A) (tree.Tree[string], error) {
	return tree.Leaf[string]{Value: d.format(v)}, nil
}

// StringScalar returns a keyless string descriptor.
func StringScalar() Descriptor[string] {
	return Scalar(
		"string",
		func(s string) (string, error) { return s, nil },
		func(s string) string { return s },
	)
}

// IntScalar returns a keyless int descriptor.
func IntScalar() Descriptor[int] {
	return Scalar("int", func(s string) (int, error) { return cast.ToIntE(s) }, strconv.Itoa)
}

// Int64Scalar returns a keyless int64 descriptor.
func Int64Scalar() Descriptor[int64] {
	return Scalar("int64", func(s string) (int64, error) { return cast.ToInt64E(s) }, func(v int64) string {
		return strconv.FormatInt(v, 10)
	})
}

// Float64Scalar returns a keyless float64 descriptor.
func Float64Scalar() Descriptor[float64] {
	return Scalar("float64", func(s string) (float64, error) { return cast.ToFloat64E(s) }, func(v float64) string {
		return strconv.FormatFloat(v, 'g', -1, 64)
	})
}

// BoolScalar returns a keyless bool descriptor.
func BoolScalar() Descriptor[bool] {
	return Scalar("bool", func(s string) (bool, error) { return cast.ToBoolE(s) }, strconv.FormatBool)
}

// DurationScalar returns a keyless time.Duration descriptor.
func DurationScalar() Descriptor[time.Duration] {
	return Scalar("duration", func(s string) (time.Duration, error) { return cast.ToDurationE(s) }, time.Duration.String)
}

// String describes a string value at the given key.
func String(key string) Descriptor[string] {
	return Nested(key, StringScalar())
}

// Int describes an int value at the given key.
func Int(key string) Descriptor[int] {
	return Nested(key, IntScalar())
}

// Int64 describes an int64 value at the given key.
func Int64(key string) Descriptor[int64] {
	return Nested(key, Int64Scalar())
}

// Float64 describes a float64 value at the given key.
func Float64(key string) Descriptor[float64] {
	return Nested(key, Float64Scalar())
}

// Bool describes a bool value at the given key.
func Bool(key string) Descriptor[bool] {
	return Nested(key, BoolScalar())
}

// Duration describes a time.Duration value at the given key.
func Duration(key string) Descriptor[time.Duration] {
	return Nested(key, DurationScalar())
}
