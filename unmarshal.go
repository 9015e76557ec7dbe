// Copyright (c) 2025 Conflux Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package conflux

import (
	"encoding"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/confluxkit/conflux/tree"

	"github.com/go-viper/mapstructure/v2"
)

// Unmarshal decodes a tree into a struct, using `config` field tags to
// match record keys. Leaves are strings and coerce weakly into numeric,
// boolean and duration fields, plus any type implementing
// encoding.TextUnmarshaler. Meant for consumers which prefer one tagged
// struct over a composed descriptor.
func Unmarshal(t tree.Tree[string], v any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "config",
		WeaklyTypedInput: true,
		Result:           v,
		DecodeHook: composeDecodeHooks(
			textUnmarshalerHookFunc(),
			timeDurationHookFunc(),
		),
	})
	if err != nil {
		return err
	}
	return dec.Decode(treeToAny(t))
}

func treeToAny(t tree.Tree[string]) any {
	switch x := t.(type) {
	case tree.Leaf[string]:
		return x.Value
	case tree.Record[string]:
		m := make(map[string]any, len(x.Entries))
		for k, v := range x.Entries {
			m[k] = treeToAny(v)
		}
		return m
	case tree.Sequence[string]:
		s := make([]any, len(x.Elems))
		for i, e := range x.Elems {
			s[i] = treeToAny(e)
		}
		return s
	default:
		return nil
	}
}

var errInvalidDecodeCondition = errors.New("invalid decode condition")

// TypeCoercionError occurs when a tree value cannot be coerced into the
// type of the struct field it is decoded into.
type TypeCoercionError struct {
	from  reflect.Value
	to    reflect.Value
	Cause error
}

// Error implements the error interface.
func (e TypeCoercionError) Error() string {
	return fmt.Sprintf("failed to coerce value from %s to %s: %s", e.from.Type().Name(), e.to.Type().Name(), e.Cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e TypeCoercionError) Unwrap() error {
	return e.Cause
}

func composeDecodeHooks(hs ...mapstructure.DecodeHookFunc) mapstructure.DecodeHookFuncValue {
	return func(f, t reflect.Value) (any, error) {
		for _, h := range hs {
			v, err := mapstructure.DecodeHookExec(h, f, t)
			if err == nil {
				return v, nil
			}
			if err == errInvalidDecodeCondition {
				continue
			}
			return nil, TypeCoercionError{
				from:  f,
				to:    t,
				Cause: err,
			}
		}
		return f.Interface(), nil
	}
}

func textUnmarshalerHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return nil, errInvalidDecodeCondition
		}
		result := reflect.New(t).Interface()
		u, ok := result.(encoding.TextUnmarshaler)
		if !ok {
			return nil, errInvalidDecodeCondition
		}
		err := u.UnmarshalText([]byte(data.(string)))
		if err != nil {
			return nil, err
		}
		return result, nil
	}
}

func timeDurationHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if t != reflect.TypeOf(time.Duration(0)) {
			return nil, errInvalidDecodeCondition
		}

		switch f.Kind() {
		case reflect.String:
			return time.ParseDuration(data.(string))
		default:
			return nil, errInvalidDecodeCondition
		}
	}
}
