// Copyright (c) 2025 Conflux Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package conflux

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/confluxkit/conflux/source"
	"github.com/confluxkit/conflux/tree"

	"github.com/stretchr/testify/require"
)

func mapSource(m map[string]string) source.Source {
	return source.FromMap("test", m, ".")
}

func TestRead_Scalars(t *testing.T) {
	src := mapSource(map[string]string{
		"name":    "app",
		"port":    "8080",
		"ratio":   "0.5",
		"debug":   "true",
		"timeout": "1m30s",
	})

	name, err := Read(String("name"), src)
	require.NoError(t, err)
	require.Equal(t, "app", name)

	port, err := Read(Int("port"), src)
	require.NoError(t, err)
	require.Equal(t, 8080, port)

	ratio, err := Read(Float64("ratio"), src)
	require.NoError(t, err)
	require.Equal(t, 0.5, ratio)

	debug, err := Read(Bool("debug"), src)
	require.NoError(t, err)
	require.True(t, debug)

	timeout, err := Read(Duration("timeout"), src)
	require.NoError(t, err)
	require.Equal(t, 90*time.Second, timeout)
}

func TestRead_MissingValue(t *testing.T) {
	_, err := Read(String("absent"), mapSource(nil))

	var merr MissingValueError
	require.ErrorAs(t, err, &merr)
	require.Equal(t, []string{"absent"}, merr.Path)
}

func TestRead_ConversionError(t *testing.T) {
	src := mapSource(map[string]string{"db.port": "not-a-number"})

	_, err := Read(Nested("db", Int("port")), src)

	var cerr ConversionError
	require.ErrorAs(t, err, &cerr)
	require.Equal(t, []string{"db", "port"}, cerr.Path)
	require.Equal(t, "not-a-number", cerr.Raw)
	require.Equal(t, "int", cerr.Expected)
}

func TestRead_Zip(t *testing.T) {
	t.Run("both sides read", func(t *testing.T) {
		src := mapSource(map[string]string{"Id": "a", "Age": "5"})

		got, err := Read(Zip(String("Id"), Int("Age")), src)
		require.NoError(t, err)
		require.Equal(t, PairOf("a", 5), got)
	})

	t.Run("both failures are accumulated", func(t *testing.T) {
		_, err := Read(Zip(String("Id"), Int("Age")), mapSource(nil))

		var aerr AndError
		require.ErrorAs(t, err, &aerr)
		require.Len(t, aerr.Errors, 2)
		require.Contains(t, err.Error(), "Id")
		require.Contains(t, err.Error(), "Age")
	})

	t.Run("chained zips report one flat accumulation", func(t *testing.T) {
		d := Zip(Zip(String("a"), String("b")), String("c"))

		_, err := Read(d, mapSource(nil))

		var aerr AndError
		require.ErrorAs(t, err, &aerr)
		require.Len(t, aerr.Errors, 3)
	})

	t.Run("single failure passes through unwrapped", func(t *testing.T) {
		src := mapSource(map[string]string{"Id": "a"})

		_, err := Read(Zip(String("Id"), Int("Age")), src)

		var merr MissingValueError
		require.ErrorAs(t, err, &merr)
		require.Equal(t, []string{"Age"}, merr.Path)
	})
}

func TestRead_OrElseEither(t *testing.T) {
	d := OrElseEither(Int("port"), String("socket"))

	t.Run("left wins when present", func(t *testing.T) {
		got, err := Read(d, mapSource(map[string]string{"port": "8080", "socket": "/tmp/s"}))
		require.NoError(t, err)

		v, ok := got.Left()
		require.True(t, ok)
		require.Equal(t, 8080, v)
	})

	t.Run("falls back on missing left", func(t *testing.T) {
		got, err := Read(d, mapSource(map[string]string{"socket": "/tmp/s"}))
		require.NoError(t, err)

		v, ok := got.Right()
		require.True(t, ok)
		require.Equal(t, "/tmp/s", v)
	})

	t.Run("falls back on malformed left", func(t *testing.T) {
		got, err := Read(d, mapSource(map[string]string{"port": "oops", "socket": "/tmp/s"}))
		require.NoError(t, err)

		_, ok := got.Right()
		require.True(t, ok)
	})

	t.Run("source failures do not fall back", func(t *testing.T) {
		srcErr := errors.New("disk on fire")
		failing := source.New("broken", source.LeafForSequenceValid, func(path []string) (tree.Tree[string], error) {
			return nil, srcErr
		})

		_, err := Read(d, failing)

		var serr SourceError
		require.ErrorAs(t, err, &serr)
		require.ErrorIs(t, err, srcErr)
	})

	t.Run("both failing reports both", func(t *testing.T) {
		_, err := Read(d, mapSource(nil))

		var oerr OrError
		require.ErrorAs(t, err, &oerr)
		require.Contains(t, err.Error(), "socket")
		require.Contains(t, err.Error(), "port")
	})
}

func TestRead_OrElse(t *testing.T) {
	d := OrElse(Int("port"), Int("PORT"))

	got, err := Read(d, mapSource(map[string]string{"PORT": "9090"}))
	require.NoError(t, err)
	require.Equal(t, 9090, got)
}

func TestRead_Sequence(t *testing.T) {
	t.Run("reads every element in order", func(t *testing.T) {
		src := source.FromMultiMap("test", map[string][]string{"ints": {"1", "2", "3"}}, ".")

		got, err := Read(Sequence("ints", IntScalar()), src)
		require.NoError(t, err)
		require.Equal(t, []int{1, 2, 3}, got)
	})

	t.Run("repeated cli flags accumulate", func(t *testing.T) {
		src := source.FromArgs([]string{"--ints=1", "--ints=2", "--ints=3"})

		got, err := Read(Sequence("ints", IntScalar()), src)
		require.NoError(t, err)
		require.Equal(t, []int{1, 2, 3}, got)
	})

	t.Run("bare leaf satisfies a sequence when the policy allows", func(t *testing.T) {
		src := mapSource(map[string]string{"ints": "7"})

		got, err := Read(Sequence("ints", IntScalar()), src)
		require.NoError(t, err)
		require.Equal(t, []int{7}, got)
	})

	t.Run("bare leaf is rejected when the policy forbids it", func(t *testing.T) {
		src := source.FromTree("tree", tree.RecordOf(map[string]tree.Tree[string]{
			"ints": tree.LeafOf("7"),
		}), source.LeafForSequenceInvalid)

		_, err := Read(Sequence("ints", IntScalar()), src)

		var cerr ConversionError
		require.ErrorAs(t, err, &cerr)
		require.Equal(t, "sequence", cerr.Expected)
	})

	t.Run("element failures carry the index", func(t *testing.T) {
		src := source.FromMultiMap("test", map[string][]string{"ints": {"1", "x", "3"}}, ".")

		_, err := Read(Sequence("ints", IntScalar()), src)

		var ierr AtIndexError
		require.ErrorAs(t, err, &ierr)
		require.Equal(t, 1, ierr.Index)
		require.Equal(t, []string{"ints"}, ierr.Path)
	})

	t.Run("sequence of nested records", func(t *testing.T) {
		src := source.FromTree("tree", tree.RecordOf(map[string]tree.Tree[string]{
			"nodes": tree.SequenceOf[string](
				tree.RecordOf(map[string]tree.Tree[string]{"name": tree.LeafOf("a")}),
				tree.RecordOf(map[string]tree.Tree[string]{"name": tree.LeafOf("b")}),
			),
		}), source.LeafForSequenceInvalid)

		got, err := Read(Sequence("nodes", String("name")), src)
		require.NoError(t, err)
		require.Equal(t, []string{"a", "b"}, got)
	})
}

func TestRead_Optional(t *testing.T) {
	d := OptionalAt("port", IntScalar())

	t.Run("absence reads as unset", func(t *testing.T) {
		got, err := Read(d, mapSource(nil))
		require.NoError(t, err)

		_, ok := got.Value()
		require.False(t, ok)
	})

	t.Run("presence reads the value", func(t *testing.T) {
		got, err := Read(d, mapSource(map[string]string{"port": "8080"}))
		require.NoError(t, err)

		v, ok := got.Value()
		require.True(t, ok)
		require.Equal(t, 8080, v)
	})

	t.Run("present but malformed still fails", func(t *testing.T) {
		_, err := Read(d, mapSource(map[string]string{"port": "oops"}))

		var cerr ConversionError
		require.ErrorAs(t, err, &cerr)
	})
}

func TestRead_Default(t *testing.T) {
	d := Default(Int("port"), 8080)

	t.Run("substitutes on missing", func(t *testing.T) {
		got, err := Read(d, mapSource(nil))
		require.NoError(t, err)
		require.Equal(t, 8080, got)
	})

	t.Run("does not mask malformed values", func(t *testing.T) {
		_, err := Read(d, mapSource(map[string]string{"port": "oops"}))

		var cerr ConversionError
		require.ErrorAs(t, err, &cerr)
	})

	t.Run("reads the present value", func(t *testing.T) {
		got, err := Read(d, mapSource(map[string]string{"port": "9090"}))
		require.NoError(t, err)
		require.Equal(t, 9090, got)
	})
}

func TestRead_Transform(t *testing.T) {
	upper := Transform(
		String("name"),
		func(s string) (string, error) {
			if s == "" {
				return "", errors.New("name must not be blank")
			}
			return strings.ToUpper(s), nil
		},
		func(s string) (string, error) { return strings.ToLower(s), nil },
	)

	t.Run("applies the forward conversion", func(t *testing.T) {
		got, err := Read(upper, mapSource(map[string]string{"name": "app"}))
		require.NoError(t, err)
		require.Equal(t, "APP", got)
	})

	t.Run("forward failure becomes a conversion error", func(t *testing.T) {
		_, err := Read(upper, mapSource(map[string]string{"name": ""}))

		var cerr ConversionError
		require.ErrorAs(t, err, &cerr)
		require.Contains(t, cerr.Error(), "name must not be blank")
	})
}

func TestRead_Describe(t *testing.T) {
	d := Describe(Int("port"), "port the server listens on")

	got, err := Read(d, mapSource(map[string]string{"port": "8080"}))
	require.NoError(t, err)
	require.Equal(t, 8080, got)
}

func TestRead_FromSource(t *testing.T) {
	ambient := mapSource(map[string]string{"host": "ambient", "port": "1"})
	bound := mapSource(map[string]string{"port": "9090"})

	d := Zip(String("host"), FromSource(Int("port"), bound))

	got, err := Read(d, ambient)
	require.NoError(t, err)
	require.Equal(t, PairOf("ambient", 9090), got)
}

func TestRead_SourceFallbackAcrossBranches(t *testing.T) {
	src := source.FromMap("first", map[string]string{"Id": "a"}, "").
		OrElse(source.FromMap("second", map[string]string{"Id": "b", "Age": "5"}, ""))

	got, err := Read(Zip(String("Id"), Int("Age")), src)
	require.NoError(t, err)
	require.Equal(t, PairOf("a", 5), got)
}
