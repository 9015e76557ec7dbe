// Copyright (c) 2025 Conflux Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package conflux

import (
	"net"
	"testing"
	"time"

	"github.com/confluxkit/conflux/tree"

	"github.com/stretchr/testify/require"
)

func TestUnmarshal(t *testing.T) {
	t.Run("decodes nested records with weak typing", func(t *testing.T) {
		in := tree.RecordOf(map[string]tree.Tree[string]{
			"name": tree.LeafOf("app"),
			"http": tree.RecordOf(map[string]tree.Tree[string]{
				"port":    tree.LeafOf("8080"),
				"debug":   tree.LeafOf("true"),
				"timeout": tree.LeafOf("30s"),
			}),
			"tags": tree.SequenceOf[string](tree.LeafOf("a"), tree.LeafOf("b")),
		})

		var cfg struct {
			Name string `config:"name"`
			HTTP struct {
				Port    int           `config:"port"`
				Debug   bool          `config:"debug"`
				Timeout time.Duration `config:"timeout"`
			} `config:"http"`
			Tags []string `config:"tags"`
		}
		require.NoError(t, Unmarshal(in, &cfg))

		require.Equal(t, "app", cfg.Name)
		require.Equal(t, 8080, cfg.HTTP.Port)
		require.True(t, cfg.HTTP.Debug)
		require.Equal(t, 30*time.Second, cfg.HTTP.Timeout)
		require.Equal(t, []string{"a", "b"}, cfg.Tags)
	})

	t.Run("decodes through encoding.TextUnmarshaler", func(t *testing.T) {
		in := tree.RecordOf(map[string]tree.Tree[string]{
			"bind": tree.LeafOf("127.0.0.1"),
		})

		var cfg struct {
			Bind net.IP `config:"bind"`
		}
		require.NoError(t, Unmarshal(in, &cfg))
		require.Equal(t, "127.0.0.1", cfg.Bind.String())
	})

	t.Run("reports uncoercible values", func(t *testing.T) {
		in := tree.RecordOf(map[string]tree.Tree[string]{
			"timeout": tree.LeafOf("not-a-duration"),
		})

		var cfg struct {
			Timeout time.Duration `config:"timeout"`
		}
		err := Unmarshal(in, &cfg)

		var cerr TypeCoercionError
		require.ErrorAs(t, err, &cerr)
	})
}
