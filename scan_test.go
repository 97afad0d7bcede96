package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan(t *testing.T) {
	type poolConfig struct {
		Max     int           `config:"max"`
		Idle    time.Duration `config:"idle"`
		Tags    []string      `config:"tags"`
		Enabled bool          `config:"enabled"`
	}

	res, err := NewBuilder().
		WithStatic("db", map[string]any{
			"driver": "postgres",
			"pool": map[string]any{
				"max":     "25",
				"idle":    "90s",
				"tags":    "primary,replica",
				"enabled": true,
			},
		}).
		Build()
	require.NoError(t, err)

	t.Run("Subtree", func(t *testing.T) {
		var pool poolConfig
		require.NoError(t, res.Scan("db.pool", &pool))

		assert.Equal(t, 25, pool.Max, "weakly typed input converts numeric strings")
		assert.Equal(t, 90*time.Second, pool.Idle)
		assert.Equal(t, []string{"primary", "replica"}, pool.Tags)
		assert.True(t, pool.Enabled)
	})

	t.Run("WholeNamespace", func(t *testing.T) {
		type dbConfig struct {
			Driver string     `config:"driver"`
			Pool   poolConfig `config:"pool"`
		}
		type rootConfig struct {
			DB dbConfig `config:"db"`
		}

		var root rootConfig
		require.NoError(t, res.Scan("", &root))
		assert.Equal(t, "postgres", root.DB.Driver)
		assert.Equal(t, 25, root.DB.Pool.Max)
	})

	t.Run("OverridesVisible", func(t *testing.T) {
		require.NoError(t, res.Set("db.pool.max", 99))
		defer res.Remove("db.pool.max")

		var pool poolConfig
		require.NoError(t, res.Scan("db.pool", &pool))
		assert.Equal(t, 99, pool.Max)
	})

	t.Run("MissingSubtreeLeavesDefaults", func(t *testing.T) {
		pool := poolConfig{Max: 3}
		require.NoError(t, res.Scan("db.replica", &pool))
		assert.Equal(t, 3, pool.Max)
	})

	t.Run("ScalarPathIsError", func(t *testing.T) {
		var pool poolConfig
		err := res.Scan("db.driver", &pool)
		assert.Error(t, err)
	})

	t.Run("NilTarget", func(t *testing.T) {
		assert.Error(t, res.Scan("db", nil))

		var p *poolConfig
		assert.Error(t, res.Scan("db.pool", p))
	})
}
