package config_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	config "github.com/jbstrap/strux-config"
)

func newTestResolver(t *testing.T) *config.Resolver {
	t.Helper()

	res, err := config.NewBuilder().
		WithStatic("app", map[string]any{
			"env":   "local",
			"debug": false,
			"flag":  "true",
			"port":  "8080",
			"ratio": 0.5,
			"wait":  "2s",
			"nested": map[string]any{
				"deep": 1,
			},
		}).
		Build()
	require.NoError(t, err)
	return res
}

func TestResolverLookup(t *testing.T) {
	res := newTestResolver(t)

	t.Run("Found", func(t *testing.T) {
		v, ok := res.Get("app.env")
		assert.True(t, ok)
		assert.Equal(t, "local", v)
		assert.True(t, res.Has("app.nested.deep"))
	})

	t.Run("MissingReturnsDefault", func(t *testing.T) {
		assert.Equal(t, "d", res.StringOr("app.absent", "d"))
		assert.Equal(t, "d", res.GetOr("no.such.path", "d"))
		assert.False(t, res.Has("app.absent"))
	})

	t.Run("TraversalThroughScalarReturnsDefault", func(t *testing.T) {
		// app.env is a string; descending into it stops resolution.
		assert.Equal(t, 7, res.IntOr("app.env.inner", 7))
		assert.False(t, res.Has("app.env.inner"))
	})

	t.Run("TypedGetters", func(t *testing.T) {
		assert.True(t, res.BoolOr("app.flag", false), `string "true" coerces to true`)
		assert.False(t, res.BoolOr("app.debug", true))
		assert.Equal(t, 8080, res.IntOr("app.port", 0), "numeric strings coerce")
		assert.Equal(t, int64(8080), res.Int64Or("app.port", 0))
		assert.Equal(t, 0.5, res.Float64Or("app.ratio", 0))
		assert.Equal(t, "0.5", res.StringOr("app.ratio", ""))
		assert.Equal(t, 2*time.Second, res.DurationOr("app.wait", 0))
		assert.Equal(t, time.Minute, res.DurationOr("app.env.x", time.Minute))
	})

	t.Run("CoercionFailureReturnsDefault", func(t *testing.T) {
		assert.Equal(t, 42, res.IntOr("app.env", 42), `"local" is not a number`)
		assert.Equal(t, 1.5, res.Float64Or("app.env", 1.5))
	})

	t.Run("CoerceOr", func(t *testing.T) {
		assert.Equal(t, true, res.CoerceOr("app.flag", false, config.KindBool))
		assert.Equal(t, int64(8080), res.CoerceOr("app.port", int64(0), config.KindInt))
		assert.Equal(t, "fallback", res.CoerceOr("app.missing", "fallback", config.KindString))
	})
}

func TestRuntimeOverrides(t *testing.T) {
	t.Run("OverrideAlwaysWins", func(t *testing.T) {
		res := newTestResolver(t)
		require.NoError(t, res.Set("app.env", "overridden"))

		v, ok := res.Get("app.env")
		assert.True(t, ok)
		assert.Equal(t, "overridden", v)
		assert.True(t, res.HasOverride("app.env"))
	})

	t.Run("OverrideOnVirginPath", func(t *testing.T) {
		res := newTestResolver(t)
		require.NoError(t, res.Set("feature.x", 1))

		v, ok := res.Get("feature.x")
		assert.True(t, ok)
		assert.Equal(t, 1, v)
	})

	t.Run("RemoveRevertsToNamespace", func(t *testing.T) {
		res := newTestResolver(t)
		require.NoError(t, res.Set("app.env", "overridden"))
		res.Remove("app.env")

		v, ok := res.Get("app.env")
		assert.True(t, ok)
		assert.Equal(t, "local", v, "namespace value becomes visible again")
	})

	t.Run("RemoveWithoutPriorSetIsNoOp", func(t *testing.T) {
		res := newTestResolver(t)
		res.Remove("app.env")

		v, ok := res.Get("app.env")
		assert.True(t, ok)
		assert.Equal(t, "local", v)

		res.Remove("never.set")
		assert.False(t, res.Has("never.set"))
	})

	t.Run("RemoveAfterSetOnVirginPath", func(t *testing.T) {
		res := newTestResolver(t)
		require.NoError(t, res.Set("x.y", 1))
		res.Remove("x.y")
		assert.False(t, res.Has("x.y"), "x.y exists nowhere else")
	})

	t.Run("OverrideMatchingIsExactPath", func(t *testing.T) {
		res := newTestResolver(t)
		// A scalar override at "app" does not shadow deeper namespace paths.
		require.NoError(t, res.Set("app", "scalar"))

		v, ok := res.Get("app.env")
		assert.True(t, ok)
		assert.Equal(t, "local", v)

		top, ok := res.Get("app")
		assert.True(t, ok)
		assert.Equal(t, "scalar", top)
	})

	t.Run("InvalidPathRejected", func(t *testing.T) {
		res := newTestResolver(t)
		assert.Error(t, res.Set("", 1))
		assert.Error(t, res.Set("bad..path", 1))
	})
}

func TestResolverSnapshot(t *testing.T) {
	res := newTestResolver(t)
	require.NoError(t, res.Set("app.env", "snap"))

	snapshot := res.Snapshot()
	env, ok := snapshot["app"].(map[string]any)["env"]
	require.True(t, ok)
	assert.Equal(t, "snap", env, "overrides are applied to the snapshot")

	// Mutating the snapshot must not leak back.
	snapshot["app"].(map[string]any)["env"] = "mutated"
	v, _ := res.Get("app.env")
	assert.Equal(t, "snap", v)
}

func TestResolverConcurrency(t *testing.T) {
	res := newTestResolver(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = res.Set(fmt.Sprintf("worker.w%d", n), j)
			}
		}(i)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = res.IntOr(fmt.Sprintf("worker.w%d", n), -1)
				_ = res.StringOr("app.env", "")
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < 8; i++ {
		assert.Equal(t, 99, res.IntOr(fmt.Sprintf("worker.w%d", i), -1))
	}
}
