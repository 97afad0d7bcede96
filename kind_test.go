package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerceBool(t *testing.T) {
	t.Run("CanonicalStrings", func(t *testing.T) {
		cases := map[string]bool{
			"true":  true,
			"1":     true,
			"TRUE":  true,
			"True":  true,
			"false": false,
			"0":     false,
			"FALSE": false,
		}
		for raw, want := range cases {
			got, ok := coerceBool(raw)
			assert.True(t, ok, "coercion of %q should succeed", raw)
			assert.Equal(t, want, got, "coercion of %q", raw)
		}
	})

	// Non-canonical strings resolve by emptiness: non-empty is truthy,
	// empty is falsy. This pins down the policy for inputs like "yes".
	t.Run("NonCanonicalStrings", func(t *testing.T) {
		got, ok := coerceBool("yes")
		assert.True(t, ok)
		assert.True(t, got)

		got, ok = coerceBool("no")
		assert.True(t, ok)
		assert.True(t, got, "any non-empty non-canonical string is truthy, including \"no\"")

		got, ok = coerceBool("")
		assert.True(t, ok)
		assert.False(t, got)
	})

	t.Run("Numbers", func(t *testing.T) {
		got, ok := coerceBool(1)
		assert.True(t, ok)
		assert.True(t, got)

		got, ok = coerceBool(int64(0))
		assert.True(t, ok)
		assert.False(t, got)

		got, ok = coerceBool(0.5)
		assert.True(t, ok)
		assert.True(t, got)
	})

	t.Run("Bool", func(t *testing.T) {
		got, ok := coerceBool(true)
		assert.True(t, ok)
		assert.True(t, got)
	})

	t.Run("Unconvertible", func(t *testing.T) {
		_, ok := coerceBool(nil)
		assert.False(t, ok)

		_, ok = coerceBool([]string{"a"})
		assert.False(t, ok)
	})
}

func TestCoerceInt(t *testing.T) {
	t.Run("Numbers", func(t *testing.T) {
		got, ok := coerceInt(42)
		assert.True(t, ok)
		assert.Equal(t, int64(42), got)

		got, ok = coerceInt(3.9)
		assert.True(t, ok)
		assert.Equal(t, int64(3), got, "floats truncate")

		got, ok = coerceInt(uint16(7))
		assert.True(t, ok)
		assert.Equal(t, int64(7), got)
	})

	t.Run("Strings", func(t *testing.T) {
		got, ok := coerceInt("123")
		assert.True(t, ok)
		assert.Equal(t, int64(123), got)

		got, ok = coerceInt("0x10")
		assert.True(t, ok)
		assert.Equal(t, int64(16), got)

		got, ok = coerceInt("2.5")
		assert.True(t, ok)
		assert.Equal(t, int64(2), got)

		_, ok = coerceInt("not a number")
		assert.False(t, ok)
	})

	t.Run("Overflow", func(t *testing.T) {
		_, ok := coerceInt(uint64(1) << 63)
		assert.False(t, ok)
	})

	t.Run("Bool", func(t *testing.T) {
		got, ok := coerceInt(true)
		assert.True(t, ok)
		assert.Equal(t, int64(1), got)
	})
}

func TestCoerceFloat(t *testing.T) {
	got, ok := coerceFloat("2.75")
	assert.True(t, ok)
	assert.Equal(t, 2.75, got)

	got, ok = coerceFloat(3)
	assert.True(t, ok)
	assert.Equal(t, 3.0, got)

	_, ok = coerceFloat("nope")
	assert.False(t, ok)

	_, ok = coerceFloat(nil)
	assert.False(t, ok)
}

func TestCoerceString(t *testing.T) {
	got, ok := coerceString(8080)
	assert.True(t, ok)
	assert.Equal(t, "8080", got)

	got, ok = coerceString(true)
	assert.True(t, ok)
	assert.Equal(t, "true", got)

	got, ok = coerceString(1.5)
	assert.True(t, ok)
	assert.Equal(t, "1.5", got)

	got, ok = coerceString([]byte("raw"))
	assert.True(t, ok)
	assert.Equal(t, "raw", got)

	_, ok = coerceString(map[string]any{})
	assert.False(t, ok)
}

func TestCoerce(t *testing.T) {
	v, ok := Coerce("1", KindBool)
	assert.True(t, ok)
	assert.Equal(t, true, v)

	v, ok = Coerce("42", KindInt)
	assert.True(t, ok)
	assert.Equal(t, int64(42), v)

	v, ok = Coerce(42, KindString)
	assert.True(t, ok)
	assert.Equal(t, "42", v)

	v, ok = Coerce("0.5", KindFloat)
	assert.True(t, ok)
	assert.Equal(t, 0.5, v)

	_, ok = Coerce("x", Kind(99))
	assert.False(t, ok)
}
