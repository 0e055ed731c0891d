package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAsFloat(t *testing.T) {
	assert.Equal(t, 9.99, asFloat(9.99))
	assert.Equal(t, 9.99, asFloat("9.99"))
	assert.Equal(t, 0.0, asFloat("not a number"))
	assert.Equal(t, 0.0, asFloat(nil))
	assert.Equal(t, 0.0, asFloat(true))
}

func TestAsInt(t *testing.T) {
	assert.Equal(t, 5, asInt(float64(5)))
	assert.Equal(t, 5, asInt("5"))
	assert.Equal(t, 0, asInt(nil))
}

func TestAsUint(t *testing.T) {
	assert.Equal(t, uint(3), asUint(float64(3)))
	assert.Equal(t, uint(3), asUint("3"))
	assert.Equal(t, uint(0), asUint(float64(-3)))
}

func TestAsStringSlice(t *testing.T) {
	got, ok := asStringSlice([]interface{}{"a.jpeg", "b.png"})
	assert.True(t, ok)
	assert.Equal(t, []string{"a.jpeg", "b.png"}, got)

	// Absent or non-array values report not-ok so callers can tell "no image
	// key" apart from "empty image array"
	_, ok = asStringSlice(nil)
	assert.False(t, ok)
	_, ok = asStringSlice("a.jpeg")
	assert.False(t, ok)

	got, ok = asStringSlice([]interface{}{})
	assert.True(t, ok)
	assert.Empty(t, got)
}
