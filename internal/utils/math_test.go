package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomFloatRange(t *testing.T) {
	for i := 0; i < 1000; i++ {
		v := RandomFloat()
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestRandomIntRange(t *testing.T) {
	for i := 0; i < 1000; i++ {
		v := RandomInt(3, 6)
		assert.GreaterOrEqual(t, v, 3)
		assert.LessOrEqual(t, v, 6)
	}

	// Degenerate range returns min
	assert.Equal(t, 5, RandomInt(5, 5))
	assert.Equal(t, 7, RandomInt(7, 2))
}

func TestSecureRandomInt(t *testing.T) {
	for i := 0; i < 100; i++ {
		v, err := SecureRandomInt(0, 9)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v, 0)
		assert.LessOrEqual(t, v, 9)
	}

	_, err := SecureRandomInt(10, 1)
	assert.Error(t, err)
}
