package typing

import (
	"math/rand"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
)

func TestAdjacentKeyIsPhysicallyAdjacent(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 50; i++ {
		got := adjacentKey('a', rng)
		assert.Contains(t, []rune{'s', 'q', 'w', 'z', 'x'}, got)
		assert.NotEqual(t, 'a', got)
	}
}

func TestAdjacentKeyPreservesCase(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 50; i++ {
		got := adjacentKey('G', rng)
		assert.True(t, unicode.IsUpper(got), "substitute for %q must stay uppercase, got %q", 'G', got)
	}

	for i := 0; i < 50; i++ {
		got := adjacentKey('g', rng)
		assert.True(t, unicode.IsLower(got))
	}
}

func TestAdjacentKeyDigits(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		got := adjacentKey('5', rng)
		assert.Contains(t, []rune{'4', '6', 'r', 't', 'y'}, got)
	}
}

func TestAdjacentKeyUnknownRune(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	assert.Equal(t, '@', adjacentKey('@', rng))
	assert.Equal(t, 'é', adjacentKey('é', rng))
}

func TestSentencePunctuation(t *testing.T) {
	assert.True(t, isSentencePunctuation('.'))
	assert.True(t, isSentencePunctuation('!'))
	assert.True(t, isSentencePunctuation('?'))
	assert.False(t, isSentencePunctuation(','))
	assert.False(t, isSentencePunctuation('a'))
}
