package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsString(t *testing.T) {
	assert.True(t, ContainsString([]string{"a", "b"}, "a"))
	assert.False(t, ContainsString([]string{}, "a"))
	assert.False(t, ContainsString([]string{"a", "b"}, "c"))
}

func TestRandomAlphabetString(t *testing.T) {
	s := RandomAlphabetString(8)
	assert.Len(t, s, 8)
	for _, r := range s {
		assert.True(t, r >= 'a' && r <= 'z')
	}
}

func TestMin(t *testing.T) {
	assert.Equal(t, 1, Min(1, 2))
	assert.Equal(t, 1, Min(2, 1))
	assert.Equal(t, -1, Min(-1, 0))
}

func TestTextToMd5Hash(t *testing.T) {
	h1, err := TextToMd5Hash("https://example.com/a")
	assert.Nil(t, err)
	h2, err := TextToMd5Hash("https://example.com/a")
	assert.Nil(t, err)
	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 32)

	h3, _ := TextToMd5Hash("https://example.com/b")
	assert.NotEqual(t, h1, h3)
}
