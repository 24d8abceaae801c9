package main

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestKeyMap(t *testing.T) {
	assert.Equal(t, 16, len(KeyMap))

	seen := make(map[uint8]bool)
	for _, key := range KeyMap {
		assert.True(t, key < 16)
		seen[key] = true
	}

	assert.Equal(t, 16, len(seen))
}
