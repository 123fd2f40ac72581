package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnectionPairKey(t *testing.T) {
	// Order-independent: both directions produce the same key.
	assert.Equal(t, ConnectionPairKey("user-a", "user-b"), ConnectionPairKey("user-b", "user-a"))
	assert.Equal(t, "user-a:user-b", ConnectionPairKey("user-b", "user-a"))
	assert.NotEqual(t, ConnectionPairKey("user-a", "user-b"), ConnectionPairKey("user-a", "user-c"))
}

func TestConnectionCounterpart(t *testing.T) {
	conn := &Connection{RequesterID: "user-a", ReceiverID: "user-b"}

	assert.Equal(t, "user-b", conn.CounterpartID("user-a"))
	assert.Equal(t, "user-a", conn.CounterpartID("user-b"))

	assert.True(t, conn.Involves("user-a"))
	assert.True(t, conn.Involves("user-b"))
	assert.False(t, conn.Involves("user-c"))
}
