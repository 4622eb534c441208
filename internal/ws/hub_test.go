package ws

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(userID uint, role string) *Client {
	return &Client{UserID: userID, Role: role, Send: make(chan []byte, 4)}
}

func TestBroadcastSkipsSender(t *testing.T) {
	room := newRoom(1)
	sender := newClient(1, "ARTIST")
	other := newClient(2, "THEATER")
	room.Join(sender)
	room.Join(other)

	room.Broadcast(sender, map[string]string{"body": "hello"})

	require.Len(t, other.Send, 1)
	assert.Contains(t, string(<-other.Send), "hello")
	assert.Empty(t, sender.Send)
}

func TestBroadcastDropsWhenBufferFull(t *testing.T) {
	room := newRoom(1)
	slow := &Client{UserID: 2, Send: make(chan []byte)} // unbuffered, no reader
	room.Join(slow)

	// Must not block.
	room.Broadcast(nil, map[string]string{"body": "x"})
	assert.Empty(t, slow.Send)
}

func TestHubReusesRooms(t *testing.T) {
	hub := NewHub()
	a := hub.GetOrCreateRoom(7)
	b := hub.GetOrCreateRoom(7)
	assert.Same(t, a, b)

	hub.RemoveRoom(7)
	c := hub.GetOrCreateRoom(7)
	assert.NotSame(t, a, c)
}

func TestLeaveShrinksRoom(t *testing.T) {
	room := newRoom(3)
	c := newClient(1, "ARTIST")
	room.Join(c)
	require.Equal(t, 1, room.ClientCount())
	room.Leave(c)
	assert.Equal(t, 0, room.ClientCount())
}
