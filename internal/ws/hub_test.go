package ws

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(id string, userID uint) *Client {
	return &Client{
		ID:       id,
		UserID:   userID,
		Username: id,
		Send:     make(chan []byte, 4),
	}
}

func drain(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case raw := <-c.Send:
		var ev Event
		require.NoError(t, json.Unmarshal(raw, &ev))
		return ev
	default:
		t.Fatalf("client %s: no event queued", c.ID)
		return Event{}
	}
}

func TestBroadcastFanOut(t *testing.T) {
	hub := NewHub(zap.NewNop())
	a := newTestClient("a", 1)
	b := newTestClient("b", 2)
	c := newTestClient("c", 3)

	hub.Join(7, a)
	hub.Join(7, b)
	hub.Join(8, c)
	assert.Equal(t, 2, hub.GroupSize(7))
	assert.Equal(t, 1, hub.GroupSize(8))

	hub.Broadcast(7, Event{Event: "round-changed", Data: map[string]interface{}{"round": "synergy"}})

	for _, cl := range []*Client{a, b} {
		ev := drain(t, cl)
		assert.Equal(t, "round-changed", ev.Event)
	}
	assert.Empty(t, c.Send)
}

func TestBroadcastExceptSkipsOriginator(t *testing.T) {
	hub := NewHub(zap.NewNop())
	a := newTestClient("a", 1)
	b := newTestClient("b", 2)
	hub.Join(7, a)
	hub.Join(7, b)

	hub.BroadcastExcept(7, a, Event{Event: "new-message"})

	assert.Empty(t, a.Send)
	ev := drain(t, b)
	assert.Equal(t, "new-message", ev.Event)
}

func TestLeaveStopsDelivery(t *testing.T) {
	hub := NewHub(zap.NewNop())
	a := newTestClient("a", 1)
	b := newTestClient("b", 2)
	hub.Join(7, a)
	hub.Join(7, b)

	sessionID, ok := hub.Leave(a)
	assert.True(t, ok)
	assert.EqualValues(t, 7, sessionID)
	assert.Zero(t, a.SessionID)
	assert.Equal(t, 1, hub.GroupSize(7))

	hub.Broadcast(7, Event{Event: "user-left"})
	assert.Empty(t, a.Send)
	assert.Equal(t, "user-left", drain(t, b).Event)

	// Leaving twice is harmless.
	_, ok = hub.Leave(a)
	assert.False(t, ok)
}

func TestBroadcastDropsWhenBufferFull(t *testing.T) {
	hub := NewHub(zap.NewNop())
	a := &Client{ID: "a", UserID: 1, Send: make(chan []byte, 1)}
	b := newTestClient("b", 2)
	hub.Join(7, a)
	hub.Join(7, b)

	hub.Broadcast(7, Event{Event: "first"})
	hub.Broadcast(7, Event{Event: "second"})

	// a's buffer held only the first event; b got both.
	assert.Equal(t, "first", drain(t, a).Event)
	assert.Empty(t, a.Send)
	assert.Equal(t, "first", drain(t, b).Event)
	assert.Equal(t, "second", drain(t, b).Event)
}

func TestBroadcastUnknownSessionIsNoop(t *testing.T) {
	hub := NewHub(zap.NewNop())
	a := newTestClient("a", 1)
	hub.Join(7, a)

	hub.Broadcast(99, Event{Event: "ghost"})
	assert.Empty(t, a.Send)
}
