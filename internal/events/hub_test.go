package events

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHub_FansOutToAllSubscribers(t *testing.T) {
	t.Parallel()

	h := NewHub()
	a := h.Subscribe()
	b := h.Subscribe()

	h.Publish("one")
	require.Equal(t, "one", <-a)
	require.Equal(t, "one", <-b)

	h.Unsubscribe(a)
	h.Publish("two")
	require.Equal(t, "two", <-b)
	_, open := <-a
	require.False(t, open)
	h.Unsubscribe(b)
}

func TestHub_PublishNeverBlocksOnASlowSubscriber(t *testing.T) {
	t.Parallel()

	h := NewHub()
	slow := h.Subscribe()
	defer h.Unsubscribe(slow)

	for i := 0; i < subscriberBuffer+5; i++ {
		h.Publish("evt")
	}
	// the buffer is full; the overflow was dropped, not queued
	require.Len(t, slow, subscriberBuffer)
}

func TestMakeEvent_Envelope(t *testing.T) {
	t.Parallel()

	raw := MakeEvent("req-1", "feed_reloaded", 1, map[string]int{"count": 3})

	var e Event
	require.NoError(t, json.Unmarshal([]byte(raw), &e))
	require.Equal(t, "feed_reloaded", e.Type)
	require.Equal(t, 1, e.Version)
	require.Equal(t, "req-1", e.RequestID)
	require.JSONEq(t, `{"count":3}`, string(e.Data))
	require.False(t, e.At.IsZero())
}
