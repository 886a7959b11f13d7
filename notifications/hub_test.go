package notifications

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worklane/models"
	"worklane/mq"
)

func TestFromEvent(t *testing.T) {
	now := time.Now().UTC()
	ev := mq.Event{
		UserID:  "owner-1",
		Title:   "New application",
		Message: "Bob applied to \"Backend Engineer\"",
		Type:    "application",
		Link:    "/jobs/job-1",
	}

	n := FromEvent(ev, now)
	assert.NotEmpty(t, n.ID)
	assert.Equal(t, "owner-1", n.UserID)
	assert.Equal(t, "New application", n.Title)
	assert.Equal(t, "application", n.Type)
	assert.Equal(t, "/jobs/job-1", n.Link)
	assert.False(t, n.IsRead)
	assert.Equal(t, now, n.CreatedAt)
}

func TestHubPushReachesOwnConnectionsOnly(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	alice := &Client{Send: make(chan []byte, 1), UserID: "alice"}
	bob := &Client{Send: make(chan []byte, 1), UserID: "bob"}
	hub.register <- alice
	hub.register <- bob

	hub.Push(models.Notification{ID: "n1", UserID: "alice", Title: "hi"})

	select {
	case data := <-alice.Send:
		var n models.Notification
		require.NoError(t, json.Unmarshal(data, &n))
		assert.Equal(t, "n1", n.ID)
	case <-time.After(time.Second):
		t.Fatal("alice never received the push")
	}

	select {
	case data := <-bob.Send:
		t.Fatalf("bob received someone else's notification: %s", data)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubUnregisterClosesSend(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	c := &Client{Send: make(chan []byte, 1), UserID: "alice"}
	hub.register <- c
	hub.unregister <- c

	select {
	case _, ok := <-c.Send:
		assert.False(t, ok, "send channel should be closed")
	case <-time.After(time.Second):
		t.Fatal("send channel never closed")
	}

	// Pushing to a departed user must not block.
	done := make(chan struct{})
	go func() {
		hub.Push(models.Notification{UserID: "alice"})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("push to departed user blocked")
	}
}
