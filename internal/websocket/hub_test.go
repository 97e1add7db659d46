package websocket

import (
	"testing"
	"time"

	"planhub-be/pkg/agent"

	"github.com/google/uuid"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func waitForClients(t *testing.T, h *Hub, userID uuid.UUID, want int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		h.mu.RLock()
		got := len(h.clients[userID])
		h.mu.RUnlock()
		if got == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("client count for %s never reached %d", userID, want)
}

func TestSendEventDropsSlowConsumer(t *testing.T) {
	hub := NewHub(nil, nopLogger{})
	go hub.Run()

	userID := uuid.New()
	slow := &Client{Hub: hub, UserID: userID, Send: make(chan []byte)}
	fast := &Client{Hub: hub, UserID: userID, Send: make(chan []byte, 8)}
	hub.register <- slow
	hub.register <- fast
	waitForClients(t, hub, userID, 2)

	hub.SendEvent(userID, uuid.New(), agent.ChatEvent{ID: "1", Type: "message", Data: "hello"})

	select {
	case <-fast.Send:
	case <-time.After(time.Second):
		t.Fatal("fast client never received the event")
	}

	// The slow consumer gets unregistered and its channel closed exactly once.
	waitForClients(t, hub, userID, 1)
	select {
	case _, ok := <-slow.Send:
		if ok {
			t.Error("slow client received a message instead of being dropped")
		}
	case <-time.After(time.Second):
		t.Fatal("slow client channel was never closed")
	}

	// Delivery to the surviving client keeps working.
	hub.SendEvent(userID, uuid.New(), agent.ChatEvent{ID: "2", Type: "message", Data: "again"})
	select {
	case <-fast.Send:
	case <-time.After(time.Second):
		t.Fatal("fast client never received the second event")
	}
}

func TestUnregisterToleratesDuplicates(t *testing.T) {
	hub := NewHub(nil, nopLogger{})
	go hub.Run()

	userID := uuid.New()
	client := &Client{Hub: hub, UserID: userID, Send: make(chan []byte, 1)}
	hub.register <- client
	waitForClients(t, hub, userID, 1)

	// Both the read pump and a slow-consumer drop can request the same
	// unregister; the second must be a no-op, not a double close.
	hub.unregister <- client
	hub.unregister <- client
	waitForClients(t, hub, userID, 0)

	select {
	case _, ok := <-client.Send:
		if ok {
			t.Error("unexpected message on unregistered client")
		}
	case <-time.After(time.Second):
		t.Fatal("client channel was never closed")
	}
}
