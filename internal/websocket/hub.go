package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"planhub-be/internal/pkg/logger"
	"planhub-be/pkg/agent"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// redisChannel carries chat events between instances so a stream started on
// one instance reaches devices connected to another.
const redisChannel = "chat_stream_events"

// Hub mirrors assistant stream events to a user's websocket connections.
// The SSE response is the primary transport; the hub lets other open devices
// of the same user watch the answer arrive.
type Hub struct {
	// UserID -> connected clients (multi-device)
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Redis connection for cross-instance relay; nil disables it.
	rdb *redis.Client

	// instanceID lets a hub skip its own relayed messages; local delivery
	// already happened in SendEvent.
	instanceID string

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		instanceID: uuid.NewString(),
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"user_id": client.UserID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.UserID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.UserID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.UserID]) == 0 {
					delete(h.clients, client.UserID)
				}
			}
			h.mu.Unlock()
		}
	}
}

// SendEvent pushes one stream event to every connection the user has, local
// and remote.
func (h *Hub) SendEvent(userID uuid.UUID, sessionID uuid.UUID, event agent.ChatEvent) {
	data, _ := json.Marshal(map[string]interface{}{
		"type":       "chat_event",
		"session_id": sessionID,
		"event":      event,
	})

	h.sendLocal(userID, data)

	if h.rdb != nil {
		payload, _ := json.Marshal(map[string]interface{}{
			"origin":         h.instanceID,
			"target_user_id": userID.String(),
			"message":        json.RawMessage(data),
		})
		h.rdb.Publish(context.Background(), redisChannel, payload)
	}
}

func (h *Hub) sendLocal(userID uuid.UUID, data []byte) {
	// Sends happen under the read lock; Run closes Send channels under the
	// write lock, so a send can never race a close. Run's unregister branch
	// is the only place a Send channel is closed.
	h.mu.RLock()
	var dropped []*Client
	for _, client := range h.clients[userID] {
		select {
		case client.Send <- data:
		default:
			dropped = append(dropped, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range dropped {
		// Slow consumer: drop the connection rather than the stream.
		h.logger.Warn("Hub", "Client send buffer full, dropping connection", map[string]interface{}{"user_id": userID})
		h.unregister <- client
	}
}

// subscribeToRedis delivers events published by other instances. Every
// instance subscribes to the one channel and forwards only to users it
// holds locally.
func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, redisChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload struct {
			Origin       string          `json:"origin"`
			TargetUserID string          `json:"target_user_id"`
			Message      json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			h.logger.Warn("Hub", "Bad relay payload", map[string]interface{}{"error": err.Error()})
			continue
		}
		if payload.Origin == h.instanceID {
			continue
		}

		uid, err := uuid.Parse(payload.TargetUserID)
		if err != nil {
			continue
		}

		h.mu.RLock()
		_, local := h.clients[uid]
		h.mu.RUnlock()
		if local {
			h.sendLocal(uid, payload.Message)
		}
	}
}
