package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is one turn of a conversation session. Role is "human" or "ai".
// The transcript is append-only; the orchestrator reloads the whole thing on
// every invocation.
type ChatMessage struct {
	Id            uuid.UUID
	ChatSessionId uuid.UUID
	Role          string
	Chat          string
	CreatedAt     time.Time
}
