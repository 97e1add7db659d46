package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateChatSessionRequest struct {
	ProjectId *uuid.UUID `json:"project_id"`
	Title     string     `json:"title"`
}

type ChatSessionResponse struct {
	Id        uuid.UUID  `json:"id"`
	ProjectId *uuid.UUID `json:"project_id"`
	Title     string     `json:"title"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type ChatMessageResponse struct {
	Id        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Chat      string    `json:"chat"`
	CreatedAt time.Time `json:"created_at"`
}

type ShowChatSessionResponse struct {
	Id        uuid.UUID             `json:"id"`
	ProjectId *uuid.UUID            `json:"project_id"`
	Title     string                `json:"title"`
	Messages  []ChatMessageResponse `json:"messages"`
	CreatedAt time.Time             `json:"created_at"`
}

// StreamChatRequest carries the query parameters of the streaming assistant
// endpoint.
type StreamChatRequest struct {
	SessionId uuid.UUID `query:"session_id" validate:"required"`
	Message   string    `query:"message" validate:"required"`
}

// PublishIndexEntityMessage is the payload put on the indexing topic when an
// entity needs (re)embedding.
type PublishIndexEntityMessage struct {
	EntityId     uuid.UUID `json:"entity_id"`
	DocumentType string    `json:"document_type"`
	OrgId        uuid.UUID `json:"org_id"`
	UserId       uuid.UUID `json:"user_id"`
	ProjectId    uuid.UUID `json:"project_id"`
}
