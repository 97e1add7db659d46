package mapper

import (
	"planhub-be/internal/entity"
	"planhub-be/internal/model"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

func (m *ChatMapper) SessionToEntity(s *model.ChatSession) *entity.ChatSession {
	if s == nil {
		return nil
	}

	return &entity.ChatSession{
		Id:             s.Id,
		OrganizationId: s.OrganizationId,
		ProjectId:      s.ProjectId,
		UserId:         s.UserId,
		Title:          s.Title,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      updatedAtToPtr(s.UpdatedAt),
		DeletedAt:      softDeleteToPtr(s.DeletedAt),
	}
}

func (m *ChatMapper) SessionToModel(s *entity.ChatSession) *model.ChatSession {
	if s == nil {
		return nil
	}

	return &model.ChatSession{
		Id:             s.Id,
		OrganizationId: s.OrganizationId,
		ProjectId:      s.ProjectId,
		UserId:         s.UserId,
		Title:          s.Title,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      ptrToUpdatedAt(s.UpdatedAt),
		DeletedAt:      ptrToSoftDelete(s.DeletedAt),
	}
}

func (m *ChatMapper) MessageToEntity(msg *model.ChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}

	return &entity.ChatMessage{
		Id:            msg.Id,
		ChatSessionId: msg.ChatSessionId,
		Role:          msg.Role,
		Chat:          msg.Chat,
		CreatedAt:     msg.CreatedAt,
	}
}

func (m *ChatMapper) MessageToModel(msg *entity.ChatMessage) *model.ChatMessage {
	if msg == nil {
		return nil
	}

	return &model.ChatMessage{
		Id:            msg.Id,
		ChatSessionId: msg.ChatSessionId,
		Role:          msg.Role,
		Chat:          msg.Chat,
		CreatedAt:     msg.CreatedAt,
	}
}
