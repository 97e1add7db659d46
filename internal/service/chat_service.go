package service

import (
	"context"
	"fmt"
	"time"

	"planhub-be/internal/dto"
	"planhub-be/internal/entity"
	"planhub-be/internal/repository/specification"
	"planhub-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IChatService interface {
	CreateSession(ctx context.Context, orgId, userId uuid.UUID, req *dto.CreateChatSessionRequest) (*dto.ChatSessionResponse, error)
	GetAllSessions(ctx context.Context, orgId, userId uuid.UUID) ([]*dto.ChatSessionResponse, error)
	GetSession(ctx context.Context, orgId, userId uuid.UUID, sessionId uuid.UUID) (*dto.ShowChatSessionResponse, error)
	DeleteSession(ctx context.Context, orgId, userId uuid.UUID, sessionId uuid.UUID) error
}

type chatService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewChatService(uowFactory unitofwork.RepositoryFactory) IChatService {
	return &chatService{
		uowFactory: uowFactory,
	}
}

func (s *chatService) CreateSession(ctx context.Context, orgId, userId uuid.UUID, req *dto.CreateChatSessionRequest) (*dto.ChatSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// A project-scoped session must point at a project in the caller's org.
	if req.ProjectId != nil {
		project, err := uow.ProjectRepository().FindOne(ctx,
			specification.ByID{ID: *req.ProjectId},
			specification.OwnedByOrg{OrgID: orgId},
		)
		if err != nil {
			return nil, err
		}
		if project == nil {
			return nil, fmt.Errorf("project %s not found", req.ProjectId)
		}
	}

	session := entity.ChatSession{
		Id:             uuid.New(),
		OrganizationId: orgId,
		ProjectId:      req.ProjectId,
		UserId:         userId,
		Title:          req.Title, // empty until the first message names it
		CreatedAt:      time.Now(),
	}

	if err := uow.ChatSessionRepository().Create(ctx, &session); err != nil {
		return nil, err
	}

	return sessionToResponse(&session), nil
}

func (s *chatService) GetAllSessions(ctx context.Context, orgId, userId uuid.UUID) ([]*dto.ChatSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.OwnedByOrg{OrgID: orgId},
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ChatSessionResponse, 0, len(sessions))
	for _, sess := range sessions {
		res = append(res, sessionToResponse(sess))
	}
	return res, nil
}

func (s *chatService) GetSession(ctx context.Context, orgId, userId uuid.UUID, sessionId uuid.UUID) (*dto.ShowChatSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.OwnedByOrg{OrgID: orgId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	res := &dto.ShowChatSessionResponse{
		Id:        session.Id,
		ProjectId: session.ProjectId,
		Title:     session.Title,
		CreatedAt: session.CreatedAt,
	}
	for _, m := range messages {
		res.Messages = append(res.Messages, dto.ChatMessageResponse{
			Id:        m.Id,
			Role:      m.Role,
			Chat:      m.Chat,
			CreatedAt: m.CreatedAt,
		})
	}
	return res, nil
}

func (s *chatService) DeleteSession(ctx context.Context, orgId, userId uuid.UUID, sessionId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.OwnedByOrg{OrgID: orgId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if session == nil {
		return nil
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ChatMessageRepository().DeleteByChatSessionId(ctx, sessionId); err != nil {
		return err
	}
	if err := uow.ChatSessionRepository().Delete(ctx, sessionId); err != nil {
		return err
	}

	return uow.Commit()
}

func sessionToResponse(s *entity.ChatSession) *dto.ChatSessionResponse {
	return &dto.ChatSessionResponse{
		Id:        s.Id,
		ProjectId: s.ProjectId,
		Title:     s.Title,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
