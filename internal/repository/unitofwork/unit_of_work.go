package unitofwork

import (
	"context"

	"planhub-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	OrganizationRepository() contract.OrganizationRepository
	ProjectRepository() contract.ProjectRepository
	InitiativeRepository() contract.InitiativeRepository
	MilestoneRepository() contract.MilestoneRepository
	ObjectiveRepository() contract.ObjectiveRepository
	KeyResultRepository() contract.KeyResultRepository
	SprintRepository() contract.SprintRepository
	WorkItemRepository() contract.WorkItemRepository

	ChatSessionRepository() contract.ChatSessionRepository
	ChatMessageRepository() contract.ChatMessageRepository
	RetrievalDocumentRepository() contract.RetrievalDocumentRepository
	SequenceRepository() contract.SequenceRepository
}
