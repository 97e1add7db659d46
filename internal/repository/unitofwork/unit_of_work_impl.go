package unitofwork

import (
	"context"
	"fmt"

	"planhub-be/internal/repository/contract"
	"planhub-be/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB // active transaction, nil outside Begin/Commit
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	return u.tx.Error
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) OrganizationRepository() contract.OrganizationRepository {
	return implementation.NewOrganizationRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ProjectRepository() contract.ProjectRepository {
	return implementation.NewProjectRepository(u.getDB())
}

func (u *UnitOfWorkImpl) InitiativeRepository() contract.InitiativeRepository {
	return implementation.NewInitiativeRepository(u.getDB())
}

func (u *UnitOfWorkImpl) MilestoneRepository() contract.MilestoneRepository {
	return implementation.NewMilestoneRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ObjectiveRepository() contract.ObjectiveRepository {
	return implementation.NewObjectiveRepository(u.getDB())
}

func (u *UnitOfWorkImpl) KeyResultRepository() contract.KeyResultRepository {
	return implementation.NewKeyResultRepository(u.getDB())
}

func (u *UnitOfWorkImpl) SprintRepository() contract.SprintRepository {
	return implementation.NewSprintRepository(u.getDB())
}

func (u *UnitOfWorkImpl) WorkItemRepository() contract.WorkItemRepository {
	return implementation.NewWorkItemRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ChatSessionRepository() contract.ChatSessionRepository {
	return implementation.NewChatSessionRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ChatMessageRepository() contract.ChatMessageRepository {
	return implementation.NewChatMessageRepository(u.getDB())
}

func (u *UnitOfWorkImpl) RetrievalDocumentRepository() contract.RetrievalDocumentRepository {
	return implementation.NewRetrievalDocumentRepository(u.getDB())
}

func (u *UnitOfWorkImpl) SequenceRepository() contract.SequenceRepository {
	return implementation.NewSequenceRepository(u.getDB())
}
