package service

import (
	"context"
	"encoding/json"
	"fmt"

	"planhub-be/internal/constant"
	"planhub-be/internal/dto"
	"planhub-be/internal/entity"
	"planhub-be/internal/pkg/logger"
	"planhub-be/internal/repository/specification"
	"planhub-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IIndexerService consumes indexing events and keeps retrieval_documents in
// sync with the relational entities. One document per entity; re-index is
// delete-then-add.
type IIndexerService interface {
	Consume(ctx context.Context) error
}

type indexerService struct {
	pubSub             *gochannel.GoChannel
	topicName          string
	uowFactory         unitofwork.RepositoryFactory
	vectorStoreService IVectorStoreService
	logger             logger.ILogger
}

func NewIndexerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	vectorStoreService IVectorStoreService,
	log logger.ILogger,
) IIndexerService {
	return &indexerService{
		pubSub:             pubSub,
		topicName:          topicName,
		uowFactory:         uowFactory,
		vectorStoreService: vectorStoreService,
		logger:             log,
	}
}

func (s *indexerService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *indexerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishIndexEntityMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		s.logger.Error("indexer", "failed to unmarshal index message", map[string]interface{}{"error": err.Error()})
		msg.Ack() // malformed, retrying won't help
		return
	}

	content, found, err := s.buildContent(ctx, &payload)
	if err != nil {
		s.logger.Error("indexer", "failed to load entity for indexing", map[string]interface{}{
			"entity_id": payload.EntityId,
			"error":     err.Error(),
		})
		msg.Nack()
		return
	}
	if !found {
		// Entity deleted between publish and consume; drop its documents.
		if err := s.vectorStoreService.DeleteAllDocumentsByEntityId(ctx, payload.EntityId); err != nil {
			s.logger.Warn("indexer", "failed to drop documents for deleted entity", map[string]interface{}{
				"entity_id": payload.EntityId,
				"error":     err.Error(),
			})
		}
		msg.Ack()
		return
	}

	meta := entity.DocumentMetadata{
		OrgId:        payload.OrgId,
		UserId:       payload.UserId,
		ProjectId:    payload.ProjectId,
		DocumentType: payload.DocumentType,
		EntityId:     payload.EntityId,
	}

	if err := s.vectorStoreService.UpdateDocument(ctx, []string{content}, meta); err != nil {
		s.logger.Error("indexer", "failed to re-index entity", map[string]interface{}{
			"entity_id": payload.EntityId,
			"error":     err.Error(),
		})
		msg.Nack()
		return
	}

	s.logger.Info("indexer", "entity indexed", map[string]interface{}{
		"entity_id":     payload.EntityId,
		"document_type": payload.DocumentType,
	})
	msg.Ack()
}

// buildContent renders the entity to the text that gets embedded. Returns
// found=false when the entity no longer exists.
func (s *indexerService) buildContent(ctx context.Context, payload *dto.PublishIndexEntityMessage) (string, bool, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	switch payload.DocumentType {
	case constant.DocumentTypeInitiative:
		initiative, err := uow.InitiativeRepository().FindOne(ctx, specification.ByID{ID: payload.EntityId})
		if err != nil || initiative == nil {
			return "", false, err
		}
		return fmt.Sprintf("Initiative %s: %s\nStatus: %s\nPriority: %s\n\n%s",
			initiative.Reference, initiative.Title, initiative.Status, initiative.Priority, initiative.Description), true, nil

	case constant.DocumentTypeMilestone:
		milestone, err := uow.MilestoneRepository().FindOne(ctx, specification.ByID{ID: payload.EntityId})
		if err != nil || milestone == nil {
			return "", false, err
		}
		return fmt.Sprintf("Milestone %s: %s\nDue: %s\nStatus: %s\n\n%s",
			milestone.Reference, milestone.Title, milestone.DueDate.Format("2006-01-02"), milestone.Status, milestone.Description), true, nil

	case constant.DocumentTypeObjective:
		objective, err := uow.ObjectiveRepository().FindOne(ctx, specification.ByID{ID: payload.EntityId})
		if err != nil || objective == nil {
			return "", false, err
		}
		target := "-"
		if objective.TargetDate != nil {
			target = objective.TargetDate.Format("2006-01-02")
		}
		return fmt.Sprintf("Objective %s: %s\nTarget: %s\nStatus: %s\n\n%s",
			objective.Reference, objective.Title, target, objective.Status, objective.Description), true, nil

	case constant.DocumentTypeWorkItem:
		item, err := uow.WorkItemRepository().FindOne(ctx, specification.ByID{ID: payload.EntityId})
		if err != nil || item == nil {
			return "", false, err
		}
		return fmt.Sprintf("Work item %s: %s\nStatus: %s\nPriority: %s\n\n%s",
			item.Reference, item.Title, item.Status, item.Priority, item.Description), true, nil

	default:
		return "", false, fmt.Errorf("unknown document type %q", payload.DocumentType)
	}
}
