package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"planhub-be/internal/constant"
	"planhub-be/internal/dto"
	"planhub-be/internal/entity"
	"planhub-be/internal/repository/specification"
	"planhub-be/internal/repository/unitofwork"
	"planhub-be/pkg/events"
	pktNats "planhub-be/pkg/nats"

	"github.com/google/uuid"
)

type IInitiativeService interface {
	Create(ctx context.Context, orgId, projectId, userId uuid.UUID, req *dto.CreateInitiativeRequest) (*dto.InitiativeResponse, error)
	Update(ctx context.Context, orgId, userId uuid.UUID, req *dto.UpdateInitiativeRequest) (*dto.InitiativeResponse, error)
	FindByReference(ctx context.Context, orgId uuid.UUID, reference string) (*dto.InitiativeResponse, error)
	SearchByTitle(ctx context.Context, orgId, projectId uuid.UUID, title string) ([]*dto.InitiativeResponse, error)
	List(ctx context.Context, orgId, projectId uuid.UUID, status string) ([]*dto.InitiativeResponse, error)
	ListByMilestone(ctx context.Context, orgId, milestoneId uuid.UUID) ([]*dto.InitiativeResponse, error)
}

type initiativeService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
}

func NewInitiativeService(uowFactory unitofwork.RepositoryFactory, publisherService IPublisherService, eventPublisher *pktNats.Publisher) IInitiativeService {
	return &initiativeService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
	}
}

func (s *initiativeService) Create(ctx context.Context, orgId, projectId, userId uuid.UUID, req *dto.CreateInitiativeRequest) (*dto.InitiativeResponse, error) {
	startDate, err := parseOptionalDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	targetDate, err := parseOptionalDate(req.TargetDate)
	if err != nil {
		return nil, err
	}

	priority := req.Priority
	if priority == "" {
		priority = constant.PriorityMedium
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	seq, err := uow.SequenceRepository().Next(ctx, orgId, constant.RefPrefixInitiative)
	if err != nil {
		return nil, err
	}

	initiative := entity.Initiative{
		Id:             uuid.New(),
		OrganizationId: orgId,
		ProjectId:      projectId,
		ObjectiveId:    req.ObjectiveId,
		MilestoneId:    req.MilestoneId,
		SeqNumber:      seq,
		Reference:      fmt.Sprintf("%s-%d", constant.RefPrefixInitiative, seq),
		Title:          req.Title,
		Description:    req.Description,
		Status:         constant.StatusPlanned,
		Priority:       priority,
		StartDate:      startDate,
		TargetDate:     targetDate,
		CreatedAt:      time.Now(),
	}

	if err := uow.InitiativeRepository().Create(ctx, &initiative); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publishIndex(ctx, initiative.Id, constant.DocumentTypeInitiative, orgId, userId, projectId)

	// External consumers (automation, audit) hear about new initiatives;
	// delivery failures never fail the request.
	if s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: "INITIATIVE_CREATED",
			Data: map[string]interface{}{
				"initiative_id": initiative.Id,
				"reference":     initiative.Reference,
				"title":         initiative.Title,
				"org_id":        orgId,
				"project_id":    projectId,
				"user_id":       userId,
			},
			OccurredAt: time.Now(),
		}
		_ = s.eventPublisher.Publish(ctx, evt)
	}

	return initiativeToResponse(&initiative), nil
}

func (s *initiativeService) Update(ctx context.Context, orgId, userId uuid.UUID, req *dto.UpdateInitiativeRequest) (*dto.InitiativeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	initiative, err := uow.InitiativeRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.OwnedByOrg{OrgID: orgId},
	)
	if err != nil {
		return nil, err
	}
	if initiative == nil {
		return nil, nil
	}

	if req.Title != nil {
		initiative.Title = *req.Title
	}
	if req.Description != nil {
		initiative.Description = *req.Description
	}
	if req.Status != nil {
		initiative.Status = *req.Status
	}
	if req.Priority != nil {
		initiative.Priority = *req.Priority
	}
	if req.StartDate != nil {
		startDate, err := parseOptionalDate(req.StartDate)
		if err != nil {
			return nil, err
		}
		initiative.StartDate = startDate
	}
	if req.TargetDate != nil {
		targetDate, err := parseOptionalDate(req.TargetDate)
		if err != nil {
			return nil, err
		}
		initiative.TargetDate = targetDate
	}

	now := time.Now()
	initiative.UpdatedAt = &now

	if err := uow.InitiativeRepository().Update(ctx, initiative); err != nil {
		return nil, err
	}

	s.publishIndex(ctx, initiative.Id, constant.DocumentTypeInitiative, orgId, userId, initiative.ProjectId)

	return initiativeToResponse(initiative), nil
}

func (s *initiativeService) FindByReference(ctx context.Context, orgId uuid.UUID, reference string) (*dto.InitiativeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	initiative, err := uow.InitiativeRepository().FindOne(ctx,
		specification.ByReference{Reference: reference},
		specification.OwnedByOrg{OrgID: orgId},
	)
	if err != nil {
		return nil, err
	}
	if initiative == nil {
		return nil, nil
	}
	return initiativeToResponse(initiative), nil
}

func (s *initiativeService) SearchByTitle(ctx context.Context, orgId, projectId uuid.UUID, title string) ([]*dto.InitiativeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	initiatives, err := uow.InitiativeRepository().FindAll(ctx,
		specification.OwnedByOrg{OrgID: orgId},
		specification.OwnedByProject{ProjectID: projectId},
		specification.TitleContains{Fragment: title},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	return initiativesToResponses(initiatives), nil
}

func (s *initiativeService) List(ctx context.Context, orgId, projectId uuid.UUID, status string) ([]*dto.InitiativeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OwnedByOrg{OrgID: orgId},
		specification.OwnedByProject{ProjectID: projectId},
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if status != "" {
		specs = append(specs, specification.Filter("status", status))
	}

	initiatives, err := uow.InitiativeRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}
	return initiativesToResponses(initiatives), nil
}

func (s *initiativeService) ListByMilestone(ctx context.Context, orgId, milestoneId uuid.UUID) ([]*dto.InitiativeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	initiatives, err := uow.InitiativeRepository().FindAll(ctx,
		specification.OwnedByOrg{OrgID: orgId},
		specification.ByMilestoneID{MilestoneID: milestoneId},
	)
	if err != nil {
		return nil, err
	}
	return initiativesToResponses(initiatives), nil
}

func (s *initiativeService) publishIndex(ctx context.Context, entityId uuid.UUID, docType string, orgId, userId, projectId uuid.UUID) {
	if s.publisherService == nil {
		return
	}
	payload := dto.PublishIndexEntityMessage{
		EntityId:     entityId,
		DocumentType: docType,
		OrgId:        orgId,
		UserId:       userId,
		ProjectId:    projectId,
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return
	}
	// Indexing is best-effort; the relational write already succeeded.
	_ = s.publisherService.Publish(ctx, payloadJson)
}

func initiativeToResponse(i *entity.Initiative) *dto.InitiativeResponse {
	return &dto.InitiativeResponse{
		Id:          i.Id,
		Reference:   i.Reference,
		Title:       i.Title,
		Description: i.Description,
		Status:      i.Status,
		Priority:    i.Priority,
		ObjectiveId: i.ObjectiveId,
		MilestoneId: i.MilestoneId,
		StartDate:   i.StartDate,
		TargetDate:  i.TargetDate,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

func initiativesToResponses(initiatives []*entity.Initiative) []*dto.InitiativeResponse {
	res := make([]*dto.InitiativeResponse, 0, len(initiatives))
	for _, i := range initiatives {
		res = append(res, initiativeToResponse(i))
	}
	return res
}
