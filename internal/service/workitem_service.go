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

	"github.com/google/uuid"
)

type IWorkItemService interface {
	Create(ctx context.Context, orgId, projectId, userId uuid.UUID, req *dto.CreateWorkItemRequest) (*dto.WorkItemResponse, error)
	Update(ctx context.Context, orgId, userId uuid.UUID, req *dto.UpdateWorkItemRequest) (*dto.WorkItemResponse, error)
	// Move assigns the item to a sprint, or back to the backlog when
	// SprintId is nil.
	Move(ctx context.Context, orgId uuid.UUID, req *dto.MoveWorkItemRequest) (*dto.WorkItemResponse, error)
	FindByReference(ctx context.Context, orgId uuid.UUID, reference string) (*dto.WorkItemResponse, error)
	ListBySprint(ctx context.Context, orgId, sprintId uuid.UUID) ([]*dto.WorkItemResponse, error)
	ListBacklog(ctx context.Context, orgId, projectId uuid.UUID) ([]*dto.WorkItemResponse, error)
}

type workItemService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
}

func NewWorkItemService(uowFactory unitofwork.RepositoryFactory, publisherService IPublisherService) IWorkItemService {
	return &workItemService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
	}
}

func (s *workItemService) Create(ctx context.Context, orgId, projectId, userId uuid.UUID, req *dto.CreateWorkItemRequest) (*dto.WorkItemResponse, error) {
	priority := req.Priority
	if priority == "" {
		priority = constant.PriorityMedium
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	// A sprint link must point at a sprint inside the caller's org.
	if req.SprintId != nil {
		sprint, err := uow.SprintRepository().FindOne(ctx,
			specification.ByID{ID: *req.SprintId},
			specification.OwnedByOrg{OrgID: orgId},
		)
		if err != nil {
			return nil, err
		}
		if sprint == nil {
			return nil, fmt.Errorf("sprint %s not found", req.SprintId)
		}
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	seq, err := uow.SequenceRepository().Next(ctx, orgId, constant.RefPrefixWorkItem)
	if err != nil {
		return nil, err
	}

	item := entity.WorkItem{
		Id:             uuid.New(),
		OrganizationId: orgId,
		ProjectId:      projectId,
		InitiativeId:   req.InitiativeId,
		SprintId:       req.SprintId,
		SeqNumber:      seq,
		Reference:      fmt.Sprintf("%s-%d", constant.RefPrefixWorkItem, seq),
		Title:          req.Title,
		Description:    req.Description,
		Status:         constant.StatusPlanned,
		Priority:       priority,
		Estimate:       req.Estimate,
		CreatedAt:      time.Now(),
	}

	if err := uow.WorkItemRepository().Create(ctx, &item); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publishIndex(ctx, item.Id, orgId, userId, projectId)

	return workItemToResponse(&item), nil
}

func (s *workItemService) Update(ctx context.Context, orgId, userId uuid.UUID, req *dto.UpdateWorkItemRequest) (*dto.WorkItemResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	item, err := uow.WorkItemRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.OwnedByOrg{OrgID: orgId},
	)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Status != nil {
		item.Status = *req.Status
	}
	if req.Priority != nil {
		item.Priority = *req.Priority
	}
	if req.Estimate != nil {
		item.Estimate = *req.Estimate
	}

	now := time.Now()
	item.UpdatedAt = &now

	if err := uow.WorkItemRepository().Update(ctx, item); err != nil {
		return nil, err
	}

	s.publishIndex(ctx, item.Id, orgId, userId, item.ProjectId)

	return workItemToResponse(item), nil
}

func (s *workItemService) Move(ctx context.Context, orgId uuid.UUID, req *dto.MoveWorkItemRequest) (*dto.WorkItemResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	item, err := uow.WorkItemRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.OwnedByOrg{OrgID: orgId},
	)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	if req.SprintId != nil {
		sprint, err := uow.SprintRepository().FindOne(ctx,
			specification.ByID{ID: *req.SprintId},
			specification.OwnedByOrg{OrgID: orgId},
		)
		if err != nil {
			return nil, err
		}
		if sprint == nil {
			return nil, fmt.Errorf("sprint %s not found", req.SprintId)
		}
	}

	now := time.Now()
	item.SprintId = req.SprintId
	item.UpdatedAt = &now

	if err := uow.WorkItemRepository().Update(ctx, item); err != nil {
		return nil, err
	}
	return workItemToResponse(item), nil
}

func (s *workItemService) FindByReference(ctx context.Context, orgId uuid.UUID, reference string) (*dto.WorkItemResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	item, err := uow.WorkItemRepository().FindOne(ctx,
		specification.ByReference{Reference: reference},
		specification.OwnedByOrg{OrgID: orgId},
	)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	return workItemToResponse(item), nil
}

func (s *workItemService) ListBySprint(ctx context.Context, orgId, sprintId uuid.UUID) ([]*dto.WorkItemResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	items, err := uow.WorkItemRepository().FindAll(ctx,
		specification.OwnedByOrg{OrgID: orgId},
		specification.BySprintID{SprintID: sprintId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}
	return workItemsToResponses(items), nil
}

func (s *workItemService) ListBacklog(ctx context.Context, orgId, projectId uuid.UUID) ([]*dto.WorkItemResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	items, err := uow.WorkItemRepository().FindAll(ctx,
		specification.OwnedByOrg{OrgID: orgId},
		specification.OwnedByProject{ProjectID: projectId},
		specification.BacklogOnly{},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}
	return workItemsToResponses(items), nil
}

func (s *workItemService) publishIndex(ctx context.Context, entityId uuid.UUID, orgId, userId, projectId uuid.UUID) {
	if s.publisherService == nil {
		return
	}
	payload := dto.PublishIndexEntityMessage{
		EntityId:     entityId,
		DocumentType: constant.DocumentTypeWorkItem,
		OrgId:        orgId,
		UserId:       userId,
		ProjectId:    projectId,
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return
	}
	_ = s.publisherService.Publish(ctx, payloadJson)
}

func workItemToResponse(w *entity.WorkItem) *dto.WorkItemResponse {
	return &dto.WorkItemResponse{
		Id:           w.Id,
		Reference:    w.Reference,
		Title:        w.Title,
		Description:  w.Description,
		Status:       w.Status,
		Priority:     w.Priority,
		Estimate:     w.Estimate,
		InitiativeId: w.InitiativeId,
		SprintId:     w.SprintId,
		CreatedAt:    w.CreatedAt,
		UpdatedAt:    w.UpdatedAt,
	}
}

func workItemsToResponses(items []*entity.WorkItem) []*dto.WorkItemResponse {
	res := make([]*dto.WorkItemResponse, 0, len(items))
	for _, w := range items {
		res = append(res, workItemToResponse(w))
	}
	return res
}
