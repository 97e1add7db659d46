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

type IOkrService interface {
	CreateObjective(ctx context.Context, orgId, projectId, userId uuid.UUID, req *dto.CreateObjectiveRequest) (*dto.ObjectiveResponse, error)
	UpdateObjective(ctx context.Context, orgId, userId uuid.UUID, req *dto.UpdateObjectiveRequest) (*dto.ObjectiveResponse, error)
	FindObjectiveByReference(ctx context.Context, orgId uuid.UUID, reference string) (*dto.ObjectiveResponse, error)
	ListObjectives(ctx context.Context, orgId, projectId uuid.UUID) ([]*dto.ObjectiveResponse, error)
	CreateKeyResult(ctx context.Context, orgId uuid.UUID, req *dto.CreateKeyResultRequest) (*dto.KeyResultResponse, error)
	UpdateKeyResultProgress(ctx context.Context, orgId uuid.UUID, req *dto.UpdateKeyResultProgressRequest) (*dto.KeyResultResponse, error)
	FindKeyResultByReference(ctx context.Context, orgId uuid.UUID, reference string) (*dto.KeyResultResponse, error)
}

type okrService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
}

func NewOkrService(uowFactory unitofwork.RepositoryFactory, publisherService IPublisherService) IOkrService {
	return &okrService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
	}
}

func (s *okrService) CreateObjective(ctx context.Context, orgId, projectId, userId uuid.UUID, req *dto.CreateObjectiveRequest) (*dto.ObjectiveResponse, error) {
	targetDate, err := parseOptionalDate(req.TargetDate)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	seq, err := uow.SequenceRepository().Next(ctx, orgId, constant.RefPrefixObjective)
	if err != nil {
		return nil, err
	}

	objective := entity.Objective{
		Id:             uuid.New(),
		OrganizationId: orgId,
		ProjectId:      projectId,
		SeqNumber:      seq,
		Reference:      fmt.Sprintf("%s-%d", constant.RefPrefixObjective, seq),
		Title:          req.Title,
		Description:    req.Description,
		Status:         constant.StatusPlanned,
		TargetDate:     targetDate,
		CreatedAt:      time.Now(),
	}

	if err := uow.ObjectiveRepository().Create(ctx, &objective); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publishIndex(ctx, objective.Id, orgId, userId, projectId)

	return objectiveToResponse(&objective, nil), nil
}

func (s *okrService) UpdateObjective(ctx context.Context, orgId, userId uuid.UUID, req *dto.UpdateObjectiveRequest) (*dto.ObjectiveResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	objective, err := uow.ObjectiveRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.OwnedByOrg{OrgID: orgId},
	)
	if err != nil {
		return nil, err
	}
	if objective == nil {
		return nil, nil
	}

	if req.Title != nil {
		objective.Title = *req.Title
	}
	if req.Description != nil {
		objective.Description = *req.Description
	}
	if req.Status != nil {
		objective.Status = *req.Status
	}
	if req.TargetDate != nil {
		targetDate, err := parseOptionalDate(req.TargetDate)
		if err != nil {
			return nil, err
		}
		objective.TargetDate = targetDate
	}

	now := time.Now()
	objective.UpdatedAt = &now

	if err := uow.ObjectiveRepository().Update(ctx, objective); err != nil {
		return nil, err
	}

	s.publishIndex(ctx, objective.Id, orgId, userId, objective.ProjectId)

	return objectiveToResponse(objective, nil), nil
}

func (s *okrService) FindObjectiveByReference(ctx context.Context, orgId uuid.UUID, reference string) (*dto.ObjectiveResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	objective, err := uow.ObjectiveRepository().FindOne(ctx,
		specification.ByReference{Reference: reference},
		specification.OwnedByOrg{OrgID: orgId},
	)
	if err != nil {
		return nil, err
	}
	if objective == nil {
		return nil, nil
	}

	keyResults, err := uow.KeyResultRepository().FindAll(ctx,
		specification.ByObjectiveID{ObjectiveID: objective.Id},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	return objectiveToResponse(objective, keyResults), nil
}

func (s *okrService) ListObjectives(ctx context.Context, orgId, projectId uuid.UUID) ([]*dto.ObjectiveResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	objectives, err := uow.ObjectiveRepository().FindAll(ctx,
		specification.OwnedByOrg{OrgID: orgId},
		specification.OwnedByProject{ProjectID: projectId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ObjectiveResponse, 0, len(objectives))
	for _, o := range objectives {
		keyResults, err := uow.KeyResultRepository().FindAll(ctx,
			specification.ByObjectiveID{ObjectiveID: o.Id},
			specification.OrderBy{Field: "created_at"},
		)
		if err != nil {
			return nil, err
		}
		res = append(res, objectiveToResponse(o, keyResults))
	}
	return res, nil
}

func (s *okrService) CreateKeyResult(ctx context.Context, orgId uuid.UUID, req *dto.CreateKeyResultRequest) (*dto.KeyResultResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// The objective must exist in the caller's org before a key result can
	// attach to it.
	objective, err := uow.ObjectiveRepository().FindOne(ctx,
		specification.ByID{ID: req.ObjectiveId},
		specification.OwnedByOrg{OrgID: orgId},
	)
	if err != nil {
		return nil, err
	}
	if objective == nil {
		return nil, nil
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	seq, err := uow.SequenceRepository().Next(ctx, orgId, constant.RefPrefixKeyResult)
	if err != nil {
		return nil, err
	}

	keyResult := entity.KeyResult{
		Id:          uuid.New(),
		ObjectiveId: objective.Id,
		SeqNumber:   seq,
		Reference:   fmt.Sprintf("%s-%d", constant.RefPrefixKeyResult, seq),
		Title:       req.Title,
		TargetValue: req.TargetValue,
		Unit:        req.Unit,
		Status:      constant.StatusPlanned,
		CreatedAt:   time.Now(),
	}

	if err := uow.KeyResultRepository().Create(ctx, &keyResult); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return keyResultToResponse(&keyResult), nil
}

func (s *okrService) UpdateKeyResultProgress(ctx context.Context, orgId uuid.UUID, req *dto.UpdateKeyResultProgressRequest) (*dto.KeyResultResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	keyResult, err := s.findOwnedKeyResult(ctx, uow, orgId, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if keyResult == nil {
		return nil, nil
	}

	now := time.Now()
	keyResult.CurrentValue = req.CurrentValue
	if keyResult.TargetValue > 0 && keyResult.CurrentValue >= keyResult.TargetValue {
		keyResult.Status = constant.StatusCompleted
	} else if keyResult.CurrentValue > 0 {
		keyResult.Status = constant.StatusInProgress
	}
	keyResult.UpdatedAt = &now

	if err := uow.KeyResultRepository().Update(ctx, keyResult); err != nil {
		return nil, err
	}

	return keyResultToResponse(keyResult), nil
}

func (s *okrService) FindKeyResultByReference(ctx context.Context, orgId uuid.UUID, reference string) (*dto.KeyResultResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	keyResult, err := s.findOwnedKeyResult(ctx, uow, orgId, specification.ByReference{Reference: reference})
	if err != nil {
		return nil, err
	}
	if keyResult == nil {
		return nil, nil
	}
	return keyResultToResponse(keyResult), nil
}

// findOwnedKeyResult loads a key result and verifies org ownership through
// its parent objective; key results carry no org column of their own.
func (s *okrService) findOwnedKeyResult(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	orgId uuid.UUID,
	spec specification.Specification,
) (*entity.KeyResult, error) {
	keyResult, err := uow.KeyResultRepository().FindOne(ctx, spec)
	if err != nil {
		return nil, err
	}
	if keyResult == nil {
		return nil, nil
	}

	objective, err := uow.ObjectiveRepository().FindOne(ctx,
		specification.ByID{ID: keyResult.ObjectiveId},
		specification.OwnedByOrg{OrgID: orgId},
	)
	if err != nil {
		return nil, err
	}
	if objective == nil {
		return nil, nil
	}
	return keyResult, nil
}

func (s *okrService) publishIndex(ctx context.Context, entityId uuid.UUID, orgId, userId, projectId uuid.UUID) {
	if s.publisherService == nil {
		return
	}
	payload := dto.PublishIndexEntityMessage{
		EntityId:     entityId,
		DocumentType: constant.DocumentTypeObjective,
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

func objectiveToResponse(o *entity.Objective, keyResults []*entity.KeyResult) *dto.ObjectiveResponse {
	res := &dto.ObjectiveResponse{
		Id:          o.Id,
		Reference:   o.Reference,
		Title:       o.Title,
		Description: o.Description,
		Status:      o.Status,
		TargetDate:  o.TargetDate,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
	for _, k := range keyResults {
		res.KeyResults = append(res.KeyResults, *keyResultToResponse(k))
	}
	return res
}

func keyResultToResponse(k *entity.KeyResult) *dto.KeyResultResponse {
	return &dto.KeyResultResponse{
		Id:           k.Id,
		Reference:    k.Reference,
		Title:        k.Title,
		TargetValue:  k.TargetValue,
		CurrentValue: k.CurrentValue,
		Unit:         k.Unit,
		Status:       k.Status,
		CreatedAt:    k.CreatedAt,
		UpdatedAt:    k.UpdatedAt,
	}
}
