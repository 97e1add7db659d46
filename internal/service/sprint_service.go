package service

import (
	"context"
	"fmt"
	"time"

	"planhub-be/internal/constant"
	"planhub-be/internal/dto"
	"planhub-be/internal/entity"
	"planhub-be/internal/repository/specification"
	"planhub-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type ISprintService interface {
	Create(ctx context.Context, orgId, projectId uuid.UUID, req *dto.CreateSprintRequest) (*dto.SprintResponse, error)
	// Activate makes the sprint the project's active one, deactivating any
	// other sprint in the same transaction.
	Activate(ctx context.Context, orgId uuid.UUID, sprintId uuid.UUID) (*dto.SprintResponse, error)
	GetActive(ctx context.Context, orgId, projectId uuid.UUID) (*dto.SprintResponse, error)
	FindByReference(ctx context.Context, orgId uuid.UUID, reference string) (*dto.SprintResponse, error)
	List(ctx context.Context, orgId, projectId uuid.UUID) ([]*dto.SprintResponse, error)
}

type sprintService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewSprintService(uowFactory unitofwork.RepositoryFactory) ISprintService {
	return &sprintService{
		uowFactory: uowFactory,
	}
}

func (s *sprintService) Create(ctx context.Context, orgId, projectId uuid.UUID, req *dto.CreateSprintRequest) (*dto.SprintResponse, error) {
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return nil, err
	}
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("sprint end date %s is before start date %s", req.EndDate, req.StartDate)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	seq, err := uow.SequenceRepository().Next(ctx, orgId, constant.RefPrefixSprint)
	if err != nil {
		return nil, err
	}

	sprint := entity.Sprint{
		Id:             uuid.New(),
		OrganizationId: orgId,
		ProjectId:      projectId,
		SeqNumber:      seq,
		Reference:      fmt.Sprintf("%s-%d", constant.RefPrefixSprint, seq),
		Name:           req.Name,
		Goal:           req.Goal,
		StartDate:      startDate,
		EndDate:        endDate,
		CreatedAt:      time.Now(),
	}

	if err := uow.SprintRepository().Create(ctx, &sprint); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return sprintToResponse(&sprint), nil
}

func (s *sprintService) Activate(ctx context.Context, orgId uuid.UUID, sprintId uuid.UUID) (*dto.SprintResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sprint, err := uow.SprintRepository().FindOne(ctx,
		specification.ByID{ID: sprintId},
		specification.OwnedByOrg{OrgID: orgId},
	)
	if err != nil {
		return nil, err
	}
	if sprint == nil {
		return nil, nil
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	// Single active sprint per project: clear the flag everywhere first.
	if err := uow.SprintRepository().DeactivateAllByProjectId(ctx, sprint.ProjectId); err != nil {
		return nil, err
	}

	now := time.Now()
	sprint.IsActive = true
	sprint.UpdatedAt = &now
	if err := uow.SprintRepository().Update(ctx, sprint); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return sprintToResponse(sprint), nil
}

func (s *sprintService) GetActive(ctx context.Context, orgId, projectId uuid.UUID) (*dto.SprintResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sprint, err := uow.SprintRepository().FindOne(ctx,
		specification.OwnedByOrg{OrgID: orgId},
		specification.OwnedByProject{ProjectID: projectId},
		specification.ActiveOnly{},
	)
	if err != nil {
		return nil, err
	}
	if sprint == nil {
		return nil, nil
	}
	return sprintToResponse(sprint), nil
}

func (s *sprintService) FindByReference(ctx context.Context, orgId uuid.UUID, reference string) (*dto.SprintResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sprint, err := uow.SprintRepository().FindOne(ctx,
		specification.ByReference{Reference: reference},
		specification.OwnedByOrg{OrgID: orgId},
	)
	if err != nil {
		return nil, err
	}
	if sprint == nil {
		return nil, nil
	}
	return sprintToResponse(sprint), nil
}

func (s *sprintService) List(ctx context.Context, orgId, projectId uuid.UUID) ([]*dto.SprintResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sprints, err := uow.SprintRepository().FindAll(ctx,
		specification.OwnedByOrg{OrgID: orgId},
		specification.OwnedByProject{ProjectID: projectId},
		specification.OrderBy{Field: "start_date", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.SprintResponse, 0, len(sprints))
	for _, sp := range sprints {
		res = append(res, sprintToResponse(sp))
	}
	return res, nil
}

func sprintToResponse(sp *entity.Sprint) *dto.SprintResponse {
	return &dto.SprintResponse{
		Id:        sp.Id,
		Reference: sp.Reference,
		Name:      sp.Name,
		Goal:      sp.Goal,
		StartDate: sp.StartDate,
		EndDate:   sp.EndDate,
		IsActive:  sp.IsActive,
		CreatedAt: sp.CreatedAt,
		UpdatedAt: sp.UpdatedAt,
	}
}
