package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"planhub-be/internal/constant"
	"planhub-be/internal/dto"
	"planhub-be/internal/entity"
	"planhub-be/internal/repository/specification"
	"planhub-be/internal/repository/unitofwork"
	"planhub-be/pkg/timeline"

	"github.com/google/uuid"
)

type IMilestoneService interface {
	Create(ctx context.Context, orgId, projectId, userId uuid.UUID, req *dto.CreateMilestoneRequest) (*dto.MilestoneResponse, error)
	Update(ctx context.Context, orgId, userId uuid.UUID, req *dto.UpdateMilestoneRequest) (*dto.MilestoneResponse, error)
	FindByReference(ctx context.Context, orgId uuid.UUID, reference string) (*dto.MilestoneResponse, error)
	SearchByTitle(ctx context.Context, orgId, projectId uuid.UUID, title string) ([]*dto.MilestoneResponse, error)
	// Progress reports completion across the initiatives linked to the
	// milestone. HasLinkedWork is false when no initiative references it.
	Progress(ctx context.Context, orgId uuid.UUID, milestoneId uuid.UUID) (*dto.MilestoneProgressResponse, error)
	// ListByTimeline groups a project's milestones into quarter buckets
	// relative to now.
	ListByTimeline(ctx context.Context, orgId, projectId uuid.UUID, now time.Time) ([]*dto.TimelineBucketResponse, error)
}

type milestoneService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
}

func NewMilestoneService(uowFactory unitofwork.RepositoryFactory, publisherService IPublisherService) IMilestoneService {
	return &milestoneService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
	}
}

func (s *milestoneService) Create(ctx context.Context, orgId, projectId, userId uuid.UUID, req *dto.CreateMilestoneRequest) (*dto.MilestoneResponse, error) {
	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	seq, err := uow.SequenceRepository().Next(ctx, orgId, constant.RefPrefixMilestone)
	if err != nil {
		return nil, err
	}

	milestone := entity.Milestone{
		Id:             uuid.New(),
		OrganizationId: orgId,
		ProjectId:      projectId,
		SeqNumber:      seq,
		Reference:      fmt.Sprintf("%s-%d", constant.RefPrefixMilestone, seq),
		Title:          req.Title,
		Description:    req.Description,
		Status:         constant.StatusPlanned,
		DueDate:        dueDate,
		CreatedAt:      time.Now(),
	}

	if err := uow.MilestoneRepository().Create(ctx, &milestone); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publishIndex(ctx, milestone.Id, orgId, userId, projectId)

	return milestoneToResponse(&milestone), nil
}

func (s *milestoneService) Update(ctx context.Context, orgId, userId uuid.UUID, req *dto.UpdateMilestoneRequest) (*dto.MilestoneResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	milestone, err := uow.MilestoneRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.OwnedByOrg{OrgID: orgId},
	)
	if err != nil {
		return nil, err
	}
	if milestone == nil {
		return nil, nil
	}

	if req.Title != nil {
		milestone.Title = *req.Title
	}
	if req.Description != nil {
		milestone.Description = *req.Description
	}
	if req.Status != nil {
		milestone.Status = *req.Status
	}
	if req.DueDate != nil {
		dueDate, err := parseDate(*req.DueDate)
		if err != nil {
			return nil, err
		}
		milestone.DueDate = dueDate
	}

	now := time.Now()
	milestone.UpdatedAt = &now

	if err := uow.MilestoneRepository().Update(ctx, milestone); err != nil {
		return nil, err
	}

	s.publishIndex(ctx, milestone.Id, orgId, userId, milestone.ProjectId)

	return milestoneToResponse(milestone), nil
}

func (s *milestoneService) FindByReference(ctx context.Context, orgId uuid.UUID, reference string) (*dto.MilestoneResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	milestone, err := uow.MilestoneRepository().FindOne(ctx,
		specification.ByReference{Reference: reference},
		specification.OwnedByOrg{OrgID: orgId},
	)
	if err != nil {
		return nil, err
	}
	if milestone == nil {
		return nil, nil
	}
	return milestoneToResponse(milestone), nil
}

func (s *milestoneService) SearchByTitle(ctx context.Context, orgId, projectId uuid.UUID, title string) ([]*dto.MilestoneResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	milestones, err := uow.MilestoneRepository().FindAll(ctx,
		specification.OwnedByOrg{OrgID: orgId},
		specification.OwnedByProject{ProjectID: projectId},
		specification.TitleContains{Fragment: title},
		specification.OrderBy{Field: "due_date"},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.MilestoneResponse, 0, len(milestones))
	for _, m := range milestones {
		res = append(res, milestoneToResponse(m))
	}
	return res, nil
}

func (s *milestoneService) Progress(ctx context.Context, orgId uuid.UUID, milestoneId uuid.UUID) (*dto.MilestoneProgressResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	milestone, err := uow.MilestoneRepository().FindOne(ctx,
		specification.ByID{ID: milestoneId},
		specification.OwnedByOrg{OrgID: orgId},
	)
	if err != nil {
		return nil, err
	}
	if milestone == nil {
		return nil, nil
	}

	initiatives, err := uow.InitiativeRepository().FindAll(ctx,
		specification.OwnedByOrg{OrgID: orgId},
		specification.ByMilestoneID{MilestoneID: milestoneId},
	)
	if err != nil {
		return nil, err
	}

	res := &dto.MilestoneProgressResponse{
		Milestone:        *milestoneToResponse(milestone),
		TotalInitiatives: len(initiatives),
		HasLinkedWork:    len(initiatives) > 0,
	}

	if len(initiatives) == 0 {
		return res, nil
	}

	done := 0
	for _, i := range initiatives {
		if i.Status == constant.StatusCompleted || i.Status == constant.StatusClosed {
			done++
		}
	}
	res.DoneInitiatives = done
	res.ProgressPercent = int(math.Round(float64(done) / float64(len(initiatives)) * 100))

	return res, nil
}

func (s *milestoneService) ListByTimeline(ctx context.Context, orgId, projectId uuid.UUID, now time.Time) ([]*dto.TimelineBucketResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	milestones, err := uow.MilestoneRepository().FindAll(ctx,
		specification.OwnedByOrg{OrgID: orgId},
		specification.OwnedByProject{ProjectID: projectId},
		specification.OrderBy{Field: "due_date"},
	)
	if err != nil {
		return nil, err
	}

	buckets := map[string][]dto.MilestoneResponse{}
	for _, m := range milestones {
		bucket := timeline.Bucket(m.DueDate, now)
		buckets[bucket] = append(buckets[bucket], *milestoneToResponse(m))
	}

	// Fixed presentation order, empty buckets skipped.
	order := []string{timeline.BucketThisQuarter, timeline.BucketNextQuarter, timeline.BucketLater, timeline.BucketPast}
	res := make([]*dto.TimelineBucketResponse, 0, len(order))
	for _, bucket := range order {
		if len(buckets[bucket]) == 0 {
			continue
		}
		res = append(res, &dto.TimelineBucketResponse{
			Bucket:     bucket,
			Milestones: buckets[bucket],
		})
	}
	return res, nil
}

func (s *milestoneService) publishIndex(ctx context.Context, entityId uuid.UUID, orgId, userId, projectId uuid.UUID) {
	if s.publisherService == nil {
		return
	}
	payload := dto.PublishIndexEntityMessage{
		EntityId:     entityId,
		DocumentType: constant.DocumentTypeMilestone,
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

func milestoneToResponse(m *entity.Milestone) *dto.MilestoneResponse {
	return &dto.MilestoneResponse{
		Id:          m.Id,
		Reference:   m.Reference,
		Title:       m.Title,
		Description: m.Description,
		Status:      m.Status,
		DueDate:     m.DueDate,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
