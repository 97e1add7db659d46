package tools

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"planhub-be/internal/constant"
	"planhub-be/internal/dto"

	"github.com/google/uuid"
)

type fakeMilestoneService struct {
	createFn          func(ctx context.Context, orgId, projectId, userId uuid.UUID, req *dto.CreateMilestoneRequest) (*dto.MilestoneResponse, error)
	updateFn          func(ctx context.Context, orgId, userId uuid.UUID, req *dto.UpdateMilestoneRequest) (*dto.MilestoneResponse, error)
	findByReferenceFn func(ctx context.Context, orgId uuid.UUID, reference string) (*dto.MilestoneResponse, error)
	progressFn        func(ctx context.Context, orgId uuid.UUID, milestoneId uuid.UUID) (*dto.MilestoneProgressResponse, error)
	listByTimelineFn  func(ctx context.Context, orgId, projectId uuid.UUID, now time.Time) ([]*dto.TimelineBucketResponse, error)
}

func (f *fakeMilestoneService) Create(ctx context.Context, orgId, projectId, userId uuid.UUID, req *dto.CreateMilestoneRequest) (*dto.MilestoneResponse, error) {
	return f.createFn(ctx, orgId, projectId, userId, req)
}

func (f *fakeMilestoneService) Update(ctx context.Context, orgId, userId uuid.UUID, req *dto.UpdateMilestoneRequest) (*dto.MilestoneResponse, error) {
	return f.updateFn(ctx, orgId, userId, req)
}

func (f *fakeMilestoneService) FindByReference(ctx context.Context, orgId uuid.UUID, reference string) (*dto.MilestoneResponse, error) {
	if f.findByReferenceFn == nil {
		return nil, nil
	}
	return f.findByReferenceFn(ctx, orgId, reference)
}

func (f *fakeMilestoneService) SearchByTitle(ctx context.Context, orgId, projectId uuid.UUID, title string) ([]*dto.MilestoneResponse, error) {
	return nil, nil
}

func (f *fakeMilestoneService) Progress(ctx context.Context, orgId uuid.UUID, milestoneId uuid.UUID) (*dto.MilestoneProgressResponse, error) {
	return f.progressFn(ctx, orgId, milestoneId)
}

func (f *fakeMilestoneService) ListByTimeline(ctx context.Context, orgId, projectId uuid.UUID, now time.Time) ([]*dto.TimelineBucketResponse, error) {
	return f.listByTimelineFn(ctx, orgId, projectId, now)
}

func boundMilestoneTools(svc *fakeMilestoneService, tc ToolContext) *BoundSet {
	return NewRegistry(NewMilestoneTools(svc)...).Bound(tc)
}

func sampleMilestone(reference string) *dto.MilestoneResponse {
	return &dto.MilestoneResponse{
		Id:        uuid.New(),
		Reference: reference,
		Title:     "Public beta",
		Status:    constant.StatusInProgress,
		DueDate:   time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestMilestoneProgressNoLinkedInitiatives(t *testing.T) {
	milestone := sampleMilestone("M-1")
	svc := &fakeMilestoneService{
		findByReferenceFn: func(ctx context.Context, orgId uuid.UUID, reference string) (*dto.MilestoneResponse, error) {
			return milestone, nil
		},
		progressFn: func(ctx context.Context, orgId uuid.UUID, milestoneId uuid.UUID) (*dto.MilestoneProgressResponse, error) {
			return &dto.MilestoneProgressResponse{
				Milestone:     *milestone,
				HasLinkedWork: false,
			}, nil
		},
	}
	bound := boundMilestoneTools(svc, fullContext())

	got := bound.Execute(context.Background(), "milestone-progress", map[string]any{"reference": "M-1"})
	if !strings.Contains(got, "no initiatives linked") {
		t.Errorf("Execute() = %q, want the no-linked-work explanation, not 0%%", got)
	}
	if strings.Contains(got, "%") {
		t.Errorf("Execute() = %q, must not report a percentage without linked work", got)
	}
}

func TestMilestoneProgressReportsPercentage(t *testing.T) {
	milestone := sampleMilestone("M-1")
	svc := &fakeMilestoneService{
		findByReferenceFn: func(ctx context.Context, orgId uuid.UUID, reference string) (*dto.MilestoneResponse, error) {
			return milestone, nil
		},
		progressFn: func(ctx context.Context, orgId uuid.UUID, milestoneId uuid.UUID) (*dto.MilestoneProgressResponse, error) {
			return &dto.MilestoneProgressResponse{
				Milestone:        *milestone,
				TotalInitiatives: 3,
				DoneInitiatives:  2,
				ProgressPercent:  67,
				HasLinkedWork:    true,
			}, nil
		},
	}
	bound := boundMilestoneTools(svc, fullContext())

	got := bound.Execute(context.Background(), "milestone-progress", map[string]any{"reference": "M-1"})
	if !strings.Contains(got, "67% complete") || !strings.Contains(got, "2 of 3") {
		t.Errorf("Execute() = %q, want the 67%% and 2-of-3 summary", got)
	}
}

func TestMilestoneProgressUnknownReference(t *testing.T) {
	svc := &fakeMilestoneService{}
	bound := boundMilestoneTools(svc, fullContext())

	got := bound.Execute(context.Background(), "milestone-progress", map[string]any{"reference": "M-404"})
	if got != constant.MilestoneNotFoundMessage {
		t.Errorf("Execute() = %q, want %q", got, constant.MilestoneNotFoundMessage)
	}
}

func TestConfirmCreateMilestoneRejectsBadDate(t *testing.T) {
	svc := &fakeMilestoneService{
		createFn: func(ctx context.Context, orgId, projectId, userId uuid.UUID, req *dto.CreateMilestoneRequest) (*dto.MilestoneResponse, error) {
			return nil, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", req.DueDate)
		},
	}
	bound := boundMilestoneTools(svc, fullContext())

	got := bound.Execute(context.Background(), "confirm-create-milestone", map[string]any{
		"title":    "Public beta",
		"due_date": "2020-13-45",
	})

	if !strings.Contains(got, "invalid date") || !strings.Contains(got, "YYYY-MM-DD") {
		t.Errorf("Execute() = %q, want the date validation relayed to the model", got)
	}
}

func TestMilestoneTimelineRendersBuckets(t *testing.T) {
	svc := &fakeMilestoneService{
		listByTimelineFn: func(ctx context.Context, orgId, projectId uuid.UUID, now time.Time) ([]*dto.TimelineBucketResponse, error) {
			return []*dto.TimelineBucketResponse{
				{Bucket: "this-quarter", Milestones: []dto.MilestoneResponse{*sampleMilestone("M-1")}},
				{Bucket: "past", Milestones: []dto.MilestoneResponse{*sampleMilestone("M-2")}},
			}, nil
		},
	}
	bound := boundMilestoneTools(svc, fullContext())

	got := bound.Execute(context.Background(), "milestone-timeline", nil)
	if !strings.Contains(got, "this-quarter:") || !strings.Contains(got, "past:") {
		t.Errorf("Execute() = %q, want both bucket headings", got)
	}
	thisIdx := strings.Index(got, "this-quarter:")
	pastIdx := strings.Index(got, "past:")
	if thisIdx > pastIdx {
		t.Errorf("Execute() = %q, want this-quarter before past", got)
	}
}
