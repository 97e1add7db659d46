package tools

import (
	"context"
	"strings"
	"testing"

	"planhub-be/internal/dto"

	"github.com/google/uuid"
)

type fakeWorkItemService struct {
	createFn          func(ctx context.Context, orgId, projectId, userId uuid.UUID, req *dto.CreateWorkItemRequest) (*dto.WorkItemResponse, error)
	findByReferenceFn func(ctx context.Context, orgId uuid.UUID, reference string) (*dto.WorkItemResponse, error)
}

func (f *fakeWorkItemService) Create(ctx context.Context, orgId, projectId, userId uuid.UUID, req *dto.CreateWorkItemRequest) (*dto.WorkItemResponse, error) {
	return f.createFn(ctx, orgId, projectId, userId, req)
}

func (f *fakeWorkItemService) Update(ctx context.Context, orgId, userId uuid.UUID, req *dto.UpdateWorkItemRequest) (*dto.WorkItemResponse, error) {
	return nil, nil
}

func (f *fakeWorkItemService) Move(ctx context.Context, orgId uuid.UUID, req *dto.MoveWorkItemRequest) (*dto.WorkItemResponse, error) {
	return nil, nil
}

func (f *fakeWorkItemService) FindByReference(ctx context.Context, orgId uuid.UUID, reference string) (*dto.WorkItemResponse, error) {
	if f.findByReferenceFn == nil {
		return nil, nil
	}
	return f.findByReferenceFn(ctx, orgId, reference)
}

func (f *fakeWorkItemService) ListBySprint(ctx context.Context, orgId, sprintId uuid.UUID) ([]*dto.WorkItemResponse, error) {
	return nil, nil
}

func (f *fakeWorkItemService) ListBacklog(ctx context.Context, orgId, projectId uuid.UUID) ([]*dto.WorkItemResponse, error) {
	return nil, nil
}

type fakeSprintService struct {
	findByReferenceFn func(ctx context.Context, orgId uuid.UUID, reference string) (*dto.SprintResponse, error)
}

func (f *fakeSprintService) Create(ctx context.Context, orgId, projectId uuid.UUID, req *dto.CreateSprintRequest) (*dto.SprintResponse, error) {
	return nil, nil
}

func (f *fakeSprintService) Activate(ctx context.Context, orgId uuid.UUID, sprintId uuid.UUID) (*dto.SprintResponse, error) {
	return nil, nil
}

func (f *fakeSprintService) GetActive(ctx context.Context, orgId, projectId uuid.UUID) (*dto.SprintResponse, error) {
	return nil, nil
}

func (f *fakeSprintService) FindByReference(ctx context.Context, orgId uuid.UUID, reference string) (*dto.SprintResponse, error) {
	if f.findByReferenceFn == nil {
		return nil, nil
	}
	return f.findByReferenceFn(ctx, orgId, reference)
}

func (f *fakeSprintService) List(ctx context.Context, orgId, projectId uuid.UUID) ([]*dto.SprintResponse, error) {
	return nil, nil
}

func boundWorkItemTools(items *fakeWorkItemService, sprints *fakeSprintService, tc ToolContext) *BoundSet {
	return NewRegistry(NewWorkItemTools(items, sprints)...).Bound(tc)
}

func TestConfirmCreateWorkItemEchoesResolvedSprintReference(t *testing.T) {
	sprintId := uuid.New()
	sprints := &fakeSprintService{
		// Lookup is forgiving about casing and whitespace; the response
		// carries the canonical reference.
		findByReferenceFn: func(ctx context.Context, orgId uuid.UUID, reference string) (*dto.SprintResponse, error) {
			return &dto.SprintResponse{Id: sprintId, Reference: "S-1", Name: "Sprint one"}, nil
		},
	}
	items := &fakeWorkItemService{
		createFn: func(ctx context.Context, orgId, projectId, userId uuid.UUID, req *dto.CreateWorkItemRequest) (*dto.WorkItemResponse, error) {
			return &dto.WorkItemResponse{
				Id:        uuid.New(),
				Reference: "W-3",
				Title:     req.Title,
				SprintId:  req.SprintId,
			}, nil
		},
	}
	bound := boundWorkItemTools(items, sprints, fullContext())

	got := bound.Execute(context.Background(), "confirm-create-work-item", map[string]any{
		"title":            "Fix login crash",
		"sprint_reference": "  s-1 ",
	})

	if !strings.Contains(got, "sprint S-1") {
		t.Errorf("Execute() = %q, want the canonical sprint reference S-1", got)
	}
	if strings.Contains(got, "s-1") {
		t.Errorf("Execute() = %q, raw sprint_reference argument must not leak into the reply", got)
	}
}

func TestConfirmCreateWorkItemBacklogWhenNoSprint(t *testing.T) {
	items := &fakeWorkItemService{
		createFn: func(ctx context.Context, orgId, projectId, userId uuid.UUID, req *dto.CreateWorkItemRequest) (*dto.WorkItemResponse, error) {
			if req.SprintId != nil {
				t.Errorf("Create() got SprintId %v, want nil without a sprint_reference", req.SprintId)
			}
			return &dto.WorkItemResponse{Id: uuid.New(), Reference: "W-4", Title: req.Title}, nil
		},
	}
	bound := boundWorkItemTools(items, &fakeSprintService{}, fullContext())

	got := bound.Execute(context.Background(), "confirm-create-work-item", map[string]any{
		"title": "Write release notes",
	})

	if !strings.Contains(got, "the backlog") {
		t.Errorf("Execute() = %q, want the backlog placement in the reply", got)
	}
}
