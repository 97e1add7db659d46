package tools

import (
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"planhub-be/internal/constant"
	"planhub-be/internal/dto"

	"github.com/google/uuid"
)

type fakeInitiativeService struct {
	createFn          func(ctx context.Context, orgId, projectId, userId uuid.UUID, req *dto.CreateInitiativeRequest) (*dto.InitiativeResponse, error)
	updateFn          func(ctx context.Context, orgId, userId uuid.UUID, req *dto.UpdateInitiativeRequest) (*dto.InitiativeResponse, error)
	findByReferenceFn func(ctx context.Context, orgId uuid.UUID, reference string) (*dto.InitiativeResponse, error)
	searchByTitleFn   func(ctx context.Context, orgId, projectId uuid.UUID, title string) ([]*dto.InitiativeResponse, error)
	listFn            func(ctx context.Context, orgId, projectId uuid.UUID, status string) ([]*dto.InitiativeResponse, error)

	createCalls int
	updateCalls int
	findCalls   int
}

func (f *fakeInitiativeService) Create(ctx context.Context, orgId, projectId, userId uuid.UUID, req *dto.CreateInitiativeRequest) (*dto.InitiativeResponse, error) {
	f.createCalls++
	return f.createFn(ctx, orgId, projectId, userId, req)
}

func (f *fakeInitiativeService) Update(ctx context.Context, orgId, userId uuid.UUID, req *dto.UpdateInitiativeRequest) (*dto.InitiativeResponse, error) {
	f.updateCalls++
	return f.updateFn(ctx, orgId, userId, req)
}

func (f *fakeInitiativeService) FindByReference(ctx context.Context, orgId uuid.UUID, reference string) (*dto.InitiativeResponse, error) {
	f.findCalls++
	if f.findByReferenceFn == nil {
		return nil, nil
	}
	return f.findByReferenceFn(ctx, orgId, reference)
}

func (f *fakeInitiativeService) SearchByTitle(ctx context.Context, orgId, projectId uuid.UUID, title string) ([]*dto.InitiativeResponse, error) {
	return f.searchByTitleFn(ctx, orgId, projectId, title)
}

func (f *fakeInitiativeService) List(ctx context.Context, orgId, projectId uuid.UUID, status string) ([]*dto.InitiativeResponse, error) {
	return f.listFn(ctx, orgId, projectId, status)
}

func (f *fakeInitiativeService) ListByMilestone(ctx context.Context, orgId, milestoneId uuid.UUID) ([]*dto.InitiativeResponse, error) {
	return nil, nil
}

func fullContext() ToolContext {
	return ToolContext{OrgID: uuid.New(), ProjectID: uuid.New(), UserID: uuid.New()}
}

func boundInitiativeTools(svc *fakeInitiativeService, tc ToolContext) *BoundSet {
	return NewRegistry(NewInitiativeTools(svc)...).Bound(tc)
}

func TestGetInitiativeNotFound(t *testing.T) {
	svc := &fakeInitiativeService{}
	bound := boundInitiativeTools(svc, fullContext())

	got := bound.Execute(context.Background(), "get-initiative", map[string]any{"reference": "I-42"})
	if got != constant.InitiativeNotFoundMessage {
		t.Errorf("Execute() = %q, want %q", got, constant.InitiativeNotFoundMessage)
	}
}

func TestGetInitiativeIsReadOnly(t *testing.T) {
	svc := &fakeInitiativeService{
		findByReferenceFn: func(ctx context.Context, orgId uuid.UUID, reference string) (*dto.InitiativeResponse, error) {
			return &dto.InitiativeResponse{
				Id:        uuid.New(),
				Reference: reference,
				Title:     "Onboarding revamp",
				Status:    constant.StatusInProgress,
				Priority:  constant.PriorityHigh,
			}, nil
		},
	}
	bound := boundInitiativeTools(svc, fullContext())
	args := map[string]any{"reference": "I-1"}

	first := bound.Execute(context.Background(), "get-initiative", args)
	second := bound.Execute(context.Background(), "get-initiative", args)

	if first != second {
		t.Errorf("repeated reads differ:\n%q\n%q", first, second)
	}
	if svc.createCalls != 0 || svc.updateCalls != 0 {
		t.Errorf("read tool wrote: creates=%d updates=%d", svc.createCalls, svc.updateCalls)
	}
}

func TestConfirmCreateInitiative(t *testing.T) {
	svc := &fakeInitiativeService{
		createFn: func(ctx context.Context, orgId, projectId, userId uuid.UUID, req *dto.CreateInitiativeRequest) (*dto.InitiativeResponse, error) {
			return &dto.InitiativeResponse{
				Id:        uuid.New(),
				Reference: "I-7",
				Title:     req.Title,
				Status:    constant.StatusPlanned,
				Priority:  constant.PriorityMedium,
				CreatedAt: time.Now(),
			}, nil
		},
	}
	bound := boundInitiativeTools(svc, fullContext())

	got := bound.Execute(context.Background(), "confirm-create-initiative", map[string]any{
		"title": "Onboarding revamp",
	})

	if matched := regexp.MustCompile(`I-\d+`).MatchString(got); !matched {
		t.Errorf("Execute() = %q, want it to carry the new reference", got)
	}
	if !strings.Contains(got, "Onboarding revamp") {
		t.Errorf("Execute() = %q, want it to echo the title", got)
	}
	if svc.createCalls != 1 {
		t.Errorf("createCalls = %d, want 1", svc.createCalls)
	}
}

func TestConfirmCreateInitiativeInvalidPriority(t *testing.T) {
	svc := &fakeInitiativeService{}
	bound := boundInitiativeTools(svc, fullContext())

	got := bound.Execute(context.Background(), "confirm-create-initiative", map[string]any{
		"title":    "Something",
		"priority": "urgent",
	})

	if !strings.Contains(got, `Invalid priority "urgent"`) {
		t.Errorf("Execute() = %q, want an invalid-priority message", got)
	}
	if svc.createCalls != 0 {
		t.Errorf("createCalls = %d, want 0: validation must run before the write", svc.createCalls)
	}
}

func TestConfirmCreateInitiativeRequiresProject(t *testing.T) {
	svc := &fakeInitiativeService{}
	bound := boundInitiativeTools(svc, ToolContext{OrgID: uuid.New(), UserID: uuid.New()})

	got := bound.Execute(context.Background(), "confirm-create-initiative", map[string]any{"title": "x"})
	if !strings.Contains(got, "not available") {
		t.Errorf("Execute() = %q, want unavailable without a project scope", got)
	}
}

func TestListInitiativesInvalidStatus(t *testing.T) {
	svc := &fakeInitiativeService{}
	bound := boundInitiativeTools(svc, fullContext())

	got := bound.Execute(context.Background(), "list-initiatives", map[string]any{"status": "doing"})
	if !strings.Contains(got, `Invalid status "doing"`) {
		t.Errorf("Execute() = %q, want an invalid-status message", got)
	}
}

func TestConfirmUpdateInitiativeRoundTrip(t *testing.T) {
	existingId := uuid.New()
	svc := &fakeInitiativeService{
		findByReferenceFn: func(ctx context.Context, orgId uuid.UUID, reference string) (*dto.InitiativeResponse, error) {
			return &dto.InitiativeResponse{
				Id:        existingId,
				Reference: reference,
				Title:     "Onboarding revamp",
				Status:    constant.StatusPlanned,
				Priority:  constant.PriorityMedium,
			}, nil
		},
		updateFn: func(ctx context.Context, orgId, userId uuid.UUID, req *dto.UpdateInitiativeRequest) (*dto.InitiativeResponse, error) {
			if req.Id != existingId {
				t.Errorf("update req.Id = %s, want the looked-up id %s", req.Id, existingId)
			}
			if req.Status == nil || *req.Status != constant.StatusCompleted {
				t.Errorf("update req.Status = %v, want completed", req.Status)
			}
			if req.Title != nil {
				t.Errorf("update req.Title = %v, want nil: absent fields stay untouched", req.Title)
			}
			return &dto.InitiativeResponse{
				Id:        existingId,
				Reference: "I-1",
				Title:     "Onboarding revamp",
				Status:    constant.StatusCompleted,
				Priority:  constant.PriorityMedium,
			}, nil
		},
	}
	bound := boundInitiativeTools(svc, fullContext())

	got := bound.Execute(context.Background(), "confirm-update-initiative", map[string]any{
		"reference": "I-1",
		"status":    constant.StatusCompleted,
	})

	if !strings.Contains(got, "Updated initiative I-1") || !strings.Contains(got, constant.StatusCompleted) {
		t.Errorf("Execute() = %q, want the updated status echoed", got)
	}
	if svc.updateCalls != 1 {
		t.Errorf("updateCalls = %d, want 1", svc.updateCalls)
	}
}

func TestConfirmUpdateInitiativeUnknownReference(t *testing.T) {
	svc := &fakeInitiativeService{}
	bound := boundInitiativeTools(svc, fullContext())

	got := bound.Execute(context.Background(), "confirm-update-initiative", map[string]any{
		"reference": "I-9999",
		"status":    constant.StatusCompleted,
	})

	if got != constant.InitiativeNotFoundMessage {
		t.Errorf("Execute() = %q, want %q", got, constant.InitiativeNotFoundMessage)
	}
	if svc.updateCalls != 0 {
		t.Errorf("updateCalls = %d, want 0", svc.updateCalls)
	}
}
