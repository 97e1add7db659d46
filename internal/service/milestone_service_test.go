package service

import (
	"context"
	"testing"
	"time"

	"planhub-be/internal/constant"
	"planhub-be/internal/entity"
	"planhub-be/internal/repository/contract"
	"planhub-be/internal/repository/specification"
	"planhub-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type stubMilestoneRepo struct {
	contract.MilestoneRepository
	milestone  *entity.Milestone
	milestones []*entity.Milestone
	findSpecs  []specification.Specification
}

func (s *stubMilestoneRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Milestone, error) {
	return s.milestone, nil
}

func (s *stubMilestoneRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Milestone, error) {
	s.findSpecs = specs
	return s.milestones, nil
}

type stubInitiativeRepo struct {
	contract.InitiativeRepository
	initiatives []*entity.Initiative
	findSpecs   []specification.Specification
}

func (s *stubInitiativeRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Initiative, error) {
	s.findSpecs = specs
	return s.initiatives, nil
}

type stubUnitOfWork struct {
	unitofwork.UnitOfWork
	milestones  *stubMilestoneRepo
	initiatives *stubInitiativeRepo
}

func (s *stubUnitOfWork) MilestoneRepository() contract.MilestoneRepository   { return s.milestones }
func (s *stubUnitOfWork) InitiativeRepository() contract.InitiativeRepository { return s.initiatives }

type stubFactory struct {
	uow *stubUnitOfWork
}

func (s *stubFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return s.uow }

func initiativeWithStatus(status string) *entity.Initiative {
	return &entity.Initiative{
		Id:     uuid.New(),
		Status: status,
	}
}

func milestoneProgressService(milestone *entity.Milestone, initiatives []*entity.Initiative) IMilestoneService {
	factory := &stubFactory{uow: &stubUnitOfWork{
		milestones:  &stubMilestoneRepo{milestone: milestone},
		initiatives: &stubInitiativeRepo{initiatives: initiatives},
	}}
	return NewMilestoneService(factory, nil)
}

func TestMilestoneProgress(t *testing.T) {
	milestone := &entity.Milestone{
		Id:        uuid.New(),
		Reference: "M-1",
		Title:     "Public beta",
		Status:    constant.StatusInProgress,
		DueDate:   time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name        string
		initiatives []*entity.Initiative
		wantPercent int
		wantDone    int
		wantLinked  bool
	}{
		{
			name:       "no linked initiatives",
			wantLinked: false,
		},
		{
			name: "two of three done",
			initiatives: []*entity.Initiative{
				initiativeWithStatus(constant.StatusCompleted),
				initiativeWithStatus(constant.StatusClosed),
				initiativeWithStatus(constant.StatusInProgress),
			},
			wantPercent: 67,
			wantDone:    2,
			wantLinked:  true,
		},
		{
			name: "one of three rounds to 33",
			initiatives: []*entity.Initiative{
				initiativeWithStatus(constant.StatusCompleted),
				initiativeWithStatus(constant.StatusPlanned),
				initiativeWithStatus(constant.StatusReadyToStart),
			},
			wantPercent: 33,
			wantDone:    1,
			wantLinked:  true,
		},
		{
			name: "all done",
			initiatives: []*entity.Initiative{
				initiativeWithStatus(constant.StatusCompleted),
				initiativeWithStatus(constant.StatusClosed),
			},
			wantPercent: 100,
			wantDone:    2,
			wantLinked:  true,
		},
		{
			name: "none done",
			initiatives: []*entity.Initiative{
				initiativeWithStatus(constant.StatusPlanned),
			},
			wantPercent: 0,
			wantDone:    0,
			wantLinked:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := milestoneProgressService(milestone, tt.initiatives)

			res, err := svc.Progress(context.Background(), uuid.New(), milestone.Id)
			if err != nil {
				t.Fatalf("Progress() error = %v", err)
			}
			if res.HasLinkedWork != tt.wantLinked {
				t.Errorf("HasLinkedWork = %v, want %v", res.HasLinkedWork, tt.wantLinked)
			}
			if res.TotalInitiatives != len(tt.initiatives) {
				t.Errorf("TotalInitiatives = %d, want %d", res.TotalInitiatives, len(tt.initiatives))
			}
			if res.DoneInitiatives != tt.wantDone {
				t.Errorf("DoneInitiatives = %d, want %d", res.DoneInitiatives, tt.wantDone)
			}
			if res.ProgressPercent != tt.wantPercent {
				t.Errorf("ProgressPercent = %d, want %d", res.ProgressPercent, tt.wantPercent)
			}
		})
	}
}

func TestMilestoneProgressUnknownMilestone(t *testing.T) {
	svc := milestoneProgressService(nil, nil)

	res, err := svc.Progress(context.Background(), uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("Progress() error = %v", err)
	}
	if res != nil {
		t.Errorf("Progress() = %+v, want nil for an unknown milestone", res)
	}
}

func TestListByTimelineGroupsAndOrders(t *testing.T) {
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	mk := func(ref string, due time.Time) *entity.Milestone {
		return &entity.Milestone{Id: uuid.New(), Reference: ref, Title: ref, Status: constant.StatusPlanned, DueDate: due}
	}

	factory := &stubFactory{uow: &stubUnitOfWork{
		milestones: &stubMilestoneRepo{milestones: []*entity.Milestone{
			mk("M-1", time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)),  // this quarter
			mk("M-2", time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)),  // next quarter
			mk("M-3", time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC)),   // later
			mk("M-4", time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC)),  // earlier this quarter: past
		}},
		initiatives: &stubInitiativeRepo{},
	}}
	svc := NewMilestoneService(factory, nil)

	buckets, err := svc.ListByTimeline(context.Background(), uuid.New(), uuid.New(), now)
	if err != nil {
		t.Fatalf("ListByTimeline() error = %v", err)
	}

	wantOrder := []string{"this-quarter", "next-quarter", "later", "past"}
	if len(buckets) != len(wantOrder) {
		t.Fatalf("bucket count = %d, want %d", len(buckets), len(wantOrder))
	}
	for i, want := range wantOrder {
		if buckets[i].Bucket != want {
			t.Errorf("buckets[%d] = %q, want %q", i, buckets[i].Bucket, want)
		}
		if len(buckets[i].Milestones) != 1 {
			t.Errorf("buckets[%d] has %d milestones, want 1", i, len(buckets[i].Milestones))
		}
	}
	if buckets[3].Milestones[0].Reference != "M-4" {
		t.Errorf("past bucket holds %q, want M-4: a due date before today is past even inside the current quarter", buckets[3].Milestones[0].Reference)
	}
}

func titleContainsFragment(t *testing.T, specs []specification.Specification) string {
	t.Helper()
	for _, s := range specs {
		if tc, ok := s.(specification.TitleContains); ok {
			return tc.Fragment
		}
	}
	t.Fatal("FindAll was not given a TitleContains specification")
	return ""
}

func TestMilestoneSearchByTitleAppliesSubstringFilter(t *testing.T) {
	repo := &stubMilestoneRepo{}
	factory := &stubFactory{uow: &stubUnitOfWork{milestones: repo, initiatives: &stubInitiativeRepo{}}}
	svc := NewMilestoneService(factory, nil)

	if _, err := svc.SearchByTitle(context.Background(), uuid.New(), uuid.New(), "beta launch"); err != nil {
		t.Fatalf("SearchByTitle() error = %v", err)
	}
	if got := titleContainsFragment(t, repo.findSpecs); got != "beta launch" {
		t.Errorf("TitleContains.Fragment = %q, want %q", got, "beta launch")
	}
}

func TestInitiativeSearchByTitleAppliesSubstringFilter(t *testing.T) {
	repo := &stubInitiativeRepo{}
	factory := &stubFactory{uow: &stubUnitOfWork{milestones: &stubMilestoneRepo{}, initiatives: repo}}
	svc := NewInitiativeService(factory, nil, nil)

	if _, err := svc.SearchByTitle(context.Background(), uuid.New(), uuid.New(), "onboarding"); err != nil {
		t.Fatalf("SearchByTitle() error = %v", err)
	}
	if got := titleContainsFragment(t, repo.findSpecs); got != "onboarding" {
		t.Errorf("TitleContains.Fragment = %q, want %q", got, "onboarding")
	}
}

func TestListByTimelineEmptyBucketsSkipped(t *testing.T) {
	now := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	factory := &stubFactory{uow: &stubUnitOfWork{
		milestones: &stubMilestoneRepo{milestones: []*entity.Milestone{
			{Id: uuid.New(), Reference: "M-1", Status: constant.StatusPlanned, DueDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)},
		}},
		initiatives: &stubInitiativeRepo{},
	}}
	svc := NewMilestoneService(factory, nil)

	buckets, err := svc.ListByTimeline(context.Background(), uuid.New(), uuid.New(), now)
	if err != nil {
		t.Fatalf("ListByTimeline() error = %v", err)
	}
	if len(buckets) != 1 || buckets[0].Bucket != "this-quarter" {
		t.Errorf("buckets = %+v, want only this-quarter", buckets)
	}
}
