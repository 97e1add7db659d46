package service

import (
	"context"
	"time"

	"planhub-be/internal/entity"
	"planhub-be/internal/repository/specification"
	"planhub-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

// IWorkspaceService resolves organizations and projects. Lookups sit on the
// hot path of every assistant request, so hits are served from an in-process
// cache. Negative results are not cached.
type IWorkspaceService interface {
	GetOrganization(ctx context.Context, orgId uuid.UUID) (*entity.Organization, error)
	GetProject(ctx context.Context, orgId, projectId uuid.UUID) (*entity.Project, error)
}

type workspaceService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *gocache.Cache
}

func NewWorkspaceService(uowFactory unitofwork.RepositoryFactory) IWorkspaceService {
	return &workspaceService{
		uowFactory: uowFactory,
		cache:      gocache.New(5*time.Minute, 10*time.Minute),
	}
}

func (s *workspaceService) GetOrganization(ctx context.Context, orgId uuid.UUID) (*entity.Organization, error) {
	cacheKey := "org:" + orgId.String()
	if cached, ok := s.cache.Get(cacheKey); ok {
		return cached.(*entity.Organization), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	org, err := uow.OrganizationRepository().FindOne(ctx, specification.ByID{ID: orgId})
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, nil
	}

	s.cache.Set(cacheKey, org, gocache.DefaultExpiration)
	return org, nil
}

func (s *workspaceService) GetProject(ctx context.Context, orgId, projectId uuid.UUID) (*entity.Project, error) {
	cacheKey := "project:" + orgId.String() + ":" + projectId.String()
	if cached, ok := s.cache.Get(cacheKey); ok {
		return cached.(*entity.Project), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	project, err := uow.ProjectRepository().FindOne(ctx,
		specification.ByID{ID: projectId},
		specification.OwnedByOrg{OrgID: orgId},
	)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, nil
	}

	s.cache.Set(cacheKey, project, gocache.DefaultExpiration)
	return project, nil
}
