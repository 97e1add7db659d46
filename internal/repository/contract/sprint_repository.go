package contract

import (
	"context"

	"planhub-be/internal/entity"
	"planhub-be/internal/repository/specification"

	"github.com/google/uuid"
)

type SprintRepository interface {
	Create(ctx context.Context, sprint *entity.Sprint) error
	Update(ctx context.Context, sprint *entity.Sprint) error
	Delete(ctx context.Context, id uuid.UUID) error
	// DeactivateAllByProjectId clears the active flag on every sprint of a
	// project. Called before activating a new sprint to keep the single
	// active sprint invariant.
	DeactivateAllByProjectId(ctx context.Context, projectId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Sprint, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Sprint, error)
}

type WorkItemRepository interface {
	Create(ctx context.Context, item *entity.WorkItem) error
	Update(ctx context.Context, item *entity.WorkItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.WorkItem, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.WorkItem, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
