package contract

import (
	"context"

	"planhub-be/internal/entity"
	"planhub-be/internal/repository/specification"

	"github.com/google/uuid"
)

type MilestoneRepository interface {
	Create(ctx context.Context, milestone *entity.Milestone) error
	Update(ctx context.Context, milestone *entity.Milestone) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Milestone, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Milestone, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
