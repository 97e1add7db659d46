package contract

import (
	"context"

	"planhub-be/internal/entity"
	"planhub-be/internal/repository/specification"

	"github.com/google/uuid"
)

type InitiativeRepository interface {
	Create(ctx context.Context, initiative *entity.Initiative) error
	Update(ctx context.Context, initiative *entity.Initiative) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Initiative, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Initiative, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
