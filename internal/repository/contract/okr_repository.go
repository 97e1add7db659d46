package contract

import (
	"context"

	"planhub-be/internal/entity"
	"planhub-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ObjectiveRepository interface {
	Create(ctx context.Context, objective *entity.Objective) error
	Update(ctx context.Context, objective *entity.Objective) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Objective, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Objective, error)
}

type KeyResultRepository interface {
	Create(ctx context.Context, keyResult *entity.KeyResult) error
	Update(ctx context.Context, keyResult *entity.KeyResult) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.KeyResult, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KeyResult, error)
}
