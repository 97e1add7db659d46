package implementation

import (
	"context"

	"planhub-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SequenceRepositoryImpl struct {
	db *gorm.DB
}

func NewSequenceRepository(db *gorm.DB) contract.SequenceRepository {
	return &SequenceRepositoryImpl{db: db}
}

// Next bumps the per-(org, prefix) counter atomically. The upsert serializes
// concurrent creators on the row lock, so two transactions can't hand out the
// same reference number.
func (r *SequenceRepositoryImpl) Next(ctx context.Context, orgId uuid.UUID, prefix string) (int, error) {
	var value int
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO sequence_counters (organization_id, prefix, value)
		VALUES (?, ?, 1)
		ON CONFLICT (organization_id, prefix)
		DO UPDATE SET value = sequence_counters.value + 1
		RETURNING value`,
		orgId, prefix,
	).Scan(&value).Error
	if err != nil {
		return 0, err
	}
	return value, nil
}
