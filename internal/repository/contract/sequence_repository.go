package contract

import (
	"context"

	"github.com/google/uuid"
)

// SequenceRepository hands out the next per-org sequence number for a
// reference prefix ("I", "M", "O", "K", "S", "W"). Must be called inside the
// same transaction as the entity insert so a rollback releases the number.
type SequenceRepository interface {
	Next(ctx context.Context, orgId uuid.UUID, prefix string) (int, error)
}
