package contract

import (
	"context"

	"planhub-be/internal/entity"

	"github.com/google/uuid"
)

// ScoredRetrievalDocument pairs a document with its cosine similarity to the
// query vector.
type ScoredRetrievalDocument struct {
	Document   *entity.RetrievalDocument
	Similarity float64
}

type RetrievalDocumentRepository interface {
	Create(ctx context.Context, doc *entity.RetrievalDocument) error
	CreateBulk(ctx context.Context, docs []*entity.RetrievalDocument) error
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteAllByEntityId removes every document whose metadata entityId
	// matches; used for delete-then-add reindexing.
	DeleteAllByEntityId(ctx context.Context, entityId uuid.UUID) error
	FindAllByEntityId(ctx context.Context, entityId uuid.UUID) ([]*entity.RetrievalDocument, error)
	// SearchSimilar returns the limit nearest documents by cosine distance
	// whose metadata contains ALL the supplied tenant identifiers.
	SearchSimilar(ctx context.Context, embedding []float32, limit int, orgId, userId, projectId uuid.UUID) ([]*ScoredRetrievalDocument, error)
}
