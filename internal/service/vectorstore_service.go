package service

import (
	"context"
	"time"

	"planhub-be/internal/entity"
	"planhub-be/internal/pkg/logger"
	"planhub-be/internal/repository/contract"
	"planhub-be/internal/repository/unitofwork"
	"planhub-be/pkg/embedding"

	"github.com/google/uuid"
)

// IVectorStoreService is the retrieval context provider. It owns the
// embedding step and the retrieval_documents table; callers hand it plain
// text plus tenant metadata. The store is a best-effort cache over the
// relational source of truth: failures here must never fail the operation
// that triggered indexing.
type IVectorStoreService interface {
	AddDocument(ctx context.Context, content string, meta entity.DocumentMetadata) error
	AddDocuments(ctx context.Context, contents []string, meta entity.DocumentMetadata) error
	SearchSimilarDocuments(ctx context.Context, query string, topK int, orgId, userId, projectId uuid.UUID) ([]*contract.ScoredRetrievalDocument, error)
	// UpdateDocument re-indexes an entity by removing every document that
	// carries its entityId, then adding the new contents.
	UpdateDocument(ctx context.Context, contents []string, meta entity.DocumentMetadata) error
	DeleteDocument(ctx context.Context, id uuid.UUID) error
	DeleteAllDocumentsByEntityId(ctx context.Context, entityId uuid.UUID) error
}

type vectorStoreService struct {
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	logger            logger.ILogger
}

func NewVectorStoreService(
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	log logger.ILogger,
) IVectorStoreService {
	return &vectorStoreService{
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		logger:            log,
	}
}

func (s *vectorStoreService) AddDocument(ctx context.Context, content string, meta entity.DocumentMetadata) error {
	return s.AddDocuments(ctx, []string{content}, meta)
}

func (s *vectorStoreService) AddDocuments(ctx context.Context, contents []string, meta entity.DocumentMetadata) error {
	docs, err := s.embedAll(contents, meta)
	if err != nil {
		return err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.RetrievalDocumentRepository().CreateBulk(ctx, docs)
}

func (s *vectorStoreService) SearchSimilarDocuments(ctx context.Context, query string, topK int, orgId, userId, projectId uuid.UUID) ([]*contract.ScoredRetrievalDocument, error) {
	res, err := s.embeddingProvider.Generate(query, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.RetrievalDocumentRepository().SearchSimilar(ctx, res.Embedding.Values, topK, orgId, userId, projectId)
}

func (s *vectorStoreService) UpdateDocument(ctx context.Context, contents []string, meta entity.DocumentMetadata) error {
	docs, err := s.embedAll(contents, meta)
	if err != nil {
		return err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.RetrievalDocumentRepository().DeleteAllByEntityId(ctx, meta.EntityId); err != nil {
		return err
	}
	if len(docs) > 0 {
		if err := uow.RetrievalDocumentRepository().CreateBulk(ctx, docs); err != nil {
			return err
		}
	}

	return uow.Commit()
}

func (s *vectorStoreService) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.RetrievalDocumentRepository().Delete(ctx, id)
}

func (s *vectorStoreService) DeleteAllDocumentsByEntityId(ctx context.Context, entityId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.RetrievalDocumentRepository().DeleteAllByEntityId(ctx, entityId)
}

func (s *vectorStoreService) embedAll(contents []string, meta entity.DocumentMetadata) ([]*entity.RetrievalDocument, error) {
	docs := make([]*entity.RetrievalDocument, 0, len(contents))
	for _, content := range contents {
		res, err := s.embeddingProvider.Generate(content, "RETRIEVAL_DOCUMENT")
		if err != nil {
			return nil, err
		}
		docs = append(docs, &entity.RetrievalDocument{
			Id:        uuid.New(),
			Content:   content,
			Embedding: res.Embedding.Values,
			Metadata:  meta.ToMap(),
			CreatedAt: time.Now(),
		})
	}
	return docs, nil
}
