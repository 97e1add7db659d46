package implementation

import (
	"context"
	"encoding/json"

	"planhub-be/internal/entity"
	"planhub-be/internal/mapper"
	"planhub-be/internal/model"
	"planhub-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type RetrievalDocumentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RetrievalDocumentMapper
}

func NewRetrievalDocumentRepository(db *gorm.DB) contract.RetrievalDocumentRepository {
	return &RetrievalDocumentRepositoryImpl{
		db:     db,
		mapper: mapper.NewRetrievalDocumentMapper(),
	}
}

func (r *RetrievalDocumentRepositoryImpl) Create(ctx context.Context, doc *entity.RetrievalDocument) error {
	m := r.mapper.ToModel(doc)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*doc = *r.mapper.ToEntity(m)
	return nil
}

func (r *RetrievalDocumentRepositoryImpl) CreateBulk(ctx context.Context, docs []*entity.RetrievalDocument) error {
	models := make([]*model.RetrievalDocument, len(docs))
	for i, d := range docs {
		models[i] = r.mapper.ToModel(d)
	}

	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}

	for i, m := range models {
		*docs[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *RetrievalDocumentRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.RetrievalDocument{}, id).Error
}

func (r *RetrievalDocumentRepositoryImpl) DeleteAllByEntityId(ctx context.Context, entityId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("metadata @> ?", containmentFilter(map[string]interface{}{"entityId": entityId.String()})).
		Delete(&model.RetrievalDocument{}).Error
}

func (r *RetrievalDocumentRepositoryImpl) FindAllByEntityId(ctx context.Context, entityId uuid.UUID) ([]*entity.RetrievalDocument, error) {
	var models []*model.RetrievalDocument
	err := r.db.WithContext(ctx).
		Where("metadata @> ?", containmentFilter(map[string]interface{}{"entityId": entityId.String()})).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	entities := make([]*entity.RetrievalDocument, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

// SearchSimilar orders by cosine distance and filters with a single jsonb
// containment on all three tenant identifiers, so a document only matches when
// orgId AND userId AND projectId are all equal. Cross-tenant rows can never
// rank, whatever the query vector is.
func (r *RetrievalDocumentRepositoryImpl) SearchSimilar(ctx context.Context, embedding []float32, limit int, orgId, userId, projectId uuid.UUID) ([]*contract.ScoredRetrievalDocument, error) {
	if limit <= 0 {
		limit = 5
	}

	type result struct {
		model.RetrievalDocument
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)
	tenantFilter := containmentFilter(map[string]interface{}{
		"orgId":     orgId.String(),
		"userId":    userId.String(),
		"projectId": projectId.String(),
	})

	err := r.db.WithContext(ctx).
		Table("retrieval_documents").
		Select("retrieval_documents.*, 1 - (embedding <=> ?) as similarity", queryVector).
		Where("metadata @> ?", tenantFilter).
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredRetrievalDocument, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredRetrievalDocument{
			Document:   r.mapper.ToEntity(&res.RetrievalDocument),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}

func containmentFilter(fields map[string]interface{}) string {
	b, _ := json.Marshal(fields)
	return string(b)
}
