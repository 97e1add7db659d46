package mapper

import (
	"planhub-be/internal/entity"
	"planhub-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type RetrievalDocumentMapper struct{}

func NewRetrievalDocumentMapper() *RetrievalDocumentMapper {
	return &RetrievalDocumentMapper{}
}

func (m *RetrievalDocumentMapper) ToEntity(d *model.RetrievalDocument) *entity.RetrievalDocument {
	if d == nil {
		return nil
	}

	return &entity.RetrievalDocument{
		Id:        d.Id,
		Content:   d.Content,
		Embedding: d.Embedding.Slice(),
		Metadata:  map[string]interface{}(d.Metadata),
		CreatedAt: d.CreatedAt,
		UpdatedAt: updatedAtToPtr(d.UpdatedAt),
	}
}

func (m *RetrievalDocumentMapper) ToModel(d *entity.RetrievalDocument) *model.RetrievalDocument {
	if d == nil {
		return nil
	}

	return &model.RetrievalDocument{
		Id:        d.Id,
		Content:   d.Content,
		Embedding: pgvector.NewVector(d.Embedding),
		Metadata:  datatypes.JSONMap(d.Metadata),
		CreatedAt: d.CreatedAt,
		UpdatedAt: ptrToUpdatedAt(d.UpdatedAt),
	}
}
