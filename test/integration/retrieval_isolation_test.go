package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"planhub-be/internal/entity"
	"planhub-be/internal/repository/unitofwork"
	"planhub-be/internal/service"
	"planhub-be/pkg/database"
	"planhub-be/pkg/embedding"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flatEmbedding builds a unit vector with a single hot dimension so cosine
// ordering in the test is deterministic.
func flatEmbedding(hot int) []float32 {
	v := make([]float32, 768)
	v[hot] = 1
	return v
}

func TestRetrievalTenantIsolation(t *testing.T) {
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	require.NoError(t, err, "Failed to connect to DB")

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	ctx := context.Background()
	uow := uowFactory.NewUnitOfWork(ctx)
	repo := uow.RetrievalDocumentRepository()

	orgA := uuid.New()
	orgB := uuid.New()
	userA := uuid.New()
	userB := uuid.New()
	projectA := uuid.New()

	mkDoc := func(content string, meta entity.DocumentMetadata, hot int) *entity.RetrievalDocument {
		return &entity.RetrievalDocument{
			Id:        uuid.New(),
			Content:   content,
			Embedding: flatEmbedding(hot),
			Metadata:  meta.ToMap(),
		}
	}

	entityA := uuid.New()
	entityB := uuid.New()

	docs := []*entity.RetrievalDocument{
		mkDoc("Org A initiative about onboarding", entity.DocumentMetadata{
			OrgId: orgA, UserId: userA, ProjectId: projectA, DocumentType: "initiative", EntityId: entityA,
		}, 0),
		mkDoc("Org B initiative about onboarding", entity.DocumentMetadata{
			OrgId: orgB, UserId: userB, ProjectId: projectA, DocumentType: "initiative", EntityId: entityB,
		}, 0),
		mkDoc("Org A milestone about launch", entity.DocumentMetadata{
			OrgId: orgA, UserId: userB, ProjectId: projectA, DocumentType: "milestone", EntityId: uuid.New(),
		}, 1),
	}

	require.NoError(t, repo.CreateBulk(ctx, docs))
	t.Cleanup(func() {
		for _, d := range docs {
			_ = repo.Delete(context.Background(), d.Id)
		}
	})

	t.Run("Metadata filter is an exact AND match", func(t *testing.T) {
		// Same embedding, same project: only the org+user pair may come back.
		results, err := repo.SearchSimilar(ctx, flatEmbedding(0), 10, orgA, userA, projectA)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Org A initiative about onboarding", results[0].Document.Content)
	})

	t.Run("Other tenant never leaks in", func(t *testing.T) {
		results, err := repo.SearchSimilar(ctx, flatEmbedding(0), 10, orgB, userA, projectA)
		require.NoError(t, err)
		assert.Empty(t, results, "orgB query with userA identity must match nothing")
	})

	t.Run("Nearest neighbour ordering", func(t *testing.T) {
		// userB in orgA only owns the milestone doc.
		results, err := repo.SearchSimilar(ctx, flatEmbedding(1), 10, orgA, userB, projectA)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Org A milestone about launch", results[0].Document.Content)
		assert.InDelta(t, 1.0, results[0].Similarity, 0.01)
	})

	t.Run("DeleteAllByEntityId removes only that entity", func(t *testing.T) {
		require.NoError(t, repo.DeleteAllByEntityId(ctx, entityB))

		remaining, err := repo.FindAllByEntityId(ctx, entityB)
		require.NoError(t, err)
		assert.Empty(t, remaining)

		kept, err := repo.FindAllByEntityId(ctx, entityA)
		require.NoError(t, err)
		assert.Len(t, kept, 1)
	})
}

// fixedEmbeddingProvider returns the same unit vector for every input so the
// vector store service can run against a real database without a model.
type fixedEmbeddingProvider struct{ hot int }

func (p fixedEmbeddingProvider) Generate(text string, taskType string) (*embedding.EmbeddingResponse, error) {
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: flatEmbedding(p.hot)},
	}, nil
}

func TestVectorStoreReindexRoundTrip(t *testing.T) {
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	require.NoError(t, err, "Failed to connect to DB")

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	ctx := context.Background()
	store := service.NewVectorStoreService(uowFactory, fixedEmbeddingProvider{hot: 2}, nil)

	entityId := uuid.New()
	meta := entity.DocumentMetadata{
		OrgId:        uuid.New(),
		UserId:       uuid.New(),
		ProjectId:    uuid.New(),
		DocumentType: "initiative",
		EntityId:     entityId,
	}

	require.NoError(t, store.AddDocuments(ctx, []string{"Initiative I-7: old title"}, meta))
	t.Cleanup(func() {
		_ = store.DeleteAllDocumentsByEntityId(context.Background(), entityId)
	})

	require.NoError(t, store.UpdateDocument(ctx, []string{"Initiative I-7: new title"}, meta))

	// Re-indexing replaces, never accumulates: only the new content remains.
	docs, err := uowFactory.NewUnitOfWork(ctx).RetrievalDocumentRepository().FindAllByEntityId(ctx, entityId)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Initiative I-7: new title", docs[0].Content)
}

func TestSequenceCounterAllocation(t *testing.T) {
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	require.NoError(t, err, "Failed to connect to DB")

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	ctx := context.Background()
	uow := uowFactory.NewUnitOfWork(ctx)

	orgId := uuid.New()

	first, err := uow.SequenceRepository().Next(ctx, orgId, "I")
	require.NoError(t, err)
	assert.Equal(t, 1, first, "a fresh org starts at 1")

	second, err := uow.SequenceRepository().Next(ctx, orgId, "I")
	require.NoError(t, err)
	assert.Equal(t, 2, second)

	// Prefixes count independently.
	milestone, err := uow.SequenceRepository().Next(ctx, orgId, "M")
	require.NoError(t, err)
	assert.Equal(t, 1, milestone)

	// And so do organizations.
	otherOrg, err := uow.SequenceRepository().Next(ctx, uuid.New(), "I")
	require.NoError(t, err)
	assert.Equal(t, 1, otherOrg)
}
