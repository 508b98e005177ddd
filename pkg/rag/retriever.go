package rag

import (
	"context"

	"tsai-chat-be/internal/pkg/logger"
	"tsai-chat-be/internal/repository/unitofwork"
	"tsai-chat-be/pkg/embedding"

	"github.com/google/uuid"
)

// Retriever finds the stored passages most similar to a query, scoped to one
// session. Retrieval is best-effort enrichment: every failure degrades to an
// empty result instead of propagating, so a conversation turn never dies here.
type Retriever struct {
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	log               logger.ILogger
}

func NewRetriever(
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	log logger.ILogger,
) *Retriever {
	return &Retriever{
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		log:               log,
	}
}

// Retrieve embeds queryText and returns the top-k passage contents for the
// session, nearest first.
func (r *Retriever) Retrieve(ctx context.Context, sessionId uuid.UUID, queryText string, k int) []string {
	res, err := r.embeddingProvider.Generate(queryText, "RETRIEVAL_QUERY")
	if err != nil {
		r.log.Warn("retriever", "Query embedding failed, skipping retrieval", map[string]interface{}{
			"session_id": sessionId.String(),
			"error":      err.Error(),
		})
		return nil
	}

	uow := r.uowFactory.NewUnitOfWork(ctx)
	passages, err := uow.KnowledgeRepository().SearchSimilar(ctx, sessionId, res.Embedding.Values, k)
	if err != nil {
		r.log.Warn("retriever", "Similarity search failed, skipping retrieval", map[string]interface{}{
			"session_id": sessionId.String(),
			"error":      err.Error(),
		})
		return nil
	}

	contents := make([]string, 0, len(passages))
	for _, p := range passages {
		contents = append(contents, p.Content)
	}
	return contents
}
