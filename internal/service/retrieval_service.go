package service

import (
	"context"
	"fmt"

	"ai-tripmate-be/internal/dto"
	"ai-tripmate-be/internal/pkg/logger"
	"ai-tripmate-be/internal/pkg/serverutils"
	"ai-tripmate-be/pkg/chunker"
	"ai-tripmate-be/pkg/embedding"
	"ai-tripmate-be/pkg/events"
	pktNats "ai-tripmate-be/pkg/nats"
	"ai-tripmate-be/pkg/retrieval"

	"github.com/google/uuid"
)

type IRetrievalService interface {
	Ingest(ctx context.Context, req *dto.IngestRequest) (*dto.IngestResponse, error)
}

type retrievalService struct {
	embeddingProvider embedding.EmbeddingProvider
	index             *retrieval.Index
	publisherService  IPublisherService
	eventPublisher    *pktNats.Publisher
	sysLogger         logger.ILogger
	chunkSize         int
}

func NewRetrievalService(
	embeddingProvider embedding.EmbeddingProvider,
	index *retrieval.Index,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	sysLogger logger.ILogger,
	chunkSize int,
) IRetrievalService {
	return &retrievalService{
		embeddingProvider: embeddingProvider,
		index:             index,
		publisherService:  publisherService,
		eventPublisher:    eventPublisher,
		sysLogger:         sysLogger,
		chunkSize:         chunkSize,
	}
}

// Ingest chunks the texts, embeds every chunk in one batch, and atomically
// replaces the live index generation. An embedding failure aborts the whole
// ingestion; the previous generation keeps serving.
func (s *retrievalService) Ingest(ctx context.Context, req *dto.IngestRequest) (*dto.IngestResponse, error) {
	if err := serverutils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	ingestionID := uuid.NewString()

	chunks := chunker.Split(req.Texts, s.chunkSize)

	embeddings, err := s.embeddingProvider.GenerateBatch(chunks, "RETRIEVAL_DOCUMENT")
	if err != nil {
		s.sysLogger.Error("retrieval", "Embedding batch failed, index unchanged", map[string]interface{}{
			"ingestion_id": ingestionID,
			"chunks":       len(chunks),
			"error":        err.Error(),
		})
		return nil, fmt.Errorf("embedding generation failed: %w", err)
	}

	generation, err := s.index.Rebuild(chunks, embeddings)
	if err != nil {
		s.sysLogger.Error("retrieval", "Index rebuild failed, previous generation kept", map[string]interface{}{
			"ingestion_id": ingestionID,
			"error":        err.Error(),
		})
		return nil, fmt.Errorf("index rebuild failed: %w", err)
	}

	s.sysLogger.Info("retrieval", "Index generation published", map[string]interface{}{
		"ingestion_id": ingestionID,
		"generation":   generation,
		"chunks":       len(chunks),
	})

	if err := s.publisherService.PublishIngested(&dto.PublishIngestedMessage{
		IngestionID: ingestionID,
		Generation:  generation,
		Chunks:      len(chunks),
	}); err != nil {
		s.sysLogger.Warn("retrieval", "Failed to publish ingestion event", map[string]interface{}{
			"ingestion_id": ingestionID,
			"error":        err.Error(),
		})
	}

	if err := s.eventPublisher.Publish(ctx, events.NewRetrievalIngested(ingestionID, generation, len(chunks))); err != nil {
		s.sysLogger.Warn("retrieval", "Failed to publish NATS event", map[string]interface{}{
			"ingestion_id": ingestionID,
			"error":        err.Error(),
		})
	}

	return &dto.IngestResponse{
		Status: "ok",
		Chunks: len(chunks),
	}, nil
}
