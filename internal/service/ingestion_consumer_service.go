package service

import (
	"context"
	"encoding/json"

	"doc-chat-be/internal/dto"
	"doc-chat-be/internal/entity"
	"doc-chat-be/internal/pkg/logger"
	"doc-chat-be/internal/repository/specification"
	"doc-chat-be/internal/repository/unitofwork"
	"doc-chat-be/pkg/embedding"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IIngestionConsumerService interface {
	Consume(ctx context.Context) error
}

// ingestionConsumerService sits at the ingestion boundary: the parsing side
// publishes chunked document text, this worker embeds each chunk and writes
// the embedding rows the retriever later searches.
type ingestionConsumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	log               logger.ILogger
}

func NewIngestionConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	log logger.ILogger,
) IIngestionConsumerService {
	return &ingestionConsumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		log:               log,
	}
}

func (cs *ingestionConsumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *ingestionConsumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishDocumentChunksMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.log.Error("ingestion", "failed to unmarshal chunk message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	cs.log.Info("ingestion", "processing document chunks", map[string]interface{}{
		"file_id": payload.FileId.String(),
		"chunks":  len(payload.Chunks),
	})

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	file, err := uow.DocumentFileRepository().FindOne(ctx, specification.ByID{ID: payload.FileId})
	if err != nil {
		cs.log.Error("ingestion", "failed to load file", map[string]interface{}{
			"file_id": payload.FileId.String(),
			"error":   err.Error(),
		})
		msg.Nack() // Nack for retriable errors
		return
	}
	if file == nil {
		cs.log.Warn("ingestion", "file not found, dropping chunks", map[string]interface{}{
			"file_id": payload.FileId.String(),
		})
		msg.Ack() // File deleted? Ack.
		return
	}

	embeddings := make([]*entity.DocumentEmbedding, 0, len(payload.Chunks))
	for i, chunk := range payload.Chunks {
		res, err := cs.embeddingProvider.Generate(chunk, "RETRIEVAL_DOCUMENT")
		if err != nil {
			cs.log.Error("ingestion", "embedding generation failed", map[string]interface{}{
				"file_id":     payload.FileId.String(),
				"chunk_index": i,
				"error":       err.Error(),
			})
			msg.Nack()
			return
		}
		if len(res.Embedding.Values) == 0 {
			cs.log.Warn("ingestion", "provider returned empty embedding, skipping chunk", map[string]interface{}{
				"file_id":     payload.FileId.String(),
				"chunk_index": i,
			})
			continue
		}

		embeddings = append(embeddings, &entity.DocumentEmbedding{
			Id:           uuid.New(),
			Text:         chunk,
			Embedding:    res.Embedding.Values,
			SourceFileId: payload.FileId,
			ChunkIndex:   i,
		})
	}

	if len(embeddings) == 0 {
		msg.Ack()
		return
	}

	// Replace, don't accumulate: reprocessing the same file swaps its rows.
	if err := uow.DocumentEmbeddingRepository().DeleteBySourceFileId(ctx, payload.FileId); err != nil {
		cs.log.Error("ingestion", "failed to clear stale embeddings", map[string]interface{}{
			"file_id": payload.FileId.String(),
			"error":   err.Error(),
		})
		msg.Nack()
		return
	}

	if err := uow.DocumentEmbeddingRepository().CreateBulk(ctx, embeddings); err != nil {
		cs.log.Error("ingestion", "failed to store embeddings", map[string]interface{}{
			"file_id": payload.FileId.String(),
			"error":   err.Error(),
		})
		msg.Nack()
		return
	}

	cs.log.Info("ingestion", "embeddings stored", map[string]interface{}{
		"file_id": payload.FileId.String(),
		"rows":    len(embeddings),
	})
	msg.Ack()
}
