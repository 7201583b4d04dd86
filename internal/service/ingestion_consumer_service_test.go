package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"doc-chat-be/internal/dto"
	"doc-chat-be/internal/entity"
	"doc-chat-be/internal/repository/contract"
	"doc-chat-be/internal/repository/specification"
	"doc-chat-be/pkg/embedding"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFileRepo struct {
	file *entity.DocumentFile
}

func (f *fakeFileRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DocumentFile, error) {
	return f.file, nil
}

func (f *fakeFileRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentFile, error) {
	if f.file == nil {
		return nil, nil
	}
	return []*entity.DocumentFile{f.file}, nil
}

func (f *fakeFileRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	if f.file == nil {
		return 0, nil
	}
	return 1, nil
}

// skippingEmbedder returns an empty vector for chunks listed in skip, a real
// one otherwise.
type skippingEmbedder struct {
	mu   sync.Mutex
	skip map[string]bool
}

func (s *skippingEmbedder) Generate(text string, taskType string) (*embedding.EmbeddingResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.skip[text] {
		return &embedding.EmbeddingResponse{}, nil
	}
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: []float32{0.5, 0.5}},
	}, nil
}

func publishChunks(t *testing.T, pubSub *gochannel.GoChannel, topic string, payload dto.PublishDocumentChunksMessage) {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	svc := NewPublisherService(topic, pubSub)
	require.NoError(t, svc.Publish(context.Background(), raw))
}

func TestConsumerStoresEmbeddingsForPublishedChunks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fileId := uuid.New()
	embeddingRepo := &fakeEmbeddingRepo{}
	fileRepo := &fakeFileRepo{file: &entity.DocumentFile{Id: fileId, Name: "doc.pdf"}}
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})

	consumer := NewIngestionConsumerService(
		pubSub,
		"document.chunks",
		&fakeFactory{repo: embeddingRepo, fileRepo: fileRepo},
		&stubEmbedder{},
		noopLogger{},
	)
	require.NoError(t, consumer.Consume(ctx))

	publishChunks(t, pubSub, "document.chunks", dto.PublishDocumentChunksMessage{
		FileId: fileId,
		Chunks: []string{"first chunk", "second chunk", "third chunk"},
	})

	require.Eventually(t, func() bool {
		return len(embeddingRepo.createdRows()) == 3
	}, 2*time.Second, 10*time.Millisecond)

	rows := embeddingRepo.createdRows()
	for i, row := range rows {
		assert.Equal(t, fileId, row.SourceFileId)
		assert.Equal(t, i, row.ChunkIndex)
		assert.NotEmpty(t, row.Embedding)
	}
	assert.Equal(t, "first chunk", rows[0].Text)
}

func TestConsumerSkipsChunksWithEmptyEmbeddings(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fileId := uuid.New()
	embeddingRepo := &fakeEmbeddingRepo{}
	fileRepo := &fakeFileRepo{file: &entity.DocumentFile{Id: fileId, Name: "doc.pdf"}}
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})

	consumer := NewIngestionConsumerService(
		pubSub,
		"document.chunks",
		&fakeFactory{repo: embeddingRepo, fileRepo: fileRepo},
		&skippingEmbedder{skip: map[string]bool{"bad chunk": true}},
		noopLogger{},
	)
	require.NoError(t, consumer.Consume(ctx))

	publishChunks(t, pubSub, "document.chunks", dto.PublishDocumentChunksMessage{
		FileId: fileId,
		Chunks: []string{"good chunk", "bad chunk", "another good chunk"},
	})

	require.Eventually(t, func() bool {
		return len(embeddingRepo.createdRows()) == 2
	}, 2*time.Second, 10*time.Millisecond)

	rows := embeddingRepo.createdRows()
	// Chunk indices are preserved even when a chunk is skipped.
	assert.Equal(t, 0, rows[0].ChunkIndex)
	assert.Equal(t, 2, rows[1].ChunkIndex)
}

func TestConsumerDropsChunksForUnknownFile(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	embeddingRepo := &fakeEmbeddingRepo{}
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})

	consumer := NewIngestionConsumerService(
		pubSub,
		"document.chunks",
		&fakeFactory{repo: embeddingRepo, fileRepo: &fakeFileRepo{file: nil}},
		&stubEmbedder{},
		noopLogger{},
	)
	require.NoError(t, consumer.Consume(ctx))

	publishChunks(t, pubSub, "document.chunks", dto.PublishDocumentChunksMessage{
		FileId: uuid.New(),
		Chunks: []string{"orphan chunk"},
	})

	// Give the consumer time to process, then confirm nothing was written.
	time.Sleep(200 * time.Millisecond)
	assert.Empty(t, embeddingRepo.createdRows())
}

func TestConsumerIgnoresMalformedPayloads(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fileId := uuid.New()
	embeddingRepo := &fakeEmbeddingRepo{}
	fileRepo := &fakeFileRepo{file: &entity.DocumentFile{Id: fileId, Name: "doc.pdf"}}
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})

	consumer := NewIngestionConsumerService(
		pubSub,
		"document.chunks",
		&fakeFactory{repo: embeddingRepo, fileRepo: fileRepo},
		&stubEmbedder{},
		noopLogger{},
	)
	require.NoError(t, consumer.Consume(ctx))

	svc := NewPublisherService("document.chunks", pubSub)
	require.NoError(t, svc.Publish(ctx, []byte("not json at all")))

	// A malformed message is acked and dropped; a valid one after it still works.
	publishChunks(t, pubSub, "document.chunks", dto.PublishDocumentChunksMessage{
		FileId: fileId,
		Chunks: []string{"valid chunk"},
	})

	require.Eventually(t, func() bool {
		return len(embeddingRepo.createdRows()) == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestConsumerReplacesRowsWhenFileIsReprocessed(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fileId := uuid.New()
	embeddingRepo := &fakeEmbeddingRepo{}
	fileRepo := &fakeFileRepo{file: &entity.DocumentFile{Id: fileId, Name: "doc.pdf"}}
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})

	consumer := NewIngestionConsumerService(
		pubSub,
		"document.chunks",
		&fakeFactory{repo: embeddingRepo, fileRepo: fileRepo},
		&stubEmbedder{},
		noopLogger{},
	)
	require.NoError(t, consumer.Consume(ctx))

	publishChunks(t, pubSub, "document.chunks", dto.PublishDocumentChunksMessage{
		FileId: fileId,
		Chunks: []string{"chunk a", "chunk b", "chunk c"},
	})

	require.Eventually(t, func() bool {
		return len(embeddingRepo.createdRows()) == 3
	}, 2*time.Second, 10*time.Millisecond)

	firstBatch := make(map[uuid.UUID]bool)
	for _, row := range embeddingRepo.createdRows() {
		firstBatch[row.Id] = true
	}

	// The same file republished (e.g. re-uploaded) swaps its rows, it does
	// not append a second copy.
	publishChunks(t, pubSub, "document.chunks", dto.PublishDocumentChunksMessage{
		FileId: fileId,
		Chunks: []string{"chunk a v2", "chunk b v2"},
	})

	require.Eventually(t, func() bool {
		rows := embeddingRepo.createdRows()
		if len(rows) != 2 {
			return false
		}
		for _, row := range rows {
			if firstBatch[row.Id] {
				return false
			}
		}
		return true
	}, 2*time.Second, 10*time.Millisecond)

	rows := embeddingRepo.createdRows()
	assert.Equal(t, "chunk a v2", rows[0].Text)
	assert.Equal(t, "chunk b v2", rows[1].Text)
	assert.Equal(t, 0, rows[0].ChunkIndex)
	assert.Equal(t, 1, rows[1].ChunkIndex)
}

var _ contract.DocumentFileRepository = (*fakeFileRepo)(nil)
