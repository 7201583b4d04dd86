package conversation

import (
	"context"
	"time"

	"doc-chat-be/pkg/llm"

	"github.com/patrickmn/go-cache"
)

// MemoryCheckpointer keeps conversation histories in process memory.
// Histories do not survive a restart, matching in-memory checkpoint
// semantics: a reboot is an implicit reset.
type MemoryCheckpointer struct {
	cache *cache.Cache
}

func NewMemoryCheckpointer() *MemoryCheckpointer {
	// Histories never expire on their own; only Clear removes them.
	c := cache.New(cache.NoExpiration, 10*time.Minute)
	return &MemoryCheckpointer{
		cache: c,
	}
}

func (m *MemoryCheckpointer) Load(ctx context.Context, threadID string) ([]llm.Message, error) {
	if x, found := m.cache.Get(threadID); found {
		history := x.([]llm.Message)
		// Copy so callers cannot mutate the checkpoint in place
		out := make([]llm.Message, len(history))
		copy(out, history)
		return out, nil
	}
	return []llm.Message{}, nil
}

func (m *MemoryCheckpointer) Save(ctx context.Context, threadID string, history []llm.Message) error {
	stored := make([]llm.Message, len(history))
	copy(stored, history)
	m.cache.Set(threadID, stored, cache.NoExpiration)
	return nil
}

func (m *MemoryCheckpointer) Clear(ctx context.Context, threadID string) error {
	m.cache.Delete(threadID)
	return nil
}
