package conversation

import (
	"context"

	"doc-chat-be/pkg/llm"
)

// DefaultThreadID is the single conversation thread the chat endpoint
// addresses. All callers share it, so clearing it clears everyone's memory.
const DefaultThreadID = "1"

// Checkpointer persists a thread's message history between requests.
type Checkpointer interface {
	// Load returns the stored history for a thread, empty for unknown threads.
	Load(ctx context.Context, threadID string) ([]llm.Message, error)
	// Save replaces the stored history for a thread.
	Save(ctx context.Context, threadID string, history []llm.Message) error
	// Clear removes a thread's history. Clearing an absent thread is a no-op.
	Clear(ctx context.Context, threadID string) error
}
