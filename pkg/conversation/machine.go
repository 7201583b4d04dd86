package conversation

import (
	"context"
	"sync"

	"doc-chat-be/internal/pkg/apperror"
	"doc-chat-be/internal/pkg/logger"
	"doc-chat-be/pkg/llm"
)

// SystemInstruction is injected fresh on every model call. It is never
// written into the checkpointed history.
const SystemInstruction = "You are a helpful assistant. Answer all questions to the best of your ability."

const (
	RoleSystem    = "system"
	RoleHuman     = "user"
	RoleAssistant = "assistant"
)

// Machine is the conversational state machine: a single transition
// (start -> model) that appends the human turn, invokes the model with the
// system instruction plus the running history, and appends the reply.
// Updates are serialized per thread id, so concurrent requests on the same
// thread cannot interleave their read-modify-append cycles.
type Machine struct {
	provider     llm.LLMProvider
	checkpointer Checkpointer
	temperature  float64
	log          logger.ILogger

	mu          sync.Mutex
	threadLocks map[string]*sync.Mutex
}

func NewMachine(
	provider llm.LLMProvider,
	checkpointer Checkpointer,
	temperature float64,
	log logger.ILogger,
) *Machine {
	return &Machine{
		provider:     provider,
		checkpointer: checkpointer,
		temperature:  temperature,
		log:          log,
		threadLocks:  make(map[string]*sync.Mutex),
	}
}

func (m *Machine) lockThread(threadID string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()

	lock, ok := m.threadLocks[threadID]
	if !ok {
		lock = &sync.Mutex{}
		m.threadLocks[threadID] = lock
	}
	return lock
}

// Advance runs one turn: load the checkpointed history, call the model node
// with system instruction + history + the new human message, and persist the
// human/assistant pair. On model failure nothing is persisted, so the stored
// history only ever grows by complete turns.
func (m *Machine) Advance(ctx context.Context, threadID string, humanMessage string) (string, error) {
	lock := m.lockThread(threadID)
	lock.Lock()
	defer lock.Unlock()

	history, err := m.checkpointer.Load(ctx, threadID)
	if err != nil {
		return "", apperror.Store(err)
	}

	humanTurn := llm.Message{Role: RoleHuman, Content: humanMessage}

	reply, err := m.callModel(ctx, history, humanTurn)
	if err != nil {
		return "", apperror.Generation(err)
	}

	updated := append(history, humanTurn, llm.Message{Role: RoleAssistant, Content: reply})
	if err := m.checkpointer.Save(ctx, threadID, updated); err != nil {
		return "", apperror.Store(err)
	}

	m.log.Debug("conversation", "turn completed", map[string]interface{}{
		"thread_id":      threadID,
		"history_length": len(updated),
	})

	return reply, nil
}

// callModel is the single node of the graph. The system instruction is
// prepended to the transient message list only.
func (m *Machine) callModel(ctx context.Context, history []llm.Message, humanTurn llm.Message) (string, error) {
	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: RoleSystem, Content: SystemInstruction})
	messages = append(messages, history...)
	messages = append(messages, humanTurn)

	return m.provider.Chat(ctx, messages, llm.WithTemperature(m.temperature))
}

// Reset replaces the thread's history with an empty one. Resetting an
// already-empty thread succeeds with no effect.
func (m *Machine) Reset(ctx context.Context, threadID string) error {
	lock := m.lockThread(threadID)
	lock.Lock()
	defer lock.Unlock()

	if err := m.checkpointer.Clear(ctx, threadID); err != nil {
		return apperror.Store(err)
	}

	m.log.Info("conversation", "thread reset", map[string]interface{}{
		"thread_id": threadID,
	})
	return nil
}
