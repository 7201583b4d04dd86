package conversation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"doc-chat-be/pkg/llm"

	"github.com/redis/go-redis/v9"
)

// RedisCheckpointer persists conversation histories in Redis so they survive
// process restarts and can be shared across replicas.
type RedisCheckpointer struct {
	client *redis.Client
}

func NewRedisCheckpointer(client *redis.Client) *RedisCheckpointer {
	return &RedisCheckpointer{
		client: client,
	}
}

func redisKey(threadID string) string {
	return fmt.Sprintf("conversation:%s", threadID)
}

func (r *RedisCheckpointer) Load(ctx context.Context, threadID string) ([]llm.Message, error) {
	raw, err := r.client.Get(ctx, redisKey(threadID)).Result()
	if errors.Is(err, redis.Nil) {
		return []llm.Message{}, nil
	}
	if err != nil {
		return nil, err
	}

	var history []llm.Message
	if err := json.Unmarshal([]byte(raw), &history); err != nil {
		return nil, fmt.Errorf("corrupt checkpoint for thread %s: %w", threadID, err)
	}
	return history, nil
}

func (r *RedisCheckpointer) Save(ctx context.Context, threadID string, history []llm.Message) error {
	raw, err := json.Marshal(history)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, redisKey(threadID), raw, 0).Err()
}

func (r *RedisCheckpointer) Clear(ctx context.Context, threadID string) error {
	return r.client.Del(ctx, redisKey(threadID)).Err()
}
