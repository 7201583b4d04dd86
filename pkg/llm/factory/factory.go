package factory

import (
	"fmt"

	"doc-chat-be/pkg/llm"
	"doc-chat-be/pkg/llm/cohere"
	"doc-chat-be/pkg/llm/ollama"
)

func NewLLMProvider(providerType, modelName, baseURL, cohereKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "cohere":
		if cohereKey == "" {
			return nil, fmt.Errorf("COHERE_API_KEY is required for the cohere provider")
		}
		return cohere.NewCohereProvider(cohereKey, modelName), nil
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
