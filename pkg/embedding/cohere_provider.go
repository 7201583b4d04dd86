package embedding

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// CohereProvider implements EmbeddingProvider for Cohere embed models
// (embed-english-v3.0 produces 1024-dimension vectors).
type CohereProvider struct {
	apiKey  string
	baseURL string
	model   string
}

type cohereEmbeddingRequest struct {
	Model          string   `json:"model"`
	Texts          []string `json:"texts"`
	InputType      string   `json:"input_type"`
	EmbeddingTypes []string `json:"embedding_types"`
}

type cohereEmbeddingResponse struct {
	Embeddings struct {
		Float [][]float32 `json:"float"`
	} `json:"embeddings"`
	Message string `json:"message,omitempty"`
}

func NewCohereProvider(apiKey string, model string) *CohereProvider {
	if model == "" {
		model = "embed-english-v3.0"
	}
	return &CohereProvider{
		apiKey:  apiKey,
		baseURL: "https://api.cohere.com/v2/embed",
		model:   model,
	}
}

func (p *CohereProvider) Generate(text string, taskType string) (*EmbeddingResponse, error) {
	inputType := "search_document"
	if taskType == "RETRIEVAL_QUERY" {
		inputType = "search_query"
	}

	reqBody := cohereEmbeddingRequest{
		Model:          p.model,
		Texts:          []string{text},
		InputType:      inputType,
		EmbeddingTypes: []string{"float"},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest("POST", p.baseURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", p.apiKey))

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cohere api error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var cohereResp cohereEmbeddingResponse
	if err := json.Unmarshal(bodyBytes, &cohereResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(cohereResp.Embeddings.Float) == 0 {
		return nil, fmt.Errorf("empty embeddings from cohere api")
	}

	return &EmbeddingResponse{
		Embedding: EmbeddingResponseEmbedding{
			Values: cohereResp.Embeddings.Float[0],
		},
	}, nil
}
