package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"doc-chat-be/internal/config"
	"doc-chat-be/internal/pkg/logger"
	"doc-chat-be/internal/repository/unitofwork"
	"doc-chat-be/pkg/database"
	"doc-chat-be/pkg/embedding"
	"doc-chat-be/pkg/rag/retriever"

	"github.com/fatih/color"
)

// Runs one retrieval end-to-end against the live database and prints the
// scored candidates. Usage: go run ./cmd/diagnose "your query"
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: diagnose <query>")
	}
	query := os.Args[1]

	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	var provider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		provider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
	} else {
		provider = embedding.NewCohereProvider(cfg.Keys.Cohere, cfg.Ai.EmbeddingModel)
	}

	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, false)
	ret := retriever.NewRetriever(provider, unitofwork.NewRepositoryFactory(db), sysLogger)

	cyan := color.New(color.FgCyan, color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	cyan.Printf("Query: %q (top_n=%d)\n\n", query, cfg.Ai.TopN)

	candidates, err := ret.Search(context.Background(), query, cfg.Ai.TopN)
	if err != nil {
		color.Red("Retrieval failed: %v", err)
		os.Exit(1)
	}

	for i, c := range candidates {
		marker := " "
		if i == 0 {
			marker = "*" // the passage that would become context
		}
		green.Printf("%s [%d] score=%.4f file=%s chunk=%d\n",
			marker, i+1, c.Similarity, c.Embedding.SourceFileId, c.Embedding.ChunkIndex)
		yellow.Printf("    %s\n", truncate(c.Embedding.Text, 160))
	}

	fmt.Printf("\n%d candidates, context comes from the starred row\n", len(candidates))
}

// truncate cuts on rune boundaries so multi-byte text is never split mid-rune.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
