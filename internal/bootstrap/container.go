package bootstrap

import (
	"context"
	"log"

	"doc-chat-be/internal/config"
	"doc-chat-be/internal/controller"
	"doc-chat-be/internal/pkg/logger"
	"doc-chat-be/internal/repository/unitofwork"
	"doc-chat-be/internal/service"
	"doc-chat-be/pkg/conversation"
	"doc-chat-be/pkg/embedding"
	"doc-chat-be/pkg/llm/factory"
	"doc-chat-be/pkg/rag/retriever"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController controller.IChatController
	FileController controller.IFileController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IIngestionConsumerService

	// Ingestion-side publisher; the chunking collaborator pushes through this
	PublisherService service.IPublisherService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus (in-process; carries chunk-ready events from ingestion)
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewCohereProvider(cfg.Keys.Cohere, cfg.Ai.EmbeddingModel)
		log.Printf("[INFO] Using Embedding Provider: COHERE (%s)", cfg.Ai.EmbeddingModel)
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.Cohere,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Conversation checkpoint store
	var checkpointer conversation.Checkpointer
	if cfg.Ai.CheckpointStore == "redis" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		checkpointer = conversation.NewRedisCheckpointer(rdb)
		log.Printf("[INFO] Using Checkpoint Store: REDIS")
	} else {
		checkpointer = conversation.NewMemoryCheckpointer()
		log.Printf("[INFO] Using Checkpoint Store: MEMORY")
	}

	machine := conversation.NewMachine(llmProvider, checkpointer, cfg.Ai.Temperature, sysLogger)
	ret := retriever.NewRetriever(embeddingProvider, uowFactory, sysLogger)

	// 5. Services
	publisherService := service.NewPublisherService(cfg.Keys.ChunkTopic, pubSub)
	consumerService := service.NewIngestionConsumerService(
		pubSub,
		cfg.Keys.ChunkTopic,
		uowFactory,
		embeddingProvider,
		sysLogger,
	)

	chatService := service.NewChatService(
		ret,
		machine,
		retriever.Config{TopN: cfg.Ai.TopN, ContextSize: cfg.Ai.ContextSize},
		sysLogger,
	)
	fileService := service.NewFileService(uowFactory)

	// 6. Controllers
	return &Container{
		ChatController: controller.NewChatController(chatService),
		FileController: controller.NewFileController(fileService),

		ConsumerService:  consumerService,
		PublisherService: publisherService,

		Logger: sysLogger,
	}
}
