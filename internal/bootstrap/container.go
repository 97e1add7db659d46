package bootstrap

import (
	"context"
	"log"
	"time"

	"planhub-be/internal/config"
	"planhub-be/internal/controller"
	"planhub-be/internal/pkg/logger"
	"planhub-be/internal/repository/unitofwork"
	"planhub-be/internal/service"
	"planhub-be/internal/websocket"
	"planhub-be/pkg/agent"
	"planhub-be/pkg/agent/tools"
	"planhub-be/pkg/embedding"
	"planhub-be/pkg/llm/factory"

	pktNats "planhub-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AssistantController controller.IAssistantController

	// Background Services (Exposed for main.go to run)
	IndexerService service.IIndexerService

	// WebSockets
	WebSocketHub *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	embeddingProvider, err := embedding.NewEmbeddingProvider(
		cfg.Ai.EmbeddingProvider,
		cfg.Ai.GeminiAPIKey,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.OllamaEmbedModel,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize Embedding Provider: %v", err)
	}
	log.Printf("[INFO] Using Embedding Provider: %s", cfg.Ai.EmbeddingProvider)

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Infrastructure
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

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

	wsLogger := logger.NewIsolatedLogger("logs/stream.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 5. Services
	publisherService := service.NewPublisherService(cfg.App.IndexTopicName, pubSub)
	vectorStoreService := service.NewVectorStoreService(uowFactory, embeddingProvider, sysLogger)
	indexerService := service.NewIndexerService(
		pubSub,
		cfg.App.IndexTopicName,
		uowFactory,
		vectorStoreService,
		sysLogger,
	)

	workspaceService := service.NewWorkspaceService(uowFactory)
	initiativeService := service.NewInitiativeService(uowFactory, publisherService, natsPub)
	milestoneService := service.NewMilestoneService(uowFactory, publisherService)
	okrService := service.NewOkrService(uowFactory, publisherService)
	sprintService := service.NewSprintService(uowFactory)
	workItemService := service.NewWorkItemService(uowFactory, publisherService)
	chatService := service.NewChatService(uowFactory)

	// 6. Agent
	registry := tools.NewRegistry(concat(
		tools.NewInitiativeTools(initiativeService),
		tools.NewMilestoneTools(milestoneService),
		tools.NewOkrTools(okrService),
		tools.NewSprintTools(sprintService),
		tools.NewWorkItemTools(workItemService, sprintService),
	)...)

	classifier := agent.NewClassifier(llmProvider, cfg.Ai.ClassifierModel)
	orchestrator := agent.NewOrchestrator(
		llmProvider,
		classifier,
		vectorStoreService,
		registry,
		uowFactory,
		sysLogger,
		time.Duration(cfg.Ai.StreamTimeoutSec)*time.Second,
		cfg.Ai.RetrievalTopK,
	)

	// 7. Controllers
	return &Container{
		AssistantController: controller.NewAssistantController(
			chatService,
			workspaceService,
			orchestrator,
			wsHub,
		),
		IndexerService: indexerService,
		WebSocketHub:   wsHub,
	}
}

func concat(sets ...[]tools.Tool) []tools.Tool {
	var all []tools.Tool
	for _, set := range sets {
		all = append(all, set...)
	}
	return all
}
