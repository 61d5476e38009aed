package bootstrap

import (
	"context"
	"log"
	"os"

	"ai-tripmate-be/internal/config"
	"ai-tripmate-be/internal/controller"
	"ai-tripmate-be/internal/pkg/logger"
	"ai-tripmate-be/internal/service"
	"ai-tripmate-be/pkg/agent"
	"ai-tripmate-be/pkg/agent/tools"
	"ai-tripmate-be/pkg/embedding"
	"ai-tripmate-be/pkg/embedding/jina"
	"ai-tripmate-be/pkg/identity"
	identityGoogle "ai-tripmate-be/pkg/identity/google"
	"ai-tripmate-be/pkg/inference"
	"ai-tripmate-be/pkg/llm/factory"
	pktNats "ai-tripmate-be/pkg/nats"
	"ai-tripmate-be/pkg/retrieval"
	"ai-tripmate-be/pkg/session"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	// Controllers
	RetrievalController controller.IRetrievalController
	ChatController      controller.IChatController
	AuthController      controller.IAuthController
	OAuthController     controller.IOAuthController
	TravelController    controller.ITravelController

	// Shared infrastructure the server wires into middleware
	SessionManager *session.Manager
	Redis          *redis.Client

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Exposed for shutdown
	SysLogger logger.ILogger
	NatsPub   *pktNats.Publisher
}

func NewContainer(cfg *config.Config) *Container {
	isProd := cfg.App.Environment == "production"

	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, isProd)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// Initialize Embedding Provider based on Config
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaEmbedModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaEmbedModel)
	} else if cfg.Ai.EmbeddingProvider == "jina" {
		embeddingProvider = jina.NewJinaProvider(cfg.Keys.Jina)
		log.Printf("[INFO] Using Embedding Provider: JINA AI")
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	// Initialize LLM Provider based on Config
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.GoogleGemini,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// Direct backend for the fallback path
	backend, err := inference.NewBackend(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.GeminiAPIURL,
		cfg.Keys.GoogleGemini,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize inference backend: %v", err)
	}

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis
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

	// 3. Retrieval pipeline
	index := retrieval.NewIndex()
	pipelineLogger := log.New(os.Stdout, "", log.LstdFlags)
	augmenter := retrieval.NewAugmenter(embeddingProvider, index, cfg.Retrieval.TopK, pipelineLogger)

	// Agent with its fixed tool set
	registry := buildToolRegistry()
	inferenceAgent := agent.New(registry, llmProvider, pipelineLogger)
	router := inference.NewRouter(inferenceAgent, backend, pipelineLogger)

	// Identity provider + session credentials
	var identityProvider identity.Provider = identityGoogle.NewProvider(
		cfg.Auth.GoogleClientID,
		cfg.Auth.FirebaseAPIKey,
	)
	sessionManager := session.NewManager(cfg.Auth.SessionSecret)

	// 4. Services
	publisherService := service.NewPublisherService(cfg.Keys.IngestedTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.Keys.IngestedTopic, sysLogger)

	retrievalService := service.NewRetrievalService(
		embeddingProvider,
		index,
		publisherService,
		natsPub,
		sysLogger,
		cfg.Retrieval.ChunkSize,
	)
	chatService := service.NewChatService(augmenter, router, sysLogger)
	authService := service.NewAuthService(identityProvider, sessionManager, natsPub, sysLogger)
	oauthService := service.NewOAuthService(cfg.Auth, sessionManager, sysLogger)
	travelService := service.NewTravelService(
		cfg.Keys.Booking,
		cfg.Keys.Skyscanner,
		cfg.Keys.OpenWeatherMap,
		cfg.Keys.Eventbrite,
		cfg.Keys.TripAdvisor,
	)

	// 5. Controllers
	return &Container{
		RetrievalController: controller.NewRetrievalController(retrievalService),
		ChatController:      controller.NewChatController(chatService),
		AuthController:      controller.NewAuthController(authService, isProd),
		OAuthController:     controller.NewOAuthController(oauthService, isProd),
		TravelController:    controller.NewTravelController(travelService),

		SessionManager: sessionManager,
		Redis:          rdb,

		ConsumerService: consumerService,

		SysLogger: sysLogger,
		NatsPub:   natsPub,
	}
}

func buildToolRegistry() *agent.Registry {
	dateTool := tools.NewDateTimeTool()

	var registry *agent.Registry
	capabilities := tools.NewCapabilitiesTool(func() []string {
		var lines []string
		for _, t := range registry.Tools() {
			lines = append(lines, t.Name()+": "+t.Description())
		}
		return lines
	})

	registry = agent.NewRegistry(dateTool, capabilities)
	return registry
}
