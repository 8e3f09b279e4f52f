package bootstrap

import (
	"log"

	"ai-docchat-be/internal/config"
	"ai-docchat-be/internal/controller"
	"ai-docchat-be/internal/pkg/logger"
	"ai-docchat-be/internal/repository/memory"
	"ai-docchat-be/internal/repository/unitofwork"
	"ai-docchat-be/internal/service"
	"ai-docchat-be/pkg/embedding"
	"ai-docchat-be/pkg/ingest"
	"ai-docchat-be/pkg/llm"
	"ai-docchat-be/pkg/llm/gemini"
	"ai-docchat-be/pkg/llm/ollama"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController  controller.IAuthController
	ChatController  controller.IChatController
	AdminController controller.IAdminController

	// Background services (run by main.go)
	IngestConsumer *ingest.Consumer

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// Embedding provider
	var embeddingProvider embedding.Provider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
		log.Printf("[INFO] Using embedding provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Ai.GeminiApiKey)
		log.Printf("[INFO] Using embedding provider: GEMINI")
	}

	// LLM provider
	var llmProvider llm.LLMProvider
	if cfg.Ai.LLMProvider == "ollama" {
		llmProvider = ollama.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.LLMModel)
	} else {
		llmProvider = gemini.NewGeminiProvider(cfg.Ai.GeminiApiKey, cfg.Ai.LLMModel)
	}
	log.Printf("[INFO] Using LLM provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// In-memory conversation state
	conversationState := memory.NewConversationState()

	// Ingestion pipeline
	ingestPublisher := ingest.NewPublisher(pubSub, cfg.App.IngestTopic)
	ingestConsumer := ingest.NewConsumer(pubSub, cfg.App.IngestTopic, uowFactory, embeddingProvider, sysLogger)

	// Services
	authService := service.NewAuthService(
		uowFactory,
		cfg.Auth.JwtSecret,
		cfg.Auth.TokenTTLHours,
		cfg.Session.GhostTTLHours,
		sysLogger,
	)
	chatService := service.NewChatService(
		uowFactory,
		embeddingProvider,
		llmProvider,
		conversationState,
		cfg.Session.GhostTTLHours,
		sysLogger,
	)
	adminService := service.NewAdminService(
		uowFactory,
		ingestPublisher,
		cfg.Session.GhostTTLHours,
		sysLogger,
	)

	// Controllers
	authController := controller.NewAuthController(authService, cfg.Auth.JwtSecret)
	chatController := controller.NewChatController(chatService, cfg.Auth.JwtSecret)
	adminController := controller.NewAdminController(adminService, authService, cfg.Auth.JwtSecret)

	return &Container{
		AuthController:  authController,
		ChatController:  chatController,
		AdminController: adminController,
		IngestConsumer:  ingestConsumer,
		Logger:          sysLogger,
	}
}
