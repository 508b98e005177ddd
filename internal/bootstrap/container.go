package bootstrap

import (
	"log"

	"tsai-chat-be/internal/config"
	"tsai-chat-be/internal/controller"
	"tsai-chat-be/internal/pkg/logger"
	"tsai-chat-be/internal/repository/memory"
	"tsai-chat-be/internal/repository/unitofwork"
	"tsai-chat-be/internal/service"
	"tsai-chat-be/pkg/chatbot"
	"tsai-chat-be/pkg/embedding"
	"tsai-chat-be/pkg/rag"
	"tsai-chat-be/pkg/websearch"

	pktNats "tsai-chat-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController    controller.IAuthController
	SessionController controller.ISessionController
	ChatController    controller.IChatController
	UploadController  controller.IUploadController

	// Background services, run by main
	IngestionService service.IIngestionService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// In-process ingestion queue
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// External providers
	embeddingProvider := embedding.NewGeminiProvider(cfg.Keys.GoogleGemini, cfg.Ai.EmbeddingModel)
	chatProvider := chatbot.NewGeminiChatbot(cfg.Keys.GoogleGemini, cfg.Ai.GenerationModel, cfg.Ai.WebGrounding)
	searchProvider := websearch.NewGoogleProvider(cfg.Keys.GoogleSearch, cfg.Keys.GoogleCx)

	// NATS is optional infrastructure; the app runs fine without it.
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	jobRepo := memory.NewJobRepository()
	retriever := rag.NewRetriever(uowFactory, embeddingProvider, sysLogger)

	publisherService := service.NewPublisherService(cfg.App.IngestTopic, pubSub)
	ingestionService := service.NewIngestionService(
		pubSub,
		cfg.App.IngestTopic,
		uowFactory,
		embeddingProvider,
		jobRepo,
		natsPub,
		cfg.Rag.ChunkSize,
		cfg.Rag.ChunkOverlap,
		sysLogger,
	)

	authService := service.NewAuthService(uowFactory, cfg.App.JwtSecret)
	sessionService := service.NewSessionService(uowFactory)
	chatService := service.NewChatService(
		uowFactory,
		retriever,
		searchProvider,
		chatProvider,
		embeddingProvider,
		sysLogger,
		cfg.Rag.TopK,
		cfg.Rag.MaxHistoryTurns,
	)
	uploadService := service.NewUploadService(
		uowFactory,
		publisherService,
		jobRepo,
		cfg.App.UploadDir,
		sysLogger,
	)

	return &Container{
		AuthController:    controller.NewAuthController(authService),
		SessionController: controller.NewSessionController(sessionService, cfg.App.JwtSecret),
		ChatController:    controller.NewChatController(chatService, cfg.App.JwtSecret),
		UploadController:  controller.NewUploadController(uploadService, cfg.App.JwtSecret),

		IngestionService: ingestionService,

		Logger: sysLogger,
	}
}
