package bootstrap

import (
	"context"
	"log"

	"ai-docdraft-be/internal/config"
	"ai-docdraft-be/internal/controller"
	"ai-docdraft-be/internal/pkg/logger"
	"ai-docdraft-be/internal/repository/contract"
	"ai-docdraft-be/internal/repository/memory"
	"ai-docdraft-be/internal/repository/redisrepo"
	"ai-docdraft-be/internal/repository/unitofwork"
	"ai-docdraft-be/internal/service"
	"ai-docdraft-be/pkg/events"
	"ai-docdraft-be/pkg/llm/factory"

	pktNats "ai-docdraft-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController     controller.IChatController
	TemplateController controller.ITemplateController
	DocumentController controller.IDocumentController
	HealthController   controller.IHealthController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
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

	// Initialize LLM Provider based on Config
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.HuggingFaceKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Session Storage (memory by default, Redis for multi-instance deployments)
	var sessionRepo contract.SessionRepository
	if cfg.Session.Backend == "redis" {
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
		sessionRepo = redisrepo.NewSessionRepository(rdb, cfg.Session.TTL)
		log.Printf("[INFO] Using Session Backend: REDIS (ttl=%s)", cfg.Session.TTL)
	} else {
		sessionRepo = memory.NewSessionRepository(cfg.Session.TTL)
		log.Printf("[INFO] Using Session Backend: MEMORY (ttl=%s)", cfg.Session.TTL)
	}

	// 3. Services
	publisherService := service.NewPublisherService(cfg.Topics.DocumentSaved, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Topics.DocumentSaved,
		uowFactory,
		natsPub,
	)

	templateService := service.NewTemplateService(uowFactory)
	documentService := service.NewDocumentService(uowFactory, publisherService, natsPub, sysLogger)
	chatService := service.NewChatService(
		sessionRepo,
		documentService,
		templateService.Catalog(),
		llmProvider,
	)

	// Audit trail: mirror every bus event into the isolated audit log
	if natsSub != nil {
		auditLogger := logger.NewIsolatedLogger("logs/audit.log")
		err := natsSub.Subscribe("events.>", "docdraft-audit", func(_ context.Context, evt events.Event) error {
			auditLogger.Info("audit", evt.EventType(), evt.Payload())
			return nil
		})
		if err != nil {
			log.Printf("[WARN] Failed to start audit subscriber: %v", err)
		}
	}

	// 4. Controllers
	return &Container{
		ChatController:     controller.NewChatController(chatService),
		TemplateController: controller.NewTemplateController(templateService),
		DocumentController: controller.NewDocumentController(documentService),
		HealthController:   controller.NewHealthController(),

		ConsumerService: consumerService,
	}
}
