package bootstrap

import (
	"context"
	"log"

	"sahby-assistant-be/internal/config"
	"sahby-assistant-be/internal/controller"
	"sahby-assistant-be/internal/handler"
	"sahby-assistant-be/internal/pkg/logger"
	"sahby-assistant-be/internal/pkg/mailer"
	"sahby-assistant-be/internal/repository/memory"
	"sahby-assistant-be/internal/repository/unitofwork"
	"sahby-assistant-be/internal/repository/watch"
	"sahby-assistant-be/internal/service"
	"sahby-assistant-be/internal/websocket"
	"sahby-assistant-be/pkg/assistant/replier"

	pktNats "sahby-assistant-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AssistantController controller.IAssistantController
	DraftController     controller.IDraftController

	// WebSockets & Streaming
	StreamHandler *handler.StreamHandler
	WebSocketHub  *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
		cfg.SMTP.SupportEmail,
	)

	// 2. Change Bus
	// In-process pub/sub carrying committed conversation changes to the
	// watcher subscriptions.
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// In-Memory Session Storage
	sessionRepo := memory.NewSessionRepository()

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
		rdb = nil
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/stream.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Services
	assistantReplier := replier.New(replier.DefaultCatalog())
	assistantService := service.NewAssistantService(
		uowFactory,
		sessionRepo,
		assistantReplier,
		pubSub,
		wsHub,
		natsPub,
		emailService,
		sysLogger,
	)
	draftService := service.NewDraftService(uowFactory)

	conversationWatcher := watch.NewWatcher(uowFactory, pubSub, sysLogger)

	// 4. Controllers & Handlers
	assistantController := controller.NewAssistantController(assistantService)
	draftController := controller.NewDraftController(draftService)
	streamHandler := handler.NewStreamHandler(assistantService, conversationWatcher, wsHub, sysLogger)

	return &Container{
		AssistantController: assistantController,
		DraftController:     draftController,
		StreamHandler:       streamHandler,
		WebSocketHub:        wsHub,
	}
}
