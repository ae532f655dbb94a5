package bootstrap

import (
	"context"
	"log"

	"college-portal-be/internal/config"
	"college-portal-be/internal/controller"
	"college-portal-be/internal/handler"
	"college-portal-be/internal/pkg/logger"
	"college-portal-be/internal/pkg/mailer"
	"college-portal-be/internal/repository/unitofwork"
	"college-portal-be/internal/service"
	"college-portal-be/internal/websocket"
	"college-portal-be/pkg/llm/gateway"

	pktNats "college-portal-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController     controller.IAuthController
	LiveChatController controller.ILiveChatController
	ChatbotController  controller.IChatbotController
	NoticeController   controller.INoticeController

	// Background services (main.go runs these)
	ArchiverService service.IArchiverService
	SweeperService  service.ISweeperService

	// Realtime
	RealtimeHandler *handler.RealtimeHandler
	WebSocketHub    *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// In-process bus for the chatbot archive pipeline
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)

	// NATS carries the durable live chat events
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis fans websocket frames to sibling instances
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{Addr: cfg.App.RedisURL}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
		rdb = nil
	}

	// WebSocket hub
	wsLogger := logger.NewIsolatedLogger("logs/realtime.log")
	authorizer := service.NewSubscriptionAuthorizer(uowFactory)
	wsHub := websocket.NewHub(authorizer, rdb, wsLogger)
	wsHub.Run(context.Background())

	// Services
	var eventPublisher service.IEventPublisher
	if natsPub != nil {
		eventPublisher = natsPub
	}

	liveChatService := service.NewLiveChatService(uowFactory, eventPublisher, sysLogger)
	authService := service.NewAuthService(uowFactory, cfg.JWT.Secret, cfg.JWT.TokenTTL)
	noticeService := service.NewNoticeService(uowFactory)

	llmProvider := gateway.NewGatewayProvider(cfg.Chatbot.GatewayURL, cfg.Chatbot.APIKey, cfg.Chatbot.Model)
	publisherService := service.NewPublisherService(cfg.Chatbot.ArchiveTopic, pubSub)
	chatbotService := service.NewChatbotService(llmProvider, publisherService, sysLogger)
	archiverService := service.NewArchiverService(pubSub, cfg.Chatbot.ArchiveTopic, uowFactory, sysLogger)

	sweeperService := service.NewSweeperService(
		uowFactory,
		eventPublisher,
		emailService,
		cfg.LiveChat.PendingTTL,
		cfg.LiveChat.SweepInterval,
		sysLogger,
	)

	// Event relay: NATS -> websocket channels
	if natsSub != nil {
		relayService := service.NewRelayService(natsSub, wsHub, wsLogger)
		if err := relayService.Start(); err != nil {
			log.Printf("[WARN] Failed to start event relay: %v", err)
		}
	}

	realtimeHandler := handler.NewRealtimeHandler(wsHub, wsLogger)

	return &Container{
		AuthController:     controller.NewAuthController(authService),
		LiveChatController: controller.NewLiveChatController(liveChatService),
		ChatbotController:  controller.NewChatbotController(chatbotService),
		NoticeController:   controller.NewNoticeController(noticeService),

		ArchiverService: archiverService,
		SweeperService:  sweeperService,

		RealtimeHandler: realtimeHandler,
		WebSocketHub:    wsHub,
	}
}
