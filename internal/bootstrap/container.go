package bootstrap

import (
	"context"
	"log"
	"time"

	"prompttovideo-be/internal/config"
	"prompttovideo-be/internal/controller"
	"prompttovideo-be/internal/handler"
	"prompttovideo-be/internal/pkg/logger"
	"prompttovideo-be/internal/pkg/mailer"
	"prompttovideo-be/internal/repository/implementation"
	"prompttovideo-be/internal/repository/unitofwork"
	"prompttovideo-be/internal/service"
	"prompttovideo-be/internal/websocket"
	"prompttovideo-be/pkg/storage"
	"prompttovideo-be/pkg/veo"

	pktNats "prompttovideo-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const eventTopic = "domain_events"

type Container struct {
	// Controllers
	AuthController      controller.IAuthController
	VideoController     controller.IVideoController
	PaymentController   controller.IPaymentController
	ChatController      controller.IChatController
	ChallengeController controller.IChallengeController
	ProfileController   controller.IProfileController
	AdminController     controller.IAdminController

	// Background services (exposed for the entrypoints to run)
	WorkerService    *service.WorkerService
	ChallengeService service.IChallengeService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
	Redis               *redis.Client
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event bus (in-process domain events)
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS (durable job queue)
	// The queue is load-bearing: accepting a generation we cannot
	// enqueue would charge the user for nothing.
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Fatalf("[FATAL] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Fatalf("[FATAL] Failed to connect to NATS Subscriber: %v", err)
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

	// GCS
	store, err := storage.NewStore(context.Background(), cfg.Storage.BucketName)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize storage: %v", err)
	}

	// Veo
	veoClient, err := veo.NewClient(context.Background(), veo.Config{
		ProjectID:    cfg.Veo.ProjectID,
		Location:     cfg.Veo.Location,
		MockMode:     cfg.Veo.MockMode,
		PollInterval: time.Duration(cfg.Veo.PollInterval) * time.Second,
		PollAttempts: cfg.Veo.PollAttempts,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize Veo client: %v", err)
	}

	// WebSocket hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Services
	publisherService := service.NewPublisherService(eventTopic, pubSub)
	creditService := service.NewCreditService(uowFactory, publisherService, emailService, cfg.Credits.DailyFreeCredits)
	authService := service.NewAuthService(uowFactory, emailService, creditService)

	videoService := service.NewVideoService(
		uowFactory,
		natsPub,
		creditService,
		store,
		cfg.Credits.CostFree,
		cfg.Credits.CostPremium,
		cfg.App.ClientURL,
	)
	paymentService := service.NewPaymentService(
		uowFactory,
		creditService,
		publisherService,
		cfg.Stripe.SecretKey,
		cfg.Stripe.WebhookSecret,
		cfg.App.ClientURL,
	)
	chatService := service.NewChatService(uowFactory, wsHub, publisherService)
	challengeService := service.NewChallengeService(uowFactory, creditService, publisherService)
	profileService := service.NewProfileService(uowFactory, publisherService)
	suggestService := service.NewSuggestService(uowFactory, pubSub, eventTopic, cfg.Keys.GoogleGemini, sysLogger)
	adminService := service.NewAdminService(uowFactory, creditService, sysLogger)

	workerService := service.NewWorkerService(
		uowFactory,
		natsSub,
		veoClient,
		store,
		creditService,
		publisherService,
		emailService,
		sysLogger,
		cfg.Worker.Concurrency,
		cfg.Credits.CostFree,
		cfg.Credits.CostPremium,
		cfg.App.ClientURL,
	)

	// 3.5 Notification system
	notifRepo := implementation.NewNotificationRepository(db)
	notifService := service.NewNotificationService(notifRepo, pubSub, eventTopic, wsHub, wsLogger) // Hub implements NotificationDelivery
	notifService.Start(context.Background())
	suggestService.Start(context.Background())

	notifHandler := handler.NewNotificationHandler(notifService, publisherService, wsHub, wsLogger)

	// 4. Controllers
	return &Container{
		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,
		Redis:               rdb,

		AuthController:      controller.NewAuthController(authService),
		VideoController:     controller.NewVideoController(videoService, suggestService),
		PaymentController:   controller.NewPaymentController(paymentService, creditService),
		ChatController:      controller.NewChatController(chatService),
		ChallengeController: controller.NewChallengeController(challengeService),
		ProfileController:   controller.NewProfileController(profileService),
		AdminController:     controller.NewAdminController(adminService, challengeService),

		WorkerService:    workerService,
		ChallengeService: challengeService,
	}
}
