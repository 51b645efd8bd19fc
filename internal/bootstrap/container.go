package bootstrap

import (
	"log"

	"ai-chat-be/internal/config"
	"ai-chat-be/internal/controller"
	"ai-chat-be/internal/pkg/logger"
	"ai-chat-be/internal/pkg/mailer"
	"ai-chat-be/internal/repository/unitofwork"
	"ai-chat-be/internal/service"
	"ai-chat-be/pkg/imagegen/bfl"
	"ai-chat-be/pkg/llm/anthropic"
	"ai-chat-be/pkg/titler"

	pktNats "ai-chat-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

const usageTopic = "usage.events"

type Container struct {
	// Controllers
	AuthController         controller.IAuthController
	UserController         controller.IUserController
	ChatController         controller.IChatController
	SubscriptionController controller.ISubscriptionController
	ImageController        controller.IImageController

	// Background services (exposed for main.go to run)
	ConsumerService service.IConsumerService
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
		cfg.SMTP.Email,
		cfg.SMTP.SenderName,
	)

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// 3. Model providers
	chatProvider := anthropic.NewAnthropicProvider(cfg.Keys.Anthropic, cfg.Ai.ChatModel)
	log.Printf("[INFO] Using chat model: %s", cfg.Ai.ChatModel)

	var titleGen titler.Generator
	if cfg.Keys.OpenAI != "" {
		titleGen = titler.NewOpenAIGenerator(cfg.Keys.OpenAI)
	} else {
		log.Printf("[WARN] OPENAI_API_KEY not set, chat titles will use fallbacks")
	}

	imageClient := bfl.NewClient(cfg.Keys.BFL)

	// 4. Services
	publisherService := service.NewPublisherService(usageTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, usageTopic, sysLogger)

	limitsService := service.NewLimitsService(uowFactory, publisherService)

	authService := service.NewAuthService(uowFactory, emailService, natsPub)
	userService := service.NewUserService(uowFactory)
	chatService := service.NewChatService(uowFactory, limitsService, chatProvider, titleGen, sysLogger)
	subscriptionService := service.NewSubscriptionService(uowFactory, limitsService, natsPub)
	imageService := service.NewImageService(uowFactory, limitsService, chatProvider, imageClient, natsPub, sysLogger)

	// 5. Controllers
	return &Container{
		AuthController:         controller.NewAuthController(authService),
		UserController:         controller.NewUserController(userService),
		ChatController:         controller.NewChatController(chatService),
		SubscriptionController: controller.NewSubscriptionController(subscriptionService),
		ImageController:        controller.NewImageController(imageService),

		ConsumerService: consumerService,
	}
}
