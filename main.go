package main

import (
	"art-gallery-service/controllers"
	"art-gallery-service/database"
	"art-gallery-service/events"
	"art-gallery-service/gateway"
	"art-gallery-service/logger"
	"art-gallery-service/middleware"
	repositories "art-gallery-service/repository"
	"art-gallery-service/routes"
	"art-gallery-service/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg, err := LoadConfig()
	if err != nil {
		panic("config error: " + err.Error())
	}

	log := logger.New(cfg.Env)
	defer log.Sync()

	db, err := database.Connect(cfg.Postgres, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)

	// Event publishing is optional; the service runs without a broker.
	var publisher *events.Publisher
	if cfg.RabbitMQURL != "" {
		publisher, err = events.NewPublisher(cfg.RabbitMQURL, cfg.EventsExchange, log)
		if err != nil {
			log.Warn("RabbitMQ unavailable, events disabled", zap.Error(err))
			publisher = nil
		} else {
			defer publisher.Close()
		}
	}

	userRepo := repositories.NewGormUserRepository(db)
	artRepo := repositories.NewGormArtPictureRepository(db)
	cartRepo := repositories.NewGormCartRepository(db)
	addressRepo := repositories.NewGormAddressRepository(db)
	orderRepo := repositories.NewGormOrderRepository(db)
	messageRepo := repositories.NewGormMessageRepository(db)
	viewRepo := repositories.NewGormOrderUserViewRepository(db)

	cardGateway := gateway.NewStripeGateway(cfg.StripeSecretKey)
	paypalClient := gateway.NewPayPalClient(cfg.PayPalClientID, cfg.PayPalSecret, cfg.PayPalBaseURL, cfg.PayPalSimulate)

	secret := []byte(cfg.JWTSecret)

	authService := services.NewAuthService(userRepo, secret, log)
	catalogService := services.NewCatalogService(artRepo, log)
	cartService := services.NewCartService(cartRepo, artRepo, log)
	orderService := services.NewOrderService(orderRepo, cartRepo, addressRepo, cardGateway, paypalClient, publisher, log)
	messageService := services.NewMessageService(messageRepo, userRepo, log)
	reportService := services.NewReportService(viewRepo, log)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.PrometheusMiddleware())

	authLimiter := middleware.NewClientLimiter(cfg.AuthRatePerMinute, cfg.AuthRateBurst)

	routes.Register(r, routes.Controllers{
		Auth:    controllers.NewAuthController(authService),
		Art:     controllers.NewArtPictureController(catalogService),
		Cart:    controllers.NewCartController(cartService),
		Order:   controllers.NewOrderController(orderService),
		Message: controllers.NewMessageController(messageService),
		Report:  controllers.NewReportController(reportService),
	}, secret, authLimiter)

	log.Info("Starting server", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server exited", zap.Error(err))
	}
}
