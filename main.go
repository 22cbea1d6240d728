package main

import (
	"rental-order-service/cart"
	"rental-order-service/controllers"
	"rental-order-service/database"
	"rental-order-service/kafka"
	"rental-order-service/logger"
	"rental-order-service/models"
	"rental-order-service/repository"
	"rental-order-service/routes"
	"rental-order-service/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg, err := LoadConfig()
	if err != nil {
		panic(err)
	}

	logger.Initialize(cfg.Env)
	defer logger.Log.Sync()
	log := logger.Log

	db, err := database.ConnectPostgres(database.PostgresConfig{
		User:     cfg.PostgresUser,
		Password: cfg.PostgresPassword,
		DBName:   cfg.PostgresDB,
		Host:     cfg.PostgresHost,
		Port:     cfg.PostgresPort,
		SSLMode:  cfg.PostgresSSLMode,
		TimeZone: cfg.PostgresTimeZone,
	}, log,
		&models.Product{}, &models.Category{},
		&models.Order{}, &models.OrderItem{},
		&models.PaymentLog{}, &models.CartLine{},
	)
	if err != nil {
		log.Fatal("Database connection failed", zap.Error(err))
	}

	var cartCache cart.Invalidator
	if cfg.RedisURL != "" {
		redisClient, err := database.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Warn("Redis unavailable, cart cache invalidation disabled", zap.Error(err))
		} else {
			cartCache = cart.NewCache(redisClient)
		}
	}

	var producer kafka.ProducerAPI
	if len(cfg.KafkaBrokers) > 0 {
		p := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic, log)
		defer p.Close()
		producer = p
	} else {
		log.Warn("KAFKA_BROKERS not set, order events disabled")
	}

	orderRepo := repository.NewGormOrderRepository(db)
	productRepo := repository.NewGormProductRepository(db)
	paymentRepo := repository.NewGormPaymentLogRepository(db)
	cartRepo := repository.NewGormCartRepository(db)
	categoryRepo := repository.NewGormCategoryRepository(db)

	orderService := services.NewOrderService(db, orderRepo, productRepo, paymentRepo, cartRepo, cartCache, producer, log)
	availabilityService := services.NewAvailabilityService(orderRepo, productRepo, log)
	paymentService := services.NewPaymentService(db, orderRepo, paymentRepo, producer, log)
	catalogService := services.NewCatalogService(productRepo, categoryRepo, log)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	controllers.RegisterValidators()

	r := gin.New()
	r.Use(gin.Recovery())
	routes.Register(r,
		controllers.NewOrderController(orderService),
		controllers.NewAvailabilityController(availabilityService),
		controllers.NewPaymentController(paymentService),
		controllers.NewCatalogController(catalogService),
	)

	log.Info("Starting order service", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server exited", zap.Error(err))
	}
}
