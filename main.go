package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go-shop-api/docs"
	"go-shop-api/src/config"
	"go-shop-api/src/controllers"
	"go-shop-api/src/infrastructure"
	"go-shop-api/src/infrastructure/log"
	"go-shop-api/src/infrastructure/mongo"
	"go-shop-api/src/infrastructure/rabbitmq"
	"go-shop-api/src/services/dlq"
	"go-shop-api/src/services/events"
	"go-shop-api/src/services/inventory"
	"go-shop-api/src/services/notification"
	notificationHandlers "go-shop-api/src/services/notification/handlers"
	"go-shop-api/src/services/order/domain"
	"go-shop-api/src/services/order/domain/persistence"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	fiberSwagger "github.com/swaggo/fiber-swagger"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	configs, err := config.LoadConfig()
	if err != nil {
		log.NewLogger("info").Fatal(ctx, "Failed to load configuration", err)
	}
	logger := log.NewLogger(configs.LogLevel)
	logger.Info(ctx, "Configuration loaded successfully")

	// No retry: the service is useless without its store.
	client, err := mongo.NewClient(ctx, configs)
	if err != nil {
		logger.Fatal(ctx, "Failed to connect to MongoDB", err)
	}
	logger.Info(ctx, "MongoDB connection successful")
	db := client.Database(configs.MongoDBDatabaseName)

	if err := mongo.EnsureProductIndexes(ctx, db); err != nil {
		logger.Warn(ctx, err.Error())
	}
	if err := mongo.EnsureOrderIndexes(ctx, db); err != nil {
		logger.Warn(ctx, err.Error())
	}

	productRepository := inventory.NewProductRepository(db)
	orderRepository := persistence.NewOrderRepository(db)

	if configs.SeedProducts {
		if err := seedProducts(ctx, productRepository, logger); err != nil {
			logger.Fatal(ctx, "Failed to seed products", err)
		}
	}

	var publisher events.Publisher = events.NopPublisher{}
	var broker *rabbitmq.RabbitMQServiceImpl
	if configs.BrokerEnabled() {
		broker, err = rabbitmq.NewRabbitMQService(configs.RabbitMQHostName, configs.RabbitMQExchange, events.Topics)
		if err != nil {
			logger.Exception(ctx, "RabbitMQ unavailable, order events disabled", err)
		} else {
			defer broker.Close()
			publisher = broker
			logger.Info(ctx, "RabbitMQ connection successful")
		}
	}

	inventoryService := inventory.NewInventoryService(logger, productRepository)
	orderService := domain.NewOrderService(logger, publisher, orderRepository, productRepository)

	if broker != nil {
		notificationService := notification.NewNotificationService(logger)
		eventListener := infrastructure.NewEventListener(broker, logger)
		eventListener.RegisterHandler(events.OrderCreated,
			notificationHandlers.NewOrderCreatedEventHandler(broker, notificationService, logger))
		eventListener.RegisterHandler(events.OrderCreatedDLQ,
			dlq.NewOrderCreatedDLQHandler(persistence.NewDeadLetterRepository(db), logger))

		go eventListener.StartListening(ctx)
		logger.Info(ctx, "Event listeners started successfully")
	}

	app := fiber.New(fiber.Config{
		ServerHeader: "Shop-API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				code = fiberErr.Code
			}
			if code >= fiber.StatusInternalServerError {
				logger.Exception(c.UserContext(), "HTTP request error", err)
				return c.Status(code).JSON(controllers.ErrorResponse{Message: "Server error", Error: err.Error()})
			}
			return c.Status(code).JSON(controllers.ErrorResponse{Message: err.Error()})
		},
	})

	// RequestLogger wraps recover so a panic still gets a logged 500 under its correlation id
	app.Use(controllers.RequestLogger(logger))
	app.Use(cors.New())
	app.Use(recover.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("API is running...")
	})
	app.Get("/api/swagger/*", fiberSwagger.WrapHandler)
	app.Get("/api/healthCheck", func(c *fiber.Ctx) error {
		if err := mongo.Ping(c.UserContext(), client); err != nil {
			logger.Exception(c.UserContext(), "Health check: MongoDB ping failed", err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "unhealthy",
				"error":  "database connection failed",
			})
		}

		if broker != nil && !broker.IsHealthy() {
			logger.Warn(c.UserContext(), "Health check: RabbitMQ connection is unhealthy")
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "unhealthy",
				"error":  "message queue connection failed",
			})
		}

		return c.JSON(fiber.Map{
			"status":    "healthy",
			"broker":    broker != nil,
			"timestamp": time.Now().UTC(),
		})
	})

	controllers.NewInventoryController(inventoryService).Route(app)
	controllers.NewOrderController(orderService).Route(app)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	serverShutdown := make(chan error, 1)
	go func() {
		logger.Info(ctx, "Starting server on "+configs.Address())
		if err := app.Listen(configs.Address()); err != nil {
			serverShutdown <- err
		}
	}()

	select {
	case <-c:
		logger.Info(ctx, "Shutdown signal received, shutting down gracefully...")
	case err := <-serverShutdown:
		logger.Exception(ctx, "Server error occurred", err)
	}

	// stops the event listeners
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Exception(shutdownCtx, "Server shutdown error", err)
	}
	if err := client.Disconnect(shutdownCtx); err != nil {
		logger.Exception(shutdownCtx, "MongoDB disconnect error", err)
	}

	logger.Info(shutdownCtx, "Server shutdown complete")
}

// seedProducts upserts sample products by name, leaving existing ones untouched.
func seedProducts(ctx context.Context, productRepo inventory.ProductRepository, logger log.Logger) error {
	products := []inventory.Product{
		{Name: "Classic Cotton T-Shirt", Category: "Tops", Price: 15, Quantity: 50, Description: "Crew neck, 100% cotton"},
		{Name: "Denim Jacket", Category: "Outerwear", Price: 60, Quantity: 20},
		{Name: "Wool Beanie", Category: "Hats", Price: 12, Quantity: 75},
		{Name: "Running Shoes", Category: "Shoes", Price: 85, Quantity: 30},
		{Name: "Canvas Tote", Category: "Bags", Price: 18, Quantity: 80},
	}

	for _, product := range products {
		if err := productRepo.SeedProduct(ctx, product); err != nil {
			logger.Exception(ctx, "Failed to seed product: "+product.Name, err)
			return err
		}
	}

	logger.Info(ctx, "Products seeded successfully")
	return nil
}
