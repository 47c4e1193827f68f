package main

import (
	"log"
	"os"

	"booking-service/internal/database"
	"booking-service/internal/handlers"
	"booking-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found in current directory, trying parent")
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found, using system environment variables")
		}
	}

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}

	// Initialize Database
	database.Connect()
	database.Migrate()
	db := database.DB

	// Redis/Asynq Client
	redisAddr := os.Getenv("REDIS_URL")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})
	defer asynqClient.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: redisAddr})
	defer redisClient.Close()

	// Init Services
	helperService := services.NewHelperService(db)
	azampayService := services.NewAzamPayService(db, helperService)
	notificationService := services.NewNotificationService(asynqClient)

	transactionService := services.NewTransactionService(db, helperService, azampayService, notificationService)
	callbackService := services.NewPaymentCallbackService(db, helperService, azampayService, notificationService, redisClient)
	availabilityService := services.NewAvailabilityService(db)

	// Handlers
	paymentHandler := handlers.NewPaymentHandler(db, transactionService, callbackService, availabilityService)
	walletHandler := handlers.NewWalletHandler(db, transactionService)

	// Initialize Gin
	r := gin.Default()

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Welcome to the booking payment service",
		})
	})

	// Payment intents
	r.POST("/payments/appointments", paymentHandler.CreateAppointmentPayment)
	r.POST("/payments/dedications", paymentHandler.CreateDedicationPayment)
	r.POST("/payments/live-shows", paymentHandler.CreateLiveShowHosting)
	r.POST("/payments/live-shows/:id/attend", paymentHandler.CreateLiveShowAttendance)
	r.POST("/payments/become-star", paymentHandler.CreateBecomeStarPayment)

	// Transaction lifecycle
	r.POST("/transactions/:id/complete", paymentHandler.CompleteTransaction)
	r.POST("/transactions/:id/cancel", paymentHandler.CancelTransaction)
	r.POST("/transactions/:id/refund", paymentHandler.RefundTransaction)
	r.GET("/transactions", walletHandler.ListTransactions)

	// Gateway webhook
	r.POST("/webhooks/azampay", paymentHandler.GatewayCallback)

	// Wallet
	r.GET("/wallets/:userId/balance", walletHandler.GetBalance)
	r.POST("/wallets/adjust", walletHandler.AdminAdjustWallet)

	// Start Cron Schedulers
	callbackService.StartScheduler()
	availabilityService.StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("HTTP Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
