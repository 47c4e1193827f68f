package main

import (
	"log"
	"os"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"booking-service/internal/consumers"
	"booking-service/internal/services"
	"booking-service/internal/worker"
)

func main() {
	// Load env
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found in ../../.env, trying .env")
		if err := godotenv.Load(".env"); err != nil {
			log.Println("No .env file found, using system env")
		}
	}

	// Notifier Client
	notifierClient, err := services.NewNotifierClient()
	if err != nil {
		log.Fatalf("Failed to create notifier client: %v", err)
	}
	defer notifierClient.Close()

	// Processor
	processor := consumers.NewNotificationProcessor(notifierClient)

	// Redis
	redisAddr := os.Getenv("REDIS_URL")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisOpt := asynq.RedisClientOpt{Addr: redisAddr}

	log.Println("Starting Asynq Worker...")
	worker.StartWorker(redisOpt, processor)
}
