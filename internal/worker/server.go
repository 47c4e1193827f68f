package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"booking-service/internal/consumers"

	"github.com/hibiken/asynq"
)

type Worker struct {
	Processor *consumers.NotificationProcessor
}

func NewWorker(processor *consumers.NotificationProcessor) *Worker {
	return &Worker{
		Processor: processor,
	}
}

func (w *Worker) HandleNotification(ctx context.Context, t *asynq.Task) error {
	var p consumers.NotificationDTO
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("json.Unmarshal failed: %v: %w", err, asynq.SkipRetry)
	}
	w.Processor.ProcessNotification(p)
	return nil
}

func StartWorker(redisOpt asynq.RedisClientOpt, processor *consumers.NotificationProcessor) {
	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	worker := NewWorker(processor)
	mux := asynq.NewServeMux()

	mux.HandleFunc(TypeNotification, worker.HandleNotification)

	if err := srv.Run(mux); err != nil {
		log.Fatalf("could not run server: %v", err)
	}
}
