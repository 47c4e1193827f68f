package services

import (
	"encoding/json"
	"log"

	"github.com/hibiken/asynq"
)

// Task type shared with the worker mux.
const TypeNotification = "notification"

// NotificationService queues "notify user X of event Y" jobs. Delivery is
// fully asynchronous; a failure to enqueue is logged and never propagated, so
// money movement can not be blocked by the notification pipeline.
type NotificationService struct {
	Client *asynq.Client
}

func NewNotificationService(client *asynq.Client) *NotificationService {
	return &NotificationService{Client: client}
}

func (s *NotificationService) Notify(userId int, event, reference string) {
	if s.Client == nil {
		log.Printf("Notification (no queue configured): user=%d event=%s ref=%s", userId, event, reference)
		return
	}

	payload, err := json.Marshal(map[string]interface{}{
		"userId":    userId,
		"event":     event,
		"reference": reference,
	})
	if err != nil {
		log.Printf("Failed to marshal notification payload: %v", err)
		return
	}

	task := asynq.NewTask(TypeNotification, payload)
	if _, err := s.Client.Enqueue(task, asynq.Queue("low")); err != nil {
		log.Printf("Failed to enqueue notification for user %d: %v", userId, err)
	}
}
