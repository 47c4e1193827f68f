package worker

import (
	"encoding/json"

	"booking-service/internal/consumers"

	"github.com/hibiken/asynq"
)

// Task Types
const (
	TypeNotification = "notification"
)

func NewNotificationTask(payload consumers.NotificationDTO) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeNotification, data), nil
}
