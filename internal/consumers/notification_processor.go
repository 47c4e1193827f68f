package consumers

import (
	"log"

	"booking-service/internal/services"
)

// NotificationDTO mirrors the payload enqueued by services.NotificationService.
type NotificationDTO struct {
	UserId    int    `json:"userId"`
	Event     string `json:"event"`
	Reference string `json:"reference"`
}

type NotificationProcessor struct {
	Notifier *services.NotifierClient
}

func NewNotificationProcessor(notifier *services.NotifierClient) *NotificationProcessor {
	return &NotificationProcessor{Notifier: notifier}
}

// ProcessNotification delivers one queued notification. Delivery failures are
// logged only; the financial state that triggered the notification has
// already converged and must not depend on this succeeding.
func (p *NotificationProcessor) ProcessNotification(data NotificationDTO) {
	if p.Notifier == nil {
		log.Printf("No notifier configured, dropping event %s for user %d", data.Event, data.UserId)
		return
	}
	if err := p.Notifier.Send(data.UserId, data.Event, data.Reference); err != nil {
		log.Printf("Notification delivery failed for user %d event %s: %v", data.UserId, data.Event, err)
	}
}
