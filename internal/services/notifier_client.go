package services

import (
	"context"
	"fmt"
	"os"
	"time"

	"booking-service/proto/notify"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// NotifierClient talks to the push-notification service. The engine never
// builds push payloads itself; it hands over a semantic event name and a
// target user.
type NotifierClient struct {
	client     notify.NotifierClient
	connection *grpc.ClientConn
}

func NewNotifierClient() (*NotifierClient, error) {
	notifierUrl := os.Getenv("NOTIFIER_SERVICE_URL")
	if notifierUrl == "" {
		notifierUrl = "localhost:5003"
	}

	conn, err := grpc.NewClient(notifierUrl, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to notifier service: %v", err)
	}

	return &NotifierClient{
		client:     notify.NewNotifierClient(conn),
		connection: conn,
	}, nil
}

func (c *NotifierClient) Close() {
	if c.connection != nil {
		c.connection.Close()
	}
}

func (c *NotifierClient) Send(userId int, event, reference string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := c.client.SendNotification(ctx, &notify.NotifyRequest{
		UserId:    int32(userId),
		Event:     event,
		Reference: reference,
	})
	if err != nil {
		return err
	}
	if !res.Success {
		return fmt.Errorf("notifier rejected event %q: %s", event, res.Message)
	}
	return nil
}
