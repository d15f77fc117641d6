package fcm

import (
	"context"
	"fmt"
	"log"

	"firebase.google.com/go/v4/messaging"
)

// Client sends price alert notifications over Firebase Cloud Messaging.
// A nil messaging client disables sending, so the server runs fine without
// Firebase credentials.
type Client struct {
	client *messaging.Client
}

func NewClient(client *messaging.Client) *Client {
	return &Client{client: client}
}

// IsEnabled returns true if FCM is configured.
func (c *Client) IsEnabled() bool {
	return c != nil && c.client != nil
}

// SendMulticast pushes an alert notification to the given device tokens.
func (c *Client) SendMulticast(ctx context.Context, tokens []string, title, body string, data map[string]string) error {
	if !c.IsEnabled() {
		return fmt.Errorf("FCM client not initialized")
	}
	if len(tokens) == 0 {
		return nil
	}

	message := &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "price_alerts",
				Priority:  messaging.PriorityHigh,
			},
		},
	}

	response, err := c.client.SendEachForMulticast(ctx, message)
	if err != nil {
		return fmt.Errorf("error sending multicast: %w", err)
	}

	log.Printf("Successfully sent %d messages (%d failures)", response.SuccessCount, response.FailureCount)
	return nil
}
