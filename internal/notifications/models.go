package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventType identifies what happened to the booking behind a notification.
type EventType string

const (
	EventOrderConfirmed EventType = "order_confirmed"
	EventOrderCanceled  EventType = "order_canceled"
	EventFlightCanceled EventType = "flight_canceled"
)

// Notification is the message carried over the broker. Recipient email is
// the partition key so one customer's notifications stay ordered.
type Notification struct {
	ID             string    `json:"id"`
	Type           EventType `json:"type"`
	RecipientEmail string    `json:"recipient_email"`
	Subject        string    `json:"subject"`
	Body           string    `json:"body"`
	OrderID        string    `json:"order_id,omitempty"`
	FlightID       string    `json:"flight_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func NewNotification(eventType EventType, recipient, subject, body string) *Notification {
	return &Notification{
		ID:             uuid.New().String(),
		Type:           eventType,
		RecipientEmail: recipient,
		Subject:        subject,
		Body:           body,
		CreatedAt:      time.Now().UTC(),
	}
}

func (n *Notification) ToJSON() ([]byte, error) {
	return json.Marshal(n)
}

func (n *Notification) PartitionKey() string {
	return n.RecipientEmail
}
