package notifications

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/IBM/sarama"

	"flytau/internal/flights"
	"flytau/internal/orders"
	"flytau/internal/shared/config"
	"flytau/pkg/logger"
)

// KafkaPublisher pushes booking events onto the notification topic. All
// publish methods are best-effort: failures are logged, never returned,
// so the originating transaction is already committed by the time we get
// here and stays committed.
type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	log      *logger.Logger
}

func NewKafkaPublisher(cfg *config.Config, log *logger.Logger) (*KafkaPublisher, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Compression = sarama.CompressionSnappy
	saramaConfig.Producer.Retry.Max = 3
	saramaConfig.Producer.Timeout = 10 * time.Second
	saramaConfig.Producer.Idempotent = true
	saramaConfig.Net.MaxOpenRequests = 1

	// Hash partitioner keeps one recipient's events on one partition
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(cfg.Kafka.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	return &KafkaPublisher{
		producer: producer,
		topic:    cfg.Kafka.Topic,
		log:      log,
	}, nil
}

func (p *KafkaPublisher) PublishOrderConfirmed(ctx context.Context, order *orders.FlightOrder) {
	subject := "Your FlyTAU booking is confirmed"
	body := fmt.Sprintf("Order %s is confirmed. %d seat(s), total %.2f.",
		order.ID, len(order.Tickets), order.TotalPayment)

	notification := NewNotification(EventOrderConfirmed, order.CustomerEmail, subject, body)
	notification.OrderID = order.ID.String()
	notification.FlightID = order.FlightID.String()
	p.publish(ctx, notification)
}

func (p *KafkaPublisher) PublishOrderCanceled(ctx context.Context, order *orders.FlightOrder, refund float64) {
	subject := "Your FlyTAU booking was cancelled"
	body := fmt.Sprintf("Order %s was cancelled. A cancellation fee of %.2f was retained; %.2f was refunded to your account balance.",
		order.ID, order.TotalPayment, refund)

	notification := NewNotification(EventOrderCanceled, order.CustomerEmail, subject, body)
	notification.OrderID = order.ID.String()
	notification.FlightID = order.FlightID.String()
	p.publish(ctx, notification)
}

func (p *KafkaPublisher) PublishFlightCanceled(ctx context.Context, flight *flights.Flight, canceledOrders []flights.CanceledOrder) {
	subject := fmt.Sprintf("Flight %s to %s was cancelled", flight.Origin, flight.Destination)

	for _, order := range canceledOrders {
		body := fmt.Sprintf("Your flight from %s to %s on %s was cancelled by the airline. The full amount of %.2f was refunded to your account balance.",
			flight.Origin, flight.Destination,
			flight.DepartureDatetime.Format("2006-01-02 15:04"), order.Refund)

		notification := NewNotification(EventFlightCanceled, order.CustomerEmail, subject, body)
		notification.OrderID = order.OrderID.String()
		notification.FlightID = flight.ID.String()
		p.publish(ctx, notification)
	}
}

func (p *KafkaPublisher) publish(ctx context.Context, notification *Notification) {
	messageBytes, err := notification.ToJSON()
	if err != nil {
		p.log.WithError(err).ErrorContext(ctx, "failed to marshal notification")
		return
	}

	message := &sarama.ProducerMessage{
		Topic:     p.topic,
		Key:       sarama.StringEncoder(notification.PartitionKey()),
		Value:     sarama.ByteEncoder(messageBytes),
		Timestamp: notification.CreatedAt,
	}

	if _, _, err := p.producer.SendMessage(message); err != nil {
		p.log.WithError(err).ErrorContext(ctx, "failed to publish notification",
			slog.String("type", string(notification.Type)),
			slog.String("recipient", notification.RecipientEmail),
		)
	}
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}
