package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/IBM/sarama"

	"flytau/internal/shared/config"
	"flytau/pkg/logger"
)

const (
	consumerMaxRetries   = 3
	consumerRetryBackoff = time.Second
)

// KafkaConsumer pulls notifications off the broker and hands them to the
// email service. Workers share one consumer group so notifications are
// delivered once across instances.
type KafkaConsumer struct {
	consumerGroup sarama.ConsumerGroup
	topics        []string
	emailService  EmailService
	log           *logger.Logger
	cancel        context.CancelFunc
}

func NewKafkaConsumer(cfg *config.Config, emailService EmailService, log *logger.Logger) (*KafkaConsumer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Consumer.Group.Session.Timeout = 30 * time.Second
	saramaConfig.Consumer.Group.Heartbeat.Interval = 3 * time.Second
	saramaConfig.Consumer.Return.Errors = true
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	saramaConfig.Consumer.Offsets.AutoCommit.Enable = true
	saramaConfig.Consumer.Offsets.AutoCommit.Interval = time.Second

	consumerGroup, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.Kafka.GroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	return &KafkaConsumer{
		consumerGroup: consumerGroup,
		topics:        []string{cfg.Kafka.Topic},
		emailService:  emailService,
		log:           log,
	}, nil
}

func (c *KafkaConsumer) Start(ctx context.Context, numWorkers int) {
	ctx, c.cancel = context.WithCancel(ctx)

	go c.handleErrors()

	for i := 0; i < numWorkers; i++ {
		go c.runWorker(ctx, i)
	}
	c.log.Info("notification consumer workers started", slog.Int("workers", numWorkers))
}

func (c *KafkaConsumer) runWorker(ctx context.Context, workerID int) {
	handler := &consumerGroupHandler{
		emailService: c.emailService,
		log:          c.log,
		workerID:     workerID,
	}

	for {
		select {
		case <-ctx.Done():
			return
		default:
			if err := c.consumerGroup.Consume(ctx, c.topics, handler); err != nil {
				c.log.WithError(err).Error("consumer worker error", slog.Int("worker", workerID))
				time.Sleep(time.Second)
			}
		}
	}
}

func (c *KafkaConsumer) handleErrors() {
	for err := range c.consumerGroup.Errors() {
		c.log.WithError(err).Error("consumer group error")
	}
}

func (c *KafkaConsumer) Stop() error {
	if c.cancel != nil {
		c.cancel()
	}
	if err := c.consumerGroup.Close(); err != nil {
		return fmt.Errorf("failed to close consumer group: %w", err)
	}
	return nil
}

type consumerGroupHandler struct {
	emailService EmailService
	log          *logger.Logger
	workerID     int
}

func (h *consumerGroupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *consumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *consumerGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message := <-claim.Messages():
			if message == nil {
				return nil
			}
			if err := h.processMessage(session.Context(), message); err != nil {
				h.log.WithError(err).Error("failed to process notification",
					slog.Int("worker", h.workerID),
					slog.Int64("offset", message.Offset),
				)
			}
			// Mark regardless: a notification that exhausted its retries
			// is dropped, not redelivered forever.
			session.MarkMessage(message, "")

		case <-session.Context().Done():
			return nil
		}
	}
}

func (h *consumerGroupHandler) processMessage(ctx context.Context, message *sarama.ConsumerMessage) error {
	var notification Notification
	if err := json.Unmarshal(message.Value, &notification); err != nil {
		return fmt.Errorf("failed to unmarshal notification: %w", err)
	}
	return h.sendWithRetry(ctx, &notification)
}

func (h *consumerGroupHandler) sendWithRetry(ctx context.Context, notification *Notification) error {
	var lastErr error
	for attempt := 0; attempt <= consumerMaxRetries; attempt++ {
		if lastErr = h.emailService.SendNotification(ctx, notification); lastErr == nil {
			return nil
		}
		if attempt == consumerMaxRetries {
			break
		}

		delay := consumerRetryBackoff * time.Duration(1<<attempt)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return lastErr
}
