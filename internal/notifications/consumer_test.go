package notifications

import (
	"context"
	"errors"
	"testing"

	"flytau/pkg/logger"

	"github.com/stretchr/testify/assert"
)

type flakyEmailService struct {
	failures int
	calls    int
}

func (f *flakyEmailService) SendNotification(ctx context.Context, notification *Notification) error {
	f.calls++
	if f.calls <= f.failures {
		return errors.New("smtp unavailable")
	}
	return nil
}

func TestSendWithRetry(t *testing.T) {
	notification := NewNotification(EventOrderConfirmed, "dana@example.com", "subject", "body")

	t.Run("recovers from transient failures", func(t *testing.T) {
		email := &flakyEmailService{failures: 2}
		handler := &consumerGroupHandler{emailService: email, log: logger.New()}

		err := handler.sendWithRetry(context.Background(), notification)

		assert.NoError(t, err)
		assert.Equal(t, 3, email.calls)
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		email := &flakyEmailService{failures: 10}
		handler := &consumerGroupHandler{emailService: email, log: logger.New()}

		err := handler.sendWithRetry(context.Background(), notification)

		assert.Error(t, err)
		assert.Equal(t, consumerMaxRetries+1, email.calls)
	})
}
