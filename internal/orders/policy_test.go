package orders

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMeetsCancellationLead(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("customer lead of 36 hours", func(t *testing.T) {
		lead := 36 * time.Hour

		assert.False(t, MeetsCancellationLead(now.Add(35*time.Hour+59*time.Minute), now, lead))
		assert.True(t, MeetsCancellationLead(now.Add(36*time.Hour), now, lead))
		assert.True(t, MeetsCancellationLead(now.Add(40*time.Hour), now, lead))
	})

	t.Run("company lead of 72 hours", func(t *testing.T) {
		lead := 72 * time.Hour

		assert.False(t, MeetsCancellationLead(now.Add(71*time.Hour+59*time.Minute), now, lead))
		assert.True(t, MeetsCancellationLead(now.Add(72*time.Hour), now, lead))
	})

	t.Run("departed flight never qualifies", func(t *testing.T) {
		assert.False(t, MeetsCancellationLead(now.Add(-time.Hour), now, 36*time.Hour))
	})
}

func TestCancellationBreakdown(t *testing.T) {
	fee, refund := CancellationBreakdown(1000, 0.05)
	assert.InDelta(t, 50.0, fee, 1e-9)
	assert.InDelta(t, 950.0, refund, 1e-9)
	assert.InDelta(t, 1000.0, fee+refund, 1e-9)

	fee, refund = CancellationBreakdown(0, 0.05)
	assert.Zero(t, fee)
	assert.Zero(t, refund)
}
