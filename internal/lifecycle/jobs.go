package lifecycle

import (
	"context"
	"log"
	"time"
)

// JobProcessor runs the lifecycle sweep on a fixed interval so statuses stay
// fresh even when no read traffic triggers the opportunistic sweep.
type JobProcessor struct {
	service  Service
	interval time.Duration
	done     chan struct{}
}

func NewJobProcessor(service Service, interval time.Duration) *JobProcessor {
	if interval <= 0 {
		interval = time.Minute
	}
	return &JobProcessor{
		service:  service,
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Start starts the background sweep loop
func (jp *JobProcessor) Start(ctx context.Context) {
	log.Printf("Starting lifecycle sweep job with %v interval", jp.interval)
	go jp.run(ctx)
}

// Stop stops the background sweep loop
func (jp *JobProcessor) Stop() {
	close(jp.done)
	log.Println("Lifecycle sweep job stopped")
}

func (jp *JobProcessor) run(ctx context.Context) {
	ticker := time.NewTicker(jp.interval)
	defer ticker.Stop()

	// Run immediately on startup
	jp.sweep(ctx)

	for {
		select {
		case <-ticker.C:
			jp.sweep(ctx)
		case <-jp.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (jp *JobProcessor) sweep(ctx context.Context) {
	flightsLanded, ordersCompleted, err := jp.service.SweepWithResult(ctx)
	if err != nil {
		return
	}
	if flightsLanded > 0 || ordersCompleted > 0 {
		log.Printf("Lifecycle sweep landed %d flights, completed %d orders", flightsLanded, ordersCompleted)
	}
}
