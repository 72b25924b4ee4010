package notify

import (
	"context"
	"hash/fnv"
	"time"

	"github.com/rs/zerolog"

	"github.com/travelink/booking-api/internal/core/ports"
)

const (
	defaultWorkers  = 4
	channelBuffer   = 256
	deliveryTimeout = 5 * time.Second
)

// Dispatcher delivers best-effort notifications on a fixed set of workers,
// sharded by recipient key so notifications for one user stay ordered.
// Failures are logged per channel and never reach the enqueuing flow.
type Dispatcher struct {
	workers []chan ports.Notification
	email   ports.EmailSender
	webhook ports.WebhookSender
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, email ports.EmailSender, webhook ports.WebhookSender, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.Notification, numWorkers),
		email:   email,
		webhook: webhook,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.Notification, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a notification to the worker owning its key. Non-blocking up
// to channelBuffer capacity; beyond that the notification is dropped with a
// log line rather than stalling the request.
func (d *Dispatcher) Enqueue(n ports.Notification) {
	select {
	case d.workers[d.shardIndex(n.Key)] <- n:
	default:
		d.log.Warn().Str("key", n.Key).Msg("notification queue full, dropping")
	}
}

func (d *Dispatcher) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.Notification) {
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-ch:
			if !ok {
				return
			}
			d.deliver(ctx, id, n)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, workerID int, n ports.Notification) {
	callCtx, cancel := context.WithTimeout(ctx, deliveryTimeout)
	defer cancel()

	switch {
	case n.Email != nil:
		if err := d.email.SendEmail(callCtx, n.Email.To, n.Email.Subject, n.Email.Body); err != nil {
			d.log.Error().Err(err).
				Str("channel", "email").
				Str("key", n.Key).
				Int("worker_id", workerID).
				Msg("notification delivery failed")
		}
	case n.Webhook != nil:
		if err := d.webhook.SendWebhook(callCtx, n.Webhook.Payload); err != nil {
			d.log.Error().Err(err).
				Str("channel", "webhook").
				Str("key", n.Key).
				Int("worker_id", workerID).
				Msg("notification delivery failed")
		}
	}
}
