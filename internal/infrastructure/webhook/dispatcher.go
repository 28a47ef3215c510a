package webhook

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultTimeout bounds a single delivery when none is configured
const DefaultTimeout = 5 * time.Second

// Dispatcher fires notifications in the background.
// Callers never wait on delivery and never see its outcome; failures are logged only.
type Dispatcher struct {
	deliverer Deliverer
	timeout   time.Duration

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func NewDispatcher(deliverer Deliverer, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Dispatcher{
		deliverer: deliverer,
		timeout:   timeout,
	}
}

// Dispatch starts one detached delivery attempt and returns immediately.
// After Shutdown it drops the notification.
func (d *Dispatcher) Dispatch(n Notification) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		log.Warn().Str("url", n.URL).Str("event", n.Payload.Event).Msg("webhook dropped: dispatcher closed")
		return
	}
	d.wg.Add(1)
	d.mu.Unlock()

	go func() {
		defer d.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Str("url", n.URL).Msg("webhook delivery panicked")
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if err := d.deliverer.Deliver(ctx, n); err != nil {
			log.Warn().
				Err(err).
				Str("url", n.URL).
				Str("event", n.Payload.Event).
				Str("news_id", n.Payload.Data.NewsID).
				Msg("webhook delivery failed")
			return
		}

		log.Debug().Str("url", n.URL).Str("event", n.Payload.Event).Msg("webhook delivered")
	}()
}

// Shutdown stops accepting notifications and waits for in-flight ones
// until ctx is done. Returns ctx.Err() if the grace period ran out.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
