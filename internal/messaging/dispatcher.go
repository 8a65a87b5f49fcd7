package messaging

import (
	"context"
	"sync"
	"time"

	logrus "github.com/sirupsen/logrus"

	"school_transport/internal/metrics"
)

// Dispatcher runs deliveries in the background. A failed delivery is logged
// and counted, never returned to the caller that queued it.
type Dispatcher struct {
	log     *logrus.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewDispatcher(log *logrus.Logger, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Dispatcher{log: log, timeout: timeout}
}

// Dispatch queues msg on sender and returns immediately.
func (d *Dispatcher) Dispatch(channel string, sender Sender, msg Message) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if err := sender.Send(ctx, msg); err != nil {
			metrics.ResetDeliveriesTotal.WithLabelValues(channel, "failed").Inc()
			d.log.WithError(err).WithField("channel", channel).Error("message delivery failed")
			return
		}
		metrics.ResetDeliveriesTotal.WithLabelValues(channel, "sent").Inc()
		d.log.WithField("channel", channel).Info("message delivered")
	}()
}

// Wait blocks until every queued delivery has finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Drain is Wait bounded by ctx.
func (d *Dispatcher) Drain(ctx context.Context) error {
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
