package notify

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultDelay = time.Second
	queueSize    = 100
)

type queued struct {
	ev  BookingCreated
	due time.Time
}

// Dispatcher publishes each event once its delay has elapsed, on a single
// worker. Events are queued in order so due times never go backwards.
type Dispatcher struct {
	pub   Publisher
	delay time.Duration
	log   *zap.Logger
	now   func() time.Time

	queue chan queued
	stop  chan struct{}
	done  chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(pub Publisher, delay time.Duration, log *zap.Logger) *Dispatcher {
	if delay < 0 {
		delay = 0
	}
	if log == nil {
		log = zap.NewNop()
	}
	d := &Dispatcher{
		pub:   pub,
		delay: delay,
		log:   log,
		now:   time.Now,
		queue: make(chan queued, queueSize),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for q := range d.queue {
		if wait := q.due.Sub(d.now()); wait > 0 {
			t := time.NewTimer(wait)
			select {
			case <-t.C:
			case <-d.stop:
				t.Stop()
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := d.pub.PublishBookingCreated(ctx, q.ev); err != nil {
			d.log.Warn("booking notification failed",
				zap.String("booking_id", q.ev.BookingID.String()),
				zap.Error(err),
			)
		}
		cancel()
	}
}

// Notify schedules ev and returns immediately.
func (d *Dispatcher) Notify(ev BookingCreated) {
	if d == nil {
		return
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return
	}

	select {
	case d.queue <- queued{ev: ev, due: d.now().Add(d.delay)}:
	default:
		d.log.Warn("notification queue full, dropping event",
			zap.String("booking_id", ev.BookingID.String()))
	}
}

// Close flushes pending events without waiting out their delay.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.stop)
	close(d.queue)
	d.mu.Unlock()

	<-d.done
}
