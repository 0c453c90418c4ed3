package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/kraftflix/movie-api/internal/api/metrics"
	"github.com/kraftflix/movie-api/internal/core/domain"
	"github.com/kraftflix/movie-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	writeTimeout   = 5 * time.Second
)

// Dispatcher writes audit events in the background. Events are sharded by
// username so each user's trail is persisted in order.
type Dispatcher struct {
	workers []chan domain.AuthEvent
	repo    ports.AuthEventRepository
	log     zerolog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, repo ports.AuthEventRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.AuthEvent, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuthEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers exit once Stop has closed
// their channel and the remaining events are written.
func (d *Dispatcher) Start() {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(i, ch)
	}
}

// Publish hands an event to the worker responsible for its username. It never
// blocks: when the worker queue is full or the dispatcher is stopped the event
// is dropped and Publish returns false.
func (d *Dispatcher) Publish(event domain.AuthEvent) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return false
	}

	idx := d.shardIndex(event.Username)
	select {
	case d.workers[idx] <- event:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
		return true
	default:
		metrics.AuditEventsDroppedTotal.Inc()
		return false
	}
}

// Stop closes the queues and waits for pending events to be written or for
// ctx to expire, whichever comes first.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		for _, ch := range d.workers {
			close(ch)
		}
	}
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

// shardIndex maps a username deterministically to a worker index.
func (d *Dispatcher) shardIndex(username string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(username))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(id int, ch <-chan domain.AuthEvent) {
	defer d.wg.Done()
	label := strconv.Itoa(id)

	for event := range ch {
		metrics.AuditQueueDepth.WithLabelValues(label).Set(float64(len(ch)))

		start := time.Now()
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		err := d.repo.Insert(ctx, &event)
		cancel()

		if err != nil {
			metrics.AuditWriteDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
			d.log.Error().Err(err).
				Str("type", string(event.Type)).
				Str("username", event.Username).
				Int("worker_id", id).
				Msg("audit event write failed")
			continue
		}
		metrics.AuditWriteDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())
	}
}
