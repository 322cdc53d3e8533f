package queue

import (
	"context"
	"encoding/binary"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/onevoker/TimeTracker/internal/api/metrics"
	"github.com/onevoker/TimeTracker/internal/core/domain"
	"github.com/onevoker/TimeTracker/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	writeTimeout   = 5 * time.Second
)

// Dispatcher writes activity entries to storage on a fixed set of workers,
// sharded by actor id so one actor's entries are written in order.
type Dispatcher struct {
	workers []chan domain.ActivityEntry
	repo    ports.ActivityRepository
	log     zerolog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, repo ports.ActivityRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.ActivityEntry, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.ActivityEntry, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Writes use a context detached from
// ctx so entries still queued at shutdown are flushed by Stop.
func (d *Dispatcher) Start(ctx context.Context) {
	base := context.WithoutCancel(ctx)
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(base, i, ch)
	}
}

// Record queues entry for its actor's worker. It never blocks: when the
// worker's queue is full the entry is dropped.
func (d *Dispatcher) Record(entry domain.ActivityEntry) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return
	}

	idx := d.shardIndex(entry.ActorID)
	select {
	case d.workers[idx] <- entry:
		metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.ActivityDroppedTotal.Inc()
		d.log.Warn().
			Str("action", entry.Action).
			Int("actor_id", entry.ActorID).
			Int("worker_id", idx).
			Msg("activity queue full, entry dropped")
	}
}

// Stop closes the queues and waits for workers to drain them.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	for _, ch := range d.workers {
		close(ch)
	}
	d.mu.Unlock()

	d.wg.Wait()
}

// shardIndex maps an actor id deterministically to a worker index.
func (d *Dispatcher) shardIndex(actorID int) int {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(actorID))
	h := fnv.New32a()
	_, _ = h.Write(buf[:])
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.ActivityEntry) {
	defer d.wg.Done()
	depth := metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(id))

	for entry := range ch {
		depth.Set(float64(len(ch)))

		writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
		err := d.repo.Insert(writeCtx, &entry)
		cancel()
		if err != nil {
			metrics.ActivityWriteErrorsTotal.Inc()
			d.log.Error().Err(err).
				Str("action", entry.Action).
				Int("worker_id", id).
				Msg("activity write failed")
		}
	}
}
