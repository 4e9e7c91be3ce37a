package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/lenshive/admin-console/internal/api/metrics"
	"github.com/lenshive/admin-console/internal/core/domain"
	"github.com/lenshive/admin-console/internal/core/ports"
)

const (
	defaultWorkers = 2
	defaultBuffer  = 256
	insertTimeout  = 5 * time.Second
)

// Dispatcher writes journal entries in the background. Entries for the same
// entity always land on the same worker, so their order is kept. It
// implements ports.Journal.
type Dispatcher struct {
	workers []chan domain.JournalEntry
	repo    ports.JournalRepository
	log     zerolog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher creates numWorkers sharded workers with buffer slots each.
// Non-positive values fall back to the defaults.
func NewDispatcher(numWorkers, buffer int, repo ports.JournalRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	d := &Dispatcher{
		workers: make([]chan domain.JournalEntry, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.JournalEntry, buffer)
	}
	return d
}

// Start launches the workers. ctx bounds every insert; Close drains.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Record queues entry without blocking. When the worker's buffer is full the
// entry is dropped and logged.
func (d *Dispatcher) Record(entry domain.JournalEntry) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.log.Warn().Str("resource", entry.Resource).Str("action", entry.Action).Msg("journal closed, entry dropped")
		return
	}

	idx := d.shardIndex(entry.Resource + "/" + entry.EntityID)
	select {
	case d.workers[idx] <- entry:
		metrics.JournalQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		d.log.Warn().
			Str("resource", entry.Resource).
			Str("action", entry.Action).
			Int("worker_id", idx).
			Msg("journal queue full, entry dropped")
	}
}

// Recent reads straight from the repository.
func (d *Dispatcher) Recent(ctx context.Context, limit int) ([]domain.JournalEntry, error) {
	return d.repo.Recent(ctx, limit)
}

// Close stops accepting entries and waits until queued ones are written.
func (d *Dispatcher) Close() {
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

func (d *Dispatcher) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.JournalEntry) {
	defer d.wg.Done()
	label := strconv.Itoa(id)
	for entry := range ch {
		metrics.JournalQueueDepth.WithLabelValues(label).Set(float64(len(ch)))

		insertCtx, cancel := context.WithTimeout(ctx, insertTimeout)
		err := d.repo.Insert(insertCtx, &entry)
		cancel()
		if err != nil {
			d.log.Error().Err(err).
				Str("resource", entry.Resource).
				Str("action", entry.Action).
				Str("entity_id", entry.EntityID).
				Int("worker_id", id).
				Msg("journal write failed")
		}
	}
}
