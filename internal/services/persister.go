package services

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Persister applies key/value writes on a single background goroutine, in
// the order keys were first queued. Pending writes to the same key collapse
// into the newest value, so the store always converges on the last value
// queued for each key.
type Persister struct {
	store   KeyValueStore
	log     logrus.FieldLogger
	timeout time.Duration

	mu      sync.Mutex
	idle    *sync.Cond
	pending map[string]string
	order   []string
	writing bool
	closed  bool
	failed  int

	wake      chan struct{}
	quit      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

func NewPersister(store KeyValueStore, log logrus.FieldLogger, timeout time.Duration) *Persister {
	p := &Persister{
		store:   store,
		log:     log,
		timeout: timeout,
		pending: make(map[string]string),
		wake:    make(chan struct{}, 1),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	p.idle = sync.NewCond(&p.mu)

	go p.run()

	return p
}

// Enqueue schedules a write and returns immediately.
func (p *Persister) Enqueue(key, value string) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		p.log.WithField("key", key).Warn("persister closed, dropping write")
		return
	}
	if _, queued := p.pending[key]; !queued {
		p.order = append(p.order, key)
	}
	p.pending[key] = value
	p.mu.Unlock()

	select {
	case p.wake <- struct{}{}:
	default:
	}
}

// Flush blocks until every queued write has been attempted.
func (p *Persister) Flush() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for len(p.order) > 0 || p.writing {
		p.idle.Wait()
	}
}

// Close attempts the remaining writes and stops the writer.
func (p *Persister) Close() {
	p.closeOnce.Do(func() {
		p.mu.Lock()
		p.closed = true
		p.mu.Unlock()
		close(p.quit)
	})
	<-p.done
}

// Failed counts writes that returned an error.
func (p *Persister) Failed() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.failed
}

func (p *Persister) run() {
	defer close(p.done)

	for {
		p.drain()

		select {
		case <-p.wake:
		case <-p.quit:
			p.drain()
			return
		}
	}
}

func (p *Persister) drain() {
	for {
		p.mu.Lock()
		if len(p.order) == 0 {
			p.writing = false
			p.idle.Broadcast()
			p.mu.Unlock()
			return
		}
		key := p.order[0]
		p.order = p.order[1:]
		value := p.pending[key]
		delete(p.pending, key)
		p.writing = true
		p.mu.Unlock()

		if err := p.write(key, value); err != nil {
			p.mu.Lock()
			p.failed++
			p.mu.Unlock()

			p.log.WithFields(logrus.Fields{
				"key":   key,
				"error": err,
			}).Error("Failed to persist value")
			continue
		}

		p.log.WithField("key", key).Debug("Persisted value")
	}
}

func (p *Persister) write(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	return p.store.Set(ctx, key, value)
}
