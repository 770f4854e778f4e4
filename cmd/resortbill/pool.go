package main

import (
	"fmt"
	"runtime"
	"sync"

	resortbill "github.com/alnah/go-resortbill"
)

// Pool abstracts exporter pool operations for testability.
type Pool interface {
	Acquire() (BillExporter, error)
	Release(BillExporter)
	Size() int
	Close() error
}

// ExporterPool hands out exporters for parallel rendering. Each exporter has
// its own browser. Exporters are created lazily on first acquire to avoid
// launching browsers that are never used.
type ExporterPool struct {
	size      int
	newFn     ExporterFactory
	opts      []resortbill.Option
	exporters []BillExporter
	sem       chan BillExporter
	mu        sync.Mutex
	created   int
	closed    bool
}

// Compile-time check that ExporterPool implements Pool.
var _ Pool = (*ExporterPool)(nil)

// NewExporterPool creates a pool with capacity for n exporters built by
// newFn with opts.
func NewExporterPool(n int, newFn ExporterFactory, opts ...resortbill.Option) *ExporterPool {
	if n < 1 {
		n = 1
	}
	return &ExporterPool{
		size:      n,
		newFn:     newFn,
		opts:      opts,
		exporters: make([]BillExporter, 0, n),
		sem:       make(chan BillExporter, n),
	}
}

// Acquire gets an exporter from the pool, creating one if needed.
// Blocks if all exporters are in use.
func (p *ExporterPool) Acquire() (BillExporter, error) {
	select {
	case exp := <-p.sem:
		return exp, nil
	default:
	}

	p.mu.Lock()
	if p.created < p.size {
		p.created++
		p.mu.Unlock()

		exp, err := p.newFn(p.opts...)
		if err != nil {
			p.mu.Lock()
			p.created--
			p.mu.Unlock()
			return nil, fmt.Errorf("%w: %w", ErrExporterInit, err)
		}

		p.mu.Lock()
		p.exporters = append(p.exporters, exp)
		p.mu.Unlock()
		return exp, nil
	}
	p.mu.Unlock()

	return <-p.sem, nil
}

// Release returns an exporter to the pool.
func (p *ExporterPool) Release(exp BillExporter) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.closed {
		p.sem <- exp
	}
}

// Close stops every browser the pool started.
func (p *ExporterPool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.sem)
	exporters := p.exporters
	p.mu.Unlock()

	var lastErr error
	for _, exp := range exporters {
		if err := exp.Close(); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

// Size returns the pool capacity.
func (p *ExporterPool) Size() int {
	return p.size
}

// resolvePoolSize determines the pool size.
// Priority: explicit flag > GOMAXPROCS-based calculation, capped by the
// number of bookings.
func resolvePoolSize(flagWorkers, jobs int) int {
	n := flagWorkers
	if n <= 0 {
		// GOMAXPROCS is adjusted by automaxprocs for containers.
		n = runtime.GOMAXPROCS(0) / 2
		n = max(1, min(n, 4))
	}
	if jobs > 0 && n > jobs {
		n = jobs
	}
	return n
}
