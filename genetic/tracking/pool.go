package tracking

import "sync"

// CollectorPool manages reusable collectors shared by concurrent benchmark workers
type CollectorPool struct {
	collectors []*ConvergenceCollector
	mu         sync.Mutex
}

// NewCollectorPool creates a pool with optional pre-allocation
func NewCollectorPool(prealloc int) *CollectorPool {
	return &CollectorPool{
		collectors: make([]*ConvergenceCollector, 0, prealloc),
	}
}

// Acquire gets a reset collector or creates one
func (p *CollectorPool) Acquire() *ConvergenceCollector {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.collectors) > 0 {
		c := p.collectors[len(p.collectors)-1]
		p.collectors = p.collectors[:len(p.collectors)-1]
		c.Reset()
		return c
	}
	return NewConvergenceCollector()
}

// Release returns a collector to the pool
func (p *CollectorPool) Release(c *ConvergenceCollector) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.collectors = append(p.collectors, c)
}
