package status

import (
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
)

// AtomicDecimal holds a decimal value behind an atomic pointer
// Zero value is unset; Load reports whether a value was ever stored
type AtomicDecimal struct {
	ptr atomic.Pointer[decimal.Decimal]
}

// Store publishes v; readers never observe a partially written value
func (d *AtomicDecimal) Store(v decimal.Decimal) {
	d.ptr.Store(&v)
}

// Load returns the last stored value and whether one exists
func (d *AtomicDecimal) Load() (decimal.Decimal, bool) {
	if p := d.ptr.Load(); p != nil {
		return *p, true
	}
	return decimal.Zero, false
}

// AtomicDuration is a time.Duration stored as nanoseconds
type AtomicDuration struct {
	ns atomic.Int64
}

func (d *AtomicDuration) Store(v time.Duration) {
	d.ns.Store(int64(v))
}

func (d *AtomicDuration) Load() time.Duration {
	return time.Duration(d.ns.Load())
}
