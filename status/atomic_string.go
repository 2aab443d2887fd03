package status

import (
	"sync/atomic"
	"unicode/utf8"
)

// MaxStringLen bounds stored labels; a canonical uuid is 36 bytes
const MaxStringLen = 40

// AtomicString holds a short label such as a run id or state name
// Zero value is the empty string
type AtomicString struct {
	ptr atomic.Pointer[string]
}

// Store sets the value, cutting it to MaxStringLen bytes on a rune boundary
func (s *AtomicString) Store(val string) {
	if len(val) > MaxStringLen {
		cut := MaxStringLen
		for cut > 0 && !utf8.RuneStart(val[cut]) {
			cut--
		}
		val = val[:cut]
	}
	s.ptr.Store(&val)
}

func (s *AtomicString) Load() string {
	if p := s.ptr.Load(); p != nil {
		return *p
	}
	return ""
}
