package sales

import (
	"fmt"
	"sync"
	"time"
)

const (
	SalePrefix  = "SALE"
	DraftPrefix = "DRAFT"
)

// Sequencer issues human-readable numbers like SALE-1718000000000. The
// millisecond suffix is bumped when two numbers land in the same
// millisecond so numbers never repeat within a process.
type Sequencer struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewSequencer(now func() time.Time) *Sequencer {
	if now == nil {
		now = time.Now
	}
	return &Sequencer{now: now}
}

func (s *Sequencer) Next(prefix string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ms := s.now().UnixMilli()
	if ms <= s.last {
		ms = s.last + 1
	}
	s.last = ms
	return fmt.Sprintf("%s-%d", prefix, ms)
}
