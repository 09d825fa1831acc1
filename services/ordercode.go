package services

import (
	"sync"
	"time"
)

// OrderCodeSource issues the order codes sent to the payment gateway. The
// gateway treats the code as a dedup key, so codes must never repeat: codes
// are unix seconds, bumped past the last issued value when two requests land
// within the same second.
type OrderCodeSource struct {
	mu   sync.Mutex
	last int64
}

func NewOrderCodeSource() *OrderCodeSource {
	return &OrderCodeSource{}
}

// Next returns a strictly increasing order code.
func (s *OrderCodeSource) Next() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	code := time.Now().Unix()
	if code <= s.last {
		code = s.last + 1
	}
	s.last = code
	return code
}
