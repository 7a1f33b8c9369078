package sinkmock

import (
	"sync"

	"loanledger-backend/internal/domain/loan"
)

// Sink records every emitted event in order.
type Sink struct {
	mu     sync.Mutex
	events []loan.Event
}

func New() *Sink { return &Sink{} }

func (s *Sink) Emit(evt loan.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, evt)
}

func (s *Sink) Events() []loan.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]loan.Event, len(s.events))
	copy(out, s.events)
	return out
}

func (s *Sink) Last() loan.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.events) == 0 {
		return nil
	}
	return s.events[len(s.events)-1]
}
