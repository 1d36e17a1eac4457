package collectortest

import "sync"

// Delivery is one envelope accepted by a receiver, with the fields the
// collector contract cares about pulled out for assertions.
type Delivery struct {
	Port           int
	Body           []byte
	TimeUnixNano   int64
	SeverityNumber int
	SeverityText   string
	Record         string // the machine-rendered line carried in body.stringValue
}

// Store collects deliveries accepted by one or more receivers.
type Store struct {
	mu         sync.RWMutex
	deliveries []Delivery
}

// NewStore creates an empty delivery store.
func NewStore() *Store {
	return &Store{}
}

// Add records an accepted delivery.
func (s *Store) Add(d Delivery) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deliveries = append(s.deliveries, d)
}

// List returns a copy of everything accepted so far.
func (s *Store) List() []Delivery {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Delivery, len(s.deliveries))
	copy(out, s.deliveries)
	return out
}

// Len returns the number of accepted deliveries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.deliveries)
}
