package sdk

import "sync"

// Subscription is an owned registration handle. Releasing it removes the
// registration; releasing twice is harmless.
type Subscription struct {
	once    sync.Once
	release func()
}

// NewSubscription wraps a release function.
func NewSubscription(release func()) *Subscription {
	return &Subscription{release: release}
}

// Release removes the registration.
func (s *Subscription) Release() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		if s.release != nil {
			s.release()
		}
	})
}

// Subscriptions is an ordered set of owned handles released together.
type Subscriptions struct {
	mu   sync.Mutex
	subs []*Subscription
}

// Add takes ownership of subs.
func (s *Subscriptions) Add(subs ...*Subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, subs...)
}

// Len returns the number of held handles.
func (s *Subscriptions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// ReleaseAll releases every handle in reverse acquisition order.
func (s *Subscriptions) ReleaseAll() {
	s.mu.Lock()
	subs := s.subs
	s.subs = nil
	s.mu.Unlock()

	for i := len(subs) - 1; i >= 0; i-- {
		subs[i].Release()
	}
}
