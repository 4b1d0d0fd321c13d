package worker

// Signal coalesces wake-up requests for the dispatcher. Notify never blocks.
type Signal struct {
	ch chan struct{}
}

// NewSignal constructs a Signal with a single pending slot.
func NewSignal() *Signal {
	return &Signal{ch: make(chan struct{}, 1)}
}

// Notify asks the dispatcher to poll now.
func (s *Signal) Notify() {
	select {
	case s.ch <- struct{}{}:
	default:
	}
}

// C is readable while a wake-up is pending.
func (s *Signal) C() <-chan struct{} {
	return s.ch
}
