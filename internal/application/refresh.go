package application

import (
	"sync"
	"time"
)

// RefreshState is the state of the manual refresh cycle.
type RefreshState int

const (
	// RefreshIdle means no refresh is in flight.
	RefreshIdle RefreshState = iota
	// Refreshing means a refresh load is in flight.
	Refreshing
	// RefreshCompleted is the brief success state shown before the
	// machine times back to idle.
	RefreshCompleted
)

func (s RefreshState) String() string {
	switch s {
	case Refreshing:
		return "refreshing"
	case RefreshCompleted:
		return "completed"
	default:
		return "idle"
	}
}

// defaultCompleteDelay is how long the completed state is shown.
const defaultCompleteDelay = time.Second

// Refresher is the idle → refreshing → completed → idle machine.
// Beginning a cycle cancels any pending completion timer from the
// previous one so two cycles never race over the visual state.
type Refresher struct {
	mu     sync.Mutex
	state  RefreshState
	timer  *time.Timer
	delay  time.Duration
	notify func(RefreshState)
}

// NewRefresher creates an idle machine. A zero delay selects the
// default completed-state duration.
func NewRefresher(delay time.Duration) *Refresher {
	if delay <= 0 {
		delay = defaultCompleteDelay
	}
	return &Refresher{delay: delay}
}

// SetNotify registers a transition callback. It may fire from the
// completion timer's goroutine; keep it cheap and non-blocking.
func (r *Refresher) SetNotify(fn func(RefreshState)) {
	r.mu.Lock()
	r.notify = fn
	r.mu.Unlock()
}

// State returns the current state.
func (r *Refresher) State() RefreshState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Begin enters the refreshing state, cancelling a pending completion
// timer from a previous cycle.
func (r *Refresher) Begin() {
	r.transition(Refreshing)
}

// Complete enters the completed state and arms the timer that returns
// the machine to idle.
func (r *Refresher) Complete() {
	r.mu.Lock()
	r.stopTimerLocked()
	r.state = RefreshCompleted
	fn := r.notify
	r.timer = time.AfterFunc(r.delay, func() {
		r.mu.Lock()
		// A new cycle may have started while the timer was pending;
		// only the completed state times back to idle.
		if r.state != RefreshCompleted {
			r.mu.Unlock()
			return
		}
		r.state = RefreshIdle
		fn := r.notify
		r.mu.Unlock()
		if fn != nil {
			fn(RefreshIdle)
		}
	})
	r.mu.Unlock()
	if fn != nil {
		fn(RefreshCompleted)
	}
}

// Fail returns the machine directly to idle with no completed state.
func (r *Refresher) Fail() {
	r.transition(RefreshIdle)
}

// Stop cancels any pending timer and resets to idle. Called on surface
// teardown so no dangling callback mutates disposed state.
func (r *Refresher) Stop() {
	r.mu.Lock()
	r.stopTimerLocked()
	r.state = RefreshIdle
	r.mu.Unlock()
}

func (r *Refresher) transition(state RefreshState) {
	r.mu.Lock()
	r.stopTimerLocked()
	r.state = state
	fn := r.notify
	r.mu.Unlock()
	if fn != nil {
		fn(state)
	}
}

func (r *Refresher) stopTimerLocked() {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}
