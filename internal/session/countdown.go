package session

import "time"

// submitDelaySeconds is how long the submit countdown runs before the
// attempt auto-finalizes. The window exists so a stray keypress on the
// submit action can be undone.
const submitDelaySeconds = 1

// tickInterval is the countdown tick period. Tests shorten it.
var tickInterval = time.Second

// countdown tracks a pending auto-finalize.
type countdown struct {
	remaining int
	stop      chan struct{}
}

// RequestSubmit starts the submit countdown. When it expires the attempt
// finalizes and the finalize hook fires. Ignored unless the attempt is
// active, and ignored if a countdown is already running.
func (s *Session) RequestSubmit() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseActive || s.countdown != nil {
		return
	}

	cd := &countdown{
		remaining: submitDelaySeconds,
		stop:      make(chan struct{}),
	}
	s.countdown = cd
	gen := s.generation

	go s.runCountdown(cd, gen)
}

// CancelSubmit cancels a pending submit countdown. Ignored if none is
// running.
func (s *Session) CancelSubmit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopCountdownLocked()
}

// SubmitPending reports whether a submit countdown is running and how
// many seconds remain on it.
func (s *Session) SubmitPending() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.countdown == nil {
		return 0, false
	}
	return s.countdown.remaining, true
}

// stopCountdownLocked tears down the countdown goroutine. Callers hold mu.
func (s *Session) stopCountdownLocked() {
	if s.countdown == nil {
		return
	}
	close(s.countdown.stop)
	s.countdown = nil
}

// runCountdown ticks the countdown down and auto-finalizes at zero. The
// generation check discards ticks that outlive the attempt they belong
// to: if the session was reset or finalized by hand in the meantime, the
// expiry is a no-op.
func (s *Session) runCountdown(cd *countdown, gen int) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-cd.stop:
			return
		case <-ticker.C:
			s.mu.Lock()
			if s.generation != gen || s.countdown != cd {
				s.mu.Unlock()
				return
			}
			cd.remaining--
			if cd.remaining > 0 {
				s.mu.Unlock()
				continue
			}

			s.countdown = nil
			result := s.finalizeLocked()
			hook := s.onFinalize
			s.mu.Unlock()

			if result != nil && hook != nil {
				hook(result)
			}
			return
		}
	}
}
