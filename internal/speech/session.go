// Package speech turns a stream of partial transcripts into finalized
// utterances using a silence watchdog.
package speech

import (
	"strings"
	"sync"
	"time"
)

// SilenceTimeout is how long the watchdog waits after the last partial
// transcript before finalizing the utterance. The timer resets on every
// partial, so the user can dictate as long as they keep talking.
const SilenceTimeout = 2 * time.Second

// Session accumulates partial transcripts from a speech source. When no
// partial arrives for the silence timeout, the accumulated text is
// delivered once on Final(). Stop discards the pending watchdog without
// submitting anything.
type Session struct {
	mu      sync.Mutex
	timeout time.Duration
	timer   *time.Timer
	partial string
	final   chan string
	stopped bool
}

// NewSession creates a session with the standard 2 s silence timeout.
func NewSession() *Session {
	return NewSessionWithTimeout(SilenceTimeout)
}

// NewSessionWithTimeout exists for tests; production code uses NewSession.
func NewSessionWithTimeout(timeout time.Duration) *Session {
	return &Session{
		timeout: timeout,
		final:   make(chan string, 1),
	}
}

// AddPartial replaces the accumulated transcript with the latest partial
// (speech recognizers re-emit the whole utterance) and re-arms the
// watchdog.
func (s *Session) AddPartial(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}

	s.partial = text
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.timeout, s.finalize)
}

// Final delivers each finalized utterance. The channel is buffered with one
// slot: a session finalizes at most one utterance per arm of the watchdog.
func (s *Session) Final() <-chan string {
	return s.final
}

// Stop cancels the pending watchdog and discards the accumulated partial.
// Nothing is submitted: stopping capture mid-utterance means the user
// changed their mind.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.partial = ""
}

// Flush finalizes the pending utterance immediately instead of waiting out
// the silence timeout. Used when the input source ends mid-utterance.
func (s *Session) Flush() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()
	s.finalize()
}

func (s *Session) finalize() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}

	text := strings.TrimSpace(s.partial)
	s.partial = ""
	s.timer = nil
	if text == "" {
		return
	}
	select {
	case s.final <- text:
	default:
		// Consumer has not drained the previous utterance; drop rather
		// than block the timer goroutine.
	}
}
