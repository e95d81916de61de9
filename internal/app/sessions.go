package app

import (
	"sync"
	"time"

	"finaxis-assistant/internal/core"
)

const draftTTL = 30 * time.Minute

// draftSessions holds one document draft per conversational session. A
// session processes one utterance at a time — the busy flag is the
// server-side mirror of "input disabled while PROCESSING".
type draftSessions struct {
	mu       sync.Mutex
	sessions map[string]*draftSession
}

type draftSession struct {
	draft     core.DocumentDraft
	busy      bool
	updatedAt time.Time
}

func newDraftSessions() *draftSessions {
	return &draftSessions{sessions: make(map[string]*draftSession)}
}

// acquire returns the session's draft and marks it busy. ok is false when
// the session is already processing an utterance.
func (s *draftSessions) acquire(id string) (core.DocumentDraft, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeLocked()

	sess, exists := s.sessions[id]
	if !exists {
		sess = &draftSession{draft: core.NewDraft()}
		s.sessions[id] = sess
	}
	if sess.busy {
		return sess.draft, false
	}
	sess.busy = true
	sess.updatedAt = time.Now()
	return sess.draft, true
}

// release stores the new draft and clears the busy flag.
func (s *draftSessions) release(id string, draft core.DocumentDraft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, exists := s.sessions[id]
	if !exists {
		return
	}
	sess.draft = draft
	sess.busy = false
	sess.updatedAt = time.Now()
}

// get returns the current draft without acquiring it. Busy sessions report
// StepProcessing so the caller can disable input.
func (s *draftSessions) get(id string) core.DocumentDraft {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeLocked()

	sess, exists := s.sessions[id]
	if !exists {
		return core.NewDraft()
	}
	draft := sess.draft
	if sess.busy {
		draft.Step = core.StepProcessing
	}
	return draft
}

// reset replaces the session's draft with a fresh IDLE one.
func (s *draftSessions) reset(id string) core.DocumentDraft {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft := core.NewDraft()
	s.sessions[id] = &draftSession{draft: draft, updatedAt: time.Now()}
	return draft
}

// purgeLocked evicts sessions idle past the TTL. Callers hold the mutex.
func (s *draftSessions) purgeLocked() {
	cutoff := time.Now().Add(-draftTTL)
	for id, sess := range s.sessions {
		if !sess.busy && sess.updatedAt.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}
