package session

import (
	"errors"
	"fmt"
	"sync"

	"logsight/internal/analysis"
)

// State is the per-session lifecycle position. Exactly one analysis or
// chat operation may be in flight at a time.
type State string

const (
	StateIdle        State = "idle"
	StateSubmitting  State = "submitting"
	StateResult      State = "result"
	StateFailed      State = "failed"
	StateChatPending State = "chat_pending"
)

// ErrBusy rejects a new operation while another is outstanding.
var ErrBusy = errors.New("session already has an operation in flight")

// Session owns the chat turn sequence and the latest result for one
// investigation. All state lives in this struct; nothing is shared
// across sessions, so one mutex per session is the whole locking
// discipline.
type Session struct {
	ID string

	mu     sync.Mutex
	state  State
	turns  []analysis.ChatTurn
	result *analysis.Result
}

// Snapshot returns a consistent copy of the session for rendering.
func (s *Session) Snapshot() (State, []analysis.ChatTurn, *analysis.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	turns := make([]analysis.ChatTurn, len(s.turns))
	copy(turns, s.turns)
	return s.state, turns, s.result
}

// BeginAnalysis moves the session into Submitting. A session with an
// outstanding operation rejects the new submission.
func (s *Session) BeginAnalysis() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateSubmitting || s.state == StateChatPending {
		return ErrBusy
	}
	s.state = StateSubmitting
	return nil
}

// CompleteAnalysis installs a fresh result. The previous investigation
// is superseded wholesale: the turn sequence restarts, seeded with the
// report summary as the first assistant turn.
func (s *Session) CompleteAnalysis(res *analysis.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateResult
	s.result = res
	s.turns = []analysis.ChatTurn{{Role: analysis.RoleModel, Text: res.Summary}}
}

// FailAnalysis records the failure. Turns from a prior investigation
// stay intact; they are only superseded by a successful analysis.
func (s *Session) FailAnalysis() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateFailed
}

// BeginChat moves the session into ChatPending. Chat requires a result
// to discuss and rejects overlap with any outstanding operation.
func (s *Session) BeginChat() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case StateSubmitting, StateChatPending:
		return ErrBusy
	case StateResult:
		s.state = StateChatPending
		return nil
	default:
		return fmt.Errorf("no analysis result to discuss (session state %s)", s.state)
	}
}

// CompleteChat appends the user message and the reply in one step, so
// the ledger never holds a half-appended exchange.
func (s *Session) CompleteChat(message, reply string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns,
		analysis.ChatTurn{Role: analysis.RoleUser, Text: message},
		analysis.ChatTurn{Role: analysis.RoleModel, Text: reply},
	)
	s.state = StateResult
}

// FailChat returns the session to Result without touching the turns;
// a failed round leaves no partial turn behind. An abandoned call's
// late reply must go through CompleteChat, which is never invoked after
// FailChat for the same round.
func (s *Session) FailChat() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateResult
}

// Turns returns a copy of the current turn sequence.
func (s *Session) Turns() []analysis.ChatTurn {
	s.mu.Lock()
	defer s.mu.Unlock()
	turns := make([]analysis.ChatTurn, len(s.turns))
	copy(turns, s.turns)
	return turns
}
