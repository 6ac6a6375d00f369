package state

import "time"

// State identifies a finite-state-machine step used in conversations.
type State string

const (
	// StateIdle indicates there is no active conversation with the user.
	StateIdle State = "idle"
)

// Session stores conversation state and accumulated answers for a user.
type Session struct {
	// ID correlates log lines of one conversation.
	ID        string
	UserID    int64
	State     State
	Answers   map[string]string
	UpdatedAt time.Time
}

// Answer returns the stored answer for field, or "" when absent.
func (s Session) Answer(field string) string {
	return s.Answers[field]
}

func (s Session) clone() Session {
	answers := make(map[string]string, len(s.Answers))
	for k, v := range s.Answers {
		answers[k] = v
	}
	s.Answers = answers
	return s
}

// Manager owns user sessions. Implementations must be safe for concurrent use
// by different users.
type Manager interface {
	// Get returns a copy of the user's session and whether one exists.
	// A missing session reports StateIdle.
	Get(userID int64) (Session, bool)
	// Start replaces any existing session with a fresh one in state st.
	Start(userID int64, st State) Session
	// Advance stores field=value (when field is not empty) and moves the
	// session to st. It returns false when the user has no session.
	Advance(userID int64, field, value string, st State) bool
	// Clear removes the session for a user.
	Clear(userID int64)
	// Len reports the number of live sessions.
	Len() int
}
