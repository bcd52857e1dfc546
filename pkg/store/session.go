package store

import "github.com/google/uuid"

// Session is the volatile per-user conversation state. It mirrors what the
// mobile client keeps on screen: which thread is open, what is typed in the
// input box, and whether the assistant is composing a reply. Nothing here is
// durable; threads and messages live in Postgres.
type Session struct {
	UserID         uuid.UUID `json:"user_id"`
	ActiveThreadID uuid.UUID `json:"active_thread_id"` // uuid.Nil means no active thread yet
	Draft          string    `json:"draft"`
	AwaitingReply  bool      `json:"awaiting_reply"`
}

func NewSession(userID uuid.UUID) *Session {
	return &Session{UserID: userID}
}
