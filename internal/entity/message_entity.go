package entity

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	Id        uuid.UUID
	ThreadId  uuid.UUID
	Role      string
	Content   string
	Meta      *MessageMeta
	CreatedAt time.Time
}

// MessageMeta carries replier diagnostics for assistant-authored messages.
// User messages have no meta.
type MessageMeta struct {
	Topic  string `json:"topic"`
	Arabic bool   `json:"arabic"`
}
