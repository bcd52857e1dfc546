package events

import (
	"time"

	"github.com/google/uuid"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "ASSISTANT_MESSAGE_SENT").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the generic implementation used by publishers.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

const (
	TypeThreadCreated = "ASSISTANT_THREAD_CREATED"
	TypeMessageSent   = "ASSISTANT_MESSAGE_SENT"
	TypeChatCleared   = "ASSISTANT_CHAT_CLEARED"
)

func NewThreadCreated(userId, threadId uuid.UUID, title string) Event {
	return BaseEvent{
		Type: TypeThreadCreated,
		Data: map[string]interface{}{
			"user_id":   userId.String(),
			"thread_id": threadId.String(),
			"title":     title,
		},
		OccurredAt: time.Now(),
	}
}

func NewMessageSent(userId, threadId uuid.UUID, topic string, arabic bool) Event {
	return BaseEvent{
		Type: TypeMessageSent,
		Data: map[string]interface{}{
			"user_id":   userId.String(),
			"thread_id": threadId.String(),
			"topic":     topic,
			"arabic":    arabic,
		},
		OccurredAt: time.Now(),
	}
}

func NewChatCleared(userId, threadId uuid.UUID) Event {
	return BaseEvent{
		Type: TypeChatCleared,
		Data: map[string]interface{}{
			"user_id":   userId.String(),
			"thread_id": threadId.String(),
		},
		OccurredAt: time.Now(),
	}
}
