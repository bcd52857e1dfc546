package dto

import (
	"github.com/google/uuid"
)

// Timestamps are epoch milliseconds to match what the mobile client stores
// and sorts by.

type ThreadResponse struct {
	Id          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	LastMessage *string   `json:"last_message,omitempty"`
	UpdatedAt   int64     `json:"updated_at"`
}

type MessageResponse struct {
	Id        uuid.UUID `json:"id"`
	ThreadId  uuid.UUID `json:"thread_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Topic     string    `json:"topic,omitempty"`
	CreatedAt int64     `json:"created_at"`
}

type NewChatResponse struct {
	Id    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}

type SendChatRequest struct {
	// Chat overrides the draft buffer when set (quick-reply suggestions).
	// When empty the current draft is sent.
	Chat string `json:"chat"`
}

type SendChatResponse struct {
	ThreadId uuid.UUID        `json:"thread_id"`
	Sent     *MessageResponse `json:"sent"`
	Reply    *MessageResponse `json:"reply"`
}

type UpdateInputRequest struct {
	Text string `json:"text"`
}

// ViewState is the projected snapshot the presentation layer renders: no
// state of its own, recomputed from storage plus the in-memory session.
type ViewState struct {
	Threads        []ThreadResponse  `json:"threads"`
	Messages       []MessageResponse `json:"messages"`
	ActiveThreadId *uuid.UUID        `json:"active_thread_id"`
	Draft          string            `json:"draft"`
	IsTyping       bool              `json:"is_typing"`
}
