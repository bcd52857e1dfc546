package dto

import "github.com/google/uuid"

type UpsertDraftRequest struct {
	ThreadId uuid.UUID `json:"thread_id" validate:"required"`
	Body     string    `json:"body"`
}

type DraftResponse struct {
	ThreadId  uuid.UUID `json:"thread_id"`
	Body      string    `json:"body"`
	UpdatedAt int64     `json:"updated_at"`
}
