package entity

import (
	"time"

	"github.com/google/uuid"
)

type Thread struct {
	Id          uuid.UUID
	UserId      uuid.UUID
	Title       string
	LastMessage *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
