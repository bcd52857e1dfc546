package entity

import (
	"time"

	"github.com/google/uuid"
)

// Draft is the persisted pending input for the peer-to-peer chat feature.
// The assistant chat keeps its draft in memory only.
type Draft struct {
	ThreadId  uuid.UUID
	Body      string
	UpdatedAt time.Time
}
