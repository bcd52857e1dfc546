package model

import (
	"time"

	"github.com/google/uuid"
)

type Draft struct {
	ThreadId  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Body      string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Draft) TableName() string {
	return "drafts"
}
