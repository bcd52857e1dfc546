package contract

import (
	"context"

	"sahby-assistant-be/internal/entity"

	"github.com/google/uuid"
)

type DraftRepository interface {
	Upsert(ctx context.Context, draft *entity.Draft) error
	FindByThreadId(ctx context.Context, threadId uuid.UUID) (*entity.Draft, error)
	Delete(ctx context.Context, threadId uuid.UUID) error
}
