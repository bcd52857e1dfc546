package contract

import (
	"context"
	"time"

	"sahby-assistant-be/internal/entity"
	"sahby-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ThreadRepository interface {
	// Upsert inserts the thread or fully replaces the record with the same id.
	Upsert(ctx context.Context, thread *entity.Thread) error
	// UpdatePreview partially updates last_message and updated_at.
	// It is a silent no-op when the thread does not exist; existence is not
	// enforced here and callers must not assume it is.
	UpdatePreview(ctx context.Context, threadId uuid.UUID, lastMessage *string, updatedAt time.Time) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Thread, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Thread, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
