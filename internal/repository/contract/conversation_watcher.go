package contract

import (
	"context"

	"sahby-assistant-be/internal/entity"

	"github.com/google/uuid"
)

// ConversationWatcher exposes continuously-updating views over threads and
// messages. A subscription replays the latest snapshot immediately and then
// re-emits a fresh snapshot after every committed change. The channel is
// closed when ctx is cancelled.
type ConversationWatcher interface {
	ObserveThreads(ctx context.Context, userId uuid.UUID) (<-chan []*entity.Thread, error)
	ObserveMessages(ctx context.Context, threadId uuid.UUID) (<-chan []*entity.Message, error)
}
