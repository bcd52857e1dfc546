package watch

import (
	"context"
	"encoding/json"

	"sahby-assistant-be/internal/entity"
	"sahby-assistant-be/internal/pkg/logger"
	"sahby-assistant-be/internal/repository/contract"
	"sahby-assistant-be/internal/repository/specification"
	"sahby-assistant-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// Topic is the in-process change bus topic. Every committed write to threads,
// messages or drafts publishes one Change here; watchers re-query and emit a
// fresh snapshot.
const Topic = "conversation.changed"

const (
	KindThread  = "thread"
	KindMessage = "message"
)

type Change struct {
	Kind     string `json:"kind"`
	UserId   string `json:"user_id"`
	ThreadId string `json:"thread_id"`
}

// PublishChange is the writer-side helper used by services after a commit.
func PublishChange(pub message.Publisher, kind string, userId, threadId uuid.UUID) error {
	payload, err := json.Marshal(Change{
		Kind:     kind,
		UserId:   userId.String(),
		ThreadId: threadId.String(),
	})
	if err != nil {
		return err
	}
	return pub.Publish(Topic, message.NewMessage(watermill.NewUUID(), payload))
}

// Watcher implements contract.ConversationWatcher on top of the change bus.
// Snapshots are re-read from the repositories on every change so observers
// never see a privately cached copy that could diverge from storage.
type Watcher struct {
	uowFactory unitofwork.RepositoryFactory
	subscriber message.Subscriber
	logger     logger.ILogger
}

func NewWatcher(uowFactory unitofwork.RepositoryFactory, subscriber message.Subscriber, log logger.ILogger) contract.ConversationWatcher {
	return &Watcher{
		uowFactory: uowFactory,
		subscriber: subscriber,
		logger:     log,
	}
}

func (w *Watcher) ObserveThreads(ctx context.Context, userId uuid.UUID) (<-chan []*entity.Thread, error) {
	msgs, err := w.subscriber.Subscribe(ctx, Topic)
	if err != nil {
		return nil, err
	}

	out := make(chan []*entity.Thread, 1)
	go func() {
		defer close(out)

		// Replay latest snapshot before any change arrives.
		w.emitThreads(ctx, userId, out)

		for {
			select {
			case <-ctx.Done():
				return
			case m, ok := <-msgs:
				if !ok {
					return
				}
				change, err := decode(m)
				if err != nil {
					continue
				}
				if change.UserId != userId.String() {
					continue
				}
				// Message appends touch the thread preview too, so every
				// change kind refreshes the thread list.
				w.emitThreads(ctx, userId, out)
			}
		}
	}()
	return out, nil
}

func (w *Watcher) ObserveMessages(ctx context.Context, threadId uuid.UUID) (<-chan []*entity.Message, error) {
	msgs, err := w.subscriber.Subscribe(ctx, Topic)
	if err != nil {
		return nil, err
	}

	out := make(chan []*entity.Message, 1)
	go func() {
		defer close(out)

		w.emitMessages(ctx, threadId, out)

		for {
			select {
			case <-ctx.Done():
				return
			case m, ok := <-msgs:
				if !ok {
					return
				}
				change, err := decode(m)
				if err != nil {
					continue
				}
				if change.Kind != KindMessage || change.ThreadId != threadId.String() {
					continue
				}
				w.emitMessages(ctx, threadId, out)
			}
		}
	}()
	return out, nil
}

func (w *Watcher) emitThreads(ctx context.Context, userId uuid.UUID, out chan []*entity.Thread) {
	uow := w.uowFactory.NewUnitOfWork(ctx)
	threads, err := uow.ThreadRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "updated_at", Desc: true},
	)
	if err != nil {
		w.logger.Warn("Watcher", "Thread snapshot query failed", map[string]interface{}{"error": err.Error()})
		return
	}
	send(out, threads)
}

func (w *Watcher) emitMessages(ctx context.Context, threadId uuid.UUID, out chan []*entity.Message) {
	uow := w.uowFactory.NewUnitOfWork(ctx)
	messages, err := uow.MessageRepository().FindAll(ctx,
		specification.ByThreadID{ThreadID: threadId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		w.logger.Warn("Watcher", "Message snapshot query failed", map[string]interface{}{"error": err.Error()})
		return
	}
	send(out, messages)
}

// send delivers latest-wins: a slow observer gets the newest snapshot, never
// a backlog of stale ones.
func send[T any](out chan []T, snapshot []T) {
	for {
		select {
		case out <- snapshot:
			return
		default:
			select {
			case <-out:
			default:
			}
		}
	}
}

func decode(m *message.Message) (Change, error) {
	defer m.Ack()
	var change Change
	err := json.Unmarshal(m.Payload, &change)
	return change, err
}
