package watch

import (
	"context"
	"sync"
	"testing"
	"time"

	"sahby-assistant-be/internal/entity"
	"sahby-assistant-be/internal/repository/contract"
	"sahby-assistant-be/internal/repository/specification"
	"sahby-assistant-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Storage stub: only the queries the watcher issues are implemented.

type stubThreadRepo struct {
	mu      sync.Mutex
	threads []*entity.Thread
}

func (r *stubThreadRepo) add(t *entity.Thread) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.threads = append(r.threads, t)
}

func (r *stubThreadRepo) Upsert(ctx context.Context, thread *entity.Thread) error { return nil }
func (r *stubThreadRepo) UpdatePreview(ctx context.Context, threadId uuid.UUID, lastMessage *string, updatedAt time.Time) error {
	return nil
}
func (r *stubThreadRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Thread, error) {
	return nil, nil
}
func (r *stubThreadRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Thread, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var userId uuid.UUID
	for _, s := range specs {
		if sp, ok := s.(specification.OwnedBy); ok {
			userId = sp.UserID
		}
	}
	var out []*entity.Thread
	for _, t := range r.threads {
		if t.UserId == userId {
			out = append(out, t)
		}
	}
	return out, nil
}
func (r *stubThreadRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}

type stubMessageRepo struct {
	mu       sync.Mutex
	messages []*entity.Message
}

func (r *stubMessageRepo) add(m *entity.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, m)
}

func (r *stubMessageRepo) Create(ctx context.Context, message *entity.Message) error { return nil }
func (r *stubMessageRepo) DeleteByThreadId(ctx context.Context, threadId uuid.UUID) error {
	return nil
}
func (r *stubMessageRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Message, error) {
	return nil, nil
}
func (r *stubMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var threadId uuid.UUID
	for _, s := range specs {
		if sp, ok := s.(specification.ByThreadID); ok {
			threadId = sp.ThreadID
		}
	}
	var out []*entity.Message
	for _, m := range r.messages {
		if m.ThreadId == threadId {
			out = append(out, m)
		}
	}
	return out, nil
}
func (r *stubMessageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}

type stubDraftRepo struct{}

func (stubDraftRepo) Upsert(ctx context.Context, draft *entity.Draft) error { return nil }
func (stubDraftRepo) FindByThreadId(ctx context.Context, threadId uuid.UUID) (*entity.Draft, error) {
	return nil, nil
}
func (stubDraftRepo) Delete(ctx context.Context, threadId uuid.UUID) error { return nil }

type stubUow struct {
	threads *stubThreadRepo
	msgs    *stubMessageRepo
}

func (u *stubUow) Begin(ctx context.Context) error { return nil }
func (u *stubUow) Commit() error                   { return nil }
func (u *stubUow) Rollback() error                 { return nil }

func (u *stubUow) ThreadRepository() contract.ThreadRepository   { return u.threads }
func (u *stubUow) MessageRepository() contract.MessageRepository { return u.msgs }
func (u *stubUow) DraftRepository() contract.DraftRepository     { return stubDraftRepo{} }

type stubFactory struct{ uow *stubUow }

func (f *stubFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

type quietLogger struct{}

func (quietLogger) Debug(module, message string, details map[string]interface{}) {}
func (quietLogger) Info(module, message string, details map[string]interface{})  {}
func (quietLogger) Warn(module, message string, details map[string]interface{})  {}
func (quietLogger) Error(module, message string, details map[string]interface{}) {}
func (quietLogger) Sync() error                                                  { return nil }

func receiveThreads(t *testing.T, ch <-chan []*entity.Thread) []*entity.Thread {
	t.Helper()
	select {
	case snapshot, ok := <-ch:
		require.True(t, ok, "channel closed early")
		return snapshot
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for thread snapshot")
		return nil
	}
}

func receiveMessages(t *testing.T, ch <-chan []*entity.Message) []*entity.Message {
	t.Helper()
	select {
	case snapshot, ok := <-ch:
		require.True(t, ok, "channel closed early")
		return snapshot
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message snapshot")
		return nil
	}
}

func TestObserveThreadsReplaysLatestThenFollowsChanges(t *testing.T) {
	userId := uuid.New()
	uow := &stubUow{threads: &stubThreadRepo{}, msgs: &stubMessageRepo{}}
	uow.threads.add(&entity.Thread{Id: uuid.New(), UserId: userId, Title: "Chat 1"})

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	w := NewWatcher(&stubFactory{uow: uow}, pubSub, quietLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := w.ObserveThreads(ctx, userId)
	require.NoError(t, err)

	// Subscription starts with the current snapshot, not an empty channel.
	snapshot := receiveThreads(t, ch)
	require.Len(t, snapshot, 1)
	assert.Equal(t, "Chat 1", snapshot[0].Title)

	uow.threads.add(&entity.Thread{Id: uuid.New(), UserId: userId, Title: "Chat 2"})
	require.NoError(t, PublishChange(pubSub, KindThread, userId, uuid.New()))

	snapshot = receiveThreads(t, ch)
	assert.Len(t, snapshot, 2)
}

func TestObserveThreadsIgnoresOtherUsers(t *testing.T) {
	userId := uuid.New()
	uow := &stubUow{threads: &stubThreadRepo{}, msgs: &stubMessageRepo{}}

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	w := NewWatcher(&stubFactory{uow: uow}, pubSub, quietLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := w.ObserveThreads(ctx, userId)
	require.NoError(t, err)
	assert.Empty(t, receiveThreads(t, ch))

	require.NoError(t, PublishChange(pubSub, KindThread, uuid.New(), uuid.New()))

	select {
	case snapshot, ok := <-ch:
		if ok {
			t.Fatalf("unexpected snapshot for another user's change: %v", snapshot)
		}
	case <-time.After(200 * time.Millisecond):
	}
}

func TestObserveMessagesFollowsThread(t *testing.T) {
	userId := uuid.New()
	threadId := uuid.New()
	uow := &stubUow{threads: &stubThreadRepo{}, msgs: &stubMessageRepo{}}

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	w := NewWatcher(&stubFactory{uow: uow}, pubSub, quietLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := w.ObserveMessages(ctx, threadId)
	require.NoError(t, err)
	assert.Empty(t, receiveMessages(t, ch))

	uow.msgs.add(&entity.Message{Id: uuid.New(), ThreadId: threadId, Role: "user", Content: "hello"})
	require.NoError(t, PublishChange(pubSub, KindMessage, userId, threadId))

	snapshot := receiveMessages(t, ch)
	require.Len(t, snapshot, 1)
	assert.Equal(t, "hello", snapshot[0].Content)

	// Thread-kind changes do not touch the message stream.
	require.NoError(t, PublishChange(pubSub, KindThread, userId, threadId))
	select {
	case extra := <-ch:
		// A latest-wins re-emit of the same snapshot would still be length 1.
		assert.Len(t, extra, 1)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestObserveClosesOnCancel(t *testing.T) {
	uow := &stubUow{threads: &stubThreadRepo{}, msgs: &stubMessageRepo{}}
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	w := NewWatcher(&stubFactory{uow: uow}, pubSub, quietLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := w.ObserveThreads(ctx, uuid.New())
	require.NoError(t, err)
	receiveThreads(t, ch)

	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("channel did not close after cancel")
	}
}
