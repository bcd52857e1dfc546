package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"sahby-assistant-be/internal/entity"
	"sahby-assistant-be/internal/repository/contract"
	"sahby-assistant-be/internal/repository/specification"
	"sahby-assistant-be/internal/repository/unitofwork"
	"sahby-assistant-be/pkg/store"

	"github.com/google/uuid"
)

// In-memory repositories backing the service tests. Specifications are
// interpreted by type switch instead of SQL.

// page applies an optional Pagination spec after filtering and ordering.
func page[T any](out []T, specs []specification.Specification) []T {
	for _, s := range specs {
		if p, ok := s.(specification.Pagination); ok {
			if p.Offset >= len(out) {
				return nil
			}
			out = out[p.Offset:]
			if p.Limit > 0 && p.Limit < len(out) {
				out = out[:p.Limit]
			}
		}
	}
	return out
}

type fakeThreadRepo struct {
	mu      sync.Mutex
	threads map[uuid.UUID]*entity.Thread
}

func newFakeThreadRepo() *fakeThreadRepo {
	return &fakeThreadRepo{threads: make(map[uuid.UUID]*entity.Thread)}
}

func (r *fakeThreadRepo) Upsert(ctx context.Context, thread *entity.Thread) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *thread
	r.threads[thread.Id] = &cp
	return nil
}

func (r *fakeThreadRepo) UpdatePreview(ctx context.Context, threadId uuid.UUID, lastMessage *string, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.threads[threadId]
	if !ok {
		return nil
	}
	t.LastMessage = lastMessage
	t.UpdatedAt = updatedAt
	return nil
}

func (r *fakeThreadRepo) filter(specs []specification.Specification) []*entity.Thread {
	var out []*entity.Thread
	for _, t := range r.threads {
		keep := true
		for _, s := range specs {
			switch sp := s.(type) {
			case specification.OwnedBy:
				if t.UserId != sp.UserID {
					keep = false
				}
			case specification.ByID:
				if t.Id != sp.ID {
					keep = false
				}
			}
		}
		if keep {
			cp := *t
			out = append(out, &cp)
		}
	}
	for _, s := range specs {
		if ord, ok := s.(specification.OrderBy); ok && ord.Field == "updated_at" {
			sort.Slice(out, func(i, j int) bool {
				if ord.Desc {
					return out[i].UpdatedAt.After(out[j].UpdatedAt)
				}
				return out[i].UpdatedAt.Before(out[j].UpdatedAt)
			})
		}
	}
	return page(out, specs)
}

func (r *fakeThreadRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Thread, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.filter(specs)
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *fakeThreadRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Thread, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.filter(specs), nil
}

func (r *fakeThreadRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.filter(specs))), nil
}

type fakeMessageRepo struct {
	mu       sync.Mutex
	messages []*entity.Message

	// failCreates makes the next N Create calls fail.
	failCreates int
}

func (r *fakeMessageRepo) Create(ctx context.Context, message *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreates > 0 {
		r.failCreates--
		return errors.New("storage unavailable")
	}
	cp := *message
	r.messages = append(r.messages, &cp)
	return nil
}

func (r *fakeMessageRepo) DeleteByThreadId(ctx context.Context, threadId uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.messages[:0]
	for _, m := range r.messages {
		if m.ThreadId != threadId {
			kept = append(kept, m)
		}
	}
	r.messages = kept
	return nil
}

func (r *fakeMessageRepo) filter(specs []specification.Specification) []*entity.Message {
	var out []*entity.Message
	for _, m := range r.messages {
		keep := true
		for _, s := range specs {
			if sp, ok := s.(specification.ByThreadID); ok && m.ThreadId != sp.ThreadID {
				keep = false
			}
		}
		if keep {
			cp := *m
			out = append(out, &cp)
		}
	}
	for _, s := range specs {
		if ord, ok := s.(specification.OrderBy); ok && ord.Field == "created_at" {
			sort.Slice(out, func(i, j int) bool {
				if ord.Desc {
					return out[i].CreatedAt.After(out[j].CreatedAt)
				}
				return out[i].CreatedAt.Before(out[j].CreatedAt)
			})
		}
	}
	return page(out, specs)
}

func (r *fakeMessageRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.filter(specs)
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *fakeMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.filter(specs), nil
}

func (r *fakeMessageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.filter(specs))), nil
}

type fakeDraftRepo struct {
	mu     sync.Mutex
	drafts map[uuid.UUID]*entity.Draft
}

func newFakeDraftRepo() *fakeDraftRepo {
	return &fakeDraftRepo{drafts: make(map[uuid.UUID]*entity.Draft)}
}

func (r *fakeDraftRepo) Upsert(ctx context.Context, draft *entity.Draft) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *draft
	r.drafts[draft.ThreadId] = &cp
	return nil
}

func (r *fakeDraftRepo) FindByThreadId(ctx context.Context, threadId uuid.UUID) (*entity.Draft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.drafts[threadId]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r *fakeDraftRepo) Delete(ctx context.Context, threadId uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.drafts, threadId)
	return nil
}

type fakeUnitOfWork struct {
	threads *fakeThreadRepo
	msgs    *fakeMessageRepo
	drafts  *fakeDraftRepo
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                   { return nil }
func (u *fakeUnitOfWork) Rollback() error                 { return nil }

func (u *fakeUnitOfWork) ThreadRepository() contract.ThreadRepository   { return u.threads }
func (u *fakeUnitOfWork) MessageRepository() contract.MessageRepository { return u.msgs }
func (u *fakeUnitOfWork) DraftRepository() contract.DraftRepository     { return u.drafts }

type fakeFactory struct {
	uow *fakeUnitOfWork
}

func newFakeFactory() *fakeFactory {
	return &fakeFactory{uow: &fakeUnitOfWork{
		threads: newFakeThreadRepo(),
		msgs:    &fakeMessageRepo{},
		drafts:  newFakeDraftRepo(),
	}}
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

// recordingNotifier captures session pushes.
type recordingNotifier struct {
	mu       sync.Mutex
	sessions []store.Session
}

func (n *recordingNotifier) SendSession(userID uuid.UUID, session *store.Session) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sessions = append(n.sessions, *session)
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }
