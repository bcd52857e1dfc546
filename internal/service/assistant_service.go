package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"sahby-assistant-be/internal/constant"
	"sahby-assistant-be/internal/dto"
	"sahby-assistant-be/internal/entity"
	"sahby-assistant-be/internal/pkg/logger"
	"sahby-assistant-be/internal/pkg/mailer"
	"sahby-assistant-be/internal/repository/memory"
	"sahby-assistant-be/internal/repository/specification"
	"sahby-assistant-be/internal/repository/unitofwork"
	"sahby-assistant-be/internal/repository/watch"
	"sahby-assistant-be/pkg/assistant/replier"
	"sahby-assistant-be/pkg/events"
	pktNats "sahby-assistant-be/pkg/nats"
	"sahby-assistant-be/pkg/store"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// IAssistantService is the conversation store: it owns the per-user active
// thread, issues thread creation/selection, appends message pairs and
// orchestrates the replier. Durable state lives in the repositories; the
// service never caches thread or message lists.
type IAssistantService interface {
	EnsureActiveThread(ctx context.Context, userId uuid.UUID) (*store.Session, error)
	NewChat(ctx context.Context, userId uuid.UUID) (*dto.NewChatResponse, error)
	SelectThread(ctx context.Context, userId uuid.UUID, threadId uuid.UUID) error
	SendMessage(ctx context.Context, userId uuid.UUID, request *dto.SendChatRequest) (*dto.SendChatResponse, error)
	ClearChat(ctx context.Context, userId uuid.UUID) error
	UpdateInput(ctx context.Context, userId uuid.UUID, text string) error
	// GetAllThreads and GetHistory page when limit > 0; limit 0 returns all.
	GetAllThreads(ctx context.Context, userId uuid.UUID, limit, offset int) ([]dto.ThreadResponse, error)
	GetHistory(ctx context.Context, userId uuid.UUID, threadId uuid.UUID, limit, offset int) ([]dto.MessageResponse, error)
	ViewState(ctx context.Context, userId uuid.UUID) (*dto.ViewState, error)
}

// SessionNotifier pushes volatile session changes (draft, typing, active
// thread) to connected clients. Implemented by the websocket hub.
type SessionNotifier interface {
	SendSession(userID uuid.UUID, session *store.Session)
}

type assistantService struct {
	uowFactory  unitofwork.RepositoryFactory
	sessionRepo *memory.SessionRepository
	replier     *replier.Replier
	changePub   message.Publisher
	notifier    SessionNotifier
	natsPub     *pktNats.Publisher // nil when NATS is unavailable
	mailer      mailer.IEmailService
	logger      logger.ILogger
}

func NewAssistantService(
	uowFactory unitofwork.RepositoryFactory,
	sessionRepo *memory.SessionRepository,
	rep *replier.Replier,
	changePub message.Publisher,
	notifier SessionNotifier,
	natsPub *pktNats.Publisher,
	emailService mailer.IEmailService,
	log logger.ILogger,
) IAssistantService {
	return &assistantService{
		uowFactory:  uowFactory,
		sessionRepo: sessionRepo,
		replier:     rep,
		changePub:   changePub,
		notifier:    notifier,
		natsPub:     natsPub,
		mailer:      emailService,
		logger:      log,
	}
}

// EnsureActiveThread bootstraps the per-user session: the most recently
// updated thread becomes active, and a first thread is created when the user
// has none. The rest of the application never sees a threadless state.
func (s *assistantService) EnsureActiveThread(ctx context.Context, userId uuid.UUID) (*store.Session, error) {
	sess, ok := s.sessionRepo.Get(userId)
	if ok && sess.ActiveThreadID != uuid.Nil {
		return sess, nil
	}
	if !ok {
		sess = store.NewSession(userId)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	latest, err := uow.ThreadRepository().FindOne(ctx,
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "updated_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	if latest != nil {
		sess.ActiveThreadID = latest.Id
		s.sessionRepo.Save(sess)
		return sess, nil
	}

	thread, err := s.createThread(ctx, userId)
	if err != nil {
		return nil, err
	}
	sess.ActiveThreadID = thread.Id
	s.sessionRepo.Save(sess)
	return sess, nil
}

func (s *assistantService) NewChat(ctx context.Context, userId uuid.UUID) (*dto.NewChatResponse, error) {
	thread, err := s.createThread(ctx, userId)
	if err != nil {
		return nil, err
	}

	sess, ok := s.sessionRepo.Get(userId)
	if !ok {
		sess = store.NewSession(userId)
	}
	sess.ActiveThreadID = thread.Id
	s.sessionRepo.Save(sess)
	s.notifySession(sess)

	return &dto.NewChatResponse{Id: thread.Id, Title: thread.Title}, nil
}

// SelectThread activates threadId unconditionally. Unknown ids are not
// rejected: observing queries simply yield an empty message list.
func (s *assistantService) SelectThread(ctx context.Context, userId uuid.UUID, threadId uuid.UUID) error {
	sess, ok := s.sessionRepo.Get(userId)
	if !ok {
		sess = store.NewSession(userId)
	}
	sess.ActiveThreadID = threadId
	s.sessionRepo.Save(sess)
	s.notifySession(sess)
	return nil
}

// SendMessage runs one assistant turn: the trimmed input and the generated
// reply are persisted as a pair, with the reply stamped exactly one
// millisecond after the user message so ordering survives coarse clocks.
// Blank input is a silent no-op that leaves the draft untouched.
func (s *assistantService) SendMessage(ctx context.Context, userId uuid.UUID, request *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	// Resolve and trim before any bootstrap: a blank send must not create a
	// thread, a session or any other state.
	text := request.Chat
	if text == "" {
		if sess, ok := s.sessionRepo.Get(userId); ok {
			text = sess.Draft
		}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	sess, err := s.EnsureActiveThread(ctx, userId)
	if err != nil {
		return nil, err
	}

	// Optimistic UI: the draft clears and the composing indicator turns on
	// before any I/O happens.
	sess.Draft = ""
	sess.AwaitingReply = true
	s.sessionRepo.Save(sess)
	s.notifySession(sess)

	threadId := sess.ActiveThreadID
	result, userMsg, replyMsg, err := s.deliver(ctx, threadId, text)
	if err != nil {
		s.logger.Warn("AssistantService", "Turn delivery failed, retrying once", map[string]interface{}{
			"thread_id": threadId.String(),
			"error":     err.Error(),
		})
		result, userMsg, replyMsg, err = s.deliver(ctx, threadId, text)
	}

	// The composing indicator must never survive a failure.
	sess.AwaitingReply = false
	s.sessionRepo.Save(sess)
	s.notifySession(sess)

	if err != nil {
		return nil, err
	}

	s.publishChange(watch.KindMessage, userId, threadId)
	s.publishEvent(ctx, events.NewMessageSent(userId, threadId, result.Topic, result.Arabic))

	if result.Topic == constant.TopicSupport && s.mailer != nil {
		go func() {
			if err := s.mailer.SendSupportEscalation(userId.String(), threadId.String(), text); err != nil {
				s.logger.Warn("AssistantService", "Support escalation email failed", map[string]interface{}{"error": err.Error()})
			}
		}()
	}

	return &dto.SendChatResponse{
		ThreadId: threadId,
		Sent:     messageToResponse(userMsg),
		Reply:    messageToResponse(replyMsg),
	}, nil
}

// deliver persists one user/assistant pair and both thread preview updates in
// a single transaction. Atomicity is the failure policy: either the full turn
// commits or nothing does, so an orphaned user message cannot exist. The
// detached context lets writes already in flight finish when the caller is
// torn down mid-turn.
func (s *assistantService) deliver(ctx context.Context, threadId uuid.UUID, text string) (replier.Result, *entity.Message, *entity.Message, error) {
	dbctx := context.WithoutCancel(ctx)
	now := time.Now()

	result := s.replier.Generate(text)

	userMsg := &entity.Message{
		Id:        uuid.New(),
		ThreadId:  threadId,
		Role:      constant.MessageRoleUser,
		Content:   text,
		CreatedAt: now,
	}
	replyMsg := &entity.Message{
		Id:       uuid.New(),
		ThreadId: threadId,
		Role:     constant.MessageRoleAssistant,
		Content:  result.Reply,
		Meta: &entity.MessageMeta{
			Topic:  result.Topic,
			Arabic: result.Arabic,
		},
		CreatedAt: now.Add(time.Millisecond),
	}

	uow := s.uowFactory.NewUnitOfWork(dbctx)
	if err := uow.Begin(dbctx); err != nil {
		return result, nil, nil, err
	}
	defer uow.Rollback()

	if err := uow.MessageRepository().Create(dbctx, userMsg); err != nil {
		return result, nil, nil, err
	}
	if err := uow.ThreadRepository().UpdatePreview(dbctx, threadId, &userMsg.Content, userMsg.CreatedAt); err != nil {
		return result, nil, nil, err
	}
	if err := uow.MessageRepository().Create(dbctx, replyMsg); err != nil {
		return result, nil, nil, err
	}
	if err := uow.ThreadRepository().UpdatePreview(dbctx, threadId, &replyMsg.Content, replyMsg.CreatedAt); err != nil {
		return result, nil, nil, err
	}

	if err := uow.Commit(); err != nil {
		return result, nil, nil, err
	}
	return result, userMsg, replyMsg, nil
}

// ClearChat deletes every message of the active thread. The thread record
// survives with its title; only the preview resets.
func (s *assistantService) ClearChat(ctx context.Context, userId uuid.UUID) error {
	sess, ok := s.sessionRepo.Get(userId)
	if !ok || sess.ActiveThreadID == uuid.Nil {
		return nil
	}
	threadId := sess.ActiveThreadID

	dbctx := context.WithoutCancel(ctx)
	uow := s.uowFactory.NewUnitOfWork(dbctx)
	if err := uow.Begin(dbctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.MessageRepository().DeleteByThreadId(dbctx, threadId); err != nil {
		return err
	}
	if err := uow.ThreadRepository().UpdatePreview(dbctx, threadId, nil, time.Now()); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.publishChange(watch.KindMessage, userId, threadId)
	s.publishEvent(ctx, events.NewChatCleared(userId, threadId))
	return nil
}

// UpdateInput mutates the draft buffer only. No persistence, no transition.
func (s *assistantService) UpdateInput(ctx context.Context, userId uuid.UUID, text string) error {
	sess, ok := s.sessionRepo.Get(userId)
	if !ok {
		sess = store.NewSession(userId)
	}
	sess.Draft = text
	s.sessionRepo.Save(sess)
	s.notifySession(sess)
	return nil
}

func (s *assistantService) GetAllThreads(ctx context.Context, userId uuid.UUID, limit, offset int) ([]dto.ThreadResponse, error) {
	specs := []specification.Specification{
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "updated_at", Desc: true},
	}
	if limit > 0 {
		specs = append(specs, specification.Pagination{Limit: limit, Offset: offset})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	threads, err := uow.ThreadRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	response := make([]dto.ThreadResponse, 0, len(threads))
	for _, t := range threads {
		response = append(response, threadToResponse(t))
	}
	return response, nil
}

func (s *assistantService) GetHistory(ctx context.Context, userId uuid.UUID, threadId uuid.UUID, limit, offset int) ([]dto.MessageResponse, error) {
	specs := []specification.Specification{
		specification.ByThreadID{ThreadID: threadId},
		specification.OrderBy{Field: "created_at", Desc: false},
	}
	if limit > 0 {
		specs = append(specs, specification.Pagination{Limit: limit, Offset: offset})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	messages, err := uow.MessageRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	response := make([]dto.MessageResponse, 0, len(messages))
	for _, m := range messages {
		response = append(response, *messageToResponse(m))
	}
	return response, nil
}

// ViewState recomputes the projected snapshot: thread list, messages of the
// active thread, draft and composing flag.
func (s *assistantService) ViewState(ctx context.Context, userId uuid.UUID) (*dto.ViewState, error) {
	sess, err := s.EnsureActiveThread(ctx, userId)
	if err != nil {
		return nil, err
	}

	threads, err := s.GetAllThreads(ctx, userId, 0, 0)
	if err != nil {
		return nil, err
	}

	var messages []dto.MessageResponse
	var activeId *uuid.UUID
	if sess.ActiveThreadID != uuid.Nil {
		id := sess.ActiveThreadID
		activeId = &id
		messages, err = s.GetHistory(ctx, userId, id, 0, 0)
		if err != nil {
			return nil, err
		}
	}

	return &dto.ViewState{
		Threads:        threads,
		Messages:       messages,
		ActiveThreadId: activeId,
		Draft:          sess.Draft,
		IsTyping:       sess.AwaitingReply,
	}, nil
}

// createThread makes a sequence-titled thread ("Chat N") and persists it.
func (s *assistantService) createThread(ctx context.Context, userId uuid.UUID) (*entity.Thread, error) {
	dbctx := context.WithoutCancel(ctx)
	uow := s.uowFactory.NewUnitOfWork(dbctx)

	count, err := uow.ThreadRepository().Count(dbctx, specification.OwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	thread := &entity.Thread{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     fmt.Sprintf("Chat %d", count+1),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uow.ThreadRepository().Upsert(dbctx, thread); err != nil {
		return nil, err
	}

	s.publishChange(watch.KindThread, userId, thread.Id)
	s.publishEvent(ctx, events.NewThreadCreated(userId, thread.Id, thread.Title))
	return thread, nil
}

func (s *assistantService) notifySession(sess *store.Session) {
	if s.notifier != nil {
		s.notifier.SendSession(sess.UserID, sess)
	}
}

func (s *assistantService) publishChange(kind string, userId, threadId uuid.UUID) {
	if s.changePub == nil {
		return
	}
	if err := watch.PublishChange(s.changePub, kind, userId, threadId); err != nil {
		s.logger.Warn("AssistantService", "Change bus publish failed", map[string]interface{}{"error": err.Error()})
	}
}

func (s *assistantService) publishEvent(ctx context.Context, event events.Event) {
	if s.natsPub == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()
	if err := s.natsPub.Publish(pubCtx, event); err != nil {
		s.logger.Warn("AssistantService", "Event publish failed", map[string]interface{}{
			"event": event.EventType(),
			"error": err.Error(),
		})
	}
}

func threadToResponse(t *entity.Thread) dto.ThreadResponse {
	return dto.ThreadResponse{
		Id:          t.Id,
		Title:       t.Title,
		LastMessage: t.LastMessage,
		UpdatedAt:   t.UpdatedAt.UnixMilli(),
	}
}

func messageToResponse(m *entity.Message) *dto.MessageResponse {
	resp := &dto.MessageResponse{
		Id:        m.Id,
		ThreadId:  m.ThreadId,
		Role:      m.Role,
		Content:   m.Content,
		CreatedAt: m.CreatedAt.UnixMilli(),
	}
	if m.Meta != nil {
		resp.Topic = m.Meta.Topic
	}
	return resp
}
