package service

import (
	"context"
	"time"

	"sahby-assistant-be/internal/dto"
	"sahby-assistant-be/internal/entity"
	"sahby-assistant-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// IDraftService persists per-thread pending input for the peer-to-peer chat
// feature, so an in-progress message survives app restarts. The assistant
// chat does not use this; its draft lives in the in-memory session.
type IDraftService interface {
	Save(ctx context.Context, request *dto.UpsertDraftRequest) (*dto.DraftResponse, error)
	Get(ctx context.Context, threadId uuid.UUID) (*dto.DraftResponse, error)
	Discard(ctx context.Context, threadId uuid.UUID) error
}

type draftService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewDraftService(uowFactory unitofwork.RepositoryFactory) IDraftService {
	return &draftService{
		uowFactory: uowFactory,
	}
}

func (s *draftService) Save(ctx context.Context, request *dto.UpsertDraftRequest) (*dto.DraftResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	draft := &entity.Draft{
		ThreadId:  request.ThreadId,
		Body:      request.Body,
		UpdatedAt: time.Now(),
	}
	if err := uow.DraftRepository().Upsert(ctx, draft); err != nil {
		return nil, err
	}

	return draftToResponse(draft), nil
}

func (s *draftService) Get(ctx context.Context, threadId uuid.UUID) (*dto.DraftResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	draft, err := uow.DraftRepository().FindByThreadId(ctx, threadId)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, nil
	}
	return draftToResponse(draft), nil
}

func (s *draftService) Discard(ctx context.Context, threadId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.DraftRepository().Delete(ctx, threadId)
}

func draftToResponse(d *entity.Draft) *dto.DraftResponse {
	return &dto.DraftResponse{
		ThreadId:  d.ThreadId,
		Body:      d.Body,
		UpdatedAt: d.UpdatedAt.UnixMilli(),
	}
}
