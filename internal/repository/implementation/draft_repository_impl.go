package implementation

import (
	"context"
	"errors"

	"sahby-assistant-be/internal/entity"
	"sahby-assistant-be/internal/mapper"
	"sahby-assistant-be/internal/model"
	"sahby-assistant-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DraftRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ConversationMapper
}

func NewDraftRepository(db *gorm.DB) contract.DraftRepository {
	return &DraftRepositoryImpl{
		db:     db,
		mapper: mapper.NewConversationMapper(),
	}
}

func (r *DraftRepositoryImpl) Upsert(ctx context.Context, draft *entity.Draft) error {
	m := r.mapper.DraftToModel(draft)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "thread_id"}},
		UpdateAll: true,
	}).Create(m).Error
	if err != nil {
		return err
	}
	*draft = *r.mapper.DraftToEntity(m)
	return nil
}

func (r *DraftRepositoryImpl) FindByThreadId(ctx context.Context, threadId uuid.UUID) (*entity.Draft, error) {
	var m model.Draft
	err := r.db.WithContext(ctx).Where("thread_id = ?", threadId).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.DraftToEntity(&m), nil
}

func (r *DraftRepositoryImpl) Delete(ctx context.Context, threadId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("thread_id = ?", threadId).Delete(&model.Draft{}).Error
}
