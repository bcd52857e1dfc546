package mapper

import (
	"encoding/json"

	"sahby-assistant-be/internal/entity"
	"sahby-assistant-be/internal/model"

	"gorm.io/datatypes"
)

type ConversationMapper struct{}

func NewConversationMapper() *ConversationMapper {
	return &ConversationMapper{}
}

// Thread Mappers

func (m *ConversationMapper) ThreadToEntity(t *model.Thread) *entity.Thread {
	if t == nil {
		return nil
	}

	return &entity.Thread{
		Id:          t.Id,
		UserId:      t.UserId,
		Title:       t.Title,
		LastMessage: t.LastMessage,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func (m *ConversationMapper) ThreadToModel(t *entity.Thread) *model.Thread {
	if t == nil {
		return nil
	}

	return &model.Thread{
		Id:          t.Id,
		UserId:      t.UserId,
		Title:       t.Title,
		LastMessage: t.LastMessage,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// Message Mappers

func (m *ConversationMapper) MessageToEntity(msg *model.Message) *entity.Message {
	if msg == nil {
		return nil
	}

	var meta *entity.MessageMeta
	if len(msg.Meta) > 0 {
		var decoded entity.MessageMeta
		if err := json.Unmarshal(msg.Meta, &decoded); err == nil {
			meta = &decoded
		}
	}

	return &entity.Message{
		Id:        msg.Id,
		ThreadId:  msg.ThreadId,
		Role:      msg.Role,
		Content:   msg.Content,
		Meta:      meta,
		CreatedAt: msg.CreatedAt,
	}
}

func (m *ConversationMapper) MessageToModel(msg *entity.Message) *model.Message {
	if msg == nil {
		return nil
	}

	var meta datatypes.JSON
	if msg.Meta != nil {
		raw, _ := json.Marshal(msg.Meta)
		meta = datatypes.JSON(raw)
	}

	return &model.Message{
		Id:        msg.Id,
		ThreadId:  msg.ThreadId,
		Role:      msg.Role,
		Content:   msg.Content,
		Meta:      meta,
		CreatedAt: msg.CreatedAt,
	}
}

// Draft Mappers

func (m *ConversationMapper) DraftToEntity(d *model.Draft) *entity.Draft {
	if d == nil {
		return nil
	}

	return &entity.Draft{
		ThreadId:  d.ThreadId,
		Body:      d.Body,
		UpdatedAt: d.UpdatedAt,
	}
}

func (m *ConversationMapper) DraftToModel(d *entity.Draft) *model.Draft {
	if d == nil {
		return nil
	}

	return &model.Draft{
		ThreadId:  d.ThreadId,
		Body:      d.Body,
		UpdatedAt: d.UpdatedAt,
	}
}
