package mapper

import (
	"prompttovideo-be/internal/entity"
	"prompttovideo-be/internal/model"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

func (m *ChatMapper) MessageToEntity(msg *model.ChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}
	return &entity.ChatMessage{
		Id:        msg.Id,
		UserId:    msg.UserId,
		Content:   msg.Content,
		Edited:    msg.Edited,
		CreatedAt: msg.CreatedAt,
		UpdatedAt: msg.UpdatedAt,
	}
}

func (m *ChatMapper) MessageToModel(msg *entity.ChatMessage) *model.ChatMessage {
	if msg == nil {
		return nil
	}
	return &model.ChatMessage{
		Id:        msg.Id,
		UserId:    msg.UserId,
		Content:   msg.Content,
		Edited:    msg.Edited,
		CreatedAt: msg.CreatedAt,
		UpdatedAt: msg.UpdatedAt,
	}
}

func (m *ChatMapper) MessagesToEntities(msgs []*model.ChatMessage) []*entity.ChatMessage {
	entities := make([]*entity.ChatMessage, len(msgs))
	for i, msg := range msgs {
		entities[i] = m.MessageToEntity(msg)
	}
	return entities
}

func (m *ChatMapper) ReplyToEntity(r *model.ChatReply) *entity.ChatReply {
	if r == nil {
		return nil
	}
	return &entity.ChatReply{
		Id:        r.Id,
		MessageId: r.MessageId,
		UserId:    r.UserId,
		Content:   r.Content,
		Edited:    r.Edited,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func (m *ChatMapper) ReplyToModel(r *entity.ChatReply) *model.ChatReply {
	if r == nil {
		return nil
	}
	return &model.ChatReply{
		Id:        r.Id,
		MessageId: r.MessageId,
		UserId:    r.UserId,
		Content:   r.Content,
		Edited:    r.Edited,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func (m *ChatMapper) RepliesToEntities(replies []*model.ChatReply) []*entity.ChatReply {
	entities := make([]*entity.ChatReply, len(replies))
	for i, r := range replies {
		entities[i] = m.ReplyToEntity(r)
	}
	return entities
}

func (m *ChatMapper) ReactionToEntity(r *model.ChatReaction) *entity.ChatReaction {
	if r == nil {
		return nil
	}
	return &entity.ChatReaction{
		Id:        r.Id,
		MessageId: r.MessageId,
		ReplyId:   r.ReplyId,
		UserId:    r.UserId,
		Emoji:     r.Emoji,
		CreatedAt: r.CreatedAt,
	}
}

func (m *ChatMapper) ReactionToModel(r *entity.ChatReaction) *model.ChatReaction {
	if r == nil {
		return nil
	}
	return &model.ChatReaction{
		Id:        r.Id,
		MessageId: r.MessageId,
		ReplyId:   r.ReplyId,
		UserId:    r.UserId,
		Emoji:     r.Emoji,
		CreatedAt: r.CreatedAt,
	}
}

func (m *ChatMapper) ReactionsToEntities(reactions []*model.ChatReaction) []*entity.ChatReaction {
	entities := make([]*entity.ChatReaction, len(reactions))
	for i, r := range reactions {
		entities[i] = m.ReactionToEntity(r)
	}
	return entities
}
