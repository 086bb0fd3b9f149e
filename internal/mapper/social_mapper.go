package mapper

import (
	"encoding/json"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"

	"prompttovideo-be/internal/entity"
	"prompttovideo-be/internal/model"
)

type SocialMapper struct{}

func NewSocialMapper() *SocialMapper {
	return &SocialMapper{}
}

func (m *SocialMapper) FollowToEntity(f *model.Follow) *entity.Follow {
	if f == nil {
		return nil
	}
	return &entity.Follow{
		Id:         f.Id,
		FollowerId: f.FollowerId,
		FollowedId: f.FollowedId,
		CreatedAt:  f.CreatedAt,
	}
}

func (m *SocialMapper) FollowToModel(f *entity.Follow) *model.Follow {
	if f == nil {
		return nil
	}
	return &model.Follow{
		Id:         f.Id,
		FollowerId: f.FollowerId,
		FollowedId: f.FollowedId,
		CreatedAt:  f.CreatedAt,
	}
}

func (m *SocialMapper) NotificationToEntity(n *model.Notification) *entity.Notification {
	if n == nil {
		return nil
	}
	var data map[string]interface{}
	if len(n.Metadata) > 0 {
		_ = json.Unmarshal(n.Metadata, &data)
	}
	return &entity.Notification{
		Id:        n.ID,
		UserId:    n.UserID,
		Type:      entity.NotificationType(n.TypeCode),
		Message:   n.Message,
		Data:      data,
		Read:      n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

func (m *SocialMapper) NotificationToModel(n *entity.Notification) *model.Notification {
	if n == nil {
		return nil
	}
	var metadata []byte
	if n.Data != nil {
		metadata, _ = json.Marshal(n.Data)
	}
	return &model.Notification{
		ID:       n.Id,
		UserID:   n.UserId,
		TypeCode: string(n.Type),
		Message:  n.Message,
		Metadata: datatypes.JSON(metadata),
		IsRead:   n.Read,
	}
}

func (m *SocialMapper) NotificationsToEntities(notifs []*model.Notification) []*entity.Notification {
	entities := make([]*entity.Notification, len(notifs))
	for i, n := range notifs {
		entities[i] = m.NotificationToEntity(n)
	}
	return entities
}

func (m *SocialMapper) PromptPackToEntity(p *model.PromptPack) *entity.PromptPack {
	if p == nil {
		return nil
	}
	var prompts []string
	if len(p.Prompts) > 0 {
		_ = json.Unmarshal(p.Prompts, &prompts)
	}
	return &entity.PromptPack{
		Id:          p.Id,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Prompts:     prompts,
		Premium:     p.Premium,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (m *SocialMapper) PromptPackToModel(p *entity.PromptPack) *model.PromptPack {
	if p == nil {
		return nil
	}
	prompts, _ := json.Marshal(p.Prompts)
	return &model.PromptPack{
		Id:          p.Id,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Prompts:     datatypes.JSON(prompts),
		Premium:     p.Premium,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (m *SocialMapper) PromptPacksToEntities(packs []*model.PromptPack) []*entity.PromptPack {
	entities := make([]*entity.PromptPack, len(packs))
	for i, p := range packs {
		entities[i] = m.PromptPackToEntity(p)
	}
	return entities
}

func (m *SocialMapper) PromptEmbeddingToEntity(e *model.PromptEmbedding) *entity.PromptEmbedding {
	if e == nil {
		return nil
	}
	return &entity.PromptEmbedding{
		Id:        e.Id,
		VideoId:   e.VideoId,
		Embedding: e.EmbeddingValue.Slice(),
		CreatedAt: e.CreatedAt,
	}
}

func (m *SocialMapper) PromptEmbeddingToModel(e *entity.PromptEmbedding) *model.PromptEmbedding {
	if e == nil {
		return nil
	}
	return &model.PromptEmbedding{
		Id:             e.Id,
		VideoId:        e.VideoId,
		EmbeddingValue: pgvector.NewVector(e.Embedding),
		CreatedAt:      e.CreatedAt,
	}
}
