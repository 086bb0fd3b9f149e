package mapper

import (
	"prompttovideo-be/internal/entity"
	"prompttovideo-be/internal/model"
)

type VideoMapper struct{}

func NewVideoMapper() *VideoMapper {
	return &VideoMapper{}
}

func (m *VideoMapper) ToEntity(v *model.Video) *entity.Video {
	if v == nil {
		return nil
	}
	return &entity.Video{
		Id:              v.Id,
		UserId:          v.UserId,
		Prompt:          v.Prompt,
		Title:           v.Title,
		Quality:         entity.VideoQuality(v.Quality),
		Status:          entity.VideoStatus(v.Status),
		VeoJobId:        v.VeoJobId,
		GCSUrl:          v.GCSUrl,
		GCSSignedUrl:    v.GCSSignedUrl,
		ThumbnailUrl:    v.ThumbnailUrl,
		ErrorMessage:    v.ErrorMessage,
		Priority:        v.Priority,
		QueuedAt:        v.QueuedAt,
		StartedAt:       v.StartedAt,
		CompletedAt:     v.CompletedAt,
		DurationSeconds: v.DurationSeconds,
		Public:          v.Public,
		Slug:            v.Slug,
		ShareToken:      v.ShareToken,
		Views:           v.Views,
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
	}
}

func (m *VideoMapper) ToModel(v *entity.Video) *model.Video {
	if v == nil {
		return nil
	}
	return &model.Video{
		Id:              v.Id,
		UserId:          v.UserId,
		Prompt:          v.Prompt,
		Title:           v.Title,
		Quality:         string(v.Quality),
		Status:          string(v.Status),
		VeoJobId:        v.VeoJobId,
		GCSUrl:          v.GCSUrl,
		GCSSignedUrl:    v.GCSSignedUrl,
		ThumbnailUrl:    v.ThumbnailUrl,
		ErrorMessage:    v.ErrorMessage,
		Priority:        v.Priority,
		QueuedAt:        v.QueuedAt,
		StartedAt:       v.StartedAt,
		CompletedAt:     v.CompletedAt,
		DurationSeconds: v.DurationSeconds,
		Public:          v.Public,
		Slug:            v.Slug,
		ShareToken:      v.ShareToken,
		Views:           v.Views,
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
	}
}

func (m *VideoMapper) ToEntities(videos []*model.Video) []*entity.Video {
	entities := make([]*entity.Video, len(videos))
	for i, v := range videos {
		entities[i] = m.ToEntity(v)
	}
	return entities
}

func (m *VideoMapper) ToModels(videos []*entity.Video) []*model.Video {
	models := make([]*model.Video, len(videos))
	for i, v := range videos {
		models[i] = m.ToModel(v)
	}
	return models
}
