package implementation

import (
	"context"
	"errors"

	"prompttovideo-be/internal/entity"
	"prompttovideo-be/internal/mapper"
	"prompttovideo-be/internal/model"
	"prompttovideo-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PromptEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SocialMapper
}

func NewPromptEmbeddingRepository(db *gorm.DB) contract.PromptEmbeddingRepository {
	return &PromptEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewSocialMapper(),
	}
}

func (r *PromptEmbeddingRepositoryImpl) Upsert(ctx context.Context, embedding *entity.PromptEmbedding) error {
	m := r.mapper.PromptEmbeddingToModel(embedding)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "video_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"embedding_value"}),
	}).Create(m).Error
	if err != nil {
		return err
	}
	*embedding = *r.mapper.PromptEmbeddingToEntity(m)
	return nil
}

func (r *PromptEmbeddingRepositoryImpl) DeleteByVideoId(ctx context.Context, videoId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("video_id = ?", videoId).Delete(&model.PromptEmbedding{}).Error
}

func (r *PromptEmbeddingRepositoryImpl) FindSimilarVideoIds(ctx context.Context, embedding []float32, excludeVideoId uuid.UUID, limit int) ([]uuid.UUID, error) {
	if limit <= 0 {
		limit = 5
	}

	// Cosine distance ordering: embedding_value <=> query_vector. Join
	// videos so private or unfinished work never leaks into suggestions.
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&model.PromptEmbedding{}).
		Joins("JOIN videos ON videos.id = prompt_embeddings.video_id").
		Where("videos.public = ? AND videos.status = ?", true, "completed").
		Where("prompt_embeddings.video_id != ?", excludeVideoId).
		Clauses(clause.OrderBy{Expression: clause.Expr{
			SQL:  "embedding_value <=> ?",
			Vars: []interface{}{pgvector.NewVector(embedding)},
		}}).
		Limit(limit).
		Pluck("prompt_embeddings.video_id", &ids).Error

	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *PromptEmbeddingRepositoryImpl) FindByVideoId(ctx context.Context, videoId uuid.UUID) (*entity.PromptEmbedding, error) {
	var m model.PromptEmbedding
	err := r.db.WithContext(ctx).Where("video_id = ?", videoId).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.PromptEmbeddingToEntity(&m), nil
}
