package contract

import (
	"context"

	"prompttovideo-be/internal/entity"
	"prompttovideo-be/internal/repository/specification"

	"github.com/google/uuid"
)

type SocialRepository interface {
	// CreateFollow inserts unless the pair exists; reports insertion.
	CreateFollow(ctx context.Context, follow *entity.Follow) (bool, error)
	DeleteFollow(ctx context.Context, followerId, followedId uuid.UUID) error
	FindFollow(ctx context.Context, followerId, followedId uuid.UUID) (*entity.Follow, error)
	CountFollowers(ctx context.Context, userId uuid.UUID) (int64, error)
	CountFollowing(ctx context.Context, userId uuid.UUID) (int64, error)
	FindFollowerIds(ctx context.Context, userId uuid.UUID) ([]uuid.UUID, error)

	FindPromptPack(ctx context.Context, specs ...specification.Specification) (*entity.PromptPack, error)
	FindPromptPacks(ctx context.Context, specs ...specification.Specification) ([]*entity.PromptPack, error)
	CreatePromptPack(ctx context.Context, pack *entity.PromptPack) error
}

type PromptEmbeddingRepository interface {
	Upsert(ctx context.Context, embedding *entity.PromptEmbedding) error
	DeleteByVideoId(ctx context.Context, videoId uuid.UUID) error

	// FindSimilarVideoIds returns ids of public completed videos whose
	// prompt embeddings are nearest to the given vector, excluding the
	// source video.
	FindSimilarVideoIds(ctx context.Context, embedding []float32, excludeVideoId uuid.UUID, limit int) ([]uuid.UUID, error)
	FindByVideoId(ctx context.Context, videoId uuid.UUID) (*entity.PromptEmbedding, error)
}
