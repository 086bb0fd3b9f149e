package contract

import (
	"context"
	"time"

	"prompttovideo-be/internal/entity"
	"prompttovideo-be/internal/repository/specification"
	"prompttovideo-be/pkg/search"

	"github.com/google/uuid"
)

type VideoRepository interface {
	Create(ctx context.Context, video *entity.Video) error
	Update(ctx context.Context, video *entity.Video) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Video, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Video, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// ClaimPending flips pending to processing iff no other worker got
	// there first. This is the per-request exclusive work lease.
	ClaimPending(ctx context.Context, id uuid.UUID, startedAt time.Time) (bool, error)

	// Lifecycle writes from the worker.
	MarkCompleted(ctx context.Context, id uuid.UUID, gcsURL, signedURL, thumbnailURL string, duration int, slug string) error
	MarkFailed(ctx context.Context, id uuid.UUID, status string, errorMessage string) error
	SetVeoJobId(ctx context.Context, id uuid.UUID, jobId string) error

	// QueuePosition counts pending rows served before the given request:
	// strictly higher priority, or equal priority and earlier queued_at.
	QueuePosition(ctx context.Context, priority int, queuedAt time.Time) (int64, error)

	IncrementViews(ctx context.Context, id uuid.UUID) error
	SetVisibility(ctx context.Context, id uuid.UUID, public bool, shareToken *string) error

	// Queries/Stats
	SearchPublic(ctx context.Context, filters search.Filters, limit, offset int) ([]*entity.Video, error)
	SuggestPrompts(ctx context.Context, prefix string, limit int) ([]string, error)
	CountByStatus(ctx context.Context, status string) (int, error)
	GetVideoGrowth(ctx context.Context) ([]map[string]interface{}, error)
}
