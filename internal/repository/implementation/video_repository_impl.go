package implementation

import (
	"context"
	"errors"
	"time"

	"prompttovideo-be/internal/entity"
	"prompttovideo-be/internal/mapper"
	"prompttovideo-be/internal/model"
	"prompttovideo-be/internal/repository/contract"
	"prompttovideo-be/internal/repository/specification"
	"prompttovideo-be/pkg/search"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VideoRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.VideoMapper
}

func NewVideoRepository(db *gorm.DB) contract.VideoRepository {
	return &VideoRepositoryImpl{
		db:     db,
		mapper: mapper.NewVideoMapper(),
	}
}

func (r *VideoRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *VideoRepositoryImpl) Create(ctx context.Context, video *entity.Video) error {
	modelVideo := r.mapper.ToModel(video)
	if err := r.db.WithContext(ctx).Create(modelVideo).Error; err != nil {
		return err
	}
	*video = *r.mapper.ToEntity(modelVideo)
	return nil
}

func (r *VideoRepositoryImpl) Update(ctx context.Context, video *entity.Video) error {
	modelVideo := r.mapper.ToModel(video)
	if err := r.db.WithContext(ctx).Save(modelVideo).Error; err != nil {
		return err
	}
	*video = *r.mapper.ToEntity(modelVideo)
	return nil
}

func (r *VideoRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Video{}, id).Error
}

func (r *VideoRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Video, error) {
	var modelVideo model.Video
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&modelVideo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ToEntity(&modelVideo), nil
}

func (r *VideoRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Video, error) {
	var modelVideos []*model.Video
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&modelVideos).Error; err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(modelVideos), nil
}

func (r *VideoRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Video{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *VideoRepositoryImpl) ClaimPending(ctx context.Context, id uuid.UUID, startedAt time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.Video{}).
		Where("id = ? AND status = ?", id, string(entity.VideoStatusPending)).
		Updates(map[string]interface{}{
			"status":     string(entity.VideoStatusProcessing),
			"started_at": startedAt,
		})

	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *VideoRepositoryImpl) MarkCompleted(ctx context.Context, id uuid.UUID, gcsURL, signedURL, thumbnailURL string, duration int, slug string) error {
	now := time.Now()
	updates := map[string]interface{}{
		"status":           string(entity.VideoStatusCompleted),
		"gcs_url":          gcsURL,
		"gcs_signed_url":   signedURL,
		"duration_seconds": duration,
		"completed_at":     now,
		"error_message":    nil,
	}
	if thumbnailURL != "" {
		updates["thumbnail_url"] = thumbnailURL
	}
	if slug != "" {
		updates["slug"] = slug
	}
	return r.db.WithContext(ctx).Model(&model.Video{}).Where("id = ?", id).Updates(updates).Error
}

func (r *VideoRepositoryImpl) MarkFailed(ctx context.Context, id uuid.UUID, status string, errorMessage string) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&model.Video{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        status,
			"error_message": errorMessage,
			"completed_at":  now,
		}).Error
}

func (r *VideoRepositoryImpl) SetVeoJobId(ctx context.Context, id uuid.UUID, jobId string) error {
	return r.db.WithContext(ctx).Model(&model.Video{}).Where("id = ?", id).
		Update("veo_job_id", jobId).Error
}

func (r *VideoRepositoryImpl) QueuePosition(ctx context.Context, priority int, queuedAt time.Time) (int64, error) {
	var ahead int64
	err := r.db.WithContext(ctx).Model(&model.Video{}).
		Where("status = ?", string(entity.VideoStatusPending)).
		Where("priority > ? OR (priority = ? AND queued_at < ?)", priority, priority, queuedAt).
		Count(&ahead).Error
	if err != nil {
		return 0, err
	}
	return ahead + 1, nil
}

func (r *VideoRepositoryImpl) IncrementViews(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Video{}).Where("id = ?", id).
		Update("views", gorm.Expr("views + 1")).Error
}

func (r *VideoRepositoryImpl) SetVisibility(ctx context.Context, id uuid.UUID, public bool, shareToken *string) error {
	updates := map[string]interface{}{
		"public": public,
	}
	if shareToken != nil {
		updates["share_token"] = *shareToken
	}
	return r.db.WithContext(ctx).Model(&model.Video{}).Where("id = ?", id).Updates(updates).Error
}

// Queries/Stats

func (r *VideoRepositoryImpl) SearchPublic(ctx context.Context, filters search.Filters, limit, offset int) ([]*entity.Video, error) {
	q := r.db.WithContext(ctx).Model(&model.Video{}).
		Where("videos.public = ? AND videos.status = ?", true, string(entity.VideoStatusCompleted))

	if filters.Query != "" {
		pattern := "%" + filters.Query + "%"
		q = q.Where("videos.prompt ILIKE ? OR videos.title ILIKE ?", pattern, pattern)
	}
	if filters.Creator != "" {
		q = q.Joins("JOIN users ON users.id = videos.user_id").
			Where("users.display_name ILIKE ?", "%"+filters.Creator+"%")
	}
	if filters.Quality != "" {
		q = q.Where("videos.quality = ?", filters.Quality)
	}

	var models []*model.Video
	err := q.Order("videos.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&models).Error

	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *VideoRepositoryImpl) SuggestPrompts(ctx context.Context, prefix string, limit int) ([]string, error) {
	var prompts []string
	err := r.db.WithContext(ctx).Model(&model.Video{}).
		Distinct("prompt").
		Where("public = ? AND status = ? AND prompt ILIKE ?", true, string(entity.VideoStatusCompleted), prefix+"%").
		Limit(limit).
		Pluck("prompt", &prompts).Error
	return prompts, err
}

func (r *VideoRepositoryImpl) CountByStatus(ctx context.Context, status string) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Video{}).Where("status = ?", status).Count(&count).Error
	return int(count), err
}

func (r *VideoRepositoryImpl) GetVideoGrowth(ctx context.Context) ([]map[string]interface{}, error) {
	var results []map[string]interface{}
	err := r.db.WithContext(ctx).Raw(`
		SELECT to_char(created_at, 'YYYY-MM-DD') as date, COUNT(*) as count
		FROM videos
		WHERE created_at > NOW() - INTERVAL '30 days'
		GROUP BY date
		ORDER BY date ASC
	`).Scan(&results).Error
	return results, err
}
