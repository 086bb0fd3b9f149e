package implementation

import (
	"context"
	"errors"

	"prompttovideo-be/internal/entity"
	"prompttovideo-be/internal/mapper"
	"prompttovideo-be/internal/model"
	"prompttovideo-be/internal/repository/contract"
	"prompttovideo-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SocialRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SocialMapper
}

func NewSocialRepository(db *gorm.DB) contract.SocialRepository {
	return &SocialRepositoryImpl{
		db:     db,
		mapper: mapper.NewSocialMapper(),
	}
}

func (r *SocialRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SocialRepositoryImpl) CreateFollow(ctx context.Context, follow *entity.Follow) (bool, error) {
	m := r.mapper.FollowToModel(follow)
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(m)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}
	*follow = *r.mapper.FollowToEntity(m)
	return true, nil
}

func (r *SocialRepositoryImpl) DeleteFollow(ctx context.Context, followerId, followedId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("follower_id = ? AND followed_id = ?", followerId, followedId).
		Delete(&model.Follow{}).Error
}

func (r *SocialRepositoryImpl) FindFollow(ctx context.Context, followerId, followedId uuid.UUID) (*entity.Follow, error) {
	var m model.Follow
	err := r.db.WithContext(ctx).
		Where("follower_id = ? AND followed_id = ?", followerId, followedId).
		First(&m).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.FollowToEntity(&m), nil
}

func (r *SocialRepositoryImpl) CountFollowers(ctx context.Context, userId uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Follow{}).Where("followed_id = ?", userId).Count(&count).Error
	return count, err
}

func (r *SocialRepositoryImpl) CountFollowing(ctx context.Context, userId uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Follow{}).Where("follower_id = ?", userId).Count(&count).Error
	return count, err
}

func (r *SocialRepositoryImpl) FindFollowerIds(ctx context.Context, userId uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&model.Follow{}).
		Where("followed_id = ?", userId).
		Pluck("follower_id", &ids).Error
	return ids, err
}

// Prompt Packs

func (r *SocialRepositoryImpl) FindPromptPack(ctx context.Context, specs ...specification.Specification) (*entity.PromptPack, error) {
	var m model.PromptPack
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.PromptPackToEntity(&m), nil
}

func (r *SocialRepositoryImpl) FindPromptPacks(ctx context.Context, specs ...specification.Specification) ([]*entity.PromptPack, error) {
	var models []*model.PromptPack
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	return r.mapper.PromptPacksToEntities(models), nil
}

func (r *SocialRepositoryImpl) CreatePromptPack(ctx context.Context, pack *entity.PromptPack) error {
	m := r.mapper.PromptPackToModel(pack)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*pack = *r.mapper.PromptPackToEntity(m)
	return nil
}
