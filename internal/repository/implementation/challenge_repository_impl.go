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

type ChallengeRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChallengeMapper
}

func NewChallengeRepository(db *gorm.DB) contract.ChallengeRepository {
	return &ChallengeRepositoryImpl{
		db:     db,
		mapper: mapper.NewChallengeMapper(),
	}
}

func (r *ChallengeRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ChallengeRepositoryImpl) Create(ctx context.Context, challenge *entity.Challenge) error {
	m := r.mapper.ToModel(challenge)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*challenge = *r.mapper.ToEntity(m)
	return nil
}

func (r *ChallengeRepositoryImpl) Update(ctx context.Context, challenge *entity.Challenge) error {
	m := r.mapper.ToModel(challenge)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*challenge = *r.mapper.ToEntity(m)
	return nil
}

func (r *ChallengeRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Challenge, error) {
	var m model.Challenge
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ToEntity(&m), nil
}

func (r *ChallengeRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Challenge, error) {
	var models []*model.Challenge
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(models), nil
}

// Submissions

func (r *ChallengeRepositoryImpl) CreateSubmission(ctx context.Context, submission *entity.ChallengeSubmission) error {
	m := r.mapper.SubmissionToModel(submission)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*submission = *r.mapper.SubmissionToEntity(m)
	return nil
}

func (r *ChallengeRepositoryImpl) FindSubmission(ctx context.Context, specs ...specification.Specification) (*entity.ChallengeSubmission, error) {
	var m model.ChallengeSubmission
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.SubmissionToEntity(&m), nil
}

func (r *ChallengeRepositoryImpl) FindSubmissions(ctx context.Context, challengeId uuid.UUID) ([]*entity.ChallengeSubmission, error) {
	var models []*model.ChallengeSubmission
	err := r.db.WithContext(ctx).
		Where("challenge_id = ?", challengeId).
		Order("created_at ASC").
		Find(&models).Error

	if err != nil {
		return nil, err
	}
	return r.mapper.SubmissionsToEntities(models), nil
}

func (r *ChallengeRepositoryImpl) TopSubmissions(ctx context.Context, challengeId uuid.UUID, limit int) ([]*entity.ChallengeSubmission, error) {
	var models []*model.ChallengeSubmission
	err := r.db.WithContext(ctx).
		Where("challenge_id = ?", challengeId).
		Order("vote_count DESC, created_at ASC").
		Limit(limit).
		Find(&models).Error

	if err != nil {
		return nil, err
	}
	return r.mapper.SubmissionsToEntities(models), nil
}

func (r *ChallengeRepositoryImpl) SetSubmissionRank(ctx context.Context, submissionId uuid.UUID, rank int) error {
	return r.db.WithContext(ctx).Model(&model.ChallengeSubmission{}).Where("id = ?", submissionId).
		Update("rank", rank).Error
}

// Votes

func (r *ChallengeRepositoryImpl) CreateVote(ctx context.Context, vote *entity.ChallengeVote) (bool, error) {
	m := r.mapper.VoteToModel(vote)
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(m)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}

	err := r.db.WithContext(ctx).Model(&model.ChallengeSubmission{}).
		Where("id = ?", m.SubmissionId).
		Update("vote_count", gorm.Expr("vote_count + 1")).Error
	if err != nil {
		return true, err
	}

	*vote = *r.mapper.VoteToEntity(m)
	return true, nil
}

func (r *ChallengeRepositoryImpl) MarkPrizesAwarded(ctx context.Context, challengeId uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.Challenge{}).
		Where("id = ? AND prizes_awarded = ?", challengeId, false).
		Update("prizes_awarded", true)

	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
