package mapper

import (
	"prompttovideo-be/internal/entity"
	"prompttovideo-be/internal/model"
)

type ChallengeMapper struct{}

func NewChallengeMapper() *ChallengeMapper {
	return &ChallengeMapper{}
}

func (m *ChallengeMapper) ToEntity(c *model.Challenge) *entity.Challenge {
	if c == nil {
		return nil
	}
	return &entity.Challenge{
		Id:            c.Id,
		Title:         c.Title,
		Description:   c.Description,
		Theme:         c.Theme,
		StartsAt:      c.StartsAt,
		EndsAt:        c.EndsAt,
		VotingEndsAt:  c.VotingEndsAt,
		PrizesAwarded: c.PrizesAwarded,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func (m *ChallengeMapper) ToModel(c *entity.Challenge) *model.Challenge {
	if c == nil {
		return nil
	}
	return &model.Challenge{
		Id:            c.Id,
		Title:         c.Title,
		Description:   c.Description,
		Theme:         c.Theme,
		StartsAt:      c.StartsAt,
		EndsAt:        c.EndsAt,
		VotingEndsAt:  c.VotingEndsAt,
		PrizesAwarded: c.PrizesAwarded,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func (m *ChallengeMapper) ToEntities(challenges []*model.Challenge) []*entity.Challenge {
	entities := make([]*entity.Challenge, len(challenges))
	for i, c := range challenges {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

func (m *ChallengeMapper) SubmissionToEntity(s *model.ChallengeSubmission) *entity.ChallengeSubmission {
	if s == nil {
		return nil
	}
	return &entity.ChallengeSubmission{
		Id:          s.Id,
		ChallengeId: s.ChallengeId,
		UserId:      s.UserId,
		VideoId:     s.VideoId,
		VoteCount:   s.VoteCount,
		Rank:        s.Rank,
		CreatedAt:   s.CreatedAt,
	}
}

func (m *ChallengeMapper) SubmissionToModel(s *entity.ChallengeSubmission) *model.ChallengeSubmission {
	if s == nil {
		return nil
	}
	return &model.ChallengeSubmission{
		Id:          s.Id,
		ChallengeId: s.ChallengeId,
		UserId:      s.UserId,
		VideoId:     s.VideoId,
		VoteCount:   s.VoteCount,
		Rank:        s.Rank,
		CreatedAt:   s.CreatedAt,
	}
}

func (m *ChallengeMapper) SubmissionsToEntities(subs []*model.ChallengeSubmission) []*entity.ChallengeSubmission {
	entities := make([]*entity.ChallengeSubmission, len(subs))
	for i, s := range subs {
		entities[i] = m.SubmissionToEntity(s)
	}
	return entities
}

func (m *ChallengeMapper) VoteToEntity(v *model.ChallengeVote) *entity.ChallengeVote {
	if v == nil {
		return nil
	}
	return &entity.ChallengeVote{
		Id:           v.Id,
		SubmissionId: v.SubmissionId,
		UserId:       v.UserId,
		CreatedAt:    v.CreatedAt,
	}
}

func (m *ChallengeMapper) VoteToModel(v *entity.ChallengeVote) *model.ChallengeVote {
	if v == nil {
		return nil
	}
	return &model.ChallengeVote{
		Id:           v.Id,
		SubmissionId: v.SubmissionId,
		UserId:       v.UserId,
		CreatedAt:    v.CreatedAt,
	}
}
