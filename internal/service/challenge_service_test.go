package service

import (
	"context"
	"testing"
	"time"

	"prompttovideo-be/internal/entity"
	"prompttovideo-be/internal/repository/contract"
	"prompttovideo-be/internal/repository/specification"
	"prompttovideo-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeChallengeRepo struct {
	contract.ChallengeRepository

	challenges []*entity.Challenge
	top        []*entity.ChallengeSubmission

	awarded     map[uuid.UUID]bool
	rankedSubs  map[uuid.UUID]int
	markedCalls int
}

func newFakeChallengeRepo() *fakeChallengeRepo {
	return &fakeChallengeRepo{
		awarded:    make(map[uuid.UUID]bool),
		rankedSubs: make(map[uuid.UUID]int),
	}
}

func (f *fakeChallengeRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Challenge, error) {
	return f.challenges, nil
}

func (f *fakeChallengeRepo) MarkPrizesAwarded(ctx context.Context, challengeId uuid.UUID) (bool, error) {
	f.markedCalls++
	if f.awarded[challengeId] {
		return false, nil
	}
	f.awarded[challengeId] = true
	return true, nil
}

func (f *fakeChallengeRepo) TopSubmissions(ctx context.Context, challengeId uuid.UUID, limit int) ([]*entity.ChallengeSubmission, error) {
	if len(f.top) > limit {
		return f.top[:limit], nil
	}
	return f.top, nil
}

func (f *fakeChallengeRepo) SetSubmissionRank(ctx context.Context, submissionId uuid.UUID, rank int) error {
	f.rankedSubs[submissionId] = rank
	return nil
}

type fakeCreditService struct {
	ICreditService

	grants []grantCall
}

type grantCall struct {
	UserId uuid.UUID
	Amount int
	Ref    string
}

func (f *fakeCreditService) Grant(ctx context.Context, userId uuid.UUID, amount int, source entity.CreditSource, description string, referenceId *string) error {
	ref := ""
	if referenceId != nil {
		ref = *referenceId
	}
	f.grants = append(f.grants, grantCall{UserId: userId, Amount: amount, Ref: ref})
	return nil
}

type challengeUow struct {
	fakeUnitOfWork
	challengeRepo *fakeChallengeRepo
}

func (u *challengeUow) ChallengeRepository() contract.ChallengeRepository {
	return u.challengeRepo
}

func endedChallenge() *entity.Challenge {
	now := time.Now()
	return &entity.Challenge{
		Id:           uuid.New(),
		Title:        "Neon Cityscapes",
		StartsAt:     now.Add(-10 * 24 * time.Hour),
		EndsAt:       now.Add(-3 * 24 * time.Hour),
		VotingEndsAt: now.Add(-time.Hour),
	}
}

func newChallengeFixture(repo *fakeChallengeRepo) (IChallengeService, *fakeCreditService, *fakePublisher) {
	credits := &fakeCreditService{}
	pub := &fakePublisher{}
	uow := &challengeUow{challengeRepo: repo}
	svc := NewChallengeService(&fakeUowFactory{uow: uow}, credits, pub)
	return svc, credits, pub
}

func TestFinalizeDuePaysRankedPrizes(t *testing.T) {
	repo := newFakeChallengeRepo()
	repo.challenges = []*entity.Challenge{endedChallenge()}

	first := &entity.ChallengeSubmission{Id: uuid.New(), UserId: uuid.New(), VoteCount: 9}
	second := &entity.ChallengeSubmission{Id: uuid.New(), UserId: uuid.New(), VoteCount: 4}
	repo.top = []*entity.ChallengeSubmission{first, second}

	svc, credits, pub := newChallengeFixture(repo)

	assert.NoError(t, svc.FinalizeDue(context.Background()))

	assert.Equal(t, 1, repo.rankedSubs[first.Id])
	assert.Equal(t, 2, repo.rankedSubs[second.Id])

	if assert.Len(t, credits.grants, 2) {
		assert.Equal(t, entity.ChallengePrizes[0], credits.grants[0].Amount)
		assert.Equal(t, entity.ChallengePrizes[1], credits.grants[1].Amount)
		assert.Equal(t, first.UserId, credits.grants[0].UserId)
	}

	assert.Len(t, pub.events, 2)
	assert.Equal(t, events.ChallengeCompleted, pub.events[0].Type)
}

func TestFinalizeDueRunsOnce(t *testing.T) {
	repo := newFakeChallengeRepo()
	repo.challenges = []*entity.Challenge{endedChallenge()}
	repo.top = []*entity.ChallengeSubmission{{Id: uuid.New(), UserId: uuid.New(), VoteCount: 1}}

	svc, credits, _ := newChallengeFixture(repo)

	assert.NoError(t, svc.FinalizeDue(context.Background()))
	assert.NoError(t, svc.FinalizeDue(context.Background()))

	assert.Len(t, credits.grants, 1, "losing the flag flip must skip payout")
	assert.Equal(t, 2, repo.markedCalls)
}

func TestFinalizeDueSkipsOpenChallenges(t *testing.T) {
	repo := newFakeChallengeRepo()
	now := time.Now()
	repo.challenges = []*entity.Challenge{{
		Id:           uuid.New(),
		StartsAt:     now.Add(-time.Hour),
		EndsAt:       now.Add(24 * time.Hour),
		VotingEndsAt: now.Add(48 * time.Hour),
	}}

	svc, credits, _ := newChallengeFixture(repo)

	assert.NoError(t, svc.FinalizeDue(context.Background()))
	assert.Empty(t, credits.grants)
	assert.Zero(t, repo.markedCalls)
}
