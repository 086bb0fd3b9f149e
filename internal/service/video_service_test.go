package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"prompttovideo-be/internal/dto"
	"prompttovideo-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSlugFromPrompt(t *testing.T) {
	id := uuid.MustParse("a1b2c3d4-0000-0000-0000-000000000000")

	tests := []struct {
		name   string
		prompt string
		want   string
	}{
		{
			name:   "short prompt",
			prompt: "A dragon over mountains",
			want:   "a-dragon-over-mountains-a1b2c3d4",
		},
		{
			name:   "truncated to six words",
			prompt: "one two three four five six seven eight",
			want:   "one-two-three-four-five-six-a1b2c3d4",
		},
		{
			name:   "special characters stripped",
			prompt: "Néon city! (at night)",
			want:   "n-on-city-at-night-a1b2c3d4",
		},
		{
			name:   "empty prompt falls back",
			prompt: "",
			want:   "video-a1b2c3d4",
		},
		{
			name:   "only symbols falls back",
			prompt: "!!! ???",
			want:   "video-a1b2c3d4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slugFromPrompt(tt.prompt, id)
			assert.Equal(t, tt.want, got)
			assert.False(t, strings.ContainsAny(got, " !?()"), "slug must be url safe")
		})
	}
}

func TestNormalizePage(t *testing.T) {
	page, size := normalizePage(0, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, size)

	page, size = normalizePage(3, 500)
	assert.Equal(t, 3, page)
	assert.Equal(t, 20, size, "oversized page size clamps to default")

	page, size = normalizePage(2, 50)
	assert.Equal(t, 2, page)
	assert.Equal(t, 50, size)
}

func newVideoFixture() (*videoService, *fakeUserRepo, *fakeCreditRepo, *fakeVideoRepo) {
	userRepo := newFakeUserRepo()
	creditRepo := newFakeCreditRepo()
	videoRepo := &fakeVideoRepo{}
	uow := &fakeUnitOfWork{userRepo: userRepo, creditRepo: creditRepo, videoRepo: videoRepo}
	factory := &fakeUowFactory{uow: uow}
	credits := NewCreditService(factory, &fakePublisher{}, &fakeEmailService{}, 5)
	svc := NewVideoService(factory, nil, credits, nil, 1, 10, "http://localhost:3000").(*videoService)
	return svc, userRepo, creditRepo, videoRepo
}

func TestGenerateInsufficientCredits(t *testing.T) {
	svc, userRepo, creditRepo, videoRepo := newVideoFixture()
	userId := uuid.New()
	userRepo.users[userId] = &entity.User{Id: userId, SubscriptionTier: entity.TierPro}
	userRepo.debitOk = false

	resp, err := svc.Generate(context.Background(), userId, &dto.GenerateVideoRequest{Prompt: "a dragon over mountains"})

	assert.ErrorIs(t, err, ErrInsufficientCredits)
	assert.Nil(t, resp)
	assert.Empty(t, videoRepo.created, "no pending row for a rejected charge")
	assert.Empty(t, creditRepo.ledger)
}

func TestGenerateRefundsWhenQueueUnavailable(t *testing.T) {
	svc, userRepo, creditRepo, videoRepo := newVideoFixture()
	userId := uuid.New()
	userRepo.users[userId] = &entity.User{Id: userId, Credits: 20, SubscriptionTier: entity.TierPro}

	resp, err := svc.Generate(context.Background(), userId, &dto.GenerateVideoRequest{Prompt: "a dragon over mountains"})

	assert.Error(t, err)
	assert.Nil(t, resp)

	if assert.Len(t, videoRepo.failed, 1) {
		assert.Equal(t, string(entity.VideoStatusFailed), videoRepo.failed[0].Status)
	}

	// The charge and its matching refund both hit the ledger.
	videoId := videoRepo.created[0].Id
	var refs []string
	for _, row := range creditRepo.ledger {
		if row.ReferenceId != nil {
			refs = append(refs, *row.ReferenceId)
		}
	}
	assert.Contains(t, refs, fmt.Sprintf("video:%s", videoId))
	assert.Contains(t, refs, fmt.Sprintf("refund:%s", videoId))
}
