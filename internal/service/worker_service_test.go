package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"prompttovideo-be/internal/entity"
	"prompttovideo-be/pkg/events"
	"prompttovideo-be/pkg/veo"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newWorkerFixture() (*WorkerService, *fakeUnitOfWork, *fakeCreditRepo, *fakeVideoRepo, *fakePublisher) {
	userRepo := newFakeUserRepo()
	creditRepo := newFakeCreditRepo()
	videoRepo := &fakeVideoRepo{}
	uow := &fakeUnitOfWork{userRepo: userRepo, creditRepo: creditRepo, videoRepo: videoRepo}
	factory := &fakeUowFactory{uow: uow}
	pub := &fakePublisher{}

	w := &WorkerService{
		uowFactory:    factory,
		creditService: NewCreditService(factory, pub, &fakeEmailService{}, 5),
		publisher:     pub,
		logger:        fakeLogger{},
		costFree:      1,
		costPremium:   10,
	}
	return w, uow, creditRepo, videoRepo, pub
}

func TestFailMapsSafetyRefusalToViolationStatus(t *testing.T) {
	w, uow, creditRepo, videoRepo, pub := newWorkerFixture()

	video := &entity.Video{
		Id:      uuid.New(),
		UserId:  uuid.New(),
		Quality: entity.VideoQuality("free"),
		Prompt:  "something",
	}
	cause := &veo.ContentViolationError{Reasons: []string{"violence detected in prompt"}, FilteredCount: 1}

	w.fail(context.Background(), uow, video, cause)

	if assert.Len(t, videoRepo.failed, 1) {
		assert.Equal(t, string(entity.VideoStatusContentViolation), videoRepo.failed[0].Status)
	}
	if assert.Len(t, creditRepo.ledger, 1) {
		assert.Equal(t, fmt.Sprintf("refund:%s", video.Id), *creditRepo.ledger[0].ReferenceId)
		assert.Equal(t, 1, creditRepo.ledger[0].Amount)
	}
	if assert.Len(t, pub.events, 1) {
		assert.Equal(t, events.VideoViolation, pub.events[0].Type)
	}

	// A redelivered failure must not refund twice.
	w.fail(context.Background(), uow, video, cause)
	assert.Len(t, creditRepo.ledger, 1)
}

func TestFailKeepsFailedStatusForGenericErrors(t *testing.T) {
	w, uow, creditRepo, videoRepo, pub := newWorkerFixture()

	video := &entity.Video{
		Id:      uuid.New(),
		UserId:  uuid.New(),
		Quality: entity.VideoQuality("premium"),
		Prompt:  "something",
	}

	w.fail(context.Background(), uow, video, errors.New("upstream timeout"))

	if assert.Len(t, videoRepo.failed, 1) {
		assert.Equal(t, string(entity.VideoStatusFailed), videoRepo.failed[0].Status)
	}
	if assert.Len(t, creditRepo.ledger, 1) {
		assert.Equal(t, 10, creditRepo.ledger[0].Amount, "premium jobs refund the premium cost")
	}
	if assert.Len(t, pub.events, 1) {
		assert.Equal(t, events.VideoFailed, pub.events[0].Type)
	}
}
