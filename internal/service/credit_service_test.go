package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"prompttovideo-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newCreditFixture() (*creditService, *fakeUserRepo, *fakeCreditRepo, *fakePublisher, *fakeEmailService) {
	userRepo := newFakeUserRepo()
	creditRepo := newFakeCreditRepo()
	pub := &fakePublisher{}
	email := &fakeEmailService{}
	uow := &fakeUnitOfWork{userRepo: userRepo, creditRepo: creditRepo}
	svc := NewCreditService(&fakeUowFactory{uow: uow}, pub, email, 5).(*creditService)
	return svc, userRepo, creditRepo, pub, email
}

func TestDebitInsufficientCredits(t *testing.T) {
	svc, userRepo, creditRepo, _, _ := newCreditFixture()
	userRepo.debitOk = false

	err := svc.Debit(context.Background(), uuid.New(), 10, entity.CreditSourceVideoGeneration, "Video generation", nil)

	assert.ErrorIs(t, err, ErrInsufficientCredits)
	assert.Empty(t, creditRepo.ledger, "no ledger row on a rejected debit")
}

func TestDebitWritesLedgerRow(t *testing.T) {
	svc, userRepo, creditRepo, _, _ := newCreditFixture()
	userId := uuid.New()
	userRepo.users[userId] = &entity.User{Id: userId, Credits: 20}

	ref := "video:abc"
	err := svc.Debit(context.Background(), userId, 10, entity.CreditSourceVideoGeneration, "Video generation", &ref)

	assert.NoError(t, err)
	assert.Equal(t, []int{10}, userRepo.debitCalls)
	if assert.Len(t, creditRepo.ledger, 1) {
		row := creditRepo.ledger[0]
		assert.Equal(t, entity.CreditTransactionDebit, row.Type)
		assert.Equal(t, 10, row.Amount)
		assert.Equal(t, &ref, row.ReferenceId)
	}
}

func TestDebitRejectsNonPositiveAmount(t *testing.T) {
	svc, userRepo, _, _, _ := newCreditFixture()

	err := svc.Debit(context.Background(), uuid.New(), 0, entity.CreditSourceVideoGeneration, "noop", nil)

	assert.Error(t, err)
	assert.Empty(t, userRepo.debitCalls)
}

func TestGrantDuplicateReferenceIsNoop(t *testing.T) {
	svc, userRepo, creditRepo, _, _ := newCreditFixture()
	userId := uuid.New()
	ref := "stripe:cs_123"

	assert.NoError(t, svc.Grant(context.Background(), userId, 50, entity.CreditSourcePurchase, "Purchased Pro", &ref))
	assert.NoError(t, svc.Grant(context.Background(), userId, 50, entity.CreditSourcePurchase, "Purchased Pro", &ref))

	assert.Len(t, creditRepo.ledger, 1, "replayed webhook must not pay twice")
	assert.Equal(t, []int{50}, userRepo.addedCredits)
}

func TestRefundIsIdempotentPerVideo(t *testing.T) {
	svc, userRepo, creditRepo, _, _ := newCreditFixture()
	userId := uuid.New()
	videoId := uuid.New()

	assert.NoError(t, svc.Refund(context.Background(), userId, videoId, 10, "Generation failed"))
	assert.NoError(t, svc.Refund(context.Background(), userId, videoId, 10, "Generation failed"))

	assert.Len(t, creditRepo.ledger, 1)
	assert.Equal(t, []int{10}, userRepo.addedCredits)
	assert.Equal(t, entity.CreditSourceRefund, creditRepo.ledger[0].Source)
}

func TestRefundZeroAmountIsNoop(t *testing.T) {
	svc, _, creditRepo, _, _ := newCreditFixture()

	assert.NoError(t, svc.Refund(context.Background(), uuid.New(), uuid.New(), 0, "free tier"))
	assert.Empty(t, creditRepo.ledger)
}

func TestGrantDailyCreditsSkipsPaidTiers(t *testing.T) {
	svc, userRepo, creditRepo, _, _ := newCreditFixture()
	user := &entity.User{Id: uuid.New(), SubscriptionTier: entity.TierPro, Credits: 0}
	userRepo.users[user.Id] = user

	assert.NoError(t, svc.GrantDailyCredits(context.Background(), user))
	assert.Empty(t, creditRepo.ledger)
	assert.False(t, userRepo.dailyTopupSet)
}

func TestGrantDailyCreditsOncePerDay(t *testing.T) {
	svc, userRepo, creditRepo, _, _ := newCreditFixture()
	user := &entity.User{Id: uuid.New(), SubscriptionTier: entity.TierFree, Credits: 0}
	userRepo.users[user.Id] = user

	assert.NoError(t, svc.GrantDailyCredits(context.Background(), user))
	assert.NoError(t, svc.GrantDailyCredits(context.Background(), user))

	assert.Len(t, creditRepo.ledger, 1)
	assert.Equal(t, 5, user.Credits)
	assert.True(t, userRepo.dailyTopupSet)
}

func TestGrantDailyCreditsAlreadyToppedUpToday(t *testing.T) {
	svc, userRepo, creditRepo, _, _ := newCreditFixture()
	now := time.Now().UTC()
	user := &entity.User{Id: uuid.New(), SubscriptionTier: entity.TierFree, LastDailyTopup: &now}
	userRepo.users[user.Id] = user

	assert.NoError(t, svc.GrantDailyCredits(context.Background(), user))
	assert.Empty(t, creditRepo.ledger)
}

func TestGrantUnlimitedIsIdempotent(t *testing.T) {
	svc, userRepo, creditRepo, _, _ := newCreditFixture()
	userId := uuid.New()

	assert.NoError(t, svc.GrantUnlimited(context.Background(), userId, "cs_unlimited_1"))
	assert.NoError(t, svc.GrantUnlimited(context.Background(), userId, "cs_unlimited_1"))

	assert.Len(t, creditRepo.ledger, 1)
	assert.True(t, userRepo.unlimitedSet)
}

func TestAwardReferralPaysBothSides(t *testing.T) {
	svc, userRepo, creditRepo, _, email := newCreditFixture()
	newUser := uuid.New()
	referrer := uuid.New()
	userRepo.users[referrer] = &entity.User{Id: referrer, Email: "referrer@example.com"}

	assert.NoError(t, svc.AwardReferral(context.Background(), newUser, referrer))

	assert.Len(t, creditRepo.ledger, 2)
	assert.Equal(t, []int{ReferralBonusCredits, ReferralBonusCredits}, userRepo.addedCredits)
	assert.Equal(t, []string{"referrer@example.com"}, email.referralBonuses)

	// A replayed signup must not double-pay or renotify either side.
	assert.NoError(t, svc.AwardReferral(context.Background(), newUser, referrer))
	assert.Len(t, creditRepo.ledger, 2)
	assert.Len(t, email.referralBonuses, 1)
}

func TestDailyReferenceEncodesDay(t *testing.T) {
	svc, userRepo, creditRepo, _, _ := newCreditFixture()
	user := &entity.User{Id: uuid.New(), SubscriptionTier: entity.TierFree}
	userRepo.users[user.Id] = user

	assert.NoError(t, svc.GrantDailyCredits(context.Background(), user))

	want := fmt.Sprintf("daily:%s:%s", user.Id, time.Now().UTC().Truncate(24*time.Hour).Format("2006-01-02"))
	if assert.Len(t, creditRepo.ledger, 1) {
		assert.Equal(t, want, *creditRepo.ledger[0].ReferenceId)
	}
}
