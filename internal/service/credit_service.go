package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"prompttovideo-be/internal/dto"
	"prompttovideo-be/internal/entity"
	"prompttovideo-be/internal/pkg/mailer"
	"prompttovideo-be/internal/repository/specification"
	"prompttovideo-be/internal/repository/unitofwork"
	"prompttovideo-be/pkg/events"

	"github.com/google/uuid"
)

// ReferralBonusCredits is granted to both sides of a referral.
const ReferralBonusCredits = 5

var ErrInsufficientCredits = errors.New("insufficient credits")

type ICreditService interface {
	GetBalance(ctx context.Context, userId uuid.UUID) (*dto.BalanceResponse, error)
	GetHistory(ctx context.Context, userId uuid.UUID, limit, offset int) (*dto.CreditHistoryResponse, error)

	// GrantDailyCredits tops up free-tier users once per UTC day.
	GrantDailyCredits(ctx context.Context, user *entity.User) error

	// Debit atomically charges the user and writes the ledger entry.
	// Returns ErrInsufficientCredits when the balance does not cover it.
	Debit(ctx context.Context, userId uuid.UUID, amount int, source entity.CreditSource, description string, referenceId *string) error

	// Grant credits with an idempotency reference. A duplicate reference
	// is a silent no-op.
	Grant(ctx context.Context, userId uuid.UUID, amount int, source entity.CreditSource, description string, referenceId *string) error

	GrantUnlimited(ctx context.Context, userId uuid.UUID, referenceId string) error

	// Refund returns the credits charged for a failed generation.
	Refund(ctx context.Context, userId uuid.UUID, videoId uuid.UUID, amount int, reason string) error

	AwardReferral(ctx context.Context, newUserId, referrerId uuid.UUID) error
	GetReferralStats(ctx context.Context, userId uuid.UUID) (*dto.ReferralStatsResponse, error)
}

type creditService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisher        IPublisherService
	emailService     mailer.IEmailService
	dailyFreeCredits int
}

func NewCreditService(uowFactory unitofwork.RepositoryFactory, publisher IPublisherService, emailService mailer.IEmailService, dailyFreeCredits int) ICreditService {
	return &creditService{
		uowFactory:       uowFactory,
		publisher:        publisher,
		emailService:     emailService,
		dailyFreeCredits: dailyFreeCredits,
	}
}

func (s *creditService) GetBalance(ctx context.Context, userId uuid.UUID) (*dto.BalanceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}

	if err := s.GrantDailyCredits(ctx, user); err != nil {
		fmt.Printf("[WARN] Daily credit topup failed for %s: %v\n", userId, err)
	}

	return &dto.BalanceResponse{
		Balance:   user.Credits,
		Unlimited: user.HasUnlimitedCredits(),
	}, nil
}

func (s *creditService) GetHistory(ctx context.Context, userId uuid.UUID, limit, offset int) (*dto.CreditHistoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if limit <= 0 || limit > 100 {
		limit = 20
	}

	txs, err := uow.CreditRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	if err != nil {
		return nil, err
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil || user == nil {
		return nil, errors.New("user not found")
	}

	res := &dto.CreditHistoryResponse{
		Transactions: make([]dto.CreditTransactionResponse, 0, len(txs)),
		Balance:      user.Credits,
		Unlimited:    user.HasUnlimitedCredits(),
	}
	for _, tx := range txs {
		res.Transactions = append(res.Transactions, dto.CreditTransactionResponse{
			Id:          tx.Id,
			Amount:      tx.Amount,
			Type:        string(tx.Type),
			Source:      string(tx.Source),
			Description: tx.Description,
			CreatedAt:   tx.CreatedAt,
		})
	}
	return res, nil
}

func (s *creditService) GrantDailyCredits(ctx context.Context, user *entity.User) error {
	if user.SubscriptionTier != entity.TierFree || user.HasUnlimitedCredits() {
		return nil
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	if user.LastDailyTopup != nil && !user.LastDailyTopup.UTC().Before(today) {
		return nil
	}

	// Reference encodes the day so a concurrent double-grant collides on
	// the ledger's unique index instead of paying twice.
	ref := fmt.Sprintf("daily:%s:%s", user.Id, today.Format("2006-01-02"))
	if err := s.Grant(ctx, user.Id, s.dailyFreeCredits, entity.CreditSourceDaily, "Daily free credits", &ref); err != nil {
		return err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.UserRepository().MarkDailyTopup(ctx, user.Id); err != nil {
		return err
	}
	user.Credits += s.dailyFreeCredits
	now := time.Now()
	user.LastDailyTopup = &now
	return nil
}

func (s *creditService) Debit(ctx context.Context, userId uuid.UUID, amount int, source entity.CreditSource, description string, referenceId *string) error {
	if amount <= 0 {
		return errors.New("debit amount must be positive")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	ok, err := uow.UserRepository().TryDebit(ctx, userId, amount)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInsufficientCredits
	}

	tx := &entity.CreditTransaction{
		Id:          uuid.New(),
		UserId:      userId,
		Amount:      amount,
		Type:        entity.CreditTransactionDebit,
		Source:      source,
		Description: description,
		ReferenceId: referenceId,
		CreatedAt:   time.Now(),
	}
	if err := uow.CreditRepository().Create(ctx, tx); err != nil {
		return err
	}

	return uow.Commit()
}

func (s *creditService) Grant(ctx context.Context, userId uuid.UUID, amount int, source entity.CreditSource, description string, referenceId *string) error {
	if amount <= 0 {
		return errors.New("grant amount must be positive")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	if referenceId != nil {
		exists, err := uow.CreditRepository().ExistsByReference(ctx, *referenceId)
		if err != nil {
			return err
		}
		if exists {
			return nil
		}
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.UserRepository().AddCredits(ctx, userId, amount); err != nil {
		return err
	}

	tx := &entity.CreditTransaction{
		Id:          uuid.New(),
		UserId:      userId,
		Amount:      amount,
		Type:        entity.CreditTransactionCredit,
		Source:      source,
		Description: description,
		ReferenceId: referenceId,
		CreatedAt:   time.Now(),
	}
	if err := uow.CreditRepository().Create(ctx, tx); err != nil {
		return err
	}

	return uow.Commit()
}

func (s *creditService) GrantUnlimited(ctx context.Context, userId uuid.UUID, referenceId string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	exists, err := uow.CreditRepository().ExistsByReference(ctx, referenceId)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.UserRepository().SetUnlimited(ctx, userId); err != nil {
		return err
	}

	// The ledger records the purchase with zero credit movement; the
	// sentinel balance carries the entitlement.
	tx := &entity.CreditTransaction{
		Id:          uuid.New(),
		UserId:      userId,
		Amount:      1,
		Type:        entity.CreditTransactionCredit,
		Source:      entity.CreditSourcePurchase,
		Description: "Unlimited plan activated",
		ReferenceId: &referenceId,
		CreatedAt:   time.Now(),
	}
	if err := uow.CreditRepository().Create(ctx, tx); err != nil {
		return err
	}

	return uow.Commit()
}

func (s *creditService) Refund(ctx context.Context, userId uuid.UUID, videoId uuid.UUID, amount int, reason string) error {
	if amount <= 0 {
		return nil
	}
	ref := fmt.Sprintf("refund:%s", videoId)
	return s.Grant(ctx, userId, amount, entity.CreditSourceRefund, reason, &ref)
}

func (s *creditService) AwardReferral(ctx context.Context, newUserId, referrerId uuid.UUID) error {
	refNew := fmt.Sprintf("referral:%s:referee", newUserId)
	refOld := fmt.Sprintf("referral:%s:referrer", newUserId)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	alreadyAwarded, err := uow.CreditRepository().ExistsByReference(ctx, refOld)
	if err != nil {
		return err
	}

	if err := s.Grant(ctx, newUserId, ReferralBonusCredits, entity.CreditSourceReferral, "Referral signup bonus", &refNew); err != nil {
		return err
	}
	if err := s.Grant(ctx, referrerId, ReferralBonusCredits, entity.CreditSourceReferral, "Referral reward", &refOld); err != nil {
		return err
	}

	// Event and email fire only on the first award; replayed
	// verifications must not renotify the referrer.
	if alreadyAwarded {
		return nil
	}

	if s.publisher != nil {
		_ = s.publisher.PublishEvent(ctx, events.ReferralApplied, map[string]interface{}{
			"user_id": referrerId.String(),
			"credits": ReferralBonusCredits,
		})
	}
	if s.emailService != nil {
		referrer, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: referrerId})
		if err == nil && referrer != nil {
			if err := s.emailService.SendReferralBonus(referrer.Email, ReferralBonusCredits); err != nil {
				fmt.Printf("[WARN] Referral bonus email to %s failed: %v\n", referrer.Email, err)
			}
		}
	}
	return nil
}

func (s *creditService) GetReferralStats(ctx context.Context, userId uuid.UUID) (*dto.ReferralStatsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil || user == nil {
		return nil, errors.New("user not found")
	}

	referred, err := uow.UserRepository().Count(ctx, specification.Filter("referred_by", userId))
	if err != nil {
		return nil, err
	}

	txs, err := uow.CreditRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.Filter("source", string(entity.CreditSourceReferral)),
	)
	if err != nil {
		return nil, err
	}

	earned := 0
	for _, tx := range txs {
		earned += tx.Signed()
	}

	return &dto.ReferralStatsResponse{
		ReferralCode:  user.ReferralCode,
		ReferredCount: referred,
		CreditsEarned: earned,
	}, nil
}
