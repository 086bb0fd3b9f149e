package service

import (
	"context"
	"time"

	"prompttovideo-be/internal/entity"
	"prompttovideo-be/internal/pkg/logger"
	"prompttovideo-be/internal/repository/contract"
	"prompttovideo-be/internal/repository/specification"
	"prompttovideo-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// Fakes embed the contract interface so unstubbed methods panic loudly
// instead of returning zero values.

type fakeUserRepo struct {
	contract.UserRepository

	users map[uuid.UUID]*entity.User

	debitOk    bool
	debitCalls []int

	addedCredits  []int
	unlimitedSet  bool
	dailyTopupSet bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User), debitOk: true}
}

func (f *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	for _, spec := range specs {
		if byID, ok := spec.(specification.ByID); ok {
			return f.users[byID.ID], nil
		}
	}
	return nil, nil
}

// Balance mutations are recorded, not applied: the service keeps its
// own entity copies in sync, so applying them here would double-count.
func (f *fakeUserRepo) TryDebit(ctx context.Context, userId uuid.UUID, amount int) (bool, error) {
	f.debitCalls = append(f.debitCalls, amount)
	return f.debitOk, nil
}

func (f *fakeUserRepo) AddCredits(ctx context.Context, userId uuid.UUID, amount int) error {
	f.addedCredits = append(f.addedCredits, amount)
	return nil
}

func (f *fakeUserRepo) SetUnlimited(ctx context.Context, userId uuid.UUID) error {
	f.unlimitedSet = true
	return nil
}

func (f *fakeUserRepo) MarkDailyTopup(ctx context.Context, userId uuid.UUID) error {
	f.dailyTopupSet = true
	return nil
}

type fakeCreditRepo struct {
	contract.CreditRepository

	ledger     []*entity.CreditTransaction
	references map[string]bool
}

func newFakeCreditRepo() *fakeCreditRepo {
	return &fakeCreditRepo{references: make(map[string]bool)}
}

func (f *fakeCreditRepo) Create(ctx context.Context, tx *entity.CreditTransaction) error {
	f.ledger = append(f.ledger, tx)
	if tx.ReferenceId != nil {
		f.references[*tx.ReferenceId] = true
	}
	return nil
}

func (f *fakeCreditRepo) ExistsByReference(ctx context.Context, referenceId string) (bool, error) {
	return f.references[referenceId], nil
}

func (f *fakeCreditRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CreditTransaction, error) {
	return f.ledger, nil
}

type fakeVideoRepo struct {
	contract.VideoRepository

	created []*entity.Video
	failed  []failedMark
}

type failedMark struct {
	Id     uuid.UUID
	Status string
	Reason string
}

func (f *fakeVideoRepo) Create(ctx context.Context, video *entity.Video) error {
	f.created = append(f.created, video)
	return nil
}

func (f *fakeVideoRepo) MarkFailed(ctx context.Context, id uuid.UUID, status string, errorMessage string) error {
	f.failed = append(f.failed, failedMark{Id: id, Status: status, Reason: errorMessage})
	return nil
}

func (f *fakeVideoRepo) QueuePosition(ctx context.Context, priority int, queuedAt time.Time) (int64, error) {
	return 0, nil
}

// fakeUnitOfWork hands out the same fakes for every request and treats
// transactions as no-ops while counting them.
type fakeUnitOfWork struct {
	unitofwork.UnitOfWork

	userRepo   *fakeUserRepo
	creditRepo *fakeCreditRepo
	videoRepo  *fakeVideoRepo

	commits   int
	rollbacks int
}

func (f *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }

func (f *fakeUnitOfWork) Commit() error {
	f.commits++
	return nil
}

func (f *fakeUnitOfWork) Rollback() error {
	f.rollbacks++
	return nil
}

func (f *fakeUnitOfWork) UserRepository() contract.UserRepository     { return f.userRepo }
func (f *fakeUnitOfWork) CreditRepository() contract.CreditRepository { return f.creditRepo }
func (f *fakeUnitOfWork) VideoRepository() contract.VideoRepository   { return f.videoRepo }

type fakeUowFactory struct {
	uow unitofwork.UnitOfWork
}

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

// fakePublisher records every event published on the in-process bus.
type fakePublisher struct {
	events []publishedEvent
}

type publishedEvent struct {
	Type string
	Data map[string]interface{}
}

func (f *fakePublisher) Publish(ctx context.Context, payload []byte) error { return nil }

func (f *fakePublisher) PublishEvent(ctx context.Context, eventType string, data map[string]interface{}) error {
	f.events = append(f.events, publishedEvent{Type: eventType, Data: data})
	return nil
}

// fakeEmailService records referral notifications and swallows the rest.
type fakeEmailService struct {
	referralBonuses []string
}

func (f *fakeEmailService) SendOTP(toEmail, otp string) error                   { return nil }
func (f *fakeEmailService) SendResetToken(toEmail, token string) error          { return nil }
func (f *fakeEmailService) SendVideoReady(toEmail, prompt, watchLink string) error { return nil }

func (f *fakeEmailService) SendReferralBonus(toEmail string, credits int) error {
	f.referralBonuses = append(f.referralBonuses, toEmail)
	return nil
}

type fakeLogger struct{}

func (fakeLogger) Debug(module, message string, details map[string]interface{}) {}
func (fakeLogger) Info(module, message string, details map[string]interface{})  {}
func (fakeLogger) Warn(module, message string, details map[string]interface{})  {}
func (fakeLogger) Error(module, message string, details map[string]interface{}) {}
func (fakeLogger) Sync() error                                                  { return nil }

func (fakeLogger) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	return nil, nil
}

func (fakeLogger) GetLogById(id string) (*logger.LogEntry, error) { return nil, nil }
