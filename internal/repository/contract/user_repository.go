package contract

import (
	"context"

	"prompttovideo-be/internal/entity"
	"prompttovideo-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// Credit balance mutations. TryDebit performs a conditional decrement
	// that never drives a non-sentinel balance negative; it reports
	// whether the debit was applied.
	TryDebit(ctx context.Context, userId uuid.UUID, amount int) (bool, error)
	AddCredits(ctx context.Context, userId uuid.UUID, amount int) error
	SetUnlimited(ctx context.Context, userId uuid.UUID) error
	SetSubscriptionTier(ctx context.Context, userId uuid.UUID, tier string) error
	MarkDailyTopup(ctx context.Context, userId uuid.UUID) error

	FindByReferralCode(ctx context.Context, code string) (*entity.User, error)

	// Token Management
	CreatePasswordResetToken(ctx context.Context, token *entity.PasswordResetToken) error
	FindPasswordResetToken(ctx context.Context, specs ...specification.Specification) (*entity.PasswordResetToken, error)
	MarkTokenUsed(ctx context.Context, id uuid.UUID) error

	CreateEmailVerificationToken(ctx context.Context, token *entity.EmailVerificationToken) error
	FindEmailVerificationToken(ctx context.Context, specs ...specification.Specification) (*entity.EmailVerificationToken, error)
	DeleteEmailVerificationToken(ctx context.Context, id uuid.UUID) error

	CreateRefreshToken(ctx context.Context, token *entity.UserRefreshToken) error
	RevokeRefreshToken(ctx context.Context, tokenHash string) error

	// Business Specific
	ActivateUser(ctx context.Context, userId uuid.UUID) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	UpdateAvatar(ctx context.Context, userId uuid.UUID, avatarURL string) error
	UpdatePassword(ctx context.Context, userId uuid.UUID, hash string) error
	UpdateProfile(ctx context.Context, userId uuid.UUID, displayName string, avatarURL *string) error

	// Queries/Stats
	SearchUsers(ctx context.Context, query string, limit, offset int) ([]*entity.User, error)
	GetUserGrowth(ctx context.Context) ([]map[string]interface{}, error)
	CountByTier(ctx context.Context, tier string) (int, error)
}
