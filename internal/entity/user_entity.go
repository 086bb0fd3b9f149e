package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string
type UserStatus string
type SubscriptionTier string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"

	UserStatusPending UserStatus = "pending"
	UserStatusActive  UserStatus = "active"
	UserStatusBlocked UserStatus = "blocked"

	TierFree       SubscriptionTier = "free"
	TierBasic      SubscriptionTier = "basic"
	TierPro        SubscriptionTier = "pro"
	TierEnterprise SubscriptionTier = "enterprise"
)

// UnlimitedCredits is the sentinel balance for unlimited-plan users.
const UnlimitedCredits = -1

type User struct {
	Id              uuid.UUID
	Email           string
	PasswordHash    *string
	DisplayName     string
	Role            UserRole
	Status          UserStatus
	EmailVerified   bool
	EmailVerifiedAt *time.Time
	AvatarURL       *string

	// Credits: non-negative balance, or the -1 unlimited sentinel.
	Credits          int
	SubscriptionTier SubscriptionTier
	LastDailyTopup   *time.Time

	// Referrals: code handed out to friends, and who referred this user.
	ReferralCode string
	ReferredBy   *uuid.UUID

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasUnlimitedCredits reports whether the balance is the unlimited sentinel.
func (u *User) HasUnlimitedCredits() bool {
	return u.Credits == UnlimitedCredits
}

// CanAfford reports whether the user can pay cost credits.
func (u *User) CanAfford(cost int) bool {
	return u.HasUnlimitedCredits() || u.Credits >= cost
}

type PasswordResetToken struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Token     string
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}

type EmailVerificationToken struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

type UserRefreshToken struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	Revoked   bool
	CreatedAt time.Time
	IpAddress string
	UserAgent string
}
