package entity

import (
	"time"

	"github.com/google/uuid"
)

// Follow: one row per (follower, followed) pair.
type Follow struct {
	Id         uuid.UUID
	FollowerId uuid.UUID
	FollowedId uuid.UUID
	CreatedAt  time.Time
}

type NotificationType string

const (
	NotificationVideoCompleted   NotificationType = "video_completed"
	NotificationVideoFailed      NotificationType = "video_failed"
	NotificationCreditsPurchased NotificationType = "credits_purchased"
	NotificationReferralBonus    NotificationType = "referral_bonus"
	NotificationChallengeResult  NotificationType = "challenge_result"
	NotificationNewFollower      NotificationType = "new_follower"
	NotificationChatReply        NotificationType = "chat_reply"
)

type Notification struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Type      NotificationType
	Message   string
	Data      map[string]interface{}
	Read      bool
	CreatedAt time.Time
}

// PromptPack is a curated set of example prompts shown in the composer.
type PromptPack struct {
	Id          uuid.UUID
	Name        string
	Description string
	Category    string
	Prompts     []string
	Premium     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PromptEmbedding indexes a completed video's prompt for similarity search.
type PromptEmbedding struct {
	Id        uuid.UUID
	VideoId   uuid.UUID
	Embedding []float32
	CreatedAt time.Time
}
