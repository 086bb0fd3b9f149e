package dto

import (
	"time"

	"github.com/google/uuid"
)

type ProfileResponse struct {
	Id             uuid.UUID `json:"id"`
	DisplayName    string    `json:"display_name"`
	AvatarURL      string    `json:"avatar_url,omitempty"`
	VideoCount     int64     `json:"video_count"`
	FollowerCount  int64     `json:"follower_count"`
	FollowingCount int64     `json:"following_count"`
	IsFollowing    bool      `json:"is_following"`
	CreatedAt      time.Time `json:"created_at"`
}

type UpdateProfileRequest struct {
	DisplayName string  `json:"display_name" validate:"required,min=3,max=100"`
	AvatarURL   *string `json:"avatar_url" validate:"omitempty,url"`
}

type NotificationResponse struct {
	Id        uuid.UUID              `json:"id"`
	Type      string                 `json:"type"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Read      bool                   `json:"read"`
	CreatedAt time.Time              `json:"created_at"`
}

type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Total         int64                  `json:"total"`
	UnreadCount   int64                  `json:"unread_count"`
}

type PromptPackResponse struct {
	Id          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Prompts     []string  `json:"prompts"`
	Premium     bool      `json:"premium"`
}
