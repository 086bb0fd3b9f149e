package dto

import (
	"time"

	"github.com/google/uuid"
)

type AdminUserListRequest struct {
	Page     int    `query:"page"`
	PageSize int    `query:"page_size"`
	Search   string `query:"search"`
}

type AdminUserResponse struct {
	Id               uuid.UUID `json:"id"`
	Email            string    `json:"email"`
	DisplayName      string    `json:"display_name"`
	Role             string    `json:"role"`
	Status           string    `json:"status"`
	Credits          int       `json:"credits"`
	SubscriptionTier string    `json:"subscription_tier"`
	CreatedAt        time.Time `json:"created_at"`
}

type AdminUserListResponse struct {
	Users      []AdminUserResponse `json:"users"`
	Total      int64               `json:"total"`
	Page       int                 `json:"page"`
	TotalPages int                 `json:"total_pages"`
}

type UpdateUserStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active blocked"`
}

type AdjustCreditsRequest struct {
	Amount int    `json:"amount" validate:"required"`
	Reason string `json:"reason" validate:"required,max=255"`
}

type AdminDashboardStats struct {
	TotalUsers       int64                    `json:"total_users"`
	TotalVideos      int64                    `json:"total_videos"`
	PendingVideos    int                      `json:"pending_videos"`
	ProcessingVideos int                      `json:"processing_videos"`
	CompletedVideos  int                      `json:"completed_videos"`
	FailedVideos     int                      `json:"failed_videos"`
	UsersByTier      map[string]int           `json:"users_by_tier"`
	UserGrowth       []map[string]interface{} `json:"user_growth"`
	VideoGrowth      []map[string]interface{} `json:"video_growth"`
	PurchasesByDay   []map[string]interface{} `json:"purchases_by_day"`
}

type LogListResponse struct {
	Id        string                 `json:"id"`
	Timestamp string                 `json:"timestamp"`
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Module    string                 `json:"module,omitempty"`
	Details   map[string]interface{} `json:"details,omitempty"`
}
