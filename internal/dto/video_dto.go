package dto

import (
	"time"

	"github.com/google/uuid"
)

type GenerateVideoRequest struct {
	Prompt          string `json:"prompt" validate:"required,min=3,max=2000"`
	Quality         string `json:"quality" validate:"omitempty,oneof=free premium 360p 1080p"`
	Title           string `json:"title" validate:"omitempty,max=255"`
	DurationSeconds int    `json:"duration_seconds" validate:"omitempty,min=5,max=60"`
	Public          bool   `json:"public"`
}

type GenerateVideoResponse struct {
	VideoId       uuid.UUID `json:"video_id"`
	Status        string    `json:"status"`
	QueuePosition int64     `json:"queue_position"`
	CreditsCost   int       `json:"credits_cost"`
	CreditsLeft   int       `json:"credits_left"`
}

type VideoResponse struct {
	Id              uuid.UUID  `json:"id"`
	Prompt          string     `json:"prompt"`
	Title           *string    `json:"title,omitempty"`
	Quality         string     `json:"quality"`
	Status          string     `json:"status"`
	VideoURL        *string    `json:"video_url,omitempty"`
	ThumbnailURL    *string    `json:"thumbnail_url,omitempty"`
	ErrorMessage    *string    `json:"error_message,omitempty"`
	DurationSeconds *int       `json:"duration_seconds,omitempty"`
	Public          bool       `json:"public"`
	Slug            string     `json:"slug"`
	Views           int        `json:"views"`
	QueuedAt        time.Time  `json:"queued_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
}

type VideoStatusResponse struct {
	Id            uuid.UUID `json:"id"`
	Status        string    `json:"status"`
	QueuePosition int64     `json:"queue_position,omitempty"`
	VideoURL      *string   `json:"video_url,omitempty"`
	ErrorMessage  *string   `json:"error_message,omitempty"`
}

type VideoListRequest struct {
	Page     int    `query:"page"`
	PageSize int    `query:"page_size"`
	Status   string `query:"status"`
}

type VideoListResponse struct {
	Videos     []VideoResponse `json:"videos"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	TotalPages int             `json:"total_pages"`
}

type SetVisibilityRequest struct {
	Public bool `json:"public"`
}

type ShareLinkResponse struct {
	ShareToken string `json:"share_token"`
	ShareURL   string `json:"share_url"`
}

type SearchRequest struct {
	Query    string `query:"q" validate:"required,min=2"`
	Page     int    `query:"page"`
	PageSize int    `query:"page_size"`
}

type SuggestPromptsRequest struct {
	Topic string `json:"topic" validate:"required,min=2,max=200"`
}

type SuggestPromptsResponse struct {
	Prompts []string `json:"prompts"`
}

type SimilarVideosResponse struct {
	Videos []VideoResponse `json:"videos"`
}

// VideoJobMessage is the payload published to the generation queue.
type VideoJobMessage struct {
	VideoId uuid.UUID `json:"video_id"`
}
