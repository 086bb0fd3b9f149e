package entity

import (
	"time"

	"github.com/google/uuid"
)

type VideoStatus string
type VideoQuality string

const (
	VideoStatusPending          VideoStatus = "pending"
	VideoStatusProcessing       VideoStatus = "processing"
	VideoStatusCompleted        VideoStatus = "completed"
	VideoStatusFailed           VideoStatus = "failed"
	VideoStatusContentViolation VideoStatus = "content_violation"

	VideoQualityFree    VideoQuality = "free"
	VideoQualityPremium VideoQuality = "premium"
	VideoQuality360p    VideoQuality = "360p"
	VideoQuality1080p   VideoQuality = "1080p"
)

// Video is one generation request and its eventual artifact.
type Video struct {
	Id      uuid.UUID
	UserId  uuid.UUID
	Prompt  string
	Title   *string
	Quality VideoQuality
	Status  VideoStatus

	// Upstream long-running operation identifier, set once submitted.
	VeoJobId *string

	GCSUrl       *string
	GCSSignedUrl *string
	ThumbnailUrl *string
	ErrorMessage *string

	// Priority is the score frozen at acceptance; ordering among pending
	// rows is priority DESC, queued_at ASC.
	Priority        int
	QueuedAt        time.Time
	StartedAt       *time.Time
	CompletedAt     *time.Time
	DurationSeconds *int

	Public     bool
	Slug       string
	ShareToken *string
	Views      int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Terminal reports whether the request has reached a final status.
func (v *Video) Terminal() bool {
	switch v.Status {
	case VideoStatusCompleted, VideoStatusFailed, VideoStatusContentViolation:
		return true
	}
	return false
}

// PremiumQuality reports whether this request is served by the premium model.
func (q VideoQuality) PremiumQuality() bool {
	return q == VideoQualityPremium || q == VideoQuality1080p
}
