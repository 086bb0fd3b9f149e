package model

import (
	"time"

	"github.com/google/uuid"
)

type Video struct {
	Id      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId  uuid.UUID `gorm:"type:uuid;not null;index"`
	Prompt  string    `gorm:"type:text;not null"`
	Title   *string   `gorm:"type:varchar(255)"`
	Quality string    `gorm:"type:varchar(20);not null"`
	// Composite index serves both the pending-queue ordering scan and the
	// queue-position count.
	Status   string `gorm:"type:varchar(20);not null;default:'pending';index:idx_videos_queue,priority:1"`
	Priority int    `gorm:"not null;default:0;index:idx_videos_queue,priority:2,sort:desc"`

	VeoJobId     *string `gorm:"type:text"`
	GCSUrl       *string `gorm:"type:text"`
	GCSSignedUrl *string `gorm:"type:text"`
	ThumbnailUrl *string `gorm:"type:text"`
	ErrorMessage *string `gorm:"type:text"`

	QueuedAt        time.Time `gorm:"not null;index:idx_videos_queue,priority:3"`
	StartedAt       *time.Time
	CompletedAt     *time.Time
	DurationSeconds *int

	Public     bool    `gorm:"default:false;index"`
	Slug       string  `gorm:"type:varchar(255);uniqueIndex;not null"`
	ShareToken *string `gorm:"type:varchar(64);uniqueIndex"`
	Views      int     `gorm:"default:0"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Video) TableName() string {
	return "videos"
}
