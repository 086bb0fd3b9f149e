package specification

import (
	"gorm.io/gorm"

	"github.com/google/uuid"
)

type VideoOwnedBy struct {
	UserID uuid.UUID
}

func (s VideoOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

type PublicOnly struct{}

func (s PublicOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("public = ?", true)
}

type BySlug struct {
	Slug string
}

func (s BySlug) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("slug = ?", s.Slug)
}

type ByShareToken struct {
	Token string
}

func (s ByShareToken) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("share_token = ?", s.Token)
}

// QueueOrder sorts pending work the way the dispatcher drains it:
// highest priority first, oldest first within a priority.
type QueueOrder struct{}

func (s QueueOrder) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("priority DESC, queued_at ASC")
}
