package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Follow struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FollowerId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_follow_pair;index"`
	FollowedId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_follow_pair;index"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (Follow) TableName() string {
	return "follows"
}

type PromptPack struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string         `gorm:"type:varchar(255);not null"`
	Description string         `gorm:"type:text"`
	Category    string         `gorm:"type:varchar(100);index"`
	Prompts     datatypes.JSON `gorm:"type:jsonb;not null"`
	Premium     bool           `gorm:"default:false"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
}

func (PromptPack) TableName() string {
	return "prompt_packs"
}
