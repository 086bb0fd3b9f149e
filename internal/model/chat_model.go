package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatMessage struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID      `gorm:"type:uuid;not null;index"`
	Content   string         `gorm:"type:text;not null"`
	Edited    bool           `gorm:"default:false"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}

type ChatReply struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MessageId uuid.UUID      `gorm:"type:uuid;not null;index"`
	UserId    uuid.UUID      `gorm:"type:uuid;not null;index"`
	Content   string         `gorm:"type:text;not null"`
	Edited    bool           `gorm:"default:false"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (ChatReply) TableName() string {
	return "chat_replies"
}

// ChatReaction: exactly one of MessageId/ReplyId is set, enforced at the
// service layer; the unique index keeps one emoji per user per target.
type ChatReaction struct {
	Id        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MessageId *uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_reaction_msg,where:message_id IS NOT NULL"`
	ReplyId   *uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_reaction_reply,where:reply_id IS NOT NULL"`
	UserId    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_reaction_msg;uniqueIndex:idx_reaction_reply"`
	Emoji     string     `gorm:"type:varchar(16);not null;uniqueIndex:idx_reaction_msg;uniqueIndex:idx_reaction_reply"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
}

func (ChatReaction) TableName() string {
	return "chat_reactions"
}
