package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessage struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Content   string
	Edited    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ChatReply struct {
	Id        uuid.UUID
	MessageId uuid.UUID
	UserId    uuid.UUID
	Content   string
	Edited    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ChatReaction targets exactly one of MessageId or ReplyId. A user can
// react with a given emoji at most once per target.
type ChatReaction struct {
	Id        uuid.UUID
	MessageId *uuid.UUID
	ReplyId   *uuid.UUID
	UserId    uuid.UUID
	Emoji     string
	CreatedAt time.Time
}

// ValidTarget enforces the XOR constraint on the reaction target.
func (r *ChatReaction) ValidTarget() bool {
	return (r.MessageId != nil) != (r.ReplyId != nil)
}
