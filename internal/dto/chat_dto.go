package dto

import (
	"time"

	"github.com/google/uuid"
)

type PostMessageRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

type EditMessageRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

type PostReplyRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

type ReactionRequest struct {
	Emoji string `json:"emoji" validate:"required,max=16"`
}

type ReactionDTO struct {
	Emoji string `json:"emoji"`
	Count int    `json:"count"`
	Mine  bool   `json:"mine"`
}

type ChatReplyResponse struct {
	Id        uuid.UUID     `json:"id"`
	MessageId uuid.UUID     `json:"message_id"`
	UserId    uuid.UUID     `json:"user_id"`
	Author    string        `json:"author"`
	Content   string        `json:"content"`
	Edited    bool          `json:"edited"`
	Reactions []ReactionDTO `json:"reactions"`
	CreatedAt time.Time     `json:"created_at"`
}

type ChatMessageResponse struct {
	Id         uuid.UUID     `json:"id"`
	UserId     uuid.UUID     `json:"user_id"`
	Author     string        `json:"author"`
	Content    string        `json:"content"`
	Edited     bool          `json:"edited"`
	ReplyCount int           `json:"reply_count"`
	Reactions  []ReactionDTO `json:"reactions"`
	CreatedAt  time.Time     `json:"created_at"`
}

type ChatHistoryResponse struct {
	Messages []ChatMessageResponse `json:"messages"`
	Total    int64                 `json:"total"`
}
