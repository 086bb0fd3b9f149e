package contract

import (
	"context"

	"prompttovideo-be/internal/entity"
	"prompttovideo-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatRepository interface {
	CreateMessage(ctx context.Context, msg *entity.ChatMessage) error
	UpdateMessage(ctx context.Context, msg *entity.ChatMessage) error
	DeleteMessage(ctx context.Context, id uuid.UUID) error
	FindMessage(ctx context.Context, specs ...specification.Specification) (*entity.ChatMessage, error)
	FindMessages(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)

	CreateReply(ctx context.Context, reply *entity.ChatReply) error
	UpdateReply(ctx context.Context, reply *entity.ChatReply) error
	DeleteReply(ctx context.Context, id uuid.UUID) error
	FindReply(ctx context.Context, specs ...specification.Specification) (*entity.ChatReply, error)
	FindReplies(ctx context.Context, messageId uuid.UUID) ([]*entity.ChatReply, error)

	// CreateReaction inserts unless the same (target, user, emoji) row
	// exists; it reports whether a row was inserted.
	CreateReaction(ctx context.Context, reaction *entity.ChatReaction) (bool, error)
	DeleteReaction(ctx context.Context, id uuid.UUID) error
	FindReaction(ctx context.Context, specs ...specification.Specification) (*entity.ChatReaction, error)
	FindReactionsForMessages(ctx context.Context, messageIds []uuid.UUID) ([]*entity.ChatReaction, error)
	FindReactionsForReplies(ctx context.Context, replyIds []uuid.UUID) ([]*entity.ChatReaction, error)
}
