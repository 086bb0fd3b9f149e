package service

import (
	"testing"

	"prompttovideo-be/internal/dto"
	"prompttovideo-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func reaction(target *uuid.UUID, reply *uuid.UUID, user uuid.UUID, emoji string) *entity.ChatReaction {
	return &entity.ChatReaction{
		Id:        uuid.New(),
		MessageId: target,
		ReplyId:   reply,
		UserId:    user,
		Emoji:     emoji,
	}
}

func TestGroupReactions(t *testing.T) {
	msgA := uuid.New()
	msgB := uuid.New()
	viewer := uuid.New()
	other := uuid.New()

	rows := []*entity.ChatReaction{
		reaction(&msgA, nil, other, "🔥"),
		reaction(&msgA, nil, viewer, "🔥"),
		reaction(&msgA, nil, other, "👍"),
		reaction(&msgB, nil, other, "🔥"),
	}

	grouped := groupReactions(rows, viewer)

	assert.Equal(t, []dto.ReactionDTO{
		{Emoji: "🔥", Count: 2, Mine: true},
		{Emoji: "👍", Count: 1, Mine: false},
	}, grouped[msgA], "counts aggregate per emoji, first-seen order")

	assert.Equal(t, []dto.ReactionDTO{
		{Emoji: "🔥", Count: 1, Mine: false},
	}, grouped[msgB])
}

func TestGroupReactionsSkipsTargetlessRows(t *testing.T) {
	viewer := uuid.New()
	rows := []*entity.ChatReaction{
		reaction(nil, nil, viewer, "🔥"),
	}

	assert.Empty(t, groupReactions(rows, viewer))
}

func TestGroupReactionsOnReplies(t *testing.T) {
	replyId := uuid.New()
	viewer := uuid.New()
	rows := []*entity.ChatReaction{
		reaction(nil, &replyId, viewer, "❤️"),
	}

	grouped := groupReactions(rows, viewer)
	assert.Equal(t, []dto.ReactionDTO{{Emoji: "❤️", Count: 1, Mine: true}}, grouped[replyId])
}
