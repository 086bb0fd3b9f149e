package service

import (
	"context"
	"errors"

	"prompttovideo-be/internal/dto"
	"prompttovideo-be/internal/entity"
	"prompttovideo-be/internal/repository/specification"
	"prompttovideo-be/internal/repository/unitofwork"
	"prompttovideo-be/internal/websocket"
	"prompttovideo-be/pkg/events"

	"github.com/google/uuid"
)

var (
	ErrMessageNotFound = errors.New("message not found")
	ErrReplyNotFound   = errors.New("reply not found")
	ErrNotAuthor       = errors.New("not the author")
)

type IChatService interface {
	GetHistory(ctx context.Context, viewerId uuid.UUID, limit, offset int) (*dto.ChatHistoryResponse, error)
	PostMessage(ctx context.Context, userId uuid.UUID, req *dto.PostMessageRequest) (*dto.ChatMessageResponse, error)
	EditMessage(ctx context.Context, userId, messageId uuid.UUID, req *dto.EditMessageRequest) error
	DeleteMessage(ctx context.Context, userId, messageId uuid.UUID) error
	PostReply(ctx context.Context, userId, messageId uuid.UUID, req *dto.PostReplyRequest) (*dto.ChatReplyResponse, error)
	EditReply(ctx context.Context, userId, replyId uuid.UUID, req *dto.PostReplyRequest) error
	DeleteReply(ctx context.Context, userId, replyId uuid.UUID) error
	GetReplies(ctx context.Context, viewerId, messageId uuid.UUID) ([]dto.ChatReplyResponse, error)
	ReactToMessage(ctx context.Context, userId, messageId uuid.UUID, emoji string) error
	ReactToReply(ctx context.Context, userId, replyId uuid.UUID, emoji string) error
}

type chatService struct {
	uowFactory unitofwork.RepositoryFactory
	hub        *websocket.Hub
	publisher  IPublisherService
}

func NewChatService(uowFactory unitofwork.RepositoryFactory, hub *websocket.Hub, publisher IPublisherService) IChatService {
	return &chatService{
		uowFactory: uowFactory,
		hub:        hub,
		publisher:  publisher,
	}
}

// authorNames batch-loads display names for the given user ids.
func (s *chatService) authorNames(ctx context.Context, uow unitofwork.UnitOfWork, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	users, err := uow.UserRepository().FindAll(ctx, specification.ByIDs{IDs: ids})
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		names[u.Id] = u.DisplayName
	}
	return names, nil
}

// groupReactions folds raw reaction rows into per-emoji counts, marking
// the viewer's own reactions.
func groupReactions(reactions []*entity.ChatReaction, viewerId uuid.UUID) map[uuid.UUID][]dto.ReactionDTO {
	type key struct {
		target uuid.UUID
		emoji  string
	}
	counts := make(map[key]*dto.ReactionDTO)
	order := make(map[uuid.UUID][]key)

	for _, r := range reactions {
		var target uuid.UUID
		if r.MessageId != nil {
			target = *r.MessageId
		} else if r.ReplyId != nil {
			target = *r.ReplyId
		} else {
			continue
		}
		k := key{target: target, emoji: r.Emoji}
		agg, ok := counts[k]
		if !ok {
			agg = &dto.ReactionDTO{Emoji: r.Emoji}
			counts[k] = agg
			order[target] = append(order[target], k)
		}
		agg.Count++
		if r.UserId == viewerId {
			agg.Mine = true
		}
	}

	out := make(map[uuid.UUID][]dto.ReactionDTO, len(order))
	for target, keys := range order {
		for _, k := range keys {
			out[target] = append(out[target], *counts[k])
		}
	}
	return out
}

func (s *chatService) GetHistory(ctx context.Context, viewerId uuid.UUID, limit, offset int) (*dto.ChatHistoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if limit < 1 || limit > 100 {
		limit = 50
	}

	messages, err := uow.ChatRepository().FindMessages(ctx,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	if err != nil {
		return nil, err
	}

	messageIds := make([]uuid.UUID, 0, len(messages))
	userIds := make([]uuid.UUID, 0, len(messages))
	for _, m := range messages {
		messageIds = append(messageIds, m.Id)
		userIds = append(userIds, m.UserId)
	}

	reactions, err := uow.ChatRepository().FindReactionsForMessages(ctx, messageIds)
	if err != nil {
		return nil, err
	}
	grouped := groupReactions(reactions, viewerId)

	names, err := s.authorNames(ctx, uow, userIds)
	if err != nil {
		return nil, err
	}

	res := &dto.ChatHistoryResponse{Messages: make([]dto.ChatMessageResponse, 0, len(messages))}
	for _, m := range messages {
		replies, err := uow.ChatRepository().FindReplies(ctx, m.Id)
		if err != nil {
			return nil, err
		}
		reacts := grouped[m.Id]
		if reacts == nil {
			reacts = []dto.ReactionDTO{}
		}
		res.Messages = append(res.Messages, dto.ChatMessageResponse{
			Id:         m.Id,
			UserId:     m.UserId,
			Author:     names[m.UserId],
			Content:    m.Content,
			Edited:     m.Edited,
			ReplyCount: len(replies),
			Reactions:  reacts,
			CreatedAt:  m.CreatedAt,
		})
	}
	res.Total = int64(len(res.Messages))
	return res, nil
}

func (s *chatService) PostMessage(ctx context.Context, userId uuid.UUID, req *dto.PostMessageRequest) (*dto.ChatMessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}

	msg := &entity.ChatMessage{
		Id:      uuid.New(),
		UserId:  userId,
		Content: req.Content,
	}
	if err := uow.ChatRepository().CreateMessage(ctx, msg); err != nil {
		return nil, err
	}

	res := &dto.ChatMessageResponse{
		Id:        msg.Id,
		UserId:    userId,
		Author:    user.DisplayName,
		Content:   msg.Content,
		Reactions: []dto.ReactionDTO{},
		CreatedAt: msg.CreatedAt,
	}
	s.hub.BroadcastChat("chat_message", res)
	return res, nil
}

func (s *chatService) EditMessage(ctx context.Context, userId, messageId uuid.UUID, req *dto.EditMessageRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	msg, err := uow.ChatRepository().FindMessage(ctx, specification.ByID{ID: messageId})
	if err != nil {
		return err
	}
	if msg == nil {
		return ErrMessageNotFound
	}
	if msg.UserId != userId {
		return ErrNotAuthor
	}

	msg.Content = req.Content
	if err := uow.ChatRepository().UpdateMessage(ctx, msg); err != nil {
		return err
	}
	s.hub.BroadcastChat("chat_message_edited", map[string]interface{}{
		"id":      messageId,
		"content": req.Content,
	})
	return nil
}

func (s *chatService) DeleteMessage(ctx context.Context, userId, messageId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	msg, err := uow.ChatRepository().FindMessage(ctx, specification.ByID{ID: messageId})
	if err != nil {
		return err
	}
	if msg == nil {
		return ErrMessageNotFound
	}
	if msg.UserId != userId {
		return ErrNotAuthor
	}

	if err := uow.ChatRepository().DeleteMessage(ctx, messageId); err != nil {
		return err
	}
	s.hub.BroadcastChat("chat_message_deleted", map[string]interface{}{"id": messageId})
	return nil
}

func (s *chatService) PostReply(ctx context.Context, userId, messageId uuid.UUID, req *dto.PostReplyRequest) (*dto.ChatReplyResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	msg, err := uow.ChatRepository().FindMessage(ctx, specification.ByID{ID: messageId})
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, ErrMessageNotFound
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}

	reply := &entity.ChatReply{
		Id:        uuid.New(),
		MessageId: messageId,
		UserId:    userId,
		Content:   req.Content,
	}
	if err := uow.ChatRepository().CreateReply(ctx, reply); err != nil {
		return nil, err
	}

	res := &dto.ChatReplyResponse{
		Id:        reply.Id,
		MessageId: messageId,
		UserId:    userId,
		Author:    user.DisplayName,
		Content:   reply.Content,
		Reactions: []dto.ReactionDTO{},
		CreatedAt: reply.CreatedAt,
	}
	s.hub.BroadcastChat("chat_reply", res)

	// Notify the parent message's author unless they replied to themselves.
	if msg.UserId != userId {
		_ = s.publisher.PublishEvent(ctx, events.ChatReplyPosted, map[string]interface{}{
			"user_id": msg.UserId.String(),
			"author":  user.DisplayName,
		})
	}
	return res, nil
}

func (s *chatService) EditReply(ctx context.Context, userId, replyId uuid.UUID, req *dto.PostReplyRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	reply, err := uow.ChatRepository().FindReply(ctx, specification.ByID{ID: replyId})
	if err != nil {
		return err
	}
	if reply == nil {
		return ErrReplyNotFound
	}
	if reply.UserId != userId {
		return ErrNotAuthor
	}

	reply.Content = req.Content
	if err := uow.ChatRepository().UpdateReply(ctx, reply); err != nil {
		return err
	}
	s.hub.BroadcastChat("chat_reply_edited", map[string]interface{}{
		"id":      replyId,
		"content": req.Content,
	})
	return nil
}

func (s *chatService) DeleteReply(ctx context.Context, userId, replyId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	reply, err := uow.ChatRepository().FindReply(ctx, specification.ByID{ID: replyId})
	if err != nil {
		return err
	}
	if reply == nil {
		return ErrReplyNotFound
	}
	if reply.UserId != userId {
		return ErrNotAuthor
	}

	if err := uow.ChatRepository().DeleteReply(ctx, replyId); err != nil {
		return err
	}
	s.hub.BroadcastChat("chat_reply_deleted", map[string]interface{}{"id": replyId})
	return nil
}

func (s *chatService) GetReplies(ctx context.Context, viewerId, messageId uuid.UUID) ([]dto.ChatReplyResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	replies, err := uow.ChatRepository().FindReplies(ctx, messageId)
	if err != nil {
		return nil, err
	}

	replyIds := make([]uuid.UUID, 0, len(replies))
	userIds := make([]uuid.UUID, 0, len(replies))
	for _, r := range replies {
		replyIds = append(replyIds, r.Id)
		userIds = append(userIds, r.UserId)
	}

	reactions, err := uow.ChatRepository().FindReactionsForReplies(ctx, replyIds)
	if err != nil {
		return nil, err
	}
	grouped := groupReactions(reactions, viewerId)

	names, err := s.authorNames(ctx, uow, userIds)
	if err != nil {
		return nil, err
	}

	res := make([]dto.ChatReplyResponse, 0, len(replies))
	for _, r := range replies {
		reacts := grouped[r.Id]
		if reacts == nil {
			reacts = []dto.ReactionDTO{}
		}
		res = append(res, dto.ChatReplyResponse{
			Id:        r.Id,
			MessageId: r.MessageId,
			UserId:    r.UserId,
			Author:    names[r.UserId],
			Content:   r.Content,
			Edited:    r.Edited,
			Reactions: reacts,
			CreatedAt: r.CreatedAt,
		})
	}
	return res, nil
}

func (s *chatService) ReactToMessage(ctx context.Context, userId, messageId uuid.UUID, emoji string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	msg, err := uow.ChatRepository().FindMessage(ctx, specification.ByID{ID: messageId})
	if err != nil {
		return err
	}
	if msg == nil {
		return ErrMessageNotFound
	}

	reaction := &entity.ChatReaction{
		Id:        uuid.New(),
		MessageId: &messageId,
		UserId:    userId,
		Emoji:     emoji,
	}
	inserted, err := uow.ChatRepository().CreateReaction(ctx, reaction)
	if err != nil {
		return err
	}
	if inserted {
		s.hub.BroadcastChat("chat_reaction", map[string]interface{}{
			"message_id": messageId,
			"emoji":      emoji,
		})
	}
	return nil
}

func (s *chatService) ReactToReply(ctx context.Context, userId, replyId uuid.UUID, emoji string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	reply, err := uow.ChatRepository().FindReply(ctx, specification.ByID{ID: replyId})
	if err != nil {
		return err
	}
	if reply == nil {
		return ErrReplyNotFound
	}

	reaction := &entity.ChatReaction{
		Id:      uuid.New(),
		ReplyId: &replyId,
		UserId:  userId,
		Emoji:   emoji,
	}
	inserted, err := uow.ChatRepository().CreateReaction(ctx, reaction)
	if err != nil {
		return err
	}
	if inserted {
		s.hub.BroadcastChat("chat_reaction", map[string]interface{}{
			"reply_id": replyId,
			"emoji":    emoji,
		})
	}
	return nil
}
