package implementation

import (
	"context"
	"errors"

	"prompttovideo-be/internal/entity"
	"prompttovideo-be/internal/mapper"
	"prompttovideo-be/internal/model"
	"prompttovideo-be/internal/repository/contract"
	"prompttovideo-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChatRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewChatRepository(db *gorm.DB) contract.ChatRepository {
	return &ChatRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *ChatRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

// Messages

func (r *ChatRepositoryImpl) CreateMessage(ctx context.Context, msg *entity.ChatMessage) error {
	m := r.mapper.MessageToModel(msg)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*msg = *r.mapper.MessageToEntity(m)
	return nil
}

func (r *ChatRepositoryImpl) UpdateMessage(ctx context.Context, msg *entity.ChatMessage) error {
	return r.db.WithContext(ctx).Model(&model.ChatMessage{}).Where("id = ?", msg.Id).
		Updates(map[string]interface{}{
			"content": msg.Content,
			"edited":  true,
		}).Error
}

func (r *ChatRepositoryImpl) DeleteMessage(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ChatMessage{}, id).Error
}

func (r *ChatRepositoryImpl) FindMessage(ctx context.Context, specs ...specification.Specification) (*entity.ChatMessage, error) {
	var m model.ChatMessage
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.MessageToEntity(&m), nil
}

func (r *ChatRepositoryImpl) FindMessages(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	var models []*model.ChatMessage
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	return r.mapper.MessagesToEntities(models), nil
}

// Replies

func (r *ChatRepositoryImpl) CreateReply(ctx context.Context, reply *entity.ChatReply) error {
	m := r.mapper.ReplyToModel(reply)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*reply = *r.mapper.ReplyToEntity(m)
	return nil
}

func (r *ChatRepositoryImpl) UpdateReply(ctx context.Context, reply *entity.ChatReply) error {
	return r.db.WithContext(ctx).Model(&model.ChatReply{}).Where("id = ?", reply.Id).
		Updates(map[string]interface{}{
			"content": reply.Content,
			"edited":  true,
		}).Error
}

func (r *ChatRepositoryImpl) DeleteReply(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ChatReply{}, id).Error
}

func (r *ChatRepositoryImpl) FindReply(ctx context.Context, specs ...specification.Specification) (*entity.ChatReply, error) {
	var m model.ChatReply
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ReplyToEntity(&m), nil
}

func (r *ChatRepositoryImpl) FindReplies(ctx context.Context, messageId uuid.UUID) ([]*entity.ChatReply, error) {
	var models []*model.ChatReply
	err := r.db.WithContext(ctx).
		Where("message_id = ?", messageId).
		Order("created_at ASC").
		Find(&models).Error

	if err != nil {
		return nil, err
	}
	return r.mapper.RepliesToEntities(models), nil
}

// Reactions

func (r *ChatRepositoryImpl) CreateReaction(ctx context.Context, reaction *entity.ChatReaction) (bool, error) {
	m := r.mapper.ReactionToModel(reaction)
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(m)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}
	*reaction = *r.mapper.ReactionToEntity(m)
	return true, nil
}

func (r *ChatRepositoryImpl) DeleteReaction(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ChatReaction{}, id).Error
}

func (r *ChatRepositoryImpl) FindReaction(ctx context.Context, specs ...specification.Specification) (*entity.ChatReaction, error) {
	var m model.ChatReaction
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ReactionToEntity(&m), nil
}

func (r *ChatRepositoryImpl) FindReactionsForMessages(ctx context.Context, messageIds []uuid.UUID) ([]*entity.ChatReaction, error) {
	if len(messageIds) == 0 {
		return nil, nil
	}
	var models []*model.ChatReaction
	err := r.db.WithContext(ctx).Where("message_id IN ?", messageIds).Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ReactionsToEntities(models), nil
}

func (r *ChatRepositoryImpl) FindReactionsForReplies(ctx context.Context, replyIds []uuid.UUID) ([]*entity.ChatReaction, error) {
	if len(replyIds) == 0 {
		return nil, nil
	}
	var models []*model.ChatReaction
	err := r.db.WithContext(ctx).Where("reply_id IN ?", replyIds).Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ReactionsToEntities(models), nil
}
