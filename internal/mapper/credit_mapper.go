package mapper

import (
	"prompttovideo-be/internal/entity"
	"prompttovideo-be/internal/model"
)

type CreditMapper struct{}

func NewCreditMapper() *CreditMapper {
	return &CreditMapper{}
}

func (m *CreditMapper) ToEntity(t *model.CreditTransaction) *entity.CreditTransaction {
	if t == nil {
		return nil
	}
	return &entity.CreditTransaction{
		Id:          t.Id,
		UserId:      t.UserId,
		Amount:      t.Amount,
		Type:        entity.CreditTransactionType(t.Type),
		Source:      entity.CreditSource(t.Source),
		Description: t.Description,
		ReferenceId: t.ReferenceId,
		CreatedAt:   t.CreatedAt,
	}
}

func (m *CreditMapper) ToModel(t *entity.CreditTransaction) *model.CreditTransaction {
	if t == nil {
		return nil
	}
	return &model.CreditTransaction{
		Id:          t.Id,
		UserId:      t.UserId,
		Amount:      t.Amount,
		Type:        string(t.Type),
		Source:      string(t.Source),
		Description: t.Description,
		ReferenceId: t.ReferenceId,
		CreatedAt:   t.CreatedAt,
	}
}

func (m *CreditMapper) ToEntities(txs []*model.CreditTransaction) []*entity.CreditTransaction {
	entities := make([]*entity.CreditTransaction, len(txs))
	for i, t := range txs {
		entities[i] = m.ToEntity(t)
	}
	return entities
}
