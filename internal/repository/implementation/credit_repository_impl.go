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
)

type CreditRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CreditMapper
}

func NewCreditRepository(db *gorm.DB) contract.CreditRepository {
	return &CreditRepositoryImpl{
		db:     db,
		mapper: mapper.NewCreditMapper(),
	}
}

func (r *CreditRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *CreditRepositoryImpl) Create(ctx context.Context, tx *entity.CreditTransaction) error {
	m := r.mapper.ToModel(tx)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*tx = *r.mapper.ToEntity(m)
	return nil
}

func (r *CreditRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CreditTransaction, error) {
	var m model.CreditTransaction
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ToEntity(&m), nil
}

func (r *CreditRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CreditTransaction, error) {
	var models []*model.CreditTransaction
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(models), nil
}

func (r *CreditRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.CreditTransaction{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *CreditRepositoryImpl) LedgerBalance(ctx context.Context, userId uuid.UUID) (int, error) {
	var balance int
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(CASE WHEN type = 'debit' THEN -amount ELSE amount END), 0)
		FROM credit_transactions
		WHERE user_id = ?
	`, userId).Scan(&balance).Error
	return balance, err
}

func (r *CreditRepositoryImpl) ExistsByReference(ctx context.Context, referenceId string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.CreditTransaction{}).
		Where("reference_id = ?", referenceId).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *CreditRepositoryImpl) GetPurchasesByDay(ctx context.Context) ([]map[string]interface{}, error) {
	var results []map[string]interface{}
	err := r.db.WithContext(ctx).Raw(`
		SELECT to_char(created_at, 'YYYY-MM-DD') as date, SUM(amount) as credits, COUNT(*) as purchases
		FROM credit_transactions
		WHERE source = 'purchase' AND created_at > NOW() - INTERVAL '30 days'
		GROUP BY date
		ORDER BY date ASC
	`).Scan(&results).Error
	return results, err
}
