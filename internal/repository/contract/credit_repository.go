package contract

import (
	"context"

	"prompttovideo-be/internal/entity"
	"prompttovideo-be/internal/repository/specification"

	"github.com/google/uuid"
)

// CreditRepository is append-only: ledger rows are created, never updated.
type CreditRepository interface {
	Create(ctx context.Context, tx *entity.CreditTransaction) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CreditTransaction, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CreditTransaction, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// LedgerBalance computes the signed sum of a user's entries, used to
	// reconcile against the cached balance on the user row.
	LedgerBalance(ctx context.Context, userId uuid.UUID) (int, error)

	// ExistsByReference reports whether a ledger row with the external
	// reference already exists (webhook idempotency).
	ExistsByReference(ctx context.Context, referenceId string) (bool, error)

	// Purchased credits grouped by day over the trailing month.
	GetPurchasesByDay(ctx context.Context) ([]map[string]interface{}, error)
}
