package entity

import (
	"time"

	"github.com/google/uuid"
)

type CreditTransactionType string
type CreditSource string

const (
	CreditTransactionCredit CreditTransactionType = "credit"
	CreditTransactionDebit  CreditTransactionType = "debit"

	CreditSourcePurchase        CreditSource = "purchase"
	CreditSourceReferral        CreditSource = "referral"
	CreditSourceDaily           CreditSource = "daily"
	CreditSourceVideoGeneration CreditSource = "video_generation"
	CreditSourceRefund          CreditSource = "refund"
	CreditSourceChallengePrize  CreditSource = "challenge_prize"
	CreditSourceAdminAdjustment CreditSource = "admin_adjustment"
)

// CreditTransaction is one append-only ledger entry. Amount is always
// positive; Type carries the direction. Rows are never mutated.
type CreditTransaction struct {
	Id          uuid.UUID
	UserId      uuid.UUID
	Amount      int
	Type        CreditTransactionType
	Source      CreditSource
	Description string
	// External idempotency key, e.g. a Stripe checkout session id.
	ReferenceId *string
	CreatedAt   time.Time
}

// Signed returns the ledger entry's contribution to the balance.
func (t *CreditTransaction) Signed() int {
	if t.Type == CreditTransactionDebit {
		return -t.Amount
	}
	return t.Amount
}

// CreditPack is a purchasable bundle. Packs are static configuration,
// not database rows.
type CreditPack struct {
	Id          string
	Name        string
	Credits     int // -1 marks the unlimited subscription
	PriceCents  int64
	Description string
}
