package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreditPackResponse struct {
	Id          string  `json:"id"`
	Name        string  `json:"name"`
	Credits     int     `json:"credits"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}

type CheckoutRequest struct {
	PackId     string `json:"pack_id" validate:"required,oneof=starter pro unlimited"`
	SuccessURL string `json:"success_url" validate:"omitempty,url"`
	CancelURL  string `json:"cancel_url" validate:"omitempty,url"`
}

type CheckoutResponse struct {
	SessionId   string `json:"session_id"`
	CheckoutURL string `json:"checkout_url"`
}

type BalanceResponse struct {
	Balance   int  `json:"balance"`
	Unlimited bool `json:"unlimited"`
}

type CreditTransactionResponse struct {
	Id          uuid.UUID `json:"id"`
	Amount      int       `json:"amount"`
	Type        string    `json:"type"`
	Source      string    `json:"source"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreditHistoryResponse struct {
	Transactions []CreditTransactionResponse `json:"transactions"`
	Balance      int                         `json:"balance"`
	Unlimited    bool                        `json:"unlimited"`
}

type ApplyReferralRequest struct {
	Code string `json:"code" validate:"required,len=8"`
}

type ReferralStatsResponse struct {
	ReferralCode  string `json:"referral_code"`
	ReferredCount int64  `json:"referred_count"`
	CreditsEarned int    `json:"credits_earned"`
}
