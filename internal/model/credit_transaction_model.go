package model

import (
	"time"

	"github.com/google/uuid"
)

type CreditTransaction struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId      uuid.UUID `gorm:"type:uuid;not null;index"`
	Amount      int       `gorm:"not null"`
	Type        string    `gorm:"type:varchar(10);not null"`
	Source      string    `gorm:"type:varchar(30);not null"`
	Description string    `gorm:"type:text"`
	ReferenceId *string   `gorm:"type:varchar(255);uniqueIndex"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (CreditTransaction) TableName() string {
	return "credit_transactions"
}
