package unitofwork

import (
	"context"

	"prompttovideo-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	VideoRepository() contract.VideoRepository
	CreditRepository() contract.CreditRepository
	ChatRepository() contract.ChatRepository
	ChallengeRepository() contract.ChallengeRepository
	SocialRepository() contract.SocialRepository
	PromptEmbeddingRepository() contract.PromptEmbeddingRepository
}
