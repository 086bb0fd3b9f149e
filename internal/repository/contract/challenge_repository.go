package contract

import (
	"context"

	"prompttovideo-be/internal/entity"
	"prompttovideo-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChallengeRepository interface {
	Create(ctx context.Context, challenge *entity.Challenge) error
	Update(ctx context.Context, challenge *entity.Challenge) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Challenge, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Challenge, error)

	CreateSubmission(ctx context.Context, submission *entity.ChallengeSubmission) error
	FindSubmission(ctx context.Context, specs ...specification.Specification) (*entity.ChallengeSubmission, error)
	FindSubmissions(ctx context.Context, challengeId uuid.UUID) ([]*entity.ChallengeSubmission, error)

	// TopSubmissions returns submissions ordered by vote count descending,
	// earlier submission breaking ties.
	TopSubmissions(ctx context.Context, challengeId uuid.UUID, limit int) ([]*entity.ChallengeSubmission, error)
	SetSubmissionRank(ctx context.Context, submissionId uuid.UUID, rank int) error

	// CreateVote inserts unless the voter already voted on the
	// submission; it reports whether a row was inserted and bumps the
	// denormalized vote count when it was.
	CreateVote(ctx context.Context, vote *entity.ChallengeVote) (bool, error)

	// MarkPrizesAwarded flips the flag iff unset, so prize payout runs
	// at most once per challenge.
	MarkPrizesAwarded(ctx context.Context, challengeId uuid.UUID) (bool, error)
}
