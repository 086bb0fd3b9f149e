package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChallengeStatus string

const (
	ChallengeStatusUpcoming  ChallengeStatus = "upcoming"
	ChallengeStatusActive    ChallengeStatus = "active"
	ChallengeStatusVoting    ChallengeStatus = "voting"
	ChallengeStatusCompleted ChallengeStatus = "completed"
)

// Prize credits for the top three submissions.
var ChallengePrizes = [3]int{50, 25, 10}

type Challenge struct {
	Id            uuid.UUID
	Title         string
	Description   string
	Theme         string
	StartsAt      time.Time
	EndsAt        time.Time
	VotingEndsAt  time.Time
	PrizesAwarded bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// StatusAt derives the lifecycle phase from the challenge dates. Status is
// never stored; it is always a function of the clock.
func (c *Challenge) StatusAt(now time.Time) ChallengeStatus {
	switch {
	case now.Before(c.StartsAt):
		return ChallengeStatusUpcoming
	case now.Before(c.EndsAt):
		return ChallengeStatusActive
	case now.Before(c.VotingEndsAt):
		return ChallengeStatusVoting
	default:
		return ChallengeStatusCompleted
	}
}

type ChallengeSubmission struct {
	Id          uuid.UUID
	ChallengeId uuid.UUID
	UserId      uuid.UUID
	VideoId     uuid.UUID
	VoteCount   int
	Rank        *int
	CreatedAt   time.Time
}

// ChallengeVote: one per (submission, voter).
type ChallengeVote struct {
	Id           uuid.UUID
	SubmissionId uuid.UUID
	UserId       uuid.UUID
	CreatedAt    time.Time
}
