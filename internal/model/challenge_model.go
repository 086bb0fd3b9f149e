package model

import (
	"time"

	"github.com/google/uuid"
)

type Challenge struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title         string    `gorm:"type:varchar(255);not null"`
	Description   string    `gorm:"type:text"`
	Theme         string    `gorm:"type:varchar(100)"`
	StartsAt      time.Time `gorm:"not null;index"`
	EndsAt        time.Time `gorm:"not null"`
	VotingEndsAt  time.Time `gorm:"not null"`
	PrizesAwarded bool      `gorm:"default:false"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (Challenge) TableName() string {
	return "challenges"
}

type ChallengeSubmission struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChallengeId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_submission_user"`
	UserId      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_submission_user"`
	VideoId     uuid.UUID `gorm:"type:uuid;not null"`
	VoteCount   int       `gorm:"default:0"`
	Rank        *int
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (ChallengeSubmission) TableName() string {
	return "challenge_submissions"
}

type ChallengeVote struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SubmissionId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_vote_once"`
	UserId       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_vote_once"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (ChallengeVote) TableName() string {
	return "challenge_votes"
}
