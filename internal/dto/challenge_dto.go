package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateChallengeRequest struct {
	Title        string    `json:"title" validate:"required,min=3,max=255"`
	Description  string    `json:"description" validate:"required"`
	Theme        string    `json:"theme" validate:"required,max=100"`
	StartsAt     time.Time `json:"starts_at" validate:"required"`
	EndsAt       time.Time `json:"ends_at" validate:"required,gtfield=StartsAt"`
	VotingEndsAt time.Time `json:"voting_ends_at" validate:"required,gtfield=EndsAt"`
}

type ChallengeResponse struct {
	Id              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Theme           string    `json:"theme"`
	Status          string    `json:"status"`
	StartsAt        time.Time `json:"starts_at"`
	EndsAt          time.Time `json:"ends_at"`
	VotingEndsAt    time.Time `json:"voting_ends_at"`
	SubmissionCount int       `json:"submission_count"`
}

type SubmitToChallengeRequest struct {
	VideoId uuid.UUID `json:"video_id" validate:"required"`
}

type SubmissionResponse struct {
	Id        uuid.UUID     `json:"id"`
	UserId    uuid.UUID     `json:"user_id"`
	Author    string        `json:"author"`
	Video     VideoResponse `json:"video"`
	VoteCount int           `json:"vote_count"`
	Rank      *int          `json:"rank,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

type LeaderboardResponse struct {
	Challenge   ChallengeResponse    `json:"challenge"`
	Submissions []SubmissionResponse `json:"submissions"`
}
