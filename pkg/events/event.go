package events

import "time"

// Event codes published on the internal bus.
const (
	VideoCompleted     = "VIDEO_COMPLETED"
	VideoFailed        = "VIDEO_FAILED"
	VideoViolation     = "VIDEO_CONTENT_VIOLATION"
	CreditsPurchased   = "CREDITS_PURCHASED"
	ReferralApplied    = "REFERRAL_APPLIED"
	ChallengeCompleted = "CHALLENGE_COMPLETED"
	UserFollowed       = "USER_FOLLOWED"
	ChatReplyPosted    = "CHAT_REPLY_POSTED"
	SystemBroadcast    = "SYSTEM_BROADCAST"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "USER_LOGIN").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent helps embed common logic if needed,
// strictly creating valid implementations is preferred though.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}
