package service

import (
	"testing"
	"time"

	"prompttovideo-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBuildNotificationFillsPlaceholders(t *testing.T) {
	s := &NotificationService{}
	userID := uuid.New()

	event := events.BaseEvent{
		Type: events.VideoCompleted,
		Data: map[string]interface{}{
			"user_id": userID.String(),
			"prompt":  "a dragon over mountains",
		},
		OccurredAt: time.Now(),
	}

	notif := s.buildNotification(userID, events.VideoCompleted, notificationTemplates[events.VideoCompleted], event)

	assert.Equal(t, `Your video for "a dragon over mountains" is ready to watch`, notif.Message)
	assert.Equal(t, "video_completed", notif.TypeCode)
	assert.Equal(t, userID, notif.UserID)
	assert.False(t, notif.IsRead)
}

func TestBuildNotificationLeavesUnknownPlaceholders(t *testing.T) {
	s := &NotificationService{}
	userID := uuid.New()

	event := events.BaseEvent{
		Type:       events.VideoFailed,
		Data:       map[string]interface{}{"user_id": userID.String()},
		OccurredAt: time.Now(),
	}

	notif := s.buildNotification(userID, events.VideoFailed, notificationTemplates[events.VideoFailed], event)

	// A missing payload key stays visible rather than rendering empty.
	assert.Contains(t, notif.Message, "{reason}")
}

func TestEveryEventTemplateHasACode(t *testing.T) {
	for _, code := range []string{
		events.VideoCompleted,
		events.VideoFailed,
		events.VideoViolation,
		events.CreditsPurchased,
		events.ReferralApplied,
		events.ChallengeCompleted,
		events.UserFollowed,
		events.ChatReplyPosted,
	} {
		assert.Contains(t, notificationTemplates, code)
	}
}
