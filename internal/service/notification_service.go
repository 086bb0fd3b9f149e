package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"prompttovideo-be/internal/model"
	"prompttovideo-be/internal/pkg/logger"
	"prompttovideo-be/internal/repository"
	"prompttovideo-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// NotificationDelivery defines how to push real-time updates.
// Typically implemented by the WebSocket Hub.
type NotificationDelivery interface {
	Send(userID uuid.UUID, notification model.Notification)
	Broadcast(notification model.Notification)
}

// Message templates per event code. Placeholders are payload keys in
// curly braces.
var notificationTemplates = map[string]string{
	events.VideoCompleted:     "Your video for \"{prompt}\" is ready to watch",
	events.VideoFailed:        "Video generation failed: {reason}",
	events.VideoViolation:     "Your prompt was rejected by the content policy",
	events.CreditsPurchased:   "{credits} credits added to your account",
	events.ReferralApplied:    "You earned {credits} referral credits",
	events.ChallengeCompleted: "Challenge \"{title}\" has ended. Check the leaderboard!",
	events.UserFollowed:       "{follower_name} started following you",
	events.ChatReplyPosted:    "{author} replied to your message",
}

type NotificationService struct {
	repo      repository.NotificationRepository
	pubSub    *gochannel.GoChannel
	topicName string
	delivery  NotificationDelivery
	logger    logger.ILogger
}

func NewNotificationService(repo repository.NotificationRepository, pubSub *gochannel.GoChannel, topicName string, delivery NotificationDelivery, log logger.ILogger) *NotificationService {
	return &NotificationService{
		repo:      repo,
		pubSub:    pubSub,
		topicName: topicName,
		delivery:  delivery,
		logger:    log,
	}
}

// Start begins listening to the event bus.
func (s *NotificationService) Start(ctx context.Context) {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to subscribe to event bus", map[string]interface{}{"error": err})
		return
	}

	go func() {
		for msg := range messages {
			event, err := DecodeEvent(msg.Payload)
			if err != nil {
				s.logger.Warn("NotificationService", "Dropping undecodable event", map[string]interface{}{"error": err.Error()})
				msg.Ack()
				continue
			}

			if err := s.handleEvent(ctx, event); err != nil {
				s.logger.Error("NotificationService", "Event handling failed", map[string]interface{}{"type": event.EventType(), "error": err})
			}
			// In-process bus: a failed notification is not worth
			// redelivering, the source row already records the state.
			msg.Ack()
		}
	}()

	s.logger.Info("NotificationService", "Notification service started", map[string]interface{}{"topic": s.topicName})
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	if event.EventType() == events.SystemBroadcast {
		if s.delivery != nil {
			msg, _ := event.Payload()["message"].(string)
			s.delivery.Broadcast(model.Notification{
				ID:        uuid.New(),
				TypeCode:  "system_broadcast",
				Message:   msg,
				CreatedAt: time.Now(),
			})
		}
		return nil
	}

	template, ok := notificationTemplates[event.EventType()]
	if !ok {
		// Not every bus event produces a notification.
		return nil
	}

	userID, ok := payloadUserID(event.Payload())
	if !ok {
		s.logger.Warn("NotificationService", fmt.Sprintf("No user_id in payload for event %s", event.EventType()), nil)
		return nil
	}

	notif := s.buildNotification(userID, event.EventType(), template, event)

	if err := s.repo.CreateNotification(ctx, &notif); err != nil {
		return err
	}

	if s.delivery != nil {
		s.delivery.Send(userID, notif)
	}
	return nil
}

func payloadUserID(payload map[string]interface{}) (uuid.UUID, bool) {
	uidStr, ok := payload["user_id"].(string)
	if !ok {
		return uuid.Nil, false
	}
	uid, err := uuid.Parse(uidStr)
	if err != nil {
		return uuid.Nil, false
	}
	return uid, true
}

func (s *NotificationService) buildNotification(userID uuid.UUID, typeCode, template string, event events.Event) model.Notification {
	// Simple template engine
	msg := template
	payload := event.Payload()

	for k, v := range payload {
		placeholder := fmt.Sprintf("{%s}", k)
		valStr := fmt.Sprintf("%v", v)
		msg = strings.ReplaceAll(msg, placeholder, valStr)
	}

	metaJSON, _ := json.Marshal(payload)

	return model.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		TypeCode:  strings.ToLower(typeCode),
		Message:   msg,
		Metadata:  datatypes.JSON(metaJSON),
		CreatedAt: time.Now(),
		IsRead:    false,
	}
}

// GetNotifications fetches notifications for a user.
func (s *NotificationService) GetNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, int64, error) {
	return s.repo.GetNotificationsByUserID(ctx, userID, limit, offset)
}

// GetUnreadCount fetches unread count.
func (s *NotificationService) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.GetUnreadCount(ctx, userID)
}

// MarkAsRead marks a notification as read.
func (s *NotificationService) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	return s.repo.MarkAsRead(ctx, id)
}

// MarkAllAsRead marks all notifications as read for a user.
func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}
