package service

import (
	"context"
	"time"

	"prompttovideo-be/internal/entity"
	"prompttovideo-be/internal/pkg/logger"
	"prompttovideo-be/internal/repository/specification"
	"prompttovideo-be/internal/repository/unitofwork"
	"prompttovideo-be/pkg/events"
	"prompttovideo-be/pkg/gemini"

	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type ISuggestService interface {
	SuggestPrompts(ctx context.Context, topic string) ([]string, error)
	RandomPrompts(ctx context.Context) ([]string, error)

	// IndexVideoPrompt embeds a completed video's prompt so it shows up
	// in similarity search.
	IndexVideoPrompt(ctx context.Context, videoId uuid.UUID) error

	// Start consumes completion events off the bus and indexes prompts
	// in the background.
	Start(ctx context.Context)
}

type suggestService struct {
	uowFactory unitofwork.RepositoryFactory
	pubSub     *gochannel.GoChannel
	topicName  string
	apiKey     string
	logger     logger.ILogger
}

func NewSuggestService(uowFactory unitofwork.RepositoryFactory, pubSub *gochannel.GoChannel, topicName, apiKey string, log logger.ILogger) ISuggestService {
	return &suggestService{
		uowFactory: uowFactory,
		pubSub:     pubSub,
		topicName:  topicName,
		apiKey:     apiKey,
		logger:     log,
	}
}

func (s *suggestService) SuggestPrompts(ctx context.Context, topic string) ([]string, error) {
	return gemini.SuggestPrompts(ctx, s.apiKey, topic)
}

func (s *suggestService) RandomPrompts(ctx context.Context) ([]string, error) {
	return gemini.RandomPrompts(ctx, s.apiKey, time.Now().UnixNano())
}

func (s *suggestService) IndexVideoPrompt(ctx context.Context, videoId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	video, err := uow.VideoRepository().FindOne(ctx, specification.ByID{ID: videoId})
	if err != nil {
		return err
	}
	if video == nil {
		return ErrVideoNotFound
	}
	if video.Status != entity.VideoStatusCompleted {
		return nil
	}

	vector, err := gemini.EmbedText(s.apiKey, video.Prompt, gemini.TaskRetrievalDocument)
	if err != nil {
		return err
	}

	return uow.PromptEmbeddingRepository().Upsert(ctx, &entity.PromptEmbedding{
		Id:        uuid.New(),
		VideoId:   videoId,
		Embedding: vector,
	})
}

func (s *suggestService) Start(ctx context.Context) {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		s.logger.Error("SuggestService", "Failed to subscribe to event bus", map[string]interface{}{"error": err})
		return
	}

	go func() {
		for msg := range messages {
			event, err := DecodeEvent(msg.Payload)
			if err != nil {
				msg.Ack()
				continue
			}
			if event.EventType() != events.VideoCompleted {
				msg.Ack()
				continue
			}

			idStr, _ := event.Payload()["video_id"].(string)
			videoId, err := uuid.Parse(idStr)
			if err != nil {
				s.logger.Warn("SuggestService", "Completion event missing video_id", map[string]interface{}{"payload": event.Payload()})
				msg.Ack()
				continue
			}

			if err := s.IndexVideoPrompt(ctx, videoId); err != nil {
				// Indexing is best-effort; the video stays watchable.
				s.logger.Warn("SuggestService", "Failed to index prompt", map[string]interface{}{"video_id": videoId, "error": err.Error()})
			}
			msg.Ack()
		}
	}()
}
