package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"prompttovideo-be/internal/dto"
	"prompttovideo-be/internal/entity"
	"prompttovideo-be/internal/pkg/logger"
	"prompttovideo-be/internal/pkg/mailer"
	"prompttovideo-be/internal/repository/specification"
	"prompttovideo-be/internal/repository/unitofwork"
	"prompttovideo-be/pkg/events"
	"prompttovideo-be/pkg/storage"
	"prompttovideo-be/pkg/veo"

	pktNats "prompttovideo-be/pkg/nats"
)

// WorkerService consumes generation jobs off the durable queue and runs
// each one through the Veo pipeline. Concurrency is bounded by the
// consumer's max in-flight setting, not by spawning per request.
type WorkerService struct {
	uowFactory    unitofwork.RepositoryFactory
	subscriber    *pktNats.Subscriber
	veoClient     *veo.Client
	store         *storage.Store
	creditService ICreditService
	publisher     IPublisherService
	emailService  mailer.IEmailService
	logger        logger.ILogger
	concurrency   int
	costFree      int
	costPremium   int
	clientURL     string
}

func NewWorkerService(
	uowFactory unitofwork.RepositoryFactory,
	subscriber *pktNats.Subscriber,
	veoClient *veo.Client,
	store *storage.Store,
	creditService ICreditService,
	publisher IPublisherService,
	emailService mailer.IEmailService,
	log logger.ILogger,
	concurrency, costFree, costPremium int,
	clientURL string,
) *WorkerService {
	return &WorkerService{
		uowFactory:    uowFactory,
		subscriber:    subscriber,
		veoClient:     veoClient,
		store:         store,
		creditService: creditService,
		publisher:     publisher,
		emailService:  emailService,
		logger:        log,
		concurrency:   concurrency,
		costFree:      costFree,
		costPremium:   costPremium,
		clientURL:     clientURL,
	}
}

// Start attaches the durable consumer. Returning an error from the
// handler nacks the message for redelivery; nil acks it.
func (w *WorkerService) Start() error {
	return w.subscriber.Subscribe(pktNats.SubjectGenerate, "video-workers", w.concurrency, w.handleJob)
}

func (w *WorkerService) handleJob(ctx context.Context, payload []byte) error {
	var job dto.VideoJobMessage
	if err := json.Unmarshal(payload, &job); err != nil {
		// Malformed payloads never succeed; ack and drop.
		w.logger.Error("Worker", "Dropping malformed job payload", map[string]interface{}{"error": err.Error()})
		return nil
	}

	uow := w.uowFactory.NewUnitOfWork(ctx)
	video, err := uow.VideoRepository().FindOne(ctx, specification.ByID{ID: job.VideoId})
	if err != nil {
		return err
	}
	if video == nil {
		w.logger.Warn("Worker", "Job references missing video", map[string]interface{}{"video_id": job.VideoId})
		return nil
	}

	// The claim is the exclusive lease; losing it means a redelivery of
	// a job some other worker already owns.
	claimed, err := uow.VideoRepository().ClaimPending(ctx, video.Id, time.Now())
	if err != nil {
		return err
	}
	if !claimed {
		return nil
	}

	w.logger.Info("Worker", "Processing video", map[string]interface{}{
		"video_id": video.Id,
		"quality":  video.Quality,
	})

	if err := w.process(ctx, uow, video); err != nil {
		w.fail(ctx, uow, video, err)
	}
	// Terminal states are written by process/fail; a nack here would
	// rerun a charge the user already paid for.
	return nil
}

func (w *WorkerService) process(ctx context.Context, uow unitofwork.UnitOfWork, video *entity.Video) error {
	premium := video.Quality.PremiumQuality()
	duration := 0
	if video.DurationSeconds != nil {
		duration = *video.DurationSeconds
	}

	opName, err := w.veoClient.Start(ctx, veo.Request{
		Prompt:          video.Prompt,
		Premium:         premium,
		DurationSeconds: duration,
		StorageURI:      fmt.Sprintf("gs://%s/generated/%s/", w.store.Bucket(), video.Id),
	})
	if err != nil {
		return err
	}
	if err := uow.VideoRepository().SetVeoJobId(ctx, video.Id, opName); err != nil {
		return err
	}

	result, err := w.veoClient.WaitForCompletion(ctx, opName, premium)
	if errors.Is(err, veo.ErrNoOutput) {
		// The operation sometimes finishes without echoing the artifact
		// it already wrote to the staging prefix. Check there before failing.
		result, err = w.recoverStagedOutput(ctx, video)
	}
	if err != nil {
		return err
	}

	gcsURL, err := w.persistOutput(ctx, video, result)
	if err != nil {
		return err
	}

	// The watch link must work immediately; a signing failure fails the
	// job rather than shipping a dead URL.
	signedURL, err := w.store.SignedVideoURL(gcsURL)
	if err != nil {
		return fmt.Errorf("failed to sign video url: %w", err)
	}

	thumbnailURL := w.thumbnail(ctx, video, gcsURL)

	if err := uow.VideoRepository().MarkCompleted(ctx, video.Id, gcsURL, signedURL, thumbnailURL, result.Duration, video.Slug); err != nil {
		return err
	}

	w.logger.Info("Worker", "Video completed", map[string]interface{}{"video_id": video.Id})

	_ = w.publisher.PublishEvent(ctx, events.VideoCompleted, map[string]interface{}{
		"user_id":  video.UserId.String(),
		"video_id": video.Id.String(),
		"prompt":   video.Prompt,
	})
	w.sendReadyEmail(ctx, uow, video)
	return nil
}

// persistOutput lands the generated bytes in our bucket under the
// organized object layout. Veo either wrote straight to GCS or returned
// the video inline as base64.
func (w *WorkerService) persistOutput(ctx context.Context, video *entity.Video, result *veo.Result) (string, error) {
	object := storage.VideoObjectPath(video.Id, string(video.Quality), video.Prompt, time.Now())

	if result.VideoURL != "" {
		if strings.HasPrefix(result.VideoURL, fmt.Sprintf("gs://%s/", w.store.Bucket())) {
			return result.VideoURL, nil
		}
		src, err := w.store.Download(ctx, result.VideoURL)
		if err != nil {
			return "", fmt.Errorf("failed to fetch generated video: %w", err)
		}
		defer src.Close()
		return w.store.Upload(ctx, object, "video/mp4", src)
	}

	if result.VideoBase64 != "" {
		data, err := base64.StdEncoding.DecodeString(result.VideoBase64)
		if err != nil {
			return "", fmt.Errorf("failed to decode inline video: %w", err)
		}
		return w.store.Upload(ctx, object, "video/mp4", bytes.NewReader(data))
	}

	return "", fmt.Errorf("generation finished without output for video %s", video.Id)
}

// recoverStagedOutput lists the job's staging prefix and adopts an mp4
// found there.
func (w *WorkerService) recoverStagedOutput(ctx context.Context, video *entity.Video) (*veo.Result, error) {
	names, err := w.store.List(ctx, fmt.Sprintf("generated/%s/", video.Id))
	if err != nil {
		return nil, fmt.Errorf("failed to list staging prefix: %w", err)
	}
	for _, name := range names {
		if strings.HasSuffix(name, ".mp4") {
			w.logger.Info("Worker", "Adopted staged output", map[string]interface{}{
				"video_id": video.Id,
				"object":   name,
			})
			return &veo.Result{Done: true, VideoURL: w.store.GCSURL(name)}, nil
		}
	}
	return nil, veo.ErrNoOutput
}

// thumbnail pairs the completed video with a thumbnail object. A frame
// grab may already sit next to the video; when it does not, a generated
// placeholder is uploaded so the feed never renders a blank card.
// Thumbnails stay best-effort: any error here returns an empty URL
// rather than failing an otherwise finished job.
func (w *WorkerService) thumbnail(ctx context.Context, video *entity.Video, gcsURL string) string {
	_, videoObject, err := storage.SplitGCSURL(gcsURL)
	if err != nil {
		return ""
	}
	object, ok := storage.ThumbnailForVideoObject(videoObject)
	if !ok {
		object = fmt.Sprintf("thumbnails/%s.jpg", video.Id)
	}
	thumbGCS := w.store.GCSURL(object)

	exists, err := w.store.Exists(ctx, thumbGCS)
	if err != nil {
		return ""
	}
	if !exists {
		data, err := storage.PlaceholderJPEG(video.Prompt)
		if err != nil {
			return ""
		}
		if _, err := w.store.Upload(ctx, object, "image/jpeg", bytes.NewReader(data)); err != nil {
			w.logger.Warn("Worker", "Placeholder thumbnail upload failed", map[string]interface{}{
				"video_id": video.Id,
				"error":    err.Error(),
			})
			return ""
		}
	}

	signed, err := w.store.SignedThumbnailURL(thumbGCS)
	if err != nil {
		return ""
	}
	return signed
}

func (w *WorkerService) fail(ctx context.Context, uow unitofwork.UnitOfWork, video *entity.Video, cause error) {
	status := string(entity.VideoStatusFailed)
	eventType := events.VideoFailed
	if veo.IsContentViolation(cause) {
		status = string(entity.VideoStatusContentViolation)
		eventType = events.VideoViolation
	}

	w.logger.Error("Worker", "Video generation failed", map[string]interface{}{
		"video_id": video.Id,
		"status":   status,
		"error":    cause.Error(),
	})

	if err := uow.VideoRepository().MarkFailed(ctx, video.Id, status, cause.Error()); err != nil {
		w.logger.Error("Worker", "Failed to record failure", map[string]interface{}{"video_id": video.Id, "error": err.Error()})
	}

	cost := w.costFree
	if video.Quality.PremiumQuality() {
		cost = w.costPremium
	}
	if err := w.creditService.Refund(ctx, video.UserId, video.Id, cost, "Refund: video generation failed"); err != nil {
		w.logger.Error("Worker", "Refund failed", map[string]interface{}{"video_id": video.Id, "error": err.Error()})
	}

	_ = w.publisher.PublishEvent(ctx, eventType, map[string]interface{}{
		"user_id":  video.UserId.String(),
		"video_id": video.Id.String(),
		"prompt":   video.Prompt,
		"reason":   cause.Error(),
	})
}

func (w *WorkerService) sendReadyEmail(ctx context.Context, uow unitofwork.UnitOfWork, video *entity.Video) {
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: video.UserId})
	if err != nil || user == nil {
		return
	}
	watchLink := fmt.Sprintf("%s/watch/%s", w.clientURL, video.Slug)
	if err := w.emailService.SendVideoReady(user.Email, video.Prompt, watchLink); err != nil {
		w.logger.Warn("Worker", "Completion email failed", map[string]interface{}{"video_id": video.Id, "error": err.Error()})
	}
}
