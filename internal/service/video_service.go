package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"prompttovideo-be/internal/dto"
	"prompttovideo-be/internal/entity"
	"prompttovideo-be/internal/repository/specification"
	"prompttovideo-be/internal/repository/unitofwork"
	"prompttovideo-be/pkg/queue"
	"prompttovideo-be/pkg/search"
	"prompttovideo-be/pkg/storage"

	pktNats "prompttovideo-be/pkg/nats"

	"github.com/google/uuid"
)

var (
	ErrVideoNotFound = errors.New("video not found")
	ErrNotOwner      = errors.New("not the owner of this video")
)

type IVideoService interface {
	Generate(ctx context.Context, userId uuid.UUID, req *dto.GenerateVideoRequest) (*dto.GenerateVideoResponse, error)
	GetStatus(ctx context.Context, userId, videoId uuid.UUID) (*dto.VideoStatusResponse, error)
	GetVideo(ctx context.Context, userId, videoId uuid.UUID) (*dto.VideoResponse, error)
	ListUserVideos(ctx context.Context, userId uuid.UUID, req *dto.VideoListRequest) (*dto.VideoListResponse, error)
	ListPublicFeed(ctx context.Context, req *dto.VideoListRequest) (*dto.VideoListResponse, error)
	GetBySlug(ctx context.Context, slug string) (*dto.VideoResponse, error)
	GetByShareToken(ctx context.Context, token string) (*dto.VideoResponse, error)
	Delete(ctx context.Context, userId, videoId uuid.UUID) error
	SetVisibility(ctx context.Context, userId, videoId uuid.UUID, public bool) error
	CreateShareLink(ctx context.Context, userId, videoId uuid.UUID) (*dto.ShareLinkResponse, error)
	SearchPublic(ctx context.Context, req *dto.SearchRequest) (*dto.VideoListResponse, error)
	SuggestFromHistory(ctx context.Context, prefix string) ([]string, error)
	SimilarVideos(ctx context.Context, videoId uuid.UUID, limit int) (*dto.SimilarVideosResponse, error)
}

type videoService struct {
	uowFactory    unitofwork.RepositoryFactory
	jobPublisher  *pktNats.Publisher
	creditService ICreditService
	store         *storage.Store
	costFree      int
	costPremium   int
	clientURL     string
}

func NewVideoService(
	uowFactory unitofwork.RepositoryFactory,
	jobPublisher *pktNats.Publisher,
	creditService ICreditService,
	store *storage.Store,
	costFree, costPremium int,
	clientURL string,
) IVideoService {
	return &videoService{
		uowFactory:    uowFactory,
		jobPublisher:  jobPublisher,
		creditService: creditService,
		store:         store,
		costFree:      costFree,
		costPremium:   costPremium,
		clientURL:     clientURL,
	}
}

var slugCleaner = regexp.MustCompile(`[^a-z0-9]+`)

// slugFromPrompt builds a url-safe slug from the first words of the
// prompt plus a short id suffix for uniqueness.
func slugFromPrompt(prompt string, id uuid.UUID) string {
	words := strings.Fields(strings.ToLower(prompt))
	if len(words) > 6 {
		words = words[:6]
	}
	base := slugCleaner.ReplaceAllString(strings.Join(words, "-"), "-")
	base = strings.Trim(base, "-")
	if base == "" {
		base = "video"
	}
	return fmt.Sprintf("%s-%s", base, id.String()[:8])
}

func (s *videoService) cost(premium bool) int {
	if premium {
		return s.costPremium
	}
	return s.costFree
}

func (s *videoService) Generate(ctx context.Context, userId uuid.UUID, req *dto.GenerateVideoRequest) (*dto.GenerateVideoResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}

	quality := req.Quality
	if quality == "" {
		quality = queue.QualityFree
	}
	if !queue.ValidQuality(quality) {
		return nil, fmt.Errorf("invalid quality %q", quality)
	}
	premium := queue.Premium(quality)
	cost := s.cost(premium)

	// Top up lazily so a free user's first request of the day succeeds.
	if err := s.creditService.GrantDailyCredits(ctx, user); err != nil {
		fmt.Printf("[WARN] Daily credit topup failed for %s: %v\n", userId, err)
	}

	videoId := uuid.New()

	// Charge before accepting. The debit is conditional, so a concurrent
	// request cannot push the balance negative.
	ref := fmt.Sprintf("video:%s", videoId)
	err = s.creditService.Debit(ctx, userId, cost, entity.CreditSourceVideoGeneration,
		fmt.Sprintf("Video generation (%s)", quality), &ref)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var title *string
	if req.Title != "" {
		title = &req.Title
	}
	var duration *int
	if req.DurationSeconds > 0 {
		duration = &req.DurationSeconds
	}

	video := &entity.Video{
		Id:              videoId,
		UserId:          userId,
		Prompt:          req.Prompt,
		Title:           title,
		Quality:         entity.VideoQuality(quality),
		Status:          entity.VideoStatusPending,
		Priority:        queue.PriorityScore(quality, string(user.SubscriptionTier), 0),
		QueuedAt:        now,
		DurationSeconds: duration,
		Public:          req.Public,
		Slug:            slugFromPrompt(req.Prompt, videoId),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := uow.VideoRepository().Create(ctx, video); err != nil {
		s.refundAccepted(ctx, video, "Video creation failed")
		return nil, err
	}

	job := dto.VideoJobMessage{VideoId: videoId}
	if err := s.enqueue(ctx, job); err != nil {
		// The job never reached the queue; fail the row and pay back.
		_ = uow.VideoRepository().MarkFailed(ctx, videoId, string(entity.VideoStatusFailed), "failed to enqueue generation job")
		s.refundAccepted(ctx, video, "Generation job could not be queued")
		return nil, fmt.Errorf("failed to enqueue generation job: %w", err)
	}

	position, err := uow.VideoRepository().QueuePosition(ctx, video.Priority, video.QueuedAt)
	if err != nil {
		position = 0
	}

	creditsLeft := user.Credits
	if !user.HasUnlimitedCredits() {
		creditsLeft = user.Credits - cost
	}

	return &dto.GenerateVideoResponse{
		VideoId:       videoId,
		Status:        string(entity.VideoStatusPending),
		QueuePosition: position,
		CreditsCost:   cost,
		CreditsLeft:   creditsLeft,
	}, nil
}

func (s *videoService) enqueue(ctx context.Context, job dto.VideoJobMessage) error {
	if s.jobPublisher == nil {
		return errors.New("job queue unavailable")
	}
	return s.jobPublisher.PublishJob(ctx, pktNats.SubjectGenerate, job)
}

func (s *videoService) refundAccepted(ctx context.Context, video *entity.Video, reason string) {
	cost := s.cost(queue.Premium(string(video.Quality)))
	if err := s.creditService.Refund(ctx, video.UserId, video.Id, cost, reason); err != nil {
		fmt.Printf("[ERROR] Refund failed for video %s: %v\n", video.Id, err)
	}
}

func (s *videoService) GetStatus(ctx context.Context, userId, videoId uuid.UUID) (*dto.VideoStatusResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	video, err := uow.VideoRepository().FindOne(ctx, specification.ByID{ID: videoId})
	if err != nil {
		return nil, err
	}
	if video == nil {
		return nil, ErrVideoNotFound
	}
	if video.UserId != userId {
		return nil, ErrNotOwner
	}

	res := &dto.VideoStatusResponse{
		Id:           video.Id,
		Status:       string(video.Status),
		ErrorMessage: video.ErrorMessage,
	}

	if video.Status == entity.VideoStatusPending {
		position, err := uow.VideoRepository().QueuePosition(ctx, video.Priority, video.QueuedAt)
		if err == nil {
			res.QueuePosition = position
		}
	}

	if video.Status == entity.VideoStatusCompleted {
		res.VideoURL = s.watchURL(video)
	}

	return res, nil
}

// watchURL returns a fresh signed URL for a completed video. Signing
// failures surface as a missing URL here because status polling should
// not 500; the detail endpoint returns the error.
func (s *videoService) watchURL(video *entity.Video) *string {
	if video.GCSUrl == nil {
		return video.GCSSignedUrl
	}
	signed, err := s.store.SignedVideoURL(*video.GCSUrl)
	if err != nil {
		fmt.Printf("[WARN] Failed to sign URL for video %s: %v\n", video.Id, err)
		return nil
	}
	return &signed
}

func (s *videoService) toResponse(video *entity.Video, signURLs bool) dto.VideoResponse {
	res := dto.VideoResponse{
		Id:              video.Id,
		Prompt:          video.Prompt,
		Title:           video.Title,
		Quality:         string(video.Quality),
		Status:          string(video.Status),
		ErrorMessage:    video.ErrorMessage,
		DurationSeconds: video.DurationSeconds,
		Public:          video.Public,
		Slug:            video.Slug,
		Views:           video.Views,
		QueuedAt:        video.QueuedAt,
		CompletedAt:     video.CompletedAt,
	}
	if video.Status == entity.VideoStatusCompleted && signURLs {
		res.VideoURL = s.watchURL(video)
		if video.ThumbnailUrl != nil {
			res.ThumbnailURL = video.ThumbnailUrl
		}
	}
	return res
}

func (s *videoService) GetVideo(ctx context.Context, userId, videoId uuid.UUID) (*dto.VideoResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	video, err := uow.VideoRepository().FindOne(ctx, specification.ByID{ID: videoId})
	if err != nil {
		return nil, err
	}
	if video == nil {
		return nil, ErrVideoNotFound
	}
	if video.UserId != userId && !video.Public {
		return nil, ErrNotOwner
	}

	if video.Status == entity.VideoStatusCompleted && video.GCSUrl != nil {
		if _, err := s.store.SignedVideoURL(*video.GCSUrl); err != nil {
			return nil, fmt.Errorf("failed to sign video url: %w", err)
		}
	}

	res := s.toResponse(video, true)
	return &res, nil
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}

func (s *videoService) ListUserVideos(ctx context.Context, userId uuid.UUID, req *dto.VideoListRequest) (*dto.VideoListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	page, pageSize := normalizePage(req.Page, req.PageSize)

	specs := []specification.Specification{
		specification.VideoOwnedBy{UserID: userId},
	}
	if req.Status != "" {
		specs = append(specs, specification.ByStatus{Status: req.Status})
	}

	total, err := uow.VideoRepository().Count(ctx, specs...)
	if err != nil {
		return nil, err
	}

	specs = append(specs,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: pageSize, Offset: (page - 1) * pageSize},
	)
	videos, err := uow.VideoRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	return s.listResponse(videos, total, page, pageSize), nil
}

func (s *videoService) ListPublicFeed(ctx context.Context, req *dto.VideoListRequest) (*dto.VideoListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	page, pageSize := normalizePage(req.Page, req.PageSize)

	specs := []specification.Specification{
		specification.PublicOnly{},
		specification.ByStatus{Status: string(entity.VideoStatusCompleted)},
	}

	total, err := uow.VideoRepository().Count(ctx, specs...)
	if err != nil {
		return nil, err
	}

	specs = append(specs,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: pageSize, Offset: (page - 1) * pageSize},
	)
	videos, err := uow.VideoRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	return s.listResponse(videos, total, page, pageSize), nil
}

func (s *videoService) listResponse(videos []*entity.Video, total int64, page, pageSize int) *dto.VideoListResponse {
	res := &dto.VideoListResponse{
		Videos:     make([]dto.VideoResponse, 0, len(videos)),
		Total:      total,
		Page:       page,
		TotalPages: int((total + int64(pageSize) - 1) / int64(pageSize)),
	}
	for _, v := range videos {
		res.Videos = append(res.Videos, s.toResponse(v, true))
	}
	return res
}

func (s *videoService) GetBySlug(ctx context.Context, slug string) (*dto.VideoResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	video, err := uow.VideoRepository().FindOne(ctx, specification.BySlug{Slug: slug})
	if err != nil {
		return nil, err
	}
	if video == nil || !video.Public {
		return nil, ErrVideoNotFound
	}

	_ = uow.VideoRepository().IncrementViews(ctx, video.Id)
	video.Views++

	res := s.toResponse(video, true)
	return &res, nil
}

func (s *videoService) GetByShareToken(ctx context.Context, token string) (*dto.VideoResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	video, err := uow.VideoRepository().FindOne(ctx, specification.ByShareToken{Token: token})
	if err != nil {
		return nil, err
	}
	if video == nil {
		return nil, ErrVideoNotFound
	}

	// A share token grants access regardless of the public flag.
	_ = uow.VideoRepository().IncrementViews(ctx, video.Id)
	video.Views++

	res := s.toResponse(video, true)
	return &res, nil
}

func (s *videoService) Delete(ctx context.Context, userId, videoId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	video, err := uow.VideoRepository().FindOne(ctx, specification.ByID{ID: videoId})
	if err != nil {
		return err
	}
	if video == nil {
		return ErrVideoNotFound
	}
	if video.UserId != userId {
		return ErrNotOwner
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.PromptEmbeddingRepository().DeleteByVideoId(ctx, videoId); err != nil {
		return err
	}
	if err := uow.VideoRepository().Delete(ctx, videoId); err != nil {
		return err
	}

	return uow.Commit()
}

func (s *videoService) SetVisibility(ctx context.Context, userId, videoId uuid.UUID, public bool) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	video, err := uow.VideoRepository().FindOne(ctx, specification.ByID{ID: videoId})
	if err != nil {
		return err
	}
	if video == nil {
		return ErrVideoNotFound
	}
	if video.UserId != userId {
		return ErrNotOwner
	}

	return uow.VideoRepository().SetVisibility(ctx, videoId, public, nil)
}

func (s *videoService) CreateShareLink(ctx context.Context, userId, videoId uuid.UUID) (*dto.ShareLinkResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	video, err := uow.VideoRepository().FindOne(ctx, specification.ByID{ID: videoId})
	if err != nil {
		return nil, err
	}
	if video == nil {
		return nil, ErrVideoNotFound
	}
	if video.UserId != userId {
		return nil, ErrNotOwner
	}

	if video.ShareToken != nil {
		return &dto.ShareLinkResponse{
			ShareToken: *video.ShareToken,
			ShareURL:   fmt.Sprintf("%s/watch/shared/%s", s.clientURL, *video.ShareToken),
		}, nil
	}

	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}
	token := hex.EncodeToString(buf)

	if err := uow.VideoRepository().SetVisibility(ctx, videoId, video.Public, &token); err != nil {
		return nil, err
	}

	return &dto.ShareLinkResponse{
		ShareToken: token,
		ShareURL:   fmt.Sprintf("%s/watch/shared/%s", s.clientURL, token),
	}, nil
}

func (s *videoService) SearchPublic(ctx context.Context, req *dto.SearchRequest) (*dto.VideoListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	page, pageSize := normalizePage(req.Page, req.PageSize)

	videos, err := uow.VideoRepository().SearchPublic(ctx, search.ParseQuery(req.Query), pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	// Search results skip the exact total; an extra count query per
	// keystroke is not worth it.
	return s.listResponse(videos, int64(len(videos)), page, pageSize), nil
}

func (s *videoService) SuggestFromHistory(ctx context.Context, prefix string) ([]string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.VideoRepository().SuggestPrompts(ctx, prefix, 10)
}

func (s *videoService) SimilarVideos(ctx context.Context, videoId uuid.UUID, limit int) (*dto.SimilarVideosResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	embedding, err := uow.PromptEmbeddingRepository().FindByVideoId(ctx, videoId)
	if err != nil {
		return nil, err
	}
	if embedding == nil {
		return &dto.SimilarVideosResponse{Videos: []dto.VideoResponse{}}, nil
	}

	ids, err := uow.PromptEmbeddingRepository().FindSimilarVideoIds(ctx, embedding.Embedding, videoId, limit)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return &dto.SimilarVideosResponse{Videos: []dto.VideoResponse{}}, nil
	}

	videos, err := uow.VideoRepository().FindAll(ctx, specification.ByIDs{IDs: ids})
	if err != nil {
		return nil, err
	}

	res := &dto.SimilarVideosResponse{Videos: make([]dto.VideoResponse, 0, len(videos))}
	for _, v := range videos {
		res.Videos = append(res.Videos, s.toResponse(v, true))
	}
	return res, nil
}
