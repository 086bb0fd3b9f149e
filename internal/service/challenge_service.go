package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"prompttovideo-be/internal/dto"
	"prompttovideo-be/internal/entity"
	"prompttovideo-be/internal/repository/specification"
	"prompttovideo-be/internal/repository/unitofwork"
	"prompttovideo-be/pkg/events"

	"github.com/google/uuid"
)

var (
	ErrChallengeNotFound  = errors.New("challenge not found")
	ErrChallengeNotActive = errors.New("challenge is not accepting submissions")
	ErrVotingClosed       = errors.New("voting is closed for this challenge")
	ErrAlreadySubmitted   = errors.New("already submitted to this challenge")
	ErrNotVideoOwner      = errors.New("video does not belong to you")
)

type IChallengeService interface {
	Create(ctx context.Context, req *dto.CreateChallengeRequest) (*dto.ChallengeResponse, error)
	List(ctx context.Context) ([]dto.ChallengeResponse, error)
	Get(ctx context.Context, challengeId uuid.UUID) (*dto.ChallengeResponse, error)
	Submit(ctx context.Context, userId, challengeId uuid.UUID, req *dto.SubmitToChallengeRequest) (*dto.SubmissionResponse, error)
	Vote(ctx context.Context, userId, submissionId uuid.UUID) error
	Leaderboard(ctx context.Context, challengeId uuid.UUID) (*dto.LeaderboardResponse, error)

	// FinalizeDue ranks and pays out every challenge whose voting window
	// has closed and whose prizes are still unpaid.
	FinalizeDue(ctx context.Context) error
}

type challengeService struct {
	uowFactory    unitofwork.RepositoryFactory
	creditService ICreditService
	publisher     IPublisherService
}

func NewChallengeService(uowFactory unitofwork.RepositoryFactory, creditService ICreditService, publisher IPublisherService) IChallengeService {
	return &challengeService{
		uowFactory:    uowFactory,
		creditService: creditService,
		publisher:     publisher,
	}
}

func (s *challengeService) toResponse(ctx context.Context, uow unitofwork.UnitOfWork, c *entity.Challenge, now time.Time) dto.ChallengeResponse {
	submissions, err := uow.ChallengeRepository().FindSubmissions(ctx, c.Id)
	count := 0
	if err == nil {
		count = len(submissions)
	}
	return dto.ChallengeResponse{
		Id:              c.Id,
		Title:           c.Title,
		Description:     c.Description,
		Theme:           c.Theme,
		Status:          string(c.StatusAt(now)),
		StartsAt:        c.StartsAt,
		EndsAt:          c.EndsAt,
		VotingEndsAt:    c.VotingEndsAt,
		SubmissionCount: count,
	}
}

func (s *challengeService) Create(ctx context.Context, req *dto.CreateChallengeRequest) (*dto.ChallengeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	challenge := &entity.Challenge{
		Id:           uuid.New(),
		Title:        req.Title,
		Description:  req.Description,
		Theme:        req.Theme,
		StartsAt:     req.StartsAt,
		EndsAt:       req.EndsAt,
		VotingEndsAt: req.VotingEndsAt,
	}
	if err := uow.ChallengeRepository().Create(ctx, challenge); err != nil {
		return nil, err
	}

	res := s.toResponse(ctx, uow, challenge, time.Now())
	return &res, nil
}

func (s *challengeService) List(ctx context.Context) ([]dto.ChallengeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	challenges, err := uow.ChallengeRepository().FindAll(ctx,
		specification.OrderBy{Field: "starts_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	res := make([]dto.ChallengeResponse, 0, len(challenges))
	for _, c := range challenges {
		res = append(res, s.toResponse(ctx, uow, c, now))
	}
	return res, nil
}

func (s *challengeService) Get(ctx context.Context, challengeId uuid.UUID) (*dto.ChallengeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	challenge, err := uow.ChallengeRepository().FindOne(ctx, specification.ByID{ID: challengeId})
	if err != nil {
		return nil, err
	}
	if challenge == nil {
		return nil, ErrChallengeNotFound
	}

	res := s.toResponse(ctx, uow, challenge, time.Now())
	return &res, nil
}

func (s *challengeService) Submit(ctx context.Context, userId, challengeId uuid.UUID, req *dto.SubmitToChallengeRequest) (*dto.SubmissionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	challenge, err := uow.ChallengeRepository().FindOne(ctx, specification.ByID{ID: challengeId})
	if err != nil {
		return nil, err
	}
	if challenge == nil {
		return nil, ErrChallengeNotFound
	}
	if challenge.StatusAt(time.Now()) != entity.ChallengeStatusActive {
		return nil, ErrChallengeNotActive
	}

	video, err := uow.VideoRepository().FindOne(ctx, specification.ByID{ID: req.VideoId})
	if err != nil {
		return nil, err
	}
	if video == nil {
		return nil, ErrVideoNotFound
	}
	if video.UserId != userId {
		return nil, ErrNotVideoOwner
	}
	if video.Status != entity.VideoStatusCompleted {
		return nil, errors.New("only completed videos can be submitted")
	}

	existing, err := uow.ChallengeRepository().FindSubmission(ctx,
		specification.Filter("challenge_id", challengeId),
		specification.Filter("user_id", userId),
	)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadySubmitted
	}

	submission := &entity.ChallengeSubmission{
		Id:          uuid.New(),
		ChallengeId: challengeId,
		UserId:      userId,
		VideoId:     req.VideoId,
	}
	if err := uow.ChallengeRepository().CreateSubmission(ctx, submission); err != nil {
		return nil, err
	}

	return &dto.SubmissionResponse{
		Id:        submission.Id,
		UserId:    userId,
		VoteCount: 0,
		CreatedAt: submission.CreatedAt,
	}, nil
}

func (s *challengeService) Vote(ctx context.Context, userId, submissionId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	submission, err := uow.ChallengeRepository().FindSubmission(ctx, specification.ByID{ID: submissionId})
	if err != nil {
		return err
	}
	if submission == nil {
		return errors.New("submission not found")
	}

	challenge, err := uow.ChallengeRepository().FindOne(ctx, specification.ByID{ID: submission.ChallengeId})
	if err != nil {
		return err
	}
	if challenge == nil {
		return ErrChallengeNotFound
	}

	// Votes are accepted while the challenge runs and during voting.
	switch challenge.StatusAt(time.Now()) {
	case entity.ChallengeStatusActive, entity.ChallengeStatusVoting:
	default:
		return ErrVotingClosed
	}

	vote := &entity.ChallengeVote{
		Id:           uuid.New(),
		SubmissionId: submissionId,
		UserId:       userId,
	}
	// Duplicate votes are a silent no-op.
	_, err = uow.ChallengeRepository().CreateVote(ctx, vote)
	return err
}

func (s *challengeService) Leaderboard(ctx context.Context, challengeId uuid.UUID) (*dto.LeaderboardResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	challenge, err := uow.ChallengeRepository().FindOne(ctx, specification.ByID{ID: challengeId})
	if err != nil {
		return nil, err
	}
	if challenge == nil {
		return nil, ErrChallengeNotFound
	}

	submissions, err := uow.ChallengeRepository().TopSubmissions(ctx, challengeId, 50)
	if err != nil {
		return nil, err
	}

	userIds := make([]uuid.UUID, 0, len(submissions))
	videoIds := make([]uuid.UUID, 0, len(submissions))
	for _, sub := range submissions {
		userIds = append(userIds, sub.UserId)
		videoIds = append(videoIds, sub.VideoId)
	}

	names := make(map[uuid.UUID]string)
	if len(userIds) > 0 {
		users, err := uow.UserRepository().FindAll(ctx, specification.ByIDs{IDs: userIds})
		if err != nil {
			return nil, err
		}
		for _, u := range users {
			names[u.Id] = u.DisplayName
		}
	}

	videos := make(map[uuid.UUID]*entity.Video)
	if len(videoIds) > 0 {
		rows, err := uow.VideoRepository().FindAll(ctx, specification.ByIDs{IDs: videoIds})
		if err != nil {
			return nil, err
		}
		for _, v := range rows {
			videos[v.Id] = v
		}
	}

	res := &dto.LeaderboardResponse{
		Challenge:   s.toResponse(ctx, uow, challenge, time.Now()),
		Submissions: make([]dto.SubmissionResponse, 0, len(submissions)),
	}
	for _, sub := range submissions {
		entry := dto.SubmissionResponse{
			Id:        sub.Id,
			UserId:    sub.UserId,
			Author:    names[sub.UserId],
			VoteCount: sub.VoteCount,
			Rank:      sub.Rank,
			CreatedAt: sub.CreatedAt,
		}
		if v, ok := videos[sub.VideoId]; ok {
			entry.Video = dto.VideoResponse{
				Id:           v.Id,
				Prompt:       v.Prompt,
				Title:        v.Title,
				Quality:      string(v.Quality),
				Status:       string(v.Status),
				ThumbnailURL: v.ThumbnailUrl,
				Public:       v.Public,
				Slug:         v.Slug,
				Views:        v.Views,
				QueuedAt:     v.QueuedAt,
				CompletedAt:  v.CompletedAt,
			}
		}
		res.Submissions = append(res.Submissions, entry)
	}
	return res, nil
}

func (s *challengeService) FinalizeDue(ctx context.Context) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	challenges, err := uow.ChallengeRepository().FindAll(ctx,
		specification.Filter("prizes_awarded", false),
	)
	if err != nil {
		return err
	}

	now := time.Now()
	for _, c := range challenges {
		if c.StatusAt(now) != entity.ChallengeStatusCompleted {
			continue
		}
		if err := s.finalize(ctx, uow, c); err != nil {
			fmt.Printf("[ERROR] Failed to finalize challenge %s: %v\n", c.Id, err)
		}
	}
	return nil
}

func (s *challengeService) finalize(ctx context.Context, uow unitofwork.UnitOfWork, c *entity.Challenge) error {
	// The flag flip is the exclusivity gate; losing it means another
	// instance is already paying out.
	won, err := uow.ChallengeRepository().MarkPrizesAwarded(ctx, c.Id)
	if err != nil {
		return err
	}
	if !won {
		return nil
	}

	winners, err := uow.ChallengeRepository().TopSubmissions(ctx, c.Id, len(entity.ChallengePrizes))
	if err != nil {
		return err
	}

	for i, sub := range winners {
		rank := i + 1
		if err := uow.ChallengeRepository().SetSubmissionRank(ctx, sub.Id, rank); err != nil {
			return err
		}

		prize := entity.ChallengePrizes[i]
		ref := fmt.Sprintf("challenge:%s:%s", c.Id, sub.UserId)
		desc := fmt.Sprintf("Challenge prize: #%d in %q", rank, c.Title)
		if err := s.creditService.Grant(ctx, sub.UserId, prize, entity.CreditSourceChallengePrize, desc, &ref); err != nil {
			return err
		}

		_ = s.publisher.PublishEvent(ctx, events.ChallengeCompleted, map[string]interface{}{
			"user_id": sub.UserId.String(),
			"title":   c.Title,
			"rank":    rank,
			"prize":   prize,
		})
	}
	return nil
}
