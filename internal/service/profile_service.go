package service

import (
	"context"
	"errors"

	"prompttovideo-be/internal/dto"
	"prompttovideo-be/internal/entity"
	"prompttovideo-be/internal/repository/specification"
	"prompttovideo-be/internal/repository/unitofwork"
	"prompttovideo-be/pkg/events"

	"github.com/google/uuid"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrSelfFollow      = errors.New("cannot follow yourself")
)

type IProfileService interface {
	GetProfile(ctx context.Context, viewerId, userId uuid.UUID) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
	Follow(ctx context.Context, followerId, followedId uuid.UUID) error
	Unfollow(ctx context.Context, followerId, followedId uuid.UUID) error
	ListPromptPacks(ctx context.Context) ([]dto.PromptPackResponse, error)
	GetPromptPack(ctx context.Context, packId uuid.UUID) (*dto.PromptPackResponse, error)
}

type profileService struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  IPublisherService
}

func NewProfileService(uowFactory unitofwork.RepositoryFactory, publisher IPublisherService) IProfileService {
	return &profileService{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

func (s *profileService) buildProfile(ctx context.Context, uow unitofwork.UnitOfWork, viewerId uuid.UUID, user *entity.User) (*dto.ProfileResponse, error) {
	videoCount, err := uow.VideoRepository().Count(ctx,
		specification.VideoOwnedBy{UserID: user.Id},
		specification.PublicOnly{},
		specification.ByStatus{Status: string(entity.VideoStatusCompleted)},
	)
	if err != nil {
		return nil, err
	}

	followers, err := uow.SocialRepository().CountFollowers(ctx, user.Id)
	if err != nil {
		return nil, err
	}
	following, err := uow.SocialRepository().CountFollowing(ctx, user.Id)
	if err != nil {
		return nil, err
	}

	isFollowing := false
	if viewerId != uuid.Nil && viewerId != user.Id {
		follow, err := uow.SocialRepository().FindFollow(ctx, viewerId, user.Id)
		if err != nil {
			return nil, err
		}
		isFollowing = follow != nil
	}

	res := &dto.ProfileResponse{
		Id:             user.Id,
		DisplayName:    user.DisplayName,
		VideoCount:     videoCount,
		FollowerCount:  followers,
		FollowingCount: following,
		IsFollowing:    isFollowing,
		CreatedAt:      user.CreatedAt,
	}
	if user.AvatarURL != nil {
		res.AvatarURL = *user.AvatarURL
	}
	return res, nil
}

func (s *profileService) GetProfile(ctx context.Context, viewerId, userId uuid.UUID) (*dto.ProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrProfileNotFound
	}

	return s.buildProfile(ctx, uow, viewerId, user)
}

func (s *profileService) UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrProfileNotFound
	}

	if err := uow.UserRepository().UpdateProfile(ctx, userId, req.DisplayName, req.AvatarURL); err != nil {
		return nil, err
	}
	user.DisplayName = req.DisplayName
	if req.AvatarURL != nil {
		user.AvatarURL = req.AvatarURL
	}

	return s.buildProfile(ctx, uow, userId, user)
}

func (s *profileService) Follow(ctx context.Context, followerId, followedId uuid.UUID) error {
	if followerId == followedId {
		return ErrSelfFollow
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	followed, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: followedId})
	if err != nil {
		return err
	}
	if followed == nil {
		return ErrProfileNotFound
	}

	follower, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: followerId})
	if err != nil {
		return err
	}
	if follower == nil {
		return ErrProfileNotFound
	}

	follow := &entity.Follow{
		Id:         uuid.New(),
		FollowerId: followerId,
		FollowedId: followedId,
	}
	inserted, err := uow.SocialRepository().CreateFollow(ctx, follow)
	if err != nil {
		return err
	}
	if inserted {
		_ = s.publisher.PublishEvent(ctx, events.UserFollowed, map[string]interface{}{
			"user_id":       followedId.String(),
			"follower_name": follower.DisplayName,
		})
	}
	return nil
}

func (s *profileService) Unfollow(ctx context.Context, followerId, followedId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.SocialRepository().DeleteFollow(ctx, followerId, followedId)
}

func toPromptPackResponse(p *entity.PromptPack) dto.PromptPackResponse {
	return dto.PromptPackResponse{
		Id:          p.Id,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Prompts:     p.Prompts,
		Premium:     p.Premium,
	}
}

func (s *profileService) ListPromptPacks(ctx context.Context) ([]dto.PromptPackResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	packs, err := uow.SocialRepository().FindPromptPacks(ctx,
		specification.OrderBy{Field: "name", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	res := make([]dto.PromptPackResponse, 0, len(packs))
	for _, p := range packs {
		res = append(res, toPromptPackResponse(p))
	}
	return res, nil
}

func (s *profileService) GetPromptPack(ctx context.Context, packId uuid.UUID) (*dto.PromptPackResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	pack, err := uow.SocialRepository().FindPromptPack(ctx, specification.ByID{ID: packId})
	if err != nil {
		return nil, err
	}
	if pack == nil {
		return nil, errors.New("prompt pack not found")
	}

	res := toPromptPackResponse(pack)
	return &res, nil
}
