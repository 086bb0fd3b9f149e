package service

import (
	"context"
	"errors"
	"fmt"

	"prompttovideo-be/internal/dto"
	"prompttovideo-be/internal/entity"
	"prompttovideo-be/internal/pkg/logger"
	"prompttovideo-be/internal/repository/specification"
	"prompttovideo-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IAdminService interface {
	GetDashboardStats(ctx context.Context) (*dto.AdminDashboardStats, error)
	GetAllUsers(ctx context.Context, req *dto.AdminUserListRequest) (*dto.AdminUserListResponse, error)
	UpdateUserStatus(ctx context.Context, userId uuid.UUID, status string) error
	AdjustCredits(ctx context.Context, adminId, userId uuid.UUID, req *dto.AdjustCreditsRequest) error
	GetSystemLogs(ctx context.Context, level string, limit, offset int) ([]dto.LogListResponse, error)
}

type adminService struct {
	uowFactory    unitofwork.RepositoryFactory
	creditService ICreditService
	logger        logger.ILogger
}

func NewAdminService(uowFactory unitofwork.RepositoryFactory, creditService ICreditService, log logger.ILogger) IAdminService {
	return &adminService{
		uowFactory:    uowFactory,
		creditService: creditService,
		logger:        log,
	}
}

func (s *adminService) GetDashboardStats(ctx context.Context) (*dto.AdminDashboardStats, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	totalUsers, err := uow.UserRepository().Count(ctx)
	if err != nil {
		return nil, err
	}
	totalVideos, err := uow.VideoRepository().Count(ctx)
	if err != nil {
		return nil, err
	}

	stats := &dto.AdminDashboardStats{
		TotalUsers:  totalUsers,
		TotalVideos: totalVideos,
		UsersByTier: make(map[string]int),
	}

	statusCounts := map[string]*int{
		string(entity.VideoStatusPending):    &stats.PendingVideos,
		string(entity.VideoStatusProcessing): &stats.ProcessingVideos,
		string(entity.VideoStatusCompleted):  &stats.CompletedVideos,
		string(entity.VideoStatusFailed):     &stats.FailedVideos,
	}
	for status, dst := range statusCounts {
		n, err := uow.VideoRepository().CountByStatus(ctx, status)
		if err != nil {
			return nil, err
		}
		*dst = n
	}

	for _, tier := range []entity.SubscriptionTier{entity.TierFree, entity.TierBasic, entity.TierPro, entity.TierEnterprise} {
		n, err := uow.UserRepository().CountByTier(ctx, string(tier))
		if err != nil {
			return nil, err
		}
		stats.UsersByTier[string(tier)] = n
	}

	if stats.UserGrowth, err = uow.UserRepository().GetUserGrowth(ctx); err != nil {
		return nil, err
	}
	if stats.VideoGrowth, err = uow.VideoRepository().GetVideoGrowth(ctx); err != nil {
		return nil, err
	}
	if stats.PurchasesByDay, err = uow.CreditRepository().GetPurchasesByDay(ctx); err != nil {
		return nil, err
	}

	return stats, nil
}

func (s *adminService) GetAllUsers(ctx context.Context, req *dto.AdminUserListRequest) (*dto.AdminUserListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	page, pageSize := normalizePage(req.Page, req.PageSize)

	var users []*entity.User
	var total int64
	var err error

	if req.Search != "" {
		users, err = uow.UserRepository().SearchUsers(ctx, req.Search, pageSize, (page-1)*pageSize)
		if err != nil {
			return nil, err
		}
		total = int64(len(users))
	} else {
		total, err = uow.UserRepository().Count(ctx)
		if err != nil {
			return nil, err
		}
		users, err = uow.UserRepository().FindAll(ctx,
			specification.OrderBy{Field: "created_at", Desc: true},
			specification.Pagination{Limit: pageSize, Offset: (page - 1) * pageSize},
		)
		if err != nil {
			return nil, err
		}
	}

	res := &dto.AdminUserListResponse{
		Users:      make([]dto.AdminUserResponse, 0, len(users)),
		Total:      total,
		Page:       page,
		TotalPages: int((total + int64(pageSize) - 1) / int64(pageSize)),
	}
	for _, u := range users {
		res.Users = append(res.Users, dto.AdminUserResponse{
			Id:               u.Id,
			Email:            u.Email,
			DisplayName:      u.DisplayName,
			Role:             string(u.Role),
			Status:           string(u.Status),
			Credits:          u.Credits,
			SubscriptionTier: string(u.SubscriptionTier),
			CreatedAt:        u.CreatedAt,
		})
	}
	return res, nil
}

func (s *adminService) UpdateUserStatus(ctx context.Context, userId uuid.UUID, status string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return err
	}
	if user == nil {
		return errors.New("user not found")
	}
	if user.Role == entity.UserRoleAdmin {
		return errors.New("cannot change the status of an admin account")
	}

	s.logger.Info("AdminService", "User status changed", map[string]interface{}{
		"user_id": userId,
		"from":    user.Status,
		"to":      status,
	})
	return uow.UserRepository().UpdateStatus(ctx, userId, status)
}

func (s *adminService) AdjustCredits(ctx context.Context, adminId, userId uuid.UUID, req *dto.AdjustCreditsRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return err
	}
	if user == nil {
		return errors.New("user not found")
	}

	desc := fmt.Sprintf("Admin adjustment: %s", req.Reason)
	if req.Amount >= 0 {
		err = s.creditService.Grant(ctx, userId, req.Amount, entity.CreditSourceAdminAdjustment, desc, nil)
	} else {
		err = s.creditService.Debit(ctx, userId, -req.Amount, entity.CreditSourceAdminAdjustment, desc, nil)
	}
	if err != nil {
		return err
	}

	s.logger.Info("AdminService", "Credits adjusted", map[string]interface{}{
		"admin_id": adminId,
		"user_id":  userId,
		"amount":   req.Amount,
		"reason":   req.Reason,
	})
	return nil
}

func (s *adminService) GetSystemLogs(ctx context.Context, level string, limit, offset int) ([]dto.LogListResponse, error) {
	entries, err := s.logger.GetLogs(level, limit, offset)
	if err != nil {
		return nil, err
	}

	res := make([]dto.LogListResponse, 0, len(entries))
	for _, e := range entries {
		res = append(res, dto.LogListResponse{
			Id:        e.Id,
			Timestamp: e.Timestamp,
			Level:     e.Level,
			Message:   e.Message,
			Module:    e.Module,
			Details:   e.Details,
		})
	}
	return res, nil
}
