package controller

import (
	"prompttovideo-be/internal/dto"
	"prompttovideo-be/internal/pkg/serverutils"
	"prompttovideo-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	GetDashboardStats(ctx *fiber.Ctx) error
	GetAllUsers(ctx *fiber.Ctx) error
	UpdateUserStatus(ctx *fiber.Ctx) error
	AdjustCredits(ctx *fiber.Ctx) error
	CreateChallenge(ctx *fiber.Ctx) error
	GetSystemLogs(ctx *fiber.Ctx) error
}

type adminController struct {
	adminService     service.IAdminService
	challengeService service.IChallengeService
}

func NewAdminController(adminService service.IAdminService, challengeService service.IChallengeService) IAdminController {
	return &adminController{
		adminService:     adminService,
		challengeService: challengeService,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin", serverutils.AdminMiddleware)
	h.Get("/dashboard", c.GetDashboardStats)
	h.Get("/users", c.GetAllUsers)
	h.Patch("/users/:id/status", c.UpdateUserStatus)
	h.Post("/users/:id/credits", c.AdjustCredits)
	h.Post("/challenges", c.CreateChallenge)
	h.Get("/logs", c.GetSystemLogs)
}

func (c *adminController) GetDashboardStats(ctx *fiber.Ctx) error {
	res, err := c.adminService.GetDashboardStats(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"code":    500,
			"message": err.Error(),
		})
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "OK",
		"data":    res,
	})
}

func (c *adminController) GetAllUsers(ctx *fiber.Ctx) error {
	var req dto.AdminUserListRequest
	if err := ctx.QueryParser(&req); err != nil {
		return err
	}

	res, err := c.adminService.GetAllUsers(ctx.Context(), &req)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"code":    500,
			"message": err.Error(),
		})
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "OK",
		"data":    res,
	})
}

func (c *adminController) UpdateUserStatus(ctx *fiber.Ctx) error {
	userId, ok := parseIdParam(ctx)
	if !ok {
		return nil
	}

	var req dto.UpdateUserStatusRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateStruct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    400,
			"message": err.Error(),
		})
	}

	if err := c.adminService.UpdateUserStatus(ctx.Context(), userId, req.Status); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    400,
			"message": err.Error(),
		})
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "User status updated",
		"data":    nil,
	})
}

func (c *adminController) AdjustCredits(ctx *fiber.Ctx) error {
	adminId := userIdFromLocals(ctx)
	userId, ok := parseIdParam(ctx)
	if !ok {
		return nil
	}

	var req dto.AdjustCreditsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateStruct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    400,
			"message": err.Error(),
		})
	}

	if err := c.adminService.AdjustCredits(ctx.Context(), adminId, userId, &req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    400,
			"message": err.Error(),
		})
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Credits adjusted",
		"data":    nil,
	})
}

func (c *adminController) CreateChallenge(ctx *fiber.Ctx) error {
	var req dto.CreateChallengeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateStruct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    400,
			"message": err.Error(),
		})
	}

	res, err := c.challengeService.Create(ctx.Context(), &req)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    400,
			"message": err.Error(),
		})
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Challenge created",
		"data":    res,
	})
}

func (c *adminController) GetSystemLogs(ctx *fiber.Ctx) error {
	level := ctx.Query("level")
	limit := ctx.QueryInt("limit", 100)
	offset := ctx.QueryInt("offset", 0)

	res, err := c.adminService.GetSystemLogs(ctx.Context(), level, limit, offset)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"code":    500,
			"message": err.Error(),
		})
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "OK",
		"data":    res,
	})
}
