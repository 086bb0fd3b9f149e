package controller

import (
	"errors"

	"prompttovideo-be/internal/dto"
	"prompttovideo-be/internal/pkg/serverutils"
	"prompttovideo-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IProfileController interface {
	RegisterRoutes(r fiber.Router)
	GetMe(ctx *fiber.Ctx) error
	GetProfile(ctx *fiber.Ctx) error
	UpdateMyProfile(ctx *fiber.Ctx) error
	Follow(ctx *fiber.Ctx) error
	Unfollow(ctx *fiber.Ctx) error
	ListPromptPacks(ctx *fiber.Ctx) error
	GetPromptPack(ctx *fiber.Ctx) error
}

type profileController struct {
	service service.IProfileService
}

func NewProfileController(service service.IProfileService) IProfileController {
	return &profileController{service: service}
}

func (c *profileController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/profiles")
	h.Get("/:id", c.GetProfile)
	h.Post("/:id/follow", c.Follow)
	h.Delete("/:id/follow", c.Unfollow)

	r.Get("/me", c.GetMe)
	r.Put("/me/profile", c.UpdateMyProfile)

	p := r.Group("/prompt-packs")
	p.Get("/", c.ListPromptPacks)
	p.Get("/:id", c.GetPromptPack)
}

func profileError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrProfileNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"code":    404,
			"message": err.Error(),
		})
	case errors.Is(err, service.ErrSelfFollow):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    400,
			"message": err.Error(),
		})
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"code":    500,
			"message": err.Error(),
		})
	}
}

func (c *profileController) GetProfile(ctx *fiber.Ctx) error {
	viewerId := userIdFromLocals(ctx)
	userId, ok := parseIdParam(ctx)
	if !ok {
		return nil
	}

	res, err := c.service.GetProfile(ctx.Context(), viewerId, userId)
	if err != nil {
		return profileError(ctx, err)
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "OK",
		"data":    res,
	})
}

func (c *profileController) GetMe(ctx *fiber.Ctx) error {
	userId := userIdFromLocals(ctx)

	res, err := c.service.GetProfile(ctx.Context(), userId, userId)
	if err != nil {
		return profileError(ctx, err)
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "OK",
		"data":    res,
	})
}

func (c *profileController) UpdateMyProfile(ctx *fiber.Ctx) error {
	userId := userIdFromLocals(ctx)

	var req dto.UpdateProfileRequest
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

	res, err := c.service.UpdateProfile(ctx.Context(), userId, &req)
	if err != nil {
		return profileError(ctx, err)
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Profile updated",
		"data":    res,
	})
}

func (c *profileController) Follow(ctx *fiber.Ctx) error {
	followerId := userIdFromLocals(ctx)
	followedId, ok := parseIdParam(ctx)
	if !ok {
		return nil
	}

	if err := c.service.Follow(ctx.Context(), followerId, followedId); err != nil {
		return profileError(ctx, err)
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Following",
		"data":    nil,
	})
}

func (c *profileController) Unfollow(ctx *fiber.Ctx) error {
	followerId := userIdFromLocals(ctx)
	followedId, ok := parseIdParam(ctx)
	if !ok {
		return nil
	}

	if err := c.service.Unfollow(ctx.Context(), followerId, followedId); err != nil {
		return profileError(ctx, err)
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Unfollowed",
		"data":    nil,
	})
}

func (c *profileController) ListPromptPacks(ctx *fiber.Ctx) error {
	res, err := c.service.ListPromptPacks(ctx.Context())
	if err != nil {
		return profileError(ctx, err)
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "OK",
		"data":    res,
	})
}

func (c *profileController) GetPromptPack(ctx *fiber.Ctx) error {
	packId, ok := parseIdParam(ctx)
	if !ok {
		return nil
	}

	res, err := c.service.GetPromptPack(ctx.Context(), packId)
	if err != nil {
		return profileError(ctx, err)
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "OK",
		"data":    res,
	})
}
