package controller

import (
	"errors"

	"prompttovideo-be/internal/dto"
	"prompttovideo-be/internal/pkg/serverutils"
	"prompttovideo-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChallengeController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Get(ctx *fiber.Ctx) error
	Submit(ctx *fiber.Ctx) error
	Vote(ctx *fiber.Ctx) error
	Leaderboard(ctx *fiber.Ctx) error
}

type challengeController struct {
	service service.IChallengeService
}

func NewChallengeController(service service.IChallengeService) IChallengeController {
	return &challengeController{service: service}
}

func (c *challengeController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/challenges")
	h.Get("/", c.List)
	h.Get("/:id", c.Get)
	h.Post("/:id/submissions", c.Submit)
	h.Get("/:id/leaderboard", c.Leaderboard)
	h.Post("/submissions/:id/votes", c.Vote)
}

func challengeError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrChallengeNotFound), errors.Is(err, service.ErrVideoNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"code":    404,
			"message": err.Error(),
		})
	case errors.Is(err, service.ErrChallengeNotActive),
		errors.Is(err, service.ErrVotingClosed),
		errors.Is(err, service.ErrAlreadySubmitted):
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"code":    409,
			"message": err.Error(),
		})
	case errors.Is(err, service.ErrNotVideoOwner):
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"code":    403,
			"message": err.Error(),
		})
	default:
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    400,
			"message": err.Error(),
		})
	}
}

func (c *challengeController) List(ctx *fiber.Ctx) error {
	res, err := c.service.List(ctx.Context())
	if err != nil {
		return challengeError(ctx, err)
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "OK",
		"data":    res,
	})
}

func (c *challengeController) Get(ctx *fiber.Ctx) error {
	challengeId, ok := parseIdParam(ctx)
	if !ok {
		return nil
	}

	res, err := c.service.Get(ctx.Context(), challengeId)
	if err != nil {
		return challengeError(ctx, err)
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "OK",
		"data":    res,
	})
}

func (c *challengeController) Submit(ctx *fiber.Ctx) error {
	userId := userIdFromLocals(ctx)
	challengeId, ok := parseIdParam(ctx)
	if !ok {
		return nil
	}

	var req dto.SubmitToChallengeRequest
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

	res, err := c.service.Submit(ctx.Context(), userId, challengeId, &req)
	if err != nil {
		return challengeError(ctx, err)
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Submission accepted",
		"data":    res,
	})
}

func (c *challengeController) Vote(ctx *fiber.Ctx) error {
	userId := userIdFromLocals(ctx)
	submissionId, ok := parseIdParam(ctx)
	if !ok {
		return nil
	}

	if err := c.service.Vote(ctx.Context(), userId, submissionId); err != nil {
		return challengeError(ctx, err)
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Vote recorded",
		"data":    nil,
	})
}

func (c *challengeController) Leaderboard(ctx *fiber.Ctx) error {
	challengeId, ok := parseIdParam(ctx)
	if !ok {
		return nil
	}

	res, err := c.service.Leaderboard(ctx.Context(), challengeId)
	if err != nil {
		return challengeError(ctx, err)
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "OK",
		"data":    res,
	})
}
