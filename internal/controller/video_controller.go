package controller

import (
	"errors"

	"prompttovideo-be/internal/dto"
	"prompttovideo-be/internal/pkg/serverutils"
	"prompttovideo-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IVideoController interface {
	RegisterRoutes(r fiber.Router)
	RegisterPublicRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
	GetStatus(ctx *fiber.Ctx) error
	GetVideo(ctx *fiber.Ctx) error
	ListMine(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	SetVisibility(ctx *fiber.Ctx) error
	CreateShareLink(ctx *fiber.Ctx) error
	SimilarVideos(ctx *fiber.Ctx) error
	PublicFeed(ctx *fiber.Ctx) error
	GetBySlug(ctx *fiber.Ctx) error
	GetByShareToken(ctx *fiber.Ctx) error
	Search(ctx *fiber.Ctx) error
	SuggestFromHistory(ctx *fiber.Ctx) error
	AiSuggest(ctx *fiber.Ctx) error
	AiRandom(ctx *fiber.Ctx) error
}

type videoController struct {
	videoService   service.IVideoService
	suggestService service.ISuggestService
}

func NewVideoController(videoService service.IVideoService, suggestService service.ISuggestService) IVideoController {
	return &videoController{
		videoService:   videoService,
		suggestService: suggestService,
	}
}

func (c *videoController) RegisterRoutes(r fiber.Router) {
	r.Post("/generate", c.Generate)

	h := r.Group("/videos")
	h.Get("/", c.ListMine)
	h.Get("/:id", c.GetVideo)
	h.Get("/:id/status", c.GetStatus)
	h.Delete("/:id", c.Delete)
	h.Patch("/:id/visibility", c.SetVisibility)
	h.Post("/:id/share", c.CreateShareLink)
	h.Get("/:id/similar", c.SimilarVideos)

	r.Post("/ai-suggest", c.AiSuggest)
	r.Get("/ai-suggest/random", c.AiRandom)
}

func (c *videoController) RegisterPublicRoutes(r fiber.Router) {
	h := r.Group("/public")
	h.Get("/feed", c.PublicFeed)
	h.Get("/search", c.Search)
	h.Get("/search/suggest", c.SuggestFromHistory)
	h.Get("/watch/:slug", c.GetBySlug)
	h.Get("/shared/:token", c.GetByShareToken)
}

func userIdFromLocals(ctx *fiber.Ctx) uuid.UUID {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	return userId
}

func (c *videoController) Generate(ctx *fiber.Ctx) error {
	userId := userIdFromLocals(ctx)

	var req dto.GenerateVideoRequest
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

	res, err := c.videoService.Generate(ctx.Context(), userId, &req)
	if err != nil {
		if errors.Is(err, service.ErrInsufficientCredits) {
			return ctx.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{
				"success": false,
				"code":    402,
				"message": "Insufficient credits",
			})
		}
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    400,
			"message": err.Error(),
		})
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Video queued for generation",
		"data": fiber.Map{
			"video_id":       res.VideoId,
			"status":         res.Status,
			"queue_position": res.QueuePosition,
			"credits_cost":   res.CreditsCost,
			"credits_left":   res.CreditsLeft,
			"estimated_time": "2-5 minutes",
		},
	})
}

func (c *videoController) GetStatus(ctx *fiber.Ctx) error {
	userId := userIdFromLocals(ctx)
	videoId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    400,
			"message": "Invalid video id",
		})
	}

	res, err := c.videoService.GetStatus(ctx.Context(), userId, videoId)
	if err != nil {
		return videoError(ctx, err)
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "OK",
		"data":    res,
	})
}

func videoError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrVideoNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"code":    404,
			"message": "Video not found",
		})
	case errors.Is(err, service.ErrNotOwner):
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"code":    403,
			"message": "You do not have access to this video",
		})
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"code":    500,
			"message": err.Error(),
		})
	}
}

func (c *videoController) GetVideo(ctx *fiber.Ctx) error {
	userId := userIdFromLocals(ctx)
	videoId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    400,
			"message": "Invalid video id",
		})
	}

	res, err := c.videoService.GetVideo(ctx.Context(), userId, videoId)
	if err != nil {
		return videoError(ctx, err)
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "OK",
		"data":    res,
	})
}

func (c *videoController) ListMine(ctx *fiber.Ctx) error {
	userId := userIdFromLocals(ctx)

	var req dto.VideoListRequest
	if err := ctx.QueryParser(&req); err != nil {
		return err
	}

	res, err := c.videoService.ListUserVideos(ctx.Context(), userId, &req)
	if err != nil {
		return videoError(ctx, err)
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "OK",
		"data":    res,
	})
}

func (c *videoController) Delete(ctx *fiber.Ctx) error {
	userId := userIdFromLocals(ctx)
	videoId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    400,
			"message": "Invalid video id",
		})
	}

	if err := c.videoService.Delete(ctx.Context(), userId, videoId); err != nil {
		return videoError(ctx, err)
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Video deleted",
		"data":    nil,
	})
}

func (c *videoController) SetVisibility(ctx *fiber.Ctx) error {
	userId := userIdFromLocals(ctx)
	videoId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    400,
			"message": "Invalid video id",
		})
	}

	var req dto.SetVisibilityRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := c.videoService.SetVisibility(ctx.Context(), userId, videoId, req.Public); err != nil {
		return videoError(ctx, err)
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Visibility updated",
		"data":    nil,
	})
}

func (c *videoController) CreateShareLink(ctx *fiber.Ctx) error {
	userId := userIdFromLocals(ctx)
	videoId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    400,
			"message": "Invalid video id",
		})
	}

	res, err := c.videoService.CreateShareLink(ctx.Context(), userId, videoId)
	if err != nil {
		return videoError(ctx, err)
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Share link ready",
		"data":    res,
	})
}

func (c *videoController) SimilarVideos(ctx *fiber.Ctx) error {
	videoId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    400,
			"message": "Invalid video id",
		})
	}

	res, err := c.videoService.SimilarVideos(ctx.Context(), videoId, 12)
	if err != nil {
		return videoError(ctx, err)
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "OK",
		"data":    res,
	})
}

func (c *videoController) PublicFeed(ctx *fiber.Ctx) error {
	var req dto.VideoListRequest
	if err := ctx.QueryParser(&req); err != nil {
		return err
	}

	res, err := c.videoService.ListPublicFeed(ctx.Context(), &req)
	if err != nil {
		return videoError(ctx, err)
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "OK",
		"data":    res,
	})
}

func (c *videoController) GetBySlug(ctx *fiber.Ctx) error {
	res, err := c.videoService.GetBySlug(ctx.Context(), ctx.Params("slug"))
	if err != nil {
		return videoError(ctx, err)
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "OK",
		"data":    res,
	})
}

func (c *videoController) GetByShareToken(ctx *fiber.Ctx) error {
	res, err := c.videoService.GetByShareToken(ctx.Context(), ctx.Params("token"))
	if err != nil {
		return videoError(ctx, err)
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "OK",
		"data":    res,
	})
}

func (c *videoController) Search(ctx *fiber.Ctx) error {
	var req dto.SearchRequest
	if err := ctx.QueryParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateStruct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    400,
			"message": err.Error(),
		})
	}

	res, err := c.videoService.SearchPublic(ctx.Context(), &req)
	if err != nil {
		return videoError(ctx, err)
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "OK",
		"data":    res,
	})
}

func (c *videoController) SuggestFromHistory(ctx *fiber.Ctx) error {
	prefix := ctx.Query("q")
	suggestions, err := c.videoService.SuggestFromHistory(ctx.Context(), prefix)
	if err != nil {
		return videoError(ctx, err)
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "OK",
		"data":    fiber.Map{"suggestions": suggestions},
	})
}

func (c *videoController) AiSuggest(ctx *fiber.Ctx) error {
	var req dto.SuggestPromptsRequest
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

	prompts, err := c.suggestService.SuggestPrompts(ctx.Context(), req.Topic)
	if err != nil {
		return ctx.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"success": false,
			"code":    502,
			"message": "Prompt suggestion is temporarily unavailable",
		})
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "OK",
		"data":    dto.SuggestPromptsResponse{Prompts: prompts},
	})
}

func (c *videoController) AiRandom(ctx *fiber.Ctx) error {
	prompts, err := c.suggestService.RandomPrompts(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"success": false,
			"code":    502,
			"message": "Prompt suggestion is temporarily unavailable",
		})
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "OK",
		"data":    dto.SuggestPromptsResponse{Prompts: prompts},
	})
}
