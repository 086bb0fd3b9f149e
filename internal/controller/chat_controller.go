package controller

import (
	"errors"

	"prompttovideo-be/internal/dto"
	"prompttovideo-be/internal/pkg/serverutils"
	"prompttovideo-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	GetHistory(ctx *fiber.Ctx) error
	PostMessage(ctx *fiber.Ctx) error
	EditMessage(ctx *fiber.Ctx) error
	DeleteMessage(ctx *fiber.Ctx) error
	GetReplies(ctx *fiber.Ctx) error
	PostReply(ctx *fiber.Ctx) error
	EditReply(ctx *fiber.Ctx) error
	DeleteReply(ctx *fiber.Ctx) error
	ReactToMessage(ctx *fiber.Ctx) error
	ReactToReply(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{service: service}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat")
	h.Get("/messages", c.GetHistory)
	h.Post("/messages", c.PostMessage)
	h.Put("/messages/:id", c.EditMessage)
	h.Delete("/messages/:id", c.DeleteMessage)
	h.Post("/messages/:id/reactions", c.ReactToMessage)
	h.Get("/messages/:id/replies", c.GetReplies)
	h.Post("/messages/:id/replies", c.PostReply)
	h.Put("/replies/:id", c.EditReply)
	h.Delete("/replies/:id", c.DeleteReply)
	h.Post("/replies/:id/reactions", c.ReactToReply)
}

func chatError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrMessageNotFound), errors.Is(err, service.ErrReplyNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"code":    404,
			"message": err.Error(),
		})
	case errors.Is(err, service.ErrNotAuthor):
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"code":    403,
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

func parseIdParam(ctx *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		_ = ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    400,
			"message": "Invalid id",
		})
		return uuid.Nil, false
	}
	return id, true
}

func (c *chatController) GetHistory(ctx *fiber.Ctx) error {
	userId := userIdFromLocals(ctx)
	limit := ctx.QueryInt("limit", 50)
	offset := ctx.QueryInt("offset", 0)

	res, err := c.service.GetHistory(ctx.Context(), userId, limit, offset)
	if err != nil {
		return chatError(ctx, err)
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "OK",
		"data":    res,
	})
}

func (c *chatController) PostMessage(ctx *fiber.Ctx) error {
	userId := userIdFromLocals(ctx)

	var req dto.PostMessageRequest
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

	res, err := c.service.PostMessage(ctx.Context(), userId, &req)
	if err != nil {
		return chatError(ctx, err)
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Message posted",
		"data":    res,
	})
}

func (c *chatController) EditMessage(ctx *fiber.Ctx) error {
	userId := userIdFromLocals(ctx)
	messageId, ok := parseIdParam(ctx)
	if !ok {
		return nil
	}

	var req dto.EditMessageRequest
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

	if err := c.service.EditMessage(ctx.Context(), userId, messageId, &req); err != nil {
		return chatError(ctx, err)
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Message updated",
		"data":    nil,
	})
}

func (c *chatController) DeleteMessage(ctx *fiber.Ctx) error {
	userId := userIdFromLocals(ctx)
	messageId, ok := parseIdParam(ctx)
	if !ok {
		return nil
	}

	if err := c.service.DeleteMessage(ctx.Context(), userId, messageId); err != nil {
		return chatError(ctx, err)
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Message deleted",
		"data":    nil,
	})
}

func (c *chatController) GetReplies(ctx *fiber.Ctx) error {
	userId := userIdFromLocals(ctx)
	messageId, ok := parseIdParam(ctx)
	if !ok {
		return nil
	}

	res, err := c.service.GetReplies(ctx.Context(), userId, messageId)
	if err != nil {
		return chatError(ctx, err)
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "OK",
		"data":    res,
	})
}

func (c *chatController) PostReply(ctx *fiber.Ctx) error {
	userId := userIdFromLocals(ctx)
	messageId, ok := parseIdParam(ctx)
	if !ok {
		return nil
	}

	var req dto.PostReplyRequest
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

	res, err := c.service.PostReply(ctx.Context(), userId, messageId, &req)
	if err != nil {
		return chatError(ctx, err)
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Reply posted",
		"data":    res,
	})
}

func (c *chatController) EditReply(ctx *fiber.Ctx) error {
	userId := userIdFromLocals(ctx)
	replyId, ok := parseIdParam(ctx)
	if !ok {
		return nil
	}

	var req dto.PostReplyRequest
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

	if err := c.service.EditReply(ctx.Context(), userId, replyId, &req); err != nil {
		return chatError(ctx, err)
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Reply updated",
		"data":    nil,
	})
}

func (c *chatController) DeleteReply(ctx *fiber.Ctx) error {
	userId := userIdFromLocals(ctx)
	replyId, ok := parseIdParam(ctx)
	if !ok {
		return nil
	}

	if err := c.service.DeleteReply(ctx.Context(), userId, replyId); err != nil {
		return chatError(ctx, err)
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Reply deleted",
		"data":    nil,
	})
}

func (c *chatController) ReactToMessage(ctx *fiber.Ctx) error {
	userId := userIdFromLocals(ctx)
	messageId, ok := parseIdParam(ctx)
	if !ok {
		return nil
	}

	var req dto.ReactionRequest
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

	if err := c.service.ReactToMessage(ctx.Context(), userId, messageId, req.Emoji); err != nil {
		return chatError(ctx, err)
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Reaction saved",
		"data":    nil,
	})
}

func (c *chatController) ReactToReply(ctx *fiber.Ctx) error {
	userId := userIdFromLocals(ctx)
	replyId, ok := parseIdParam(ctx)
	if !ok {
		return nil
	}

	var req dto.ReactionRequest
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

	if err := c.service.ReactToReply(ctx.Context(), userId, replyId, req.Emoji); err != nil {
		return chatError(ctx, err)
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Reaction saved",
		"data":    nil,
	})
}
