package controller

import (
	"prompttovideo-be/internal/dto"
	"prompttovideo-be/internal/pkg/serverutils"
	"prompttovideo-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPaymentController interface {
	RegisterRoutes(r fiber.Router)
	RegisterWebhookRoute(r fiber.Router)
	GetCreditPacks(ctx *fiber.Ctx) error
	CreateCheckoutSession(ctx *fiber.Ctx) error
	HandleWebhook(ctx *fiber.Ctx) error
	GetBalance(ctx *fiber.Ctx) error
	GetHistory(ctx *fiber.Ctx) error
	GetReferralStats(ctx *fiber.Ctx) error
}

type paymentController struct {
	paymentService service.IPaymentService
	creditService  service.ICreditService
}

func NewPaymentController(paymentService service.IPaymentService, creditService service.ICreditService) IPaymentController {
	return &paymentController{
		paymentService: paymentService,
		creditService:  creditService,
	}
}

func (c *paymentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/credits")
	h.Get("/", c.GetBalance)
	h.Get("/history", c.GetHistory)
	h.Get("/packs", c.GetCreditPacks)
	h.Post("/checkout", c.CreateCheckoutSession)
	h.Get("/referrals", c.GetReferralStats)
}

// RegisterWebhookRoute attaches the Stripe callback outside the JWT
// group; Stripe authenticates with its signature header instead.
func (c *paymentController) RegisterWebhookRoute(r fiber.Router) {
	r.Post("/webhooks/stripe", c.HandleWebhook)
}

func (c *paymentController) GetCreditPacks(ctx *fiber.Ctx) error {
	packs, err := c.paymentService.GetCreditPacks(ctx.Context())
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
		"data":    packs,
	})
}

func (c *paymentController) CreateCheckoutSession(ctx *fiber.Ctx) error {
	userId := userIdFromLocals(ctx)

	var req dto.CheckoutRequest
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

	res, err := c.paymentService.CreateCheckoutSession(ctx.Context(), userId, &req)
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
		"message": "Checkout session created",
		"data":    res,
	})
}

func (c *paymentController) HandleWebhook(ctx *fiber.Ctx) error {
	signature := ctx.Get("Stripe-Signature")
	if err := c.paymentService.HandleWebhook(ctx.Context(), ctx.Body(), signature); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    400,
			"message": err.Error(),
		})
	}
	return ctx.JSON(fiber.Map{"received": true})
}

func (c *paymentController) GetBalance(ctx *fiber.Ctx) error {
	userId := userIdFromLocals(ctx)

	res, err := c.creditService.GetBalance(ctx.Context(), userId)
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

func (c *paymentController) GetHistory(ctx *fiber.Ctx) error {
	userId := userIdFromLocals(ctx)
	limit := ctx.QueryInt("limit", 50)
	offset := ctx.QueryInt("offset", 0)

	res, err := c.creditService.GetHistory(ctx.Context(), userId, limit, offset)
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

func (c *paymentController) GetReferralStats(ctx *fiber.Ctx) error {
	userId := userIdFromLocals(ctx)

	res, err := c.creditService.GetReferralStats(ctx.Context(), userId)
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
