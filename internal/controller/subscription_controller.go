package controller

import (
	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/pkg/serverutils"
	"ai-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISubscriptionController interface {
	RegisterRoutes(r fiber.Router)
	GetPlans(ctx *fiber.Ctx) error
	CreatePlan(ctx *fiber.Ctx) error
	Subscribe(ctx *fiber.Ctx) error
	MySubscription(ctx *fiber.Ctx) error
	Cancel(ctx *fiber.Ctx) error
	MyLimits(ctx *fiber.Ctx) error
	Checkout(ctx *fiber.Ctx) error
	Webhook(ctx *fiber.Ctx) error
}

type subscriptionController struct {
	subscriptionService service.ISubscriptionService
}

func NewSubscriptionController(subscriptionService service.ISubscriptionService) ISubscriptionController {
	return &subscriptionController{
		subscriptionService: subscriptionService,
	}
}

func (c *subscriptionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/subscriptions")
	h.Get("/plans", c.GetPlans)
	h.Post("/plans", serverutils.JwtMiddleware, serverutils.AdminMiddleware, c.CreatePlan)
	h.Post("/midtrans/notification", c.Webhook)

	h.Post("/subscribe", serverutils.JwtMiddleware, c.Subscribe)
	h.Get("/my", serverutils.JwtMiddleware, c.MySubscription)
	h.Post("/cancel", serverutils.JwtMiddleware, c.Cancel)
	h.Get("/my/limits", serverutils.JwtMiddleware, c.MyLimits)
	h.Post("/checkout", serverutils.JwtMiddleware, c.Checkout)
}

func (c *subscriptionController) GetPlans(ctx *fiber.Ctx) error {
	res, err := c.subscriptionService.GetPlans(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetching plans", res))
}

func (c *subscriptionController) CreatePlan(ctx *fiber.Ctx) error {
	var req dto.CreatePlanRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.subscriptionService.CreatePlan(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Plan created", res))
}

func (c *subscriptionController) Subscribe(ctx *fiber.Ctx) error {
	var req dto.SubscribeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.subscriptionService.Subscribe(ctx.Context(), currentUserId(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Subscription activated", res))
}

func (c *subscriptionController) MySubscription(ctx *fiber.Ctx) error {
	res, err := c.subscriptionService.MySubscription(ctx.Context(), currentUserId(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetching subscription", res))
}

func (c *subscriptionController) Cancel(ctx *fiber.Ctx) error {
	res, err := c.subscriptionService.Cancel(ctx.Context(), currentUserId(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Subscription canceled", res))
}

func (c *subscriptionController) MyLimits(ctx *fiber.Ctx) error {
	res, err := c.subscriptionService.MyLimits(ctx.Context(), currentUserId(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetching limits", res))
}

func (c *subscriptionController) Checkout(ctx *fiber.Ctx) error {
	var req dto.CheckoutRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.subscriptionService.Checkout(ctx.Context(), currentUserId(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Checkout created", res))
}

func (c *subscriptionController) Webhook(ctx *fiber.Ctx) error {
	var req dto.MidtransWebhookRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := c.subscriptionService.HandleNotification(ctx.Context(), &req); err != nil {
		// Non-2xx makes Midtrans retry the notification.
		return ctx.SendStatus(fiber.StatusInternalServerError)
	}
	return ctx.SendStatus(fiber.StatusOK)
}
