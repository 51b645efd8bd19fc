package controller

import (
	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/pkg/serverutils"
	"ai-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IImageController interface {
	RegisterRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Gallery(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type imageController struct {
	imageService service.IImageService
}

func NewImageController(imageService service.IImageService) IImageController {
	return &imageController{
		imageService: imageService,
	}
}

func (c *imageController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/images")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/generate", c.Generate)
	h.Get("", c.List)
	h.Get("/gallery", c.Gallery)
	h.Delete("/:id", c.Delete)
}

func (c *imageController) Generate(ctx *fiber.Ctx) error {
	var req dto.GenerateImageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.imageService.Generate(ctx.Context(), currentUserId(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success generate image", res))
}

func (c *imageController) List(ctx *fiber.Ctx) error {
	skip := ctx.QueryInt("skip", 0)
	limit := ctx.QueryInt("limit", 50)

	res, err := c.imageService.List(ctx.Context(), currentUserId(ctx), skip, limit)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetching images", res))
}

func (c *imageController) Gallery(ctx *fiber.Ctx) error {
	var query dto.GalleryQuery
	if err := ctx.QueryParser(&query); err != nil {
		return err
	}

	res, err := c.imageService.Gallery(ctx.Context(), currentUserId(ctx), &query)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetching gallery", res))
}

func (c *imageController) Delete(ctx *fiber.Ctx) error {
	imageId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid image id"))
	}

	if err := c.imageService.Delete(ctx.Context(), currentUserId(ctx), imageId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete image", nil))
}
