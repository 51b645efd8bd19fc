package controller

import (
	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/pkg/serverutils"
	"ai-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	CreateFolder(ctx *fiber.Ctx) error
	GetFolders(ctx *fiber.Ctx) error
	UpdateFolder(ctx *fiber.Ctx) error
	DeleteFolder(ctx *fiber.Ctx) error
	CreateChat(ctx *fiber.Ctx) error
	GetChats(ctx *fiber.Ctx) error
	GetChat(ctx *fiber.Ctx) error
	UpdateChat(ctx *fiber.Ctx) error
	DeleteChat(ctx *fiber.Ctx) error
	GetMessages(ctx *fiber.Ctx) error
	SendMessage(ctx *fiber.Ctx) error
	GetLimits(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{
		chatService: chatService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chats")
	h.Use(serverutils.JwtMiddleware)

	h.Get("/limits", c.GetLimits)

	h.Post("/folders", c.CreateFolder)
	h.Get("/folders", c.GetFolders)
	h.Patch("/folders/:id", c.UpdateFolder)
	h.Delete("/folders/:id", c.DeleteFolder)

	h.Post("", c.CreateChat)
	h.Get("", c.GetChats)
	h.Get("/:id", c.GetChat)
	h.Patch("/:id", c.UpdateChat)
	h.Delete("/:id", c.DeleteChat)

	h.Get("/:id/messages", c.GetMessages)
	h.Post("/:id/messages", c.SendMessage)
}

func currentUserId(ctx *fiber.Ctx) uuid.UUID {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	return userId
}

func (c *chatController) CreateFolder(ctx *fiber.Ctx) error {
	var req dto.CreateFolderRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.CreateFolder(ctx.Context(), currentUserId(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create folder", res))
}

func (c *chatController) GetFolders(ctx *fiber.Ctx) error {
	res, err := c.chatService.GetFolders(ctx.Context(), currentUserId(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetching folders", res))
}

func (c *chatController) UpdateFolder(ctx *fiber.Ctx) error {
	folderId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid folder id"))
	}

	var req dto.UpdateFolderRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.UpdateFolder(ctx.Context(), currentUserId(ctx), folderId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update folder", res))
}

func (c *chatController) DeleteFolder(ctx *fiber.Ctx) error {
	folderId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid folder id"))
	}

	if err := c.chatService.DeleteFolder(ctx.Context(), currentUserId(ctx), folderId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete folder", nil))
}

func (c *chatController) CreateChat(ctx *fiber.Ctx) error {
	var req dto.CreateChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.CreateChat(ctx.Context(), currentUserId(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create chat", res))
}

func (c *chatController) GetChats(ctx *fiber.Ctx) error {
	var folderId *uuid.UUID
	if raw := ctx.Query("folder_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid folder_id"))
		}
		folderId = &parsed
	}

	res, err := c.chatService.GetChats(ctx.Context(), currentUserId(ctx), folderId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetching chats", res))
}

func (c *chatController) GetChat(ctx *fiber.Ctx) error {
	chatId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid chat id"))
	}

	res, err := c.chatService.GetChat(ctx.Context(), currentUserId(ctx), chatId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetching chat", res))
}

func (c *chatController) UpdateChat(ctx *fiber.Ctx) error {
	chatId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid chat id"))
	}

	var req dto.UpdateChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.UpdateChat(ctx.Context(), currentUserId(ctx), chatId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update chat", res))
}

func (c *chatController) DeleteChat(ctx *fiber.Ctx) error {
	chatId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid chat id"))
	}

	if err := c.chatService.DeleteChat(ctx.Context(), currentUserId(ctx), chatId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete chat", nil))
}

func (c *chatController) GetMessages(ctx *fiber.Ctx) error {
	chatId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid chat id"))
	}

	var query dto.ListMessagesQuery
	if err := ctx.QueryParser(&query); err != nil {
		return err
	}

	res, err := c.chatService.GetMessages(ctx.Context(), currentUserId(ctx), chatId, &query)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetching messages", res))
}

func (c *chatController) SendMessage(ctx *fiber.Ctx) error {
	chatId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid chat id"))
	}

	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.SendMessage(ctx.Context(), currentUserId(ctx), chatId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success send message", res))
}

func (c *chatController) GetLimits(ctx *fiber.Ctx) error {
	res, err := c.chatService.GetLimits(ctx.Context(), currentUserId(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetching limits", res))
}
