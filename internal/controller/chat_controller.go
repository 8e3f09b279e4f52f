package controller

import (
	"errors"

	"ai-docchat-be/internal/constant"
	"ai-docchat-be/internal/dto"
	"ai-docchat-be/internal/pkg/serverutils"
	"ai-docchat-be/internal/service"
	"ai-docchat-be/pkg/conversation"
	"ai-docchat-be/pkg/feedback"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Conversations(ctx *fiber.Ctx) error
	NewConversation(ctx *fiber.Ctx) error
	Send(ctx *fiber.Ctx) error
	Rename(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Feedback(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
	jwtSecret   string
}

func NewChatController(chatService service.IChatService, jwtSecret string) IChatController {
	return &chatController{
		chatService: chatService,
		jwtSecret:   jwtSecret,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Use(serverutils.JwtMiddleware(c.jwtSecret))
	h.Use(serverutils.RequireRoles(constant.ChatRoles...))
	h.Get("conversations", c.Conversations)
	h.Post("conversations", c.NewConversation)
	h.Post("send", c.Send)
	h.Put("rename", c.Rename)
	h.Delete("conversation", c.Delete)
	h.Post("feedback", c.Feedback)
}

func (c *chatController) Conversations(ctx *fiber.Ctx) error {
	employeeId := ctx.Locals("employee_id").(string)
	res, err := c.chatService.Conversations(ctx.Context(), employeeId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list conversations", res))
}

func (c *chatController) NewConversation(ctx *fiber.Ctx) error {
	employeeId := ctx.Locals("employee_id").(string)
	res, err := c.chatService.NewConversation(ctx.Context(), employeeId)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success open conversation", res))
}

func (c *chatController) Send(ctx *fiber.Ctx) error {
	employeeId := ctx.Locals("employee_id").(string)

	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse("Invalid request body"))
	}
	if err := serverutils.ValidateStruct(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(err.Error()))
	}

	res, err := c.chatService.SendMessage(ctx.Context(), employeeId, &req)
	if err != nil {
		if errors.Is(err, service.ErrEmptyQuestion) {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(err.Error()))
		}
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success send message", res))
}

func (c *chatController) Rename(ctx *fiber.Ctx) error {
	employeeId := ctx.Locals("employee_id").(string)

	var req dto.RenameConversationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse("Invalid request body"))
	}
	if err := serverutils.ValidateStruct(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(err.Error()))
	}

	err := c.chatService.RenameConversation(ctx.Context(), employeeId, &req)
	switch {
	case errors.Is(err, conversation.ErrNameConflict):
		return ctx.Status(fiber.StatusConflict).JSON(serverutils.ErrorResponse(err.Error()))
	case errors.Is(err, conversation.ErrNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(err.Error()))
	case errors.Is(err, conversation.ErrEmptyName):
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(err.Error()))
	case err != nil:
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success rename conversation", nil))
}

func (c *chatController) Delete(ctx *fiber.Ctx) error {
	employeeId := ctx.Locals("employee_id").(string)

	var req dto.DeleteConversationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse("Invalid request body"))
	}
	if err := serverutils.ValidateStruct(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(err.Error()))
	}

	if err := c.chatService.DeleteConversation(ctx.Context(), employeeId, &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete conversation", nil))
}

func (c *chatController) Feedback(ctx *fiber.Ctx) error {
	employeeId := ctx.Locals("employee_id").(string)

	var req dto.FeedbackRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse("Invalid request body"))
	}
	if err := serverutils.ValidateStruct(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(err.Error()))
	}

	if err := c.chatService.SetFeedback(ctx.Context(), employeeId, &req); err != nil {
		if errors.Is(err, feedback.ErrInvalidType) {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(err.Error()))
		}
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success record feedback", nil))
}
