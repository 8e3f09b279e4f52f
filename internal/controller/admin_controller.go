package controller

import (
	"errors"

	"ai-docchat-be/internal/constant"
	"ai-docchat-be/internal/dto"
	"ai-docchat-be/internal/pkg/serverutils"
	"ai-docchat-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
}

type adminController struct {
	adminService service.IAdminService
	authService  service.IAuthService
	jwtSecret    string
}

func NewAdminController(adminService service.IAdminService, authService service.IAuthService, jwtSecret string) IAdminController {
	return &adminController{
		adminService: adminService,
		authService:  authService,
		jwtSecret:    jwtSecret,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin/v1")
	h.Use(serverutils.JwtMiddleware(c.jwtSecret))
	h.Use(serverutils.RequireRoles(constant.RoleAdmin))

	h.Get("dashboard", c.Dashboard)
	h.Get("sessions/now", c.ConnectedNow)
	h.Get("sessions/today", c.ConnectedToday)

	h.Get("users", c.ListUsers)
	h.Post("users", c.CreateUser)
	h.Put("users/:employeeId", c.UpdateUser)

	h.Get("analytics/conversations-by-day", c.ConversationsByDay)
	h.Get("analytics/weekday-averages", c.WeekdayAverages)
	h.Get("analytics/response-time-distribution", c.ResponseTimeDistribution)
	h.Get("analytics/response-time-by-day", c.ResponseTimeByDay)
	h.Get("analytics/response-time-by-user", c.ResponseTimeByUser)
	h.Get("analytics/daily-activity", c.DailyActivity)
	h.Get("analytics/user-leaderboard", c.UserLeaderboard)
	h.Get("analytics/feedback", c.FeedbackEntries)

	h.Post("documents", c.IngestDocument)
	h.Get("documents", c.ListDocuments)
	h.Delete("documents/:id", c.DeleteDocument)
	h.Get("documents/types", c.DocumentTypes)

	h.Get("logs", c.SystemLogs)
	h.Get("logs/:id", c.SystemLogById)
}

func (c *adminController) Dashboard(ctx *fiber.Ctx) error {
	res, err := c.adminService.Dashboard(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show dashboard", res))
}

func (c *adminController) ConnectedNow(ctx *fiber.Ctx) error {
	res, err := c.adminService.ConnectedNow(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list connected users", res))
}

func (c *adminController) ConnectedToday(ctx *fiber.Ctx) error {
	res, err := c.adminService.ConnectedToday(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list today's users", res))
}

func (c *adminController) ListUsers(ctx *fiber.Ctx) error {
	res, err := c.adminService.ListUsers(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list users", res))
}

func (c *adminController) CreateUser(ctx *fiber.Ctx) error {
	var req dto.RegisterUserRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse("Invalid request body"))
	}
	if err := serverutils.ValidateStruct(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(err.Error()))
	}

	res, err := c.authService.Register(ctx.Context(), &req)
	switch {
	case errors.Is(err, service.ErrUserExists):
		return ctx.Status(fiber.StatusConflict).JSON(serverutils.ErrorResponse(err.Error()))
	case errors.Is(err, service.ErrInvalidRole):
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(err.Error()))
	case err != nil:
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create user", res))
}

func (c *adminController) UpdateUser(ctx *fiber.Ctx) error {
	employeeId := ctx.Params("employeeId")

	var req dto.UpdateUserRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse("Invalid request body"))
	}
	if err := serverutils.ValidateStruct(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(err.Error()))
	}

	res, err := c.adminService.UpdateUser(ctx.Context(), employeeId, &req)
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(err.Error()))
	case errors.Is(err, service.ErrInvalidRole):
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(err.Error()))
	case err != nil:
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update user", res))
}

func (c *adminController) ConversationsByDay(ctx *fiber.Ctx) error {
	days := ctx.QueryInt("days", 30)
	res, err := c.adminService.ConversationsByDay(ctx.Context(), days)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list conversations by day", res))
}

func (c *adminController) WeekdayAverages(ctx *fiber.Ctx) error {
	res, err := c.adminService.WeekdayAverages(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list weekday averages", res))
}

func (c *adminController) ResponseTimeDistribution(ctx *fiber.Ctx) error {
	res, err := c.adminService.ResponseTimeDistribution(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list response time distribution", res))
}

func (c *adminController) ResponseTimeByDay(ctx *fiber.Ctx) error {
	days := ctx.QueryInt("days", 30)
	res, err := c.adminService.ResponseTimeByDay(ctx.Context(), days)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list response time by day", res))
}

func (c *adminController) ResponseTimeByUser(ctx *fiber.Ctx) error {
	res, err := c.adminService.ResponseTimeByUser(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list response time by user", res))
}

func (c *adminController) DailyActivity(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", 30)
	res, err := c.adminService.DailyActivity(ctx.Context(), limit)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list daily activity", res))
}

func (c *adminController) UserLeaderboard(ctx *fiber.Ctx) error {
	res, err := c.adminService.UserLeaderboard(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list user leaderboard", res))
}

func (c *adminController) FeedbackEntries(ctx *fiber.Ctx) error {
	res, err := c.adminService.FeedbackEntries(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list feedback", res))
}

func (c *adminController) IngestDocument(ctx *fiber.Ctx) error {
	var req dto.IngestDocumentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse("Invalid request body"))
	}
	if err := serverutils.ValidateStruct(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(err.Error()))
	}

	documentId, err := c.adminService.IngestDocument(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Document queued for ingestion", fiber.Map{
		"document_id": documentId,
	}))
}

func (c *adminController) ListDocuments(ctx *fiber.Ctx) error {
	chunks, err := c.adminService.ListDocuments(ctx.Context())
	if err != nil {
		return err
	}
	type docResponse struct {
		DocumentId uuid.UUID `json:"document_id"`
		Filename   string    `json:"filename"`
		DocType    string    `json:"doc_type"`
	}
	res := make([]docResponse, 0, len(chunks))
	for _, ch := range chunks {
		res = append(res, docResponse{DocumentId: ch.DocumentId, Filename: ch.Filename, DocType: ch.DocType})
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list documents", res))
}

func (c *adminController) DeleteDocument(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse("Invalid document id"))
	}
	if err := c.adminService.DeleteDocument(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete document", nil))
}

func (c *adminController) DocumentTypes(ctx *fiber.Ctx) error {
	res, err := c.adminService.DocumentTypes(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list document types", res))
}

func (c *adminController) SystemLogs(ctx *fiber.Ctx) error {
	level := ctx.Query("level")
	limit := ctx.QueryInt("limit", 100)
	offset := ctx.QueryInt("offset", 0)

	res, err := c.adminService.SystemLogs(level, limit, offset)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list logs", res))
}

func (c *adminController) SystemLogById(ctx *fiber.Ctx) error {
	res, err := c.adminService.SystemLogById(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse("Log not found"))
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show log", res))
}
