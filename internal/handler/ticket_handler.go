package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/miigangls/restaurant-tickets/internal/domain/model"
	"github.com/miigangls/restaurant-tickets/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type TicketService interface {
	List(ctx context.Context) ([]usecase.TicketOutput, error)
	Get(ctx context.Context, id string) (usecase.TicketOutput, error)
	Create(ctx context.Context, in usecase.CreateTicketInput) (usecase.TicketOutput, error)
	Update(ctx context.Context, actor usecase.Actor, id string, in usecase.UpdateTicketInput) (usecase.TicketOutput, error)
	Delete(ctx context.Context, actor usecase.Actor, id string) error
	ListAuditLogs(ctx context.Context, in usecase.ListAuditLogsInput) ([]model.AuditLog, error)
}

// /tickets の公開APIと管理API
type TicketHandler struct {
	uc TicketService
}

// DI
func NewTicketHandler(uc TicketService) *TicketHandler {
	return &TicketHandler{uc: uc}
}

// priceは "24.99" でも 24.99 でも受ける
type ticketCreateRequest struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	Price       *decimal.Decimal `json:"price"`
	ImageURL    string           `json:"image_url"`
	Stock       *int64           `json:"stock"`
	IsActive    *bool            `json:"is_active"`
}

// PATCHなので全部ポインタ
type ticketUpdateRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Category    *string          `json:"category"`
	Price       *decimal.Decimal `json:"price"`
	ImageURL    *string          `json:"image_url"`
	Stock       *int64           `json:"stock"`
	IsActive    *bool            `json:"is_active"`
}

// adminはAuthJWT→AdminRoleGuardの順
func (h *TicketHandler) RegisterRoutes(e *echo.Echo, auth, admin echo.MiddlewareFunc) {
	e.GET("/tickets", h.list)
	e.GET("/tickets/:id", h.detail)

	e.POST("/tickets", h.create, auth, admin)
	e.PATCH("/tickets/:id", h.update, auth, admin)
	e.DELETE("/tickets/:id", h.delete, auth, admin)

	e.GET("/admin/audit-logs", h.auditLogs, auth, admin)
}

func (h *TicketHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *TicketHandler) detail(c echo.Context) error {
	out, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *TicketHandler) create(c echo.Context) error {
	var req ticketCreateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if req.Price == nil {
		return badRequest(c, "price is required")
	}

	out, err := h.uc.Create(c.Request().Context(), usecase.CreateTicketInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Price:       *req.Price,
		ImageURL:    req.ImageURL,
		Stock:       req.Stock,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *TicketHandler) update(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	var req ticketUpdateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.uc.Update(c.Request().Context(), actor, c.Param("id"), usecase.UpdateTicketInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Stock:       req.Stock,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *TicketHandler) delete(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	if err := h.uc.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ?resource_id=&action=&limit=&offset=
func (h *TicketHandler) auditLogs(c echo.Context) error {
	limit := 50
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return badRequest(c, "invalid limit")
		}
		limit = l
	}

	offset := 0
	if v := c.QueryParam("offset"); v != "" {
		o, err := strconv.Atoi(v)
		if err != nil {
			return badRequest(c, "invalid offset")
		}
		offset = o
	}

	out, err := h.uc.ListAuditLogs(c.Request().Context(), usecase.ListAuditLogsInput{
		ResourceID: c.QueryParam("resource_id"),
		Action:     c.QueryParam("action"),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
