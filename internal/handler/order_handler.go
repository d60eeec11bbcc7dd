package handler

import (
	"context"
	"net/http"

	"github.com/miigangls/restaurant-tickets/internal/usecase"

	"github.com/labstack/echo/v4"
)

type OrderService interface {
	PlaceOrder(ctx context.Context, userID string, in usecase.PlaceOrderInput) (usecase.OrderOutput, error)
	ListOrders(ctx context.Context, userID string) ([]usecase.OrderOutput, error)
	GetOrder(ctx context.Context, actor usecase.Actor, orderID string) (usecase.OrderOutput, error)
}

type OrderHandler struct {
	uc OrderService
}

func NewOrderHandler(uc OrderService) *OrderHandler {
	return &OrderHandler{uc: uc}
}

type orderLineRequest struct {
	TicketID string `json:"ticket_id"`
	Quantity int64  `json:"quantity"`
}

type orderCreateRequest struct {
	Items []orderLineRequest `json:"items"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	g := e.Group("/orders", auth)

	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/:id", h.detail)
}

func (h *OrderHandler) create(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	var req orderCreateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	lines := make([]usecase.OrderLineInput, 0, len(req.Items))
	for _, it := range req.Items {
		lines = append(lines, usecase.OrderLineInput{TicketID: it.TicketID, Quantity: it.Quantity})
	}

	//注文者は常にトークンのユーザー
	out, err := h.uc.PlaceOrder(c.Request().Context(), actor.UserID, usecase.PlaceOrderInput{Items: lines})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *OrderHandler) list(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	out, err := h.uc.ListOrders(c.Request().Context(), actor.UserID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) detail(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	out, err := h.uc.GetOrder(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
