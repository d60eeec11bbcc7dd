package handler

import (
	"context"
	"net/http"

	"github.com/miigangls/restaurant-tickets/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type PaymentService interface {
	RecordPayment(ctx context.Context, actor usecase.Actor, in usecase.RecordPaymentInput) (usecase.PaymentOutput, error)
	GetPayment(ctx context.Context, actor usecase.Actor, paymentID string) (usecase.PaymentOutput, error)
}

type PaymentHandler struct {
	uc PaymentService
}

func NewPaymentHandler(uc PaymentService) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

type paymentCreateRequest struct {
	OrderID     string           `json:"order_id"`
	Provider    string           `json:"provider"`
	Amount      *decimal.Decimal `json:"amount"`
	ProviderRef *string          `json:"provider_ref"`
}

func (h *PaymentHandler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	g := e.Group("/payments", auth)

	g.POST("", h.create)
	g.GET("/:id", h.detail)
}

func (h *PaymentHandler) create(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	var req paymentCreateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if req.OrderID == "" {
		return badRequest(c, "order_id is required")
	}
	if req.Amount == nil {
		return badRequest(c, "amount is required")
	}

	out, err := h.uc.RecordPayment(c.Request().Context(), actor, usecase.RecordPaymentInput{
		OrderID:     req.OrderID,
		Provider:    req.Provider,
		Amount:      *req.Amount,
		ProviderRef: req.ProviderRef,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *PaymentHandler) detail(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	out, err := h.uc.GetPayment(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
