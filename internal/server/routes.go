package server

import (
	"context"
	"net/http"

	"github.com/miigangls/restaurant-tickets/internal/handler"
	"github.com/miigangls/restaurant-tickets/internal/middleware"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Auth     *handler.AuthHandler
	Tickets  *handler.TicketHandler
	Orders   *handler.OrderHandler
	Payments *handler.PaymentHandler
}

func registerRoutes(e *echo.Echo, h Handlers, jwtSecret string, ready func(context.Context) error, metrics http.Handler) {
	e.GET("/healthz", func(c echo.Context) error {
		if ready != nil {
			if err := ready(c.Request().Context()); err != nil {
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			}
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	if metrics != nil {
		e.GET("/metrics", echo.WrapHandler(metrics))
	}

	auth := middleware.AuthJWT(jwtSecret)
	admin := middleware.AdminRoleGuard()

	if h.Auth != nil {
		h.Auth.RegisterRoutes(e, auth)
	}
	if h.Tickets != nil {
		h.Tickets.RegisterRoutes(e, auth, admin)
	}
	if h.Orders != nil {
		h.Orders.RegisterRoutes(e, auth)
	}
	if h.Payments != nil {
		h.Payments.RegisterRoutes(e, auth)
	}
}
