package handler

import (
	"log/slog"
	"net/http"

	"github.com/miigangls/restaurant-tickets/internal/domain/model"
	"github.com/miigangls/restaurant-tickets/internal/middleware"
	"github.com/miigangls/restaurant-tickets/internal/usecase"

	"github.com/labstack/echo/v4"
)

// エラーは常にこの形
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg, Code: string(usecase.KindInvalidRequest)})
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if ae, ok := usecase.AsAppError(err); ok {
		if ae.Kind == usecase.KindInternal {
			slog.ErrorContext(c.Request().Context(), "request failed",
				slog.String("path", c.Path()), slog.Any("error", err))
		}
		return c.JSON(ae.Kind.Status(), ErrorResponse{Error: ae.Message, Code: string(ae.Kind)})
	}

	//500
	slog.ErrorContext(c.Request().Context(), "unexpected error",
		slog.String("path", c.Path()), slog.Any("error", err))
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error", Code: string(usecase.KindInternal)})
}

// AuthJWTが入れた値からActorを作る
func actorFrom(c echo.Context) (usecase.Actor, bool) {
	userID, ok := c.Get(middleware.CtxUserIDKey).(string)
	if !ok || userID == "" {
		return usecase.Actor{}, false
	}
	role, _ := c.Get(middleware.CtxUserRoleKey).(string)
	return usecase.Actor{UserID: userID, Role: model.Role(role)}, true
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Code: string(usecase.KindUnauthorized)})
}
