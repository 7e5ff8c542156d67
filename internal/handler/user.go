package handler

import (
	"net/http"

	"artmarket-backend/internal/dto"
	"artmarket-backend/internal/middleware"
	"artmarket-backend/internal/service"

	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

func (h *UserHandler) Me(c echo.Context) error {
	ctx := c.Request().Context()

	principal, ok := middleware.Principal(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
	}

	user, err := h.userService.GetProfile(ctx, principal.UserID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateMe(c echo.Context) error {
	ctx := c.Request().Context()

	principal, ok := middleware.Principal(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
	}

	var patch dto.UserPatch
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	user, err := h.userService.UpdateProfile(ctx, principal.UserID, &patch)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, user)
}
