package handler

import (
	"net/http"

	"artmarket-backend/internal/dto"
	"artmarket-backend/internal/service"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	userService service.UserService
}

func NewAuthHandler(userService service.UserService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
	}
}

func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name, email and password are required")
	}

	user, err := h.userService.Register(ctx, &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	token, user, err := h.userService.Login(ctx, req.Email, req.Password)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user,
	})
}

func (h *AuthHandler) RequestPasswordReset(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.PasswordResetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	if err := h.userService.RequestPasswordReset(ctx, req.Email); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "if the email exists, a reset link has been sent",
	})
}
