package handler

import (
	"errors"
	"net/http"

	"artmarket-backend/internal/client"
	"artmarket-backend/internal/model"

	"github.com/labstack/echo/v4"
)

// httpError maps service-layer errors onto HTTP responses. Validation
// failures keep their specific message; gateway failures name the provider;
// everything else is a generic 500 with no internal detail.
func httpError(err error) error {
	switch {
	case errors.Is(err, model.ErrProductNotFound),
		errors.Is(err, model.ErrOrderNotFound),
		errors.Is(err, model.ErrUserNotFound),
		errors.Is(err, model.ErrCategoryNotFound),
		errors.Is(err, model.ErrReviewNotFound),
		errors.Is(err, model.ErrCommissionNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())

	case errors.Is(err, model.ErrProductSoldOut),
		errors.Is(err, model.ErrInsufficientStock),
		errors.Is(err, model.ErrEmailTaken),
		errors.Is(err, model.ErrCategoryExists),
		errors.Is(err, model.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var (
		authErr    *client.AuthError
		reqErr     *client.RequestError
		captureErr *client.CaptureError
		connErr    *client.ConnectError
	)
	if errors.As(err, &authErr) || errors.As(err, &reqErr) ||
		errors.As(err, &captureErr) || errors.As(err, &connErr) {
		return echo.NewHTTPError(http.StatusBadGateway, "payment provider error")
	}

	return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
}
