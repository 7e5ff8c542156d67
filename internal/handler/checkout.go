package handler

import (
	"net/http"

	"artmarket-backend/internal/dto"
	"artmarket-backend/internal/middleware"
	"artmarket-backend/internal/service"

	"github.com/labstack/echo/v4"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
}

func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

func (h *CheckoutHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	principal, ok := middleware.Principal(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
	}

	var req dto.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	result, err := h.checkoutService.InitiateCheckout(ctx, principal.UserID, &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, result)
}

func (h *CheckoutHandler) Capture(c echo.Context) error {
	ctx := c.Request().Context()

	orderID := c.Param("orderID")
	if orderID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing order id")
	}

	result, err := h.checkoutService.CaptureCheckout(ctx, orderID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, result)
}

func (h *CheckoutHandler) Confirm(c echo.Context) error {
	ctx := c.Request().Context()

	orderID := c.Param("orderID")
	if orderID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing order id")
	}

	result, err := h.checkoutService.ConfirmCheckout(ctx, orderID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, result)
}

// HandleSuccess is PayPal's return_url: the buyer approved the payment and
// PayPal passes the order id back as ?token=.
func (h *CheckoutHandler) HandleSuccess(c echo.Context) error {
	ctx := c.Request().Context()

	orderID := c.QueryParam("token")
	if orderID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing order token")
	}

	result, err := h.checkoutService.CaptureCheckout(ctx, orderID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, result)
}
