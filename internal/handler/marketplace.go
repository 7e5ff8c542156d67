package handler

import (
	"net/http"

	"artmarket-backend/internal/dto"
	"artmarket-backend/internal/middleware"
	"artmarket-backend/internal/service"

	"github.com/labstack/echo/v4"
)

// MarketplaceHandler serves the small CRUD surfaces: categories, reviews,
// commissions.
type MarketplaceHandler struct {
	marketplaceService service.MarketplaceService
}

func NewMarketplaceHandler(marketplaceService service.MarketplaceService) *MarketplaceHandler {
	return &MarketplaceHandler{
		marketplaceService: marketplaceService,
	}
}

func (h *MarketplaceHandler) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	category, err := h.marketplaceService.CreateCategory(ctx, req.Name)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, category)
}

func (h *MarketplaceHandler) ListCategories(c echo.Context) error {
	categories, err := h.marketplaceService.ListCategories(c.Request().Context())
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, categories)
}

func (h *MarketplaceHandler) GetCategory(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	category, err := h.marketplaceService.GetCategory(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, category)
}

func (h *MarketplaceHandler) RenameCategory(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	category, err := h.marketplaceService.RenameCategory(c.Request().Context(), id, req.Name)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, category)
}

func (h *MarketplaceHandler) DeleteCategory(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.marketplaceService.DeleteCategory(c.Request().Context(), id); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "category deleted"})
}

func (h *MarketplaceHandler) CreateReview(c echo.Context) error {
	ctx := c.Request().Context()

	principal, ok := middleware.Principal(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
	}

	var req dto.CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	review, err := h.marketplaceService.CreateReview(ctx, principal.UserID, &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, review)
}

func (h *MarketplaceHandler) GetReview(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	review, err := h.marketplaceService.GetReview(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, review)
}

func (h *MarketplaceHandler) ListProductReviews(c echo.Context) error {
	productID, err := idParam(c, "productID")
	if err != nil {
		return err
	}

	reviews, err := h.marketplaceService.ListReviewsByProduct(c.Request().Context(), productID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, reviews)
}

func (h *MarketplaceHandler) DeleteReview(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.marketplaceService.DeleteReview(c.Request().Context(), id); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "review deleted"})
}

func (h *MarketplaceHandler) CreateCommission(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateCommissionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	commission, err := h.marketplaceService.CreateCommission(ctx, &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, commission)
}

func (h *MarketplaceHandler) GetCommission(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	commission, err := h.marketplaceService.GetCommission(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, commission)
}

func (h *MarketplaceHandler) ListCommissions(c echo.Context) error {
	commissions, err := h.marketplaceService.ListCommissions(c.Request().Context())
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, commissions)
}

func (h *MarketplaceHandler) DeleteCommission(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.marketplaceService.DeleteCommission(c.Request().Context(), id); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "commission deleted"})
}
