package handler

import (
	"net/http"
	"strconv"

	"artmarket-backend/internal/dto"
	"artmarket-backend/internal/middleware"
	"artmarket-backend/internal/service"

	"github.com/labstack/echo/v4"
)

type ProductHandler struct {
	catalogService service.CatalogService
}

func NewProductHandler(catalogService service.CatalogService) *ProductHandler {
	return &ProductHandler{
		catalogService: catalogService,
	}
}

func idParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

func (h *ProductHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	principal, ok := middleware.Principal(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
	}

	var req dto.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	product, err := h.catalogService.CreateProduct(ctx, principal.UserID, &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	product, err := h.catalogService.GetProduct(ctx, id)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	products, err := h.catalogService.ListProducts(ctx)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) ListBySeller(c echo.Context) error {
	ctx := c.Request().Context()

	artistID, err := idParam(c, "userID")
	if err != nil {
		return err
	}

	products, err := h.catalogService.ListBySeller(ctx, artistID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) Patch(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var patch dto.ProductPatch
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	product, err := h.catalogService.PatchProduct(ctx, id, &patch)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.catalogService.DeleteProduct(ctx, id); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "product deleted"})
}
